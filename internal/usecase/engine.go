package usecase

import "smart-reconciliation/internal/domain"

// Engine runs the matcher and then the anomaly classifier over its leftovers.
// It holds no state between runs.
type Engine struct {
	matcher    *Matcher
	classifier *AnomalyClassifier
}

// NewEngine wires a matcher and classifier into an engine.
func NewEngine(matcher *Matcher, classifier *AnomalyClassifier) *Engine {
	return &Engine{matcher: matcher, classifier: classifier}
}

// NewDefaultEngine returns an engine using the standard rules.
func NewDefaultEngine() *Engine {
	return NewEngine(NewMatcher(DefaultMatchConfig()), NewAnomalyClassifier(DefaultClassifierConfig()))
}

// Run reconciles bank against book. Identical ordered inputs always produce
// identical results.
func (e *Engine) Run(bank []domain.BankRecord, book []domain.BookRecord) domain.ReconciliationResult {
	matched := e.matcher.Match(bank, book)
	return domain.ReconciliationResult{
		Matches:       matched.Matches,
		UnmatchedBank: matched.UnmatchedBank,
		UnmatchedBook: matched.RemainingBook,
		SmartFixes:    e.classifier.Classify(matched.UnmatchedBank, matched.RemainingBook),
	}
}
