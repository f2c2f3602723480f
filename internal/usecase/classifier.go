package usecase

import (
	"fmt"

	"github.com/shopspring/decimal"

	"smart-reconciliation/internal/domain"
)

// Confidence scores per rule.
const (
	referencedTranspositionConfidence   = 95
	wrongAmountConfidence               = 90
	dateMismatchConfidence              = 80
	unreferencedTranspositionConfidence = 60
	transpositionDateBoost              = 10

	// DefaultTranspositionWindowDays is how close the dates of an
	// unreferenced transposition must be to earn the confidence boost.
	DefaultTranspositionWindowDays = 5
)

// ClassifierConfig holds anomaly classifier configuration.
type ClassifierConfig struct {
	AmountTolerance         decimal.Decimal
	TranspositionWindowDays int
}

// DefaultClassifierConfig returns the standard classification rules.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		AmountTolerance:         defaultTolerance,
		TranspositionWindowDays: DefaultTranspositionWindowDays,
	}
}

// fixRule is one row of the classification table. A guarded rule only fires
// when the book record has no suggestion yet; a terminal rule ends the search
// over bank candidates for the current book record.
type fixRule struct {
	name     string
	guarded  bool
	terminal bool
	apply    func(bank domain.BankRecord, book domain.BookRecord) (domain.SmartFix, bool)
}

// AnomalyClassifier proposes a SmartFix for book records the matcher left
// over, pointing each at the unmatched bank record it most likely mirrors.
type AnomalyClassifier struct {
	config ClassifierConfig
	rules  []fixRule
}

// NewAnomalyClassifier creates a classifier with the given config.
func NewAnomalyClassifier(config ClassifierConfig) *AnomalyClassifier {
	c := &AnomalyClassifier{config: config}
	c.rules = []fixRule{
		{name: "reference-confirmed", terminal: true, apply: c.referenceConfirmed},
		{name: "date-only", guarded: true, apply: c.dateOnly},
		{name: "unreferenced-transposition", guarded: true, apply: c.unreferencedTransposition},
	}
	return c
}

// Classify returns at most one SmartFix per book record ID. The same bank
// record may be suggested for several book records.
func (c *AnomalyClassifier) Classify(unmatchedBank []domain.BankRecord, remainingBook []domain.BookRecord) map[string]domain.SmartFix {
	fixes := make(map[string]domain.SmartFix)

	for _, book := range remainingBook {
	candidates:
		for _, bank := range unmatchedBank {
			for _, rule := range c.rules {
				if _, exists := fixes[book.ID]; rule.guarded && exists {
					continue
				}
				fix, ok := rule.apply(bank, book)
				if !ok {
					continue
				}
				fixes[book.ID] = fix
				if rule.terminal {
					break candidates
				}
			}
		}
	}
	return fixes
}

func (c *AnomalyClassifier) referenceConfirmed(bank domain.BankRecord, book domain.BookRecord) (domain.SmartFix, bool) {
	if !referencesEqual(bank.InvoiceNumber, book.Description) {
		return domain.SmartFix{}, false
	}
	if IsTransposition(bank.TotalAmount, book.Amount) {
		return newFix(bank, book, domain.ErrorTypeTransposition, referencedTranspositionConfidence,
			"digit transposition detected and the reference number matches"), true
	}
	return newFix(bank, book, domain.ErrorTypeWrongAmount, wrongAmountConfidence,
		"reference number matches but the amount was recorded incorrectly"), true
}

func (c *AnomalyClassifier) dateOnly(bank domain.BankRecord, book domain.BookRecord) (domain.SmartFix, bool) {
	if !amountsAgree(bank.TotalAmount, book.Amount, c.config.AmountTolerance) {
		return domain.SmartFix{}, false
	}
	fix := newFix(bank, book, domain.ErrorTypeDateMismatch, dateMismatchConfidence,
		fmt.Sprintf("amount matches (%s) but the dates differ beyond the normal window", book.OriginalAmount))
	fix.DiffAmount = decimal.NewNullDecimal(decimal.Zero)
	return fix, true
}

func (c *AnomalyClassifier) unreferencedTransposition(bank domain.BankRecord, book domain.BookRecord) (domain.SmartFix, bool) {
	if !IsTransposition(bank.TotalAmount, book.Amount) {
		return domain.SmartFix{}, false
	}
	confidence := unreferencedTranspositionConfidence
	if days, ok := daysApart(bank.Date, book.Date); ok && days <= c.config.TranspositionWindowDays {
		confidence += transpositionDateBoost
	}
	return newFix(bank, book, domain.ErrorTypeTransposition, confidence,
		"likely digit transposition: the difference is divisible by 9 but no reference confirms it"), true
}

func newFix(bank domain.BankRecord, book domain.BookRecord, errType domain.ErrorType, confidence int, reason string) domain.SmartFix {
	return domain.SmartFix{
		BookID:        book.ID,
		SuggestedBank: bank,
		ErrorType:     errType,
		Confidence:    confidence,
		Reason:        reason,
		DiffAmount:    decimal.NewNullDecimal(bank.TotalAmount.Sub(book.Amount)),
	}
}
