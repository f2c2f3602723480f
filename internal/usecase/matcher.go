package usecase

import (
	"github.com/shopspring/decimal"

	"smart-reconciliation/internal/domain"
)

// Score weights. A candidate that agrees on all three scores 100.
const (
	amountPoints    = 50
	referencePoints = 30
	sameDayPoints   = 20
	nearDayPoints   = 10

	nearDayWindow = 2

	// DefaultAcceptThreshold is the minimum score for an accepted match.
	DefaultAcceptThreshold = 70
)

// MatchConfig holds matcher configuration.
type MatchConfig struct {
	AcceptThreshold int
	AmountTolerance decimal.Decimal
}

// DefaultMatchConfig returns the standard matching rules.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		AcceptThreshold: DefaultAcceptThreshold,
		AmountTolerance: defaultTolerance,
	}
}

// MatchResult holds the pairs accepted by the matcher and what was left over.
type MatchResult struct {
	Matches       []domain.Match
	UnmatchedBank []domain.BankRecord
	RemainingBook []domain.BookRecord
}

// Matcher pairs bank records with book records. The bank feed is treated as
// the source of truth: bank records are visited in order and each one
// greedily claims its best available book record.
type Matcher struct {
	config MatchConfig
}

// NewMatcher creates a new matcher with the given config.
func NewMatcher(config MatchConfig) *Matcher {
	return &Matcher{config: config}
}

// Match runs a single greedy pass over bank. A book record claimed by an
// earlier bank record is no longer a candidate for later ones.
func (m *Matcher) Match(bank []domain.BankRecord, book []domain.BookRecord) MatchResult {
	pool := newBookPool(book)
	result := MatchResult{
		Matches:       make([]domain.Match, 0),
		UnmatchedBank: make([]domain.BankRecord, 0),
	}

	for _, bankRec := range bank {
		bestIndex, bestScore := -1, 0
		for i, bookRec := range pool.records {
			if pool.taken[i] {
				continue
			}
			score, ok := m.score(bankRec, bookRec)
			if !ok {
				continue
			}
			// Strict comparison: the first candidate wins ties.
			if score > bestScore {
				bestIndex, bestScore = i, score
			}
		}

		if bestIndex == -1 || bestScore < m.config.AcceptThreshold {
			result.UnmatchedBank = append(result.UnmatchedBank, bankRec)
			continue
		}

		note := domain.NotePartial
		if bestScore == amountPoints+referencePoints+sameDayPoints {
			note = domain.NoteExact
		}
		result.Matches = append(result.Matches, domain.Match{
			Bank:  bankRec,
			Book:  pool.take(bestIndex),
			Score: bestScore,
			Note:  note,
		})
	}

	result.RemainingBook = pool.remaining()
	return result
}

// score returns the candidate's score. ok is false when the amounts disagree,
// which disqualifies the candidate outright.
func (m *Matcher) score(bank domain.BankRecord, book domain.BookRecord) (score int, ok bool) {
	if !amountsAgree(bank.TotalAmount, book.Amount, m.config.AmountTolerance) {
		return 0, false
	}
	score = amountPoints

	if referencesOverlap(bank.InvoiceNumber, book.Description) {
		score += referencePoints
	}

	if days, ok := daysApart(bank.Date, book.Date); ok {
		switch {
		case days == 0:
			score += sameDayPoints
		case days <= nearDayWindow:
			score += nearDayPoints
		}
	}
	return score, true
}

// bookPool is an arena of book records with an availability flag per slot,
// so consumption stays explicit and input order is preserved.
type bookPool struct {
	records []domain.BookRecord
	taken   []bool
}

func newBookPool(records []domain.BookRecord) *bookPool {
	return &bookPool{
		records: records,
		taken:   make([]bool, len(records)),
	}
}

func (p *bookPool) take(i int) domain.BookRecord {
	p.taken[i] = true
	return p.records[i]
}

func (p *bookPool) remaining() []domain.BookRecord {
	left := make([]domain.BookRecord, 0, len(p.records))
	for i, rec := range p.records {
		if !p.taken[i] {
			left = append(left, rec)
		}
	}
	return left
}
