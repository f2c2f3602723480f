package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"smart-reconciliation/internal/domain"
)

var (
	hundred       = decimal.NewFromInt(100)
	excellentRate = decimal.NewFromInt(95)
	fairRate      = decimal.NewFromInt(80)
)

// ReconciliationUseCase orchestrates the reconciliation process.
type ReconciliationUseCase struct {
	repo   RecordRepository
	engine *Engine
	logger *slog.Logger
}

// NewReconciliationUseCase creates a new instance of the usecase.
func NewReconciliationUseCase(repo RecordRepository, engine *Engine, logger *slog.Logger) *ReconciliationUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReconciliationUseCase{repo: repo, engine: engine, logger: logger}
}

// Reconcile loads both feeds, runs the matching engine and builds the report.
// Bank statement files are concatenated in the order given.
func (uc *ReconciliationUseCase) Reconcile(ctx context.Context, bankPaths []string, bookPath string) (*domain.ReconciliationReport, error) {
	runID := uuid.NewString()
	logger := uc.logger.With("run_id", runID)

	// Step 1: Data Ingestion
	bankRecords, err := uc.repo.GetBankRecords(ctx, bankPaths)
	if err != nil {
		return nil, fmt.Errorf("could not get bank records: %w", err)
	}

	bookRecords, err := uc.repo.GetBookRecords(ctx, bookPath)
	if err != nil {
		return nil, fmt.Errorf("could not get book records: %w", err)
	}
	logger.Info("records loaded", "bank", len(bankRecords), "book", len(bookRecords))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("reconciliation cancelled: %w", err)
	}

	// Step 2: Matching and anomaly classification
	result := uc.engine.Run(bankRecords, bookRecords)
	for _, m := range result.Matches {
		logger.Debug("matched", "bank_id", m.Bank.ID, "book_id", m.Book.ID, "score", m.Score)
	}

	// Step 3: Report
	report := &domain.ReconciliationReport{
		RunID:                runID,
		Summary:              summarize(len(bankRecords), len(bookRecords), result),
		ReconciliationResult: result,
	}

	logger.Info("reconciliation complete",
		"matched", report.Summary.MatchedTransactions,
		"unmatched_bank", report.Summary.UnmatchedBankCount,
		"unmatched_book", report.Summary.UnmatchedBookCount,
		"smart_fixes", report.Summary.SmartFixCount,
		"match_rate", report.Summary.MatchRate.String(),
	)
	return report, nil
}

func summarize(totalBank, totalBook int, result domain.ReconciliationResult) domain.Summary {
	s := domain.Summary{
		TotalBankRecordsProcessed: totalBank,
		TotalBookRecordsProcessed: totalBook,
		MatchedTransactions:       len(result.Matches),
		UnmatchedBankCount:        len(result.UnmatchedBank),
		UnmatchedBookCount:        len(result.UnmatchedBook),
		SmartFixCount:             len(result.SmartFixes),
		FixesByType:               make(map[domain.ErrorType]int),
		TotalMatchedAmount:        decimal.Zero,
		UnmatchedBankAmount:       decimal.Zero,
		UnmatchedBookAmount:       decimal.Zero,
		MatchRate:                 decimal.Zero,
	}

	for _, m := range result.Matches {
		if m.Note == domain.NoteExact {
			s.ExactMatches++
		} else {
			s.PartialMatches++
		}
		s.TotalMatchedAmount = s.TotalMatchedAmount.Add(m.Bank.TotalAmount)
	}
	for _, fix := range result.SmartFixes {
		s.FixesByType[fix.ErrorType]++
	}
	for _, rec := range result.UnmatchedBank {
		s.UnmatchedBankAmount = s.UnmatchedBankAmount.Add(rec.TotalAmount)
	}
	for _, rec := range result.UnmatchedBook {
		s.UnmatchedBookAmount = s.UnmatchedBookAmount.Add(rec.Amount)
	}
	s.NetDifference = s.UnmatchedBankAmount.Sub(s.UnmatchedBookAmount)
	s.UnexplainedBookCount = s.UnmatchedBookCount - s.SmartFixCount

	if totalBank > 0 {
		s.MatchRate = decimal.NewFromInt(int64(s.MatchedTransactions)).
			Mul(hundred).
			DivRound(decimal.NewFromInt(int64(totalBank)), 2)
	}
	switch {
	case s.MatchRate.GreaterThanOrEqual(excellentRate):
		s.Health = domain.HealthExcellent
	case s.MatchRate.GreaterThanOrEqual(fairRate):
		s.Health = domain.HealthFair
	default:
		s.Health = domain.HealthCritical
	}
	s.Analysis = analyze(s)
	return s
}
