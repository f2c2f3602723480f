package usecase

import (
	"context"

	"smart-reconciliation/internal/domain"
)

// RecordRepository defines the interface for fetching bank and book records.
// The usecase layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go RecordRepository
type RecordRepository interface {
	GetBankRecords(ctx context.Context, paths []string) ([]domain.BankRecord, error)
	GetBookRecords(ctx context.Context, path string) ([]domain.BookRecord, error)
}
