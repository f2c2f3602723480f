package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"smart-reconciliation/internal/domain"
)

// day returns a valid date in January 2025. Days past 31 roll into February.
func day(d int) domain.NullDate {
	return domain.NewDate(2025, time.January, d)
}

func bankRec(id, invoice, amount string, date domain.NullDate) domain.BankRecord {
	return domain.BankRecord{
		ID:             id,
		InvoiceNumber:  invoice,
		TotalAmount:    decimal.RequireFromString(amount),
		OriginalAmount: amount,
		Date:           date,
	}
}

func bookRec(id, description, amount string, date domain.NullDate) domain.BookRecord {
	return domain.BookRecord{
		ID:             id,
		Description:    description,
		Amount:         decimal.RequireFromString(amount),
		OriginalAmount: amount,
		Date:           date,
	}
}

func bankIDs(records []domain.BankRecord) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	return ids
}

func bookIDs(records []domain.BookRecord) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	return ids
}
