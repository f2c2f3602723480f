package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// NullDate is a calendar date that may be absent, e.g. when the source
// string could not be parsed.
type NullDate struct {
	Time  time.Time
	Valid bool
}

// NewDate returns a valid NullDate at UTC midnight of the given day.
func NewDate(year int, month time.Month, day int) NullDate {
	return NullDate{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), Valid: true}
}

// MarshalJSON encodes the date as "2006-01-02", or null when absent.
func (d NullDate) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format(time.DateOnly))
}

// BankRecord represents one transaction reported by the bank feed.
type BankRecord struct {
	ID              string          `json:"id"`
	AccountNo       string          `json:"account_no"`
	TransactionDate string          `json:"transaction_date"`
	Time            string          `json:"time"`
	InvoiceNumber   string          `json:"invoice_number"`
	Product         string          `json:"product"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	OriginalAmount  string          `json:"original_amount"` // as it appeared in the feed
	Date            NullDate        `json:"date"`
	MerchantID      string          `json:"merchant_id"`
	FuelBrand       string          `json:"fuel_brand"`
}

// BookRecord represents one transaction recorded in the general ledger.
type BookRecord struct {
	ID             string          `json:"id"`
	DocumentNo     string          `json:"document_no"`
	PostingDate    string          `json:"posting_date"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	OriginalAmount string          `json:"original_amount"`
	Date           NullDate        `json:"date"`
}
