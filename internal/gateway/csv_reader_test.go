package gateway

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smart-reconciliation/internal/domain"
)

const bankHeader = "account_no,transaction_date,time,invoice_number,product,total_amount,merchant_id,fuel_brand"

func TestCSVRecordRepository_GetBankRecords(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		expected []domain.BankRecord
		wantErr  bool
	}{
		{
			name: "valid bank records",
			lines: []string{
				bankHeader,
				`ACC1,01/09/2025,10:15,INV001,Diesel,"2,080.00",M01,Shell`,
				`ACC1,02/09/2025,11:30,INV002,Gasohol 95,-150.50,M02,PTT`,
			},
			expected: []domain.BankRecord{
				{
					ID:              "bank-0",
					AccountNo:       "ACC1",
					TransactionDate: "01/09/2025",
					Time:            "10:15",
					InvoiceNumber:   "INV001",
					Product:         "Diesel",
					TotalAmount:     decimal.RequireFromString("2080.00"),
					OriginalAmount:  "2,080.00",
					Date:            domain.NewDate(2025, time.September, 1),
					MerchantID:      "M01",
					FuelBrand:       "Shell",
				},
				{
					ID:              "bank-1",
					AccountNo:       "ACC1",
					TransactionDate: "02/09/2025",
					Time:            "11:30",
					InvoiceNumber:   "INV002",
					Product:         "Gasohol 95",
					TotalAmount:     decimal.RequireFromString("-150.50"),
					OriginalAmount:  "-150.50",
					Date:            domain.NewDate(2025, time.September, 2),
					MerchantID:      "M02",
					FuelBrand:       "PTT",
				},
			},
		},
		{
			name: "columns found by header name in any order",
			lines: []string{
				"total_amount,invoice_number,transaction_date",
				"99.00,INV9,15/01/2025",
			},
			expected: []domain.BankRecord{
				{
					ID:              "bank-0",
					TransactionDate: "15/01/2025",
					InvoiceNumber:   "INV9",
					TotalAmount:     decimal.RequireFromString("99.00"),
					OriginalAmount:  "99.00",
					Date:            domain.NewDate(2025, time.January, 15),
				},
			},
		},
		{
			name: "unparsable date is kept as an absent date",
			lines: []string{
				bankHeader,
				"ACC1,not-a-date,,INV001,Diesel,100.00,,",
			},
			expected: []domain.BankRecord{
				{
					ID:              "bank-0",
					AccountNo:       "ACC1",
					TransactionDate: "not-a-date",
					InvoiceNumber:   "INV001",
					Product:         "Diesel",
					TotalAmount:     decimal.RequireFromString("100.00"),
					OriginalAmount:  "100.00",
				},
			},
		},
		{
			name:     "header only",
			lines:    []string{bankHeader},
			expected: nil,
		},
		{
			name: "invalid amount format",
			lines: []string{
				bankHeader,
				"ACC1,01/09/2025,10:15,INV001,Diesel,invalid_amount,M01,Shell",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSV(t, "bank.csv", tt.lines)

			repo := NewCSVRecordRepository()
			got, err := repo.GetBankRecords(context.Background(), []string{path})

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, len(tt.expected))
			for i := range tt.expected {
				assertBankRecord(t, tt.expected[i], got[i])
			}
		})
	}
}

func TestCSVRecordRepository_GetBankRecords_MultipleFiles(t *testing.T) {
	first := writeCSV(t, "bank_1.csv", []string{
		bankHeader,
		"ACC1,01/09/2025,10:15,INV001,Diesel,10.00,M01,Shell",
		"ACC1,02/09/2025,10:20,INV002,Diesel,20.00,M01,Shell",
	})
	second := writeCSV(t, "bank_2.csv", []string{
		"invoice_number,total_amount,transaction_date",
		"INV003,30.00,03/09/2025",
	})

	got, err := NewCSVRecordRepository().GetBankRecords(context.Background(), []string{first, second})

	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, want := range []struct{ id, invoice string }{
		{"bank-0", "INV001"},
		{"bank-1", "INV002"},
		{"bank-2", "INV003"},
	} {
		assert.Equal(t, want.id, got[i].ID)
		assert.Equal(t, want.invoice, got[i].InvoiceNumber)
	}
}

func TestCSVRecordRepository_GetBankRecords_ParseFailureInLaterFile(t *testing.T) {
	first := writeCSV(t, "bank_1.csv", []string{bankHeader, "ACC1,01/09/2025,10:15,INV001,Diesel,10.00,M01,Shell"})
	second := writeCSV(t, "bank_2.csv", []string{bankHeader, "ACC1,02/09/2025,10:15,INV002,Diesel,ten,M01,Shell"})

	got, err := NewCSVRecordRepository().GetBankRecords(context.Background(), []string{first, second})

	assert.Nil(t, got)
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "bank_2.csv", parseErr.File)
	assert.Equal(t, 2, parseErr.Line)
}

func TestCSVRecordRepository_GetBookRecords(t *testing.T) {
	lines := []string{
		"document_no,posting_date,description,amount",
		`DOC-1,01/09/2025,INV001,"2,080.00"`,
		"",
		"DOC-2,31/02/2025, Petty cash ,",
	}
	path := writeCSV(t, "book.csv", lines)

	got, err := NewCSVRecordRepository().GetBookRecords(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "book-0", got[0].ID)
	assert.Equal(t, "DOC-1", got[0].DocumentNo)
	assert.Equal(t, "01/09/2025", got[0].PostingDate)
	assert.Equal(t, "INV001", got[0].Description)
	assert.True(t, decimal.RequireFromString("2080").Equal(got[0].Amount))
	assert.Equal(t, "2,080.00", got[0].OriginalAmount)
	assert.Equal(t, domain.NewDate(2025, time.September, 1), got[0].Date)

	assert.Equal(t, "book-1", got[1].ID, "blank lines do not consume an id")
	assert.Equal(t, "Petty cash", got[1].Description)
	assert.True(t, got[1].Amount.IsZero(), "empty amount reads as zero")
	assert.Equal(t, domain.NewDate(2025, time.March, 3), got[1].Date, "day overflow rolls into the next month")
}

func TestCSVRecordRepository_ParseFailure(t *testing.T) {
	path := writeCSV(t, "ledger.csv", []string{
		"document_no,posting_date,description,amount",
		"DOC-1,01/09/2025,INV001,10.00",
		"DOC-2,01/09/2025,INV002,12.3.4",
	})

	got, err := NewCSVRecordRepository().GetBookRecords(context.Background(), path)

	assert.Nil(t, got, "no partial results on parse failure")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParseFailure))

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "ledger.csv", parseErr.File)
	assert.Equal(t, 3, parseErr.Line)
	assert.Equal(t, "amount", parseErr.Column)
	assert.Equal(t, "12.3.4", parseErr.Value)
	assert.Contains(t, err.Error(), "ledger.csv:3")
}

func TestCSVRecordRepository_FileErrors(t *testing.T) {
	repo := NewCSVRecordRepository()
	ctx := context.Background()

	t.Run("file not found", func(t *testing.T) {
		_, err := repo.GetBankRecords(ctx, []string{filepath.Join(t.TempDir(), "nonexistent_file.csv")})
		assert.Error(t, err)
	})

	t.Run("one of several bank files not found", func(t *testing.T) {
		valid := writeCSV(t, "bank.csv", []string{bankHeader, "ACC1,01/09/2025,10:15,INV001,Diesel,10.00,M01,Shell"})
		got, err := repo.GetBankRecords(ctx, []string{valid, filepath.Join(t.TempDir(), "nonexistent.csv")})
		assert.Error(t, err)
		assert.Nil(t, got)
	})

	t.Run("file with no header", func(t *testing.T) {
		path := writeCSV(t, "empty.csv", nil)
		_, err := repo.GetBookRecords(ctx, path)
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		path := writeCSV(t, "bank.csv", []string{bankHeader})
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := repo.GetBankRecords(cancelled, []string{path})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestCSVRecordRepository_ByteOrderMark(t *testing.T) {
	path := writeCSV(t, "bom.csv", []string{
		"\ufeffdocument_no,posting_date,description,amount",
		"DOC-1,01/09/2025,INV001,10.00",
	})

	got, err := NewCSVRecordRepository().GetBookRecords(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "DOC-1", got[0].DocumentNo)
}

// Helper functions

func writeCSV(t testing.TB, name string, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o600); err != nil {
		t.Fatalf("Failed to create temp CSV file: %v", err)
	}
	return path
}

func assertBankRecord(t *testing.T, want, got domain.BankRecord) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.AccountNo, got.AccountNo)
	assert.Equal(t, want.TransactionDate, got.TransactionDate)
	assert.Equal(t, want.Time, got.Time)
	assert.Equal(t, want.InvoiceNumber, got.InvoiceNumber)
	assert.Equal(t, want.Product, got.Product)
	assert.True(t, want.TotalAmount.Equal(got.TotalAmount), "amount = %s, want %s", got.TotalAmount, want.TotalAmount)
	assert.Equal(t, want.OriginalAmount, got.OriginalAmount)
	assert.Equal(t, want.Date, got.Date)
	assert.Equal(t, want.MerchantID, got.MerchantID)
	assert.Equal(t, want.FuelBrand, got.FuelBrand)
}

// Benchmark tests

func BenchmarkGetBankRecords(b *testing.B) {
	lines := []string{bankHeader}
	for i := 0; i < 1000; i++ {
		lines = append(lines, `ACC1,01/09/2025,10:15,INV001,Diesel,"1,150.00",M01,Shell`)
	}
	path := writeCSV(b, "benchmark.csv", lines)

	repo := NewCSVRecordRepository()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := repo.GetBankRecords(ctx, []string{path}); err != nil {
			b.Fatalf("Error in benchmark: %v", err)
		}
	}
}
