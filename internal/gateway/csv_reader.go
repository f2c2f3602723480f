package gateway

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"smart-reconciliation/internal/domain"
)

// CSVRecordRepository implements the RecordRepository interface for CSV files.
// Columns are located by header name, so their order does not matter.
type CSVRecordRepository struct{}

// NewCSVRecordRepository creates a new repository instance.
func NewCSVRecordRepository() *CSVRecordRepository {
	return &CSVRecordRepository{}
}

// GetBankRecords reads and parses bank statement CSV files in the given order
// into one feed. Record IDs continue across files.
func (r *CSVRecordRepository) GetBankRecords(ctx context.Context, paths []string) ([]domain.BankRecord, error) {
	var records []domain.BankRecord
	for _, path := range paths {
		if err := readRows(ctx, path, func(row csvRow) error {
			amount, err := ParseAmount(row.get("total_amount"))
			if err != nil {
				return row.parseError("total_amount", err)
			}
			records = append(records, domain.BankRecord{
				ID:              fmt.Sprintf("bank-%d", len(records)),
				AccountNo:       row.get("account_no"),
				TransactionDate: row.get("transaction_date"),
				Time:            row.get("time"),
				InvoiceNumber:   row.get("invoice_number"),
				Product:         row.get("product"),
				TotalAmount:     amount,
				OriginalAmount:  row.get("total_amount"),
				Date:            ParseDate(row.get("transaction_date")),
				MerchantID:      row.get("merchant_id"),
				FuelBrand:       row.get("fuel_brand"),
			})
			return nil
		}); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// GetBookRecords reads and parses a general-ledger CSV file.
func (r *CSVRecordRepository) GetBookRecords(ctx context.Context, path string) ([]domain.BookRecord, error) {
	var records []domain.BookRecord
	err := readRows(ctx, path, func(row csvRow) error {
		amount, err := ParseAmount(row.get("amount"))
		if err != nil {
			return row.parseError("amount", err)
		}
		records = append(records, domain.BookRecord{
			ID:             fmt.Sprintf("book-%d", len(records)),
			DocumentNo:     row.get("document_no"),
			PostingDate:    row.get("posting_date"),
			Description:    row.get("description"),
			Amount:         amount,
			OriginalAmount: row.get("amount"),
			Date:           ParseDate(row.get("posting_date")),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// csvRow gives by-name access to one data row.
type csvRow struct {
	file    string
	line    int
	columns map[string]int
	fields  []string
}

// get returns the trimmed value of column, or "" if the column is missing.
func (r csvRow) get(column string) string {
	i, ok := r.columns[column]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

func (r csvRow) parseError(column string, err error) error {
	return &ParseError{File: r.file, Line: r.line, Column: column, Value: r.get(column), Err: err}
}

// readRows opens path, reads the header and calls fn for each data row.
func readRows(ctx context.Context, path string, fn func(row csvRow) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read header from %s: %w", path, err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	name := filepath.Base(path)
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("error reading record from %s: %w", path, err)
		}
		line, _ := reader.FieldPos(0)
		if err := fn(csvRow{file: name, line: line, columns: columns, fields: fields}); err != nil {
			return err
		}
	}
}
