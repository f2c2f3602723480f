package gateway

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"smart-reconciliation/internal/domain"
)

// ErrParseFailure is matched by every *ParseError.
var ErrParseFailure = errors.New("parse failure")

// ParseError describes a field that could not be converted.
type ParseError struct {
	File   string
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: could not parse %s '%s': %v", e.File, e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrParseFailure) match any ParseError.
func (e *ParseError) Is(target error) bool { return target == ErrParseFailure }

// ParseAmount converts an amount such as "2,080.00" to a decimal. An empty
// string is zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if cleaned == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(cleaned)
}

// ParseDate converts a "dd/mm/yyyy" string to a date. Out-of-range days and
// months roll over the way time.Date does. Anything unparsable yields an
// invalid NullDate rather than an error.
func ParseDate(s string) domain.NullDate {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return domain.NullDate{}
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return domain.NullDate{}
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return domain.NullDate{}
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return domain.NullDate{}
	}
	return domain.NewDate(year, time.Month(month), day)
}
