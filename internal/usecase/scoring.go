package usecase

import (
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"smart-reconciliation/internal/domain"
)

var (
	defaultTolerance = decimal.New(1, -2) // one cent
	nine             = decimal.NewFromInt(9)
)

// amountsAgree reports whether a and b differ by strictly less than tolerance.
func amountsAgree(a, b, tolerance decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(tolerance)
}

// referencesOverlap reports whether the case-folded invoice and description
// are both non-empty and one contains the other.
func referencesOverlap(invoice, description string) bool {
	inv := strings.ToLower(strings.TrimSpace(invoice))
	desc := strings.ToLower(strings.TrimSpace(description))
	if inv == "" || desc == "" {
		return false
	}
	return strings.Contains(desc, inv) || strings.Contains(inv, desc)
}

// referencesEqual is the stricter, case-sensitive comparison used when
// classifying anomalies.
func referencesEqual(invoice, description string) bool {
	inv := strings.TrimSpace(invoice)
	return inv != "" && inv == strings.TrimSpace(description)
}

// daysApart returns the whole number of days between a and b, rounded up.
// ok is false when either date is absent.
func daysApart(a, b domain.NullDate) (days int, ok bool) {
	if !a.Valid || !b.Valid {
		return 0, false
	}
	diff := a.Time.Sub(b.Time)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24)), true
}

// IsTransposition reports whether a and b look like the same amount with two
// digits swapped: the difference is non-zero and a whole multiple of 9 cents,
// and both amounts use the same multiset of digits.
func IsTransposition(a, b decimal.Decimal) bool {
	diff := a.Sub(b).Abs()
	if diff.IsZero() {
		return false
	}
	if !diff.Shift(2).Mod(nine).IsZero() {
		return false
	}
	return sortedDigits(a) == sortedDigits(b)
}

func sortedDigits(d decimal.Decimal) string {
	digits := []byte(strings.Replace(d.StringFixed(2), ".", "", 1))
	sort.Slice(digits, func(i, j int) bool { return digits[i] < digits[j] })
	return string(digits)
}
