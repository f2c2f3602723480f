package usecase

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"smart-reconciliation/internal/domain"
)

func TestIsTransposition(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{name: "swapped thousands and hundreds", a: "5400.00", b: "4500.00", want: true},
		{name: "swapped whole digits", a: "1234.00", b: "1243.00", want: true},
		{name: "swapped cents", a: "12.34", b: "12.43", want: true},
		{name: "swapped across decimal point", a: "12.34", b: "13.24", want: true},
		{name: "identical amounts", a: "100.00", b: "100.00", want: false},
		{name: "dropped zero is not a transposition", a: "1000.00", b: "100.00", want: false},
		{name: "multiple of nine with different digits", a: "100.00", b: "109.00", want: false},
		{name: "not a multiple of nine", a: "1500.00", b: "1450.00", want: false},
		{name: "sign differs", a: "-54.00", b: "45.00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := decimal.RequireFromString(tt.a)
			b := decimal.RequireFromString(tt.b)
			assert.Equal(t, tt.want, IsTransposition(a, b))
			assert.Equal(t, IsTransposition(a, b), IsTransposition(b, a), "must be symmetric")
		})
	}
}

func TestIsTransposition_Symmetric(t *testing.T) {
	amounts := []string{"0.00", "9.00", "10.00", "19.00", "91.00", "45.00", "54.00", "100.00", "1000.00", "12.34", "21.34", "-12.43"}
	for _, x := range amounts {
		for _, y := range amounts {
			a := decimal.RequireFromString(x)
			b := decimal.RequireFromString(y)
			assert.Equal(t, IsTransposition(a, b), IsTransposition(b, a), "%s vs %s", x, y)
		}
	}
}

func TestAmountsAgree(t *testing.T) {
	base := decimal.RequireFromString("1000.00")

	assert.True(t, amountsAgree(base, decimal.RequireFromString("1000.00"), defaultTolerance))
	assert.True(t, amountsAgree(base, decimal.RequireFromString("1000.009"), defaultTolerance))
	assert.False(t, amountsAgree(base, decimal.RequireFromString("1000.01"), defaultTolerance), "tolerance is exclusive")
	assert.False(t, amountsAgree(base, decimal.RequireFromString("999.98"), defaultTolerance))
}

func TestReferencesOverlap(t *testing.T) {
	tests := []struct {
		invoice, description string
		want                 bool
	}{
		{"INV1", "INV1", true},
		{" inv-001 ", "Payment INV-001 fuel", true},
		{"Payment INV-001 fuel", "inv-001", true},
		{"INV1", "INV2", false},
		{"", "INV1", false},
		{"INV1", "   ", false},
		{"", "", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, referencesOverlap(tt.invoice, tt.description), "%q vs %q", tt.invoice, tt.description)
	}
}

func TestReferencesEqual(t *testing.T) {
	assert.True(t, referencesEqual(" INV2", "INV2 "))
	assert.False(t, referencesEqual("inv2", "INV2"), "comparison is case-sensitive")
	assert.False(t, referencesEqual("INV2", "Payment INV2"))
	assert.False(t, referencesEqual("", ""))
}

func TestDaysApart(t *testing.T) {
	days, ok := daysApart(day(1), day(1))
	assert.True(t, ok)
	assert.Equal(t, 0, days)

	days, ok = daysApart(day(1), day(3))
	assert.True(t, ok)
	assert.Equal(t, 2, days)

	days, ok = daysApart(day(3), day(1))
	assert.True(t, ok)
	assert.Equal(t, 2, days)

	halfDay := domain.NullDate{Time: day(1).Time.Add(12 * time.Hour), Valid: true}
	days, ok = daysApart(day(1), halfDay)
	assert.True(t, ok)
	assert.Equal(t, 1, days, "partial days round up")

	_, ok = daysApart(day(1), domain.NullDate{})
	assert.False(t, ok)
	_, ok = daysApart(domain.NullDate{}, day(1))
	assert.False(t, ok)
}
