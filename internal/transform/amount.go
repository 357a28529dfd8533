// Package transform turns form input into domain records and computes the
// derived totals shown alongside the forms. Nothing here touches storage.
package transform

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	LabelExcess     = "Excess"
	LabelChange     = "Change"
	LabelBalanceDue = "Balance Due"
)

// ParseAmount reads a decimal form field. Blank or non-numeric input is zero.
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseCount reads an integer form field such as stock. A fractional value
// is truncated and anything unparseable is zero.
func ParseCount(s string) int64 {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return ParseAmount(s).IntPart()
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Line is one quantity and unit price pair as typed into a form.
type Line struct {
	Quantity  string
	UnitPrice string
}

func (l Line) Total() decimal.Decimal {
	return ParseAmount(l.Quantity).Mul(ParseAmount(l.UnitPrice))
}

// CalculateTotal is the exact sum of quantity times unit price.
func CalculateTotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Total())
	}
	return total
}

// Balance is what remains between the amount owed and the amount paid.
type Balance struct {
	Label string `json:"label"`
	// Amount is total minus paid and goes negative on overpayment.
	Amount    decimal.Decimal `json:"amount"`
	Magnitude decimal.Decimal `json:"magnitude"`
}

// NewBalance labels the balance overLabel when paid covers total and
// "Balance Due" otherwise.
func NewBalance(total, paid decimal.Decimal, overLabel string) Balance {
	amount := total.Sub(paid)
	label := LabelBalanceDue
	if paid.GreaterThanOrEqual(total) {
		label = overLabel
	}
	return Balance{Label: label, Amount: amount, Magnitude: amount.Abs()}
}
