package transform

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"inventtrack/m/domain"
	"inventtrack/m/internal/format"
)

// Errors maps a form field path to a message, e.g. "quantity_2".
type Errors map[string]string

// Add keeps the first message recorded for a field.
func (e Errors) Add(field, msg string) {
	if _, exists := e[field]; !exists {
		e[field] = msg
	}
}

func (e Errors) OK() bool { return len(e) == 0 }

func itemField(name string, index int) string {
	return fmt.Sprintf("%s_%d", name, index)
}

func checkRequired(errs Errors, field, value, label string) {
	if isBlank(value) {
		errs.Add(field, label+" is required")
	}
}

// checkPositive validates a required numeric field that must exceed zero.
func checkPositive(errs Errors, field, value, label string) {
	switch {
	case isBlank(value):
		errs.Add(field, label+" is required")
	case !ParseAmount(value).IsPositive():
		errs.Add(field, label+" must be greater than 0")
	}
}

func checkPaid(errs Errors, value string) {
	if isBlank(value) {
		errs.Add("paidAmount", "Paid Amount is required")
		return
	}
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil || d.IsNegative() {
		errs.Add("paidAmount", "Paid Amount must be a valid number")
	}
}

func checkOptionalAmount(errs Errors, field, value, label string) {
	if isBlank(value) {
		return
	}
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil || d.IsNegative() {
		errs.Add(field, label+" must be a valid number")
	}
}

func checkPaymentMode(errs Errors, mode string) {
	switch {
	case isBlank(mode):
		errs.Add("paymentMode", "Payment mode is required")
	case !domain.PaymentMode(mode).Valid():
		errs.Add("paymentMode", "Payment mode is not supported")
	}
}

func checkDate(errs Errors, field, value string) {
	if isBlank(value) {
		return
	}
	if _, err := format.ParseTimestamp(value); err != nil {
		errs.Add(field, "Invalid date")
	}
}

// stampOr returns the normalized form of value, or now when value is blank
// or unparseable.
func stampOr(value string, now string) string {
	if isBlank(value) {
		return now
	}
	t, err := format.ParseTimestamp(value)
	if err != nil {
		return now
	}
	return format.Timestamp(t)
}
