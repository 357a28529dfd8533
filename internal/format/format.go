// Package format holds display formatting, identifier generation and stock
// classification helpers shared by the transforms and the HTTP surface.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// TimestampLayout is the persisted form of every date field.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

var inrPrinter = message.NewPrinter(language.MustParse("en-IN"))

// Currency renders amount as Indian rupees with at most two fraction digits.
func Currency(amount decimal.Decimal) string {
	value := amount.Round(2).InexactFloat64()
	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}
	return sign + "₹" + inrPrinter.Sprint(number.Decimal(value, number.MaxFractionDigits(2)))
}

func Date(t time.Time) string {
	return t.Format("02/01/2006")
}

func DateTime(t time.Time) string {
	return t.Format("02/01/2006, 15:04")
}

// Timestamp returns t in UTC with millisecond precision.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp accepts the persisted layout, RFC 3339 and plain dates.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{TimestampLayout, time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("format: unrecognised timestamp %q", s)
}

// GenerateSKU returns SKU-XXX-NNNNNN where NNNNNN are the last six digits of
// the millisecond clock.
func GenerateSKU(now time.Time) string {
	return fmt.Sprintf("SKU-%s-%s", randomTag(3), clockSuffix(now))
}

// GenerateOrderID returns ORD-XXNNNNNN.
func GenerateOrderID(now time.Time) string {
	return fmt.Sprintf("ORD-%s%s", randomTag(2), clockSuffix(now))
}

func clockSuffix(now time.Time) string {
	ms := fmt.Sprintf("%06d", now.UnixMilli())
	return ms[len(ms)-6:]
}

func randomTag(n int) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(id[:n])
}
