package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"inventtrack/m/internal/format"
)

// Entry is a dated money movement such as a purchase or a sale.
type Entry interface {
	OccurredAt() string
	Amount() decimal.Decimal
}

type Range struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// RangeStats counts and sums the records whose date falls on a day from start
// through end, both inclusive. A zero start or end leaves that side open.
// Records with an unreadable date are only counted by fully open ranges.
func RangeStats[T Entry](records []T, start, end time.Time) Range {
	var from, until time.Time
	if !start.IsZero() {
		from = startOfDay(start)
	}
	if !end.IsZero() {
		until = startOfDay(end).AddDate(0, 0, 1)
	}

	out := Range{Total: decimal.Zero}
	for _, rec := range records {
		if !from.IsZero() || !until.IsZero() {
			at, err := format.ParseTimestamp(rec.OccurredAt())
			if err != nil {
				continue
			}
			if !from.IsZero() && at.Before(from) {
				continue
			}
			if !until.IsZero() && !at.Before(until) {
				continue
			}
		}
		out.Count++
		out.Total = out.Total.Add(rec.Amount())
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
