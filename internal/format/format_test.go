package format

import (
	"regexp"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockStatusBoundaries(t *testing.T) {
	cases := []struct {
		name     string
		stock    int64
		minStock int64
		want     Status
	}{
		{"below minimum", 3, 5, StockLow},
		{"at minimum", 5, 5, StockLow},
		{"just above minimum", 6, 5, StockMedium},
		{"at double minimum", 10, 5, StockMedium},
		{"above double minimum", 11, 5, StockGood},
		{"zero minimum empty shelf", 0, 0, StockLow},
		{"zero minimum with stock", 1, 0, StockGood},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StockStatus(tc.stock, tc.minStock))
		})
	}
}

func TestStockColor(t *testing.T) {
	assert.Equal(t, "#EF4444", StockColor(StockLow))
	assert.Equal(t, "#10B981", StockColor(StockGood))
	assert.Equal(t, "#6B7280", StockColor(Status("unknown")))
}

func TestGeneratedIdentifiers(t *testing.T) {
	now := time.UnixMilli(1760600123456)

	sku := GenerateSKU(now)
	assert.Regexp(t, regexp.MustCompile(`^SKU-[0-9A-F]{3}-123456$`), sku)

	order := GenerateOrderID(now)
	assert.Regexp(t, regexp.MustCompile(`^ORD-[0-9A-F]{2}123456$`), order)
}

func TestTimestampRoundTrip(t *testing.T) {
	in := time.Date(2026, 10, 16, 9, 30, 15, 250_000_000, time.UTC)
	s := Timestamp(in)
	assert.Equal(t, "2026-10-16T09:30:15.250Z", s)

	out, err := ParseTimestamp(s)
	require.NoError(t, err)
	assert.True(t, in.Equal(out))

	day, err := ParseTimestamp("2026-10-16")
	require.NoError(t, err)
	assert.Equal(t, 16, day.Day())

	_, err = ParseTimestamp("yesterday")
	assert.Error(t, err)
}

func TestDateFormatting(t *testing.T) {
	at := time.Date(2026, 3, 7, 14, 5, 0, 0, time.UTC)
	assert.Equal(t, "07/03/2026", Date(at))
	assert.Equal(t, "07/03/2026, 14:05", DateTime(at))
}

func TestCurrency(t *testing.T) {
	assert.Equal(t, "₹950", Currency(decimal.NewFromInt(950)))
	assert.Equal(t, "₹12.5", Currency(decimal.RequireFromString("12.50")))
	assert.Equal(t, "-₹40", Currency(decimal.NewFromInt(-40)))
	assert.Equal(t, "₹1,234.5", Currency(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "₹12,34,567", Currency(decimal.NewFromInt(1234567)))
}

func TestValidEmailAndPhone(t *testing.T) {
	assert.True(t, ValidEmail("owner@shop.in"))
	assert.False(t, ValidEmail("owner@shop"))
	assert.False(t, ValidEmail("owner shop@x.in"))
	assert.False(t, ValidEmail("asha@mail..com"))

	assert.True(t, ValidPhone("+91 98765-43210"))
	assert.True(t, ValidPhone("(98765) 43210"))
	assert.False(t, ValidPhone("0123"))
	assert.False(t, ValidPhone("12ab"))
}

func TestDebounceRunsOnceAfterBurst(t *testing.T) {
	var calls atomic.Int32
	fn := Debounce(func() { calls.Add(1) }, 20*time.Millisecond)

	for i := 0; i < 5; i++ {
		fn()
	}
	assert.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestThrottleDropsCallsInsideWindow(t *testing.T) {
	var calls atomic.Int32
	fn := Throttle(func() { calls.Add(1) }, 50*time.Millisecond)

	fn()
	fn()
	fn()
	assert.Equal(t, int32(1), calls.Load())

	assert.Eventually(t, func() bool {
		fn()
		return calls.Load() == 2
	}, time.Second, 10*time.Millisecond)
}
