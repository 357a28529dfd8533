// Package dashboard aggregates the stored records into headline numbers.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"inventtrack/m/domain"
	"inventtrack/m/internal/format"
)

// Reader is the subset of the repository the dashboard reads from.
type Reader interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
	ListPurchases(ctx context.Context) ([]domain.Purchase, error)
	ListSales(ctx context.Context) ([]domain.Sale, error)
}

type Stats struct {
	ProductCount     int             `json:"productCount"`
	LowStockCount    int             `json:"lowStockCount"`
	PurchaseAmount   decimal.Decimal `json:"purchaseAmount"`
	SalesAmount      decimal.Decimal `json:"salesAmount"`
	OrderCount       int             `json:"orderCount"`
	TodaySalesCount  int             `json:"todaySalesCount"`
	TodaySalesAmount decimal.Decimal `json:"todaySalesAmount"`
	Display          Display         `json:"display"`
}

// Display holds the rupee-formatted amounts shown on the dashboard cards.
type Display struct {
	PurchaseAmount   string `json:"purchaseAmount"`
	SalesAmount      string `json:"salesAmount"`
	TodaySalesAmount string `json:"todaySalesAmount"`
	AsOf             string `json:"asOf"`
}

// Load reads products, purchases and sales concurrently. Today is the
// calendar day of now in now's location.
func Load(ctx context.Context, r Reader, now time.Time) (Stats, error) {
	var (
		products  []domain.Product
		purchases []domain.Purchase
		sales     []domain.Sale
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = r.ListProducts(gctx)
		return err
	})
	g.Go(func() (err error) {
		purchases, err = r.ListPurchases(gctx)
		return err
	})
	g.Go(func() (err error) {
		sales, err = r.ListSales(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Stats{}, fmt.Errorf("dashboard: load: %w", err)
	}

	stats := Stats{
		ProductCount: len(products),
		OrderCount:   len(purchases) + len(sales),
	}
	for _, p := range products {
		if format.StockStatus(p.Stock, p.MinStock) == format.StockLow {
			stats.LowStockCount++
		}
	}
	stats.PurchaseAmount = RangeStats(purchases, time.Time{}, time.Time{}).Total
	stats.SalesAmount = RangeStats(sales, time.Time{}, time.Time{}).Total

	today := RangeStats(sales, now, now)
	stats.TodaySalesCount = today.Count
	stats.TodaySalesAmount = today.Total
	stats.Display = Display{
		PurchaseAmount:   format.Currency(stats.PurchaseAmount),
		SalesAmount:      format.Currency(stats.SalesAmount),
		TodaySalesAmount: format.Currency(stats.TodaySalesAmount),
		AsOf:             format.DateTime(now),
	}
	return stats, nil
}

// Data is everything the data viewer lists.
type Data struct {
	Products  []domain.Product  `json:"products"`
	Suppliers []domain.Supplier `json:"suppliers"`
	Purchases []domain.Purchase `json:"purchases"`
	Sales     []domain.Sale     `json:"sales"`
}

func Snapshot(ctx context.Context, r Reader) (Data, error) {
	var data Data
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		data.Products, err = r.ListProducts(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Suppliers, err = r.ListSuppliers(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Purchases, err = r.ListPurchases(gctx)
		return err
	})
	g.Go(func() (err error) {
		data.Sales, err = r.ListSales(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Data{}, fmt.Errorf("dashboard: snapshot: %w", err)
	}
	return data, nil
}
