package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"inventtrack/m/domain"
	"inventtrack/m/internal/transform"
)

// ProductWriter persists one product. *repository.Repository satisfies it.
type ProductWriter interface {
	AddProduct(ctx context.Context, p domain.Product) (int64, error)
}

type Report struct {
	Inserted int
	Skipped  int
	Failed   int
}

// LoadProducts ingests the catalog at csvPath. The header names the columns:
// name,sku,category,mrp,costPrice,sellingPrice,stock,minStock,unit. Rows
// without a name are skipped; rows that fail validation or insert are logged
// and counted. A blank sku is generated.
func LoadProducts(ctx context.Context, w ProductWriter, csvPath string, now time.Time, logger *slog.Logger) (Report, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return Report{}, fmt.Errorf("seed: open %s: %w", csvPath, err)
	}
	defer file.Close()
	return Load(ctx, w, file, now, logger)
}

func Load(ctx context.Context, w ProductWriter, r io.Reader, now time.Time, logger *slog.Logger) (Report, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return Report{}, fmt.Errorf("seed: read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(col)] = i
	}
	if _, ok := index["name"]; !ok {
		return Report{}, errors.New("seed: header has no name column")
	}

	var report Report
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Warn("unable to read product row", slog.Int("line", line), slog.Any("error", err))
			report.Failed++
			continue
		}

		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		form := transform.ProductForm{
			Name:         field("name"),
			SKU:          field("sku"),
			Category:     field("category"),
			MRP:          field("mrp"),
			CostPrice:    field("costPrice"),
			SellingPrice: field("sellingPrice"),
			Stock:        field("stock"),
			MinStock:     field("minStock"),
			Unit:         field("unit"),
		}
		if form.Name == "" {
			report.Skipped++
			continue
		}
		if errs := transform.ValidateProductForm(form); !errs.OK() {
			logger.Warn("invalid product row", slog.Int("line", line), slog.Any("errors", map[string]string(errs)))
			report.Failed++
			continue
		}
		if _, err := w.AddProduct(ctx, transform.ProductFromForm(form, now)); err != nil {
			logger.Warn("unable to insert product", slog.String("name", form.Name), slog.Any("error", err))
			report.Failed++
			continue
		}
		report.Inserted++
	}

	logger.Info("seeded product catalog",
		slog.Int("inserted", report.Inserted),
		slog.Int("skipped", report.Skipped),
		slog.Int("failed", report.Failed),
	)
	return report, nil
}
