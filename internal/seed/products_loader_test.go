package seed_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventtrack/m/domain"
	"inventtrack/m/internal/seed"
)

type recorder struct {
	products []domain.Product
	failOn   string
}

func (r *recorder) AddProduct(_ context.Context, p domain.Product) (int64, error) {
	if p.Name == r.failOn {
		return 0, errors.New("constraint failed")
	}
	r.products = append(r.products, p)
	return int64(len(r.products)), nil
}

var now = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

func TestLoad(t *testing.T) {
	csv := strings.Join([]string{
		"name,sku,category,mrp,costPrice,sellingPrice,stock,minStock,unit",
		"Rice,SKU-ABC-000001,Grocery,60,45,55,10,2,kg",
		",SKU-ABC-000002,Grocery,1,1,1,1,1,kg",
		"Tea,,Beverages,240,150,220,25,5,box",
		"Salt,,Grocery,-3,1,1,1,1,kg",
		"Oil,,Grocery,185,140,170,12,6,bottle",
	}, "\n")
	w := &recorder{failOn: "Oil"}

	report, err := seed.Load(context.Background(), w, strings.NewReader(csv), now, nil)
	require.NoError(t, err)
	assert.Equal(t, seed.Report{Inserted: 2, Skipped: 1, Failed: 2}, report)

	require.Len(t, w.products, 2)
	assert.Equal(t, "SKU-ABC-000001", w.products[0].SKU)
	assert.Equal(t, int64(10), w.products[0].Stock)
	assert.True(t, w.products[0].IsActive)
	assert.Regexp(t, `^SKU-[0-9A-F]{3}-\d{6}$`, w.products[1].SKU)
}

func TestLoadRequiresNameColumn(t *testing.T) {
	_, err := seed.Load(context.Background(), &recorder{}, strings.NewReader("sku,unit\nA,kg\n"), now, nil)
	require.Error(t, err)
}

func TestLoadProductsBundledCatalog(t *testing.T) {
	w := &recorder{}
	report, err := seed.LoadProducts(context.Background(), w, filepath.Join("..", "..", "assets", "products.csv"), now, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, report.Inserted)

	_, err = seed.LoadProducts(context.Background(), w, "missing.csv", now, nil)
	require.Error(t, err)
}
