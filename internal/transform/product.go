package transform

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"inventtrack/m/domain"
	"inventtrack/m/internal/format"
)

// ProductListItem is the row shown in inventory listings.
type ProductListItem struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Category     string          `json:"category"`
	Stock        int64           `json:"stock"`
	MinStock     int64           `json:"minStock"`
	Price        decimal.Decimal `json:"price"`
	DisplayPrice string          `json:"displayPrice"`
	Status       format.Status   `json:"status"`
	Color        string          `json:"color"`
	LastUpdated  string          `json:"lastUpdated"`
}

func ToListItem(p domain.Product) ProductListItem {
	status := format.StockStatus(p.Stock, p.MinStock)
	item := ProductListItem{
		ID:           p.ID,
		Name:         p.Name,
		SKU:          p.SKU,
		Category:     p.Category,
		Stock:        p.Stock,
		MinStock:     p.MinStock,
		Price:        p.SellingPrice,
		DisplayPrice: format.Currency(p.SellingPrice),
		Status:       status,
		Color:        format.StockColor(status),
	}
	if t, err := format.ParseTimestamp(p.UpdatedAt); err == nil {
		item.LastUpdated = format.Date(t)
	}
	return item
}

type ProductForm struct {
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	MRP          string `json:"mrp"`
	CostPrice    string `json:"costPrice"`
	SellingPrice string `json:"sellingPrice"`
	Stock        string `json:"stock"`
	MinStock     string `json:"minStock"`
	Unit         string `json:"unit"`
	Barcode      string `json:"barcode"`
}

func ProductToForm(p domain.Product) ProductForm {
	return ProductForm{
		Name:         p.Name,
		SKU:          p.SKU,
		Category:     p.Category,
		Description:  p.Description,
		MRP:          p.MRP.String(),
		CostPrice:    p.CostPrice.String(),
		SellingPrice: p.SellingPrice.String(),
		Stock:        strconv.FormatInt(p.Stock, 10),
		MinStock:     strconv.FormatInt(p.MinStock, 10),
		Unit:         p.Unit,
		Barcode:      p.Barcode,
	}
}

func ValidateProductForm(f ProductForm) Errors {
	errs := Errors{}
	checkRequired(errs, "name", f.Name, "Product name")
	checkOptionalAmount(errs, "mrp", f.MRP, "MRP")
	checkOptionalAmount(errs, "costPrice", f.CostPrice, "Cost price")
	checkOptionalAmount(errs, "sellingPrice", f.SellingPrice, "Selling price")
	checkOptionalAmount(errs, "stock", f.Stock, "Stock")
	checkOptionalAmount(errs, "minStock", f.MinStock, "Minimum stock")
	return errs
}

// ProductFromForm builds an active product. A blank SKU is generated.
func ProductFromForm(f ProductForm, now time.Time) domain.Product {
	sku := strings.TrimSpace(f.SKU)
	if sku == "" {
		sku = format.GenerateSKU(now)
	}
	return domain.Product{
		Name:         strings.TrimSpace(f.Name),
		SKU:          sku,
		Category:     strings.TrimSpace(f.Category),
		Description:  strings.TrimSpace(f.Description),
		MRP:          ParseAmount(f.MRP),
		CostPrice:    ParseAmount(f.CostPrice),
		SellingPrice: ParseAmount(f.SellingPrice),
		Stock:        ParseCount(f.Stock),
		MinStock:     ParseCount(f.MinStock),
		Unit:         strings.TrimSpace(f.Unit),
		Barcode:      strings.TrimSpace(f.Barcode),
		Images:       domain.StringList{},
		IsActive:     true,
	}
}

type Metrics struct {
	TotalProducts       int             `json:"totalProducts"`
	TotalValue          decimal.Decimal `json:"totalValue"`
	TotalValueDisplay   string          `json:"totalValueDisplay"`
	LowStockCount       int             `json:"lowStockCount"`
	OutOfStockCount     int             `json:"outOfStockCount"`
	AveragePrice        decimal.Decimal `json:"averagePrice"`
	AveragePriceDisplay string          `json:"averagePriceDisplay"`
}

// CalculateMetrics values stock at cost and averages the selling price.
func CalculateMetrics(products []domain.Product) Metrics {
	m := Metrics{TotalProducts: len(products), TotalValue: decimal.Zero, AveragePrice: decimal.Zero}
	priceSum := decimal.Zero
	for _, p := range products {
		m.TotalValue = m.TotalValue.Add(p.CostPrice.Mul(decimal.NewFromInt(p.Stock)))
		priceSum = priceSum.Add(p.SellingPrice)
		if format.StockStatus(p.Stock, p.MinStock) == format.StockLow {
			m.LowStockCount++
		}
		if p.Stock == 0 {
			m.OutOfStockCount++
		}
	}
	if len(products) > 0 {
		m.AveragePrice = priceSum.Div(decimal.NewFromInt(int64(len(products)))).Round(2)
	}
	m.TotalValueDisplay = format.Currency(m.TotalValue)
	m.AveragePriceDisplay = format.Currency(m.AveragePrice)
	return m
}
