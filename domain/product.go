package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID           int64           `db:"id" json:"id"`
	Name         string          `db:"name" json:"name" validate:"required"`
	SKU          string          `db:"sku" json:"sku" validate:"required"`
	Category     string          `db:"category" json:"category"`
	Description  string          `db:"description" json:"description"`
	MRP          decimal.Decimal `db:"mrp" json:"mrp"`
	CostPrice    decimal.Decimal `db:"costPrice" json:"costPrice"`
	SellingPrice decimal.Decimal `db:"sellingPrice" json:"sellingPrice"`
	Stock        int64           `db:"stock" json:"stock"`
	MinStock     int64           `db:"minStock" json:"minStock" validate:"gte=0"`
	MaxStock     int64           `db:"maxStock" json:"maxStock" validate:"gte=0"`
	Unit         string          `db:"unit" json:"unit"`
	Barcode      string          `db:"barcode" json:"barcode"`
	Images       StringList      `db:"images" json:"images"`
	SupplierID   *int64          `db:"supplierId" json:"supplierId"`
	CreatedAt    string          `db:"createdAt" json:"createdAt"`
	UpdatedAt    string          `db:"updatedAt" json:"updatedAt"`
	IsActive     bool            `db:"isActive" json:"isActive"`
}
