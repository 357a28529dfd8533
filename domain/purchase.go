package domain

import "github.com/shopspring/decimal"

// Purchase is a purchase header. Items are owned by the purchase and have no
// lifecycle of their own.
type Purchase struct {
	ID            int64           `db:"id" json:"id"`
	SupplierName  string          `db:"supplierName" json:"supplierName" validate:"required"`
	SupplierID    *int64          `db:"supplierId" json:"supplierId"`
	PurchaseDate  string          `db:"purchaseDate" json:"purchaseDate"`
	PaymentMode   PaymentMode     `db:"paymentMode" json:"paymentMode" validate:"paymentmode"`
	PaidAmount    decimal.Decimal `db:"paidAmount" json:"paidAmount"`
	TotalAmount   decimal.Decimal `db:"totalAmount" json:"totalAmount"`
	BalanceAmount decimal.Decimal `db:"balanceAmount" json:"balanceAmount"`
	Notes         string          `db:"notes" json:"notes"`
	Status        Status          `db:"status" json:"status"`
	CreatedAt     string          `db:"createdAt" json:"createdAt"`
	UpdatedAt     string          `db:"updatedAt" json:"updatedAt"`
	CreatedBy     string          `db:"createdBy" json:"createdBy"`
	Items         []PurchaseItem  `db:"-" json:"items" validate:"dive"`
}

type PurchaseItem struct {
	ID          int64           `db:"id" json:"id"`
	PurchaseID  int64           `db:"purchaseId" json:"purchaseId"`
	ProductID   *int64          `db:"productId" json:"productId"`
	ProductName string          `db:"productName" json:"productName" validate:"required"`
	MRP         decimal.Decimal `db:"mrp" json:"mrp"`
	Quantity    decimal.Decimal `db:"quantity" json:"quantity"`
	CostPrice   decimal.Decimal `db:"costPrice" json:"costPrice"`
	BatchNo     string          `db:"batchNo" json:"batchNo"`
	ExpiryDate  *string         `db:"expiryDate" json:"expiryDate"`
	TotalPrice  decimal.Decimal `db:"totalPrice" json:"totalPrice"`
}

// OccurredAt is the business date of the purchase.
func (p Purchase) OccurredAt() string { return p.PurchaseDate }

func (p Purchase) Amount() decimal.Decimal { return p.TotalAmount }
