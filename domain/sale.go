package domain

import "github.com/shopspring/decimal"

type Sale struct {
	ID            int64           `db:"id" json:"id"`
	OrderID       string          `db:"orderId" json:"orderId" validate:"required"`
	CustomerID    *int64          `db:"customerId" json:"customerId"`
	CustomerName  string          `db:"customerName" json:"customerName" validate:"required"`
	CustomerPhone string          `db:"customerPhone" json:"customerPhone"`
	CustomerEmail string          `db:"customerEmail" json:"customerEmail" validate:"omitempty,email"`
	Subtotal      decimal.Decimal `db:"subtotal" json:"subtotal"`
	Discount      decimal.Decimal `db:"discount" json:"discount"`
	Tax           decimal.Decimal `db:"tax" json:"tax"`
	TotalAmount   decimal.Decimal `db:"totalAmount" json:"totalAmount"`
	PaidAmount    decimal.Decimal `db:"paidAmount" json:"paidAmount"`
	BalanceAmount decimal.Decimal `db:"balanceAmount" json:"balanceAmount"`
	PaymentMode   PaymentMode     `db:"paymentMode" json:"paymentMode" validate:"paymentmode"`
	Status        Status          `db:"status" json:"status"`
	SaleDate      string          `db:"saleDate" json:"saleDate"`
	CreatedAt     string          `db:"createdAt" json:"createdAt"`
	UpdatedAt     string          `db:"updatedAt" json:"updatedAt"`
	CreatedBy     string          `db:"createdBy" json:"createdBy"`
	Notes         string          `db:"notes" json:"notes"`
	Items         []SaleItem      `db:"-" json:"items" validate:"dive"`
}

type SaleItem struct {
	ID          int64           `db:"id" json:"id"`
	SaleID      int64           `db:"saleId" json:"saleId"`
	ProductID   *int64          `db:"productId" json:"productId"`
	ProductName string          `db:"productName" json:"productName" validate:"required"`
	SKU         string          `db:"sku" json:"sku"`
	Quantity    decimal.Decimal `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unitPrice" json:"unitPrice"`
	Discount    decimal.Decimal `db:"discount" json:"discount"`
	TotalPrice  decimal.Decimal `db:"totalPrice" json:"totalPrice"`
}

func (s Sale) OccurredAt() string { return s.SaleDate }

func (s Sale) Amount() decimal.Decimal { return s.TotalAmount }
