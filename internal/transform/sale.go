package transform

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"inventtrack/m/domain"
	"inventtrack/m/internal/format"
)

type SaleItemForm struct {
	ProductName string `json:"productName"`
	SKU         string `json:"sku"`
	Quantity    string `json:"quantity"`
	Price       string `json:"price"`
}

func (f SaleItemForm) Dirty() bool {
	return !isBlank(f.ProductName) || !isBlank(f.Quantity) || !isBlank(f.Price)
}

func (f SaleItemForm) Line() Line {
	return Line{Quantity: f.Quantity, UnitPrice: f.Price}
}

type SaleForm struct {
	CustomerName  string         `json:"customerName"`
	CustomerPhone string         `json:"customerPhone"`
	CustomerEmail string         `json:"customerEmail"`
	SaleDate      string         `json:"saleDate"`
	PaymentMode   string         `json:"paymentMode"`
	PaidAmount    string         `json:"paidAmount"`
	Discount      string         `json:"discount"`
	Tax           string         `json:"tax"`
	Notes         string         `json:"notes"`
	Items         []SaleItemForm `json:"items"`
}

func (f SaleForm) DirtyItems() []SaleItemForm {
	var out []SaleItemForm
	for _, item := range f.Items {
		if item.Dirty() {
			out = append(out, item)
		}
	}
	return out
}

type SaleTotals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeSaleTotals returns subtotal - discount + tax. Blank discount and tax
// count as zero.
func ComputeSaleTotals(f SaleForm) SaleTotals {
	lines := make([]Line, 0, len(f.Items))
	for _, item := range f.DirtyItems() {
		lines = append(lines, item.Line())
	}
	t := SaleTotals{
		Subtotal: CalculateTotal(lines),
		Discount: ParseAmount(f.Discount),
		Tax:      ParseAmount(f.Tax),
	}
	t.Total = t.Subtotal.Sub(t.Discount).Add(t.Tax)
	return t
}

func (f SaleForm) Balance() Balance {
	return NewBalance(ComputeSaleTotals(f).Total, ParseAmount(f.PaidAmount), LabelChange)
}

func ValidateSaleForm(f SaleForm) Errors {
	errs := Errors{}
	checkRequired(errs, "customerName", f.CustomerName, "Customer name")
	checkPaymentMode(errs, f.PaymentMode)
	checkPaid(errs, f.PaidAmount)
	checkOptionalAmount(errs, "discount", f.Discount, "Discount")
	checkOptionalAmount(errs, "tax", f.Tax, "Tax")
	checkDate(errs, "saleDate", f.SaleDate)
	if !isBlank(f.CustomerEmail) && !format.ValidEmail(strings.TrimSpace(f.CustomerEmail)) {
		errs.Add("customerEmail", "Enter a valid email address")
	}
	if !isBlank(f.CustomerPhone) && !format.ValidPhone(f.CustomerPhone) {
		errs.Add("customerPhone", "Enter a valid phone number")
	}

	for i, item := range f.Items {
		if !item.Dirty() {
			continue
		}
		checkRequired(errs, itemField("productName", i), item.ProductName, "Product name")
		checkPositive(errs, itemField("quantity", i), item.Quantity, "Quantity")
		checkPositive(errs, itemField("price", i), item.Price, "Price")
	}
	return errs
}

// BuildSale converts a validated form into a sale. It is Completed when the
// paid amount covers the total and Pending otherwise.
func BuildSale(f SaleForm, now time.Time, orderID string) domain.Sale {
	stamp := format.Timestamp(now)
	dirty := f.DirtyItems()
	items := make([]domain.SaleItem, 0, len(dirty))
	for _, row := range dirty {
		items = append(items, domain.SaleItem{
			ProductName: strings.TrimSpace(row.ProductName),
			SKU:         strings.TrimSpace(row.SKU),
			Quantity:    ParseAmount(row.Quantity),
			UnitPrice:   ParseAmount(row.Price),
			Discount:    decimal.Zero,
			TotalPrice:  row.Line().Total(),
		})
	}

	totals := ComputeSaleTotals(f)
	paid := ParseAmount(f.PaidAmount)
	status := domain.StatusPending
	if paid.GreaterThanOrEqual(totals.Total) {
		status = domain.StatusCompleted
	}
	return domain.Sale{
		OrderID:       orderID,
		CustomerName:  strings.TrimSpace(f.CustomerName),
		CustomerPhone: strings.TrimSpace(f.CustomerPhone),
		CustomerEmail: strings.TrimSpace(f.CustomerEmail),
		Subtotal:      totals.Subtotal,
		Discount:      totals.Discount,
		Tax:           totals.Tax,
		TotalAmount:   totals.Total,
		PaidAmount:    paid,
		BalanceAmount: totals.Total.Sub(paid),
		PaymentMode:   domain.PaymentMode(f.PaymentMode),
		Status:        status,
		SaleDate:      stampOr(f.SaleDate, stamp),
		CreatedAt:     stamp,
		UpdatedAt:     stamp,
		Notes:         strings.TrimSpace(f.Notes),
		Items:         items,
	}
}
