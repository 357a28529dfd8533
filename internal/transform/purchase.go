package transform

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"inventtrack/m/domain"
	"inventtrack/m/internal/format"
)

type PurchaseItemForm struct {
	ProductName string `json:"productName"`
	MRP         string `json:"mrp"`
	Quantity    string `json:"quantity"`
	CostPrice   string `json:"costPrice"`
	BatchNo     string `json:"batchNo"`
	ExpiryDate  string `json:"expiryDate"`
}

// Dirty reports whether any primary field has been filled in.
func (f PurchaseItemForm) Dirty() bool {
	return !isBlank(f.ProductName) || !isBlank(f.Quantity) || !isBlank(f.CostPrice)
}

func (f PurchaseItemForm) Line() Line {
	return Line{Quantity: f.Quantity, UnitPrice: f.CostPrice}
}

type PurchaseForm struct {
	SupplierName string             `json:"supplierName"`
	PurchaseDate string             `json:"purchaseDate"`
	PaymentMode  string             `json:"paymentMode"`
	PaidAmount   string             `json:"paidAmount"`
	Notes        string             `json:"notes"`
	Items        []PurchaseItemForm `json:"items"`
}

// DirtyItems returns the rows that will be validated and submitted.
func (f PurchaseForm) DirtyItems() []PurchaseItemForm {
	var out []PurchaseItemForm
	for _, item := range f.Items {
		if item.Dirty() {
			out = append(out, item)
		}
	}
	return out
}

func (f PurchaseForm) Total() decimal.Decimal {
	lines := make([]Line, 0, len(f.Items))
	for _, item := range f.DirtyItems() {
		lines = append(lines, item.Line())
	}
	return CalculateTotal(lines)
}

func (f PurchaseForm) Balance() Balance {
	return NewBalance(f.Total(), ParseAmount(f.PaidAmount), LabelExcess)
}

// ValidatePurchaseForm checks the header and every dirty row. Row indexes in
// the returned keys refer to positions in f.Items.
func ValidatePurchaseForm(f PurchaseForm) Errors {
	errs := Errors{}
	checkRequired(errs, "supplierName", f.SupplierName, "Supplier name")
	checkPaymentMode(errs, f.PaymentMode)
	checkPaid(errs, f.PaidAmount)
	checkDate(errs, "purchaseDate", f.PurchaseDate)

	for i, item := range f.Items {
		if !item.Dirty() {
			continue
		}
		checkRequired(errs, itemField("productName", i), item.ProductName, "Product name")
		checkPositive(errs, itemField("quantity", i), item.Quantity, "Quantity")
		checkPositive(errs, itemField("costPrice", i), item.CostPrice, "Cost price")
		checkOptionalAmount(errs, itemField("mrp", i), item.MRP, "MRP")
		checkDate(errs, itemField("expiryDate", i), item.ExpiryDate)
	}
	return errs
}

// BuildPurchase converts a validated form into a completed purchase.
func BuildPurchase(f PurchaseForm, now time.Time) domain.Purchase {
	stamp := format.Timestamp(now)
	dirty := f.DirtyItems()
	items := make([]domain.PurchaseItem, 0, len(dirty))
	for _, row := range dirty {
		item := domain.PurchaseItem{
			ProductName: strings.TrimSpace(row.ProductName),
			MRP:         ParseAmount(row.MRP),
			Quantity:    ParseAmount(row.Quantity),
			CostPrice:   ParseAmount(row.CostPrice),
			BatchNo:     strings.TrimSpace(row.BatchNo),
			TotalPrice:  row.Line().Total(),
		}
		if !isBlank(row.ExpiryDate) {
			expiry := stampOr(row.ExpiryDate, "")
			if expiry != "" {
				item.ExpiryDate = &expiry
			}
		}
		items = append(items, item)
	}

	total := f.Total()
	paid := ParseAmount(f.PaidAmount)
	return domain.Purchase{
		SupplierName:  strings.TrimSpace(f.SupplierName),
		PurchaseDate:  stampOr(f.PurchaseDate, stamp),
		PaymentMode:   domain.PaymentMode(f.PaymentMode),
		PaidAmount:    paid,
		TotalAmount:   total,
		BalanceAmount: total.Sub(paid),
		Notes:         strings.TrimSpace(f.Notes),
		Status:        domain.StatusCompleted,
		CreatedAt:     stamp,
		UpdatedAt:     stamp,
		Items:         items,
	}
}

// PurchaseToForm renders a stored purchase back into editable form fields.
func PurchaseToForm(p domain.Purchase) PurchaseForm {
	items := make([]PurchaseItemForm, 0, len(p.Items))
	for _, item := range p.Items {
		row := PurchaseItemForm{
			ProductName: item.ProductName,
			MRP:         item.MRP.String(),
			Quantity:    item.Quantity.String(),
			CostPrice:   item.CostPrice.String(),
			BatchNo:     item.BatchNo,
		}
		if item.ExpiryDate != nil {
			row.ExpiryDate = *item.ExpiryDate
		}
		items = append(items, row)
	}
	return PurchaseForm{
		SupplierName: p.SupplierName,
		PurchaseDate: p.PurchaseDate,
		PaymentMode:  string(p.PaymentMode),
		PaidAmount:   p.PaidAmount.String(),
		Notes:        p.Notes,
		Items:        items,
	}
}
