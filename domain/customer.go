package domain

import "github.com/shopspring/decimal"

// Customer mirrors the remote API shape. No local write path populates it.
type Customer struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	Phone            string          `json:"phone,omitempty"`
	Email            string          `json:"email,omitempty"`
	Address          string          `json:"address,omitempty"`
	TotalPurchases   decimal.Decimal `json:"totalPurchases"`
	LastPurchaseDate string          `json:"lastPurchaseDate,omitempty"`
	CreatedAt        string          `json:"createdAt"`
}
