package domain

type Supplier struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name" validate:"required"`
	Email        string `db:"email" json:"email" validate:"omitempty,email"`
	Phone        string `db:"phone" json:"phone"`
	Address      string `db:"address" json:"address"`
	GST          string `db:"gst" json:"gst"`
	PaymentTerms string `db:"paymentTerms" json:"paymentTerms"`
}
