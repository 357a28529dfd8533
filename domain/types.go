package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type PaymentMode string

const (
	PaymentCash         PaymentMode = "Cash"
	PaymentCard         PaymentMode = "Card"
	PaymentUPI          PaymentMode = "UPI"
	PaymentBankTransfer PaymentMode = "Bank Transfer"
	PaymentCheque       PaymentMode = "Cheque"
	PaymentCredit       PaymentMode = "Credit"
)

// PaymentModes lists the accepted payment modes in display order.
var PaymentModes = []PaymentMode{
	PaymentCash, PaymentCard, PaymentUPI, PaymentBankTransfer, PaymentCheque, PaymentCredit,
}

// Valid reports whether m is one of PaymentModes.
func (m PaymentMode) Valid() bool {
	for _, known := range PaymentModes {
		if m == known {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusDraft     Status = "Draft"
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
	StatusRefunded  Status = "Refunded"
)

// StringList is persisted as a JSON array in a single text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *StringList) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("domain: cannot scan %T into StringList", src)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, (*[]string)(l))
}
