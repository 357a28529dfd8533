package store

import "fmt"

type Op int

const (
	OpUnknown Op = iota
	InsertProduct
	ListProducts
	InsertSupplier
	ListSuppliers
	InsertPurchase
	ListPurchases
	InsertPurchaseItem
	ListPurchaseItems
	InsertSale
	ListSales
	InsertSaleItem
	ListSaleItems
)

var opNames = map[Op]string{
	InsertProduct:      "InsertProduct",
	ListProducts:       "ListProducts",
	InsertSupplier:     "InsertSupplier",
	ListSuppliers:      "ListSuppliers",
	InsertPurchase:     "InsertPurchase",
	ListPurchases:      "ListPurchases",
	InsertPurchaseItem: "InsertPurchaseItem",
	ListPurchaseItems:  "ListPurchaseItems",
	InsertSale:         "InsertSale",
	ListSales:          "ListSales",
	InsertSaleItem:     "InsertSaleItem",
	ListSaleItems:      "ListSaleItems",
}

func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Command is one unit of work for a Handle.
//
// Insert ops carry the domain value in Record (domain.Product,
// domain.PurchaseItem, ...). Item list ops filter by Parent when it is
// non-zero and return every item otherwise.
type Command struct {
	Op     Op
	Record any
	Parent int64
}

// Result holds LastInsertID for inserts and Rows for lists. Rows is a typed
// slice such as []domain.Sale.
type Result struct {
	LastInsertID int64
	Rows         any
}

func Insert(op Op, record any) Command {
	return Command{Op: op, Record: record}
}

func List(op Op) Command {
	return Command{Op: op}
}

func ListChildren(op Op, parent int64) Command {
	return Command{Op: op, Parent: parent}
}

func unsupported(cmd Command) error {
	if cmd.Record != nil {
		return fmt.Errorf("%w: %s with %T", ErrUnsupportedOperation, cmd.Op, cmd.Record)
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedOperation, cmd.Op)
}
