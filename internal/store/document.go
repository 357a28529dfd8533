package store

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"inventtrack/m/domain"
	"inventtrack/m/internal/migrations"
	"inventtrack/m/internal/store/kv"
)

const driverDocument = "document"

// DefaultPrefix namespaces the document blobs.
const DefaultPrefix = "inventtrack_"

// Document keeps each table as one JSON array under <prefix><table>. Every
// read-modify-write runs under a single mutex.
type Document struct {
	kv     kv.Store
	prefix string
	mu     sync.Mutex
	opts   options
}

func NewDocument(backend kv.Store, prefix string, opts ...Option) *Document {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Document{kv: backend, prefix: prefix, opts: buildOptions(opts)}
}

func (d *Document) key(table string) string {
	return d.prefix + table
}

// Init writes an empty array for every table key that does not exist yet.
func (d *Document) Init(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	missing := make(map[string][]byte)
	for _, table := range migrations.Tables {
		_, err := d.kv.Get(ctx, d.key(table))
		if errors.Is(err, kv.ErrNotFound) {
			missing[d.key(table)] = []byte("[]")
			continue
		}
		if err != nil {
			return fmt.Errorf("store: document: init: %w", err)
		}
	}
	if len(missing) > 0 {
		if err := d.kv.SetMulti(ctx, missing); err != nil {
			return fmt.Errorf("store: document: init: %w", err)
		}
	}
	d.opts.logger.Info("store ready", slog.String("driver", driverDocument), slog.Int("created", len(missing)))
	return nil
}

func (d *Document) Handle(ctx context.Context) (Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &documentHandle{doc: d}, nil
}

func (d *Document) Close() error {
	return d.kv.Close()
}

type documentHandle struct {
	doc *Document
	// staged is non-nil inside WithTx and holds the blobs written so far.
	staged map[string][]byte
}

func (h *documentHandle) inTx() bool { return h.staged != nil }

func (h *documentHandle) Execute(ctx context.Context, cmd Command) (Result, error) {
	if !h.inTx() {
		h.doc.mu.Lock()
		defer h.doc.mu.Unlock()
	}
	res, err := h.execute(ctx, cmd)
	h.doc.opts.observe(driverDocument, cmd.Op, err)
	return res, err
}

func (h *documentHandle) execute(ctx context.Context, cmd Command) (Result, error) {
	switch cmd.Op {
	case InsertProduct:
		rec, ok := cmd.Record.(domain.Product)
		if !ok {
			return Result{}, unsupported(cmd)
		}
		return productsTable.insert(ctx, h, rec)
	case InsertSupplier:
		rec, ok := cmd.Record.(domain.Supplier)
		if !ok {
			return Result{}, unsupported(cmd)
		}
		return suppliersTable.insert(ctx, h, rec)
	case InsertPurchase:
		rec, ok := cmd.Record.(domain.Purchase)
		if !ok {
			return Result{}, unsupported(cmd)
		}
		rec.Items = nil
		return purchasesTable.insert(ctx, h, rec)
	case InsertPurchaseItem:
		rec, ok := cmd.Record.(domain.PurchaseItem)
		if !ok {
			return Result{}, unsupported(cmd)
		}
		return purchaseItemsTable.insert(ctx, h, rec)
	case InsertSale:
		rec, ok := cmd.Record.(domain.Sale)
		if !ok {
			return Result{}, unsupported(cmd)
		}
		rec.Items = nil
		return salesTable.insert(ctx, h, rec)
	case InsertSaleItem:
		rec, ok := cmd.Record.(domain.SaleItem)
		if !ok {
			return Result{}, unsupported(cmd)
		}
		return saleItemsTable.insert(ctx, h, rec)
	case ListProducts:
		return productsTable.list(ctx, h, 0)
	case ListSuppliers:
		return suppliersTable.list(ctx, h, 0)
	case ListPurchases:
		return purchasesTable.list(ctx, h, 0)
	case ListPurchaseItems:
		return purchaseItemsTable.list(ctx, h, cmd.Parent)
	case ListSales:
		return salesTable.list(ctx, h, 0)
	case ListSaleItems:
		return saleItemsTable.list(ctx, h, cmd.Parent)
	default:
		return Result{}, unsupported(cmd)
	}
}

func (h *documentHandle) read(ctx context.Context, table string) ([]byte, error) {
	key := h.doc.key(table)
	if data, ok := h.staged[key]; ok {
		return data, nil
	}
	data, err := h.doc.kv.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return []byte("[]"), nil
	}
	return data, err
}

func (h *documentHandle) write(ctx context.Context, table string, data []byte) error {
	key := h.doc.key(table)
	if h.inTx() {
		h.staged[key] = data
		return nil
	}
	return h.doc.kv.Set(ctx, key, data)
}

// WithTx holds the store mutex for the whole of fn and commits every blob
// fn touched in one SetMulti.
func (h *documentHandle) WithTx(ctx context.Context, fn func(Handle) error) error {
	if h.inTx() {
		return fn(h)
	}
	h.doc.mu.Lock()
	defer h.doc.mu.Unlock()

	tx := &documentHandle{doc: h.doc, staged: make(map[string][]byte)}
	if err := fn(tx); err != nil {
		return err
	}
	if len(tx.staged) == 0 {
		return nil
	}
	if err := h.doc.kv.SetMulti(ctx, tx.staged); err != nil {
		return fmt.Errorf("store: document: commit: %w", err)
	}
	return nil
}

// table describes how one record type is keyed, ordered and filtered.
type table[T any] struct {
	name   string
	id     func(T) int64
	setID  func(*T, int64)
	parent func(T) int64
	order  func(a, b T) int
}

func (t table[T]) load(ctx context.Context, h *documentHandle) ([]T, error) {
	data, err := h.read(ctx, t.name)
	if err != nil {
		return nil, fmt.Errorf("store: document: read %s: %w", t.name, err)
	}
	var rows []T
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("store: document: decode %s: %w", t.name, err)
	}
	return rows, nil
}

func (t table[T]) insert(ctx context.Context, h *documentHandle, rec T) (Result, error) {
	rows, err := t.load(ctx, h)
	if err != nil {
		return Result{}, err
	}
	var next int64 = 1
	for _, row := range rows {
		if id := t.id(row); id >= next {
			next = id + 1
		}
	}
	t.setID(&rec, next)
	rows = append(rows, rec)

	data, err := json.Marshal(rows)
	if err != nil {
		return Result{}, fmt.Errorf("store: document: encode %s: %w", t.name, err)
	}
	if err := h.write(ctx, t.name, data); err != nil {
		return Result{}, fmt.Errorf("store: document: write %s: %w", t.name, err)
	}
	return Result{LastInsertID: next}, nil
}

func (t table[T]) list(ctx context.Context, h *documentHandle, parent int64) (Result, error) {
	rows, err := t.load(ctx, h)
	if err != nil {
		return Result{}, err
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if parent != 0 && t.parent != nil && t.parent(row) != parent {
			continue
		}
		out = append(out, row)
	}
	slices.SortStableFunc(out, t.order)
	return Result{Rows: out}, nil
}

var (
	productsTable = table[domain.Product]{
		name:  "products",
		id:    func(p domain.Product) int64 { return p.ID },
		setID: func(p *domain.Product, id int64) { p.ID = id },
		order: func(a, b domain.Product) int {
			return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
		},
	}
	suppliersTable = table[domain.Supplier]{
		name:  "suppliers",
		id:    func(s domain.Supplier) int64 { return s.ID },
		setID: func(s *domain.Supplier, id int64) { s.ID = id },
		order: func(a, b domain.Supplier) int {
			return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
		},
	}
	purchasesTable = table[domain.Purchase]{
		name:  "purchases",
		id:    func(p domain.Purchase) int64 { return p.ID },
		setID: func(p *domain.Purchase, id int64) { p.ID = id },
		order: func(a, b domain.Purchase) int {
			return cmp.Or(cmp.Compare(b.CreatedAt, a.CreatedAt), cmp.Compare(b.ID, a.ID))
		},
	}
	purchaseItemsTable = table[domain.PurchaseItem]{
		name:   "purchase_items",
		id:     func(i domain.PurchaseItem) int64 { return i.ID },
		setID:  func(i *domain.PurchaseItem, id int64) { i.ID = id },
		parent: func(i domain.PurchaseItem) int64 { return i.PurchaseID },
		order:  func(a, b domain.PurchaseItem) int { return cmp.Compare(a.ID, b.ID) },
	}
	salesTable = table[domain.Sale]{
		name:  "sales",
		id:    func(s domain.Sale) int64 { return s.ID },
		setID: func(s *domain.Sale, id int64) { s.ID = id },
		order: func(a, b domain.Sale) int {
			return cmp.Or(cmp.Compare(b.CreatedAt, a.CreatedAt), cmp.Compare(b.ID, a.ID))
		},
	}
	saleItemsTable = table[domain.SaleItem]{
		name:   "sale_items",
		id:     func(i domain.SaleItem) int64 { return i.ID },
		setID:  func(i *domain.SaleItem, id int64) { i.ID = id },
		parent: func(i domain.SaleItem) int64 { return i.SaleID },
		order:  func(a, b domain.SaleItem) int { return cmp.Compare(a.ID, b.ID) },
	}
)
