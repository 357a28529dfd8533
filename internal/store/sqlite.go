package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"inventtrack/m/domain"
	"inventtrack/m/internal/migrations"
)

const driverSQLite = "sqlite"

const (
	insertProductSQL = `INSERT INTO products (name, sku, category, description, mrp, costPrice, sellingPrice,
        stock, minStock, maxStock, unit, barcode, images, supplierId, createdAt, updatedAt, isActive)
        VALUES (:name, :sku, :category, :description, :mrp, :costPrice, :sellingPrice,
        :stock, :minStock, :maxStock, :unit, :barcode, :images, :supplierId, :createdAt, :updatedAt, :isActive)`
	insertSupplierSQL = `INSERT INTO suppliers (name, email, phone, address, gst, paymentTerms)
        VALUES (:name, :email, :phone, :address, :gst, :paymentTerms)`
	insertPurchaseSQL = `INSERT INTO purchases (supplierName, supplierId, purchaseDate, paymentMode, paidAmount,
        totalAmount, balanceAmount, notes, status, createdAt, updatedAt, createdBy)
        VALUES (:supplierName, :supplierId, :purchaseDate, :paymentMode, :paidAmount,
        :totalAmount, :balanceAmount, :notes, :status, :createdAt, :updatedAt, :createdBy)`
	insertPurchaseItemSQL = `INSERT INTO purchase_items (purchaseId, productId, productName, mrp, quantity,
        costPrice, batchNo, expiryDate, totalPrice)
        VALUES (:purchaseId, :productId, :productName, :mrp, :quantity,
        :costPrice, :batchNo, :expiryDate, :totalPrice)`
	insertSaleSQL = `INSERT INTO sales (orderId, customerId, customerName, customerPhone, customerEmail,
        subtotal, discount, tax, totalAmount, paidAmount, balanceAmount, paymentMode, status,
        saleDate, createdAt, updatedAt, createdBy, notes)
        VALUES (:orderId, :customerId, :customerName, :customerPhone, :customerEmail,
        :subtotal, :discount, :tax, :totalAmount, :paidAmount, :balanceAmount, :paymentMode, :status,
        :saleDate, :createdAt, :updatedAt, :createdBy, :notes)`
	insertSaleItemSQL = `INSERT INTO sale_items (saleId, productId, productName, sku, quantity,
        unitPrice, discount, totalPrice)
        VALUES (:saleId, :productId, :productName, :sku, :quantity,
        :unitPrice, :discount, :totalPrice)`
)

// SQLite is the relational adapter.
type SQLite struct {
	db   *sqlx.DB
	opts options
}

func NewSQLite(db *sqlx.DB, opts ...Option) *SQLite {
	return &SQLite{db: db, opts: buildOptions(opts)}
}

func (s *SQLite) Init(ctx context.Context) error {
	if err := migrations.Run(ctx, s.db); err != nil {
		return fmt.Errorf("store: sqlite: init: %w", err)
	}
	s.opts.logger.Info("store ready", slog.String("driver", driverSQLite))
	return nil
}

func (s *SQLite) Handle(ctx context.Context) (Handle, error) {
	if err := s.db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("store: sqlite: handle: %w", err)
	}
	return &sqliteHandle{store: s, ext: s.db}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

type sqliteHandle struct {
	store *SQLite
	ext   sqlx.ExtContext
	tx    *sqlx.Tx
}

func (h *sqliteHandle) Execute(ctx context.Context, cmd Command) (Result, error) {
	res, err := h.execute(ctx, cmd)
	h.store.opts.observe(driverSQLite, cmd.Op, err)
	return res, err
}

func (h *sqliteHandle) execute(ctx context.Context, cmd Command) (Result, error) {
	switch cmd.Op {
	case InsertProduct:
		rec, ok := cmd.Record.(domain.Product)
		if !ok {
			return Result{}, unsupported(cmd)
		}
		return h.insert(ctx, insertProductSQL, rec)
	case InsertSupplier:
		rec, ok := cmd.Record.(domain.Supplier)
		if !ok {
			return Result{}, unsupported(cmd)
		}
		return h.insert(ctx, insertSupplierSQL, rec)
	case InsertPurchase:
		rec, ok := cmd.Record.(domain.Purchase)
		if !ok {
			return Result{}, unsupported(cmd)
		}
		return h.insert(ctx, insertPurchaseSQL, rec)
	case InsertPurchaseItem:
		rec, ok := cmd.Record.(domain.PurchaseItem)
		if !ok {
			return Result{}, unsupported(cmd)
		}
		return h.insert(ctx, insertPurchaseItemSQL, rec)
	case InsertSale:
		rec, ok := cmd.Record.(domain.Sale)
		if !ok {
			return Result{}, unsupported(cmd)
		}
		return h.insert(ctx, insertSaleSQL, rec)
	case InsertSaleItem:
		rec, ok := cmd.Record.(domain.SaleItem)
		if !ok {
			return Result{}, unsupported(cmd)
		}
		return h.insert(ctx, insertSaleItemSQL, rec)
	case ListProducts:
		var rows []domain.Product
		return list(ctx, h.ext, &rows, `SELECT * FROM products ORDER BY name ASC`)
	case ListSuppliers:
		var rows []domain.Supplier
		return list(ctx, h.ext, &rows, `SELECT * FROM suppliers ORDER BY name ASC`)
	case ListPurchases:
		var rows []domain.Purchase
		return list(ctx, h.ext, &rows, `SELECT * FROM purchases ORDER BY createdAt DESC, id DESC`)
	case ListSales:
		var rows []domain.Sale
		return list(ctx, h.ext, &rows, `SELECT * FROM sales ORDER BY createdAt DESC, id DESC`)
	case ListPurchaseItems:
		var rows []domain.PurchaseItem
		if cmd.Parent != 0 {
			return list(ctx, h.ext, &rows, `SELECT * FROM purchase_items WHERE purchaseId = ? ORDER BY id ASC`, cmd.Parent)
		}
		return list(ctx, h.ext, &rows, `SELECT * FROM purchase_items ORDER BY id ASC`)
	case ListSaleItems:
		var rows []domain.SaleItem
		if cmd.Parent != 0 {
			return list(ctx, h.ext, &rows, `SELECT * FROM sale_items WHERE saleId = ? ORDER BY id ASC`, cmd.Parent)
		}
		return list(ctx, h.ext, &rows, `SELECT * FROM sale_items ORDER BY id ASC`)
	default:
		return Result{}, unsupported(cmd)
	}
}

func (h *sqliteHandle) insert(ctx context.Context, query string, rec any) (Result, error) {
	res, err := sqlx.NamedExecContext(ctx, h.ext, query, rec)
	if err != nil {
		return Result{}, fmt.Errorf("store: sqlite: insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Result{}, fmt.Errorf("store: sqlite: last insert id: %w", err)
	}
	return Result{LastInsertID: id}, nil
}

// list selects into dest, a pointer to a typed slice, and returns the slice.
func list[T any](ctx context.Context, q sqlx.QueryerContext, dest *[]T, query string, args ...any) (Result, error) {
	if err := sqlx.SelectContext(ctx, q, dest, query, args...); err != nil {
		return Result{}, fmt.Errorf("store: sqlite: select: %w", err)
	}
	if *dest == nil {
		*dest = []T{}
	}
	return Result{Rows: *dest}, nil
}

func (h *sqliteHandle) WithTx(ctx context.Context, fn func(Handle) error) error {
	if h.tx != nil {
		return fn(h)
	}
	tx, err := h.store.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: sqlite: begin: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&sqliteHandle{store: h.store, ext: tx, tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: sqlite: commit: %w", err)
	}
	return nil
}
