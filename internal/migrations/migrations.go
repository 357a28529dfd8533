package migrations

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Tables lists every table Run creates, in creation order.
var Tables = []string{"products", "suppliers", "purchases", "purchase_items", "sales", "sale_items"}

// Run creates the schema if it does not exist. It is safe to call on every
// start and never alters an existing table.
func Run(ctx context.Context, db sqlx.ExecerContext) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS products (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL,
            sku TEXT NOT NULL,
            category TEXT NOT NULL DEFAULT '',
            description TEXT NOT NULL DEFAULT '',
            mrp REAL NOT NULL DEFAULT 0,
            costPrice REAL NOT NULL DEFAULT 0,
            sellingPrice REAL NOT NULL DEFAULT 0,
            stock INTEGER NOT NULL DEFAULT 0,
            minStock INTEGER NOT NULL DEFAULT 0,
            maxStock INTEGER NOT NULL DEFAULT 0,
            unit TEXT NOT NULL DEFAULT '',
            barcode TEXT NOT NULL DEFAULT '',
            images TEXT NOT NULL DEFAULT '[]',
            supplierId INTEGER,
            createdAt TEXT NOT NULL,
            updatedAt TEXT NOT NULL,
            isActive INTEGER NOT NULL DEFAULT 1,
            FOREIGN KEY(supplierId) REFERENCES suppliers(id)
        );`,
		`CREATE TABLE IF NOT EXISTS suppliers (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            name TEXT NOT NULL,
            email TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT '',
            address TEXT NOT NULL DEFAULT '',
            gst TEXT NOT NULL DEFAULT '',
            paymentTerms TEXT NOT NULL DEFAULT ''
        );`,
		`CREATE TABLE IF NOT EXISTS purchases (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            supplierName TEXT NOT NULL,
            supplierId INTEGER,
            purchaseDate TEXT NOT NULL,
            paymentMode TEXT NOT NULL,
            paidAmount REAL NOT NULL DEFAULT 0,
            totalAmount REAL NOT NULL DEFAULT 0,
            balanceAmount REAL NOT NULL DEFAULT 0,
            notes TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL,
            createdAt TEXT NOT NULL,
            updatedAt TEXT NOT NULL,
            createdBy TEXT NOT NULL DEFAULT '',
            FOREIGN KEY(supplierId) REFERENCES suppliers(id)
        );`,
		`CREATE TABLE IF NOT EXISTS purchase_items (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            purchaseId INTEGER NOT NULL,
            productId INTEGER,
            productName TEXT NOT NULL,
            mrp REAL NOT NULL DEFAULT 0,
            quantity REAL NOT NULL DEFAULT 0,
            costPrice REAL NOT NULL DEFAULT 0,
            batchNo TEXT NOT NULL DEFAULT '',
            expiryDate TEXT,
            totalPrice REAL NOT NULL DEFAULT 0,
            FOREIGN KEY(purchaseId) REFERENCES purchases(id),
            FOREIGN KEY(productId) REFERENCES products(id)
        );`,
		`CREATE TABLE IF NOT EXISTS sales (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            orderId TEXT NOT NULL,
            customerId INTEGER,
            customerName TEXT NOT NULL,
            customerPhone TEXT NOT NULL DEFAULT '',
            customerEmail TEXT NOT NULL DEFAULT '',
            subtotal REAL NOT NULL DEFAULT 0,
            discount REAL NOT NULL DEFAULT 0,
            tax REAL NOT NULL DEFAULT 0,
            totalAmount REAL NOT NULL DEFAULT 0,
            paidAmount REAL NOT NULL DEFAULT 0,
            balanceAmount REAL NOT NULL DEFAULT 0,
            paymentMode TEXT NOT NULL,
            status TEXT NOT NULL,
            saleDate TEXT NOT NULL,
            createdAt TEXT NOT NULL,
            updatedAt TEXT NOT NULL,
            createdBy TEXT NOT NULL DEFAULT '',
            notes TEXT NOT NULL DEFAULT ''
        );`,
		`CREATE TABLE IF NOT EXISTS sale_items (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            saleId INTEGER NOT NULL,
            productId INTEGER,
            productName TEXT NOT NULL,
            sku TEXT NOT NULL DEFAULT '',
            quantity REAL NOT NULL DEFAULT 0,
            unitPrice REAL NOT NULL DEFAULT 0,
            discount REAL NOT NULL DEFAULT 0,
            totalPrice REAL NOT NULL DEFAULT 0,
            FOREIGN KEY(saleId) REFERENCES sales(id),
            FOREIGN KEY(productId) REFERENCES products(id)
        );`,
		`CREATE INDEX IF NOT EXISTS idx_purchase_items_purchase ON purchase_items(purchaseId);`,
		`CREATE INDEX IF NOT EXISTS idx_sale_items_sale ON sale_items(saleId);`,
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	}
	return nil
}
