package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventtrack/m/domain"
	"inventtrack/m/internal/database"
	"inventtrack/m/internal/repository"
	"inventtrack/m/internal/store"
	"inventtrack/m/internal/store/kv"
)

var fixedNow = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func handles(t *testing.T) map[string]store.Handle {
	t.Helper()
	ctx := context.Background()

	db, err := database.Connect(filepath.Join(t.TempDir(), "repo.db"))
	require.NoError(t, err)
	sqlite := store.NewSQLite(db)

	backend, err := kv.NewFile(t.TempDir())
	require.NoError(t, err)
	doc := store.NewDocument(backend, "")

	out := make(map[string]store.Handle)
	for name, s := range map[string]store.Store{"sqlite": sqlite, "document": doc} {
		require.NoError(t, s.Init(ctx))
		t.Cleanup(func() { _ = s.Close() })
		h, err := s.Handle(ctx)
		require.NoError(t, err)
		out[name] = h
	}
	return out
}

func purchase() domain.Purchase {
	return domain.Purchase{
		SupplierName:  "Acme Traders",
		PaymentMode:   domain.PaymentBankTransfer,
		PaidAmount:    decimal.NewFromInt(500),
		TotalAmount:   decimal.RequireFromString("412.5"),
		BalanceAmount: decimal.RequireFromString("87.5"),
		Items: []domain.PurchaseItem{
			{ProductName: "Rice 5kg", Quantity: decimal.NewFromInt(5), CostPrice: decimal.RequireFromString("62.5"), TotalPrice: decimal.RequireFromString("312.5")},
			{ProductName: "Sugar 1kg", Quantity: decimal.NewFromInt(2), CostPrice: decimal.NewFromInt(50), TotalPrice: decimal.NewFromInt(100)},
		},
	}
}

func TestAddPurchaseRoundTrip(t *testing.T) {
	for name, h := range handles(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := repository.New(h, repository.WithClock(clock))

			id, err := repo.AddPurchase(ctx, purchase())
			require.NoError(t, err)
			assert.Equal(t, int64(1), id)

			purchases, err := repo.ListPurchases(ctx)
			require.NoError(t, err)
			require.Len(t, purchases, 1)

			got := purchases[0]
			assert.True(t, decimal.RequireFromString("412.5").Equal(got.TotalAmount))
			assert.True(t, decimal.NewFromInt(500).Equal(got.PaidAmount))
			assert.Equal(t, domain.StatusCompleted, got.Status)
			assert.Equal(t, "2026-10-16T09:00:00.000Z", got.CreatedAt)
			require.Len(t, got.Items, 2)

			sum := decimal.Zero
			for _, item := range got.Items {
				assert.Equal(t, id, item.PurchaseID)
				sum = sum.Add(item.TotalPrice)
			}
			assert.True(t, sum.Equal(got.TotalAmount))
		})
	}
}

func TestAddSalePersistsItems(t *testing.T) {
	for name, h := range handles(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := repository.New(h, repository.WithClock(clock))

			_, err := repo.AddSale(ctx, domain.Sale{
				OrderID:      "ORD-AB123456",
				CustomerName: "Walk-in Customer",
				PaymentMode:  domain.PaymentCash,
				Status:       domain.StatusCompleted,
				TotalAmount:  decimal.NewFromInt(950),
				Items: []domain.SaleItem{
					{ProductName: "Tea 250g", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(500), TotalPrice: decimal.NewFromInt(1000)},
				},
			})
			require.NoError(t, err)

			emptyID, err := repo.AddSale(ctx, domain.Sale{
				OrderID: "ORD-CD123457", CustomerName: "Ravi", PaymentMode: domain.PaymentCard,
				CreatedAt: "2026-10-17T09:00:00.000Z",
			})
			require.NoError(t, err)

			sales, err := repo.ListSales(ctx)
			require.NoError(t, err)
			require.Len(t, sales, 2)
			assert.Equal(t, emptyID, sales[0].ID)
			assert.NotNil(t, sales[0].Items)
			assert.Empty(t, sales[0].Items)
			require.Len(t, sales[1].Items, 1)
			assert.Equal(t, "Tea 250g", sales[1].Items[0].ProductName)
			assert.Equal(t, "2026-10-16T09:00:00.000Z", sales[1].SaleDate)
		})
	}
}

func TestValidationRejectsBeforeWriting(t *testing.T) {
	for name, h := range handles(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := repository.New(h)

			bad := purchase()
			bad.PaymentMode = "Barter"
			_, err := repo.AddPurchase(ctx, bad)
			require.ErrorIs(t, err, repository.ErrValidation)
			assert.Contains(t, err.Error(), "PaymentMode")

			bad = purchase()
			bad.Items[1].ProductName = ""
			_, err = repo.AddPurchase(ctx, bad)
			require.ErrorIs(t, err, repository.ErrValidation)

			_, err = repo.AddSupplier(ctx, domain.Supplier{Name: "X", Email: "not-an-email"})
			require.ErrorIs(t, err, repository.ErrValidation)

			purchases, err := repo.ListPurchases(ctx)
			require.NoError(t, err)
			assert.Empty(t, purchases)
		})
	}
}

func TestProductsAndSuppliers(t *testing.T) {
	for name, h := range handles(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := repository.New(h, repository.WithClock(clock))

			_, err := repo.AddProduct(ctx, domain.Product{Name: "Tea 250g", SKU: "SKU-TEA-000001", Stock: 4, MinStock: 5, IsActive: true})
			require.NoError(t, err)
			_, err = repo.AddProduct(ctx, domain.Product{Name: "Biscuits", SKU: "SKU-BIS-000002"})
			require.NoError(t, err)
			_, err = repo.AddProduct(ctx, domain.Product{Name: "No SKU"})
			require.ErrorIs(t, err, repository.ErrValidation)

			products, err := repo.ListProducts(ctx)
			require.NoError(t, err)
			require.Len(t, products, 2)
			assert.Equal(t, "Biscuits", products[0].Name)
			assert.Equal(t, domain.StringList{}, products[0].Images)
			assert.Equal(t, "2026-10-16T09:00:00.000Z", products[1].UpdatedAt)

			_, err = repo.AddSupplier(ctx, domain.Supplier{Name: "  Zenith Foods "})
			require.NoError(t, err)
			_, err = repo.AddSupplier(ctx, domain.Supplier{Name: "Acme", Email: "sales@acme.in"})
			require.NoError(t, err)

			suppliers, err := repo.ListSuppliers(ctx)
			require.NoError(t, err)
			require.Len(t, suppliers, 2)
			assert.Equal(t, "Acme", suppliers[0].Name)
			assert.Equal(t, "Zenith Foods", suppliers[1].Name)
		})
	}
}

// failingHandle rejects item inserts so the surrounding transaction aborts.
type failingHandle struct {
	store.Handle
	failOn store.Op
}

var errInjected = errors.New("disk full")

func (f failingHandle) Execute(ctx context.Context, cmd store.Command) (store.Result, error) {
	if cmd.Op == f.failOn {
		return store.Result{}, errInjected
	}
	return f.Handle.Execute(ctx, cmd)
}

func (f failingHandle) WithTx(ctx context.Context, fn func(store.Handle) error) error {
	return f.Handle.WithTx(ctx, func(tx store.Handle) error {
		return fn(failingHandle{Handle: tx, failOn: f.failOn})
	})
}

func TestAddSaleIsAtomic(t *testing.T) {
	for name, h := range handles(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := repository.New(failingHandle{Handle: h, failOn: store.InsertSaleItem})

			_, err := repo.AddSale(ctx, domain.Sale{
				OrderID: "ORD-EF123458", CustomerName: "Asha", PaymentMode: domain.PaymentUPI,
				Items: []domain.SaleItem{{ProductName: "Soap", Quantity: decimal.NewFromInt(1)}},
			})
			require.ErrorIs(t, err, errInjected)

			sales, err := repository.New(h).ListSales(ctx)
			require.NoError(t, err)
			assert.Empty(t, sales)
		})
	}
}
