package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventtrack/m/internal/api"
	"inventtrack/m/internal/logging"
	"inventtrack/m/internal/observability"
	"inventtrack/m/internal/repository"
	"inventtrack/m/internal/store"
	"inventtrack/m/internal/store/kv"
)

var fixedNow = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func openHandle(t *testing.T) store.Handle {
	t.Helper()
	ctx := context.Background()
	backend, err := kv.NewFile(t.TempDir())
	require.NoError(t, err)
	doc := store.NewDocument(backend, "")
	require.NoError(t, doc.Init(ctx))
	t.Cleanup(func() { _ = doc.Close() })
	h, err := doc.Handle(ctx)
	require.NoError(t, err)
	return h
}

func newServer(t *testing.T, h store.Handle, opts ...api.Option) http.Handler {
	t.Helper()
	repo := repository.New(h, repository.WithClock(clock))
	opts = append([]api.Option{api.WithClock(clock)}, opts...)
	return api.New(repo, opts...).Router()
}

func do(t *testing.T, srv http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func purchaseForm() map[string]any {
	return map[string]any{
		"supplierName": "Acme Traders",
		"paymentMode":  "Cash",
		"paidAmount":   "1000",
		"items": []map[string]any{
			{"productName": "Rice 5kg", "quantity": "5", "costPrice": "150"},
			{"productName": "Sugar 1kg", "quantity": "2", "costPrice": "100"},
			{"productName": "", "quantity": "", "costPrice": ""},
		},
	}
}

func saleForm() map[string]any {
	return map[string]any{
		"customerName": "Asha",
		"paymentMode":  "UPI",
		"paidAmount":   "500",
		"items": []map[string]any{
			{"productName": "Soap", "sku": "SKU-A1B-000001", "quantity": "3", "price": "40"},
		},
	}
}

func TestHealth(t *testing.T) {
	srv := newServer(t, openHandle(t))
	rec := do(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestSecurityHeaders(t *testing.T) {
	srv := newServer(t, openHandle(t))
	rec := do(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "default-src 'none'", rec.Header().Get("Content-Security-Policy"))
}

func TestCreatePurchase(t *testing.T) {
	srv := newServer(t, openHandle(t))

	rec := do(t, srv, http.MethodPost, "/api/purchases/", purchaseForm())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[struct {
		ID          int64  `json:"id"`
		TotalAmount string `json:"totalAmount"`
		Status      string `json:"status"`
		Balance     struct {
			Label     string `json:"label"`
			Magnitude string `json:"magnitude"`
		} `json:"balance"`
	}](t, rec)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "950", created.TotalAmount)
	assert.Equal(t, "Completed", created.Status)
	assert.Equal(t, "Excess", created.Balance.Label)
	assert.Equal(t, "50", created.Balance.Magnitude)

	rec = do(t, srv, http.MethodGet, "/api/purchases/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[struct {
		SupplierName string           `json:"supplierName"`
		CreatedAt    string           `json:"createdAt"`
		Items        []map[string]any `json:"items"`
	}](t, rec)
	assert.Equal(t, "Acme Traders", got.SupplierName)
	assert.Equal(t, "2026-10-16T09:00:00.000Z", got.CreatedAt)
	assert.Len(t, got.Items, 2)

	rec = do(t, srv, http.MethodGet, "/api/purchases/9", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreatePurchaseValidation(t *testing.T) {
	srv := newServer(t, openHandle(t))

	form := purchaseForm()
	form["supplierName"] = "  "
	form["items"] = []map[string]any{
		{"productName": "Rice 5kg", "quantity": "abc", "costPrice": "150"},
	}
	rec := do(t, srv, http.MethodPost, "/api/purchases/", form)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decode[struct {
		Errors map[string]string `json:"errors"`
	}](t, rec)
	assert.Equal(t, "Supplier name is required", body.Errors["supplierName"])
	assert.Equal(t, "Quantity must be greater than 0", body.Errors["quantity_0"])

	rec = do(t, srv, http.MethodGet, "/api/purchases/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[struct {
		Total int `json:"total"`
	}](t, rec)
	assert.Zero(t, page.Total)
}

func TestCreatePurchaseRejectsUnknownFields(t *testing.T) {
	srv := newServer(t, openHandle(t))
	form := purchaseForm()
	form["discountCode"] = "X"
	rec := do(t, srv, http.MethodPost, "/api/purchases/", form)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPreviewPurchase(t *testing.T) {
	srv := newServer(t, openHandle(t))
	form := purchaseForm()
	form["paidAmount"] = "900"
	rec := do(t, srv, http.MethodPost, "/api/purchases/preview", form)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[struct {
		TotalAmount string `json:"totalAmount"`
		Balance     struct {
			Label  string `json:"label"`
			Amount string `json:"amount"`
		} `json:"balance"`
		Errors map[string]string `json:"errors"`
	}](t, rec)
	assert.Equal(t, "950", body.TotalAmount)
	assert.Equal(t, "Balance Due", body.Balance.Label)
	assert.Equal(t, "50", body.Balance.Amount)
	assert.Empty(t, body.Errors)
}

// failingHandle fails every command with the given op.
type failingHandle struct {
	store.Handle
	failOn store.Op
}

func (f failingHandle) Execute(ctx context.Context, cmd store.Command) (store.Result, error) {
	if cmd.Op == f.failOn {
		return store.Result{}, errors.New("disk full")
	}
	return f.Handle.Execute(ctx, cmd)
}

func (f failingHandle) WithTx(ctx context.Context, fn func(store.Handle) error) error {
	return f.Handle.WithTx(ctx, func(tx store.Handle) error {
		return fn(failingHandle{Handle: tx, failOn: f.failOn})
	})
}

func TestCreateSale(t *testing.T) {
	srv := newServer(t, openHandle(t))

	rec := do(t, srv, http.MethodPost, "/api/sales/", saleForm())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[struct {
		OrderID     string `json:"orderId"`
		TotalAmount string `json:"totalAmount"`
		Status      string `json:"status"`
		Balance     struct {
			Label string `json:"label"`
		} `json:"balance"`
	}](t, rec)
	assert.Regexp(t, `^ORD-[0-9A-F]{2}\d{6}$`, created.OrderID)
	assert.Equal(t, "120", created.TotalAmount)
	assert.Equal(t, "Completed", created.Status)
	assert.Equal(t, "Change", created.Balance.Label)

	form := saleForm()
	form["paidAmount"] = "100"
	rec = do(t, srv, http.MethodPost, "/api/sales/", form)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Pending", decode[map[string]any](t, rec)["status"])

	rec = do(t, srv, http.MethodGet, "/api/sales/?status=pending", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[struct {
		Total int `json:"total"`
	}](t, rec)
	assert.Equal(t, 1, page.Total)
}

func TestCreateSaleStorageFailure(t *testing.T) {
	h := failingHandle{Handle: openHandle(t), failOn: store.InsertSaleItem}
	srv := newServer(t, h)

	rec := do(t, srv, http.MethodPost, "/api/sales/", saleForm())
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to record sale"}`, rec.Body.String())

	rec = do(t, srv, http.MethodGet, "/api/sales/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, decode[map[string]any](t, rec)["total"])
}

func TestCreateSaleValidation(t *testing.T) {
	srv := newServer(t, openHandle(t))
	form := saleForm()
	form["paymentMode"] = "Barter"
	form["paidAmount"] = ""
	rec := do(t, srv, http.MethodPost, "/api/sales/", form)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decode[struct {
		Errors map[string]string `json:"errors"`
	}](t, rec)
	assert.Equal(t, "Payment mode is not supported", body.Errors["paymentMode"])
	assert.Equal(t, "Paid Amount is required", body.Errors["paidAmount"])
}

func TestMalformedEmailIsAFormError(t *testing.T) {
	srv := newServer(t, openHandle(t))

	form := saleForm()
	form["customerEmail"] = "asha@mail..com"
	rec := do(t, srv, http.MethodPost, "/api/sales/", form)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	body := decode[struct {
		Errors map[string]string `json:"errors"`
	}](t, rec)
	assert.Equal(t, "Enter a valid email address", body.Errors["customerEmail"])

	rec = do(t, srv, http.MethodPost, "/api/suppliers/", map[string]any{"name": "Acme", "email": "ops@acme..in"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	assert.Contains(t, decode[map[string]map[string]string](t, rec)["errors"], "email")
}

func TestProductsPaginationAndSearch(t *testing.T) {
	srv := newServer(t, openHandle(t))
	for _, name := range []string{"Basmati Rice", "Brown Sugar", "Green Tea", "Jasmine Rice"} {
		rec := do(t, srv, http.MethodPost, "/api/products/", map[string]any{
			"name": name, "category": "Grocery", "sellingPrice": "10", "stock": "4", "minStock": "5",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := do(t, srv, http.MethodGet, "/api/products/?page=2&limit=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[struct {
		Data    []map[string]any `json:"data"`
		Total   int              `json:"total"`
		Page    int              `json:"page"`
		HasMore bool             `json:"hasMore"`
	}](t, rec)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Len(t, page.Data, 1)
	assert.False(t, page.HasMore)

	rec = do(t, srv, http.MethodGet, "/api/products/search?q=rice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 2)

	rec = do(t, srv, http.MethodGet, "/api/products/low-stock", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 4)

	rec = do(t, srv, http.MethodGet, "/api/products/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Grocery"}, decode[[]string](t, rec))

	rec = do(t, srv, http.MethodGet, "/api/products/?limit=500", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodPost, "/api/products/", map[string]any{"name": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSuppliers(t *testing.T) {
	srv := newServer(t, openHandle(t))
	rec := do(t, srv, http.MethodPost, "/api/suppliers/", map[string]any{"name": "Acme", "email": "not-an-email"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, srv, http.MethodPost, "/api/suppliers/", map[string]any{"name": "Acme", "email": "ops@acme.in"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/suppliers/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 1)
}

func TestStatsAndDashboard(t *testing.T) {
	srv := newServer(t, openHandle(t))
	form := saleForm()
	form["saleDate"] = "2026-10-16T08:00:00.000Z"
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/sales/", form).Code)
	form["saleDate"] = "2026-09-01T08:00:00.000Z"
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/sales/", form).Code)

	rec := do(t, srv, http.MethodGet, "/api/sales/stats?start=2026-10-01&end=2026-10-16", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[struct {
		Count int    `json:"count"`
		Total string `json:"total"`
	}](t, rec)
	assert.Equal(t, 1, stats.Count)
	assert.Equal(t, "120", stats.Total)

	rec = do(t, srv, http.MethodGet, "/api/sales/stats?start=16-10-2026", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"orderCount":2`)

	rec = do(t, srv, http.MethodGet, "/api/data", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[map[string][]any](t, rec)["sales"], 2)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newServer(t, openHandle(t), api.WithMetrics(observability.NewMetrics()))
	do(t, srv, http.MethodGet, "/health", nil)

	rec := do(t, srv, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `inventtrack_http_requests_total{code="200",route="/health"} 1`)
}

// logBuffer is a goroutine-safe log sink.
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *logBuffer) count(msg string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Count(b.buf.String(), `"msg":"`+msg+`"`)
}

func (b *logBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRateLimit(t *testing.T) {
	logs := &logBuffer{}
	srv := newServer(t, openHandle(t),
		api.WithRateLimit(2),
		api.WithLogger(logging.NewWithWriter(logs, "json")),
	)
	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, do(t, srv, http.MethodGet, "/health", nil).Code)

	rec := do(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":"too many requests"}`, rec.Body.String())

	assert.Equal(t, http.StatusTooManyRequests, do(t, srv, http.MethodGet, "/health", nil).Code)
	assert.Equal(t, 1, logs.count("rate limit exceeded"))
}

func TestWriteBurstLogsOneInventorySummary(t *testing.T) {
	logs := &logBuffer{}
	srv := newServer(t, openHandle(t),
		api.WithLogger(logging.NewWithWriter(logs, "json")),
		api.WithSettleDelay(200*time.Millisecond),
	)
	for _, name := range []string{"Rice", "Sugar", "Tea"} {
		rec := do(t, srv, http.MethodPost, "/api/products/", map[string]any{"name": name, "stock": "1", "minStock": "5"})
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	assert.Zero(t, logs.count("inventory changed"))

	assert.Eventually(t, func() bool { return logs.count("inventory changed") == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Contains(t, logs.String(), `"productCount":3`)
	assert.Contains(t, logs.String(), `"lowStockCount":3`)
}

func TestEditForms(t *testing.T) {
	srv := newServer(t, openHandle(t))
	rec := do(t, srv, http.MethodPost, "/api/products/", map[string]any{
		"name": "Green Tea", "sku": "SKU-GT1-000001", "costPrice": "150", "stock": "25", "minStock": "5",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/products/1/form", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	product := decode[map[string]string](t, rec)
	assert.Equal(t, "SKU-GT1-000001", product["sku"])
	assert.Equal(t, "150", product["costPrice"])
	assert.Equal(t, "25", product["stock"])

	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/api/products/7/form", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodGet, "/api/products/x/form", nil).Code)

	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/purchases/", purchaseForm()).Code)
	rec = do(t, srv, http.MethodGet, "/api/purchases/1/form", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	purchase := decode[struct {
		SupplierName string `json:"supplierName"`
		PaymentMode  string `json:"paymentMode"`
		PaidAmount   string `json:"paidAmount"`
		Items        []struct {
			ProductName string `json:"productName"`
			Quantity    string `json:"quantity"`
			CostPrice   string `json:"costPrice"`
		} `json:"items"`
	}](t, rec)
	assert.Equal(t, "Acme Traders", purchase.SupplierName)
	assert.Equal(t, "Cash", purchase.PaymentMode)
	assert.Equal(t, "1000", purchase.PaidAmount)
	require.Len(t, purchase.Items, 2)
	assert.Equal(t, "5", purchase.Items[0].Quantity)
	assert.Equal(t, "150", purchase.Items[0].CostPrice)
}
