package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"inventtrack/m/domain"
)

// StockChange is the direction of a manual stock update.
type StockChange string

const (
	StockIn         StockChange = "IN"
	StockOut        StockChange = "OUT"
	StockAdjustment StockChange = "ADJUSTMENT"
)

// Stats is the count and total reported by the stats endpoints.
type Stats struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// optional drops zero values so CreateAPIURL leaves them out.
func optional[T comparable](v T) any {
	var zero T
	if v == zero {
		return nil
	}
	return v
}

func itemPath(endpoint string, id int64, suffix ...string) string {
	p := fmt.Sprintf("%s/%d", endpoint, id)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

func statsPath(endpoint string, start, end time.Time) string {
	return CreateAPIURL("", endpoint+"/stats", map[string]any{
		"start": start.UTC().Format("2006-01-02"),
		"end":   end.UTC().Format("2006-01-02"),
	})
}

type ProductFilter struct {
	Page     int
	Limit    int
	Search   string
	Category string
}

type Products struct{ c *Client }

func (s *Products) List(ctx context.Context, f ProductFilter) Result[domain.PaginatedResponse[domain.Product]] {
	return Get[domain.PaginatedResponse[domain.Product]](ctx, s.c, CreateAPIURL("", EndpointProducts, map[string]any{
		"page":     optional(f.Page),
		"limit":    optional(f.Limit),
		"search":   f.Search,
		"category": f.Category,
	}))
}

func (s *Products) Get(ctx context.Context, id int64) Result[domain.Product] {
	return Get[domain.Product](ctx, s.c, itemPath(EndpointProducts, id))
}

func (s *Products) Create(ctx context.Context, p domain.Product) Result[domain.Product] {
	return Post[domain.Product](ctx, s.c, EndpointProducts, p)
}

func (s *Products) Update(ctx context.Context, id int64, p domain.Product) Result[domain.Product] {
	return Put[domain.Product](ctx, s.c, itemPath(EndpointProducts, id), p)
}

func (s *Products) Delete(ctx context.Context, id int64) Result[struct{}] {
	return Delete[struct{}](ctx, s.c, itemPath(EndpointProducts, id))
}

func (s *Products) LowStock(ctx context.Context) Result[[]domain.Product] {
	return Get[[]domain.Product](ctx, s.c, EndpointProducts+"/low-stock")
}

func (s *Products) UpdateStock(ctx context.Context, id int64, quantity int64, change StockChange, reason string) Result[domain.Product] {
	return Post[domain.Product](ctx, s.c, itemPath(EndpointProducts, id, "stock"), map[string]any{
		"quantity": quantity,
		"type":     change,
		"reason":   reason,
	})
}

func (s *Products) Search(ctx context.Context, query string) Result[[]domain.Product] {
	return Get[[]domain.Product](ctx, s.c, EndpointProducts+"/search?q="+url.QueryEscape(query))
}

func (s *Products) Categories(ctx context.Context) Result[[]string] {
	return Get[[]string](ctx, s.c, EndpointProducts+"/categories")
}

type PurchaseFilter struct {
	Page       int
	Limit      int
	Status     domain.Status
	SupplierID int64
}

type Purchases struct{ c *Client }

func (s *Purchases) List(ctx context.Context, f PurchaseFilter) Result[domain.PaginatedResponse[domain.Purchase]] {
	return Get[domain.PaginatedResponse[domain.Purchase]](ctx, s.c, CreateAPIURL("", EndpointPurchases, map[string]any{
		"page":       optional(f.Page),
		"limit":      optional(f.Limit),
		"status":     string(f.Status),
		"supplierId": optional(f.SupplierID),
	}))
}

func (s *Purchases) Get(ctx context.Context, id int64) Result[domain.Purchase] {
	return Get[domain.Purchase](ctx, s.c, itemPath(EndpointPurchases, id))
}

func (s *Purchases) Create(ctx context.Context, p domain.Purchase) Result[domain.Purchase] {
	return Post[domain.Purchase](ctx, s.c, EndpointPurchases, p)
}

func (s *Purchases) Update(ctx context.Context, id int64, p domain.Purchase) Result[domain.Purchase] {
	return Put[domain.Purchase](ctx, s.c, itemPath(EndpointPurchases, id), p)
}

func (s *Purchases) Delete(ctx context.Context, id int64) Result[struct{}] {
	return Delete[struct{}](ctx, s.c, itemPath(EndpointPurchases, id))
}

func (s *Purchases) Complete(ctx context.Context, id int64) Result[domain.Purchase] {
	return Patch[domain.Purchase](ctx, s.c, itemPath(EndpointPurchases, id, "complete"), struct{}{})
}

func (s *Purchases) Cancel(ctx context.Context, id int64, reason string) Result[domain.Purchase] {
	return Patch[domain.Purchase](ctx, s.c, itemPath(EndpointPurchases, id, "cancel"), map[string]string{"reason": reason})
}

func (s *Purchases) Stats(ctx context.Context, start, end time.Time) Result[Stats] {
	return Get[Stats](ctx, s.c, statsPath(EndpointPurchases, start, end))
}

type SaleFilter struct {
	Page       int
	Limit      int
	Status     domain.Status
	CustomerID int64
}

type CustomerFilter struct {
	Page   int
	Limit  int
	Search string
}

type Sales struct{ c *Client }

func (s *Sales) List(ctx context.Context, f SaleFilter) Result[domain.PaginatedResponse[domain.Sale]] {
	return Get[domain.PaginatedResponse[domain.Sale]](ctx, s.c, CreateAPIURL("", EndpointSales, map[string]any{
		"page":       optional(f.Page),
		"limit":      optional(f.Limit),
		"status":     string(f.Status),
		"customerId": optional(f.CustomerID),
	}))
}

func (s *Sales) Get(ctx context.Context, id int64) Result[domain.Sale] {
	return Get[domain.Sale](ctx, s.c, itemPath(EndpointSales, id))
}

func (s *Sales) Create(ctx context.Context, sale domain.Sale) Result[domain.Sale] {
	return Post[domain.Sale](ctx, s.c, EndpointSales, sale)
}

func (s *Sales) Update(ctx context.Context, id int64, sale domain.Sale) Result[domain.Sale] {
	return Put[domain.Sale](ctx, s.c, itemPath(EndpointSales, id), sale)
}

func (s *Sales) Delete(ctx context.Context, id int64) Result[struct{}] {
	return Delete[struct{}](ctx, s.c, itemPath(EndpointSales, id))
}

func (s *Sales) Complete(ctx context.Context, id int64) Result[domain.Sale] {
	return Patch[domain.Sale](ctx, s.c, itemPath(EndpointSales, id, "complete"), struct{}{})
}

func (s *Sales) Cancel(ctx context.Context, id int64, reason string) Result[domain.Sale] {
	return Patch[domain.Sale](ctx, s.c, itemPath(EndpointSales, id, "cancel"), map[string]string{"reason": reason})
}

func (s *Sales) Stats(ctx context.Context, start, end time.Time) Result[Stats] {
	return Get[Stats](ctx, s.c, statsPath(EndpointSales, start, end))
}

func (s *Sales) Customers(ctx context.Context, f CustomerFilter) Result[domain.PaginatedResponse[domain.Customer]] {
	return Get[domain.PaginatedResponse[domain.Customer]](ctx, s.c, CreateAPIURL("", EndpointCustomers, map[string]any{
		"page":   optional(f.Page),
		"limit":  optional(f.Limit),
		"search": f.Search,
	}))
}

func (s *Sales) CreateCustomer(ctx context.Context, customer domain.Customer) Result[domain.Customer] {
	return Post[domain.Customer](ctx, s.c, EndpointCustomers, customer)
}
