package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"inventtrack/m/internal/format"
	"inventtrack/m/internal/observability"
	"inventtrack/m/internal/repository"
)

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	repo      *repository.Repository
	logger    *slog.Logger
	metrics   *observability.Metrics
	rateLimit int
	now       func() time.Time
	settle    time.Duration

	// changed is debounced: a burst of writes logs one inventory summary.
	changed func()
	// limited is throttled so a flood of rejected requests logs once a minute.
	limited func()
}

type Option func(*Handler)

func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) { h.logger = l }
}

func WithMetrics(m *observability.Metrics) Option {
	return func(h *Handler) { h.metrics = m }
}

// WithRateLimit caps requests per client IP per minute.
func WithRateLimit(perMinute int) Option {
	return func(h *Handler) { h.rateLimit = perMinute }
}

func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

// WithSettleDelay sets how long writes must pause before the inventory
// summary is logged.
func WithSettleDelay(d time.Duration) Option {
	return func(h *Handler) { h.settle = d }
}

// New constructs a Handler.
func New(repo *repository.Repository, opts ...Option) *Handler {
	h := &Handler{
		repo:      repo,
		logger:    slog.New(slog.DiscardHandler),
		rateLimit: 120,
		now:       time.Now,
		settle:    2 * time.Second,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.changed = format.Debounce(h.logInventory, h.settle)
	h.limited = format.Throttle(func() {
		h.logger.Warn("rate limit exceeded", slog.Int("per_minute", h.rateLimit))
	}, time.Minute)
	return h
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(h.secureHeaders())
	r.Use(h.rateLimiter())
	r.Use(h.metrics.Middleware)

	r.Get("/health", h.health)
	r.Handle("/metrics", h.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", h.dashboardStats)
		r.Get("/data", h.dataSnapshot)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.listProducts)
			r.Post("/", h.createProduct)
			r.Get("/low-stock", h.lowStockProducts)
			r.Get("/categories", h.productCategories)
			r.Get("/search", h.searchProducts)
			r.Get("/summary", h.productSummary)
			r.Get("/{id}/form", h.productForm)
		})

		r.Route("/suppliers", func(r chi.Router) {
			r.Get("/", h.listSuppliers)
			r.Post("/", h.createSupplier)
		})

		r.Route("/purchases", func(r chi.Router) {
			r.Get("/", h.listPurchases)
			r.Post("/", h.createPurchase)
			r.Post("/preview", h.previewPurchase)
			r.Get("/stats", h.purchaseStats)
			r.Get("/{id}", h.getPurchase)
			r.Get("/{id}/form", h.purchaseForm)
		})

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", h.listSales)
			r.Post("/", h.createSale)
			r.Post("/preview", h.previewSale)
			r.Get("/stats", h.saleStats)
			r.Get("/{id}", h.getSale)
		})
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
