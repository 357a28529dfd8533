package api

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"inventtrack/m/domain"
	"inventtrack/m/internal/format"
	"inventtrack/m/internal/transform"
)

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	page, limit, err := pageParams(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	products, err := h.repo.ListProducts(r.Context())
	if err != nil {
		h.respondReadError(w, r, err, "unable to fetch products")
		return
	}

	search := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("search")))
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	filtered := products[:0:0]
	for _, p := range products {
		if category != "" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if search != "" && !matchesProduct(p, search) {
			continue
		}
		filtered = append(filtered, p)
	}
	respondJSON(w, http.StatusOK, domain.Paginate(filtered, page, limit))
}

func matchesProduct(p domain.Product, needle string) bool {
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.SKU), needle) ||
		strings.Contains(strings.ToLower(p.Barcode), needle)
}

func (h *Handler) searchProducts(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	if q == "" {
		respondError(w, http.StatusBadRequest, "q is required")
		return
	}
	products, err := h.repo.ListProducts(r.Context())
	if err != nil {
		h.respondReadError(w, r, err, "unable to search products")
		return
	}
	matches := []domain.Product{}
	for _, p := range products {
		if matchesProduct(p, q) {
			matches = append(matches, p)
		}
	}
	respondJSON(w, http.StatusOK, matches)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var form transform.ProductForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := transform.ValidateProductForm(form); !errs.OK() {
		respondFormErrors(w, errs)
		return
	}
	product := transform.ProductFromForm(form, h.now())
	id, err := h.repo.AddProduct(r.Context(), product)
	if err != nil {
		h.respondWriteError(w, r, err, "Failed to save product")
		return
	}
	h.changed()
	respondJSON(w, http.StatusCreated, map[string]any{"id": id, "sku": product.SKU})
}

func (h *Handler) lowStockProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.ListProducts(r.Context())
	if err != nil {
		h.respondReadError(w, r, err, "unable to fetch products")
		return
	}
	low := []domain.Product{}
	for _, p := range products {
		if format.StockStatus(p.Stock, p.MinStock) == format.StockLow {
			low = append(low, p)
		}
	}
	respondJSON(w, http.StatusOK, low)
}

func (h *Handler) productCategories(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.ListProducts(r.Context())
	if err != nil {
		h.respondReadError(w, r, err, "unable to fetch products")
		return
	}
	categories := []string{}
	for _, p := range products {
		c := strings.TrimSpace(p.Category)
		if c != "" && !slices.Contains(categories, c) {
			categories = append(categories, c)
		}
	}
	slices.Sort(categories)
	respondJSON(w, http.StatusOK, categories)
}

// productForm returns a stored product in the shape the product form edits.
func (h *Handler) productForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	products, err := h.repo.ListProducts(r.Context())
	if err != nil {
		h.respondReadError(w, r, err, "unable to fetch products")
		return
	}
	for _, p := range products {
		if p.ID == id {
			respondJSON(w, http.StatusOK, transform.ProductToForm(p))
			return
		}
	}
	respondError(w, http.StatusNotFound, "product not found")
}

type productSummary struct {
	Metrics transform.Metrics           `json:"metrics"`
	Items   []transform.ProductListItem `json:"items"`
}

func (h *Handler) productSummary(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.ListProducts(r.Context())
	if err != nil {
		h.respondReadError(w, r, err, "unable to fetch products")
		return
	}
	summary := productSummary{
		Metrics: transform.CalculateMetrics(products),
		Items:   make([]transform.ProductListItem, 0, len(products)),
	}
	for _, p := range products {
		summary.Items = append(summary.Items, transform.ToListItem(p))
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.repo.ListSuppliers(r.Context())
	if err != nil {
		h.respondReadError(w, r, err, "unable to fetch suppliers")
		return
	}
	respondJSON(w, http.StatusOK, suppliers)
}

func (h *Handler) createSupplier(w http.ResponseWriter, r *http.Request) {
	var supplier domain.Supplier
	if err := decodeJSON(r, &supplier); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	supplier.Email = strings.TrimSpace(supplier.Email)
	errs := transform.Errors{}
	if strings.TrimSpace(supplier.Name) == "" {
		errs.Add("name", "Supplier name is required")
	}
	if supplier.Email != "" && !format.ValidEmail(supplier.Email) {
		errs.Add("email", "Enter a valid email address")
	}
	if supplier.Phone != "" && !format.ValidPhone(supplier.Phone) {
		errs.Add("phone", "Enter a valid phone number")
	}
	if !errs.OK() {
		respondFormErrors(w, errs)
		return
	}
	id, err := h.repo.AddSupplier(r.Context(), supplier)
	if err != nil {
		h.respondWriteError(w, r, err, "Failed to save supplier")
		return
	}
	h.changed()
	respondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}
