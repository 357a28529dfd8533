package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"inventtrack/m/domain"
	"inventtrack/m/internal/dashboard"
	"inventtrack/m/internal/transform"
)

type recordedResponse struct {
	ID          int64             `json:"id"`
	OrderID     string            `json:"orderId,omitempty"`
	TotalAmount decimal.Decimal   `json:"totalAmount"`
	Status      domain.Status     `json:"status"`
	Balance     transform.Balance `json:"balance"`
}

func (h *Handler) listPurchases(w http.ResponseWriter, r *http.Request) {
	page, limit, err := pageParams(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	supplierID, err := int64Param(r, "supplierId")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	purchases, err := h.repo.ListPurchases(r.Context())
	if err != nil {
		h.respondReadError(w, r, err, "unable to fetch purchases")
		return
	}

	status := strings.TrimSpace(r.URL.Query().Get("status"))
	filtered := purchases[:0:0]
	for _, p := range purchases {
		if status != "" && !strings.EqualFold(string(p.Status), status) {
			continue
		}
		if supplierID != 0 && (p.SupplierID == nil || *p.SupplierID != supplierID) {
			continue
		}
		filtered = append(filtered, p)
	}
	respondJSON(w, http.StatusOK, domain.Paginate(filtered, page, limit))
}

// findPurchase writes the error response itself and reports false when the
// purchase cannot be returned.
func (h *Handler) findPurchase(w http.ResponseWriter, r *http.Request) (domain.Purchase, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid purchase id")
		return domain.Purchase{}, false
	}
	purchases, err := h.repo.ListPurchases(r.Context())
	if err != nil {
		h.respondReadError(w, r, err, "unable to fetch purchases")
		return domain.Purchase{}, false
	}
	for _, p := range purchases {
		if p.ID == id {
			return p, true
		}
	}
	respondError(w, http.StatusNotFound, "purchase not found")
	return domain.Purchase{}, false
}

func (h *Handler) getPurchase(w http.ResponseWriter, r *http.Request) {
	if p, ok := h.findPurchase(w, r); ok {
		respondJSON(w, http.StatusOK, p)
	}
}

// purchaseForm returns a stored purchase in the shape the purchase form edits.
func (h *Handler) purchaseForm(w http.ResponseWriter, r *http.Request) {
	if p, ok := h.findPurchase(w, r); ok {
		respondJSON(w, http.StatusOK, transform.PurchaseToForm(p))
	}
}

func (h *Handler) previewPurchase(w http.ResponseWriter, r *http.Request) {
	var form transform.PurchaseForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"totalAmount": form.Total(),
		"balance":     form.Balance(),
		"errors":      transform.ValidatePurchaseForm(form),
	})
}

func (h *Handler) createPurchase(w http.ResponseWriter, r *http.Request) {
	var form transform.PurchaseForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := transform.ValidatePurchaseForm(form); !errs.OK() {
		respondFormErrors(w, errs)
		return
	}

	purchase := transform.BuildPurchase(form, h.now())
	id, err := h.repo.AddPurchase(r.Context(), purchase)
	if err != nil {
		h.respondWriteError(w, r, err, "Failed to record purchase")
		return
	}
	h.changed()
	respondJSON(w, http.StatusCreated, recordedResponse{
		ID:          id,
		TotalAmount: purchase.TotalAmount,
		Status:      purchase.Status,
		Balance:     form.Balance(),
	})
}

func (h *Handler) purchaseStats(w http.ResponseWriter, r *http.Request) {
	start, end, err := dateRange(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	purchases, err := h.repo.ListPurchases(r.Context())
	if err != nil {
		h.respondReadError(w, r, err, "unable to fetch purchases")
		return
	}
	respondJSON(w, http.StatusOK, dashboard.RangeStats(purchases, start, end))
}
