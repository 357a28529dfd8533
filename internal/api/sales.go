package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"inventtrack/m/domain"
	"inventtrack/m/internal/dashboard"
	"inventtrack/m/internal/format"
	"inventtrack/m/internal/transform"
)

func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	page, limit, err := pageParams(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	customerID, err := int64Param(r, "customerId")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	sales, err := h.repo.ListSales(r.Context())
	if err != nil {
		h.respondReadError(w, r, err, "unable to fetch sales")
		return
	}

	q := r.URL.Query()
	status := strings.TrimSpace(q.Get("status"))
	mode := strings.TrimSpace(q.Get("paymentMode"))
	customer := strings.ToLower(strings.TrimSpace(q.Get("customer")))
	filtered := sales[:0:0]
	for _, s := range sales {
		if status != "" && !strings.EqualFold(string(s.Status), status) {
			continue
		}
		if mode != "" && !strings.EqualFold(string(s.PaymentMode), mode) {
			continue
		}
		if customerID != 0 && (s.CustomerID == nil || *s.CustomerID != customerID) {
			continue
		}
		if customer != "" && !strings.Contains(strings.ToLower(s.CustomerName), customer) {
			continue
		}
		filtered = append(filtered, s)
	}
	respondJSON(w, http.StatusOK, domain.Paginate(filtered, page, limit))
}

func (h *Handler) getSale(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sale id")
		return
	}
	sales, err := h.repo.ListSales(r.Context())
	if err != nil {
		h.respondReadError(w, r, err, "unable to fetch sales")
		return
	}
	for _, s := range sales {
		if s.ID == id {
			respondJSON(w, http.StatusOK, s)
			return
		}
	}
	respondError(w, http.StatusNotFound, "sale not found")
}

func (h *Handler) previewSale(w http.ResponseWriter, r *http.Request) {
	var form transform.SaleForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"totals":  transform.ComputeSaleTotals(form),
		"balance": form.Balance(),
		"errors":  transform.ValidateSaleForm(form),
	})
}

func (h *Handler) createSale(w http.ResponseWriter, r *http.Request) {
	var form transform.SaleForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs := transform.ValidateSaleForm(form); !errs.OK() {
		respondFormErrors(w, errs)
		return
	}

	now := h.now()
	sale := transform.BuildSale(form, now, format.GenerateOrderID(now))
	id, err := h.repo.AddSale(r.Context(), sale)
	if err != nil {
		h.respondWriteError(w, r, err, "Failed to record sale")
		return
	}
	h.changed()
	respondJSON(w, http.StatusCreated, recordedResponse{
		ID:          id,
		OrderID:     sale.OrderID,
		TotalAmount: sale.TotalAmount,
		Status:      sale.Status,
		Balance:     form.Balance(),
	})
}

func (h *Handler) saleStats(w http.ResponseWriter, r *http.Request) {
	start, end, err := dateRange(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	sales, err := h.repo.ListSales(r.Context())
	if err != nil {
		h.respondReadError(w, r, err, "unable to fetch sales")
		return
	}
	respondJSON(w, http.StatusOK, dashboard.RangeStats(sales, start, end))
}
