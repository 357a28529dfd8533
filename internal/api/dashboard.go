package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"inventtrack/m/internal/dashboard"
)

func (h *Handler) dashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := dashboard.Load(r.Context(), h.repo, h.now())
	if err != nil {
		h.respondReadError(w, r, err, "unable to load dashboard")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *Handler) dataSnapshot(w http.ResponseWriter, r *http.Request) {
	data, err := dashboard.Snapshot(r.Context(), h.repo)
	if err != nil {
		h.respondReadError(w, r, err, "unable to load data")
		return
	}
	respondJSON(w, http.StatusOK, data)
}

// logInventory logs the headline numbers after the store has changed.
func (h *Handler) logInventory() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	stats, err := dashboard.Load(ctx, h.repo, h.now())
	if err != nil {
		h.logger.Warn("unable to summarise inventory", slog.Any("error", err))
		return
	}
	h.logger.Info("inventory changed",
		slog.Int("productCount", stats.ProductCount),
		slog.Int("lowStockCount", stats.LowStockCount),
		slog.Int("orderCount", stats.OrderCount),
		slog.String("salesAmount", stats.Display.SalesAmount),
	)
}
