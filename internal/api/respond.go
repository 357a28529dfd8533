package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"inventtrack/m/internal/repository"
	"inventtrack/m/internal/transform"
)

func decodeJSON(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondFormErrors(w http.ResponseWriter, errs transform.Errors) {
	respondJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": errs})
}

// respondWriteError turns a failed write into one user-facing message. The
// cause is logged and never sent to the client.
func (h *Handler) respondWriteError(w http.ResponseWriter, r *http.Request, err error, message string) {
	if errors.Is(err, repository.ErrValidation) {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.logger.Error(message, slog.Any("error", err), slog.String("path", r.URL.Path))
	respondError(w, http.StatusInternalServerError, message)
}

func (h *Handler) respondReadError(w http.ResponseWriter, r *http.Request, err error, message string) {
	h.logger.Error(message, slog.Any("error", err), slog.String("path", r.URL.Path))
	respondError(w, http.StatusInternalServerError, message)
}

// pageParams reads page and limit, defaulting to 1 and 20.
func pageParams(r *http.Request) (page, limit int, err error) {
	page, limit = 1, 20
	if v := strings.TrimSpace(r.URL.Query().Get("page")); v != "" {
		if page, err = strconv.Atoi(v); err != nil || page < 1 {
			return 0, 0, errors.New("invalid page")
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit < 1 || limit > 100 {
			return 0, 0, errors.New("invalid limit")
		}
	}
	return page, limit, nil
}

func int64Param(r *http.Request, name string) (int64, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// dateRange reads start and end in YYYY-MM-DD. A missing side is open.
func dateRange(r *http.Request) (start, end time.Time, err error) {
	for _, p := range []struct {
		name string
		dest *time.Time
	}{{"start", &start}, {"end", &end}} {
		v := strings.TrimSpace(r.URL.Query().Get(p.name))
		if v == "" {
			continue
		}
		t, perr := time.Parse("2006-01-02", v)
		if perr != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%s must be in YYYY-MM-DD format", p.name)
		}
		*p.dest = t
	}
	return start, end, nil
}
