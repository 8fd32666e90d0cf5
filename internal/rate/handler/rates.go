package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"cryptoquote/internal/domain"
	"cryptoquote/internal/rate"

	"github.com/sirupsen/logrus"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

type HistoryEntry struct {
	ID        string           `json:"id"`
	FetchedAt time.Time        `json:"fetched_at"`
	Rates     []rate.PriceView `json:"rates"`
}

type GetHistoryResponse struct {
	Fiat      string         `json:"fiat" example:"GHS"`
	Snapshots []HistoryEntry `json:"snapshots"`
}

// GetRates godoc
// @Summary Current rate table
// @Description Local-fiat price of every asset from the latest successful refresh, plus fetch status
// @Tags Rates
// @Produce json
// @Success 200 {object} rate.SnapshotView
// @Router /api/v1/rates [get]
func (h *Handler) GetRates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, rate.NewSnapshotView(h.rates.Snapshot(), h.catalog, h.rates.LocalFiat()))
}

// RefreshRates godoc
// @Summary Refresh rates now
// @Description Fetches both providers and replaces the rate table on success. On failure the previous table is kept.
// @Tags Rates
// @Produce json
// @Success 200 {object} rate.SnapshotView
// @Failure 502 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Router /api/v1/rates/refresh [post]
func (h *Handler) RefreshRates(w http.ResponseWriter, r *http.Request) {
	err := h.rates.Refresh(r.Context())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, rate.NewSnapshotView(h.rates.Snapshot(), h.catalog, h.rates.LocalFiat()))
	case errors.Is(err, context.Canceled):
		// client went away; nothing to answer
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		logrus.WithError(err).WithField("handler", "RefreshRates").Warn("rate refresh failed")
		writeError(w, http.StatusServiceUnavailable, "rate providers unavailable")
	default:
		logrus.WithError(err).WithField("handler", "RefreshRates").Warn("rate refresh failed")
		writeError(w, http.StatusBadGateway, "rate providers returned unusable data")
	}
}

// GetHistory godoc
// @Summary Archived rate tables
// @Description Most recent archived refreshes, newest first
// @Tags Rates
// @Produce json
// @Param limit query int false "Number of snapshots (1-100)" default(10)
// @Success 200 {object} GetHistoryResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/v1/rates/history [get]
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeError(w, http.StatusNotFound, "rate history is not enabled")
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxHistoryLimit {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	fiat := h.rates.LocalFiat()
	snaps, err := h.history.Recent(r.Context(), fiat, limit)
	if err != nil {
		msg := "ups, couldn't load rate history this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetHistory", "limit": limit}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	res := GetHistoryResponse{Fiat: fiat, Snapshots: make([]HistoryEntry, 0, len(snaps))}
	for _, s := range snaps {
		view := rate.NewSnapshotView(domain.Snapshot{Table: s.Table}, h.catalog, fiat)
		res.Snapshots = append(res.Snapshots, HistoryEntry{
			ID:        s.ID.String(),
			FetchedAt: s.FetchedAt.UTC(),
			Rates:     view.Rates,
		})
	}
	writeJSON(w, http.StatusOK, res)
}
