package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"cryptoquote/internal/domain"

	"github.com/gorilla/websocket"
)

type RateService interface {
	LocalFiat() string
	Snapshot() domain.Snapshot
	Refresh(ctx context.Context) error
	Subscribe() (<-chan domain.Snapshot, func())
}

type QuoteCalculator interface {
	Quote(dir domain.Direction, raw string, asset domain.AssetSymbol, table domain.RateTable) (domain.Quote, error)
}

type Validator interface {
	ValidateQuoteRequest(direction, asset string) (domain.Direction, domain.AssetSymbol, error)
	SupportedAssets() []domain.Asset
}

// HistoryReader is nil when no database is configured.
type HistoryReader interface {
	Recent(ctx context.Context, fiat string, limit int) ([]domain.ArchivedSnapshot, error)
}

type Handler struct {
	rates     RateService
	calc      QuoteCalculator
	validator Validator
	catalog   *domain.Catalog
	history   HistoryReader
	upgrader  websocket.Upgrader
}

// NewRateHandler builds the rate endpoints. allowedOrigins is the http_server.allowed_origins list
// and decides which browser origins may open the rate stream.
func NewRateHandler(rates RateService, calc QuoteCalculator, validator Validator, catalog *domain.Catalog, history HistoryReader, allowedOrigins []string) *Handler {
	return &Handler{
		rates:     rates,
		calc:      calc,
		validator: validator,
		catalog:   catalog,
		history:   history,
		upgrader:  newUpgrader(allowedOrigins),
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{Error: errorMsg})
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}
