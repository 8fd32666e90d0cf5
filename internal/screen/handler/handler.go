package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"cryptoquote/internal/domain"
	"cryptoquote/internal/payment"
	"cryptoquote/internal/rate"
	"cryptoquote/internal/screen"

	"github.com/google/uuid"
)

type SessionService interface {
	Open() screen.Session
	Get(id uuid.UUID) (screen.Session, error)
	Apply(id uuid.UUID, in screen.Input) (screen.Session, error)
	Close(id uuid.UUID) error
	Checkout(ctx context.Context, id uuid.UUID, email string) (payment.Checkout, payment.Request, error)
}

type PaymentVerifier interface {
	Verify(ctx context.Context, reference string) (payment.Outcome, error)
}

type Handler struct {
	sessions SessionService
	payments PaymentVerifier
}

func NewSessionHandler(sessions SessionService, payments PaymentVerifier) *Handler {
	return &Handler{sessions: sessions, payments: payments}
}

type errorResponse struct {
	Error string `json:"error"`
}

type SessionView struct {
	ID         string             `json:"id"`
	Direction  domain.Direction   `json:"direction"`
	Asset      domain.AssetSymbol `json:"asset"`
	BuyAmount  string             `json:"buy_amount"`
	SellAmount string             `json:"sell_amount"`
	Quote      *rate.QuoteView    `json:"quote"`
	Message    string             `json:"message,omitempty"`
	RatesAt    *time.Time         `json:"rates_at,omitempty"`
	Loading    bool               `json:"loading"`
}

func newSessionView(sess screen.Session) SessionView {
	st := sess.State
	v := SessionView{
		ID:         sess.ID.String(),
		Direction:  st.Direction,
		Asset:      st.Asset,
		BuyAmount:  st.BuyInput,
		SellAmount: st.SellInput,
		Message:    st.Message,
		Loading:    st.Loading,
	}
	if st.Quote != nil {
		q := rate.NewQuoteView(*st.Quote)
		v.Quote = &q
	}
	if !st.RatesAt.IsZero() {
		ts := st.RatesAt.UTC()
		v.RatesAt = &ts
	}
	return v
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{Error: errorMsg})
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}
