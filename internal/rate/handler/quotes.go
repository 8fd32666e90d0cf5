package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"cryptoquote/internal/domain"
	"cryptoquote/internal/quote"
	"cryptoquote/internal/rate"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

type GetQuoteResponse struct {
	rate.QuoteView
	RatesAt time.Time `json:"rates_at"`
}

type ValidateAmountResponse struct {
	Valid   bool   `json:"valid"`
	Entered bool   `json:"entered"`
	Amount  string `json:"amount,omitempty" example:"350000"`
	Message string `json:"message,omitempty"`
}

const msgInvalidAmount = "amount must be a non-negative number"

// GetQuote godoc
// @Summary Quote a buy or sell
// @Description Buy converts a local-fiat amount into the asset; sell converts an asset amount into local fiat
// @Tags Quotes
// @Produce json
// @Param direction path string true "buy or sell"
// @Param asset query string true "Asset symbol" example(BTC)
// @Param amount query string true "Amount in the input unit" example(350000)
// @Success 200 {object} GetQuoteResponse
// @Failure 400 {object} errorResponse
// @Failure 503 {object} errorResponse
// @Router /api/v1/quotes/{direction} [get]
func (h *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	dir, asset, err := h.validator.ValidateQuoteRequest(chi.URLParam(r, "direction"), q.Get("asset"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap := h.rates.Snapshot()
	res, err := h.calc.Quote(dir, q.Get("amount"), asset, snap.Table)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, GetQuoteResponse{QuoteView: rate.NewQuoteView(res), RatesAt: snap.Status.LastSuccess.UTC()})
	case errors.Is(err, domain.ErrAmountNotEntered):
		writeError(w, http.StatusBadRequest, "amount is required")
	case errors.Is(err, domain.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, msgInvalidAmount)
	case errors.Is(err, domain.ErrNoRateAvailable):
		writeError(w, http.StatusServiceUnavailable, fmt.Sprintf("no %s rate available yet", asset))
	default:
		msg := "ups, couldn't compute quote this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetQuote", "direction": dir, "asset": asset}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
	}
}

// ValidateAmount godoc
// @Summary Check an amount field
// @Description A blank amount is valid but not entered; anything else must be a non-negative number
// @Tags Quotes
// @Produce json
// @Param amount query string false "Raw amount input"
// @Success 200 {object} ValidateAmountResponse
// @Router /api/v1/amounts/validate [get]
func (h *Handler) ValidateAmount(w http.ResponseWriter, r *http.Request) {
	amount, err := quote.ValidateAmountInput(r.URL.Query().Get("amount"))
	if err != nil {
		writeJSON(w, http.StatusOK, ValidateAmountResponse{Message: msgInvalidAmount})
		return
	}
	res := ValidateAmountResponse{Valid: true, Entered: amount.Entered}
	if amount.Entered {
		res.Amount = amount.Value.String()
	}
	writeJSON(w, http.StatusOK, res)
}
