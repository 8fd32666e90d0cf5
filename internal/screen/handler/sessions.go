package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"cryptoquote/internal/account"
	"cryptoquote/internal/domain"
	"cryptoquote/internal/payment"
	"cryptoquote/internal/screen"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type CheckoutRequest struct {
	Email string `json:"email"`
}

type CheckoutResponse struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
	AmountMinor      int64  `json:"amount_minor"`
	Currency         string `json:"currency"`
}

func sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return uuid.Nil, false
	}
	return id, true
}

// Open godoc
// @Summary      Enter the trading screen
// @Description  Creates a screen session and starts a rate refresh bound to it.
// @Tags         sessions
// @Produce      json
// @Success      201  {object}  SessionView
// @Router       /api/v1/sessions [post]
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Open()
	writeJSON(w, http.StatusCreated, newSessionView(sess))
}

// Get godoc
// @Summary      Current screen state
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  SessionView
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/sessions/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	sess, err := h.sessions.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(sess))
}

// Apply godoc
// @Summary      Change direction, asset or amount
// @Description  Every change recomputes the quote. An amount that is not a valid number is reported in the message field, not as an HTTP error.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id       path      string        true  "Session ID"
// @Param        request  body      screen.Input  true  "Changed fields"
// @Success      200      {object}  SessionView
// @Failure      400      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /api/v1/sessions/{id} [patch]
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 512)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	var in screen.Input
	if err := dec.Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := h.sessions.Apply(id, in)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, newSessionView(sess))
	case errors.Is(err, domain.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, screen.ErrInvalidDirection):
		writeError(w, http.StatusBadRequest, screen.ErrInvalidDirection.Error())
	case errors.Is(err, domain.ErrUnknownAsset):
		writeError(w, http.StatusBadRequest, "asset not supported")
	default:
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "Apply", "session_id": id}).Error("session update failed")
		writeError(w, http.StatusInternalServerError, "failed to update session")
	}
}

// Close godoc
// @Summary      Leave the trading screen
// @Description  Drops the session; a refresh it started is discarded.
// @Tags         sessions
// @Param        id   path  string  true  "Session ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/sessions/{id} [delete]
func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	if err := h.sessions.Close(id); err != nil {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Checkout godoc
// @Summary      Pay for the current buy quote
// @Description  Starts a hosted checkout for the fiat amount of the session's buy quote.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id       path      string           true  "Session ID"
// @Param        request  body      CheckoutRequest  true  "Buyer contact"
// @Success      201      {object}  CheckoutResponse
// @Failure      400      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Failure      409      {object}  errorResponse
// @Failure      502      {object}  errorResponse
// @Router       /api/v1/sessions/{id}/checkout [post]
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 512)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	var req CheckoutRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	checkout, payReq, err := h.sessions.Checkout(r.Context(), id, req.Email)
	var verr *account.ValidationError
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, CheckoutResponse{
			Reference:        checkout.Reference,
			AuthorizationURL: checkout.AuthorizationURL,
			AmountMinor:      payReq.AmountMinor,
			Currency:         payReq.Currency,
		})
	case errors.Is(err, domain.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, domain.ErrQuoteRequired):
		writeError(w, http.StatusConflict, "enter an amount to buy first")
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, domain.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, screen.MsgInvalidAmount)
	case errors.Is(err, payment.ErrRejected):
		writeError(w, http.StatusBadGateway, "payment provider rejected the checkout")
	default:
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "Checkout", "session_id": id}).Error("checkout failed")
		writeError(w, http.StatusBadGateway, "payment provider unavailable, please try again")
	}
}
