package handler

import (
	"errors"
	"net/http"
	"strings"

	"cryptoquote/internal/payment"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// VerifyPayment godoc
// @Summary      Payment outcome
// @Description  Asks the payment provider how a checkout ended: success, cancelled, pending or failed.
// @Tags         payments
// @Produce      json
// @Param        reference  path      string  true  "Payment reference"
// @Success      200        {object}  payment.Outcome
// @Failure      400        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Failure      502        {object}  errorResponse
// @Router       /api/v1/payments/{reference} [get]
func (h *Handler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	reference := strings.TrimSpace(chi.URLParam(r, "reference"))
	if reference == "" {
		writeError(w, http.StatusBadRequest, "reference is required")
		return
	}

	outcome, err := h.payments.Verify(r.Context(), reference)
	if err != nil {
		if errors.Is(err, payment.ErrReferenceNotFound) {
			writeError(w, http.StatusNotFound, "payment not found")
			return
		}
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "VerifyPayment", "reference": reference}).Error("payment verification failed")
		writeError(w, http.StatusBadGateway, "couldn't verify payment this time")
		return
	}
	writeJSON(w, http.StatusOK, outcome)
}
