package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"cryptoquote/internal/account"

	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 4 << 10

type AccountService interface {
	Signup(ctx context.Context, req account.SignupRequest) error
	Login(ctx context.Context, req account.LoginRequest) (account.LoginResult, error)
	VerifyOTP(ctx context.Context, email, otp string) error
	ResendOTP(ctx context.Context, email string) error
}

type Handler struct {
	service AccountService
}

func NewAccountHandler(service AccountService) *Handler {
	return &Handler{service: service}
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{Error: errorMsg})
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// writeAccountError maps an identity failure to a status code and the user-facing message for op.
func writeAccountError(w http.ResponseWriter, op account.Operation, err error) {
	status := http.StatusBadGateway
	var verr *account.ValidationError
	switch {
	case errors.As(err, &verr), errors.Is(err, account.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, account.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, account.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, account.ErrUnavailable):
		status = http.StatusServiceUnavailable
	}
	if status >= http.StatusInternalServerError {
		logrus.WithError(err).WithField("operation", op).Error("identity backend call failed")
	}
	writeError(w, status, account.Message(op, err))
}
