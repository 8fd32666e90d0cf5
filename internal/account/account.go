// Package account forwards signup, login and email verification to the identity backend.
// Input is checked locally first so obviously bad forms never leave the process.
package account

import (
	"errors"
	"net/http"
)

var (
	ErrInvalidInput = errors.New("identity backend rejected the input")
	ErrNotFound     = errors.New("identity backend could not find the account")
	ErrConflict     = errors.New("identity backend reported a conflict")
	ErrUnexpected   = errors.New("identity backend returned an unexpected status")
	ErrUnavailable  = errors.New("identity backend unreachable")
)

// ValidationError is a local form check failure; Message is shown to the user as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }

type Operation string

const (
	OpSignup    Operation = "signup"
	OpLogin     Operation = "login"
	OpVerifyOTP Operation = "verify-otp"
	OpResendOTP Operation = "resend-otp"
)

type SignupRequest struct {
	FullName        string `json:"full_name"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string `json:"token"`
}

func errorForStatus(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrInvalidInput
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	default:
		return ErrUnexpected
	}
}
