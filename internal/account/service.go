package account

import (
	"context"
	"errors"
	"strings"
)

type Backend interface {
	Signup(ctx context.Context, req SignupRequest) error
	Login(ctx context.Context, req LoginRequest) (LoginResult, error)
	VerifyOTP(ctx context.Context, email, otp string) error
	ResendOTP(ctx context.Context, email string) error
}

type Service struct {
	backend Backend
}

func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

func (s *Service) Signup(ctx context.Context, req SignupRequest) error {
	if err := ValidateSignup(req); err != nil {
		return err
	}
	return s.backend.Signup(ctx, req)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	if err := ValidateLogin(req); err != nil {
		return LoginResult{}, err
	}
	return s.backend.Login(ctx, req)
}

func (s *Service) VerifyOTP(ctx context.Context, email, otp string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	otp = strings.TrimSpace(otp)
	if err := ValidateOTP(otp); err != nil {
		return err
	}
	return s.backend.VerifyOTP(ctx, strings.TrimSpace(email), otp)
}

func (s *Service) ResendOTP(ctx context.Context, email string) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	return s.backend.ResendOTP(ctx, strings.TrimSpace(email))
}

// Message turns an error from op into the single line shown to the user.
func Message(op Operation, err error) string {
	if err == nil {
		return ""
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	if errors.Is(err, ErrUnavailable) {
		return "Unable to connect to the server. Please check your internet connection."
	}

	switch op {
	case OpVerifyOTP:
		switch {
		case errors.Is(err, ErrInvalidInput):
			return "Invalid verification code. Please try again."
		case errors.Is(err, ErrNotFound):
			return "Email not found. Please sign up or try again."
		}
	case OpResendOTP:
		return "Failed to resend verification code. Please try again later."
	case OpSignup:
		switch {
		case errors.Is(err, ErrConflict):
			return "An account with this email already exists."
		case errors.Is(err, ErrInvalidInput):
			return "Some details were rejected. Please check the form and try again."
		}
	case OpLogin:
		if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrNotFound) {
			return "Invalid email or password."
		}
	}
	return "An unexpected error occurred. Please try again later."
}
