package handler

import (
	"net/http"

	"cryptoquote/internal/account"
)

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type ResendOTPRequest struct {
	Email string `json:"email"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// Signup godoc
// @Summary      Create an account
// @Description  Validates the form locally, then registers the account with the identity backend. A verification code is emailed on success.
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        request  body      account.SignupRequest  true  "Signup form"
// @Success      201      {object}  messageResponse
// @Failure      400      {object}  errorResponse
// @Failure      409      {object}  errorResponse
// @Failure      503      {object}  errorResponse
// @Router       /api/v1/accounts/signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req account.SignupRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.service.Signup(r.Context(), req); err != nil {
		writeAccountError(w, account.OpSignup, err)
		return
	}
	writeJSON(w, http.StatusCreated, messageResponse{Message: "Account created. Check your email for the verification code."})
}

// Login godoc
// @Summary      Log in
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        request  body      account.LoginRequest  true  "Credentials"
// @Success      200      {object}  LoginResponse
// @Failure      400      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /api/v1/accounts/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req account.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := h.service.Login(r.Context(), req)
	if err != nil {
		writeAccountError(w, account.OpLogin, err)
		return
	}
	writeJSON(w, http.StatusOK, LoginResponse{Token: res.Token})
}

// VerifyOTP godoc
// @Summary      Verify email with the 6-digit code
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        request  body      VerifyOTPRequest  true  "Email and code"
// @Success      200      {object}  messageResponse
// @Failure      400      {object}  errorResponse
// @Failure      404      {object}  errorResponse
// @Router       /api/v1/accounts/otp/verify [post]
func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.service.VerifyOTP(r.Context(), req.Email, req.OTP); err != nil {
		writeAccountError(w, account.OpVerifyOTP, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Email verified."})
}

// ResendOTP godoc
// @Summary      Resend the verification code
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        request  body      ResendOTPRequest  true  "Email"
// @Success      202      {object}  messageResponse
// @Failure      400      {object}  errorResponse
// @Failure      502      {object}  errorResponse
// @Router       /api/v1/accounts/otp/resend [post]
func (h *Handler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req ResendOTPRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.service.ResendOTP(r.Context(), req.Email); err != nil {
		writeAccountError(w, account.OpResendOTP, err)
		return
	}
	writeJSON(w, http.StatusAccepted, messageResponse{Message: "Verification code sent."})
}
