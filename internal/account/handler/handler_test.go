package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cryptoquote/internal/account"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct{ mock.Mock }

func (m *MockService) Signup(ctx context.Context, req account.SignupRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockService) Login(ctx context.Context, req account.LoginRequest) (account.LoginResult, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(account.LoginResult)
	return res, args.Error(1)
}

func (m *MockService) VerifyOTP(ctx context.Context, email, otp string) error {
	args := m.Called(ctx, email, otp)
	return args.Error(0)
}

func (m *MockService) ResendOTP(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

type errorJSON struct {
	Error string `json:"error"`
}

func post(t *testing.T, fn http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	fn(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var e errorJSON
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&e))
	return e.Error
}

func TestHandler_VerifyOTP_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "bad code", err: fmt.Errorf("%w: x", account.ErrInvalidInput), wantStatus: http.StatusBadRequest, wantMsg: "Invalid verification code. Please try again."},
		{name: "unknown email", err: fmt.Errorf("%w: x", account.ErrNotFound), wantStatus: http.StatusNotFound, wantMsg: "Email not found. Please sign up or try again."},
		{name: "backend 500", err: fmt.Errorf("%w: x", account.ErrUnexpected), wantStatus: http.StatusBadGateway, wantMsg: "An unexpected error occurred. Please try again later."},
		{name: "offline", err: fmt.Errorf("%w: x", account.ErrUnavailable), wantStatus: http.StatusServiceUnavailable, wantMsg: "Unable to connect to the server. Please check your internet connection."},
		{name: "local validation", err: &account.ValidationError{Field: "otp", Message: "Please enter the 6-digit verification code."}, wantStatus: http.StatusBadRequest, wantMsg: "Please enter the 6-digit verification code."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("VerifyOTP", mock.Anything, "ama@example.com", "123456").Return(tc.err).Once()
			h := NewAccountHandler(svc)

			rr := post(t, h.VerifyOTP, `{"email":"ama@example.com","otp":"123456"}`)
			require.Equal(t, tc.wantStatus, rr.Code)
			require.Equal(t, tc.wantMsg, decodeError(t, rr))
		})
	}
}

func TestHandler_VerifyOTP_Success(t *testing.T) {
	svc := new(MockService)
	svc.On("VerifyOTP", mock.Anything, "ama@example.com", "123456").Return(nil).Once()
	h := NewAccountHandler(svc)

	rr := post(t, h.VerifyOTP, `{"email":"ama@example.com","otp":"123456"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}

func TestHandler_Signup_ConflictAndCreated(t *testing.T) {
	form := account.SignupRequest{FullName: "Ama", Phone: "0241234567", Email: "a@b.co", Password: "secret1", ConfirmPassword: "secret1"}
	body, _ := json.Marshal(form)

	svc := new(MockService)
	svc.On("Signup", mock.Anything, form).Return(fmt.Errorf("%w: x", account.ErrConflict)).Once()
	svc.On("Signup", mock.Anything, form).Return(nil).Once()
	h := NewAccountHandler(svc)

	rr := post(t, h.Signup, string(body))
	require.Equal(t, http.StatusConflict, rr.Code)
	require.Equal(t, "An account with this email already exists.", decodeError(t, rr))

	rr = post(t, h.Signup, string(body))
	require.Equal(t, http.StatusCreated, rr.Code)
}

func TestHandler_Login_Success(t *testing.T) {
	svc := new(MockService)
	svc.On("Login", mock.Anything, account.LoginRequest{Email: "a@b.co", Password: "pw"}).Return(account.LoginResult{Token: "tok"}, nil).Once()
	h := NewAccountHandler(svc)

	rr := post(t, h.Login, `{"email":"a@b.co","password":"pw"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var res LoginResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
	require.Equal(t, "tok", res.Token)
}

func TestHandler_ResendOTP_Accepted(t *testing.T) {
	svc := new(MockService)
	svc.On("ResendOTP", mock.Anything, "a@b.co").Return(nil).Once()
	h := NewAccountHandler(svc)

	rr := post(t, h.ResendOTP, `{"email":"a@b.co"}`)
	require.Equal(t, http.StatusAccepted, rr.Code)
}

func TestHandler_InvalidBodies(t *testing.T) {
	h := NewAccountHandler(new(MockService))

	cases := map[string]string{
		"invalid json":  `{`,
		"unknown field": `{"email":"a@b.co","otp":"123456","extra":1}`,
		"too large":     `{"email":"` + strings.Repeat("a", 5000) + `"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rr := post(t, h.VerifyOTP, body)
			require.Equal(t, http.StatusBadRequest, rr.Code)
			require.Equal(t, "invalid request body", decodeError(t, rr))
		})
	}
}
