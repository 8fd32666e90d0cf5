package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cryptoquote/internal/account"
	"cryptoquote/internal/domain"
	"cryptoquote/internal/payment"
	"cryptoquote/internal/quote"
	"cryptoquote/internal/screen"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSessions struct{ mock.Mock }

func (m *MockSessions) Open() screen.Session {
	args := m.Called()
	s, _ := args.Get(0).(screen.Session)
	return s
}

func (m *MockSessions) Get(id uuid.UUID) (screen.Session, error) {
	args := m.Called(id)
	s, _ := args.Get(0).(screen.Session)
	return s, args.Error(1)
}

func (m *MockSessions) Apply(id uuid.UUID, in screen.Input) (screen.Session, error) {
	args := m.Called(id, in)
	s, _ := args.Get(0).(screen.Session)
	return s, args.Error(1)
}

func (m *MockSessions) Close(id uuid.UUID) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockSessions) Checkout(ctx context.Context, id uuid.UUID, email string) (payment.Checkout, payment.Request, error) {
	args := m.Called(ctx, id, email)
	c, _ := args.Get(0).(payment.Checkout)
	r, _ := args.Get(1).(payment.Request)
	return c, r, args.Error(2)
}

type MockVerifier struct{ mock.Mock }

func (m *MockVerifier) Verify(ctx context.Context, reference string) (payment.Outcome, error) {
	args := m.Called(ctx, reference)
	o, _ := args.Get(0).(payment.Outcome)
	return o, args.Error(1)
}

type errorJSON struct {
	Error string `json:"error"`
}

func withParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func quotedSession(id uuid.UUID) screen.Session {
	calc := quote.NewCalculator(domain.DefaultCatalog(), "GHS", "GH¢")
	snap := domain.Snapshot{
		Table:   domain.NewRateTable(map[domain.AssetSymbol]decimal.Decimal{domain.BTC: decimal.NewFromInt(700000)}),
		Status:  domain.FetchStatus{LastSuccess: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)},
		Version: 1,
	}
	return screen.Session{ID: id, State: screen.NewState(calc, domain.BTC).WithSnapshot(snap).WithAmount("350000")}
}

func TestHandler_Open(t *testing.T) {
	id := uuid.New()
	sessions := new(MockSessions)
	sessions.On("Open").Return(quotedSession(id)).Once()
	h := NewSessionHandler(sessions, new(MockVerifier))

	rr := httptest.NewRecorder()
	h.Open(rr, httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil))

	require.Equal(t, http.StatusCreated, rr.Code)
	var v SessionView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	require.Equal(t, id.String(), v.ID)
	require.Equal(t, domain.Buy, v.Direction)
	require.NotNil(t, v.Quote)
	require.Equal(t, "0.50000000", v.Quote.OutputAmount)
	require.Equal(t, "700000", v.Quote.Rate)
	require.NotNil(t, v.RatesAt)
}

func TestHandler_Get_InvalidAndMissing(t *testing.T) {
	sessions := new(MockSessions)
	h := NewSessionHandler(sessions, new(MockVerifier))

	rr := httptest.NewRecorder()
	h.Get(rr, withParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", "nope"))
	require.Equal(t, http.StatusBadRequest, rr.Code)

	id := uuid.New()
	sessions.On("Get", id).Return(nil, domain.ErrSessionNotFound).Once()
	rr = httptest.NewRecorder()
	h.Get(rr, withParam(httptest.NewRequest(http.MethodGet, "/", nil), "id", id.String()))
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_Apply_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "missing", err: domain.ErrSessionNotFound, wantStatus: http.StatusNotFound, wantMsg: "session not found"},
		{name: "direction", err: fmt.Errorf("%w: x", screen.ErrInvalidDirection), wantStatus: http.StatusBadRequest, wantMsg: "direction must be buy or sell"},
		{name: "asset", err: fmt.Errorf("%w: x", domain.ErrUnknownAsset), wantStatus: http.StatusBadRequest, wantMsg: "asset not supported"},
		{name: "other", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantMsg: "failed to update session"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id := uuid.New()
			sessions := new(MockSessions)
			sessions.On("Apply", id, mock.Anything).Return(nil, tc.err).Once()
			h := NewSessionHandler(sessions, new(MockVerifier))

			req := withParam(httptest.NewRequest(http.MethodPatch, "/", bytes.NewBufferString(`{"amount":"1"}`)), "id", id.String())
			rr := httptest.NewRecorder()
			h.Apply(rr, req)

			require.Equal(t, tc.wantStatus, rr.Code)
			var ej errorJSON
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
			require.Equal(t, tc.wantMsg, ej.Error)
		})
	}
}

func TestHandler_Apply_PassesFields(t *testing.T) {
	id := uuid.New()
	sessions := new(MockSessions)
	sessions.On("Apply", id, mock.MatchedBy(func(in screen.Input) bool {
		return in.Direction == nil && in.Asset != nil && *in.Asset == "btc" && in.Amount != nil && *in.Amount == "350000"
	})).Return(quotedSession(id), nil).Once()
	h := NewSessionHandler(sessions, new(MockVerifier))

	req := withParam(httptest.NewRequest(http.MethodPatch, "/", bytes.NewBufferString(`{"asset":"btc","amount":"350000"}`)), "id", id.String())
	rr := httptest.NewRecorder()
	h.Apply(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	sessions.AssertExpectations(t)
}

func TestHandler_Apply_UnknownFieldRejected(t *testing.T) {
	sessions := new(MockSessions)
	h := NewSessionHandler(sessions, new(MockVerifier))

	req := withParam(httptest.NewRequest(http.MethodPatch, "/", bytes.NewBufferString(`{"price":"1"}`)), "id", uuid.NewString())
	rr := httptest.NewRecorder()
	h.Apply(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	sessions.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything)
}

func TestHandler_Close(t *testing.T) {
	id := uuid.New()
	sessions := new(MockSessions)
	sessions.On("Close", id).Return(nil).Once()
	sessions.On("Close", id).Return(domain.ErrSessionNotFound).Once()
	h := NewSessionHandler(sessions, new(MockVerifier))

	rr := httptest.NewRecorder()
	h.Close(rr, withParam(httptest.NewRequest(http.MethodDelete, "/", nil), "id", id.String()))
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = httptest.NewRecorder()
	h.Close(rr, withParam(httptest.NewRequest(http.MethodDelete, "/", nil), "id", id.String()))
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_Checkout(t *testing.T) {
	cases := []struct {
		name       string
		checkout   payment.Checkout
		request    payment.Request
		err        error
		wantStatus int
	}{
		{
			name:       "created",
			checkout:   payment.Checkout{Reference: "SHEERAH-1", AuthorizationURL: "https://pay/1"},
			request:    payment.Request{AmountMinor: 35000000, Currency: "GHS"},
			wantStatus: http.StatusCreated,
		},
		{name: "no quote", err: domain.ErrQuoteRequired, wantStatus: http.StatusConflict},
		{name: "bad email", err: &account.ValidationError{Field: "email", Message: "Please enter a valid email address."}, wantStatus: http.StatusBadRequest},
		{name: "rejected", err: fmt.Errorf("x: %w", payment.ErrRejected), wantStatus: http.StatusBadGateway},
		{name: "missing", err: domain.ErrSessionNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id := uuid.New()
			sessions := new(MockSessions)
			sessions.On("Checkout", mock.Anything, id, "ama@example.com").Return(tc.checkout, tc.request, tc.err).Once()
			h := NewSessionHandler(sessions, new(MockVerifier))

			req := withParam(httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"email":"ama@example.com"}`)), "id", id.String())
			rr := httptest.NewRecorder()
			h.Checkout(rr, req)

			require.Equal(t, tc.wantStatus, rr.Code)
			if tc.err == nil {
				var res CheckoutResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
				require.Equal(t, "https://pay/1", res.AuthorizationURL)
				require.Equal(t, int64(35000000), res.AmountMinor)
				require.Equal(t, "GHS", res.Currency)
			}
		})
	}
}

func TestHandler_VerifyPayment(t *testing.T) {
	verifier := new(MockVerifier)
	verifier.On("Verify", mock.Anything, "SHEERAH-1").Return(payment.Outcome{Reference: "SHEERAH-1", Status: payment.StatusCancelled}, nil).Once()
	verifier.On("Verify", mock.Anything, "SHEERAH-2").Return(nil, payment.ErrReferenceNotFound).Once()
	verifier.On("Verify", mock.Anything, "SHEERAH-3").Return(nil, errors.New("timeout")).Once()
	h := NewSessionHandler(new(MockSessions), verifier)

	rr := httptest.NewRecorder()
	h.VerifyPayment(rr, withParam(httptest.NewRequest(http.MethodGet, "/", nil), "reference", "SHEERAH-1"))
	require.Equal(t, http.StatusOK, rr.Code)
	var out payment.Outcome
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	require.Equal(t, payment.StatusCancelled, out.Status)

	rr = httptest.NewRecorder()
	h.VerifyPayment(rr, withParam(httptest.NewRequest(http.MethodGet, "/", nil), "reference", "SHEERAH-2"))
	require.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	h.VerifyPayment(rr, withParam(httptest.NewRequest(http.MethodGet, "/", nil), "reference", "SHEERAH-3"))
	require.Equal(t, http.StatusBadGateway, rr.Code)
}
