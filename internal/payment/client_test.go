package payment

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cryptoquote/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestClient_Initialize_Success(t *testing.T) {
	var (
		gotAuth   string
		gotMethod string
		gotPath   string
		gotBody   map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotMethod = r.Method
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":true,"message":"Authorization URL created","data":{
            "authorization_url":"https://checkout.paystack.com/abc","access_code":"abc","reference":"SHEERAH-1"}}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.Client(), srv.URL+"/", "sk_test")
	out, err := c.Initialize(context.Background(), Request{
		AmountMinor: 35000000,
		Currency:    "GHS",
		Email:       "ama@example.com",
		Reference:   "SHEERAH-1",
		Metadata:    Metadata{Asset: "BTC", AssetAmount: "0.50000000"},
	})
	require.NoError(t, err)
	require.Equal(t, "https://checkout.paystack.com/abc", out.AuthorizationURL)
	require.Equal(t, "SHEERAH-1", out.Reference)

	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, "Bearer sk_test", gotAuth)
	require.Equal(t, "/transaction/initialize", gotPath)
	require.Equal(t, "ama@example.com", gotBody["email"])
	require.InDelta(t, 35000000, gotBody["amount"], 1e-9)
	require.Equal(t, "GHS", gotBody["currency"])
	require.Equal(t, map[string]any{"crypto": "BTC", "cryptoAmount": "0.50000000"}, gotBody["metadata"])
}

func TestClient_Initialize_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":false,"message":"Invalid Email Address Passed"}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.Client(), srv.URL, "sk_test")
	_, err := c.Initialize(context.Background(), Request{Reference: "R"})
	require.ErrorIs(t, err, ErrRejected)
	require.Contains(t, err.Error(), "Invalid Email Address Passed")
}

func TestClient_Initialize_ProviderDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.Client(), srv.URL, "sk_test")
	_, err := c.Initialize(context.Background(), Request{Reference: "R"})
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestClient_Verify_MapsStatuses(t *testing.T) {
	cases := []struct {
		provider string
		want     Status
	}{
		{provider: "success", want: StatusSuccess},
		{provider: "abandoned", want: StatusCancelled},
		{provider: "failed", want: StatusFailed},
		{provider: "reversed", want: StatusFailed},
		{provider: "ongoing", want: StatusPending},
		{provider: "pending", want: StatusPending},
	}

	for _, tc := range cases {
		t.Run(tc.provider, func(t *testing.T) {
			var gotPath string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				_, _ = w.Write([]byte(`{"status":true,"message":"Verification successful","data":{
                    "status":"` + tc.provider + `","reference":"SHEERAH-9","amount":700000,"currency":"GHS","gateway_response":"ok"}}`))
			}))
			t.Cleanup(srv.Close)

			c := NewClient(srv.Client(), srv.URL, "sk_test")
			out, err := c.Verify(context.Background(), "SHEERAH-9")
			require.NoError(t, err)
			require.Equal(t, "/transaction/verify/SHEERAH-9", gotPath)
			require.Equal(t, tc.want, out.Status)
			require.Equal(t, int64(700000), out.AmountMinor)
			require.Equal(t, "GHS", out.Currency)
		})
	}
}

func TestClient_Verify_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status":false,"message":"Transaction reference not found"}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.Client(), srv.URL, "sk_test")
	_, err := c.Verify(context.Background(), "nope")
	require.ErrorIs(t, err, ErrReferenceNotFound)
}

func TestClient_Verify_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.Client(), srv.URL, "sk_test")
	_, err := c.Verify(context.Background(), "R")
	require.ErrorIs(t, err, domain.ErrUpstreamMalformed)
}

func TestMinorUnits(t *testing.T) {
	cases := []struct {
		amount string
		want   int64
	}{
		{amount: "350000", want: 35000000},
		{amount: "19.99", want: 1999},
		{amount: "9.995", want: 1000},
		{amount: "92233720368547758.07", want: math.MaxInt64},
	}
	for _, tc := range cases {
		got, err := MinorUnits(decimal.RequireFromString(tc.amount))
		require.NoError(t, err, tc.amount)
		require.Equal(t, tc.want, got, tc.amount)
	}
}

func TestMinorUnits_OutOfRange(t *testing.T) {
	for _, amount := range []string{"0", "0.004", "-1", "92233720368547758.08", "184467440737095516.17"} {
		t.Run(amount, func(t *testing.T) {
			got, err := MinorUnits(decimal.RequireFromString(amount))
			require.ErrorIs(t, err, domain.ErrInvalidAmount)
			require.Zero(t, got)
		})
	}
}

func TestNewReference(t *testing.T) {
	a := NewReference("SHEERAH")
	b := NewReference("SHEERAH")
	require.True(t, strings.HasPrefix(a, "SHEERAH-"))
	require.Len(t, a, len("SHEERAH-")+26)
	require.NotEqual(t, a, b)

	require.Len(t, NewReference(" "), 26)
}
