package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"cryptoquote/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestCoinGeckoClient_Success(t *testing.T) {
	var gotReq *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"bitcoin":{"usd":50000.5},"tether":{"usd":1.0},"solana":{}}`))
	}))
	t.Cleanup(srv.Close)

	c := NewCoinGeckoClient(srv.Client(), srv.URL+"/api/v3/", "demo-key")

	prices, err := c.GetPrices(context.Background(), []string{"bitcoin", "tether", "solana"}, "USD")
	require.NoError(t, err)
	require.Equal(t, "/api/v3/simple/price", gotReq.URL.Path)
	require.Equal(t, "bitcoin,tether,solana", gotReq.URL.Query().Get("ids"))
	require.Equal(t, "usd", gotReq.URL.Query().Get("vs_currencies"))
	require.Equal(t, "demo-key", gotReq.Header.Get("x-cg-demo-api-key"))

	require.Len(t, prices, 2)
	require.InDelta(t, 50000.5, prices["bitcoin"], 1e-9)
	require.InDelta(t, 1.0, prices["tether"], 1e-9)
}

func TestCoinGeckoClient_NoKeyHeaderWhenUnset(t *testing.T) {
	var hasKey bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasKey = r.Header["X-Cg-Demo-Api-Key"]
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	c := NewCoinGeckoClient(srv.Client(), srv.URL, "")
	prices, err := c.GetPrices(context.Background(), []string{"bitcoin"}, "usd")
	require.NoError(t, err)
	require.Empty(t, prices)
	require.False(t, hasKey)
}

func TestCoinGeckoClient_RateLimitedIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	c := NewCoinGeckoClient(srv.Client(), srv.URL, "")
	_, err := c.GetPrices(context.Background(), []string{"bitcoin"}, "usd")
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	require.Contains(t, err.Error(), "429")
}

func TestCoinGeckoClient_BadShapeIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"bitcoin":{"usd":"lots"}}`))
	}))
	t.Cleanup(srv.Close)

	c := NewCoinGeckoClient(srv.Client(), srv.URL, "")
	_, err := c.GetPrices(context.Background(), []string{"bitcoin"}, "usd")
	require.ErrorIs(t, err, domain.ErrUpstreamMalformed)
}

func TestCoinGeckoClient_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewCoinGeckoClient(srv.Client(), srv.URL, "")
	_, err := c.GetPrices(ctx, []string{"bitcoin"}, "usd")
	require.ErrorIs(t, err, context.Canceled)
}
