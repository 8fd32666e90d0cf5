package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	accounthandler "cryptoquote/internal/account/handler"
	"cryptoquote/internal/domain"
	ratehandler "cryptoquote/internal/rate/handler"
	screenhandler "cryptoquote/internal/screen/handler"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func testRouter() *chi.Mux {
	return NewRouter([]string{"https://shop.example"}, Handlers{
		Rates:    ratehandler.NewRateHandler(nil, nil, nil, domain.DefaultCatalog(), nil, nil),
		Sessions: screenhandler.NewSessionHandler(nil, nil),
		Accounts: accounthandler.NewAccountHandler(nil),
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}),
	})
}

func TestNewRouter_Routes(t *testing.T) {
	want := map[string]bool{
		"GET /api/v1/assets":                  false,
		"GET /api/v1/rates":                   false,
		"POST /api/v1/rates/refresh":          false,
		"GET /api/v1/rates/history":           false,
		"GET /api/v1/rates/stream":            false,
		"GET /api/v1/quotes/{direction}":      false,
		"GET /api/v1/amounts/validate":        false,
		"POST /api/v1/sessions":               false,
		"GET /api/v1/sessions/{id}":           false,
		"PATCH /api/v1/sessions/{id}":         false,
		"DELETE /api/v1/sessions/{id}":        false,
		"POST /api/v1/sessions/{id}/checkout": false,
		"GET /api/v1/payments/{reference}":    false,
		"POST /api/v1/accounts/signup":        false,
		"POST /api/v1/accounts/login":         false,
		"POST /api/v1/accounts/otp/verify":    false,
		"POST /api/v1/accounts/otp/resend":    false,
		"GET /swagger/*":                      false,
	}

	err := chi.Walk(testRouter(), func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if _, ok := want[method+" "+route]; ok {
			want[method+" "+route] = true
		}
		return nil
	})
	require.NoError(t, err)
	for route, seen := range want {
		require.True(t, seen, "route %s is not registered", route)
	}
}

func TestNewRouter_HeartbeatAndMetrics(t *testing.T) {
	router := testRouter()

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusTeapot, rr.Code)
}

func TestNewRouter_CORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/rates", nil)
	req.Header.Set("Origin", "https://shop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := httptest.NewRecorder()

	testRouter().ServeHTTP(rr, req)

	require.Equal(t, "https://shop.example", rr.Header().Get("Access-Control-Allow-Origin"))
}
