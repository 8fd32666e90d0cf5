package api

import (
	"net/http"

	_ "cryptoquote/docs"
	accounthandler "cryptoquote/internal/account/handler"
	ratehandler "cryptoquote/internal/rate/handler"
	screenhandler "cryptoquote/internal/screen/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	swagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Rates    *ratehandler.Handler
	Sessions *screenhandler.Handler
	Accounts *accounthandler.Handler
	Metrics  http.Handler
}

func NewRouter(allowedOrigins []string, h Handlers) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)
	if h.Metrics != nil {
		router.Handle("/metrics", h.Metrics)
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/assets", h.Rates.GetAssets)
		r.Get("/rates", h.Rates.GetRates)
		r.Post("/rates/refresh", h.Rates.RefreshRates)
		r.Get("/rates/history", h.Rates.GetHistory)
		r.Get("/rates/stream", h.Rates.StreamRates)
		r.Get("/quotes/{direction}", h.Rates.GetQuote)
		r.Get("/amounts/validate", h.Rates.ValidateAmount)

		r.Post("/sessions", h.Sessions.Open)
		r.Get("/sessions/{id}", h.Sessions.Get)
		r.Patch("/sessions/{id}", h.Sessions.Apply)
		r.Delete("/sessions/{id}", h.Sessions.Close)
		r.Post("/sessions/{id}/checkout", h.Sessions.Checkout)
		r.Get("/payments/{reference}", h.Sessions.VerifyPayment)

		r.Post("/accounts/signup", h.Accounts.Signup)
		r.Post("/accounts/login", h.Accounts.Login)
		r.Post("/accounts/otp/verify", h.Accounts.VerifyOTP)
		r.Post("/accounts/otp/resend", h.Accounts.ResendOTP)
	})
	return router
}
