package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cryptoquote/internal/account"
	accounthandler "cryptoquote/internal/account/handler"
	"cryptoquote/internal/adapters/cache"
	"cryptoquote/internal/adapters/httpclient"
	"cryptoquote/internal/adapters/postgres"
	"cryptoquote/internal/api"
	"cryptoquote/internal/config"
	"cryptoquote/internal/domain"
	"cryptoquote/internal/payment"
	"cryptoquote/internal/platform/db"
	httpserver "cryptoquote/internal/platform/http"
	"cryptoquote/internal/quote"
	"cryptoquote/internal/rate"
	ratehandler "cryptoquote/internal/rate/handler"
	"cryptoquote/internal/screen"
	screenhandler "cryptoquote/internal/screen/handler"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts HTTP server and scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(appCfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Base HTTP client (configurable timeout)
	httpTimeout := appCfg.HTTPClient.Timeout()
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}

	// Upstream clients
	exchangeAPIBaseURL := strings.TrimSuffix(appCfg.ExchangeRateAPI.BaseURL, "/")
	fiatClient := httpclient.NewExchangeRateClient(
		baseHTTPClient,
		fmt.Sprintf("%s/%s/latest", exchangeAPIBaseURL, appCfg.ExchangeRateAPI.APIKey),
	)
	cryptoClient := httpclient.NewCoinGeckoClient(
		baseHTTPClient,
		strings.TrimSuffix(appCfg.CoinGecko.BaseURL, "/"),
		appCfg.CoinGecko.APIKey,
	)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Rates and quotes
	catalog := domain.DefaultCatalog()
	aggregator := rate.NewAggregator(fiatClient, cryptoClient, catalog, rate.AggregatorConfig{
		LocalFiat:        appCfg.Pricing.LocalFiat,
		IntermediateFiat: appCfg.Pricing.IntermediateFiat,
		Timeout:          time.Duration(appCfg.Pricing.RefreshTimeoutSeconds) * time.Second,
	}, rate.NewMetrics(registry))
	calculator := quote.NewCalculator(catalog, appCfg.Pricing.LocalFiat, appCfg.Pricing.FiatSymbol)

	// Optional snapshot archive
	var history ratehandler.HistoryReader
	if appCfg.DbServer.Enabled() {
		repo, closeDB, dbErr := openArchive(ctx, appCfg.DbServer)
		if dbErr != nil {
			logrus.WithError(dbErr).Error("Error connecting to db")
			return dbErr
		}
		defer closeDB()
		history = repo
		go rate.ArchiveSnapshots(ctx, aggregator, repo, aggregator.LocalFiat())
		logrus.Info("✅ Snapshot archive enabled")
	} else {
		logrus.Info("No database configured, snapshot archive disabled")
	}

	// Periodic refresh
	if interval := appCfg.Scheduler.RefreshIntervalSec; interval > 0 {
		scheduler := rate.NewScheduler(aggregator, time.Duration(interval)*time.Second)
		// Ensure scheduler stops before DB pool closes
		defer func() {
			if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
				logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
			}
		}()
		if startErr := scheduler.Start(ctx); startErr != nil {
			logrus.WithError(startErr).Error("Failed to start scheduler")
			return startErr
		}
		logrus.Info("✅ Scheduler activation successful")
	}

	// Screen sessions and payment
	sessionStore, err := cache.NewSessionCache[screen.Session](
		appCfg.Sessions.MaxItems,
		time.Duration(appCfg.Sessions.TTLMinutes)*time.Minute,
	)
	if err != nil {
		return err
	}
	defer sessionStore.Close()
	paymentClient := payment.NewClient(baseHTTPClient, strings.TrimSuffix(appCfg.Payment.BaseURL, "/"), appCfg.Payment.SecretKey)
	sessionService := screen.NewService(ctx, aggregator, calculator, catalog, sessionStore, paymentClient, appCfg.Payment.ReferencePrefix)

	// Identity
	accountService := account.NewService(account.NewClient(baseHTTPClient, strings.TrimSuffix(appCfg.Identity.BaseURL, "/")))

	// Handlers and router
	router := api.NewRouter(appCfg.HTTPServer.AllowedOrigins, api.Handlers{
		Rates:    ratehandler.NewRateHandler(aggregator, calculator, rate.NewValidator(catalog), catalog, history, appCfg.HTTPServer.AllowedOrigins),
		Sessions: screenhandler.NewSessionHandler(sessionService, paymentClient),
		Accounts: accounthandler.NewAccountHandler(accountService),
		Metrics:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop scheduler and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

// openArchive connects to Postgres, applies migrations and returns the snapshot repository.
func openArchive(ctx context.Context, cfg config.DbServer) (*postgres.SnapshotRepository, func(), error) {
	// Bounded context for startup operations
	startupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := db.Migrate(startupCtx, cfg.GetConnectionStr()); err != nil {
		return nil, nil, err
	}
	pool, err := db.CreatePoolAndPing(startupCtx, cfg)
	if err != nil {
		return nil, nil, err
	}
	logrus.Info("✅ Postgres connection successful")
	return postgres.NewSnapshotRepository(pool), pool.Close, nil
}
