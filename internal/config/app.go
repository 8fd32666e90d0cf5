package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// Enabled reports whether a database is configured; without one the snapshot archive is off.
func (config *DbServer) Enabled() bool {
	return strings.TrimSpace(config.Host) != ""
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

func (c HTTPClient) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type Upstream struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

type Pricing struct {
	LocalFiat             string `mapstructure:"local_fiat"`
	FiatSymbol            string `mapstructure:"fiat_symbol"`
	IntermediateFiat      string `mapstructure:"intermediate_fiat"`
	RefreshTimeoutSeconds int    `mapstructure:"refresh_timeout_seconds"`
}

type Scheduler struct {
	RefreshIntervalSec int `mapstructure:"refresh_interval_sec"`
}

type Sessions struct {
	MaxItems   int64 `mapstructure:"max_items"`
	TTLMinutes int   `mapstructure:"ttl_minutes"`
}

type Identity struct {
	BaseURL string `mapstructure:"base_url"`
}

type Payment struct {
	BaseURL         string `mapstructure:"base_url"`
	SecretKey       string `mapstructure:"secret_key"`
	ReferencePrefix string `mapstructure:"reference_prefix"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	HTTPServer      HTTPServer `mapstructure:"http_server"`
	DbServer        DbServer   `mapstructure:"db_server"`
	HTTPClient      HTTPClient `mapstructure:"http_client"`
	ExchangeRateAPI Upstream   `mapstructure:"exchange_rate_api"`
	CoinGecko       Upstream   `mapstructure:"coingecko"`
	Pricing         Pricing    `mapstructure:"pricing"`
	Scheduler       Scheduler  `mapstructure:"scheduler"`
	Sessions        Sessions   `mapstructure:"sessions"`
	Identity        Identity   `mapstructure:"identity"`
	Payment         Payment    `mapstructure:"payment"`
	Logging         Logging    `mapstructure:"logging"`
}

// Init reads .env (optional) and config.yaml from the working directory.
func Init() (*AppConfig, error) {
	return Load("config.yaml")
}

func Load(path string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	setDefaults(v)
	bindEnv(v)

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_server.port", "8080")
	v.SetDefault("http_server.allowed_origins", []string{"*"})
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("exchange_rate_api.base_url", "https://v6.exchangerate-api.com/v6")
	v.SetDefault("coingecko.base_url", "https://api.coingecko.com/api/v3")
	v.SetDefault("pricing.local_fiat", "GHS")
	v.SetDefault("pricing.fiat_symbol", "GH¢")
	v.SetDefault("pricing.intermediate_fiat", "USD")
	v.SetDefault("pricing.refresh_timeout_seconds", 5)
	v.SetDefault("scheduler.refresh_interval_sec", 60)
	v.SetDefault("sessions.max_items", 10000)
	v.SetDefault("sessions.ttl_minutes", 30)
	v.SetDefault("payment.base_url", "https://api.paystack.co")
	v.SetDefault("payment.reference_prefix", "SHEERAH")
	v.SetDefault("db_server.max_conns", 10)
	v.SetDefault("logging.level", "info")
}

func bindEnv(v *viper.Viper) {
	// http server env vars
	_ = v.BindEnv("http_server.port", "PORT")

	// upstream env vars
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")
	_ = v.BindEnv("exchange_rate_api.api_key", "EXCHANGE_RATE_API_KEY")
	_ = v.BindEnv("coingecko.api_key", "COINGECKO_API_KEY")
	_ = v.BindEnv("identity.base_url", "IDENTITY_BASE_URL")
	_ = v.BindEnv("payment.secret_key", "PAYSTACK_SECRET_KEY")

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	_ = v.BindEnv("logging.level", "LOG_LEVEL")
}

func (cfg *AppConfig) validate() error {
	if strings.TrimSpace(cfg.ExchangeRateAPI.APIKey) == "" {
		return errors.New("exchange_rate_api.api_key is required (EXCHANGE_RATE_API_KEY)")
	}
	if cfg.Scheduler.RefreshIntervalSec < 0 {
		return fmt.Errorf("scheduler.refresh_interval_sec must not be negative, got %d", cfg.Scheduler.RefreshIntervalSec)
	}
	if cfg.Sessions.MaxItems <= 0 || cfg.Sessions.TTLMinutes <= 0 {
		return errors.New("sessions.max_items and sessions.ttl_minutes must be positive")
	}
	return nil
}
