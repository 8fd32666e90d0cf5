package adapters

import (
	"context"
	"time"

	"cryptoquote/internal/domain"
)

// FiatRateClient returns conversion rates quoted against base, keyed by currency code.
type FiatRateClient interface {
	GetExchangeRates(ctx context.Context, base string) (map[string]float64, error)
}

// CryptoPriceClient returns prices keyed by provider asset id.
type CryptoPriceClient interface {
	GetPrices(ctx context.Context, ids []string, vsCurrency string) (map[string]float64, error)
}

type SnapshotRecorder interface {
	Record(ctx context.Context, fiat string, fetchedAt time.Time, table domain.RateTable) error
}
