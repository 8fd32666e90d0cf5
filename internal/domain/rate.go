package domain

import (
	"maps"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateTable maps an asset to its local-fiat price for one unit. Every stored value is strictly positive;
// a missing key means the price is unknown.
type RateTable struct {
	prices map[AssetSymbol]decimal.Decimal
}

// NewRateTable copies prices, dropping non-positive entries.
func NewRateTable(prices map[AssetSymbol]decimal.Decimal) RateTable {
	m := make(map[AssetSymbol]decimal.Decimal, len(prices))
	for s, p := range prices {
		if p.IsPositive() {
			m[s] = p
		}
	}
	return RateTable{prices: m}
}

func (t RateTable) Price(symbol AssetSymbol) (decimal.Decimal, bool) {
	p, ok := t.prices[symbol]
	return p, ok
}

func (t RateTable) Len() int { return len(t.prices) }

// Prices returns a copy, callers may modify it freely.
func (t RateTable) Prices() map[AssetSymbol]decimal.Decimal {
	return maps.Clone(t.prices)
}

type FetchStatus struct {
	LastSuccess time.Time
	LastError   error
	IsLoading   bool
}

func (s FetchStatus) HasSucceeded() bool { return !s.LastSuccess.IsZero() }

// Snapshot is the read-only view of the aggregator handed to readers.
// Version grows with every state change, so equal versions mean equal snapshots.
type Snapshot struct {
	Table   RateTable
	Status  FetchStatus
	Version uint64
}

// ArchivedSnapshot is a successfully fetched table as it was written to the archive.
type ArchivedSnapshot struct {
	ID        uuid.UUID
	Fiat      string
	FetchedAt time.Time
	Table     RateTable
}
