package rate

import (
	"time"

	"cryptoquote/internal/domain"
)

type PriceView struct {
	Asset      domain.AssetSymbol `json:"asset"`
	Name       string             `json:"name"`
	Price      string             `json:"price"`
	Stablecoin bool               `json:"stablecoin"`
	Decimals   int32              `json:"decimals"`
}

type SnapshotView struct {
	Fiat        string      `json:"fiat"`
	Rates       []PriceView `json:"rates"`
	LastSuccess *time.Time  `json:"last_success,omitempty"`
	LastError   string      `json:"last_error,omitempty"`
	IsLoading   bool        `json:"is_loading"`
}

// NewSnapshotView lists the priced assets in catalog order.
func NewSnapshotView(snap domain.Snapshot, catalog *domain.Catalog, fiat string) SnapshotView {
	v := SnapshotView{
		Fiat:      fiat,
		Rates:     make([]PriceView, 0, snap.Table.Len()),
		IsLoading: snap.Status.IsLoading,
	}
	for _, a := range catalog.Assets() {
		p, ok := snap.Table.Price(a.Symbol)
		if !ok {
			continue
		}
		v.Rates = append(v.Rates, PriceView{
			Asset:      a.Symbol,
			Name:       a.Name,
			Price:      p.Round(domain.CryptoDecimals).String(),
			Stablecoin: a.Stablecoin,
			Decimals:   a.Decimals(),
		})
	}
	if snap.Status.HasSucceeded() {
		ts := snap.Status.LastSuccess.UTC()
		v.LastSuccess = &ts
	}
	if snap.Status.LastError != nil {
		v.LastError = snap.Status.LastError.Error()
	}
	return v
}

type QuoteView struct {
	Direction    domain.Direction   `json:"direction"`
	Asset        domain.AssetSymbol `json:"asset"`
	InputAmount  string             `json:"input_amount"`
	InputUnit    string             `json:"input_unit"`
	OutputAmount string             `json:"output_amount"`
	OutputUnit   string             `json:"output_unit"`
	Rate         string             `json:"rate"`
	Decimals     int32              `json:"decimals"`
	Display      string             `json:"display"`
}

func NewQuoteView(q domain.Quote) QuoteView {
	return QuoteView{
		Direction:    q.Direction,
		Asset:        q.Asset,
		InputAmount:  q.InputAmount.String(),
		InputUnit:    q.InputUnit,
		OutputAmount: q.OutputAmount,
		OutputUnit:   q.OutputUnit,
		Rate:         q.RateUsed.Round(domain.CryptoDecimals).String(),
		Decimals:     q.RoundingDecimals,
		Display:      q.Display,
	}
}
