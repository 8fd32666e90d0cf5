package domain

import (
	"fmt"
	"strings"
)

type AssetSymbol string

const (
	BTC  AssetSymbol = "BTC"
	ETH  AssetSymbol = "ETH"
	USDT AssetSymbol = "USDT"
	LTC  AssetSymbol = "LTC"
	XRP  AssetSymbol = "XRP"
	ADA  AssetSymbol = "ADA"
	SOL  AssetSymbol = "SOL"
)

const (
	FiatDecimals       int32 = 2
	StablecoinDecimals int32 = 2
	CryptoDecimals     int32 = 8
)

// Asset is one row of the storefront's asset table: the ticker shown to users,
// the identifier the price provider knows it by and its rounding policy.
type Asset struct {
	Symbol     AssetSymbol `json:"symbol"`
	ProviderID string      `json:"provider_id"`
	Name       string      `json:"name"`
	Stablecoin bool        `json:"stablecoin"`
}

func (a Asset) Decimals() int32 {
	if a.Stablecoin {
		return StablecoinDecimals
	}
	return CryptoDecimals
}

// Catalog is the static, ordered asset configuration. It is never mutated after construction.
type Catalog struct {
	assets     []Asset
	bySymbol   map[AssetSymbol]Asset
	byProvider map[string]Asset
}

func NewCatalog(assets ...Asset) *Catalog {
	c := &Catalog{
		assets:     make([]Asset, 0, len(assets)),
		bySymbol:   make(map[AssetSymbol]Asset, len(assets)),
		byProvider: make(map[string]Asset, len(assets)),
	}
	for _, a := range assets {
		if _, dup := c.bySymbol[a.Symbol]; dup {
			continue
		}
		c.assets = append(c.assets, a)
		c.bySymbol[a.Symbol] = a
		c.byProvider[a.ProviderID] = a
	}
	return c
}

func DefaultCatalog() *Catalog {
	return NewCatalog(
		Asset{Symbol: BTC, ProviderID: "bitcoin", Name: "Bitcoin"},
		Asset{Symbol: ETH, ProviderID: "ethereum", Name: "Ethereum"},
		Asset{Symbol: USDT, ProviderID: "tether", Name: "Tether", Stablecoin: true},
		Asset{Symbol: LTC, ProviderID: "litecoin", Name: "Litecoin"},
		Asset{Symbol: XRP, ProviderID: "ripple", Name: "XRP"},
		Asset{Symbol: ADA, ProviderID: "cardano", Name: "Cardano"},
		Asset{Symbol: SOL, ProviderID: "solana", Name: "Solana"},
	)
}

func (c *Catalog) Assets() []Asset {
	out := make([]Asset, len(c.assets))
	copy(out, c.assets)
	return out
}

func (c *Catalog) Lookup(symbol AssetSymbol) (Asset, bool) {
	a, ok := c.bySymbol[symbol]
	return a, ok
}

func (c *Catalog) ByProviderID(id string) (Asset, bool) {
	a, ok := c.byProvider[id]
	return a, ok
}

func (c *Catalog) ProviderIDs() []string {
	ids := make([]string, 0, len(c.assets))
	for _, a := range c.assets {
		ids = append(ids, a.ProviderID)
	}
	return ids
}

func (c *Catalog) IsStablecoin(symbol AssetSymbol) bool {
	return c.bySymbol[symbol].Stablecoin
}

// Decimals returns the rounding precision for the asset, unknown symbols get the crypto policy.
func (c *Catalog) Decimals(symbol AssetSymbol) int32 {
	if a, ok := c.bySymbol[symbol]; ok {
		return a.Decimals()
	}
	return CryptoDecimals
}

func (c *Catalog) ParseSymbol(raw string) (AssetSymbol, error) {
	s := AssetSymbol(strings.ToUpper(strings.TrimSpace(raw)))
	if s == "" {
		return "", fmt.Errorf("%w: asset is required", ErrUnknownAsset)
	}
	if _, ok := c.bySymbol[s]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAsset, raw)
	}
	return s, nil
}
