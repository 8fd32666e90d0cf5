// Package quote converts between local-fiat and asset amounts against a rate table.
// Everything here is pure: no I/O, no hidden state.
package quote

import (
	"fmt"
	"strings"

	"cryptoquote/internal/domain"

	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

// Amount is the outcome of validating a raw input field. Entered is false for a blank field.
type Amount struct {
	Value   decimal.Decimal
	Entered bool
}

// Bounds on a typed amount. Anything outside them is rejected before any arithmetic runs.
const (
	MaxInputLength    = 40
	MaxIntegerDigits  = 15
	MaxFractionDigits = 18
)

// ValidateAmountInput accepts a blank field as "not yet entered" and rejects anything that is not a
// non-negative number within the amount bounds with ErrInvalidAmount.
func ValidateAmountInput(raw string) (Amount, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Amount{}, nil
	}
	if len(s) > MaxInputLength {
		return Amount{}, fmt.Errorf("%w: input longer than %d characters", domain.ErrInvalidAmount, MaxInputLength)
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidAmount, raw)
	}
	if v.IsNegative() {
		return Amount{}, fmt.Errorf("%w: %q is negative", domain.ErrInvalidAmount, raw)
	}
	if -int64(v.Exponent()) > MaxFractionDigits {
		return Amount{}, fmt.Errorf("%w: %q has more than %d decimal places", domain.ErrInvalidAmount, raw, MaxFractionDigits)
	}
	if int64(v.NumDigits())+int64(v.Exponent()) > MaxIntegerDigits {
		return Amount{}, fmt.Errorf("%w: %q has more than %d integer digits", domain.ErrInvalidAmount, raw, MaxIntegerDigits)
	}
	return Amount{Value: v, Entered: true}, nil
}

type Calculator struct {
	catalog    *domain.Catalog
	localFiat  string
	fiatSymbol string
}

func NewCalculator(catalog *domain.Catalog, localFiat, fiatSymbol string) *Calculator {
	return &Calculator{catalog: catalog, localFiat: strings.ToUpper(localFiat), fiatSymbol: fiatSymbol}
}

func (c *Calculator) LocalFiat() string { return c.localFiat }

// QuoteBuy converts a local-fiat amount into an asset amount rounded to the asset's precision.
func (c *Calculator) QuoteBuy(fiatAmount string, asset domain.AssetSymbol, table domain.RateTable) (domain.Quote, error) {
	amount, rate, err := c.prepare(fiatAmount, asset, table)
	if err != nil {
		return domain.Quote{}, err
	}
	places := c.catalog.Decimals(asset)
	out := amount.DivRound(rate, places)

	return domain.Quote{
		Direction:        domain.Buy,
		Asset:            asset,
		InputAmount:      amount,
		InputUnit:        c.localFiat,
		OutputAmount:     out.StringFixed(places),
		OutputUnit:       string(asset),
		RateUsed:         rate,
		RoundingDecimals: places,
		Display:          formatAmount(out, places, "") + " " + string(asset),
	}, nil
}

// QuoteSell converts an asset amount into local fiat, always at fiat precision.
func (c *Calculator) QuoteSell(assetAmount string, asset domain.AssetSymbol, table domain.RateTable) (domain.Quote, error) {
	amount, rate, err := c.prepare(assetAmount, asset, table)
	if err != nil {
		return domain.Quote{}, err
	}
	places := domain.FiatDecimals
	out := amount.Mul(rate).Round(places)

	return domain.Quote{
		Direction:        domain.Sell,
		Asset:            asset,
		InputAmount:      amount,
		InputUnit:        string(asset),
		OutputAmount:     out.StringFixed(places),
		OutputUnit:       c.localFiat,
		RateUsed:         rate,
		RoundingDecimals: places,
		Display:          formatAmount(out, places, c.fiatSymbol),
	}, nil
}

// Quote dispatches on direction.
func (c *Calculator) Quote(dir domain.Direction, raw string, asset domain.AssetSymbol, table domain.RateTable) (domain.Quote, error) {
	if dir == domain.Sell {
		return c.QuoteSell(raw, asset, table)
	}
	return c.QuoteBuy(raw, asset, table)
}

func (c *Calculator) prepare(raw string, asset domain.AssetSymbol, table domain.RateTable) (decimal.Decimal, decimal.Decimal, error) {
	amount, err := ValidateAmountInput(raw)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if !amount.Entered {
		return decimal.Zero, decimal.Zero, domain.ErrAmountNotEntered
	}
	rate, ok := table.Price(asset)
	if !ok {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w for %s", domain.ErrNoRateAvailable, asset)
	}
	return amount.Value, rate, nil
}

func formatAmount(v decimal.Decimal, places int32, symbol string) string {
	ac := accounting.Accounting{Symbol: symbol, Precision: int(places), Thousand: ",", Decimal: ".", Format: "%s%v"}
	return ac.FormatMoneyDecimal(v)
}
