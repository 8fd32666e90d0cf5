package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Direction string

const (
	Buy  Direction = "buy"
	Sell Direction = "sell"
)

func ParseDirection(raw string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(raw))); d {
	case Buy, Sell:
		return d, nil
	default:
		return "", fmt.Errorf("unknown direction %q", raw)
	}
}

// Quote is a one-shot conversion result; it is recomputed on every input change and never stored.
type Quote struct {
	Direction        Direction
	Asset            AssetSymbol
	InputAmount      decimal.Decimal
	InputUnit        string
	OutputAmount     string
	OutputUnit       string
	RateUsed         decimal.Decimal
	RoundingDecimals int32
	Display          string
}
