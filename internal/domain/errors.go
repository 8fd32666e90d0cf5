package domain

import "errors"

var (
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrUpstreamMalformed   = errors.New("upstream response malformed")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrNoRateAvailable     = errors.New("no rate available")
	ErrAmountNotEntered    = errors.New("amount not entered")
	ErrUnknownAsset        = errors.New("unknown asset")
	ErrSessionNotFound     = errors.New("session not found")
	ErrQuoteRequired       = errors.New("buy quote required")
)
