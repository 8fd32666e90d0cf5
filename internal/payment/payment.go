// Package payment talks to the hosted checkout provider (Paystack). The service never sees card data:
// it creates a transaction, hands the buyer the authorization URL and later asks how it ended.
package payment

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"cryptoquote/internal/domain"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

var (
	ErrRejected          = errors.New("payment provider rejected the request")
	ErrReferenceNotFound = errors.New("payment reference not found")
)

type Status string

const (
	StatusSuccess   Status = "success"
	StatusCancelled Status = "cancelled"
	StatusPending   Status = "pending"
	StatusFailed    Status = "failed"
)

type Metadata struct {
	Asset       string `json:"crypto"`
	AssetAmount string `json:"cryptoAmount"`
}

type Request struct {
	AmountMinor int64
	Currency    string
	Email       string
	Reference   string
	Metadata    Metadata
}

type Checkout struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
}

type Outcome struct {
	Reference   string `json:"reference"`
	Status      Status `json:"status"`
	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`
	Message     string `json:"message,omitempty"`
}

var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// MinorUnits converts a fiat amount to the provider's integer unit (pesewas for GHS).
// The result is strictly positive and fits in an int64, otherwise ErrInvalidAmount is returned.
func MinorUnits(amount decimal.Decimal) (int64, error) {
	minor := amount.Shift(2).Round(0)
	if !minor.IsPositive() {
		return 0, fmt.Errorf("%w: amount must be above zero", domain.ErrInvalidAmount)
	}
	if minor.GreaterThan(maxMinorUnits) {
		return 0, fmt.Errorf("%w: amount %s is too large to charge", domain.ErrInvalidAmount, amount.String())
	}
	return minor.IntPart(), nil
}

// NewReference builds a unique, time-sortable transaction reference.
func NewReference(prefix string) string {
	id := ulid.Make().String()
	if prefix = strings.TrimSpace(prefix); prefix == "" {
		return id
	}
	return prefix + "-" + id
}

func statusFromProvider(s string) Status {
	switch strings.ToLower(s) {
	case "success":
		return StatusSuccess
	case "abandoned":
		return StatusCancelled
	case "failed", "reversed":
		return StatusFailed
	default:
		return StatusPending
	}
}
