// Package screen holds the trading screen's state for one browsing session. A State is a value:
// every transition returns a new State and leaves the receiver untouched.
package screen

import (
	"errors"
	"fmt"
	"time"

	"cryptoquote/internal/domain"
	"cryptoquote/internal/quote"
)

const (
	MsgInvalidAmount = "Please enter a valid positive number."
	MsgFetchFailed   = "Failed to fetch rates. Check your internet connection."
	MsgRatesLoading  = "Rates are still loading. Please wait."
)

type State struct {
	Direction domain.Direction
	Asset     domain.AssetSymbol
	// BuyInput is the local-fiat amount typed on the buy side, SellInput the asset amount on the sell side.
	BuyInput  string
	SellInput string
	Quote     *domain.Quote
	Message   string
	RatesAt   time.Time
	Loading   bool

	table       domain.RateTable
	fetchErr    error
	rateVersion uint64
	calc        *quote.Calculator
}

func NewState(calc *quote.Calculator, asset domain.AssetSymbol) State {
	return State{Direction: domain.Buy, Asset: asset, calc: calc}
}

// Input is the raw amount for the current direction.
func (s State) Input() string {
	if s.Direction == domain.Sell {
		return s.SellInput
	}
	return s.BuyInput
}

func (s State) RateVersion() uint64 { return s.rateVersion }

func (s State) WithDirection(d domain.Direction) State {
	s.Direction = d
	return s.requote()
}

func (s State) WithAsset(a domain.AssetSymbol) State {
	s.Asset = a
	return s.requote()
}

func (s State) WithAmount(raw string) State {
	if s.Direction == domain.Sell {
		s.SellInput = raw
	} else {
		s.BuyInput = raw
	}
	return s.requote()
}

// WithSnapshot moves the state onto a new aggregator snapshot and requotes the current input.
// A failure this state has not seen yet replaces whatever message was shown. The aggregator keeps
// the same error value until the next fetch completes, so a version bump that only starts loading
// does not bring back a message the user already cleared.
func (s State) WithSnapshot(snap domain.Snapshot) State {
	newFailure := snap.Status.LastError != nil && snap.Status.LastError != s.fetchErr

	s.table = snap.Table
	s.RatesAt = snap.Status.LastSuccess
	s.Loading = snap.Status.IsLoading
	s.fetchErr = snap.Status.LastError
	s.rateVersion = snap.Version

	s = s.requote()
	if newFailure {
		s.Message = MsgFetchFailed
	}
	return s
}

func (s State) requote() State {
	q, err := s.calc.Quote(s.Direction, s.Input(), s.Asset, s.table)
	if err == nil {
		s.Quote = &q
		s.Message = ""
		return s
	}
	s.Quote = nil
	s.Message = s.messageFor(err)
	return s
}

func (s State) messageFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrAmountNotEntered):
		return ""
	case errors.Is(err, domain.ErrInvalidAmount):
		return MsgInvalidAmount
	case errors.Is(err, domain.ErrNoRateAvailable):
		if s.table.Len() == 0 {
			if s.fetchErr != nil {
				return MsgFetchFailed
			}
			return MsgRatesLoading
		}
		return fmt.Sprintf("The %s rate is not available right now.", s.Asset)
	default:
		return err.Error()
	}
}
