package rate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"cryptoquote/internal/adapters"
	"cryptoquote/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const defaultRefreshTimeout = 5 * time.Second

// state is never modified after it is published; every change swaps in a new value.
type state struct {
	table       domain.RateTable
	lastSuccess time.Time
	lastErr     error
	inFlight    int
	version     uint64
}

func (s *state) snapshot() domain.Snapshot {
	return domain.Snapshot{
		Table: s.table,
		Status: domain.FetchStatus{
			LastSuccess: s.lastSuccess,
			LastError:   s.lastErr,
			IsLoading:   s.inFlight > 0,
		},
		Version: s.version,
	}
}

// Aggregator keeps one local-fiat rate table built from a fiat/fiat feed and a crypto price feed
// quoted in an intermediate fiat.
type Aggregator struct {
	fiatClient   adapters.FiatRateClient
	cryptoClient adapters.CryptoPriceClient
	catalog      *domain.Catalog
	localFiat    string
	interFiat    string
	timeout      time.Duration
	metrics      *Metrics
	now          func() time.Time

	state atomic.Pointer[state]

	subsMu  sync.Mutex
	subs    map[int]chan domain.Snapshot
	nextSub int
}

type AggregatorConfig struct {
	LocalFiat        string
	IntermediateFiat string
	Timeout          time.Duration
}

func NewAggregator(fiatClient adapters.FiatRateClient, cryptoClient adapters.CryptoPriceClient, catalog *domain.Catalog, cfg AggregatorConfig, metrics *Metrics) *Aggregator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultRefreshTimeout
	}
	a := &Aggregator{
		fiatClient:   fiatClient,
		cryptoClient: cryptoClient,
		catalog:      catalog,
		localFiat:    strings.ToUpper(cfg.LocalFiat),
		interFiat:    strings.ToUpper(cfg.IntermediateFiat),
		timeout:      cfg.Timeout,
		metrics:      metrics,
		now:          time.Now,
		subs:         make(map[int]chan domain.Snapshot),
	}
	a.state.Store(&state{})
	return a
}

func (a *Aggregator) LocalFiat() string { return a.localFiat }

// Snapshot returns the current table and fetch status. The returned value never changes afterwards.
func (a *Aggregator) Snapshot() domain.Snapshot {
	return a.state.Load().snapshot()
}

// Refresh fetches both feeds concurrently and replaces the table only when both succeed.
// A failure keeps the previous table and is recorded in the fetch status. When ctx is canceled
// before the feeds answer, the outcome is dropped and the status is left as it was.
func (a *Aggregator) Refresh(ctx context.Context) error {
	started := a.now()
	a.update(func(s *state) { s.inFlight++ })

	table, err := a.fetch(ctx)

	// STEP 1: the caller went away, nothing may be applied
	if ctxErr := ctx.Err(); ctxErr != nil {
		a.update(func(s *state) { s.inFlight-- })
		a.metrics.observe(resultDiscarded, a.now().Sub(started), -1)
		return fmt.Errorf("refresh discarded: %w", ctxErr)
	}

	// STEP 2: joint failure, previous table stays
	if err != nil {
		snap := a.update(func(s *state) {
			s.inFlight--
			s.lastErr = err
		})
		a.metrics.observe(resultFailure, a.now().Sub(started), -1)
		a.publish(snap)
		return err
	}

	// STEP 3: joint success, the whole table is replaced in one swap
	finished := a.now()
	snap := a.update(func(s *state) {
		s.inFlight--
		s.table = table
		s.lastSuccess = finished
		s.lastErr = nil
	})
	a.metrics.observe(resultSuccess, finished.Sub(started), table.Len())
	a.publish(snap)
	return nil
}

// fetch issues both requests at once and merges them into a local-fiat table.
func (a *Aggregator) fetch(ctx context.Context) (domain.RateTable, error) {
	legCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	var (
		fiatRate     decimal.Decimal
		cryptoPrices map[string]float64
	)

	g, gctx := errgroup.WithContext(legCtx)
	g.Go(func() error {
		rates, err := a.fiatClient.GetExchangeRates(gctx, a.interFiat)
		if err != nil {
			return fmt.Errorf("fiat rate %s/%s: %w", a.interFiat, a.localFiat, err)
		}
		v, ok := rates[a.localFiat]
		if !ok {
			return fmt.Errorf("%w: fiat rate %s/%s missing from response", domain.ErrUpstreamMalformed, a.interFiat, a.localFiat)
		}
		fiatRate = decimal.NewFromFloat(v)
		if !fiatRate.IsPositive() {
			return fmt.Errorf("%w: fiat rate %s/%s is not positive: %v", domain.ErrUpstreamMalformed, a.interFiat, a.localFiat, v)
		}
		return nil
	})
	g.Go(func() error {
		prices, err := a.cryptoClient.GetPrices(gctx, a.catalog.ProviderIDs(), a.interFiat)
		if err != nil {
			return fmt.Errorf("crypto prices in %s: %w", a.interFiat, err)
		}
		cryptoPrices = prices
		return nil
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, domain.ErrUpstreamUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
		}
		return domain.RateTable{}, err
	}

	return a.merge(fiatRate, cryptoPrices)
}

func (a *Aggregator) merge(fiatRate decimal.Decimal, cryptoPrices map[string]float64) (domain.RateTable, error) {
	prices := make(map[domain.AssetSymbol]decimal.Decimal, len(cryptoPrices))
	for id, v := range cryptoPrices {
		asset, ok := a.catalog.ByProviderID(id)
		if !ok {
			continue
		}
		p := decimal.NewFromFloat(v)
		if !p.IsPositive() {
			return domain.RateTable{}, fmt.Errorf("%w: price of %s is not positive: %v", domain.ErrUpstreamMalformed, asset.Symbol, v)
		}
		prices[asset.Symbol] = p.Mul(fiatRate)
	}
	if len(prices) == 0 {
		return domain.RateTable{}, fmt.Errorf("%w: no known asset in price response", domain.ErrUpstreamMalformed)
	}
	return domain.NewRateTable(prices), nil
}

// update applies fn to a copy of the current state and swaps it in, retrying on contention.
func (a *Aggregator) update(fn func(s *state)) domain.Snapshot {
	for {
		cur := a.state.Load()
		next := *cur
		fn(&next)
		next.version++
		if a.state.CompareAndSwap(cur, &next) {
			return next.snapshot()
		}
	}
}

// Subscribe returns a channel receiving every committed snapshot. A slow reader only loses older
// snapshots, never the latest one. The returned func unsubscribes and closes the channel.
func (a *Aggregator) Subscribe() (<-chan domain.Snapshot, func()) {
	ch := make(chan domain.Snapshot, 1)

	a.subsMu.Lock()
	id := a.nextSub
	a.nextSub++
	a.subs[id] = ch
	a.subsMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			a.subsMu.Lock()
			delete(a.subs, id)
			a.subsMu.Unlock()
			close(ch)
		})
	}
}

func (a *Aggregator) publish(snap domain.Snapshot) {
	a.subsMu.Lock()
	defer a.subsMu.Unlock()

	for id, ch := range a.subs {
		select {
		case ch <- snap:
			continue
		default:
		}
		// drop the stale one and retry once
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
			logrus.WithField("subscriber", id).Warn("Snapshot subscriber is not keeping up")
		}
	}
}
