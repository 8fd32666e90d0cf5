package screen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"cryptoquote/internal/account"
	"cryptoquote/internal/domain"
	"cryptoquote/internal/payment"
	"cryptoquote/internal/quote"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrInvalidDirection = errors.New("direction must be buy or sell")

type RateSource interface {
	Snapshot() domain.Snapshot
	Refresh(ctx context.Context) error
}

type PaymentGateway interface {
	Initialize(ctx context.Context, req payment.Request) (payment.Checkout, error)
}

type Store interface {
	Get(id uuid.UUID) (Session, bool)
	Set(id uuid.UUID, s Session) bool
	Delete(id uuid.UUID)
}

type Session struct {
	ID        uuid.UUID
	State     State
	CreatedAt time.Time

	cancel context.CancelFunc
}

// Input carries the fields a client changed; nil fields are left alone.
type Input struct {
	Direction *string `json:"direction,omitempty"`
	Asset     *string `json:"asset,omitempty"`
	Amount    *string `json:"amount,omitempty"`
}

type Service struct {
	base      context.Context
	rates     RateSource
	calc      *quote.Calculator
	catalog   *domain.Catalog
	store     Store
	payments  PaymentGateway
	refPrefix string

	mu sync.Mutex
}

// NewService binds every session's background work to base, so canceling base stops all of it.
func NewService(base context.Context, rates RateSource, calc *quote.Calculator, catalog *domain.Catalog, store Store, payments PaymentGateway, refPrefix string) *Service {
	return &Service{
		base:      base,
		rates:     rates,
		calc:      calc,
		catalog:   catalog,
		store:     store,
		payments:  payments,
		refPrefix: refPrefix,
	}
}

// Open starts a session, the equivalent of entering the trading screen: it triggers one refresh
// that belongs to the session and is discarded if the session is closed first. The session's context
// is released as soon as that refresh returns.
func (s *Service) Open() Session {
	ctx, cancel := context.WithCancel(s.base)
	sess := Session{ID: uuid.New(), CreatedAt: time.Now().UTC(), cancel: cancel}

	go func() {
		defer cancel()
		if err := s.rates.Refresh(ctx); err != nil && ctx.Err() == nil {
			logrus.WithError(err).WithField("session_id", sess.ID).Warn("Screen entry refresh failed")
		}
	}()

	var first domain.AssetSymbol
	if assets := s.catalog.Assets(); len(assets) > 0 {
		first = assets[0].Symbol
	}
	sess.State = NewState(s.calc, first).WithSnapshot(s.rates.Snapshot())

	s.mu.Lock()
	s.save(sess)
	s.mu.Unlock()
	return sess
}

func (s *Service) Get(id uuid.UUID) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.load(id)
	if err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Apply runs the requested transitions in order direction, asset, amount and stores the result.
// Nothing is stored when a field does not parse.
func (s *Service) Apply(id uuid.UUID, in Input) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.load(id)
	if err != nil {
		return Session{}, err
	}

	st := sess.State
	if in.Direction != nil {
		dir, dirErr := domain.ParseDirection(*in.Direction)
		if dirErr != nil {
			return Session{}, fmt.Errorf("%w: %q", ErrInvalidDirection, *in.Direction)
		}
		st = st.WithDirection(dir)
	}
	if in.Asset != nil {
		asset, assetErr := s.catalog.ParseSymbol(*in.Asset)
		if assetErr != nil {
			return Session{}, assetErr
		}
		st = st.WithAsset(asset)
	}
	if in.Amount != nil {
		st = st.WithAmount(*in.Amount)
	}

	sess.State = st
	s.save(sess)
	return sess, nil
}

// Close tears the session down and cancels its pending refresh.
func (s *Service) Close(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.store.Get(id)
	if !ok {
		return domain.ErrSessionNotFound
	}
	if sess.cancel != nil {
		sess.cancel()
	}
	s.store.Delete(id)
	return nil
}

// Checkout hands the session's current buy quote to the payment provider.
func (s *Service) Checkout(ctx context.Context, id uuid.UUID, email string) (payment.Checkout, payment.Request, error) {
	sess, err := s.Get(id)
	if err != nil {
		return payment.Checkout{}, payment.Request{}, err
	}
	st := sess.State
	if st.Direction != domain.Buy || st.Quote == nil {
		return payment.Checkout{}, payment.Request{}, domain.ErrQuoteRequired
	}
	if err = account.ValidateEmail(email); err != nil {
		return payment.Checkout{}, payment.Request{}, err
	}

	amountMinor, err := payment.MinorUnits(st.Quote.InputAmount)
	if err != nil {
		return payment.Checkout{}, payment.Request{}, err
	}

	req := payment.Request{
		AmountMinor: amountMinor,
		Currency:    s.calc.LocalFiat(),
		Email:       strings.TrimSpace(email),
		Reference:   payment.NewReference(s.refPrefix),
		Metadata: payment.Metadata{
			Asset:       string(st.Quote.Asset),
			AssetAmount: st.Quote.OutputAmount,
		},
	}
	checkout, err := s.payments.Initialize(ctx, req)
	if err != nil {
		return payment.Checkout{}, req, fmt.Errorf("failed to start checkout for session %s: %w", id, err)
	}
	return checkout, req, nil
}

// load returns the session moved onto the latest rate snapshot. Callers hold s.mu.
func (s *Service) load(id uuid.UUID) (Session, error) {
	sess, ok := s.store.Get(id)
	if !ok {
		return Session{}, domain.ErrSessionNotFound
	}
	if snap := s.rates.Snapshot(); snap.Version != sess.State.RateVersion() {
		sess.State = sess.State.WithSnapshot(snap)
		s.save(sess)
	}
	return sess, nil
}

func (s *Service) save(sess Session) {
	if !s.store.Set(sess.ID, sess) {
		logrus.WithField("session_id", sess.ID).Warn("Session store dropped a write")
	}
}
