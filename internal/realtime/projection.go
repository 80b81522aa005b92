// Package realtime keeps an in-memory view of subscribed wallets up to date
// from the ledger change feed and fans the changes out to local observers.
package realtime

//go:generate mockgen -source=projection.go -destination=projection_mock.go -package=realtime

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-token-ledger/internal/logger"
	"github.com/sbilibin2017/gw-token-ledger/internal/metrics"
	"github.com/sbilibin2017/gw-token-ledger/internal/models"
	"github.com/sbilibin2017/gw-token-ledger/internal/services"
)

// Projection defaults
const (
	DefaultHistorySize = 50
	DefaultBufferSize  = 16
)

// ErrProjectionClosed is returned by Subscribe after Close.
var ErrProjectionClosed = errors.New("projection closed")

// Snapshotter loads the current state of a wallet for a (re)subscription.
type Snapshotter interface {
	GetOrCreateWallet(ctx context.Context, userID uuid.UUID) (*models.Wallet, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) (*services.TransactionPage, error)
}

// View is the projected state of one wallet. Transactions are newest first.
type View struct {
	UserID       uuid.UUID            `json:"userId"`
	Balance      int64                `json:"balance"`
	LastAction   string               `json:"lastAction"`
	Version      int64                `json:"version"`
	Transactions []models.Transaction `json:"transactions"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

func (v View) clone() View {
	v.Transactions = append([]models.Transaction(nil), v.Transactions...)
	return v
}

type userView struct {
	view View
	subs map[*Subscription]struct{}
}

// Projection is the observer registry. Events for wallets nobody watches are dropped.
type Projection struct {
	snapshots   Snapshotter
	historySize int
	bufferSize  int

	mu     sync.Mutex
	views  map[uuid.UUID]*userView
	closed bool
}

// NewProjection creates a Projection that refetches through snapshots.
func NewProjection(snapshots Snapshotter) *Projection {
	return &Projection{
		snapshots:   snapshots,
		historySize: DefaultHistorySize,
		bufferSize:  DefaultBufferSize,
		views:       make(map[uuid.UUID]*userView),
	}
}

// Subscription delivers view updates for one wallet. Updates is closed when the
// subscription or the projection is closed, or when the subscriber fell behind.
// In the latter case Overflowed reports true and the caller should resubscribe.
type Subscription struct {
	projection *Projection
	userID     uuid.UUID

	mu         sync.Mutex
	updates    chan View
	closed     bool
	overflowed bool
}

// Updates returns the channel of view changes.
func (s *Subscription) Updates() <-chan View {
	return s.updates
}

// Overflowed reports whether the subscription was dropped for falling behind.
func (s *Subscription) Overflowed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overflowed
}

// Close unregisters the subscription. It is safe to call more than once.
func (s *Subscription) Close() {
	s.projection.unregister(s)
	s.shut(false)
}

// deliver reports false when the subscriber overflowed and has to be unregistered.
func (s *Subscription) deliver(v View) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return true
	}
	select {
	case s.updates <- v:
		return true
	default:
		s.closed = true
		s.overflowed = true
		close(s.updates)
		logger.Log.Warnw("realtime subscriber fell behind, closing", "userID", s.userID)
		return false
	}
}

func (s *Subscription) shut(overflow bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.overflowed = overflow
	close(s.updates)
}

// Subscribe refetches the wallet and registers an observer. The returned View
// is the starting state; later changes arrive on the subscription.
func (p *Projection) Subscribe(ctx context.Context, userID uuid.UUID) (*Subscription, View, error) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return nil, View{}, ErrProjectionClosed
	}

	wallet, err := p.snapshots.GetOrCreateWallet(ctx, userID)
	if err != nil {
		return nil, View{}, err
	}
	page, err := p.snapshots.ListTransactions(ctx, userID, p.historySize, 0)
	if err != nil {
		return nil, View{}, err
	}

	snapshot := View{
		UserID:       userID,
		Balance:      wallet.Balance,
		LastAction:   wallet.LastAction,
		Version:      wallet.Version,
		Transactions: page.Transactions,
		UpdatedAt:    wallet.UpdatedAt,
	}
	sortNewestFirst(snapshot.Transactions)

	sub := &Subscription{
		projection: p,
		userID:     userID,
		updates:    make(chan View, p.bufferSize),
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, View{}, ErrProjectionClosed
	}
	uv, ok := p.views[userID]
	if !ok {
		uv = &userView{subs: make(map[*Subscription]struct{})}
		p.views[userID] = uv
	}
	// an event applied while the snapshot was loading may already be newer
	if !ok || snapshot.Version >= uv.view.Version {
		uv.view = snapshot
	}
	uv.subs[sub] = struct{}{}
	initial := uv.view.clone()
	p.mu.Unlock()

	metrics.StreamSubscribers.Inc()
	logger.Log.Infow("realtime subscriber registered", "userID", userID, "version", initial.Version)
	return sub, initial, nil
}

func (p *Projection) unregister(sub *Subscription) {
	p.mu.Lock()
	defer p.mu.Unlock()

	uv, ok := p.views[sub.userID]
	if !ok {
		return
	}
	if _, ok := uv.subs[sub]; !ok {
		return
	}
	delete(uv.subs, sub)
	metrics.StreamSubscribers.Dec()
	if len(uv.subs) == 0 {
		delete(p.views, sub.userID)
	}
}

// Apply folds a ledger event into the view of its wallet and notifies the
// wallet's observers. Stale wallet versions and duplicates are ignored.
// It reports whether the view changed.
func (p *Projection) Apply(event models.LedgerEvent) bool {
	p.mu.Lock()
	uv, ok := p.views[event.UserID]
	if !ok {
		p.mu.Unlock()
		return false
	}

	changed := p.fold(&uv.view, event)
	if !changed {
		p.mu.Unlock()
		return false
	}

	snapshot := uv.view.clone()
	subs := make([]*Subscription, 0, len(uv.subs))
	for sub := range uv.subs {
		subs = append(subs, sub)
	}
	p.mu.Unlock()

	for _, sub := range subs {
		if !sub.deliver(snapshot) {
			p.unregister(sub)
		}
	}
	return true
}

// Close ends every subscription and rejects new ones. Observers see their
// updates channel closed with Overflowed false.
func (p *Projection) Close() {
	p.mu.Lock()
	p.closed = true
	var subs []*Subscription
	for userID, uv := range p.views {
		for sub := range uv.subs {
			subs = append(subs, sub)
			metrics.StreamSubscribers.Dec()
		}
		delete(p.views, userID)
	}
	p.mu.Unlock()

	for _, sub := range subs {
		sub.shut(false)
	}
	logger.Log.Infow("realtime projection closed", "subscribers", len(subs))
}

func (p *Projection) fold(v *View, event models.LedgerEvent) bool {
	switch event.Type {
	case models.EventWalletUpdated:
		if event.Wallet == nil || event.Wallet.Version <= v.Version {
			return false
		}
		v.Balance = event.Wallet.Balance
		v.LastAction = event.Wallet.LastAction
		v.Version = event.Wallet.Version
		v.UpdatedAt = event.Wallet.UpdatedAt
		return true

	case models.EventTransactionInserted, models.EventTransactionUpdated:
		if event.Transaction == nil {
			return false
		}
		for i, t := range v.Transactions {
			if t.ID == event.Transaction.ID {
				if sameTransaction(t, *event.Transaction) {
					return false
				}
				v.Transactions[i] = *event.Transaction
				sortNewestFirst(v.Transactions)
				return true
			}
		}
		v.Transactions = append(v.Transactions, *event.Transaction)
		sortNewestFirst(v.Transactions)
		if len(v.Transactions) > p.historySize {
			v.Transactions = v.Transactions[:p.historySize]
		}
		return true

	case models.EventTransactionDeleted:
		if event.Transaction == nil {
			return false
		}
		for i, t := range v.Transactions {
			if t.ID == event.Transaction.ID {
				v.Transactions = append(v.Transactions[:i], v.Transactions[i+1:]...)
				return true
			}
		}
		return false
	}
	return false
}

func sameTransaction(a, b models.Transaction) bool {
	return a.ID == b.ID &&
		a.UserID == b.UserID &&
		a.CreatedAt.Equal(b.CreatedAt) &&
		a.Description == b.Description &&
		a.TokensIn == b.TokensIn &&
		a.TokensOut == b.TokensOut
}

func sortNewestFirst(txns []models.Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		if !txns[i].CreatedAt.Equal(txns[j].CreatedAt) {
			return txns[i].CreatedAt.After(txns[j].CreatedAt)
		}
		return txns[i].ID.String() > txns[j].ID.String()
	})
}
