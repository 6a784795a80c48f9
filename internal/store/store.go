package store

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopfront/internal/catalog"
	"github.com/angelmondragon/shopfront/pkg/errors"
	"github.com/angelmondragon/shopfront/pkg/logger"
	"github.com/angelmondragon/shopfront/pkg/metrics"
)

// Mirror receives the persisted slices of state after every mutation.
// Implementations must tolerate being called from the dispatch path; write
// failures are logged and counted but never surface to the caller.
type Mirror interface {
	SaveCart(ctx context.Context, items []CartItem, discount, shippingFee decimal.Decimal) error
	SaveWishlist(ctx context.Context, items []WishlistItem) error
	SavePreferences(ctx context.Context, prefs Preferences) error
}

// Params carries the store dependencies.
type Params struct {
	Pricing Pricing
	Mirror  Mirror
	Logger  *logger.Logger
	Metrics *metrics.StoreMetrics
	Now     func() time.Time
}

// Store owns the application state. All reads and writes go through it; a
// mutex serializes dispatches so every action observes the state left by
// the previous one.
type Store struct {
	mu      sync.Mutex
	state   AppState
	pricing Pricing
	mirror  Mirror
	log     *logger.Logger
	metrics *metrics.StoreMetrics
	now     func() time.Time
}

// New builds a store seeded with the initial state.
func New(params Params) (*Store, error) {
	if params.Logger == nil {
		return nil, errors.New(errors.CodeValidation, "logger is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	state := initialState()
	state.Cart.ShippingFee = params.Pricing.defaultFee()
	return &Store{
		state:   state,
		pricing: params.Pricing,
		mirror:  params.Mirror,
		log:     params.Logger,
		metrics: params.Metrics,
		now:     now,
	}, nil
}

// Dispatch applies the action and returns the resulting state snapshot.
func (s *Store) Dispatch(ctx context.Context, action Action) AppState {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, noop := reduce(s.state, action, s.pricing, s.now())
	if noop {
		s.metrics.IncNoOp(action.ActionName())
		s.log.Debug(s.log.WithAction(ctx, action.ActionName()), "action had no effect")
		return s.snapshotLocked()
	}

	s.state = next
	s.metrics.IncAction(action.ActionName())
	s.mirrorLocked(ctx, action)
	return s.snapshotLocked()
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// snapshotLocked copies the state so callers can never alias the slices the
// store mutates. Products inside items are value copies already.
func (s *Store) snapshotLocked() AppState {
	snap := s.state
	snap.Cart.Items = append([]CartItem(nil), s.state.Cart.Items...)
	snap.Wishlist = append([]WishlistItem(nil), s.state.Wishlist...)
	snap.Search.Results = append([]catalog.Product(nil), s.state.Search.Results...)
	snap.Search.Filters = cloneFilter(s.state.Search.Filters)
	return snap
}

// mirrorLocked persists the slot touched by the action. Restore actions are
// skipped so loading state never writes it straight back.
func (s *Store) mirrorLocked(ctx context.Context, action Action) {
	if s.mirror == nil {
		return
	}

	switch action.(type) {
	case AddCartItem, RemoveCartItem, SetCartItemQuantity, ClearCart, ApplyDiscount, SetShippingFee:
		err := s.mirror.SaveCart(ctx,
			append([]CartItem(nil), s.state.Cart.Items...),
			s.state.Cart.Discount,
			s.state.Cart.ShippingFee,
		)
		s.recordMirror(ctx, "cart", err)
	case AddWishlistItem, RemoveWishlistItem:
		err := s.mirror.SaveWishlist(ctx, append([]WishlistItem(nil), s.state.Wishlist...))
		s.recordMirror(ctx, "wishlist", err)
	case SetViewMode:
		err := s.mirror.SavePreferences(ctx, Preferences{ViewMode: s.state.ViewMode})
		s.recordMirror(ctx, "preferences", err)
	}
}

func (s *Store) recordMirror(ctx context.Context, slot string, err error) {
	if err == nil {
		return
	}
	s.metrics.IncWriteFailure(slot)
	s.log.Error(s.log.WithSlot(ctx, slot), "persisting state slot failed", err)
}
