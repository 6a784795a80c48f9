package persistence

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/angelmondragon/shopfront/internal/store"
	"github.com/angelmondragon/shopfront/pkg/errors"
	"github.com/angelmondragon/shopfront/pkg/logger"
)

// persistedCart is the cart slot payload. Only the inputs are stored; the
// aggregates are recomputed when the cart is restored.
type persistedCart struct {
	Items       []store.CartItem `json:"items"`
	Discount    decimal.Decimal  `json:"discount"`
	ShippingFee decimal.Decimal  `json:"shippingFee"`
}

// RestoredState is everything LoadAll could recover from the backend.
// CartFound reports whether a usable cart slot existed; without one the
// caller keeps its configured pricing defaults instead of the zero values.
type RestoredState struct {
	CartFound   bool
	CartItems   []store.CartItem
	Discount    decimal.Decimal
	ShippingFee decimal.Decimal
	Wishlist    []store.WishlistItem
	Preferences store.Preferences
}

// Adapter maps state slices onto KV slots. It satisfies the store's mirror
// interface on the write side and seeds the store on the read side.
type Adapter struct {
	kv  KV
	log *logger.Logger
}

// NewAdapter builds an adapter over the given backend.
func NewAdapter(kv KV, log *logger.Logger) (*Adapter, error) {
	if kv == nil {
		return nil, errors.New(errors.CodeValidation, "kv backend is required")
	}
	if log == nil {
		return nil, errors.New(errors.CodeValidation, "logger is required")
	}
	return &Adapter{kv: kv, log: log}, nil
}

// SaveCart writes the cart inputs to the cart slot.
func (a *Adapter) SaveCart(ctx context.Context, items []store.CartItem, discount, shippingFee decimal.Decimal) error {
	if items == nil {
		items = []store.CartItem{}
	}
	return a.writeSlot(ctx, SlotCart, persistedCart{
		Items:       items,
		Discount:    discount,
		ShippingFee: shippingFee,
	})
}

// SaveWishlist writes the wishlist entries to the wishlist slot.
func (a *Adapter) SaveWishlist(ctx context.Context, items []store.WishlistItem) error {
	if items == nil {
		items = []store.WishlistItem{}
	}
	return a.writeSlot(ctx, SlotWishlist, items)
}

// SavePreferences writes the view preferences to the preferences slot.
func (a *Adapter) SavePreferences(ctx context.Context, prefs store.Preferences) error {
	return a.writeSlot(ctx, SlotPreferences, prefs)
}

// LoadAll reads every slot. Missing and corrupt slots yield zero values;
// corrupt payloads are logged and dropped rather than failing the load.
// Backend read failures are combined into the returned error.
func (a *Adapter) LoadAll(ctx context.Context) (RestoredState, error) {
	restored := RestoredState{
		CartItems:   []store.CartItem{},
		Discount:    decimal.Zero,
		ShippingFee: decimal.Zero,
		Wishlist:    []store.WishlistItem{},
		Preferences: store.Preferences{ViewMode: store.ViewModeGrid},
	}
	var errs error

	var cart persistedCart
	found, err := a.readSlot(ctx, SlotCart, &cart)
	errs = multierr.Append(errs, err)
	if found && err == nil {
		restored.CartFound = true
		if cart.Items != nil {
			restored.CartItems = cart.Items
		}
		restored.Discount = cart.Discount
		restored.ShippingFee = cart.ShippingFee
	}

	var wishlist []store.WishlistItem
	found, err = a.readSlot(ctx, SlotWishlist, &wishlist)
	errs = multierr.Append(errs, err)
	if found && err == nil && wishlist != nil {
		restored.Wishlist = wishlist
	}

	var prefs store.Preferences
	found, err = a.readSlot(ctx, SlotPreferences, &prefs)
	errs = multierr.Append(errs, err)
	if found && err == nil {
		restored.Preferences.ViewMode = store.ParseViewMode(string(prefs.ViewMode))
	}

	return restored, errs
}

// Ping reports backend health.
func (a *Adapter) Ping(ctx context.Context) error {
	return a.kv.Ping(ctx)
}

// Close releases the backend.
func (a *Adapter) Close() error {
	return a.kv.Close()
}

func (a *Adapter) writeSlot(ctx context.Context, slot string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "encoding slot payload")
	}
	return a.kv.Set(ctx, slot, string(raw))
}

// readSlot reports whether a usable payload was found. A corrupt payload
// counts as not found.
func (a *Adapter) readSlot(ctx context.Context, slot string, dest any) (bool, error) {
	raw, found, err := a.kv.Get(ctx, slot)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		a.log.Warn(a.log.WithSlot(ctx, slot), "dropping corrupt slot payload")
		return false, nil
	}
	return true, nil
}

var _ store.Mirror = (*Adapter)(nil)
