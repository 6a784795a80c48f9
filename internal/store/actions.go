package store

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopfront/internal/catalog"
)

// Action is the closed set of state transitions the store accepts. The
// interface is sealed so the reducer's type switch stays exhaustive.
type Action interface {
	ActionName() string
	isAction()
}

// AddCartItem appends a line item, merging into an existing line when the
// (product, size, color) variant already exists. A quantity below one is
// treated as one.
type AddCartItem struct {
	Product  catalog.Product
	Quantity int
	Size     string
	Color    string
}

// RemoveCartItem deletes the line item with the given id.
type RemoveCartItem struct {
	ItemID string
}

// SetCartItemQuantity replaces a line item quantity. Zero or below removes
// the line.
type SetCartItemQuantity struct {
	ItemID   string
	Quantity int
}

// ClearCart empties the cart and resets discount and shipping fee.
type ClearCart struct{}

// ApplyDiscount sets the flat discount amount. Negative amounts clamp to
// zero.
type ApplyDiscount struct {
	Amount decimal.Decimal
}

// SetShippingFee sets the shipping fee input. Negative fees clamp to zero.
type SetShippingFee struct {
	Fee decimal.Decimal
}

// AddWishlistItem adds a product to the wishlist. Adding a product already
// present is a no-op.
type AddWishlistItem struct {
	Product catalog.Product
}

// RemoveWishlistItem deletes the wishlist entry for the product id.
type RemoveWishlistItem struct {
	ProductID string
}

// SetViewMode switches the catalog presentation preference.
type SetViewMode struct {
	Mode ViewMode
}

// SetSortKey switches the search result ordering.
type SetSortKey struct {
	Key SortKey
}

// ToggleCartPanel flips the cart panel; opening it closes the wishlist
// panel.
type ToggleCartPanel struct{}

// ToggleWishlistPanel flips the wishlist panel; opening it closes the cart
// panel.
type ToggleWishlistPanel struct{}

// SetSearchQuery replaces the free-text query and resets pagination.
type SetSearchQuery struct {
	Query string
}

// SetSearchFilters replaces the facet set and resets pagination.
type SetSearchFilters struct {
	Filters Filter
}

// SetSearchLoading marks a search invocation in flight.
type SetSearchLoading struct {
	Loading bool
}

// CommitSearchResults installs a completed search outcome.
type CommitSearchResults struct {
	Results    []catalog.Product
	TotalItems int
	Err        string
}

// SetPage moves pagination. Pages below one clamp to one.
type SetPage struct {
	Page int
}

// RestoreCart reinstates persisted cart inputs; aggregates are recomputed.
type RestoreCart struct {
	Items       []CartItem
	Discount    decimal.Decimal
	ShippingFee decimal.Decimal
}

// RestoreWishlist reinstates persisted wishlist entries.
type RestoreWishlist struct {
	Items []WishlistItem
}

func (AddCartItem) ActionName() string         { return "cart.add_item" }
func (RemoveCartItem) ActionName() string      { return "cart.remove_item" }
func (SetCartItemQuantity) ActionName() string { return "cart.set_quantity" }
func (ClearCart) ActionName() string           { return "cart.clear" }
func (ApplyDiscount) ActionName() string       { return "cart.apply_discount" }
func (SetShippingFee) ActionName() string      { return "cart.set_shipping_fee" }
func (AddWishlistItem) ActionName() string     { return "wishlist.add_item" }
func (RemoveWishlistItem) ActionName() string  { return "wishlist.remove_item" }
func (SetViewMode) ActionName() string         { return "ui.set_view_mode" }
func (SetSortKey) ActionName() string          { return "search.set_sort_key" }
func (ToggleCartPanel) ActionName() string     { return "ui.toggle_cart_panel" }
func (ToggleWishlistPanel) ActionName() string { return "ui.toggle_wishlist_panel" }
func (SetSearchQuery) ActionName() string      { return "search.set_query" }
func (SetSearchFilters) ActionName() string    { return "search.set_filters" }
func (SetSearchLoading) ActionName() string    { return "search.set_loading" }
func (CommitSearchResults) ActionName() string { return "search.commit_results" }
func (SetPage) ActionName() string             { return "search.set_page" }
func (RestoreCart) ActionName() string         { return "cart.restore" }
func (RestoreWishlist) ActionName() string     { return "wishlist.restore" }

func (AddCartItem) isAction()         {}
func (RemoveCartItem) isAction()      {}
func (SetCartItemQuantity) isAction() {}
func (ClearCart) isAction()           {}
func (ApplyDiscount) isAction()       {}
func (SetShippingFee) isAction()      {}
func (AddWishlistItem) isAction()     {}
func (RemoveWishlistItem) isAction()  {}
func (SetViewMode) isAction()         {}
func (SetSortKey) isAction()          {}
func (ToggleCartPanel) isAction()     {}
func (ToggleWishlistPanel) isAction() {}
func (SetSearchQuery) isAction()      {}
func (SetSearchFilters) isAction()    {}
func (SetSearchLoading) isAction()    {}
func (CommitSearchResults) isAction() {}
func (SetPage) isAction()             {}
func (RestoreCart) isAction()         {}
func (RestoreWishlist) isAction()     {}
