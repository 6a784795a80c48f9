package store

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopfront/internal/catalog"
)

// Pricing carries the constants cart aggregation depends on. TaxRate is a
// fraction of the subtotal. DefaultShippingFee seeds fresh and cleared
// carts. Shipping is waived for empty carts and for subtotals at or above
// FreeShippingThreshold; a non-positive threshold disables the waiver.
type Pricing struct {
	TaxRate               decimal.Decimal
	DefaultShippingFee    decimal.Decimal
	FreeShippingThreshold decimal.Decimal
}

func (p Pricing) defaultFee() decimal.Decimal {
	if p.DefaultShippingFee.IsNegative() {
		return decimal.Zero
	}
	return p.DefaultShippingFee
}

// recalculate rebuilds every cart aggregate from the items, discount, and
// shipping fee. It is the only place aggregates are written.
func recalculate(cart Cart, pricing Pricing) Cart {
	subtotal := decimal.Zero
	totalItems := 0
	for _, item := range cart.Items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		subtotal = subtotal.Add(item.Product.Price.Mul(qty))
		totalItems += item.Quantity
	}

	shipping := cart.ShippingFee
	if len(cart.Items) == 0 {
		shipping = decimal.Zero
	} else if pricing.FreeShippingThreshold.IsPositive() && subtotal.GreaterThanOrEqual(pricing.FreeShippingThreshold) {
		// the waiver is inclusive: a subtotal equal to the threshold ships free
		shipping = decimal.Zero
	}

	tax := subtotal.Mul(pricing.TaxRate)

	final := subtotal.Sub(cart.Discount).Add(shipping).Add(tax)
	if final.IsNegative() {
		final = decimal.Zero
	}

	cart.Total = subtotal
	cart.TotalItems = totalItems
	cart.Shipping = shipping
	cart.Tax = tax
	cart.FinalTotal = final
	return cart
}

func cartItemID(productID string, now time.Time) string {
	return fmt.Sprintf("%s-%d", productID, now.UnixNano())
}

func wishlistItemID(productID string, now time.Time) string {
	return fmt.Sprintf("wishlist-%s-%d", productID, now.UnixNano())
}

// reduce applies one action to the state and reports whether the action was
// a silent no-op. It never mutates its input; slices are copied before
// modification.
func reduce(state AppState, action Action, pricing Pricing, now time.Time) (AppState, bool) {
	switch act := action.(type) {
	case AddCartItem:
		qty := act.Quantity
		if qty < 1 {
			qty = 1
		}
		items := append([]CartItem(nil), state.Cart.Items...)
		key := variantKey{productID: act.Product.ID, size: act.Size, color: act.Color}
		merged := false
		for i := range items {
			if items[i].variant() == key {
				items[i].Quantity += qty
				merged = true
				break
			}
		}
		if !merged {
			items = append(items, CartItem{
				ID:            cartItemID(act.Product.ID, now),
				Product:       act.Product.Clone(),
				Quantity:      qty,
				SelectedSize:  act.Size,
				SelectedColor: act.Color,
				AddedAt:       now,
			})
		}
		state.Cart.Items = items
		state.Cart = recalculate(state.Cart, pricing)
		return state, false

	case RemoveCartItem:
		items := make([]CartItem, 0, len(state.Cart.Items))
		removed := false
		for _, item := range state.Cart.Items {
			if item.ID == act.ItemID {
				removed = true
				continue
			}
			items = append(items, item)
		}
		if !removed {
			return state, true
		}
		state.Cart.Items = items
		state.Cart = recalculate(state.Cart, pricing)
		return state, false

	case SetCartItemQuantity:
		if act.Quantity <= 0 {
			return reduce(state, RemoveCartItem{ItemID: act.ItemID}, pricing, now)
		}
		items := append([]CartItem(nil), state.Cart.Items...)
		found := false
		for i := range items {
			if items[i].ID == act.ItemID {
				items[i].Quantity = act.Quantity
				found = true
				break
			}
		}
		if !found {
			return state, true
		}
		state.Cart.Items = items
		state.Cart = recalculate(state.Cart, pricing)
		return state, false

	case ClearCart:
		fee := pricing.defaultFee()
		if len(state.Cart.Items) == 0 && state.Cart.Discount.IsZero() && state.Cart.ShippingFee.Equal(fee) {
			return state, true
		}
		state.Cart.Items = []CartItem{}
		state.Cart.Discount = decimal.Zero
		state.Cart.ShippingFee = fee
		state.Cart = recalculate(state.Cart, pricing)
		return state, false

	case ApplyDiscount:
		amount := act.Amount
		if amount.IsNegative() {
			amount = decimal.Zero
		}
		state.Cart.Discount = amount
		state.Cart = recalculate(state.Cart, pricing)
		return state, false

	case SetShippingFee:
		fee := act.Fee
		if fee.IsNegative() {
			fee = decimal.Zero
		}
		state.Cart.ShippingFee = fee
		state.Cart = recalculate(state.Cart, pricing)
		return state, false

	case AddWishlistItem:
		if state.IsInWishlist(act.Product.ID) {
			return state, true
		}
		wishlist := append([]WishlistItem(nil), state.Wishlist...)
		wishlist = append(wishlist, WishlistItem{
			ID:      wishlistItemID(act.Product.ID, now),
			Product: act.Product.Clone(),
			AddedAt: now,
		})
		state.Wishlist = wishlist
		return state, false

	case RemoveWishlistItem:
		wishlist := make([]WishlistItem, 0, len(state.Wishlist))
		removed := false
		for _, item := range state.Wishlist {
			if item.Product.ID == act.ProductID {
				removed = true
				continue
			}
			wishlist = append(wishlist, item)
		}
		if !removed {
			return state, true
		}
		state.Wishlist = wishlist
		return state, false

	case SetViewMode:
		mode := ParseViewMode(string(act.Mode))
		if state.ViewMode == mode {
			return state, true
		}
		state.ViewMode = mode
		return state, false

	case SetSortKey:
		key := ParseSortKey(string(act.Key))
		if state.Search.SortBy == key {
			return state, true
		}
		state.Search.SortBy = key
		state.Search.Page = 1
		return state, false

	case ToggleCartPanel:
		state.CartOpen = !state.CartOpen
		if state.CartOpen {
			state.WishlistOpen = false
		}
		return state, false

	case ToggleWishlistPanel:
		state.WishlistOpen = !state.WishlistOpen
		if state.WishlistOpen {
			state.CartOpen = false
		}
		return state, false

	case SetSearchQuery:
		state.Search.Query = act.Query
		state.Search.Page = 1
		return state, false

	case SetSearchFilters:
		state.Search.Filters = cloneFilter(act.Filters)
		state.Search.Page = 1
		return state, false

	case SetSearchLoading:
		state.Search.Loading = act.Loading
		if act.Loading {
			state.Search.Error = ""
		}
		return state, false

	case CommitSearchResults:
		results := act.Results
		if results == nil {
			results = []catalog.Product{}
		}
		state.Search.Results = results
		state.Search.TotalItems = act.TotalItems
		state.Search.Loading = false
		state.Search.Error = act.Err
		return state, false

	case SetPage:
		page := act.Page
		if page < 1 {
			page = 1
		}
		if state.Search.Page == page {
			return state, true
		}
		state.Search.Page = page
		return state, false

	case RestoreCart:
		items := act.Items
		if items == nil {
			items = []CartItem{}
		}
		discount := act.Discount
		if discount.IsNegative() {
			discount = decimal.Zero
		}
		fee := act.ShippingFee
		if fee.IsNegative() {
			fee = decimal.Zero
		}
		state.Cart.Items = items
		state.Cart.Discount = discount
		state.Cart.ShippingFee = fee
		state.Cart = recalculate(state.Cart, pricing)
		return state, false

	case RestoreWishlist:
		items := act.Items
		if items == nil {
			items = []WishlistItem{}
		}
		state.Wishlist = items
		return state, false
	}

	return state, true
}

func cloneFilter(f Filter) Filter {
	if f.Categories == nil {
		f.Categories = []string{}
	} else {
		f.Categories = append([]string(nil), f.Categories...)
	}
	if f.Brands == nil {
		f.Brands = []string{}
	} else {
		f.Brands = append([]string(nil), f.Brands...)
	}
	if f.Tags == nil {
		f.Tags = []string{}
	} else {
		f.Tags = append([]string(nil), f.Tags...)
	}
	return f
}
