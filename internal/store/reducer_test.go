package store

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopfront/internal/catalog"
)

var testClock = time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

func testPricing() Pricing {
	return Pricing{
		TaxRate:               decimal.RequireFromString("0.08"),
		FreeShippingThreshold: decimal.NewFromInt(250),
	}
}

func testProduct(id, name string, price string) catalog.Product {
	return catalog.Product{
		ID:      id,
		Name:    name,
		Price:   decimal.RequireFromString(price),
		Brand:   "TestBrand",
		InStock: true,
	}
}

func mustDecimal(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func apply(t *testing.T, state AppState, actions ...Action) AppState {
	t.Helper()
	clock := testClock
	for _, action := range actions {
		state, _ = reduce(state, action, testPricing(), clock)
		clock = clock.Add(time.Millisecond)
	}
	return state
}

func TestAddCartItemComputesAggregates(t *testing.T) {
	state := apply(t, initialState(),
		AddCartItem{Product: testProduct("p-1", "Widget", "100"), Quantity: 2},
		SetShippingFee{Fee: decimal.RequireFromString("9.99")},
	)

	mustDecimal(t, state.Cart.Total, "200")
	if state.Cart.TotalItems != 2 {
		t.Fatalf("expected 2 total items, got %d", state.Cart.TotalItems)
	}
	mustDecimal(t, state.Cart.Tax, "16")
	mustDecimal(t, state.Cart.Shipping, "9.99")
	mustDecimal(t, state.Cart.FinalTotal, "225.99")
}

func TestAddCartItemMergesVariants(t *testing.T) {
	product := testProduct("p-1", "Sneaker", "50")
	state := apply(t, initialState(),
		AddCartItem{Product: product, Quantity: 2, Size: "42", Color: "black"},
		AddCartItem{Product: product, Quantity: 3, Size: "42", Color: "black"},
	)

	if len(state.Cart.Items) != 1 {
		t.Fatalf("expected merged line, got %d lines", len(state.Cart.Items))
	}
	if state.Cart.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", state.Cart.Items[0].Quantity)
	}
}

func TestAddCartItemKeepsDistinctVariants(t *testing.T) {
	product := testProduct("p-1", "Sneaker", "50")
	state := apply(t, initialState(),
		AddCartItem{Product: product, Quantity: 1, Size: "42", Color: "black"},
		AddCartItem{Product: product, Quantity: 1, Size: "43", Color: "black"},
		AddCartItem{Product: product, Quantity: 1, Size: "42", Color: "white"},
	)

	if len(state.Cart.Items) != 3 {
		t.Fatalf("expected 3 distinct lines, got %d", len(state.Cart.Items))
	}
}

func TestAddCartItemClampsQuantityToOne(t *testing.T) {
	state := apply(t, initialState(),
		AddCartItem{Product: testProduct("p-1", "Widget", "10"), Quantity: -4},
	)

	if len(state.Cart.Items) != 1 || state.Cart.Items[0].Quantity != 1 {
		t.Fatalf("expected a single line with quantity 1, got %+v", state.Cart.Items)
	}
}

func TestSetCartItemQuantityZeroRemovesLine(t *testing.T) {
	state := apply(t, initialState(),
		AddCartItem{Product: testProduct("p-1", "Widget", "10"), Quantity: 2},
	)
	itemID := state.Cart.Items[0].ID

	state = apply(t, state, SetCartItemQuantity{ItemID: itemID, Quantity: 0})

	if len(state.Cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(state.Cart.Items))
	}
	mustDecimal(t, state.Cart.Total, "0")
	mustDecimal(t, state.Cart.FinalTotal, "0")
}

func TestRemoveUnknownCartItemIsNoOp(t *testing.T) {
	state := apply(t, initialState(),
		AddCartItem{Product: testProduct("p-1", "Widget", "10"), Quantity: 1},
	)

	next, noop := reduce(state, RemoveCartItem{ItemID: "missing"}, testPricing(), testClock)
	if !noop {
		t.Fatal("expected removing an unknown line to be a no-op")
	}
	if len(next.Cart.Items) != 1 {
		t.Fatalf("expected cart untouched, got %d lines", len(next.Cart.Items))
	}
}

func TestClearCartResetsDiscountAndShipping(t *testing.T) {
	state := apply(t, initialState(),
		AddCartItem{Product: testProduct("p-1", "Widget", "100"), Quantity: 1},
		ApplyDiscount{Amount: decimal.NewFromInt(20)},
		SetShippingFee{Fee: decimal.RequireFromString("9.99")},
		ClearCart{},
	)

	if len(state.Cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(state.Cart.Items))
	}
	mustDecimal(t, state.Cart.Discount, "0")
	mustDecimal(t, state.Cart.ShippingFee, "0")
	mustDecimal(t, state.Cart.FinalTotal, "0")
}

func TestClearCartRestoresDefaultShippingFee(t *testing.T) {
	pricing := testPricing()
	pricing.DefaultShippingFee = decimal.RequireFromString("9.99")

	state := initialState()
	state, _ = reduce(state, AddCartItem{Product: testProduct("p-1", "Widget", "100"), Quantity: 1}, pricing, testClock)
	state, _ = reduce(state, SetShippingFee{Fee: decimal.NewFromInt(4)}, pricing, testClock)
	state, _ = reduce(state, ClearCart{}, pricing, testClock)

	mustDecimal(t, state.Cart.ShippingFee, "9.99")

	state, _ = reduce(state, AddCartItem{Product: testProduct("p-2", "Gadget", "50"), Quantity: 1}, pricing, testClock)
	mustDecimal(t, state.Cart.Shipping, "9.99")
}

func TestFinalTotalNeverNegative(t *testing.T) {
	state := apply(t, initialState(),
		AddCartItem{Product: testProduct("p-1", "Widget", "100"), Quantity: 2},
		ApplyDiscount{Amount: decimal.NewFromInt(500)},
	)

	mustDecimal(t, state.Cart.FinalTotal, "0")
}

func TestShippingWaivedAtThreshold(t *testing.T) {
	state := apply(t, initialState(),
		SetShippingFee{Fee: decimal.RequireFromString("9.99")},
		AddCartItem{Product: testProduct("p-1", "Widget", "100"), Quantity: 2},
	)
	mustDecimal(t, state.Cart.Shipping, "9.99")

	state = apply(t, state,
		AddCartItem{Product: testProduct("p-2", "Gadget", "50"), Quantity: 1},
	)
	mustDecimal(t, state.Cart.Total, "250")
	mustDecimal(t, state.Cart.Shipping, "0")
	mustDecimal(t, state.Cart.FinalTotal, "270")
}

func TestShippingZeroOnEmptyCart(t *testing.T) {
	state := apply(t, initialState(),
		SetShippingFee{Fee: decimal.RequireFromString("9.99")},
	)

	mustDecimal(t, state.Cart.Shipping, "0")
	mustDecimal(t, state.Cart.FinalTotal, "0")
}

func TestNegativeDiscountClampsToZero(t *testing.T) {
	state := apply(t, initialState(),
		AddCartItem{Product: testProduct("p-1", "Widget", "100"), Quantity: 1},
		ApplyDiscount{Amount: decimal.NewFromInt(-10)},
	)

	mustDecimal(t, state.Cart.Discount, "0")
	mustDecimal(t, state.Cart.FinalTotal, "108")
}

func TestWishlistAddIsIdempotent(t *testing.T) {
	product := testProduct("p-1", "Widget", "10")
	state := apply(t, initialState(), AddWishlistItem{Product: product})

	next, noop := reduce(state, AddWishlistItem{Product: product}, testPricing(), testClock)
	if !noop {
		t.Fatal("expected duplicate wishlist add to be a no-op")
	}
	if len(next.Wishlist) != 1 {
		t.Fatalf("expected 1 wishlist entry, got %d", len(next.Wishlist))
	}
}

func TestRemoveWishlistItemByProductID(t *testing.T) {
	state := apply(t, initialState(),
		AddWishlistItem{Product: testProduct("p-1", "Widget", "10")},
		AddWishlistItem{Product: testProduct("p-2", "Gadget", "20")},
		RemoveWishlistItem{ProductID: "p-1"},
	)

	if len(state.Wishlist) != 1 || state.Wishlist[0].Product.ID != "p-2" {
		t.Fatalf("expected only p-2 to remain, got %+v", state.Wishlist)
	}
}

func TestPanelsAreMutuallyExclusive(t *testing.T) {
	state := apply(t, initialState(), ToggleCartPanel{})
	if !state.CartOpen || state.WishlistOpen {
		t.Fatalf("expected cart open and wishlist closed, got cart=%v wishlist=%v", state.CartOpen, state.WishlistOpen)
	}

	state = apply(t, state, ToggleWishlistPanel{})
	if state.CartOpen || !state.WishlistOpen {
		t.Fatalf("expected wishlist open and cart closed, got cart=%v wishlist=%v", state.CartOpen, state.WishlistOpen)
	}
}

func TestSearchInputsResetPagination(t *testing.T) {
	state := apply(t, initialState(), SetPage{Page: 4})
	if state.Search.Page != 4 {
		t.Fatalf("expected page 4, got %d", state.Search.Page)
	}

	state = apply(t, state, SetSearchQuery{Query: "laptop"})
	if state.Search.Page != 1 {
		t.Fatalf("expected query change to reset page, got %d", state.Search.Page)
	}

	state = apply(t, state, SetPage{Page: 3}, SetSearchFilters{Filters: Filter{Categories: []string{"Electronics"}}})
	if state.Search.Page != 1 {
		t.Fatalf("expected filter change to reset page, got %d", state.Search.Page)
	}

	state = apply(t, state, SetPage{Page: 2}, SetSortKey{Key: SortByNewest})
	if state.Search.Page != 1 {
		t.Fatalf("expected sort change to reset page, got %d", state.Search.Page)
	}
}

func TestSetPageClampsToOne(t *testing.T) {
	state := apply(t, initialState(), SetPage{Page: -3})
	if state.Search.Page != 1 {
		t.Fatalf("expected page 1, got %d", state.Search.Page)
	}
}

func TestRestoreCartRecomputesAggregates(t *testing.T) {
	items := []CartItem{
		{
			ID:       "p-1-1",
			Product:  testProduct("p-1", "Widget", "100"),
			Quantity: 2,
			AddedAt:  testClock,
		},
	}

	state := apply(t, initialState(), RestoreCart{
		Items:       items,
		Discount:    decimal.NewFromInt(10),
		ShippingFee: decimal.RequireFromString("9.99"),
	})

	mustDecimal(t, state.Cart.Total, "200")
	mustDecimal(t, state.Cart.Tax, "16")
	mustDecimal(t, state.Cart.FinalTotal, "215.99")
}

func TestCommitSearchResultsClearsLoading(t *testing.T) {
	state := apply(t, initialState(),
		SetSearchLoading{Loading: true},
		CommitSearchResults{
			Results:    []catalog.Product{testProduct("p-1", "Widget", "10")},
			TotalItems: 1,
		},
	)

	if state.Search.Loading {
		t.Fatal("expected loading flag cleared")
	}
	if state.Search.TotalItems != 1 || len(state.Search.Results) != 1 {
		t.Fatalf("expected committed results, got total=%d len=%d", state.Search.TotalItems, len(state.Search.Results))
	}
}

func TestViewModeNormalizesUnknownValues(t *testing.T) {
	state := apply(t, initialState(), SetViewMode{Mode: "table"})
	if state.ViewMode != ViewModeGrid {
		t.Fatalf("expected unknown view mode to normalize to grid, got %q", state.ViewMode)
	}

	state = apply(t, state, SetViewMode{Mode: ViewModeList})
	if state.ViewMode != ViewModeList {
		t.Fatalf("expected list, got %q", state.ViewMode)
	}
}
