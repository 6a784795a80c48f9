package store

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopfront/internal/catalog"
)

// ViewMode selects the catalog presentation persisted in preferences.
type ViewMode string

const (
	ViewModeGrid ViewMode = "grid"
	ViewModeList ViewMode = "list"
)

// ParseViewMode normalizes a raw view mode, defaulting to grid.
func ParseViewMode(raw string) ViewMode {
	if ViewMode(raw) == ViewModeList {
		return ViewModeList
	}
	return ViewModeGrid
}

// SortKey selects the ordering applied to search results.
type SortKey string

const (
	SortByName      SortKey = "name"
	SortByPriceLow  SortKey = "price-low"
	SortByPriceHigh SortKey = "price-high"
	SortByRating    SortKey = "rating"
	SortByNewest    SortKey = "newest"
)

// ParseSortKey normalizes a raw sort key, defaulting to name.
func ParseSortKey(raw string) SortKey {
	switch SortKey(raw) {
	case SortByPriceLow, SortByPriceHigh, SortByRating, SortByNewest:
		return SortKey(raw)
	}
	return SortByName
}

// CartItem is one line in the cart: a product variant and a quantity. The
// product is a value copy taken at add time. The id derives from the product
// id plus the add timestamp, so it is not stable across re-adds.
type CartItem struct {
	ID            string          `json:"id"`
	Product       catalog.Product `json:"product"`
	Quantity      int             `json:"quantity"`
	SelectedSize  string          `json:"selectedSize,omitempty"`
	SelectedColor string          `json:"selectedColor,omitempty"`
	AddedAt       time.Time       `json:"addedAt"`
}

// variantKey identifies a distinct (product, size, color) combination.
type variantKey struct {
	productID string
	size      string
	color     string
}

func (i CartItem) variant() variantKey {
	return variantKey{productID: i.Product.ID, size: i.SelectedSize, color: i.SelectedColor}
}

// Cart holds the line items plus aggregates derived from them. The
// aggregates are recomputed in full after every mutation; only the items,
// discount, and shipping fee are inputs.
type Cart struct {
	Items       []CartItem      `json:"items"`
	Total       decimal.Decimal `json:"total"`
	TotalItems  int             `json:"totalItems"`
	Discount    decimal.Decimal `json:"discount"`
	ShippingFee decimal.Decimal `json:"shippingFee"`
	Shipping    decimal.Decimal `json:"shipping"`
	Tax         decimal.Decimal `json:"tax"`
	FinalTotal  decimal.Decimal `json:"finalTotal"`
}

// WishlistItem records a liked product. At most one entry exists per
// product id.
type WishlistItem struct {
	ID      string          `json:"id"`
	Product catalog.Product `json:"product"`
	AddedAt time.Time       `json:"addedAt"`
}

// PriceRange bounds the price facet. A non-positive Max means unbounded.
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// Filter is the active facet set for search. All facets apply
// conjunctively; empty facets pass everything.
type Filter struct {
	Categories []string   `json:"categories"`
	Brands     []string   `json:"brands"`
	PriceRange PriceRange `json:"priceRange"`
	MinRating  float64    `json:"minRating"`
	InStock    bool       `json:"inStock"`
	Tags       []string   `json:"tags"`
}

// SearchState is replaced wholesale on every search invocation. The loading
// flag is visible between invocation and completion.
type SearchState struct {
	Query      string            `json:"query"`
	Filters    Filter            `json:"filters"`
	SortBy     SortKey           `json:"sortBy"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalItems int               `json:"totalItems"`
	Results    []catalog.Product `json:"results"`
	Loading    bool              `json:"loading"`
	Error      string            `json:"error,omitempty"`
}

// Preferences is the persisted view preference slot.
type Preferences struct {
	ViewMode ViewMode `json:"viewMode"`
}

// AppState is the full state owned by the store.
type AppState struct {
	Cart         Cart           `json:"cart"`
	Wishlist     []WishlistItem `json:"wishlist"`
	Search       SearchState    `json:"search"`
	ViewMode     ViewMode       `json:"viewMode"`
	CartOpen     bool           `json:"isCartOpen"`
	WishlistOpen bool           `json:"isWishlistOpen"`
}

const defaultPageSize = 12

func initialState() AppState {
	return AppState{
		Cart: Cart{
			Items:       []CartItem{},
			Total:       decimal.Zero,
			Discount:    decimal.Zero,
			ShippingFee: decimal.Zero,
			Shipping:    decimal.Zero,
			Tax:         decimal.Zero,
			FinalTotal:  decimal.Zero,
		},
		Wishlist: []WishlistItem{},
		Search: SearchState{
			Filters: Filter{
				Categories: []string{},
				Brands:     []string{},
				PriceRange: PriceRange{Min: decimal.Zero, Max: decimal.NewFromInt(5000)},
				Tags:       []string{},
			},
			SortBy:   SortByName,
			Page:     1,
			PageSize: defaultPageSize,
			Results:  []catalog.Product{},
		},
		ViewMode: ViewModeGrid,
	}
}

// IsInCart reports whether any line item references the product id.
func (s AppState) IsInCart(productID string) bool {
	for _, item := range s.Cart.Items {
		if item.Product.ID == productID {
			return true
		}
	}
	return false
}

// IsInWishlist reports whether the product id is wishlisted.
func (s AppState) IsInWishlist(productID string) bool {
	for _, item := range s.Wishlist {
		if item.Product.ID == productID {
			return true
		}
	}
	return false
}

// CartItemCount returns the summed quantity carried for the product id.
func (s AppState) CartItemCount(productID string) int {
	count := 0
	for _, item := range s.Cart.Items {
		if item.Product.ID == productID {
			count += item.Quantity
		}
	}
	return count
}
