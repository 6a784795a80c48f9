package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is an immutable catalog entry. Cart and wishlist entries hold
// value copies, so later catalog updates never propagate into them.
type Product struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          decimal.Decimal   `json:"price"`
	OriginalPrice  *decimal.Decimal  `json:"originalPrice,omitempty"`
	Category       string            `json:"category"`
	Subcategory    string            `json:"subcategory,omitempty"`
	Brand          string            `json:"brand"`
	Images         []string          `json:"images"`
	Thumbnail      string            `json:"thumbnail"`
	Rating         float64           `json:"rating"`
	ReviewCount    int               `json:"reviewCount"`
	InStock        bool              `json:"inStock"`
	StockQuantity  int               `json:"stockQuantity"`
	Tags           []string          `json:"tags"`
	Specifications map[string]string `json:"specifications,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

// Clone returns a deep value copy of the product.
func (p Product) Clone() Product {
	clone := p
	if p.OriginalPrice != nil {
		orig := *p.OriginalPrice
		clone.OriginalPrice = &orig
	}
	if p.Images != nil {
		clone.Images = append([]string(nil), p.Images...)
	}
	if p.Tags != nil {
		clone.Tags = append([]string(nil), p.Tags...)
	}
	if p.Specifications != nil {
		specs := make(map[string]string, len(p.Specifications))
		for k, v := range p.Specifications {
			specs[k] = v
		}
		clone.Specifications = specs
	}
	return clone
}

// IsOnSale reports whether the product carries an original price above the
// current price.
func (p Product) IsOnSale() bool {
	return p.OriginalPrice != nil && p.OriginalPrice.GreaterThan(p.Price)
}

// DiscountPercent returns the sale discount as a percentage, 0 when the
// product is not on sale.
func (p Product) DiscountPercent() decimal.Decimal {
	if !p.IsOnSale() || p.OriginalPrice.IsZero() {
		return decimal.Zero
	}
	return p.OriginalPrice.Sub(p.Price).
		Div(*p.OriginalPrice).
		Mul(decimal.NewFromInt(100))
}

// HasTag reports whether the product carries the given tag.
func (p Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
