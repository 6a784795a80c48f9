package search

import (
	"sort"
	"strings"

	"github.com/angelmondragon/shopfront/internal/catalog"
	"github.com/angelmondragon/shopfront/internal/store"
)

// Sort orders the products in place by the given key. The sort is stable,
// so products with equal keys keep their relative order.
func Sort(products []catalog.Product, key store.SortKey) {
	switch key {
	case store.SortByPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.LessThan(products[j].Price)
		})
	case store.SortByPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.GreaterThan(products[j].Price)
		})
	case store.SortByRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case store.SortByNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	default:
		sort.SliceStable(products, func(i, j int) bool {
			return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
		})
	}
}

// Ordering maps a sort key onto the remote API ordering parameter.
func Ordering(key store.SortKey) string {
	switch key {
	case store.SortByPriceLow:
		return "price"
	case store.SortByPriceHigh:
		return "-price"
	case store.SortByRating:
		return "-average_rating"
	case store.SortByNewest:
		return "-created_at"
	default:
		return "name"
	}
}
