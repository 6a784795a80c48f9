package search

import (
	"strings"

	"github.com/angelmondragon/shopfront/internal/catalog"
	"github.com/angelmondragon/shopfront/internal/store"
)

// Matches reports whether the product passes the query and every active
// facet. Facets combine conjunctively; an empty facet passes everything.
// The free-text query matches case-insensitively across name, description,
// brand, and tags.
func Matches(p catalog.Product, query string, f store.Filter) bool {
	if q := strings.ToLower(strings.TrimSpace(query)); q != "" {
		if !matchesText(p, q) {
			return false
		}
	}
	if len(f.Categories) > 0 && !containsFold(f.Categories, p.Category) {
		return false
	}
	if len(f.Brands) > 0 && !containsFold(f.Brands, p.Brand) {
		return false
	}
	if p.Price.LessThan(f.PriceRange.Min) {
		return false
	}
	if f.PriceRange.Max.IsPositive() && p.Price.GreaterThan(f.PriceRange.Max) {
		return false
	}
	if p.Rating < f.MinRating {
		return false
	}
	if f.InStock && !p.InStock {
		return false
	}
	if len(f.Tags) > 0 && !anyTag(p, f.Tags) {
		return false
	}
	return true
}

// Apply returns the products passing the query and facets, preserving input
// order.
func Apply(products []catalog.Product, query string, f store.Filter) []catalog.Product {
	matched := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if Matches(p, query, f) {
			matched = append(matched, p)
		}
	}
	return matched
}

func matchesText(p catalog.Product, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Brand), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}

func anyTag(p catalog.Product, wanted []string) bool {
	for _, want := range wanted {
		for _, tag := range p.Tags {
			if strings.EqualFold(tag, want) {
				return true
			}
		}
	}
	return false
}
