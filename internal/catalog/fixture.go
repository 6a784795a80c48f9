package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// FixtureProducts returns the built-in ten-product catalog used when the
// remote API is unreachable. Callers receive fresh copies on every call.
func FixtureProducts() []Product {
	products := make([]Product, 0, len(fixture))
	for _, p := range fixture {
		products = append(products, p.Clone())
	}
	return products
}

// FixtureProduct returns the built-in product with the given id.
func FixtureProduct(id string) (Product, bool) {
	for _, p := range fixture {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return Product{}, false
}

func money(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func moneyPtr(value string) *decimal.Decimal {
	parsed := decimal.RequireFromString(value)
	return &parsed
}

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

var fixture = []Product{
	{
		ID:            "p-001",
		Name:          "Smartphone Pro X",
		Description:   "Flagship 6.7 inch smartphone with a triple camera system.",
		Price:         money("999"),
		OriginalPrice: moneyPtr("1099"),
		Category:      "Electronics",
		Subcategory:   "Smartphones",
		Brand:         "TechNova",
		Thumbnail:     "https://images.example.com/products/p-001.jpg",
		Rating:        4.8,
		ReviewCount:   1243,
		InStock:       true,
		StockQuantity: 52,
		Tags:          []string{"smartphone", "5g", "camera"},
		Specifications: map[string]string{
			"display": "6.7\" OLED",
			"storage": "256GB",
		},
		CreatedAt: day("2024-03-18"),
		UpdatedAt: day("2024-06-02"),
	},
	{
		ID:            "p-002",
		Name:          "Laptop Air 13",
		Description:   "Thin and light 13 inch laptop for everyday computing.",
		Price:         money("1199"),
		Category:      "Electronics",
		Subcategory:   "Laptops",
		Brand:         "TechNova",
		Thumbnail:     "https://images.example.com/products/p-002.jpg",
		Rating:        4.6,
		ReviewCount:   867,
		InStock:       true,
		StockQuantity: 31,
		Tags:          []string{"laptop", "ultrabook"},
		Specifications: map[string]string{
			"cpu": "8-core",
			"ram": "16GB",
		},
		CreatedAt: day("2024-02-09"),
		UpdatedAt: day("2024-05-21"),
	},
	{
		ID:            "p-003",
		Name:          "Wireless Earbuds",
		Description:   "Noise-cancelling earbuds with 24 hour battery life.",
		Price:         money("89"),
		OriginalPrice: moneyPtr("119"),
		Category:      "Electronics",
		Subcategory:   "Accessories",
		Brand:         "SoundCore",
		Thumbnail:     "https://images.example.com/products/p-003.jpg",
		Rating:        4.3,
		ReviewCount:   2390,
		InStock:       true,
		StockQuantity: 140,
		Tags:          []string{"audio", "wireless"},
		CreatedAt:     day("2024-04-27"),
		UpdatedAt:     day("2024-04-27"),
	},
	{
		ID:            "p-004",
		Name:          "4K Action Camera",
		Description:   "Waterproof action camera shooting 4K at 60fps.",
		Price:         money("349"),
		Category:      "Electronics",
		Subcategory:   "Accessories",
		Brand:         "Pixelon",
		Thumbnail:     "https://images.example.com/products/p-004.jpg",
		Rating:        4.1,
		ReviewCount:   412,
		InStock:       true,
		StockQuantity: 23,
		Tags:          []string{"camera", "outdoor"},
		CreatedAt:     day("2024-01-15"),
		UpdatedAt:     day("2024-03-30"),
	},
	{
		ID:            "p-005",
		Name:          "Running Sneakers",
		Description:   "Lightweight road running shoes with responsive cushioning.",
		Price:         money("129"),
		Category:      "Clothing",
		Subcategory:   "Shoes",
		Brand:         "Stride",
		Thumbnail:     "https://images.example.com/products/p-005.jpg",
		Rating:        4.4,
		ReviewCount:   980,
		InStock:       true,
		StockQuantity: 64,
		Tags:          []string{"shoes", "running", "fitness"},
		CreatedAt:     day("2024-05-06"),
		UpdatedAt:     day("2024-05-06"),
	},
	{
		ID:            "p-006",
		Name:          "Denim Jacket",
		Description:   "Classic fit denim jacket in washed indigo.",
		Price:         money("79"),
		OriginalPrice: moneyPtr("99"),
		Category:      "Clothing",
		Brand:         "UrbanThread",
		Thumbnail:     "https://images.example.com/products/p-006.jpg",
		Rating:        4.0,
		ReviewCount:   233,
		InStock:       true,
		StockQuantity: 48,
		Tags:          []string{"jacket", "denim"},
		CreatedAt:     day("2023-11-20"),
		UpdatedAt:     day("2024-02-14"),
	},
	{
		ID:            "p-007",
		Name:          "Espresso Machine",
		Description:   "Semi-automatic espresso machine with milk frother.",
		Price:         money("549"),
		Category:      "Home & Garden",
		Brand:         "BrewMaster",
		Thumbnail:     "https://images.example.com/products/p-007.jpg",
		Rating:        4.7,
		ReviewCount:   651,
		InStock:       true,
		StockQuantity: 17,
		Tags:          []string{"coffee", "kitchen"},
		Specifications: map[string]string{
			"pressure": "15 bar",
		},
		CreatedAt: day("2024-03-02"),
		UpdatedAt: day("2024-03-02"),
	},
	{
		ID:            "p-008",
		Name:          "Ceramic Cookware Set",
		Description:   "10-piece non-stick ceramic cookware set.",
		Price:         money("199"),
		Category:      "Home & Garden",
		Brand:         "HearthWare",
		Thumbnail:     "https://images.example.com/products/p-008.jpg",
		Rating:        4.2,
		ReviewCount:   318,
		InStock:       false,
		StockQuantity: 0,
		Tags:          []string{"kitchen", "cookware"},
		CreatedAt:     day("2023-12-11"),
		UpdatedAt:     day("2024-01-08"),
	},
	{
		ID:            "p-009",
		Name:          "Yoga Mat",
		Description:   "Extra thick non-slip yoga mat with carry strap.",
		Price:         money("39"),
		Category:      "Sports",
		Brand:         "FlexFit",
		Thumbnail:     "https://images.example.com/products/p-009.jpg",
		Rating:        4.5,
		ReviewCount:   1754,
		InStock:       true,
		StockQuantity: 210,
		Tags:          []string{"yoga", "fitness"},
		CreatedAt:     day("2024-06-14"),
		UpdatedAt:     day("2024-06-14"),
	},
	{
		ID:            "p-010",
		Name:          "Mountain Bike Helmet",
		Description:   "Ventilated trail helmet with adjustable fit system.",
		Price:         money("89"),
		Category:      "Sports",
		Brand:         "Stride",
		Thumbnail:     "https://images.example.com/products/p-010.jpg",
		Rating:        4.3,
		ReviewCount:   502,
		InStock:       true,
		StockQuantity: 38,
		Tags:          []string{"cycling", "outdoor"},
		CreatedAt:     day("2024-04-01"),
		UpdatedAt:     day("2024-04-01"),
	},
}
