package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopfront/pkg/config"
	pkgerrors "github.com/angelmondragon/shopfront/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient(config.CatalogConfig{BaseURL: server.URL, Timeout: time.Second})
	if err != nil {
		t.Fatalf("unexpected error building client: %v", err)
	}
	return client, server
}

const listPayload = `{
	"count": 2,
	"next": "http://api.example.com/products/?page=2",
	"previous": null,
	"results": [
		{
			"id": 17,
			"name": "Smartphone Pro X",
			"description": "Flagship phone",
			"price": "999.00",
			"original_price": "1099.00",
			"category": "Electronics",
			"brand": "TechNova",
			"in_stock": true,
			"stock_quantity": 52,
			"rating": "4.80",
			"review_count": 1243,
			"thumbnail": null,
			"tags": ["smartphone"],
			"images": [{"image_url": "https://cdn.example.com/a.jpg"}],
			"created_at": "2024-03-18T00:00:00Z"
		},
		{
			"id": 18,
			"name": "Laptop Air 13",
			"description": "Thin laptop",
			"price": "1199.00",
			"category": {"name": "Electronics"},
			"brand": {"name": "TechNova"},
			"in_stock": true,
			"stock_quantity": 31,
			"rating": "not-a-number",
			"review_count": 867,
			"created_at": "2024-02-09T00:00:00Z",
			"updated_at": "2024-05-21T00:00:00Z"
		}
	]
}`

func TestListProductsParsesEnvelope(t *testing.T) {
	var gotQuery url.Values
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(listPayload))
	}))

	page, err := client.ListProducts(context.Background(), 2, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery.Get("page") != "2" || gotQuery.Get("page_size") != "12" {
		t.Fatalf("unexpected query params: %v", gotQuery)
	}
	if page.Count != 2 || len(page.Products) != 2 {
		t.Fatalf("expected 2 products, got count=%d len=%d", page.Count, len(page.Products))
	}
	if page.Next == nil {
		t.Fatal("expected next link")
	}

	first := page.Products[0]
	if first.ID != "17" {
		t.Fatalf("expected numeric id as string, got %q", first.ID)
	}
	if !first.Price.Equal(decimal.RequireFromString("999.00")) {
		t.Fatalf("expected decimal price, got %s", first.Price)
	}
	if first.OriginalPrice == nil || !first.OriginalPrice.Equal(decimal.RequireFromString("1099.00")) {
		t.Fatalf("expected original price parsed, got %v", first.OriginalPrice)
	}
	if first.Category != "Electronics" || first.Brand != "TechNova" {
		t.Fatalf("expected plain string category/brand, got %q/%q", first.Category, first.Brand)
	}
	if first.Thumbnail != "https://cdn.example.com/a.jpg" {
		t.Fatalf("expected thumbnail fallback to first image, got %q", first.Thumbnail)
	}
	if !first.UpdatedAt.Equal(first.CreatedAt) {
		t.Fatal("expected updated_at fallback to created_at")
	}
	if first.Rating != 4.8 {
		t.Fatalf("expected rating 4.8, got %v", first.Rating)
	}

	second := page.Products[1]
	if second.Category != "Electronics" || second.Brand != "TechNova" {
		t.Fatalf("expected nested category/brand names, got %q/%q", second.Category, second.Brand)
	}
	if second.Rating != 0 {
		t.Fatalf("expected unparseable rating to default to 0, got %v", second.Rating)
	}
	if second.Tags == nil || len(second.Tags) != 0 {
		t.Fatalf("expected empty non-nil tags, got %v", second.Tags)
	}
}

func TestGetProductNotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetProduct(context.Background(), "999")
	if err == nil {
		t.Fatal("expected an error")
	}
	if domainErr := pkgerrors.As(err); domainErr == nil || domainErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found code, got %v", err)
	}
}

func TestSearchSendsFilterParams(t *testing.T) {
	var gotQuery url.Values
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"count":0,"results":[]}`))
	}))

	minPrice := decimal.NewFromInt(100)
	maxPrice := decimal.NewFromInt(500)
	minRating := 4.0
	_, err := client.Search(context.Background(), SearchQuery{
		Query:      "camera",
		Categories: []string{"Electronics", "Sports"},
		Brands:     []string{"TechNova"},
		MinPrice:   &minPrice,
		MaxPrice:   &maxPrice,
		MinRating:  &minRating,
		InStock:    true,
		Page:       3,
		PageSize:   12,
		Ordering:   "-price",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]string{
		"q":          "camera",
		"category":   "Electronics,Sports",
		"brand":      "TechNova",
		"min_price":  "100",
		"max_price":  "500",
		"min_rating": "4",
		"in_stock":   "true",
		"page":       "3",
		"page_size":  "12",
		"ordering":   "-price",
	}
	for key, value := range want {
		if got := gotQuery.Get(key); got != value {
			t.Fatalf("expected %s=%q, got %q", key, value, got)
		}
	}
}

func TestSearchDependencyFailure(t *testing.T) {
	client, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	_ = server

	_, err := client.Search(context.Background(), SearchQuery{Query: "camera"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if domainErr := pkgerrors.As(err); domainErr == nil || domainErr.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %v", err)
	}
}

func TestHealthProbe(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health/" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"status":"healthy"}`))
	}))
	if !client.Health(context.Background()) {
		t.Fatal("expected healthy probe")
	}

	down, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"degraded"}`))
	}))
	if down.Health(context.Background()) {
		t.Fatal("expected unhealthy probe")
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(config.CatalogConfig{}); err == nil {
		t.Fatal("expected an error for missing base url")
	}
}
