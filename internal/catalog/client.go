package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopfront/pkg/config"
	pkgerrors "github.com/angelmondragon/shopfront/pkg/errors"
)

// Page is one page of catalog results from the remote product API.
type Page struct {
	Count    int       `json:"count"`
	Next     *string   `json:"next"`
	Previous *string   `json:"previous"`
	Products []Product `json:"products"`
}

// SearchQuery carries the query parameters for the remote search endpoint.
type SearchQuery struct {
	Query      string
	Categories []string
	Brands     []string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	MinRating  *float64
	InStock    bool
	Page       int
	PageSize   int
	Ordering   string
}

// Client talks to the remote product API. All responses arrive in the
// {count,next,previous,results} envelope with decimal-string prices.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a catalog client from configuration.
func NewClient(cfg config.CatalogConfig) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog base url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

type envelope struct {
	Count    int           `json:"count"`
	Next     *string       `json:"next"`
	Previous *string       `json:"previous"`
	Results  []wireProduct `json:"results"`
}

type wireProduct struct {
	ID            json.Number       `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Price         string            `json:"price"`
	OriginalPrice *string           `json:"original_price"`
	Category      json.RawMessage   `json:"category"`
	Brand         json.RawMessage   `json:"brand"`
	InStock       bool              `json:"in_stock"`
	StockQuantity int               `json:"stock_quantity"`
	Rating        string            `json:"rating"`
	ReviewCount   int               `json:"review_count"`
	Thumbnail     *string           `json:"thumbnail"`
	Tags          []string          `json:"tags"`
	Images        []wireImage       `json:"images"`
	Specs         map[string]string `json:"specifications"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     *time.Time        `json:"updated_at"`
}

type wireImage struct {
	ImageURL string `json:"image_url"`
	Image    string `json:"image"`
}

type wireNamed struct {
	Name string `json:"name"`
}

type wireHealth struct {
	Status string `json:"status"`
}

// ListProducts fetches one page of the catalog.
func (c *Client) ListProducts(ctx context.Context, page, pageSize int) (Page, error) {
	params := url.Values{}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		params.Set("page_size", strconv.Itoa(pageSize))
	}
	return c.fetchPage(ctx, "/products/", params)
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, id string) (Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Product{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	var wire wireProduct
	status, err := c.getJSON(ctx, "/products/"+url.PathEscape(id)+"/", nil, &wire)
	if err != nil {
		return Product{}, err
	}
	if status == http.StatusNotFound {
		return Product{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if status != http.StatusOK {
		return Product{}, pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("catalog responded with status %d", status))
	}
	return transformProduct(wire), nil
}

// Search fetches a filtered, sorted page from the remote search endpoint.
func (c *Client) Search(ctx context.Context, q SearchQuery) (Page, error) {
	params := url.Values{}
	if q.Query != "" {
		params.Set("q", q.Query)
	}
	if len(q.Categories) > 0 {
		params.Set("category", strings.Join(q.Categories, ","))
	}
	if len(q.Brands) > 0 {
		params.Set("brand", strings.Join(q.Brands, ","))
	}
	if q.MinPrice != nil {
		params.Set("min_price", q.MinPrice.String())
	}
	if q.MaxPrice != nil {
		params.Set("max_price", q.MaxPrice.String())
	}
	if q.MinRating != nil {
		params.Set("min_rating", strconv.FormatFloat(*q.MinRating, 'f', -1, 64))
	}
	if q.InStock {
		params.Set("in_stock", "true")
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		params.Set("page_size", strconv.Itoa(q.PageSize))
	}
	if q.Ordering != "" {
		params.Set("ordering", q.Ordering)
	}
	return c.fetchPage(ctx, "/search/", params)
}

// Health reports whether the remote API answers its liveness probe.
func (c *Client) Health(ctx context.Context) bool {
	var health wireHealth
	status, err := c.getJSON(ctx, "/health/", nil, &health)
	if err != nil {
		return false
	}
	return status == http.StatusOK && health.Status == "healthy"
}

func (c *Client) fetchPage(ctx context.Context, path string, params url.Values) (Page, error) {
	var env envelope
	status, err := c.getJSON(ctx, path, params, &env)
	if err != nil {
		return Page{}, err
	}
	if status != http.StatusOK {
		return Page{}, pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("catalog responded with status %d", status))
	}

	products := make([]Product, 0, len(env.Results))
	for _, wire := range env.Results {
		products = append(products, transformProduct(wire))
	}
	return Page{
		Count:    env.Count,
		Next:     env.Next,
		Previous: env.Previous,
		Products: products,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, dest any) (int, error) {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build catalog request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return resp.StatusCode, nil
	}
	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return resp.StatusCode, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode catalog response")
	}
	return resp.StatusCode, nil
}

// transformProduct maps a wire product into the domain shape. Missing fields
// fall back the same way the catalog UI handled sparse API rows: rating
// defaults to 0, updated_at to created_at, thumbnail to the first image.
func transformProduct(wire wireProduct) Product {
	price, err := decimal.NewFromString(strings.TrimSpace(wire.Price))
	if err != nil {
		price = decimal.Zero
	}

	var originalPrice *decimal.Decimal
	if wire.OriginalPrice != nil {
		if parsed, err := decimal.NewFromString(strings.TrimSpace(*wire.OriginalPrice)); err == nil {
			originalPrice = &parsed
		}
	}

	rating, err := strconv.ParseFloat(strings.TrimSpace(wire.Rating), 64)
	if err != nil {
		rating = 0
	}

	images := make([]string, 0, len(wire.Images))
	for _, img := range wire.Images {
		if img.ImageURL != "" {
			images = append(images, img.ImageURL)
		} else if img.Image != "" {
			images = append(images, img.Image)
		}
	}

	thumbnail := ""
	if wire.Thumbnail != nil {
		thumbnail = *wire.Thumbnail
	}
	if thumbnail == "" && len(images) > 0 {
		thumbnail = images[0]
	}

	updatedAt := wire.CreatedAt
	if wire.UpdatedAt != nil {
		updatedAt = *wire.UpdatedAt
	}

	tags := wire.Tags
	if tags == nil {
		tags = []string{}
	}

	return Product{
		ID:             wire.ID.String(),
		Name:           wire.Name,
		Description:    wire.Description,
		Price:          price,
		OriginalPrice:  originalPrice,
		Category:       namedField(wire.Category),
		Brand:          namedField(wire.Brand),
		Images:         images,
		Thumbnail:      thumbnail,
		Rating:         rating,
		ReviewCount:    wire.ReviewCount,
		InStock:        wire.InStock,
		StockQuantity:  wire.StockQuantity,
		Tags:           tags,
		Specifications: wire.Specs,
		CreatedAt:      wire.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

// namedField accepts either a plain string (list view) or a nested object
// with a name (detail view), mirroring the two serializer shapes.
func namedField(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}
	var asObject wireNamed
	if err := json.Unmarshal(raw, &asObject); err == nil {
		return asObject.Name
	}
	return ""
}
