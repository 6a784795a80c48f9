package search

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/angelmondragon/shopfront/internal/catalog"
	"github.com/angelmondragon/shopfront/internal/store"
	"github.com/angelmondragon/shopfront/pkg/errors"
	"github.com/angelmondragon/shopfront/pkg/logger"
	"github.com/angelmondragon/shopfront/pkg/metrics"
)

// fallbackMessage surfaces in search state when the remote catalog cannot
// answer and the built-in products are served instead.
const fallbackMessage = "catalog temporarily unavailable, showing built-in products"

// Remote is the slice of the catalog client the engine depends on.
type Remote interface {
	Search(ctx context.Context, q catalog.SearchQuery) (catalog.Page, error)
}

// Params carries the engine dependencies. Remote is optional; without it
// every lookup runs against the built-in catalog.
type Params struct {
	Store    *store.Store
	Remote   Remote
	Logger   *logger.Logger
	Metrics  *metrics.StoreMetrics
	Debounce time.Duration
}

// Engine resolves search state into results. Every invocation claims a
// monotonically increasing sequence number; a completion only commits when
// its number is still the latest, so slow lookups can never overwrite the
// results of a newer one.
type Engine struct {
	store    *store.Store
	remote   Remote
	log      *logger.Logger
	metrics  *metrics.StoreMetrics
	seq      atomic.Uint64
	debounce *Debouncer
}

// NewEngine builds a search engine.
func NewEngine(params Params) (*Engine, error) {
	if params.Store == nil {
		return nil, errors.New(errors.CodeValidation, "store is required")
	}
	if params.Logger == nil {
		return nil, errors.New(errors.CodeValidation, "logger is required")
	}
	window := params.Debounce
	if window <= 0 {
		window = 300 * time.Millisecond
	}
	return &Engine{
		store:    params.Store,
		remote:   params.Remote,
		log:      params.Logger,
		metrics:  params.Metrics,
		debounce: NewDebouncer(window),
	}, nil
}

// Request schedules an invocation after the debounce window. Rapid calls
// collapse into the single trailing invocation.
func (e *Engine) Request(ctx context.Context) {
	e.debounce.Trigger(func() {
		e.Invoke(ctx)
	})
}

// Close cancels any pending debounced invocation.
func (e *Engine) Close() {
	e.debounce.Stop()
}

// Invoke runs one lookup against the current search state and commits the
// outcome unless a newer invocation started in the meantime.
func (e *Engine) Invoke(ctx context.Context) store.AppState {
	token := e.seq.Add(1)
	e.metrics.IncSearch()

	state := e.store.Dispatch(ctx, store.SetSearchLoading{Loading: true})
	params := state.Search

	results, total, errMsg := e.lookup(ctx, params)

	if token != e.seq.Load() {
		e.metrics.IncStaleResult()
		e.log.Debug(ctx, "discarding superseded search results")
		return e.store.Snapshot()
	}

	return e.store.Dispatch(ctx, store.CommitSearchResults{
		Results:    results,
		TotalItems: total,
		Err:        errMsg,
	})
}

func (e *Engine) lookup(ctx context.Context, params store.SearchState) ([]catalog.Product, int, string) {
	if e.remote != nil {
		page, err := e.remote.Search(ctx, remoteQuery(params))
		if err == nil {
			return page.Products, page.Count, ""
		}
		e.log.Warn(ctx, "remote catalog search failed, serving built-in products")
	}

	results, total := e.local(params)
	if e.remote != nil {
		return results, total, fallbackMessage
	}
	return results, total, ""
}

// local filters, sorts, and paginates the built-in catalog.
func (e *Engine) local(params store.SearchState) ([]catalog.Product, int) {
	matched := Apply(catalog.FixtureProducts(), params.Query, params.Filters)
	Sort(matched, params.SortBy)

	total := len(matched)
	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = total
	}
	page := params.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= total {
		return []catalog.Product{}, total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return matched[start:end], total
}

func remoteQuery(params store.SearchState) catalog.SearchQuery {
	q := catalog.SearchQuery{
		Query:      params.Query,
		Categories: params.Filters.Categories,
		Brands:     params.Filters.Brands,
		InStock:    params.Filters.InStock,
		Page:       params.Page,
		PageSize:   params.PageSize,
		Ordering:   Ordering(params.SortBy),
	}
	if params.Filters.PriceRange.Min.IsPositive() {
		lower := params.Filters.PriceRange.Min
		q.MinPrice = &lower
	}
	if params.Filters.PriceRange.Max.IsPositive() {
		upper := params.Filters.PriceRange.Max
		q.MaxPrice = &upper
	}
	if params.Filters.MinRating > 0 {
		rating := params.Filters.MinRating
		q.MinRating = &rating
	}
	return q
}

// Debouncer collapses bursts of triggers into the single trailing call
// fired after a quiet window.
type Debouncer struct {
	mu     sync.Mutex
	window time.Duration
	timer  *time.Timer
}

// NewDebouncer builds a debouncer with the given quiet window.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

// Trigger schedules fn after the window, cancelling any pending schedule.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, fn)
}

// Stop cancels any pending call.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
