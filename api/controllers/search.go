package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopfront/api/responses"
	"github.com/angelmondragon/shopfront/api/validators"
	"github.com/angelmondragon/shopfront/internal/store"
	pkgerrors "github.com/angelmondragon/shopfront/pkg/errors"
	"github.com/angelmondragon/shopfront/pkg/logger"
)

// Invoker runs one search lookup against the current search state.
type Invoker interface {
	Invoke(ctx context.Context) store.AppState
}

// Requester schedules a lookup after the debounce window; rapid calls
// collapse into the single trailing lookup.
type Requester interface {
	Request(ctx context.Context)
}

// Searcher is the full search surface the router wires up.
type Searcher interface {
	Invoker
	Requester
}

type updateQueryPayload struct {
	Query string `json:"query" validate:"max=256"`
}

// Search installs the query, facets, sort, and page from the request into
// the search state and runs one lookup. The response is the resulting
// search state: a sorted page of results plus pagination totals.
func Search(d Dispatcher, invoker Invoker, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if d == nil || invoker == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "search unavailable"))
			return
		}

		minPrice, err := validators.ParseQueryDecimal(r, "min_price", decimal.Zero)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		maxPrice, err := validators.ParseQueryDecimal(r, "max_price", decimal.Zero)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		minRating, err := validators.ParseQueryFloat(r, "min_rating", 0, 0, 5)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		page, err := validators.ParseQueryInt(r, "page", 1, 1, 10000)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		filters := store.Filter{
			Categories: validators.ParseQueryList(r, "category"),
			Brands:     validators.ParseQueryList(r, "brand"),
			PriceRange: store.PriceRange{Min: minPrice, Max: maxPrice},
			MinRating:  minRating,
			InStock:    strings.EqualFold(r.URL.Query().Get("in_stock"), "true"),
			Tags:       validators.ParseQueryList(r, "tags"),
		}

		d.Dispatch(ctx, store.SetSearchQuery{Query: strings.TrimSpace(r.URL.Query().Get("q"))})
		d.Dispatch(ctx, store.SetSearchFilters{Filters: filters})
		if raw := strings.TrimSpace(r.URL.Query().Get("sort")); raw != "" {
			d.Dispatch(ctx, store.SetSortKey{Key: store.ParseSortKey(raw)})
		}
		if page > 1 {
			d.Dispatch(ctx, store.SetPage{Page: page})
		}

		state := invoker.Invoke(ctx)
		responses.WriteSuccess(w, state.Search)
	}
}

// SearchQueryUpdate installs a new text query and schedules a debounced
// lookup, so a burst of keystroke updates resolves into one lookup. The
// response is the search state as of the update, before results arrive.
func SearchQueryUpdate(d Dispatcher, requester Requester, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if d == nil || requester == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "search unavailable"))
			return
		}

		var payload updateQueryPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		state := d.Dispatch(ctx, store.SetSearchQuery{Query: strings.TrimSpace(payload.Query)})
		// the lookup fires after this request finishes; keep the context
		// values but not its cancellation
		requester.Request(context.WithoutCancel(ctx))
		responses.WriteSuccessStatus(w, http.StatusAccepted, state.Search)
	}
}
