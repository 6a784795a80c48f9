package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/shopfront/api/responses"
	"github.com/angelmondragon/shopfront/api/validators"
	"github.com/angelmondragon/shopfront/internal/catalog"
	pkgerrors "github.com/angelmondragon/shopfront/pkg/errors"
	"github.com/angelmondragon/shopfront/pkg/logger"
)

// ProductLister fetches catalog pages from the remote API.
type ProductLister interface {
	ListProducts(ctx context.Context, page, pageSize int) (catalog.Page, error)
}

// ProductsList returns one catalog page, serving the built-in products when
// the remote API is unreachable.
func ProductsList(lister ProductLister, logg *logger.Logger, defaultPageSize int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 10000)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		pageSize, err := validators.ParseQueryInt(r, "page_size", defaultPageSize, 1, 100)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if lister != nil {
			remote, err := lister.ListProducts(ctx, page, pageSize)
			if err == nil {
				responses.WriteSuccess(w, remote)
				return
			}
			if logg != nil {
				logg.Warn(ctx, "remote catalog list failed, serving built-in products")
			}
		}

		responses.WriteSuccess(w, fixturePage(page, pageSize))
	}
}

// ProductGet returns a single product by id, with fixture fallback.
func ProductGet(getter ProductGetter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		productID := strings.TrimSpace(chi.URLParam(r, "productID"))
		if productID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		product, err := resolveProduct(ctx, getter, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func fixturePage(page, pageSize int) catalog.Page {
	products := catalog.FixtureProducts()
	total := len(products)

	start := (page - 1) * pageSize
	if start >= total {
		return catalog.Page{Count: total, Products: []catalog.Product{}}
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return catalog.Page{Count: total, Products: products[start:end]}
}
