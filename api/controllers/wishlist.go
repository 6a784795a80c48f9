package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/shopfront/api/responses"
	"github.com/angelmondragon/shopfront/api/validators"
	"github.com/angelmondragon/shopfront/internal/store"
	pkgerrors "github.com/angelmondragon/shopfront/pkg/errors"
	"github.com/angelmondragon/shopfront/pkg/logger"
)

type addWishlistItemPayload struct {
	ProductID string `json:"productId" validate:"required"`
}

// WishlistFetch returns the wishlist entries.
func WishlistFetch(d Dispatcher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if d == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store unavailable"))
			return
		}
		responses.WriteSuccess(w, d.Snapshot().Wishlist)
	}
}

// WishlistAdd likes a product. Liking an already-liked product changes
// nothing.
func WishlistAdd(d Dispatcher, products ProductGetter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if d == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store unavailable"))
			return
		}

		var payload addWishlistItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := resolveProduct(ctx, products, payload.ProductID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		state := d.Dispatch(ctx, store.AddWishlistItem{Product: product})
		responses.WriteSuccessStatus(w, http.StatusCreated, state.Wishlist)
	}
}

// WishlistRemove unlikes a product by id.
func WishlistRemove(d Dispatcher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if d == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store unavailable"))
			return
		}

		productID := strings.TrimSpace(chi.URLParam(r, "productID"))
		if productID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		state := d.Dispatch(ctx, store.RemoveWishlistItem{ProductID: productID})
		responses.WriteSuccess(w, state.Wishlist)
	}
}
