package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopfront/api/responses"
	"github.com/angelmondragon/shopfront/api/validators"
	"github.com/angelmondragon/shopfront/internal/store"
	pkgerrors "github.com/angelmondragon/shopfront/pkg/errors"
	"github.com/angelmondragon/shopfront/pkg/logger"
)

type addCartItemPayload struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=0,max=99"`
	Size      string `json:"size" validate:"max=32"`
	Color     string `json:"color" validate:"max=32"`
}

type setQuantityPayload struct {
	Quantity int `json:"quantity" validate:"min=0,max=99"`
}

type moneyPayload struct {
	Amount string `json:"amount" validate:"required"`
}

// CartFetch returns the cart with its recomputed aggregates.
func CartFetch(d Dispatcher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if d == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store unavailable"))
			return
		}
		responses.WriteSuccess(w, d.Snapshot().Cart)
	}
}

// CartAddItem resolves the product and adds it to the cart, merging into an
// existing variant line when one exists.
func CartAddItem(d Dispatcher, products ProductGetter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if d == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store unavailable"))
			return
		}

		var payload addCartItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := resolveProduct(ctx, products, payload.ProductID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		state := d.Dispatch(ctx, store.AddCartItem{
			Product:  product,
			Quantity: payload.Quantity,
			Size:     payload.Size,
			Color:    payload.Color,
		})
		responses.WriteSuccessStatus(w, http.StatusCreated, state.Cart)
	}
}

// CartSetQuantity replaces a line quantity; zero removes the line.
func CartSetQuantity(d Dispatcher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if d == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store unavailable"))
			return
		}

		itemID := strings.TrimSpace(chi.URLParam(r, "itemID"))
		if itemID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		var payload setQuantityPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		state := d.Dispatch(ctx, store.SetCartItemQuantity{ItemID: itemID, Quantity: payload.Quantity})
		responses.WriteSuccess(w, state.Cart)
	}
}

// CartRemoveItem deletes a cart line. Removing an unknown line leaves the
// cart untouched.
func CartRemoveItem(d Dispatcher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if d == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store unavailable"))
			return
		}

		itemID := strings.TrimSpace(chi.URLParam(r, "itemID"))
		if itemID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		state := d.Dispatch(ctx, store.RemoveCartItem{ItemID: itemID})
		responses.WriteSuccess(w, state.Cart)
	}
}

// CartClear empties the cart and resets discount and shipping.
func CartClear(d Dispatcher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if d == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store unavailable"))
			return
		}
		state := d.Dispatch(ctx, store.ClearCart{})
		responses.WriteSuccess(w, state.Cart)
	}
}

// CartApplyDiscount sets the flat discount amount.
func CartApplyDiscount(d Dispatcher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if d == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store unavailable"))
			return
		}

		amount, err := decodeMoney(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		state := d.Dispatch(ctx, store.ApplyDiscount{Amount: amount})
		responses.WriteSuccess(w, state.Cart)
	}
}

// CartSetShipping sets the shipping fee input.
func CartSetShipping(d Dispatcher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if d == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store unavailable"))
			return
		}

		fee, err := decodeMoney(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		state := d.Dispatch(ctx, store.SetShippingFee{Fee: fee})
		responses.WriteSuccess(w, state.Cart)
	}
}

func decodeMoney(r *http.Request) (decimal.Decimal, error) {
	var payload moneyPayload
	if err := validators.DecodeJSONBody(r, &payload); err != nil {
		return decimal.Zero, err
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(payload.Amount))
	if err != nil {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "amount must be a decimal number").
			WithDetails(map[string]any{"field": "amount"})
	}
	if amount.IsNegative() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "amount must not be negative").
			WithDetails(map[string]any{"field": "amount"})
	}
	return amount, nil
}
