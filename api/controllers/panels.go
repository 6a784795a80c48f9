package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/shopfront/api/responses"
	"github.com/angelmondragon/shopfront/internal/store"
	pkgerrors "github.com/angelmondragon/shopfront/pkg/errors"
	"github.com/angelmondragon/shopfront/pkg/logger"
)

type panelState struct {
	CartOpen     bool `json:"isCartOpen"`
	WishlistOpen bool `json:"isWishlistOpen"`
}

// PanelToggle flips the named slide-over panel. Opening one closes the
// other.
func PanelToggle(d Dispatcher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if d == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store unavailable"))
			return
		}

		var action store.Action
		switch strings.TrimSpace(chi.URLParam(r, "panel")) {
		case "cart":
			action = store.ToggleCartPanel{}
		case "wishlist":
			action = store.ToggleWishlistPanel{}
		default:
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "panel must be cart or wishlist"))
			return
		}

		state := d.Dispatch(ctx, action)
		responses.WriteSuccess(w, panelState{
			CartOpen:     state.CartOpen,
			WishlistOpen: state.WishlistOpen,
		})
	}
}
