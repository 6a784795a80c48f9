package controllers

import (
	"net/http"

	"github.com/angelmondragon/shopfront/api/responses"
	"github.com/angelmondragon/shopfront/api/validators"
	"github.com/angelmondragon/shopfront/internal/store"
	pkgerrors "github.com/angelmondragon/shopfront/pkg/errors"
	"github.com/angelmondragon/shopfront/pkg/logger"
)

type updatePreferencesPayload struct {
	ViewMode string `json:"viewMode" validate:"required,oneof=grid list"`
}

// PreferencesFetch returns the persisted view preferences.
func PreferencesFetch(d Dispatcher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if d == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store unavailable"))
			return
		}
		responses.WriteSuccess(w, store.Preferences{ViewMode: d.Snapshot().ViewMode})
	}
}

// PreferencesUpdate switches the view mode.
func PreferencesUpdate(d Dispatcher, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if d == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store unavailable"))
			return
		}

		var payload updatePreferencesPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		state := d.Dispatch(ctx, store.SetViewMode{Mode: store.ParseViewMode(payload.ViewMode)})
		responses.WriteSuccess(w, store.Preferences{ViewMode: state.ViewMode})
	}
}
