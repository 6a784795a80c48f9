package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/shopfront/api/controllers"
	"github.com/angelmondragon/shopfront/api/middleware"
	"github.com/angelmondragon/shopfront/pkg/config"
	"github.com/angelmondragon/shopfront/pkg/logger"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Store       controllers.Dispatcher
	Search      controllers.Searcher
	Products    controllers.ProductLister
	ProductGet  controllers.ProductGetter
	Persistence controllers.Pinger
	Catalog     controllers.CatalogProber
	Registry    *prometheus.Registry
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.Persistence, deps.Catalog))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(deps.Store, deps.Logger))
			r.Delete("/", controllers.CartClear(deps.Store, deps.Logger))
			r.Post("/items", controllers.CartAddItem(deps.Store, deps.ProductGet, deps.Logger))
			r.Patch("/items/{itemID}", controllers.CartSetQuantity(deps.Store, deps.Logger))
			r.Delete("/items/{itemID}", controllers.CartRemoveItem(deps.Store, deps.Logger))
			r.Post("/discount", controllers.CartApplyDiscount(deps.Store, deps.Logger))
			r.Post("/shipping", controllers.CartSetShipping(deps.Store, deps.Logger))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistFetch(deps.Store, deps.Logger))
			r.Post("/items", controllers.WishlistAdd(deps.Store, deps.ProductGet, deps.Logger))
			r.Delete("/items/{productID}", controllers.WishlistRemove(deps.Store, deps.Logger))
		})

		r.Route("/search", func(r chi.Router) {
			r.Get("/", controllers.Search(deps.Store, deps.Search, deps.Logger))
			r.Post("/query", controllers.SearchQueryUpdate(deps.Store, deps.Search, deps.Logger))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(deps.Products, deps.Logger, deps.Config.Catalog.PageSize))
			r.Get("/{productID}", controllers.ProductGet(deps.ProductGet, deps.Logger))
		})

		r.Route("/preferences", func(r chi.Router) {
			r.Get("/", controllers.PreferencesFetch(deps.Store, deps.Logger))
			r.Put("/", controllers.PreferencesUpdate(deps.Store, deps.Logger))
		})

		r.Post("/panels/{panel}/toggle", controllers.PanelToggle(deps.Store, deps.Logger))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	return r
}
