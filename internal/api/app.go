package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"SunShop/internal/auth"
	"SunShop/internal/cart"
	"SunShop/internal/catalog"
	"SunShop/pkg/kit"
)

type Deps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	Catalog  catalog.Store
	Users    auth.UserStore
	Sessions *auth.Sessions
	Guard    *auth.Guard
	Carts    *cart.Engine

	MetricsEnabled bool
	MetricsToken   string
}

const readyTimeout = 1 * time.Second

func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()

	setupMiddleware(r, deps)
	setupMetrics(r, deps)
	setupRoutes(r, deps)

	return r
}

func setupMiddleware(r *chi.Mux, deps Deps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))

	// The original service attached a wide-open CORS header set to every
	// response; browsers hitting the demo frontend rely on it.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "X-Requested-With", "Content-Type", "Accept", cart.TokenHeader},
		MaxAge:         300,
	}))
}

func setupMetrics(r *chi.Mux, deps Deps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.ChiRoutePatternOrPath))

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func setupRoutes(r *chi.Mux, deps Deps) {
	catalogSrv := &catalog.Server{Store: deps.Catalog, Log: deps.Log}
	authSrv := &auth.Server{Log: deps.Log, Users: deps.Users, Sessions: deps.Sessions, Guard: deps.Guard}
	cartSrv := &cart.Server{Engine: deps.Carts, Log: deps.Log}

	r.Get("/healthz", healthz)
	r.Get("/readyz", readyz(deps))

	r.Route("/api", func(rr chi.Router) {
		rr.Get("/brands", catalogSrv.BrandsHandler())
		rr.Get("/brands/{id}/products", catalogSrv.BrandProductsHandler())
		rr.Get("/products", catalogSrv.ProductsHandler())

		rr.Post("/login", authSrv.LoginHandler())

		rr.Route("/me/cart", func(pr chi.Router) {
			pr.Use(cart.RequireSession(deps.Sessions, deps.Users, deps.Log))
			pr.Get("/", cartSrv.ItemsHandler())
			pr.Post("/{productId}", cartSrv.AddHandler())
			pr.Delete("/{productId}", cartSrv.RemoveHandler())
		})
	})
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func readyz(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := deps.Catalog.Ping(ctx); err != nil {
			deps.Log.Warn("readyz failed: catalog", zap.Error(err))
			kit.WriteError(w, r, http.StatusServiceUnavailable, "catalog not ready", nil)
			return
		}
		if err := deps.Users.Ping(ctx); err != nil {
			deps.Log.Warn("readyz failed: users", zap.Error(err))
			kit.WriteError(w, r, http.StatusServiceUnavailable, "users not ready", nil)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
