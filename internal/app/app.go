// Package app assembles the full HTTP surface: public catalog, auth,
// JWT-gated cart/checkout/orders, admin catalog mutations, health and
// metrics.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"ShopCart/internal/auth"
	"ShopCart/internal/cart"
	"ShopCart/internal/catalog"
	"ShopCart/internal/checkout"
	"ShopCart/pkg/kit"
)

type Deps struct {
	Log     *zap.Logger
	Service string

	Users   auth.UserStore
	Catalog catalog.Store
	Orders  checkout.Store

	JWTSecret string

	Registry     *prometheus.Registry
	MetricsToken string
}

func NewHandler(ctx context.Context, deps Deps) (http.Handler, error) {
	jwt := auth.NewTokenMaker(deps.JWTSecret)

	authSrv := &auth.Server{Log: deps.Log, Store: deps.Users, JWT: jwt}
	catalogSrv := &catalog.Server{Store: deps.Catalog, Log: deps.Log}

	svc, err := checkout.NewService(ctx, deps.Orders, deps.Log)
	if err != nil {
		return nil, err
	}

	checkoutSrv := &checkout.Server{
		Carts:   cart.NewStore(),
		Catalog: deps.Catalog,
		Service: svc,
		Log:     deps.Log,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.RequestLogger(deps.Log))

	if deps.Registry != nil {
		metrics := kit.NewMetrics(deps.Registry)
		r.Use(metrics.Middleware(deps.Service, kit.ChiRoutePatternOrPath))

		svc.Meter = checkout.NewMetrics(deps.Registry)

		r.With(kit.MetricsAuth(deps.MetricsToken)).
			Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", readyz(deps))

	r.Mount("/auth", authSrv.Routes())
	r.Mount("/products", catalogSrv.Routes())

	r.Route("/admin", func(ar chi.Router) {
		ar.Use(auth.RequireJWT(jwt))
		ar.Use(auth.RequireRole(auth.RoleAdmin))
		ar.Mount("/", catalogSrv.AdminRoutes())
	})

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireJWT(jwt))
		pr.Mount("/", checkoutSrv.Routes())
	})

	return r, nil
}

func readyz(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		for name, ping := range map[string]func(context.Context) error{
			"users":   deps.Users.Ping,
			"catalog": deps.Catalog.Ping,
			"orders":  deps.Orders.Ping,
		} {
			if err := ping(ctx); err != nil {
				if deps.Log != nil {
					deps.Log.Warn("readyz failed", zap.String("store", name), zap.Error(err))
				}
				kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", map[string]any{"store": name})
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	}
}
