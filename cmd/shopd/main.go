package main

import (
	"context"
	"database/sql"
	"errors"
	"os"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ShopCart/internal/app"
	"ShopCart/internal/auth"
	"ShopCart/internal/catalog"
	"ShopCart/internal/checkout"
	"ShopCart/pkg/kit"
)

func main() {
	_ = godotenv.Load()

	service := "shopd"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := getenv("PORT", "8080")
	jwtSecret := getenv("JWT_SECRET", "dev-secret")

	deps := app.Deps{
		Log:          log,
		Service:      service,
		JWTSecret:    jwtSecret,
		Registry:     prometheus.NewRegistry(),
		MetricsToken: os.Getenv("METRICS_TOKEN"),
	}

	ctx := context.Background()

	if dsn := os.Getenv("SHOP_DB_DSN"); dsn != "" {
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			log.Fatal("open db failed", zap.Error(err))
		}
		defer db.Close()

		deps.Users = auth.NewPostgresStore(db)
		deps.Catalog = catalog.NewPostgresStore(db)
		deps.Orders = checkout.NewPostgresStore(db)
	} else {
		deps.Users = auth.NewMemStore()
		deps.Catalog = seedCatalog(ctx, log)
		deps.Orders = checkout.NewMemStore()
	}

	seedAdmin(ctx, deps.Users, log)

	h, err := app.NewHandler(ctx, deps)
	if err != nil {
		log.Fatal("init handler failed", zap.Error(err))
	}

	if err := kit.RunHTTPServer(":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func seedCatalog(ctx context.Context, log *zap.Logger) catalog.Store {
	s := catalog.NewMemStore()

	for _, p := range []catalog.Product{
		{ID: 1, Name: "Book", Price: decimal.RequireFromString("10.50"), Stock: 10},
		{ID: 2, Name: "Pen", Price: decimal.RequireFromString("2.50"), Stock: 20},
		{ID: 3, Name: "Laptop", Price: decimal.RequireFromString("800.00"), Stock: 5},
	} {
		if err := s.Upsert(ctx, p); err != nil {
			log.Fatal("seed catalog failed", zap.Error(err))
		}
	}
	return s
}

func seedAdmin(ctx context.Context, users auth.UserStore, log *zap.Logger) {
	email := os.Getenv("ADMIN_EMAIL")
	pass := os.Getenv("ADMIN_PASSWORD")
	if email == "" || pass == "" {
		return
	}

	id := "u_" + uuid.NewString()
	err := users.Create(ctx, email, pass, auth.RoleAdmin, id)
	if errors.Is(err, auth.ErrEmailExists) {
		return
	}
	if err != nil {
		log.Fatal("seed admin failed", zap.Error(err))
	}
	log.Info("admin seeded", zap.String("email", email))
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
