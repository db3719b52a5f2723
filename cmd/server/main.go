package main

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib"

	"SunShop/internal/api"
	"SunShop/internal/auth"
	"SunShop/internal/cart"
	"SunShop/internal/catalog"
	"SunShop/internal/config"
	"SunShop/pkg/kit"
)

const service = "sunshop"

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		kit.NewLogger(service, "info").Fatal("config", zap.Error(err))
	}

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	catalogStore, userStore, carts := buildStores(cfg, log)

	sessions := auth.NewSessions(cfg.SessionTTL)
	guard := auth.NewGuard(cfg.MaxFailedLogins)
	engine := &cart.Engine{Catalog: catalogStore, Carts: carts}

	registry := prometheus.NewRegistry()

	h := api.NewHandler(api.Deps{
		Log:      log,
		Service:  service,
		Registry: registry,

		Catalog:  catalogStore,
		Users:    userStore,
		Sessions: sessions,
		Guard:    guard,
		Carts:    engine,

		MetricsEnabled: cfg.MetricsEnabled,
		MetricsToken:   cfg.MetricsToken,
	})

	if cfg.EvictInterval > 0 {
		go evictLoop(sessions, cfg.EvictInterval, log)
	}

	if err := kit.RunHTTPServer(cfg.Addr, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func buildStores(cfg config.Config, log *zap.Logger) (catalog.Store, auth.UserStore, *cart.Store) {
	carts := cart.NewStore()

	if cfg.DatabaseDSN != "" {
		db, err := sql.Open("pgx", cfg.DatabaseDSN)
		if err != nil {
			log.Fatal("open database", zap.Error(err))
		}
		log.Info("using postgres seed stores")
		return catalog.NewPostgresStore(db), auth.NewPostgresStore(db), carts
	}

	catalogStore, err := catalog.LoadDir(cfg.DataDir)
	if err != nil {
		log.Fatal("load catalog", zap.Error(err))
	}
	for _, id := range catalogStore.DanglingCategories() {
		log.Warn("product references unknown brand", zap.String("product_id", id))
	}

	usersPath := filepath.Join(cfg.DataDir, "users.json")
	userStore, err := auth.LoadFile(usersPath)
	if err != nil {
		log.Fatal("load users", zap.Error(err))
	}

	if err := carts.SeedFromUsersFile(usersPath); err != nil {
		log.Fatal("seed carts", zap.Error(err))
	}

	log.Info("seed data loaded", zap.Int("users", userStore.Len()))
	return catalogStore, userStore, carts
}

func evictLoop(sessions *auth.Sessions, every time.Duration, log *zap.Logger) {
	t := time.NewTicker(every)
	defer t.Stop()

	for range t.C {
		if n := sessions.EvictExpired(); n > 0 {
			log.Debug("evicted expired sessions", zap.Int("count", n))
		}
	}
}
