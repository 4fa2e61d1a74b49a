package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/neexbeast/explorex/internal/api"
	"github.com/neexbeast/explorex/internal/cache"
	"github.com/neexbeast/explorex/internal/catalog"
	"github.com/neexbeast/explorex/internal/contact"
	"github.com/neexbeast/explorex/internal/storage"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	if err := run(log); err != nil {
		log.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	port := getEnv("PORT", "8080")
	databaseURL := os.Getenv("DATABASE_URL")
	migrationsDir := getEnv("MIGRATIONS_DIR", "migrations")
	catalogFile := os.Getenv("CATALOG_FILE")
	redisURL := os.Getenv("REDIS_URL")
	contactDelay := getEnvDuration("CONTACT_DELAY", contact.DefaultDelay)
	if err := contact.CheckDelay(contactDelay); err != nil {
		return fmt.Errorf("invalid CONTACT_DELAY: %w", err)
	}

	var adminToken string
	if redisURL != "" {
		adminToken = mustEnv("ADMIN_TOKEN")
	}

	ctx := context.Background()

	// Health pingers stay nil for services that are not configured.
	var dbPinger, redisPinger api.Pinger

	var (
		cat *catalog.Catalog
		err error
	)
	switch {
	case databaseURL != "":
		pool, err := storage.Connect(ctx, databaseURL)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer pool.Close()

		cat, err = loadFromDatabase(ctx, pool, migrationsDir)
		if err != nil {
			return err
		}
		dbPinger = &pgxPoolPinger{pool: pool}
	case catalogFile != "":
		cat, err = catalog.LoadFile(catalogFile)
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}
		log.Info("catalog loaded from file", "path", catalogFile)
	default:
		cat, err = catalog.LoadEmbedded()
		if err != nil {
			return fmt.Errorf("loading embedded catalog: %w", err)
		}
	}
	log.Info("catalog ready",
		"destinations", len(cat.Destinations()),
		"agencies", len(cat.Agencies()),
		"categories", len(cat.Categories()),
	)

	// A nil ListingCache disables caching in the handlers.
	var listingCache api.ListingCache
	if redisURL != "" {
		redisClient, err := cache.Connect(ctx, redisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer func() { _ = redisClient.Close() }()

		listingCache = cache.NewCache(redisClient)
		redisPinger = &redisPingerAdapter{client: redisClient}
		log.Info("listing cache enabled")
	}

	submitter := contact.NewSubmitter(contactDelay)
	handlers := api.NewHandlers(cat, listingCache, submitter, log)
	router := api.NewRouter(handlers, adminToken, dbPinger, redisPinger, log)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("server goroutine panicked", "recover", r)
				errCh <- fmt.Errorf("server panicked: %v", r)
			}
		}()
		log.Info("server starting", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listening: %w", err)
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", "signal", sig)
	case err := <-errCh:
		return err
	}

	// Pending contact submissions finish within the shutdown window.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("server shut down cleanly")
	return nil
}

// loadFromDatabase applies migrations and reads the catalog tables. About
// content is not stored in the database and comes from the embedded data.
func loadFromDatabase(ctx context.Context, pool *pgxpool.Pool, migrationsDir string) (*catalog.Catalog, error) {
	if err := storage.RunMigrations(ctx, pool, os.DirFS(migrationsDir)); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("migrations applied", "dir", migrationsDir)

	about, err := catalog.EmbeddedAbout()
	if err != nil {
		return nil, fmt.Errorf("loading about content: %w", err)
	}

	cat, err := storage.NewRepository(pool).LoadCatalog(ctx, about)
	if err != nil {
		return nil, err
	}
	return cat, nil
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		slog.Error("required environment variable not set", "key", key)
		os.Exit(1)
	}
	return v
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return parsed
}

// pgxPoolPinger adapts pgxpool.Pool to api.Pinger.
type pgxPoolPinger struct {
	pool interface {
		Ping(ctx context.Context) error
	}
}

func (p *pgxPoolPinger) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// redisPingerAdapter adapts redis.Client to api.Pinger.
type redisPingerAdapter struct {
	client *redis.Client
}

func (r *redisPingerAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
