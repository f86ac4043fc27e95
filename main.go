package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fyyur/internal/artists/artist_api"
	artistdb "fyyur/internal/artists/db"
	artists "fyyur/internal/artists/service"
	"fyyur/internal/config"
	"fyyur/internal/database"
	"fyyur/internal/database/migrations"
	"fyyur/internal/events"
	"fyyur/internal/logger"
	"fyyur/internal/share"
	showdb "fyyur/internal/shows/db"
	shows "fyyur/internal/shows/service"
	"fyyur/internal/shows/show_api"
	venuedb "fyyur/internal/venues/db"
	venues "fyyur/internal/venues/service"
	"fyyur/internal/venues/venue_api"
	"fyyur/internal/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
)

// newFlasher stores flashes in Redis when REDIS_ADDR is set and reachable,
// and in signed cookies otherwise.
func newFlasher(ctx context.Context, cfg *config.Config, log *logger.Logger) (web.Flasher, func()) {
	secure := strings.HasPrefix(cfg.BaseURL, "https://")
	cookies := web.NewCookieFlasher(cfg.SecretKey, secure)
	if cfg.Redis.Addr == "" {
		log.Info("FLASH", "REDIS_ADDR not set, using signed cookie flashes")
		return cookies, func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: 10,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("REDIS", fmt.Sprintf("Redis at %s unreachable, falling back to cookie flashes: %v", cfg.Redis.Addr, err))
		client.Close()
		return cookies, func() {}
	}

	log.Info("REDIS", fmt.Sprintf("Redis connection successful to %s (DB: %d)", cfg.Redis.Addr, cfg.Redis.DB))
	return web.NewRedisFlasher(client, secure), func() { client.Close() }
}

func newPublisher(cfg *config.Config, log *logger.Logger) events.Publisher {
	if !cfg.Kafka.Enabled {
		log.Info("KAFKA", "Kafka disabled, change notifications are dropped")
		return events.Nop{}
	}

	log.Info("KAFKA", fmt.Sprintf("Using Kafka brokers %s", strings.Join(cfg.Kafka.Brokers, ",")))
	if err := events.EnsureTopicsExist(cfg.Kafka.Brokers, []string{cfg.Kafka.ListingsTopic}, log); err != nil {
		log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
	}
	return events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.ListingsTopic, log)
}

func runMigrations(bunDB *bun.DB, cfg *config.Config, log *logger.Logger) {
	if !cfg.Migrations.AutoMigrate {
		log.Info("MIGRATE", "AUTO_MIGRATE disabled, skipping migrations")
		return
	}

	runner := migrations.NewRunner(bunDB, migrations.MigrateOptions{
		MigrationsDir: cfg.Migrations.Dir,
		AutoMigrate:   true,
		SeedData:      cfg.Migrations.SeedData,
	}, log)
	defer runner.Close()

	if err := runner.RunMigrations(); err != nil {
		log.Fatal("MIGRATE", fmt.Sprintf("Failed to run migrations: %v", err))
	}
}

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	log := logger.NewLogger(cfg.LogDir)
	defer log.Close()

	log.Info("APP", "Starting fyyur")
	if envErr != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		log.Info("CONFIG", "Loaded environment variables from .env file")
	}
	if cfg.SecretGenerated {
		log.Warn("CONFIG", "SECRET_KEY not set, generated a random key; flashes will not survive a restart")
	}

	ctx := context.Background()

	bunDB, err := database.Open(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal("DATABASE", err.Error())
	}
	defer bunDB.Close()

	runMigrations(bunDB, cfg, log)

	flasher, closeFlasher := newFlasher(ctx, cfg, log)
	defer closeFlasher()

	publisher := newPublisher(cfg, log)
	defer publisher.Close()

	rd, err := web.NewRenderer(flasher, log)
	if err != nil {
		log.Fatal("HTTP", fmt.Sprintf("Failed to parse templates: %v", err))
	}
	qr := share.NewQRGenerator(cfg.BaseURL)

	venueService := venues.NewVenueService(&venuedb.DB{Bun: bunDB}, publisher, log)
	artistService := artists.NewArtistService(&artistdb.DB{Bun: bunDB}, publisher, log)
	showService := shows.NewShowService(&showdb.DB{Bun: bunDB}, publisher, log)

	pages := &web.Handler{Render: rd, Venues: venueService, Artists: artistService, DB: bunDB}

	log.Info("HTTP", "Setting up router and middleware")
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(web.RequestLogger(log))
	r.Use(rd.Recoverer)

	r.NotFound(pages.NotFound)
	r.MethodNotAllowed(pages.MethodNotAllowed)
	r.Get("/", pages.Home)
	r.Get("/healthz", pages.Healthz)

	venue_api.NewHandler(venueService, rd, qr, log).RegisterRoutes(r)
	log.Info("ROUTER", "Venue routes registered under /venues")
	artist_api.NewHandler(artistService, rd, qr, log).RegisterRoutes(r)
	log.Info("ROUTER", "Artist routes registered under /artists")
	show_api.NewHandler(showService, rd, log).RegisterRoutes(r)
	log.Info("ROUTER", "Show routes registered under /shows")

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("fyyur running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	} else {
		log.Info("HTTP", "fyyur shutdown complete")
	}
}
