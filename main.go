package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"basha-backend/config"
	"basha-backend/controllers"
	"basha-backend/events"
	"basha-backend/logging"
	"basha-backend/routes"
	"basha-backend/services"
	"basha-backend/storage"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load("./config")
	if err != nil {
		l := logging.L()
		l.Fatal().Err(err).Msg("❌ failed to load config")
	}

	logging.Init(cfg.Log)
	logger := logging.L()
	if envErr != nil {
		logger.Warn().Msg("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}
	gin.SetMode(cfg.Server.Mode)

	watching, err := config.Watch("./config", func(c *config.Config) {
		logging.SetLevel(c.Log.Level)
		l := logging.L()
		l.Info().Str("level", c.Log.Level).Msg("🔄 config reloaded")
	})
	if err != nil {
		logger.Warn().Err(err).Msg("⚠️  config watch disabled")
	} else if watching {
		logger.Info().Msg("👀 watching config file for log level changes")
	}

	db, err := config.ConnectDatabase(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ database connect failed")
	}
	logger.Info().Str("driver", cfg.Database.Driver).Msg("✅ database connected and migrated")

	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(ctx).Err()
		cancel()
		if err != nil {
			logger.Fatal().Err(err).Str("addr", cfg.Redis.Address).Msg("❌ redis ping failed")
		}
		defer rdb.Close()
		logger.Info().Str("addr", cfg.Redis.Address).Msg("✅ redis connected")
	}

	publisher, err := newPublisher(cfg.Events, rdb)
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ event publisher init failed")
	}
	defer publisher.Close()

	store, err := storage.New(context.Background(), cfg.Storage)
	if err != nil {
		logger.Fatal().Err(err).Msg("❌ storage init failed")
	}

	var sessions services.SessionStore
	if rdb != nil {
		sessions = services.NewRedisSessionStore(rdb, cfg.Cache.Prefix, cfg.Session.TTL)
	} else {
		mem := services.NewMemorySessionStore(cfg.Cache.Prefix, cfg.Session.TTL)
		defer mem.Close()
		sessions = mem
	}

	// Initialize services
	catalogCache := services.NewCatalogCache(cfg.Cache.LocalSize, rdb, cfg.Cache.Prefix, cfg.Cache.TTL)
	defer catalogCache.Close()
	catalogService := services.NewCatalogService(db, catalogCache, publisher)
	searchService := services.NewSearchService(catalogService)
	exploreService := services.NewExploreService(searchService, cfg.Session.ExploreTTL)
	defer exploreService.Close()
	aiService := services.NewAIService(services.AIConfig{
		Endpoint: cfg.AI.Endpoint,
		APIKey:   cfg.AI.APIKey,
		Model:    cfg.AI.Model,
		Timeout:  cfg.AI.Timeout,
	})
	defer aiService.Close()
	authService := services.NewAuthService(sessions, services.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiry))
	roomService := services.NewRoomService(catalogService, aiService)
	favoriteService := services.NewFavoriteService(catalogService, authService)
	bookingService := services.NewBookingService(db, catalogService, publisher)
	listingService := services.NewListingService(catalogService, services.NewImageService(store))
	dashboardService := services.NewDashboardService(catalogService, bookingService)

	if cfg.AI.Endpoint == "" {
		logger.Warn().Msg("⚠️  AI_ENDPOINT not set; descriptions and area insights use fallback text")
	}

	// Initialize controllers
	ctl := routes.Controllers{
		Rooms:     controllers.NewRoomController(roomService, searchService),
		Explore:   controllers.NewExploreController(exploreService),
		Auth:      controllers.NewAuthController(authService),
		Favorites: controllers.NewFavoriteController(favoriteService),
		Bookings:  controllers.NewBookingController(bookingService),
		Listings:  controllers.NewListingController(listingService, aiService),
		Dashboard: controllers.NewDashboardController(dashboardService),
	}

	opts := routes.Options{CORSOrigins: cfg.CORS.Origins, Logger: logger}
	if local, ok := store.(*storage.LocalStorage); ok {
		opts.UploadsDir = local.BasePath()
		opts.UploadsPrefix = local.URLPrefix()
	}
	router := routes.SetupRouter(ctl, authService, opts)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("🚀 server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("❌ ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Warn().Msg("⚠️  shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("❌ server forced to shutdown")
		return
	}
	logger.Info().Msg("✅ server stopped gracefully")
}

func newPublisher(cfg events.Config, rdb *redis.Client) (events.Publisher, error) {
	switch cfg.Driver {
	case "", "none":
		return events.NoopPublisher{}, nil
	case "redis":
		if rdb == nil {
			return nil, errors.New("events driver redis needs REDIS_ADDR")
		}
		return events.NewRedisPublisher(rdb, cfg.Channel), nil
	case "amqp":
		return events.NewAMQPPublisher(cfg.AMQPURL, cfg.Exchange)
	default:
		return nil, errors.New("unsupported events driver: " + cfg.Driver)
	}
}
