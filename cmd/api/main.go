package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vitrinelabs/storefront_api/internal/catalog"
	"github.com/vitrinelabs/storefront_api/internal/config"
	"github.com/vitrinelabs/storefront_api/internal/feed"
	"github.com/vitrinelabs/storefront_api/internal/handler"
	"github.com/vitrinelabs/storefront_api/internal/metrics"
	"github.com/vitrinelabs/storefront_api/internal/middleware"
	"github.com/vitrinelabs/storefront_api/internal/notify"
	"github.com/vitrinelabs/storefront_api/internal/session"
	"github.com/vitrinelabs/storefront_api/internal/store"
)

// main is the application entrypoint for the storefront API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting storefront api")

	// 3. Connect to Redis. A missing store must not kill the service: the
	// cart degrades to in-memory persistence for this process.
	var sessionStore store.Store
	redisClient, err := store.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, falling back to in-memory store")
		sessionStore = store.NewMemoryStore()
	} else {
		defer redisClient.Close()
		sessionStore = store.NewRedisStore(redisClient)
		log.Info().Msg("redis connected successfully")
	}

	// 4. Metrics and notification hub
	m := metrics.New()
	hub := notify.NewHub(m)

	// 5. Catalog and feed pipeline
	cat := catalog.New()
	fetcher := feed.NewFetcher(cfg.Feed.URL, cfg.Feed.Timeout, m)
	parser := feed.NewParser(feed.UUIDGenerator{}, m)
	loader := feed.NewLoader(fetcher, parser, cat)

	// Initial feed load. A failed fetch leaves the catalog empty and the
	// service running; /v1/feed/refresh can retry later.
	loadCtx, loadCancel := context.WithTimeout(context.Background(), cfg.Feed.Timeout)
	if _, err := loader.Load(loadCtx); err != nil {
		log.Error().Err(err).Msg("initial feed load failed, starting with empty catalog")
	}
	loadCancel()

	// 6. Sessions
	sessions := session.NewManager(cat, sessionStore, hub, m)

	// 7. Initialize handlers
	handlers := &Handlers{
		Health:  handler.NewHealthHandler(cat),
		Catalog: handler.NewCatalogHandler(sessions),
		Cart:    handler.NewCartHandler(sessions),
		View:    handler.NewViewHandler(sessions),
		Events:  handler.NewEventsHandler(hub),
		Feed:    handler.NewFeedHandler(loader),
	}

	// 8. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SessionMiddleware())
	setupRoutes(router, handlers, m)

	// 9. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 10. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 11. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health  *handler.HealthHandler
	Catalog *handler.CatalogHandler
	Cart    *handler.CartHandler
	View    *handler.ViewHandler
	Events  *handler.EventsHandler
	Feed    *handler.FeedHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, m *metrics.Metrics) {
	router.GET("/v1/health", handlers.Health.GetHealth)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/v1")
	{
		// Catalog
		v1.GET("/products", handlers.Catalog.GetProducts)
		v1.GET("/products/:id", handlers.Catalog.GetProduct)

		// Cart
		v1.GET("/cart", handlers.Cart.GetCart)
		v1.POST("/cart/items", handlers.Cart.AddItem)
		v1.PATCH("/cart/items/:productId", handlers.Cart.ChangeQuantity)
		v1.DELETE("/cart/items/:productId", handlers.Cart.RemoveItem)
		v1.POST("/cart/clear", handlers.Cart.RequestClear)
		v1.POST("/cart/clear/confirm", handlers.Cart.ConfirmClear)

		// View state
		v1.GET("/view", handlers.View.GetView)
		v1.POST("/view/select", handlers.View.Select)
		v1.POST("/view/close", handlers.View.CloseDetail)
		v1.POST("/view/slider/next", handlers.View.NextImage)
		v1.POST("/view/slider/prev", handlers.View.PrevImage)
		v1.PUT("/view/mode", handlers.View.SetMode)
		v1.PUT("/view/theme", handlers.View.SetTheme)

		// Notifications
		v1.GET("/events", handlers.Events.Stream)

		// Feed management. Refreshes replace the whole catalog, so they
		// are throttled per client on top of the single-flight guard.
		refreshLimit := middleware.NewRefreshRateLimiter(5, time.Minute)
		v1.POST("/feed/refresh", refreshLimit.Middleware(), handlers.Feed.Refresh)
	}
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
