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
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lalajistore/vendor-gateway/internal/catalog"
	"github.com/lalajistore/vendor-gateway/internal/config"
	"github.com/lalajistore/vendor-gateway/internal/handler"
	"github.com/lalajistore/vendor-gateway/internal/middleware"
	"github.com/lalajistore/vendor-gateway/internal/models"
	"github.com/lalajistore/vendor-gateway/internal/service"
	"github.com/lalajistore/vendor-gateway/internal/session"
	"github.com/lalajistore/vendor-gateway/internal/sse"
	"github.com/lalajistore/vendor-gateway/internal/utils"
	"github.com/lalajistore/vendor-gateway/internal/worker"
	"github.com/lalajistore/vendor-gateway/pkg/marketplace"
)

// main is the application entrypoint for the vendor dashboard gateway.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting vendor gateway")

	// 3. Open session store
	db, err := session.Open(cfg.Session.StorePath)
	if err != nil {
		log.Error().Err(err).Msg("session store open failed")
		fmt.Fprintf(os.Stderr, "session store open failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()
	store := session.NewStore(db, cfg.Session.EncryptionKey, cfg.Session.TTL)

	// 4. JWT signing key
	utils.InitJWT(cfg.JWTSecret)

	// 5. Marketplace client
	mp := marketplace.NewClient(cfg.Marketplace.BaseURL, cfg.Marketplace.Timeout)

	// 6. SSE hub and notifier
	hub := sse.NewHub()
	notifier := sse.NewHubNotifier(hub, cfg.Catalog.NoticeTTL)

	// 7. Initialize services
	selections := service.NewSelectionRegistry()
	catalogSvc := service.NewCatalogService(mp, selections, cfg.Catalog.SelectionLimit)
	selectionSvc := service.NewSelectionService(mp, selections, notifier)
	ownCatalogSvc := service.NewOwnCatalogService(mp)
	taxonomySvc := service.NewTaxonomyService(mp)

	// 8. Catalog view registry. Each view resolves its session at fetch
	// time so an expired or invalidated session renders as a failed page
	// instead of serving a stale token.
	views := catalog.NewRegistry(func(sessionID, vendorID string) *catalog.View {
		fetcher := catalog.FetcherFunc(func(ctx context.Context, q marketplace.ListQuery) *models.ListResult {
			sess, err := store.Get(sessionID)
			if err != nil {
				return failedPage("Session expired, please log in again")
			}
			result, err := catalogSvc.ListAvailable(ctx, sess, q)
			if err != nil {
				_ = store.Delete(sessionID)
				return failedPage("Session expired, please log in again")
			}
			return result
		})
		sink := catalog.SinkFunc(func(version uint64, result *models.ListResult) {
			notifier.NotifyCatalogPage(vendorID, version, result)
		})
		return catalog.NewView(fetcher, sink, cfg.Catalog.PageSize, cfg.Catalog.SearchDebounce)
	})

	authSvc := service.NewAuthService(mp, store, views, selections, cfg.Session.TTL)

	// 9. Initialize handlers
	errMapper := handler.NewErrorMapper(authSvc)
	handlers := &Handlers{
		Health:     handler.NewHealthHandler(),
		Auth:       handler.NewAuthHandler(authSvc),
		Catalog:    handler.NewCatalogHandler(views, catalogSvc, selectionSvc, errMapper),
		OwnProduct: handler.NewOwnProductHandler(ownCatalogSvc, errMapper),
		Taxonomy:   handler.NewTaxonomyHandler(taxonomySvc, errMapper),
		SSE:        handler.NewSSEHandler(hub, store),
	}

	// 10. Initialize middleware
	sessionMw := middleware.NewSessionMiddleware(store)

	// 11. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := models.RegisterValidations(v); err != nil {
			log.Fatal().Err(err).Msg("failed to register validations")
		}
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, sessionMw)

	// 12. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 13. Start workers
	go worker.NewTaxonomyWorker(taxonomySvc, store, cfg.Worker.TaxonomyRefreshInterval).Start(ctx)
	go worker.NewSessionPurgeWorker(store, cfg.Worker.SessionPurgeInterval).Start(ctx)

	// 14. Start HTTP server
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

	// 15. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 16. Cancel context to stop workers
	cancel()

	// 17. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health     *handler.HealthHandler
	Auth       *handler.AuthHandler
	Catalog    *handler.CatalogHandler
	OwnProduct *handler.OwnProductHandler
	Taxonomy   *handler.TaxonomyHandler
	SSE        *handler.SSEHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, sessionMw *middleware.SessionMiddleware) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	// Auth
	router.POST("/v1/auth/login", handlers.Auth.Login)
	router.POST("/v1/auth/logout", sessionMw.Handle(), handlers.Auth.Logout)

	// SSE stream (JWT via query param, EventSource cannot set headers)
	router.GET("/v1/sse", handlers.SSE.Stream)

	// Catalog browsing and selection (session protected)
	cat := router.Group("/v1/catalog")
	cat.Use(sessionMw.Handle())
	{
		cat.GET("/view", handlers.Catalog.GetState)
		cat.POST("/view/search", handlers.Catalog.SetSearch)
		cat.POST("/view/status", handlers.Catalog.SetStatus)
		cat.POST("/view/category", handlers.Catalog.SetCategory)
		cat.POST("/view/subcategory", handlers.Catalog.SetSubcategory)
		cat.POST("/view/page", handlers.Catalog.SetPage)
		cat.POST("/view/refresh", handlers.Catalog.Refresh)

		cat.GET("/products", handlers.Catalog.GetPage)
		cat.GET("/my-products", handlers.Catalog.GetMyProducts)
		cat.POST("/select", handlers.Catalog.Select)
		cat.DELETE("/selection/:vendorProductId", handlers.Catalog.RemoveSelection)
	}

	// Vendor-authored products (session protected)
	own := router.Group("/v1/own-products")
	own.Use(sessionMw.Handle())
	{
		own.GET("", handlers.OwnProduct.List)
		own.POST("", handlers.OwnProduct.Create)
		own.PUT("/:id", handlers.OwnProduct.Update)
		own.GET("/:id/form", handlers.OwnProduct.GetEditForm)
		own.DELETE("/:id", handlers.OwnProduct.Delete)
	}

	// Filter taxonomy (session protected)
	router.GET("/v1/categories", sessionMw.Handle(), handlers.Taxonomy.GetCategories)
	router.GET("/v1/subcategories", sessionMw.Handle(), handlers.Taxonomy.GetSubcategories)
}

// failedPage is the rendered state for a fetch that could not run.
func failedPage(message string) *models.ListResult {
	return &models.ListResult{
		Success: false,
		Items:   []marketplace.AnnotatedProduct{},
		Page:    1,
		Error:   message,
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
