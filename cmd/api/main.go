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

	"go.uber.org/zap"

	"github.com/animecove/storefront-api/internal/catalog"
	"github.com/animecove/storefront-api/internal/handlers"
	"github.com/animecove/storefront-api/internal/platform/config"
	"github.com/animecove/storefront-api/internal/platform/observability"
	"github.com/animecove/storefront-api/internal/services"
	"github.com/animecove/storefront-api/internal/upstream"
)

func main() {
	startedAt := time.Now().UTC()

	baseLogger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = baseLogger.Sync()
	}()

	logger := baseLogger.Named("api")

	cfg, err := config.Load()
	if err != nil {
		var invalid *config.ValidationError
		if errors.As(err, &invalid) {
			logger.Fatal("invalid configuration", zap.Strings("fields", invalid.Fields()))
		}
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	buildInfo := buildInfoFromEnv(startedAt)

	upstreamHTTP := &http.Client{Timeout: cfg.Catalog.UpstreamTimeout}

	squareClient := upstream.NewSquareClient(cfg.Square, upstream.WithHTTPClient(upstreamHTTP))
	wooClient := upstream.NewWooCommerceClient(cfg.WooCommerce, upstream.WithHTTPClient(upstreamHTTP))
	printifyClient := upstream.NewPrintifyClient(cfg.Printify, upstream.WithHTTPClient(upstreamHTTP))

	normalizer := catalog.NewNormalizer(
		catalog.WithPlaceholderImage(cfg.Catalog.PlaceholderImage),
	)

	catalogService, err := services.NewCatalogService(services.CatalogServiceDeps{
		Sources: []services.ProductSource{
			services.NewSquareSource(squareClient, normalizer),
			services.NewWooCommerceSource(wooClient, normalizer),
			services.NewPrintifySource(printifyClient, normalizer),
		},
		DefaultSource: cfg.Catalog.DefaultSource,
	})
	if err != nil {
		logger.Fatal("failed to initialise catalog service", zap.Error(err))
	}

	catalogHandlers := handlers.NewCatalogHandlers(handlers.CatalogHandlersDeps{
		Catalog: catalogService,
	})
	proxyHandlers := handlers.NewProxyHandlers(handlers.ProxyHandlersDeps{
		Printify: printifyClient,
	})
	healthHandlers := handlers.NewHealthHandlers(
		handlers.WithHealthBuildInfo(buildInfo),
		handlers.WithHealthCatalogService(catalogService),
	)

	middlewares := []func(http.Handler) http.Handler{
		observability.InjectLoggerMiddleware(logger.Named("http")),
		observability.TraceMiddleware(),
		observability.RecoveryMiddleware(logger.Named("http")),
		observability.RequestLoggerMiddleware(),
	}

	router := handlers.NewRouter(
		handlers.WithMiddlewares(middlewares...),
		handlers.WithHealthHandlers(healthHandlers),
		handlers.WithCatalogRoutes(catalogHandlers.Routes),
		handlers.WithProductRoutes(catalogHandlers.ProductRoutes),
		handlers.WithProxyRoutes(proxyHandlers.Routes),
		handlers.WithCatalogMiddlewares(handlers.RateLimitMiddleware(cfg.RateLimits.DefaultPerMinute)),
		handlers.WithProxyMiddlewares(handlers.RateLimitMiddleware(cfg.RateLimits.ProxyPerMinute)),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
	go func() {
		serverLogger.Info("storefront api listening",
			zap.String("default_source", catalogService.DefaultSource()),
			zap.Strings("sources", catalogService.Sources()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("http server error", zap.Error(err))
		}
	}()

	<-shutdown
	logger.Info("shutdown signal received; draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func buildInfoFromEnv(started time.Time) handlers.BuildInfo {
	version := strings.TrimSpace(os.Getenv("API_BUILD_VERSION"))
	if version == "" {
		version = "dev"
	}
	commit := strings.TrimSpace(os.Getenv("API_BUILD_COMMIT_SHA"))
	if commit == "" {
		commit = "unknown"
	}
	environment := strings.TrimSpace(os.Getenv("API_ENVIRONMENT"))
	if environment == "" {
		environment = "local"
	}
	return handlers.BuildInfo{
		Version:     version,
		CommitSHA:   commit,
		Environment: environment,
		StartedAt:   started,
	}
}
