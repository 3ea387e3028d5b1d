package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/cors"
	"go.mongodb.org/mongo-driver/mongo"

	"nativedelight/internal/catalog"
	"nativedelight/internal/checkout"
	"nativedelight/internal/config"
	"nativedelight/internal/database"
	"nativedelight/internal/handlers"
	"nativedelight/internal/logger"
	"nativedelight/internal/metrics"
	"nativedelight/internal/middleware"
	"nativedelight/internal/payment"
	"nativedelight/internal/session"
)

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	cfg := config.AppEnv

	logg := logger.New(logger.Options{
		ServiceName: "nativedelight",
		Level:       logger.ParseLevel(cfg.LogLevel),
		Format:      cfg.LogFormat,
	})
	ctx := context.Background()
	if !cfg.DotEnvLoaded {
		logg.Debug(ctx, "no .env file loaded, using process environment")
	}

	provider, health, mongoClient, err := buildCatalog(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "catalog setup failed", err)
		os.Exit(1)
	}
	if mongoClient != nil {
		defer func() {
			_ = mongoClient.Disconnect(context.Background())
		}()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	shop := metrics.NewShop(registry)

	if cfg.PaymentAPIURL == "" {
		logg.Warn(ctx, "PAYMENT_API_URL not set, payment checkout will fail")
	}
	payments := payment.NewClient(cfg.PaymentAPIURL, cfg.PaymentTimeout)

	manager := session.NewManager(provider, payments, session.Config{
		TTL:      cfg.SessionTTL,
		Capacity: cfg.SessionCapacity,
		Checkout: checkout.Config{
			Destination: cfg.WhatsAppNumber,
			Currency:    cfg.CurrencySymbol,
			ResetDelay:  cfg.OrderResetDelay,
		},
	}, shop, logg)
	defer manager.Close()

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logg, shop))

	handlers.Register(r, handlers.Dependencies{
		Sessions:     manager,
		Tokens:       session.NewTokens(cfg.SessionSecret, cfg.SessionTokenTTL),
		Health:       health,
		Gatherer:     registry,
		Logger:       logg,
		SecureCookie: cfg.CookieSecure,
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", middleware.SessionHeader, middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: cfg.CORSAllowCredentials(),
	}).Handler(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           corsHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logg.Info(logg.WithField(ctx, "addr", srv.Addr), "http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "http server failed", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "graceful shutdown failed", err)
	}
	logg.Info(ctx, "server stopped")
}

// buildCatalog picks the catalog backend. The MongoDB backend also serves as
// the health check.
func buildCatalog(ctx context.Context, cfg config.Config, logg *logger.Logger) (catalog.Provider, handlers.HealthChecker, *mongo.Client, error) {
	if cfg.CatalogFromHTTP() {
		logg.Info(logg.WithField(ctx, "catalog_url", cfg.CatalogAPIURL), "using remote catalog")
		upstream := catalog.NewHTTPProvider(cfg.CatalogAPIURL, cfg.CatalogTimeout)
		return catalog.NewCachedProvider(upstream, cfg.CatalogCacheTTL), nil, nil, nil
	}

	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, nil, nil, err
	}
	db := client.Database(cfg.DBName)
	logg.Info(logg.WithField(ctx, "db", db.Name()), "MongoDB connected")

	if err := database.EnsureCategoryIndexes(ctx, db, logg); err != nil {
		logg.Warn(ctx, fmt.Sprintf("category index warning: %v", err))
	}
	if err := database.EnsureMenuItemIndexes(ctx, db, logg); err != nil {
		logg.Warn(ctx, fmt.Sprintf("menu item index warning: %v", err))
	}

	upstream := catalog.NewMongoProvider(db)
	return catalog.NewCachedProvider(upstream, cfg.CatalogCacheTTL), upstream, client, nil
}
