package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hussboss/config"
	"hussboss/cron"
	"hussboss/database"
	slotRepo "hussboss/database/repository/slot"
	"hussboss/handlers"
	"hussboss/routes"
	"hussboss/services/backend"
	"hussboss/services/listings"
	"hussboss/services/media"
	"hussboss/services/pages"
	"hussboss/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	client := backend.NewHTTPClient(cfg.BackendURL, cfg.BackendTimeout, logger)

	slots, slotCheck, err := openSlotRepo(cfg.SessionBackend)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to open session slots: %v", err)
	}

	icons, err := media.NewIcons(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary: %v", err)
	}

	registry := pages.NewRegistry(pages.Deps{
		Slots:           slots,
		Booker:          client,
		DefaultLocation: cfg.DefaultLocation,
		Logger:          logger,
	}, cfg.TabIdleTTL)

	handlerBundle, err := handlers.NewHandlerBundle(handlers.BundleConfig{
		Client:   client,
		Registry: registry,
		Icons:    icons,
		Listings: listings.Config{
			FillerEnabled: cfg.ListingsFillerEnabled,
			FillerMin:     cfg.ListingsFillerMin,
			FillerMax:     cfg.ListingsFillerMax,
		},
		DefaultLocation: cfg.DefaultLocation,
		Logger:          logger,
	})
	if err != nil {
		logger.Sugar().Fatalf("main: failed to build handlers: %v", err)
	}

	router, err := routes.NewEngine(handlerBundle, routes.Options{
		Registry:          registry,
		SlotSecret:        []byte(cfg.SlotSecret),
		SecureCookies:     config.IsProduction(),
		RequestsPerMinute: cfg.MaxRequestsPerMin,
		Logger:            logger,
	})
	if err != nil {
		logger.Sugar().Fatalf("main: failed to build router: %v", err)
	}

	checks := []utils.HealthCheck{{Name: "backend", Ping: client.Ping}}
	if slotCheck != nil {
		checks = append(checks, *slotCheck)
	}
	utils.StartHealthMonitor(ctx, cfg.HealthCheckEvery, checks)
	sweeperDone := cron.StartTabSweeper(ctx, registry, cfg.TabSweepEvery, logger)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.AppPort,
		Handler:           protect(router, cfg.CSRFKey),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting server",
		zap.String("addr", srv.Addr),
		zap.String("backend", cfg.BackendURL),
		zap.String("sessionBackend", cfg.SessionBackend),
		zap.Bool("cloudinary", icons.Enabled()),
	)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	stop()
	<-sweeperDone

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	if database.MongoClient != nil {
		if err := database.MongoClient.Disconnect(shutdownCtx); err != nil {
			logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
		}
	}

	_ = logger.Sync()
	logger.Info("main: server stopped gracefully")
}

// openSlotRepo opens the session slot store named by backend and the
// health check that pings it. The memory store has no check.
func openSlotRepo(kind string) (slotRepo.SlotRepository, *utils.HealthCheck, error) {
	switch kind {
	case "redis":
		client, err := utils.GetSessionCacheClient()
		if err != nil {
			return nil, nil, err
		}
		check := &utils.HealthCheck{Name: "redis", Ping: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}}
		return slotRepo.NewRedisSlotRepo(client), check, nil
	case "mongo":
		if err := database.InitDB(); err != nil {
			return nil, nil, err
		}
		repo, err := slotRepo.NewMongoSlotRepo(database.Database())
		if err != nil {
			return nil, nil, err
		}
		check := &utils.HealthCheck{Name: "mongo", Ping: func(ctx context.Context) error {
			return database.MongoClient.Ping(ctx, nil)
		}}
		return repo, check, nil
	default:
		if kind != "memory" {
			utils.GetLogger().Warn("Unknown SESSION_BACKEND, using memory", zap.String("backend", kind))
		}
		return slotRepo.NewMemorySlotRepo(), nil, nil
	}
}

// protect wraps h with CSRF checks on every unsafe request. Outside
// production the site is served over plain HTTP, so requests are marked as
// such for the origin checks.
func protect(h http.Handler, key string) http.Handler {
	guarded := csrf.Protect([]byte(key),
		csrf.Secure(config.IsProduction()),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
	)(h)
	if config.IsProduction() {
		return guarded
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		guarded.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}
