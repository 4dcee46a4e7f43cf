package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/tenuestore/tenue-backend/api/controllers"
	"github.com/tenuestore/tenue-backend/api/routes"
	"github.com/tenuestore/tenue-backend/internal/categories"
	"github.com/tenuestore/tenue-backend/internal/dashboard"
	"github.com/tenuestore/tenue-backend/internal/media"
	"github.com/tenuestore/tenue-backend/internal/orders"
	product "github.com/tenuestore/tenue-backend/internal/products"
	"github.com/tenuestore/tenue-backend/internal/roles"
	"github.com/tenuestore/tenue-backend/internal/settings"
	"github.com/tenuestore/tenue-backend/internal/sheetsync"
	"github.com/tenuestore/tenue-backend/pkg/config"
	"github.com/tenuestore/tenue-backend/pkg/db"
	"github.com/tenuestore/tenue-backend/pkg/logger"
	"github.com/tenuestore/tenue-backend/pkg/metrics"
	"github.com/tenuestore/tenue-backend/pkg/migrate"
	"github.com/tenuestore/tenue-backend/pkg/redis"
	"github.com/tenuestore/tenue-backend/pkg/sheets"
	"github.com/tenuestore/tenue-backend/pkg/storage/gcs"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, dbClient.Close()) }()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, redisClient.Close()) }()

	gcsClient, err := gcs.NewClient(ctx, cfg.GCS, cfg.GCP, cfg.FeatureFlags.SignedMedia(), logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, gcsClient.Close()) }()

	var appender sheetsync.Appender
	sheetsClient, err := sheets.NewClient(ctx, cfg.Sheets)
	switch {
	case errors.Is(err, sheets.ErrNotConfigured):
		logg.Warn(ctx, "sheets credentials missing, order sync disabled")
	case err != nil:
		return err
	default:
		appender = sheetsClient
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	resolver, err := media.NewResolver(gcsClient, logg)
	if err != nil {
		return err
	}

	ordersRepo := orders.NewRepository(dbClient.DB())
	syncSvc, err := sheetsync.NewService(ordersRepo, appender, logg, metrics.NewSheetSyncMetrics(registry), cfg.Sheets.Location())
	if err != nil {
		return err
	}
	ordersSvc, err := orders.NewService(ordersRepo, syncSvc, logg, metrics.NewOrderIntakeMetrics(registry), orders.Config{
		Gate: orders.GateConfig{
			MinFillTime: cfg.Orders.MinFillTime,
			PhoneWindow: cfg.Orders.PhoneWindow,
			PhoneLimit:  cfg.Orders.PhoneLimit,
		},
		DefaultListLimit: cfg.Orders.DefaultListLimit,
		PushTimeout:      cfg.Sheets.PushTimeout,
	})
	if err != nil {
		return err
	}

	categoryRepo := categories.NewRepository(dbClient.DB())
	categorySvc, err := categories.NewService(categoryRepo, resolver, logg)
	if err != nil {
		return err
	}
	productRepo := product.NewRepository(dbClient.DB())
	productSvc, err := product.NewService(productRepo, categoryRepo, resolver, logg)
	if err != nil {
		return err
	}
	dashboardSvc, err := dashboard.NewService(ordersRepo, productRepo)
	if err != nil {
		return err
	}
	settingsSvc, err := settings.NewService(settings.NewRepository(dbClient.DB()), logg)
	if err != nil {
		return err
	}
	roleSvc, err := roles.NewService(roles.NewRepository(dbClient.DB()), logg)
	if err != nil {
		return err
	}

	readiness := map[string]controllers.Pinger{
		"db":    dbClient,
		"redis": redisClient,
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"addr":        addr,
		"sheets_sync": appender != nil,
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, registry, readiness, redisClient,
			ordersSvc, syncSvc, dashboardSvc, productSvc, categorySvc, settingsSvc, roleSvc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logg.Info(logCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	shutdownErr := server.Shutdown(shutdownCtx)
	// Sheet pushes write sync status through the db client, which the deferred
	// closers release once run returns.
	if drainErr := ordersSvc.Drain(shutdownCtx); drainErr != nil {
		logg.Warn(logCtx, "sheet pushes still in flight at shutdown")
		shutdownErr = multierr.Append(shutdownErr, drainErr)
	}
	return shutdownErr
}
