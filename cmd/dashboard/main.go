package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/BarkinBalci/launch-tracker/internal/blob/backend"
	"github.com/BarkinBalci/launch-tracker/internal/config"
	"github.com/BarkinBalci/launch-tracker/internal/handler"
	"github.com/BarkinBalci/launch-tracker/internal/logger"
	"github.com/BarkinBalci/launch-tracker/internal/metrics"
	"github.com/BarkinBalci/launch-tracker/internal/retailer"
	"github.com/BarkinBalci/launch-tracker/internal/server"
	"github.com/BarkinBalci/launch-tracker/internal/service"
	"github.com/BarkinBalci/launch-tracker/internal/store"
)

// @title Launch Tracker Dashboard API
// @version 1.0
// @description Read model and manual edit endpoint of the launch log
// @BasePath /
// @schemes http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	log, err := logger.New(cfg.Service.Environment, "dashboard")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		_ = log.Sync()
	}(log)

	log.Info("Starting dashboard service",
		zap.String("environment", cfg.Service.Environment),
		zap.String("port", cfg.Dashboard.Port),
		zap.Duration("cache_ttl", cfg.Dashboard.CacheTTL))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	table, err := retailer.Load(cfg.Service.RetailersFile)
	if err != nil {
		log.Fatal("Failed to load retailer table", zap.Error(err))
	}

	appendMetrics := metrics.NewAppendMetrics(prometheus.DefaultRegisterer)

	launchLog, closeStore, err := backend.OpenStore(ctx, cfg,
		store.Observers{store.NewLogObserver(log), appendMetrics}, log)
	if err != nil {
		log.Fatal("Failed to open launch log", zap.Error(err))
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Error("Failed to close store backend", zap.Error(err))
		}
	}()

	dashboardService := service.NewDashboardService(launchLog, table, cfg.Dashboard.CacheTTL, log)

	h := handler.NewHandler(dashboardService, prometheus.DefaultGatherer, log)

	if err := server.Run(ctx, ":"+cfg.Dashboard.Port, h, log); err != nil {
		log.Fatal("Dashboard server error", zap.Error(err))
	}

	log.Info("Dashboard stopped")
}
