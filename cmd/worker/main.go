package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/slack-go/slack"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BarkinBalci/launch-tracker/internal/blob/backend"
	"github.com/BarkinBalci/launch-tracker/internal/bot"
	"github.com/BarkinBalci/launch-tracker/internal/config"
	"github.com/BarkinBalci/launch-tracker/internal/consumer"
	"github.com/BarkinBalci/launch-tracker/internal/logger"
	"github.com/BarkinBalci/launch-tracker/internal/metrics"
	"github.com/BarkinBalci/launch-tracker/internal/queue/sqs"
	chrepo "github.com/BarkinBalci/launch-tracker/internal/repository/clickhouse"
	"github.com/BarkinBalci/launch-tracker/internal/server"
	"github.com/BarkinBalci/launch-tracker/internal/service"
	"github.com/BarkinBalci/launch-tracker/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	log, err := logger.New(cfg.Service.Environment, "worker")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		_ = log.Sync()
	}(log)

	if cfg.SQS.QueueURL == "" {
		log.Fatal("SQS_QUEUE_URL is required for the worker")
	}
	if cfg.Slack.BotToken == "" {
		log.Fatal("SLACK_BOT_TOKEN is required to report launch outcomes")
	}

	log.Info("Starting launch worker",
		zap.String("environment", cfg.Service.Environment),
		zap.String("store_backend", cfg.Store.Backend),
		zap.Int("concurrency", cfg.Worker.Concurrency))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	// Initialize SQS client
	sqsClient, err := sqs.NewClient(ctx, cfg.SQS, log)
	if err != nil {
		log.Fatal("Failed to create SQS client", zap.Error(err))
	}

	notifier := bot.NewNotifier(slack.New(cfg.Slack.BotToken, slack.OptionDebug(cfg.Slack.Debug)), log)
	launches := service.NewLaunchService(launchLog, notifier, appendMetrics, log)
	if cfg.ClickHouse.Enabled() {
		mirror, err := chrepo.Open(ctx, cfg.ClickHouse, log)
		if err != nil {
			log.Warn("Launch mirror disabled", zap.Error(err))
		} else {
			defer func() {
				if err := mirror.Close(); err != nil {
					log.Error("Failed to close launch mirror", zap.Error(err))
				}
			}()
			launches.WithMirror(mirror)
		}
	}

	c := consumer.NewConsumer(cfg.Worker, sqsClient, launches, log)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Run(gctx, ":"+cfg.Worker.HealthCheckPort, server.HealthMux(prometheus.DefaultGatherer), log)
	})

	g.Go(func() error {
		log.Info("Consumer starting")
		return c.Start(gctx)
	})

	if err := g.Wait(); err != nil {
		log.Error("Worker stopped with error", zap.Error(err))
	}

	log.Info("Worker stopped")
}
