package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BarkinBalci/launch-tracker/internal/blob/backend"
	"github.com/BarkinBalci/launch-tracker/internal/bot"
	"github.com/BarkinBalci/launch-tracker/internal/config"
	"github.com/BarkinBalci/launch-tracker/internal/dispatch"
	"github.com/BarkinBalci/launch-tracker/internal/logger"
	"github.com/BarkinBalci/launch-tracker/internal/metrics"
	"github.com/BarkinBalci/launch-tracker/internal/parser"
	"github.com/BarkinBalci/launch-tracker/internal/queue/sqs"
	chrepo "github.com/BarkinBalci/launch-tracker/internal/repository/clickhouse"
	"github.com/BarkinBalci/launch-tracker/internal/retailer"
	"github.com/BarkinBalci/launch-tracker/internal/server"
	"github.com/BarkinBalci/launch-tracker/internal/service"
	"github.com/BarkinBalci/launch-tracker/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	log, err := logger.New(cfg.Service.Environment, "bot")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		_ = log.Sync()
	}(log)

	if cfg.Slack.BotToken == "" || cfg.Slack.AppToken == "" {
		log.Fatal("SLACK_BOT_TOKEN and SLACK_APP_TOKEN are required")
	}

	log.Info("Starting launch bot",
		zap.String("environment", cfg.Service.Environment),
		zap.String("dispatch", cfg.Service.Dispatch),
		zap.String("store_backend", cfg.Store.Backend))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	table, err := retailer.Load(cfg.Service.RetailersFile)
	if err != nil {
		log.Fatal("Failed to load retailer table", zap.Error(err))
	}
	p, err := parser.New(table)
	if err != nil {
		log.Fatal("Failed to build message parser", zap.Error(err))
	}

	api := slack.New(cfg.Slack.BotToken,
		slack.OptionAppLevelToken(cfg.Slack.AppToken),
		slack.OptionDebug(cfg.Slack.Debug))
	socket := socketmode.New(api, socketmode.OptionDebug(cfg.Slack.Debug))

	notifier := bot.NewNotifier(api, log)
	appendMetrics := metrics.NewAppendMetrics(prometheus.DefaultRegisterer)

	var (
		dispatcher dispatch.Dispatcher
		local      *dispatch.LocalDispatcher
	)
	switch cfg.Service.Dispatch {
	case "sqs":
		sqsClient, err := sqs.NewClient(ctx, cfg.SQS, log)
		if err != nil {
			log.Fatal("Failed to create SQS client", zap.Error(err))
		}
		dispatcher = dispatch.NewQueueDispatcher(sqsClient, log)
	default:
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
		local = dispatch.NewLocalDispatcher(launches, log)
		dispatcher = local
	}

	b := bot.NewBot(api, p, dispatcher, notifier, log)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return socket.RunContext(gctx)
	})

	g.Go(func() error {
		b.Serve(gctx, socket.Events, func(req socketmode.Request) {
			socket.Ack(req)
		})
		return nil
	})

	g.Go(func() error {
		return server.Run(gctx, ":"+cfg.Service.HealthCheckPort, server.HealthMux(prometheus.DefaultGatherer), log)
	})

	log.Info("Bot is running")

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		log.Error("Bot stopped with error", zap.Error(err))
	}

	if local != nil {
		log.Info("Waiting for in-flight launches")
		local.Wait()
	}

	log.Info("Bot stopped")
}
