package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"spot-board/internal/decode"
	"spot-board/internal/infra/display"
	"spot-board/internal/infra/transport"
	"spot-board/internal/observability/logging"
	"spot-board/internal/observability/tracing"
	"spot-board/internal/usecase/board"
	pkgconfig "spot-board/pkg/config"
)

const defaultEndpoint = "https://api.example.com/v1/locations"

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	shutdownTracing := tracing.Setup()
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("failed to shut down tracing", slog.Any("error", err))
		}
	}()

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	svc := setupBoardService(logger)
	defer svc.Close()

	// Start metrics and health HTTP server
	startMetricsServer(ctx, logger)

	startRefreshSchedule(ctx, logger, svc)

	<-ctx.Done()
	logger.Info("shutting down")
}

// setupBoardService creates the board service with transport, decoder and
// the configured display surfaces.
func setupBoardService(logger *slog.Logger) *board.Service {
	transportCfg, err := transport.LoadConfigFromEnv()
	if err != nil {
		logger.Error("failed to load transport configuration", slog.Any("error", err))
		os.Exit(1)
	}

	endpoint := pkgconfig.GetEnvString("BOARD_ENDPOINT_URL", defaultEndpoint)
	decodeCfg := decode.Config{
		ListKey:        pkgconfig.GetEnvString("BOARD_LIST_KEY", "locations"),
		NameKey:        pkgconfig.GetEnvString("BOARD_NAME_KEY", "name"),
		DescriptionKey: pkgconfig.GetEnvString("BOARD_DESCRIPTION_KEY", "description"),
		LocationKey:    pkgconfig.GetEnvString("BOARD_LOCATION_KEY", "location"),
	}

	svc := board.NewService(transport.New(transportCfg), decode.New(decodeCfg), endpoint)

	surfaces := 0
	if pkgconfig.GetEnvBool("DISPLAY_TABLE_ENABLED", true) {
		svc.Subscribe(display.NewTableWriter(os.Stdout, svc))
		surfaces++
	}

	webhookCfg := display.LoadWebhookConfigFromEnv()
	if webhookCfg.Enabled {
		svc.Subscribe(display.NewWebhookChannel(webhookCfg, svc))
		surfaces++
	}

	if surfaces == 0 {
		svc.Subscribe(display.NewNoop())
		logger.Warn("no display surfaces configured, board updates will be dropped")
	}

	logger.Info("board service initialized",
		slog.String("endpoint", endpoint),
		slog.String("list_key", decodeCfg.ListKey),
		slog.Int("surfaces", surfaces))

	return svc
}

// startRefreshSchedule performs the initial refresh and schedules periodic
// refreshes via cron.
//
// Environment variables:
//   - BOARD_REFRESH_SCHEDULE: cron spec, e.g. "@every 1m" (default: @every 5m)
func startRefreshSchedule(ctx context.Context, logger *slog.Logger, svc *board.Service) {
	schedule := pkgconfig.GetEnvString("BOARD_REFRESH_SCHEDULE", "@every 5m")

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		svc.Refresh(ctx)
	}); err != nil {
		logger.Error("invalid refresh schedule",
			slog.String("schedule", schedule),
			slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
	}()

	logger.Info("refresh schedule started", slog.String("schedule", schedule))

	// Initial refresh so the board is populated before the first tick.
	svc.Refresh(ctx)
}
