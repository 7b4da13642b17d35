package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bytedance/sonic"

	"github.com/strideleague/marathon-fantasy/internal/app"
	"github.com/strideleague/marathon-fantasy/internal/config"
	"github.com/strideleague/marathon-fantasy/internal/observability"
	"github.com/strideleague/marathon-fantasy/internal/platform/logging"
	"github.com/strideleague/marathon-fantasy/internal/usecase"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		races      = flag.String("races", "", "comma-separated race ids to recalculate")
		version    = flag.Int("version", 0, "rule set version to score under")
		batchSize  = flag.Int("batch-size", 0, "races submitted per wave (default from RECALC_BATCH_SIZE)")
		maxWorkers = flag.Int("workers", 0, "worker pool size (default from RECALC_MAX_WORKERS)")
		preview    = flag.String("preview", "", "score a single race without persisting")
		useMemory  = flag.Bool("memory", false, "run against the in-memory fixtures instead of postgres")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownUptrace, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		return 1
	}
	defer func() {
		if err := shutdownUptrace(context.Background()); err != nil {
			logger.Error("shutdown uptrace", "error", err)
		}
	}()

	stopPyroscope, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		return 1
	}
	defer func() {
		if err := stopPyroscope(); err != nil {
			logger.Error("stop pyroscope", "error", err)
		}
	}()

	svc, cleanup, err := buildService(ctx, cfg, logger, *useMemory)
	if err != nil {
		logger.Error("build recalc service", "error", err)
		return 1
	}
	defer func() {
		if err := cleanup(); err != nil {
			logger.Error("close database", "error", err)
		}
	}()

	runCtx, cancel := context.WithTimeout(ctx, cfg.RecalcTimeout)
	defer cancel()

	if *preview != "" {
		return runPreview(runCtx, svc, logger, *preview, *version)
	}

	raceIDs := splitRaceIDs(*races)
	if len(raceIDs) == 0 {
		fmt.Fprintln(os.Stderr, "at least one race id is required (-races or -preview)")
		flag.Usage()
		return 2
	}

	input := usecase.RecalcInput{
		RaceIDs:        raceIDs,
		RuleSetVersion: *version,
		BatchSize:      cfg.RecalcBatchSize,
		MaxWorkers:     cfg.RecalcMaxWorkers,
	}
	if *batchSize > 0 {
		input.BatchSize = *batchSize
	}
	if *maxWorkers > 0 {
		input.MaxWorkers = *maxWorkers
	}

	report, err := svc.Recalculate(runCtx, input)
	if err != nil {
		logger.Error("recalculate", "error", err)
		printJSON(report)
		return 1
	}

	printJSON(report)
	return 0
}

func buildService(ctx context.Context, cfg config.Config, logger *logging.Logger, useMemory bool) (*usecase.RecalcService, func() error, error) {
	if useMemory {
		return app.NewMemoryRecalcService(logger), func() error { return nil }, nil
	}
	return app.NewRecalcService(ctx, cfg, logger)
}

func runPreview(ctx context.Context, svc *usecase.RecalcService, logger *logging.Logger, raceID string, version int) int {
	breakdowns, err := svc.PreviewRace(ctx, raceID, version)
	if err != nil {
		logger.Error("preview race", "race_id", raceID, "error", err)
		return 1
	}
	printJSON(breakdowns)
	return 0
}

func splitRaceIDs(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		out = append(out, id)
	}
	return out
}

func printJSON(v any) {
	data, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal output: %v\n", err)
		return
	}
	fmt.Println(string(data))
}
