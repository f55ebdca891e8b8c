package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riskibarqy/matchedge/internal/app"
	"github.com/riskibarqy/matchedge/internal/config"
	"github.com/riskibarqy/matchedge/internal/observability"
	"github.com/riskibarqy/matchedge/internal/platform/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	schedule := flag.String("schedule", "", `cron spec to run on, e.g. "0 6 * * 1" (overrides SCHEDULE_CRON)`)
	planURLs := flag.Bool("plan-urls", false, "print the results pages to scrape for the current snapshot and exit")
	envFile := flag.String("env-file", ".env", "optional file of environment variables")
	flag.Parse()

	if err := config.LoadDotEnv(*envFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	spec := cfg.ScheduleCron
	if *schedule != "" {
		spec = *schedule
	}
	scheduled := spec != "" && !*planURLs

	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat}).With(
		"service", cfg.ServiceName,
		"env", cfg.AppEnv,
	)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	obs, err := observability.Start(cfg, logger, observability.Options{Pprof: scheduled})
	if err != nil {
		logger.Error("start observability", "error", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			logger.Warn("stop observability", "error", err)
		}
	}()

	pipeline, err := app.NewPipeline(ctx, cfg, logger)
	if err != nil {
		logger.Error("build pipeline", "error", err)
		return 1
	}
	defer pipeline.Close()

	switch {
	case *planURLs:
		urls, err := pipeline.Service.PlanURLs(ctx)
		if err != nil {
			logger.Error("plan results urls", "error", err)
			return 1
		}
		for _, u := range urls {
			fmt.Println(u)
		}
	case scheduled:
		if err := pipeline.Schedule(ctx, spec); err != nil {
			logger.Error("scheduler failed", "schedule", spec, "error", err)
			return 1
		}
	default:
		if err := pipeline.RunOnce(ctx); err != nil {
			return 1
		}
	}
	return 0
}
