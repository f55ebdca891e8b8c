package app

import (
	"context"
	"errors"

	"github.com/riskibarqy/matchedge/internal/platform/logging"
	"github.com/robfig/cron/v3"
)

// RunOnce runs one reconciliation and logs its outcome.
func (p *Pipeline) RunOnce(ctx context.Context) error {
	report, err := p.Service.Run(ctx)
	if err != nil {
		p.logger.ErrorContext(ctx, "reconciliation run failed", "run_id", report.RunID, "error", err)
		return err
	}
	return nil
}

// Schedule runs the pipeline on a standard five-field cron spec until ctx is
// cancelled. A run still in progress when the next tick fires is skipped.
func (p *Pipeline) Schedule(ctx context.Context, spec string) error {
	logger := cronLogger{logger: p.logger.Named("scheduler")}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)
	if _, err := c.AddFunc(spec, func() { _ = p.RunOnce(ctx) }); err != nil {
		return err
	}

	c.Start()
	p.logger.InfoContext(ctx, "scheduler started", "schedule", spec)
	<-ctx.Done()

	<-c.Stop().Done()
	p.logger.Info("scheduler stopped")
	if errors.Is(ctx.Err(), context.Canceled) {
		return nil
	}
	return ctx.Err()
}

type cronLogger struct {
	logger *logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
