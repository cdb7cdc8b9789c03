// Package purger removes expired and revoked tokens on a cron schedule.
package purger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/adhocore/gronx"

	"github.com/fbraem/kwai/internal/domains/identity/ports"
)

// Purger runs PurgeTokens whenever the schedule is due.
type Purger struct {
	service  ports.Service
	schedule string
	logger   *slog.Logger
	now      func() time.Time
	after    func(time.Duration) <-chan time.Time
}

func New(service ports.Service, schedule string, logger *slog.Logger) (*Purger, error) {
	if !gronx.New().IsValid(schedule) {
		return nil, fmt.Errorf("invalid purge schedule %q", schedule)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Purger{
		service:  service,
		schedule: schedule,
		logger:   logger,
		now:      time.Now,
		after:    time.After,
	}, nil
}

// Once purges the tokens that expired before now.
func (p *Purger) Once(ctx context.Context) (ports.PurgeTokensResult, error) {
	result, err := p.service.PurgeTokens(ctx, ports.PurgeTokensCommand{Before: p.now()})
	if err != nil {
		p.logger.ErrorContext(ctx, "token purge failed", slog.String("error", err.Error()))
		return result, err
	}
	p.logger.InfoContext(ctx, "tokens purged",
		slog.Int64("access_tokens", result.AccessTokens),
		slog.Int64("refresh_tokens", result.RefreshTokens),
	)
	return result, nil
}

// Run purges on every tick of the schedule until ctx is done. A failed purge is
// retried on the next tick.
func (p *Purger) Run(ctx context.Context) error {
	for {
		next, err := gronx.NextTickAfter(p.schedule, p.now(), false)
		if err != nil {
			return err
		}
		p.logger.DebugContext(ctx, "next token purge", slog.Time("at", next))
		select {
		case <-ctx.Done():
			return nil
		case <-p.after(next.Sub(p.now())):
		}
		_, _ = p.Once(ctx)
	}
}
