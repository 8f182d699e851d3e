package sched

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"telegram-scraper-bot/internal/domain"
	"telegram-scraper-bot/internal/domain/ports/adapter"
	"telegram-scraper-bot/internal/infra/metrics"
)

// Prober runs every source once. *application.BotFacade implements it.
type Prober interface {
	Probe(ctx context.Context) map[string]error
}

// SourceProbe periodically scrapes every source so a broken page shows up in
// metrics, and in the admins' chat, before users hit it.
type SourceProbe struct {
	interval time.Duration
	timeout  time.Duration
	prober   Prober
	notifier adapter.TelegramBotAdapter
	adminIDs []int64
	log      *zerolog.Logger

	// sources whose layout was already reported broken
	broken map[string]bool
}

func NewSourceProbe(interval, timeout time.Duration, prober Prober, notifier adapter.TelegramBotAdapter, adminIDs []int64, logger *zerolog.Logger) *SourceProbe {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	probeLog := logger.With().Str("component", "SourceProbe").Logger()
	return &SourceProbe{
		interval: interval,
		timeout:  timeout,
		prober:   prober,
		notifier: notifier,
		adminIDs: adminIDs,
		log:      &probeLog,
		broken:   map[string]bool{},
	}
}

func (p *SourceProbe) Run(ctx context.Context) error {
	p.log.Info().Dur("interval", p.interval).Msg("Starting source probe")
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.log.Info().Msg("Stopping source probe")
			return ctx.Err()
		case <-ticker.C:
			p.RunOnce(ctx)
		}
	}
}

// RunOnce probes every source and returns how many failed.
func (p *SourceProbe) RunOnce(ctx context.Context) int {
	runCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	results := p.prober.Probe(runCtx)
	sources := make([]string, 0, len(results))
	for source := range results {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	failed := 0
	for _, source := range sources {
		err := results[source]
		metrics.SetSourceUp(source, err == nil)
		if err == nil {
			delete(p.broken, source)
			continue
		}
		failed++
		p.log.Warn().Err(err).Str("source", source).Msg("source probe failed")

		var ee *domain.ExtractionError
		if errors.As(err, &ee) && !p.broken[source] {
			p.broken[source] = true
			p.alert(ctx, fmt.Sprintf("/%s: %v", source, err))
		}
	}
	return failed
}

func (p *SourceProbe) alert(ctx context.Context, text string) {
	if p.notifier == nil {
		return
	}
	for _, id := range p.adminIDs {
		if err := p.notifier.SendMessage(ctx, id, text); err != nil {
			p.log.Warn().Err(err).Int64("admin_id", id).Msg("probe alert failed")
		}
	}
}
