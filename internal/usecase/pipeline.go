package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"

	"telegram-scraper-bot/internal/domain"
	"telegram-scraper-bot/internal/domain/ports/adapter"
	"telegram-scraper-bot/internal/infra/metrics"
)

// Source is one scraped page: where it lives, how to read it and how to show it.
// Extract and Format are pure so each variant can be tested without a network.
type Source[R any] interface {
	Name() string
	URL() string
	Extract(doc *goquery.Document) (R, error)
	Format(record R) string
}

// Scrape fetches the source page and extracts its record. The steps run strictly
// in sequence and nothing is retried or cached.
func Scrape[R any](ctx context.Context, fetcher adapter.Fetcher, src Source[R]) (R, error) {
	var zero R
	start := time.Now()

	doc, err := fetcher.Fetch(ctx, src.URL())
	if err != nil {
		metrics.ObservePipeline(src.Name(), resultOf(err), time.Since(start))
		return zero, fmt.Errorf("%s: %w", src.Name(), err)
	}
	record, err := src.Extract(doc)
	if err != nil {
		metrics.ObservePipeline(src.Name(), resultOf(err), time.Since(start))
		return zero, err
	}
	metrics.ObservePipeline(src.Name(), "ok", time.Since(start))
	return record, nil
}

// Run is Scrape followed by the source's formatter.
func Run[R any](ctx context.Context, fetcher adapter.Fetcher, src Source[R]) (string, error) {
	record, err := Scrape(ctx, fetcher, src)
	if err != nil {
		return "", err
	}
	return src.Format(record), nil
}

func resultOf(err error) string {
	var (
		te *domain.TimeoutError
		re *domain.RemoteServiceError
		ee *domain.ExtractionError
	)
	switch {
	case errors.As(err, &te):
		return "timeout"
	case errors.As(err, &re):
		return "remote"
	case errors.As(err, &ee):
		return "extraction"
	default:
		return "error"
	}
}
