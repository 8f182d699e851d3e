package adapter

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher downloads a page and parses it as HTML.
// Implementations return *domain.TimeoutError on deadline and
// *domain.RemoteServiceError on non-2xx statuses.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}
