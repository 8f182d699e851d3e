package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"telegram-scraper-bot/internal/domain/model"
)

// pageFetcher serves canned HTML keyed by URL.
type pageFetcher struct {
	pages map[string]string
	err   error
	calls []string
}

func (f *pageFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	f.calls = append(f.calls, url)
	if f.err != nil {
		return nil, f.err
	}
	return goquery.NewDocumentFromReader(strings.NewReader(f.pages[url]))
}

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

type stubSearcher struct {
	movie *model.Movie
	err   error
	query string
}

func (s *stubSearcher) SearchMovie(ctx context.Context, query string) (*model.Movie, error) {
	s.query = query
	return s.movie, s.err
}
