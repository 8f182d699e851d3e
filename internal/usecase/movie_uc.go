package usecase

import (
	"context"
	"fmt"
	"strings"

	"telegram-scraper-bot/internal/domain"
	"telegram-scraper-bot/internal/domain/model"
	"telegram-scraper-bot/internal/domain/ports/adapter"
	"telegram-scraper-bot/internal/format"
)

const overviewLimit = 600

// MovieUseCase searches movies by title.
type MovieUseCase struct {
	searcher adapter.MovieSearcher
}

// NewMovieUseCase accepts a nil searcher; Search then reports ErrNotConfigured.
func NewMovieUseCase(searcher adapter.MovieSearcher) *MovieUseCase {
	return &MovieUseCase{searcher: searcher}
}

// Search returns the best match for query, domain.ErrInvalidArgument for an
// empty query and domain.ErrNotFound when nothing matched.
func (uc *MovieUseCase) Search(ctx context.Context, query string) (*model.Movie, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidArgument
	}
	if uc.searcher == nil {
		return nil, domain.ErrNotConfigured
	}
	movie, err := uc.searcher.SearchMovie(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search movie %q: %w", query, err)
	}
	if movie == nil {
		return nil, domain.ErrNotFound
	}
	return movie, nil
}

// FormatMovie renders a movie as legacy Markdown.
func FormatMovie(m *model.Movie) string {
	var b strings.Builder
	// escapes are not allowed inside an entity, so the bold title drops asterisks
	b.WriteString("*" + strings.ReplaceAll(m.Title, "*", "") + "*")
	if year := releaseYear(m.ReleaseDate); year != "" {
		b.WriteString(" (" + year + ")")
	}
	b.WriteString("\n")
	if m.Votes > 0 {
		fmt.Fprintf(&b, "⭐ %.1f/10 (%d votos)\n", m.Rating, m.Votes)
	}
	if m.Overview != "" {
		b.WriteString("\n" + format.EscapeMarkdown(format.Normalize(m.Overview, overviewLimit, "…")))
	}
	return format.Clip(b.String(), format.MaxMessageLength)
}

func releaseYear(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}
