package adapter

import (
	"context"

	"telegram-scraper-bot/internal/domain/model"
)

// MovieSearcher looks up a movie by free-text title.
// A nil movie with a nil error means nothing matched.
type MovieSearcher interface {
	SearchMovie(ctx context.Context, query string) (*model.Movie, error)
}
