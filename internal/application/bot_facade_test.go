package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-scraper-bot/internal/config"
	"telegram-scraper-bot/internal/domain"
	"telegram-scraper-bot/internal/domain/model"
	"telegram-scraper-bot/internal/usecase"
)

type pageFetcher struct {
	pages map[string]string
	err   error
	calls int
}

func (f *pageFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return goquery.NewDocumentFromReader(strings.NewReader(f.pages[url]))
}

type keyTranslator struct{}

func (keyTranslator) T(key string, args ...interface{}) string {
	if len(args) > 0 {
		return key + ":" + args[0].(string)
	}
	return key
}

type stubSearcher struct {
	movie *model.Movie
	err   error
}

func (s *stubSearcher) SearchMovie(ctx context.Context, query string) (*model.Movie, error) {
	return s.movie, s.err
}

const dolarHTML = `<table>
<tr><td>Nación</td><td>37.50</td><td>39.50</td></tr>
<tr><td>Galicia</td><td>37.40</td><td>39.60</td></tr>
</table>`

func newFacade(f *pageFetcher, s *stubSearcher) *BotFacade {
	scrape := config.ScrapeConfig{URLs: map[string]string{
		"dolar": "dolar",
		"rofex": "rofex",
	}}
	var movieUC *usecase.MovieUseCase
	if s != nil {
		movieUC = usecase.NewMovieUseCase(s)
	} else {
		movieUC = usecase.NewMovieUseCase(nil)
	}
	return NewBotFacade(f, scrape, movieUC, keyTranslator{}, "https://jira.example.com/browse/{}")
}

func TestHandleDolar_ButtonsPerBank(t *testing.T) {
	f := &pageFetcher{pages: map[string]string{"dolar": dolarHTML}}
	reply, err := newFacade(f, nil).HandleDolar(context.Background())
	require.NoError(t, err)

	assert.True(t, reply.Markdown)
	assert.True(t, strings.HasPrefix(reply.Text, "```\n"))
	assert.True(t, strings.HasSuffix(reply.Text, "```\ndolar_pick_bank"))
	require.Len(t, reply.Buttons, 1)
	assert.Equal(t, "dolar:Nación", reply.Buttons[0][0].Data)
	assert.Equal(t, "dolar:Galicia", reply.Buttons[0][1].Data)
}

func TestHandleDolarBank(t *testing.T) {
	ctx := context.Background()
	f := &pageFetcher{pages: map[string]string{"dolar": dolarHTML}}
	b := newFacade(f, nil)

	reply, err := b.HandleDolarBank(ctx, "dolar:Galicia")
	require.NoError(t, err)
	assert.Contains(t, reply.Text, "Galicia")
	assert.NotContains(t, reply.Text, "Nación")
	assert.Equal(t, usecase.DolarCallbackAll, reply.Buttons[0][0].Data)
	assert.Equal(t, 1, f.calls)

	_, err = b.HandleDolarBank(ctx, "dolar:Macro")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	reply, err = b.HandleDolarBank(ctx, usecase.DolarCallbackAll)
	require.NoError(t, err)
	assert.Contains(t, reply.Text, "Nación")
	assert.Equal(t, 3, f.calls, "every callback fetches the page again")
}

func TestHandleRofex_PropagatesTimeout(t *testing.T) {
	f := &pageFetcher{err: &domain.TimeoutError{URL: "rofex"}}
	_, err := newFacade(f, nil).HandleRofex(context.Background())
	var te *domain.TimeoutError
	assert.True(t, errors.As(err, &te))
}

func TestHandleMovie(t *testing.T) {
	ctx := context.Background()

	reply, err := newFacade(&pageFetcher{}, &stubSearcher{}).HandleMovie(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "usage_pelicula", reply.Text)

	reply, err = newFacade(&pageFetcher{}, nil).HandleMovie(ctx, "Alien")
	require.NoError(t, err)
	assert.Equal(t, "movie_not_configured", reply.Text)

	reply, err = newFacade(&pageFetcher{}, &stubSearcher{}).HandleMovie(ctx, "Alien ")
	require.NoError(t, err)
	assert.Equal(t, "movie_not_found:Alien", reply.Text)

	movie := &model.Movie{Title: "Alien", PageURL: "https://tmdb/1", PosterURL: "https://img/1.jpg"}
	reply, err = newFacade(&pageFetcher{}, &stubSearcher{movie: movie}).HandleMovie(ctx, "Alien")
	require.NoError(t, err)
	assert.True(t, reply.Markdown)
	assert.Equal(t, "https://img/1.jpg", reply.PhotoURL)
	assert.Equal(t, "https://tmdb/1", reply.Buttons[0][0].URL)

	reply, err = newFacade(&pageFetcher{}, &stubSearcher{err: errors.New("dial tcp: refused")}).HandleMovie(ctx, "Alien")
	assert.Error(t, err)
	assert.Equal(t, "movie_resting", reply.Text)
}

func TestHandleCode(t *testing.T) {
	b := newFacade(&pageFetcher{}, nil)
	assert.Equal(t, "```\nls -la\n```", b.HandleCode("ls -la").Text)
	assert.Equal(t, "usage_code", b.HandleCode("  ").Text)
}

func TestHandleTicket(t *testing.T) {
	reply, err := newFacade(&pageFetcher{}, nil).HandleTicket("OPS-12")
	require.NoError(t, err)
	assert.Equal(t, "https://jira.example.com/browse/OPS-12", reply.Text)

	b := NewBotFacade(&pageFetcher{}, config.ScrapeConfig{}, usecase.NewMovieUseCase(nil), keyTranslator{}, "")
	_, err = b.HandleTicket("OPS-12")
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestTicketURL(t *testing.T) {
	assert.Equal(t, "https://j/browse/A-1", TicketURL("https://j/browse/{}", "A-1"))
	assert.Equal(t, "https://j/browse/A-1", TicketURL("https://j/browse/%s", "A-1"))
	assert.Equal(t, "https://j/browse/A-1", TicketURL("https://j/browse/", "A-1"))
}
