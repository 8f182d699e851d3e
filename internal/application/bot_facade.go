package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"telegram-scraper-bot/internal/config"
	"telegram-scraper-bot/internal/domain"
	"telegram-scraper-bot/internal/domain/model"
	"telegram-scraper-bot/internal/domain/ports/adapter"
	"telegram-scraper-bot/internal/format"
	"telegram-scraper-bot/internal/usecase"
)

// Translator resolves user-facing message keys.
type Translator interface {
	T(key string, args ...interface{}) string
}

// BotFacade turns bot commands into replies. Every scraping command fetches its
// page again; nothing is kept between invocations.
type BotFacade struct {
	fetcher        adapter.Fetcher
	scrape         config.ScrapeConfig
	MovieUC        *usecase.MovieUseCase
	translator     Translator
	ticketTemplate string
}

// NewBotFacade wires the facade. movieUC may wrap a nil searcher.
func NewBotFacade(
	fetcher adapter.Fetcher,
	scrape config.ScrapeConfig,
	movieUC *usecase.MovieUseCase,
	translator Translator,
	ticketTemplate string,
) *BotFacade {
	return &BotFacade{
		fetcher:        fetcher,
		scrape:         scrape,
		MovieUC:        movieUC,
		translator:     translator,
		ticketTemplate: ticketTemplate,
	}
}

// HandleRofex replies with the dollar futures board.
func (b *BotFacade) HandleRofex(ctx context.Context) (adapter.Reply, error) {
	src := usecase.NewRofexSource(b.scrape.URL("rofex", usecase.DefaultRofexURL))
	text, err := usecase.Run[model.FuturesBoard](ctx, b.fetcher, src)
	if err != nil {
		return adapter.Reply{}, err
	}
	return adapter.Reply{Text: text, Markdown: true}, nil
}

// HandleDolar replies with every bank quote and one button per bank.
func (b *BotFacade) HandleDolar(ctx context.Context) (adapter.Reply, error) {
	src, quotes, err := b.dolarQuotes(ctx)
	if err != nil {
		return adapter.Reply{}, err
	}
	text := src.Format(quotes)
	buttons := usecase.QuoteButtons(quotes)
	if len(buttons) > 0 {
		text += "\n" + b.translator.T("dolar_pick_bank")
	}
	return adapter.Reply{
		Text:     text,
		Markdown: true,
		Buttons:  buttons,
	}, nil
}

// HandleDolarBank answers a bank button. The page is fetched again so the
// quote shown is current; DolarCallbackAll brings back the full table.
func (b *BotFacade) HandleDolarBank(ctx context.Context, data string) (adapter.Reply, error) {
	if data == usecase.DolarCallbackAll {
		return b.HandleDolar(ctx)
	}
	_, quotes, err := b.dolarQuotes(ctx)
	if err != nil {
		return adapter.Reply{}, err
	}
	q, ok := usecase.FindQuote(quotes, data)
	if !ok {
		return adapter.Reply{}, fmt.Errorf("bank %q: %w", strings.TrimPrefix(data, usecase.DolarCallbackPrefix), domain.ErrNotFound)
	}
	return adapter.Reply{
		Text:     usecase.FormatQuote(q),
		Markdown: true,
		Buttons:  [][]adapter.InlineButton{{{Text: b.translator.T("button_back"), Data: usecase.DolarCallbackAll}}},
	}, nil
}

func (b *BotFacade) dolarQuotes(ctx context.Context) (*usecase.DolarSource, []model.Quote, error) {
	src := usecase.NewDolarSource(b.scrape.URL("dolar", usecase.DefaultDolarURL))
	quotes, err := usecase.Scrape[[]model.Quote](ctx, b.fetcher, src)
	return src, quotes, err
}

// HandleStandings replies with the league table; args may carry a row limit.
func (b *BotFacade) HandleStandings(ctx context.Context, args string) (adapter.Reply, error) {
	src := usecase.NewStandingsSource(b.scrape.URL("posiciones", usecase.DefaultStandingsURL), usecase.ParseLimit(args))
	text, err := usecase.Run[[]model.Standing](ctx, b.fetcher, src)
	if err != nil {
		return adapter.Reply{}, err
	}
	return adapter.Reply{Text: text, Markdown: true}, nil
}

// HandleSubway replies with the status of every subway line.
func (b *BotFacade) HandleSubway(ctx context.Context) (adapter.Reply, error) {
	src := usecase.NewSubwaySource(b.scrape.URL("subte", usecase.DefaultSubwayURL))
	text, err := usecase.Run[[]model.LineStatus](ctx, b.fetcher, src)
	if err != nil {
		return adapter.Reply{}, err
	}
	return adapter.Reply{Text: text, Markdown: true}, nil
}

// HandleBillboard replies with the top movies as links.
func (b *BotFacade) HandleBillboard(ctx context.Context) (adapter.Reply, error) {
	src := usecase.NewBillboardSource(b.scrape.URL("cartelera", usecase.DefaultBillboardURL))
	text, err := usecase.Run[[]model.RankedTitle](ctx, b.fetcher, src)
	if err != nil {
		return adapter.Reply{}, err
	}
	return adapter.Reply{Text: text, Markdown: true}, nil
}

// HandleMatch replies with the rival logo followed by the match details.
func (b *BotFacade) HandleMatch(ctx context.Context) (adapter.Reply, error) {
	src := usecase.NewMatchSource(b.scrape.URL("partido", usecase.DefaultMatchURL))
	info, err := usecase.Scrape[model.MatchInfo](ctx, b.fetcher, src)
	if err != nil {
		return adapter.Reply{}, err
	}
	return adapter.Reply{Text: src.Format(info), PhotoURL: info.LogoURL}, nil
}

// HandleMovie searches a movie and replies with its details and a link button.
// Usage, not-found and not-configured cases are answered with fixed messages;
// when the search itself fails the error comes with a "resting" reply.
func (b *BotFacade) HandleMovie(ctx context.Context, query string) (adapter.Reply, error) {
	movie, err := b.MovieUC.Search(ctx, query)
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return adapter.Reply{Text: b.translator.T("usage_pelicula")}, nil
	case errors.Is(err, domain.ErrNotConfigured):
		return adapter.Reply{Text: b.translator.T("movie_not_configured")}, nil
	case errors.Is(err, domain.ErrNotFound):
		return adapter.Reply{Text: b.translator.T("movie_not_found", strings.TrimSpace(query))}, nil
	case err != nil:
		return adapter.Reply{Text: b.translator.T("movie_resting")}, err
	}

	reply := adapter.Reply{
		Text:           usecase.FormatMovie(movie),
		Markdown:       true,
		DisablePreview: true,
		PhotoURL:       movie.PosterURL,
	}
	if movie.PageURL != "" {
		reply.Buttons = [][]adapter.InlineButton{{{Text: b.translator.T("button_movie_page"), URL: movie.PageURL}}}
	}
	return reply, nil
}

// HandleCode echoes text as a code block.
func (b *BotFacade) HandleCode(code string) adapter.Reply {
	if strings.TrimSpace(code) == "" {
		return adapter.Reply{Text: b.translator.T("usage_code")}
	}
	return adapter.Reply{Text: format.Monospace(code), Markdown: true}
}

// HandleTicket builds the issue tracker link for a ticket id.
func (b *BotFacade) HandleTicket(ticketID string) (adapter.Reply, error) {
	if b.ticketTemplate == "" {
		return adapter.Reply{}, domain.ErrNotConfigured
	}
	return adapter.Reply{Text: TicketURL(b.ticketTemplate, ticketID)}, nil
}

// TicketURL fills the template's "{}" or "%s" placeholder with id.
func TicketURL(template, id string) string {
	if strings.Contains(template, "{}") {
		return strings.Replace(template, "{}", id, 1)
	}
	if strings.Contains(template, "%s") {
		return strings.Replace(template, "%s", id, 1)
	}
	return strings.TrimRight(template, "/") + "/" + id
}

// HandleHelp lists the commands.
func (b *BotFacade) HandleHelp() adapter.Reply {
	return adapter.Reply{Text: b.translator.T("help")}
}

// HandleUnknown answers commands the bot does not know.
func (b *BotFacade) HandleUnknown() adapter.Reply {
	return adapter.Reply{Text: b.translator.T("unknown_command")}
}
