package application

import (
	"context"
	"errors"
	"strings"

	"telegram-scraper-bot/internal/domain"
	"telegram-scraper-bot/internal/domain/ports/adapter"
)

// Commands lists every command HandleCommand answers, aliases included.
var Commands = []string{
	"rofex", "dolar_futuro",
	"dolar", "dolarhoy",
	"posiciones",
	"subte",
	"cartelera",
	"partido",
	"pelicula",
	"code",
	"help", "start",
}

// HandleCommand routes a command name (without the leading slash) and its
// arguments. A failed handler may still return a fallback reply to show.
func (b *BotFacade) HandleCommand(ctx context.Context, command, args string) (adapter.Reply, error) {
	switch strings.ToLower(command) {
	case "rofex", "dolar_futuro":
		return b.HandleRofex(ctx)
	case "dolar", "dolarhoy":
		return b.HandleDolar(ctx)
	case "posiciones":
		return b.HandleStandings(ctx, args)
	case "subte":
		return b.HandleSubway(ctx)
	case "cartelera":
		return b.HandleBillboard(ctx)
	case "partido":
		return b.HandleMatch(ctx)
	case "pelicula":
		return b.HandleMovie(ctx, args)
	case "code":
		return b.HandleCode(args), nil
	case "help", "start":
		return b.HandleHelp(), nil
	default:
		return b.HandleUnknown(), nil
	}
}

// HandleText answers plain messages: the code trigger wins over ticket ids.
// ok is false when the text needs no answer.
func (b *BotFacade) HandleText(text string) (reply adapter.Reply, ok bool) {
	if code, found := MatchCode(text); found {
		return b.HandleCode(code), true
	}
	if id, found := MatchTicket(text); found {
		reply, err := b.HandleTicket(id)
		if errors.Is(err, domain.ErrNotConfigured) {
			return adapter.Reply{}, false
		}
		return reply, err == nil
	}
	return adapter.Reply{}, false
}

// ScrapeCommands are the commands backed by a scraped page, one per source.
var ScrapeCommands = []string{"rofex", "dolar", "posiciones", "subte", "cartelera", "partido"}

// Probe runs every scraping command once and returns the failure of each, keyed
// by command. Successful commands map to nil.
func (b *BotFacade) Probe(ctx context.Context) map[string]error {
	out := make(map[string]error, len(ScrapeCommands))
	for _, command := range ScrapeCommands {
		_, err := b.HandleCommand(ctx, command, "")
		out[command] = err
	}
	return out
}
