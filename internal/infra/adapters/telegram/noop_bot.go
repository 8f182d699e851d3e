package telegram

import (
	"context"

	"github.com/rs/zerolog"

	"telegram-scraper-bot/internal/domain/ports/adapter"
	"telegram-scraper-bot/internal/infra/logging"
)

var _ adapter.TelegramBotAdapter = (*NoopBotAdapter)(nil)

// NoopBotAdapter implements adapter.TelegramBotAdapter for local runs.
// It logs replies instead of sending them.
type NoopBotAdapter struct {
	log *zerolog.Logger
}

// NewNoopBotAdapter constructs the noop adapter.
func NewNoopBotAdapter(log *zerolog.Logger) *NoopBotAdapter {
	if log == nil {
		log = logging.Nop()
	}
	return &NoopBotAdapter{log: log}
}

func (b *NoopBotAdapter) SendMessage(ctx context.Context, chatID int64, text string) error {
	return b.SendReply(ctx, chatID, adapter.Reply{Text: text})
}

func (b *NoopBotAdapter) SendButtons(ctx context.Context, chatID int64, text string, rows [][]adapter.InlineButton) error {
	return b.SendReply(ctx, chatID, adapter.Reply{Text: text, Buttons: rows})
}

// SendReply logs the reply with its photo and button count.
func (b *NoopBotAdapter) SendReply(ctx context.Context, chatID int64, reply adapter.Reply) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	buttons := 0
	for _, row := range reply.Buttons {
		buttons += len(row)
	}
	b.log.Info().
		Int64("chat_id", chatID).
		Bool("markdown", reply.Markdown).
		Str("photo", reply.PhotoURL).
		Int("buttons", buttons).
		Msg("\n" + reply.Text)
	return nil
}
