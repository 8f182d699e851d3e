package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-scraper-bot/internal/domain"
	"telegram-scraper-bot/internal/domain/ports/adapter"
	"telegram-scraper-bot/internal/infra/logging"
	"telegram-scraper-bot/internal/usecase"
)

type cbHandler func(ctx context.Context, query *tgbotapi.CallbackQuery) error

// Prefix-match callbacks
func (r *RealTelegramBotAdapter) cbPrefixRoutes() []struct {
	Prefix string
	Fn     cbHandler
} {
	return []struct {
		Prefix string
		Fn     cbHandler
	}{
		{Prefix: usecase.DolarCallbackPrefix, Fn: r.handleDolarCallback},
	}
}

func (r *RealTelegramBotAdapter) handleQuery(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if query == nil || query.From == nil {
		return errors.New("invalid callback query")
	}

	// stop the client spinner first; an expired query must not block the answer
	if _, err := r.bot.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		r.handleError(ctx, 0, "callback", err)
	}

	for _, pr := range r.cbPrefixRoutes() {
		if strings.HasPrefix(query.Data, pr.Prefix) {
			return pr.Fn(ctx, query)
		}
	}
	logging.With(ctx, r.log).Warn().Str("data", query.Data).Msg("unknown callback data")
	return nil
}

// handleDolarCallback shows one bank (or the whole table again) in place of
// the message that carried the button.
func (r *RealTelegramBotAdapter) handleDolarCallback(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	chatID := query.From.ID
	if query.Message != nil && query.Message.Chat != nil {
		chatID = query.Message.Chat.ID
	}

	reply, err := r.facade.HandleDolarBank(ctx, query.Data)
	if errors.Is(err, domain.ErrNotFound) {
		bank := strings.TrimPrefix(query.Data, usecase.DolarCallbackPrefix)
		return r.SendMessage(ctx, chatID, r.translator.T("dolar_bank_not_found", bank))
	}
	if err != nil {
		return err
	}

	if query.Message == nil {
		return r.SendReply(ctx, chatID, reply)
	}
	return r.editReply(chatID, query.Message.MessageID, reply)
}

// editReply replaces the text and keyboard of a message already sent.
func (r *RealTelegramBotAdapter) editReply(chatID int64, messageID int, reply adapter.Reply) error {
	kb, ok := inlineKeyboard(reply.Buttons)
	var edit tgbotapi.EditMessageTextConfig
	if ok {
		edit = tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, reply.Text, kb)
	} else {
		edit = tgbotapi.NewEditMessageText(chatID, messageID, reply.Text)
	}
	if reply.Markdown {
		edit.ParseMode = tgbotapi.ModeMarkdown
	}
	edit.DisableWebPagePreview = reply.DisablePreview
	if _, err := r.bot.Send(edit); err != nil {
		return fmt.Errorf("edit message: %w", err)
	}
	return nil
}
