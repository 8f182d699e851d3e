package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"telegram-scraper-bot/internal/application"
	"telegram-scraper-bot/internal/config"
	"telegram-scraper-bot/internal/domain/ports/adapter"
	"telegram-scraper-bot/internal/infra/logging"
	"telegram-scraper-bot/internal/infra/worker"
)

var _ adapter.TelegramBotAdapter = (*RealTelegramBotAdapter)(nil)

const busyReplyTimeout = 10 * time.Second

// botAPI is the part of *tgbotapi.BotAPI the adapter uses.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// RateLimiter is satisfied by the redis rate limiter.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// taskRunner is satisfied by *worker.Pool.
type taskRunner interface {
	Submit(task worker.Task) error
}

// RealTelegramBotAdapter uses tgbotapi to poll updates and delegates to BotFacade.
type RealTelegramBotAdapter struct {
	bot         botAPI
	facade      *application.BotFacade
	translator  application.Translator
	rateLimiter RateLimiter
	pool        taskRunner
	log         *zerolog.Logger

	adminIDs  []int64
	rateLimit int
}

// NewRealTelegramBotAdapter logs in with cfg.Token. Every call to the Bot API
// is bounded by cfg.SendTimeout. Pass a nil limiter interface to disable rate
// limiting.
func NewRealTelegramBotAdapter(
	cfg *config.BotConfig,
	facade *application.BotFacade,
	translator application.Translator,
	limiter RateLimiter,
	pool *worker.Pool,
	log *zerolog.Logger,
) (*RealTelegramBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	if log == nil {
		log = logging.Nop()
	}
	client := &http.Client{Timeout: cfg.SendTimeout}
	bot, err := tgbotapi.NewBotAPIWithClient(cfg.Token, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("telegram login: %w", err)
	}
	log.Info().Str("bot", bot.Self.UserName).Msg("authorized on telegram")
	return newAdapter(bot, cfg, facade, translator, limiter, pool, log)
}

func newAdapter(
	bot botAPI,
	cfg *config.BotConfig,
	facade *application.BotFacade,
	translator application.Translator,
	limiter RateLimiter,
	pool taskRunner,
	log *zerolog.Logger,
) (*RealTelegramBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	if facade == nil {
		return nil, errors.New("bot facade is nil")
	}
	if translator == nil {
		return nil, errors.New("translator is nil")
	}
	if pool == nil {
		return nil, errors.New("worker pool is nil")
	}
	if log == nil {
		log = logging.Nop()
	}
	return &RealTelegramBotAdapter{
		bot:         bot,
		facade:      facade,
		translator:  translator,
		rateLimiter: limiter,
		pool:        pool,
		log:         log,
		adminIDs:    cfg.AdminIDs,
		rateLimit:   cfg.RateLimit,
	}, nil
}

// StartPolling reads updates until ctx is done. Each update becomes a task on
// the worker pool; when the pool is saturated the update is dropped.
func (r *RealTelegramBotAdapter) StartPolling(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := r.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			r.bot.StopReceivingUpdates()
			return ctx.Err()
		case up, ok := <-updates:
			if !ok {
				return nil
			}
			r.dispatch(up)
		}
	}
}

func (r *RealTelegramBotAdapter) dispatch(up tgbotapi.Update) {
	err := r.pool.Submit(func(ctx context.Context) error {
		return r.process(ctx, up)
	})
	if err == nil {
		return
	}
	r.log.Warn().Err(err).Int("update_id", up.UpdateID).Msg("update dropped")
	if !errors.Is(err, worker.ErrQueueFull) {
		return
	}
	chatID, _, _ := describeUpdate(up)
	if chatID == 0 {
		return
	}
	// answered off the polling loop so a slow send does not stall it
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), busyReplyTimeout)
		defer cancel()
		if err := r.SendMessage(ctx, chatID, r.translator.T("error_busy")); err != nil {
			r.log.Debug().Err(err).Int64("chat_id", chatID).Msg("busy reply failed")
		}
	}()
}

// process handles one update and classifies its failure, if any.
func (r *RealTelegramBotAdapter) process(ctx context.Context, up tgbotapi.Update) error {
	chatID, userID, label := describeUpdate(up)
	ctx = logging.WithTraceID(ctx, uuid.NewString())
	ctx = logging.WithTgID(ctx, userID)
	ctx = logging.WithCommand(ctx, label)

	err := r.handleUpdate(ctx, up)
	if err != nil {
		r.handleError(ctx, chatID, label, err)
	}
	return err
}

func (r *RealTelegramBotAdapter) handleUpdate(ctx context.Context, up tgbotapi.Update) error {
	if up.CallbackQuery != nil {
		return r.handleQuery(ctx, up.CallbackQuery)
	}
	msg := up.Message
	if msg == nil || msg.Chat == nil {
		return nil
	}
	if msg.IsCommand() {
		return r.handleCommand(ctx, msg)
	}
	reply, ok := r.facade.HandleText(msg.Text)
	if !ok {
		return nil
	}
	return r.SendReply(ctx, msg.Chat.ID, reply)
}

// describeUpdate returns the chat to answer, the sender and a short label for logs.
func describeUpdate(up tgbotapi.Update) (chatID, userID int64, label string) {
	switch {
	case up.CallbackQuery != nil:
		q := up.CallbackQuery
		if q.From != nil {
			userID = q.From.ID
			chatID = q.From.ID
		}
		if q.Message != nil && q.Message.Chat != nil {
			chatID = q.Message.Chat.ID
		}
		label = "callback:" + strings.SplitN(q.Data, ":", 2)[0]
	case up.Message != nil:
		m := up.Message
		if m.From != nil {
			userID = m.From.ID
		}
		if m.Chat != nil {
			chatID = m.Chat.ID
		}
		label = "message"
		if m.IsCommand() {
			label = "/" + m.Command()
		}
	default:
		label = "update"
	}
	return chatID, userID, label
}

// SendMessage sends plain text.
func (r *RealTelegramBotAdapter) SendMessage(ctx context.Context, chatID int64, text string) error {
	return r.SendReply(ctx, chatID, adapter.Reply{Text: text})
}

// SendButtons sends text with an inline keyboard.
func (r *RealTelegramBotAdapter) SendButtons(ctx context.Context, chatID int64, text string, rows [][]adapter.InlineButton) error {
	return r.SendReply(ctx, chatID, adapter.Reply{Text: text, Buttons: rows})
}

// SendReply sends the photo first, if any, then the text with its keyboard.
// A photo Telegram refuses does not keep the text from being sent.
func (r *RealTelegramBotAdapter) SendReply(ctx context.Context, chatID int64, reply adapter.Reply) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	hasText := strings.TrimSpace(reply.Text) != ""
	if reply.PhotoURL != "" {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(reply.PhotoURL))
		if _, err := r.bot.Send(photo); err != nil {
			if !hasText {
				return fmt.Errorf("send photo: %w", err)
			}
			logging.With(ctx, r.log).Warn().Err(err).Str("photo", reply.PhotoURL).Msg("photo not sent")
		}
	}
	if !hasText {
		return nil
	}

	msg := tgbotapi.NewMessage(chatID, reply.Text)
	if reply.Markdown {
		msg.ParseMode = tgbotapi.ModeMarkdown
	}
	msg.DisableWebPagePreview = reply.DisablePreview
	if kb, ok := inlineKeyboard(reply.Buttons); ok {
		msg.ReplyMarkup = kb
	}
	_, err := r.bot.Send(msg)
	return err
}

// inlineKeyboard converts button rows. A button with a URL opens a link,
// otherwise it sends its Data (or its label when Data is empty) as callback.
func inlineKeyboard(rows [][]adapter.InlineButton) (tgbotapi.InlineKeyboardMarkup, bool) {
	kbRows := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		kbRow := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			label := strings.TrimSpace(btn.Text)
			if label == "" {
				label = "•"
			}
			switch {
			case btn.URL != "":
				kbRow = append(kbRow, tgbotapi.NewInlineKeyboardButtonURL(label, btn.URL))
			case btn.Data != "":
				kbRow = append(kbRow, tgbotapi.NewInlineKeyboardButtonData(label, btn.Data))
			default:
				kbRow = append(kbRow, tgbotapi.NewInlineKeyboardButtonData(label, label))
			}
		}
		kbRows = append(kbRows, kbRow)
	}
	if len(kbRows) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	return tgbotapi.NewInlineKeyboardMarkup(kbRows...), true
}
