package telegram

import (
	"context"
	"slices"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-scraper-bot/internal/application"
	"telegram-scraper-bot/internal/infra/logging"
	"telegram-scraper-bot/internal/infra/metrics"
	red "telegram-scraper-bot/internal/infra/redis"
)

// handleCommand applies the rate limit, shows the typing indicator and
// delegates to the facade.
func (r *RealTelegramBotAdapter) handleCommand(ctx context.Context, message *tgbotapi.Message) error {
	command := message.Command()
	chatID := message.Chat.ID
	metrics.IncTelegramCommand(commandLabel(command))

	if !r.allow(ctx, message.From, command) {
		return r.SendMessage(ctx, chatID, r.translator.T("error_rate_limited"))
	}

	r.sendTyping(ctx, chatID)

	log := logging.With(ctx, r.log)
	defer logging.TraceDuration(log, command)()

	reply, err := r.facade.HandleCommand(ctx, command, message.CommandArguments())
	if err != nil {
		if reply.Text == "" {
			return err
		}
		// the handler answered with its own fallback message
		log.Warn().Err(err).Msg("command failed")
	}
	return r.SendReply(ctx, chatID, reply)
}

// allow reports whether from may run command now. Limiter failures let the
// command through.
func (r *RealTelegramBotAdapter) allow(ctx context.Context, from *tgbotapi.User, command string) bool {
	if r.rateLimiter == nil || r.rateLimit <= 0 || from == nil {
		return true
	}
	allowed, err := r.rateLimiter.Allow(ctx, red.UserCommandKey(from.ID, command), r.rateLimit, time.Minute)
	if err != nil {
		logging.With(ctx, r.log).Warn().Err(err).Msg("rate limiter unavailable")
		return true
	}
	if !allowed {
		metrics.IncRateLimitTriggered()
	}
	return allowed
}

func (r *RealTelegramBotAdapter) sendTyping(ctx context.Context, chatID int64) {
	if _, err := r.bot.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		logging.With(ctx, r.log).Debug().Err(err).Msg("typing action failed")
	}
}

// commandLabel keeps the metric label set bounded: anything outside the known
// commands is counted as "unknown".
func commandLabel(command string) string {
	command = strings.ToLower(command)
	if slices.Contains(application.Commands, command) {
		return "/" + command
	}
	return "unknown"
}
