package telegram

import (
	"context"
	"errors"
	"net"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"telegram-scraper-bot/internal/domain"
	"telegram-scraper-bot/internal/format"
	"telegram-scraper-bot/internal/infra/logging"
	"telegram-scraper-bot/internal/infra/metrics"
)

const adminErrorLimit = 300

// errorClass says how a failed update is logged and answered.
type errorClass struct {
	Kind        string
	Level       zerolog.Level
	Note        string
	MessageKey  string // user-facing i18n key, empty for none
	NotifyAdmin bool
}

// classifyError maps a failure to its class. Domain errors are checked before
// transport errors because a fetch timeout also wraps a net.Error.
func classifyError(err error) errorClass {
	var (
		timeoutErr    *domain.TimeoutError
		remoteErr     *domain.RemoteServiceError
		extractionErr *domain.ExtractionError
		tgErr         *tgbotapi.Error
		netErr        net.Error
	)
	switch {
	case errors.As(err, &timeoutErr):
		return errorClass{Kind: "timeout", Level: zerolog.InfoLevel, Note: "fetch timed out", MessageKey: "error_timeout"}
	case errors.As(err, &remoteErr):
		return errorClass{Kind: "remote_service", Level: zerolog.WarnLevel, Note: "remote service error", MessageKey: "error_service_unavailable"}
	case errors.As(err, &extractionErr):
		return errorClass{Kind: "extraction", Level: zerolog.ErrorLevel, Note: "page layout changed", MessageKey: "error_layout_changed", NotifyAdmin: true}
	case errors.As(err, &tgErr):
		return classifyTelegramError(tgErr)
	case errors.As(err, &netErr) && netErr.Timeout():
		return errorClass{Kind: "telegram_timeout", Level: zerolog.InfoLevel, Note: "telegram timed out", MessageKey: "error_timeout"}
	default:
		return errorClass{Kind: "unhandled", Level: zerolog.ErrorLevel, Note: "unhandled error", MessageKey: "error_generic", NotifyAdmin: true}
	}
}

func classifyTelegramError(e *tgbotapi.Error) errorClass {
	msg := strings.ToLower(e.Message)
	switch {
	case e.Code == 401 || e.Code == 403:
		return errorClass{Kind: "telegram_unauthorized", Level: zerolog.InfoLevel, Note: "unauthorized"}
	case e.Code == 400 && (strings.Contains(msg, "query is too old") || strings.Contains(msg, "query_id_invalid")):
		return errorClass{Kind: "telegram_query_expired", Level: zerolog.InfoLevel, Note: "took too long to answer"}
	case e.Code == 400 && strings.Contains(msg, "message is not modified"):
		return errorClass{Kind: "telegram_not_modified", Level: zerolog.InfoLevel, Note: "message is not modified"}
	case e.Code == 400:
		return errorClass{Kind: "telegram_bad_request", Level: zerolog.InfoLevel, Note: "bad request"}
	default:
		return errorClass{Kind: "telegram", Level: zerolog.ErrorLevel, Note: "telegram error"}
	}
}

// handleError logs err once, tells the user what happened when the class has a
// message, and forwards unexpected failures to the admins.
func (r *RealTelegramBotAdapter) handleError(ctx context.Context, chatID int64, where string, err error) {
	class := classifyError(err)
	metrics.IncUpdateError(class.Kind)

	log := logging.With(ctx, r.log)
	log.WithLevel(class.Level).Err(err).Str("kind", class.Kind).Msg(class.Note)

	if class.MessageKey != "" && chatID != 0 {
		if sendErr := r.SendMessage(ctx, chatID, r.translator.T(class.MessageKey)); sendErr != nil {
			log.Debug().Err(sendErr).Msg("could not report error to user")
		}
	}
	if class.NotifyAdmin {
		r.notifyAdmins(ctx, where, err)
	}
}

func (r *RealTelegramBotAdapter) notifyAdmins(ctx context.Context, where string, err error) {
	text := r.translator.T("admin_unhandled_error", where, format.Clip(err.Error(), adminErrorLimit))
	for _, id := range r.adminIDs {
		if sendErr := r.SendMessage(ctx, id, text); sendErr != nil {
			logging.With(ctx, r.log).Warn().Err(sendErr).Int64("admin_id", id).Msg("admin notification failed")
		}
	}
}
