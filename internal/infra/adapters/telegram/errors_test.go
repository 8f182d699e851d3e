package telegram

import (
	"errors"
	"fmt"
	"net"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"telegram-scraper-bot/internal/domain"
)

type timeoutNetErr struct{}

func (timeoutNetErr) Error() string   { return "i/o timeout" }
func (timeoutNetErr) Timeout() bool   { return true }
func (timeoutNetErr) Temporary() bool { return true }

var _ net.Error = timeoutNetErr{}

func TestClassifyError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		kind   string
		level  zerolog.Level
		key    string
		notify bool
	}{
		{"fetch timeout", fmt.Errorf("rofex: %w", &domain.TimeoutError{URL: "u", Err: timeoutNetErr{}}), "timeout", zerolog.InfoLevel, "error_timeout", false},
		{"remote status", fmt.Errorf("dolar: %w", &domain.RemoteServiceError{URL: "u", StatusCode: 503}), "remote_service", zerolog.WarnLevel, "error_service_unavailable", false},
		{"layout", domain.NewExtractionError("subte", "table.table"), "extraction", zerolog.ErrorLevel, "error_layout_changed", true},
		{"blocked", &tgbotapi.Error{Code: 403, Message: "Forbidden: bot was blocked by the user"}, "telegram_unauthorized", zerolog.InfoLevel, "", false},
		{"old query", &tgbotapi.Error{Code: 400, Message: "Bad Request: query is too old"}, "telegram_query_expired", zerolog.InfoLevel, "", false},
		{"invalid query", &tgbotapi.Error{Code: 400, Message: "Bad Request: QUERY_ID_INVALID"}, "telegram_query_expired", zerolog.InfoLevel, "", false},
		{"not modified", fmt.Errorf("edit message: %w", &tgbotapi.Error{Code: 400, Message: "Bad Request: message is not modified"}), "telegram_not_modified", zerolog.InfoLevel, "", false},
		{"bad request", &tgbotapi.Error{Code: 400, Message: "Bad Request: can't parse entities"}, "telegram_bad_request", zerolog.InfoLevel, "", false},
		{"telegram 500", &tgbotapi.Error{Code: 500, Message: "Internal Server Error"}, "telegram", zerolog.ErrorLevel, "", false},
		{"telegram network timeout", fmt.Errorf("send photo: %w", timeoutNetErr{}), "telegram_timeout", zerolog.InfoLevel, "error_timeout", false},
		{"other", errors.New("boom"), "unhandled", zerolog.ErrorLevel, "error_generic", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := classifyError(c.err)
			assert.Equal(t, c.kind, got.Kind)
			assert.Equal(t, c.level, got.Level)
			assert.Equal(t, c.key, got.MessageKey)
			assert.Equal(t, c.notify, got.NotifyAdmin)
		})
	}
}
