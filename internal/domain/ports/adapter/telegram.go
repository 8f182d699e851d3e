// File: internal/domain/ports/adapter/telegram.go
package adapter

import "context"

type InlineButton struct {
	Text string
	Data string
	URL  string
}

// Reply is everything a command hands to the chat transport.
type Reply struct {
	Text           string
	Markdown       bool
	DisablePreview bool
	// PhotoURL, when set, is sent as a photo before the text.
	PhotoURL string
	Buttons  [][]InlineButton
}

type TelegramBotAdapter interface {
	SendMessage(ctx context.Context, telegramID int64, text string) error
	SendButtons(ctx context.Context, telegramID int64, text string, rows [][]InlineButton) error
	SendReply(ctx context.Context, telegramID int64, reply Reply) error
}
