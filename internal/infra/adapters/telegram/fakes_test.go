package telegram

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"

	"telegram-scraper-bot/internal/application"
	"telegram-scraper-bot/internal/config"
	"telegram-scraper-bot/internal/infra/worker"
	"telegram-scraper-bot/internal/usecase"
)

type fakeBot struct {
	mu         sync.Mutex
	sent       []tgbotapi.Chattable
	requests   []tgbotapi.Chattable
	sendErr    error
	photoErr   error
	requestErr error
	updates    chan tgbotapi.Update
	stopped    bool
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	if _, ok := c.(tgbotapi.PhotoConfig); ok && f.photoErr != nil {
		return tgbotapi.Message{}, f.photoErr
	}
	return tgbotapi.Message{}, f.sendErr
}

func (f *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, f.requestErr
}

func (f *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}

func (f *fakeBot) StopReceivingUpdates() {
	f.mu.Lock()
	f.stopped = true
	f.mu.Unlock()
}

// messages returns the texts of every plain message sent to chatID.
func (f *fakeBot) messages(chatID int64) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok && m.ChatID == chatID {
			out = append(out, m.Text)
		}
	}
	return out
}

type pageFetcher struct {
	pages map[string]string
	err   error
}

func (f *pageFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
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

type fixedLimiter struct {
	allowed bool
	keys    []string
}

func (l *fixedLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	l.keys = append(l.keys, key)
	return l.allowed, nil
}

// syncRunner runs tasks on the caller goroutine and keeps their errors.
type syncRunner struct {
	errs []error
}

func (s *syncRunner) Submit(task worker.Task) error {
	s.errs = append(s.errs, task(context.Background()))
	return nil
}

// fullRunner rejects every task like a saturated pool.
type fullRunner struct{}

func (fullRunner) Submit(worker.Task) error {
	return worker.ErrQueueFull
}

const (
	chatID  int64 = 10
	userID  int64 = 7
	adminID int64 = 99
)

const dolarHTML = `<table>
<tr><td>Nación</td><td>37.50</td><td>39.50</td></tr>
<tr><td>Galicia</td><td>37.40</td><td>39.60</td></tr>
</table>`

func newTestAdapter(t *testing.T, bot *fakeBot, fetcher *pageFetcher, limiter RateLimiter) (*RealTelegramBotAdapter, *syncRunner) {
	t.Helper()
	scrape := config.ScrapeConfig{URLs: map[string]string{
		"rofex": "rofex",
		"dolar": "dolar",
	}}
	facade := application.NewBotFacade(fetcher, scrape, usecase.NewMovieUseCase(nil), keyTranslator{}, "")
	cfg := &config.BotConfig{AdminIDs: []int64{adminID}, RateLimit: 5}
	runner := &syncRunner{}
	r, err := newAdapter(bot, cfg, facade, keyTranslator{}, limiter, runner, nil)
	require.NoError(t, err)
	return r, runner
}

func commandUpdate(text string) tgbotapi.Update {
	cmdLen := len(strings.Fields(text)[0])
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text:     text,
		Chat:     &tgbotapi.Chat{ID: chatID},
		From:     &tgbotapi.User{ID: userID},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: cmdLen}},
	}}
}

func textUpdate(text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text: text,
		Chat: &tgbotapi.Chat{ID: chatID},
		From: &tgbotapi.User{ID: userID},
	}}
}
