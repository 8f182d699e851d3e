package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"telegram-scraper-bot/internal/domain"
	"telegram-scraper-bot/internal/domain/ports/adapter"
	"telegram-scraper-bot/internal/infra/metrics"
)

var _ adapter.Fetcher = (*HTTPFetcher)(nil)

const DefaultTimeout = 2 * time.Second

type Options struct {
	Timeout   time.Duration
	UserAgent string
	// Encoding is applied to every body regardless of what the server declares.
	Encoding string
}

// HTTPFetcher downloads pages with a single bounded GET and parses them with goquery.
// It never retries and never caches.
type HTTPFetcher struct {
	http     *resty.Client
	timeout  time.Duration
	encoding encoding.Encoding
	log      *zerolog.Logger
}

func NewHTTPFetcher(opts Options, log *zerolog.Logger) (*HTTPFetcher, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Encoding == "" {
		opts.Encoding = "utf-8"
	}
	enc, err := htmlindex.Get(opts.Encoding)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", opts.Encoding, err)
	}
	if log == nil {
		l := zerolog.Nop()
		log = &l
	}

	client := resty.New()
	client.SetTimeout(opts.Timeout)
	client.SetRetryCount(0)
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}

	return &HTTPFetcher{
		http:     client,
		timeout:  opts.Timeout,
		encoding: enc,
		log:      log,
	}, nil
}

// Fetch GETs rawURL and returns the parsed document.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*goquery.Document, error) {
	body, err := f.FetchBytes(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	reader := transform.NewReader(bytes.NewReader(body), f.encoding.NewDecoder())
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return nil, fmt.Errorf("parse html from %s: %w", rawURL, err)
	}
	return doc, nil
}

// FetchBytes GETs rawURL and returns the raw body of a 2xx response.
func (f *HTTPFetcher) FetchBytes(ctx context.Context, rawURL string) ([]byte, error) {
	start := time.Now()
	host := hostOf(rawURL)

	res, err := f.http.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		if isTimeout(err) {
			metrics.ObserveFetch(host, "timeout", time.Since(start))
			f.log.Info().Str("url", rawURL).Dur("timeout", f.timeout).Msg("request timed out")
			return nil, &domain.TimeoutError{URL: rawURL, Timeout: f.timeout, Err: err}
		}
		metrics.ObserveFetch(host, "error", time.Since(start))
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	if !res.IsSuccess() {
		metrics.ObserveFetch(host, "status", time.Since(start))
		f.log.Warn().Str("url", rawURL).Int("status", res.StatusCode()).Msg("remote returned error status")
		return nil, &domain.RemoteServiceError{
			URL:        rawURL,
			StatusCode: res.StatusCode(),
			Reason:     reason(res.StatusCode(), res.Status()),
		}
	}

	metrics.ObserveFetch(host, "ok", time.Since(start))
	f.log.Debug().Str("url", rawURL).Int("bytes", len(res.Body())).Dur("elapsed", time.Since(start)).Msg("fetched")
	return res.Body(), nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// reason strips the numeric code from a status line like "503 Service Unavailable".
func reason(code int, status string) string {
	r := strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
	if r == "" {
		r = http.StatusText(code)
	}
	return r
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return u.Hostname()
}
