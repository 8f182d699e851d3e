package tmdb

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"telegram-scraper-bot/internal/domain"
	"telegram-scraper-bot/internal/domain/model"
	"telegram-scraper-bot/internal/domain/ports/adapter"
)

var _ adapter.MovieSearcher = (*Client)(nil)

const (
	posterBaseURL = "https://image.tmdb.org/t/p/w500"
	pageBaseURL   = "https://www.themoviedb.org/movie/"
)

type Options struct {
	APIKey   string
	BaseURL  string
	Language string
	Timeout  time.Duration
}

// Client searches movies on The Movie Database.
type Client struct {
	http    *resty.Client
	timeout time.Duration
	log     *zerolog.Logger
}

func NewClient(opts Options, log *zerolog.Logger) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, domain.ErrNotConfigured
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if log == nil {
		l := zerolog.Nop()
		log = &l
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimRight(opts.BaseURL, "/"))
	client.SetTimeout(opts.Timeout)
	client.SetQueryParam("api_key", opts.APIKey)
	if opts.Language != "" {
		client.SetQueryParam("language", opts.Language)
	}
	return &Client{http: client, timeout: opts.Timeout, log: log}, nil
}

type searchResponse struct {
	Results []struct {
		ID          int64   `json:"id"`
		Title       string  `json:"title"`
		ReleaseDate string  `json:"release_date"`
		VoteAverage float64 `json:"vote_average"`
		VoteCount   int     `json:"vote_count"`
		Overview    string  `json:"overview"`
		PosterPath  string  `json:"poster_path"`
	} `json:"results"`
}

// SearchMovie returns the first hit for query, or nil when there is none.
func (c *Client) SearchMovie(ctx context.Context, query string) (*model.Movie, error) {
	var out searchResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("query", query).
		SetResult(&out).
		Get("/search/movie")
	if err != nil {
		var ne net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
			return nil, &domain.TimeoutError{URL: "tmdb:/search/movie", Timeout: c.timeout, Err: err}
		}
		return nil, fmt.Errorf("tmdb search: %w", err)
	}
	if !res.IsSuccess() {
		c.log.Warn().Int("status", res.StatusCode()).Msg("tmdb search failed")
		return nil, &domain.RemoteServiceError{
			URL:        "tmdb:/search/movie",
			StatusCode: res.StatusCode(),
			Reason:     strings.TrimSpace(strings.TrimPrefix(res.Status(), strconv.Itoa(res.StatusCode()))),
		}
	}
	if len(out.Results) == 0 {
		return nil, nil
	}

	hit := out.Results[0]
	m := &model.Movie{
		ID:          hit.ID,
		Title:       hit.Title,
		ReleaseDate: hit.ReleaseDate,
		Rating:      hit.VoteAverage,
		Votes:       hit.VoteCount,
		Overview:    hit.Overview,
		PageURL:     pageBaseURL + strconv.FormatInt(hit.ID, 10),
	}
	if hit.PosterPath != "" {
		m.PosterURL = posterBaseURL + hit.PosterPath
	}
	return m, nil
}
