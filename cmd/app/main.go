// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"telegram-scraper-bot/internal/application"
	"telegram-scraper-bot/internal/config"
	"telegram-scraper-bot/internal/domain/ports/adapter"
	"telegram-scraper-bot/internal/infra/adapters/scraper"
	tele "telegram-scraper-bot/internal/infra/adapters/telegram"
	"telegram-scraper-bot/internal/infra/adapters/tmdb"
	httpapi "telegram-scraper-bot/internal/infra/http"
	"telegram-scraper-bot/internal/infra/i18n"
	"telegram-scraper-bot/internal/infra/logging"
	"telegram-scraper-bot/internal/infra/metrics"
	red "telegram-scraper-bot/internal/infra/redis"
	"telegram-scraper-bot/internal/infra/sched"
	"telegram-scraper-bot/internal/infra/worker"
	"telegram-scraper-bot/internal/usecase"
)

// set with -ldflags "-X main.version=... -X main.commit=..."
var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs)")
	once := flag.String("once", "", `run one command (e.g. "/rofex") and log the reply instead of polling`)
	flag.Parse()

	load := config.LoadConfig
	if *once != "" {
		load = config.LoadLocalConfig
	}
	cfg, err := load(*cfgPath, *devMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] Enabled")
	}

	metrics.MustRegister()
	metrics.SetBuildInfo(version, commit)

	translator, err := i18n.NewTranslator(i18n.LocalesFS, cfg.Bot.Language)
	if err != nil {
		logger.Fatal().Err(err).Msg("i18n")
	}
	facade, err := buildFacade(cfg, translator, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("application setup")
	}

	if *once != "" {
		if err := runOnce(ctx, facade, tele.NewNoopBotAdapter(logger), *once); err != nil {
			logger.Fatal().Err(err).Str("command", *once).Msg("command failed")
		}
		return
	}

	// ---- Redis (optional rate limiting) ----
	var limiter tele.RateLimiter
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis")
		}
		defer redisClient.Close()
		limiter = red.NewRateLimiter(redisClient)
	} else if cfg.Bot.RateLimit > 0 {
		logger.Warn().Msg("bot.rate_limit set without redis.url; rate limiting disabled")
	}

	// ---- Workers ----
	pool := worker.NewPool(cfg.Bot.Workers, cfg.Bot.QueueSize, logger)
	pool.Start(ctx)

	// ---- Telegram ----
	botAdapter, err := tele.NewRealTelegramBotAdapter(&cfg.Bot, facade, translator, limiter, pool, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram")
	}
	if strings.ToLower(cfg.Bot.Mode) != "polling" {
		logger.Warn().Str("mode", cfg.Bot.Mode).Msg("bot.mode not implemented; falling back to polling")
	}
	go func() {
		if err := botAdapter.StartPolling(ctx); err != nil && ctx.Err() == nil {
			logger.Error().Err(err).Msg("telegram polling stopped")
		}
	}()

	// ---- Source probe ----
	if cfg.Scrape.ProbeInterval > 0 {
		probe := sched.NewSourceProbe(cfg.Scrape.ProbeInterval, 0, facade, botAdapter, cfg.Bot.AdminIDs, logger)
		go func() { _ = probe.Run(ctx) }()
	}

	// ---- Ops HTTP server ----
	srv := httpapi.NewServer(&cfg.Admin, logger)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Error().Err(err).Msg("ops http server")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("ops http shutdown")
	}
	pool.Stop()
}

// buildFacade wires the fetcher and the optional movie search.
func buildFacade(cfg *config.Config, translator application.Translator, logger *zerolog.Logger) (*application.BotFacade, error) {
	fetcher, err := scraper.NewHTTPFetcher(scraper.Options{
		Timeout:   cfg.Scrape.Timeout,
		UserAgent: cfg.Scrape.UserAgent,
		Encoding:  cfg.Scrape.Encoding,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("fetcher: %w", err)
	}

	var searcher adapter.MovieSearcher
	if cfg.TMDB.APIKey != "" {
		client, err := tmdb.NewClient(tmdb.Options{
			APIKey:   cfg.TMDB.APIKey,
			BaseURL:  cfg.TMDB.BaseURL,
			Language: cfg.TMDB.Language,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("tmdb: %w", err)
		}
		searcher = client
	} else {
		logger.Info().Msg("tmdb.api_key not set; /pelicula disabled")
	}

	return application.NewBotFacade(
		fetcher,
		cfg.Scrape,
		usecase.NewMovieUseCase(searcher),
		translator,
		cfg.Links.TicketURLTemplate,
	), nil
}

// runOnce answers a single command or text message and hands the reply to bot.
func runOnce(ctx context.Context, facade *application.BotFacade, bot adapter.TelegramBotAdapter, input string) error {
	var reply adapter.Reply
	if strings.HasPrefix(input, "/") {
		command, args, _ := strings.Cut(strings.TrimPrefix(input, "/"), " ")
		r, err := facade.HandleCommand(ctx, command, strings.TrimSpace(args))
		if err != nil {
			return err
		}
		reply = r
	} else {
		r, ok := facade.HandleText(input)
		if !ok {
			return nil
		}
		reply = r
	}
	return bot.SendReply(ctx, 0, reply)
}
