// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
	// Local runs answer one command without talking to Telegram.
	Local bool
}

type BotConfig struct {
	Token       string        `yaml:"token"`
	Mode        string        `yaml:"mode"`    // polling only for now
	Workers     int           `yaml:"workers"` // concurrent update handlers
	QueueSize   int           `yaml:"queue_size"`
	AdminIDs    []int64       `yaml:"admin_ids"`
	SendTimeout time.Duration `yaml:"send_timeout"`
	Language    string        `yaml:"language"`
	RateLimit   int           `yaml:"rate_limit"` // commands per user per minute, 0 disables
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type AdminConfig struct {
	Port int `yaml:"port"`
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// ScrapeConfig drives the page fetcher. URLs maps a source name
// (rofex, dolar, posiciones, subte, cartelera, partido) to an override URL.
type ScrapeConfig struct {
	Timeout   time.Duration     `yaml:"timeout"`
	UserAgent string            `yaml:"user_agent"`
	Encoding  string            `yaml:"encoding"`
	URLs      map[string]string `yaml:"urls"`

	// ProbeInterval runs every source in the background; 0 disables probing.
	ProbeInterval time.Duration `yaml:"probe_interval"`
}

type LinksConfig struct {
	// TicketURLTemplate holds one %s (or {}) placeholder for the ticket id.
	TicketURLTemplate string `yaml:"ticket_url_template"`
}

type TMDBConfig struct {
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	Language string `yaml:"language"`
}

type Config struct {
	Bot    BotConfig    `yaml:"bot"`
	Log    LogConfig    `yaml:"log"`
	Admin  AdminConfig  `yaml:"admin"`
	Redis  RedisConfig  `yaml:"redis"`
	Scrape ScrapeConfig `yaml:"scrape"`
	Links  LinksConfig  `yaml:"links"`
	TMDB   TMDBConfig   `yaml:"tmdb"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the YAML file at path, fills defaults and validates it.
func LoadConfig(path string, dev bool) (*Config, error) {
	return load(path, dev, false)
}

// LoadLocalConfig is LoadConfig for local runs: bot.token may be empty.
func LoadLocalConfig(path string, dev bool) (*Config, error) {
	return load(path, dev, true)
}

func load(path string, dev, local bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := parse(b, local)
	if err != nil {
		return nil, err
	}
	cfg.Runtime.Dev = dev
	cfg.Runtime.Local = local
	return cfg, nil
}

// Parse decodes raw YAML into a Config with defaults applied.
func Parse(b []byte) (*Config, error) {
	return parse(b, false)
}

func parse(b []byte, local bool) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&cfg)

	// Minimal validation
	if cfg.Bot.Token == "" && !local {
		return nil, errors.New("bot.token is required")
	}
	if cfg.Scrape.Timeout < 0 {
		return nil, errors.New("scrape.timeout must not be negative")
	}
	if cfg.Scrape.ProbeInterval < 0 {
		return nil, errors.New("scrape.probe_interval must not be negative")
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Bot.Mode == "" {
		cfg.Bot.Mode = "polling"
	}
	if cfg.Bot.Workers <= 0 {
		cfg.Bot.Workers = 8
	}
	if cfg.Bot.QueueSize <= 0 {
		cfg.Bot.QueueSize = cfg.Bot.Workers * 4
	}
	if cfg.Bot.SendTimeout <= 0 {
		cfg.Bot.SendTimeout = 10 * time.Second
	}
	if cfg.Bot.Language == "" {
		cfg.Bot.Language = "es"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Admin.Port == 0 {
		cfg.Admin.Port = 9090
	}
	if cfg.Scrape.Timeout == 0 {
		cfg.Scrape.Timeout = 2 * time.Second
	}
	if cfg.Scrape.Encoding == "" {
		cfg.Scrape.Encoding = "utf-8"
	}
	if cfg.Scrape.UserAgent == "" {
		cfg.Scrape.UserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
	}
	if cfg.TMDB.BaseURL == "" {
		cfg.TMDB.BaseURL = "https://api.themoviedb.org/3"
	}
	if cfg.TMDB.Language == "" {
		cfg.TMDB.Language = "es-AR"
	}
}

// URL returns the configured override for a source, or def.
func (c ScrapeConfig) URL(source, def string) string {
	if u, ok := c.URLs[source]; ok && u != "" {
		return u
	}
	return def
}
