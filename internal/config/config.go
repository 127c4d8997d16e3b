// Package config resolves runtime settings. Sources are applied in order,
// each overriding the last: built-in defaults, the TOML config file, a .env
// file, INTEGRATIONS_* environment variables, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/vectorshift/integrations-cli/internal/core/domain"
	"github.com/vectorshift/integrations-cli/internal/core/ports/driven"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "INTEGRATIONS_"

// Popup configures how authorization windows are opened.
type Popup struct {
	Mode    string        `env:"MODE"`
	Command string        `env:"COMMAND"`
	Timeout time.Duration `env:"TIMEOUT"`
}

// Config holds the resolved settings.
type Config struct {
	BackendURL      string        `env:"BACKEND_URL"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT"`
	PollInterval    time.Duration `env:"POLL_INTERVAL"`
	RawPreviewLimit int           `env:"RAW_PREVIEW_LIMIT"`
	RateLimit       float64       `env:"RATE_LIMIT"`
	RateBurst       int           `env:"RATE_BURST"`
	DefaultUser     string        `env:"DEFAULT_USER"`
	DefaultOrg      string        `env:"DEFAULT_ORG"`
	Popup           Popup         `envPrefix:"POPUP_"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		BackendURL:      "http://localhost:8000",
		RequestTimeout:  30 * time.Second,
		PollInterval:    250 * time.Millisecond,
		RawPreviewLimit: domain.DefaultRawPreviewLimit,
		RateLimit:       2,
		RateBurst:       5,
		DefaultUser:     domain.DefaultUserID,
		DefaultOrg:      domain.DefaultOrgID,
		Popup: Popup{
			Mode: string(domain.PopupModeBrowser),
		},
	}
}

// SessionContext returns the pre-filled user and organisation.
func (c Config) SessionContext() domain.SessionContext {
	return domain.SessionContext{UserID: c.DefaultUser, OrgID: c.DefaultOrg}
}

// LoadOptions controls where Load looks.
type LoadOptions struct {
	// Store supplies file-based values. Nil skips the file layer.
	Store driven.ConfigStore
	// EnvFile is the dotenv file to read. Empty means ".env" in the working
	// directory; a missing file is ignored.
	EnvFile string
	// SkipEnv disables the .env and environment layers.
	SkipEnv bool
}

// Load resolves the configuration from every layer below flags.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	if opts.Store != nil {
		for _, key := range opts.Store.Keys() {
			value, _ := opts.Store.Get(key)
			if err := cfg.apply(key, value); err != nil {
				return Config{}, fmt.Errorf("%s: %w", opts.Store.Path(), err)
			}
		}
	}

	if !opts.SkipEnv {
		if err := loadDotenv(opts.EnvFile); err != nil {
			return Config{}, err
		}
		if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
			return Config{}, fmt.Errorf("parse env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadDotenv reads a dotenv file without overriding variables already set.
func loadDotenv(path string) error {
	var err error
	if path == "" {
		err = godotenv.Load()
	} else {
		err = godotenv.Load(path)
	}
	if err == nil {
		return nil
	}

	var pathErr *fs.PathError
	if path == "" && errors.As(err, &pathErr) && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load env file: %w", err)
}

// Validate checks the resolved settings.
func (c Config) Validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: backend_url %q must be an http(s) URL", domain.ErrInvalidInput, c.BackendURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request_timeout must be positive", domain.ErrInvalidInput)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("%w: poll_interval must be positive", domain.ErrInvalidInput)
	}
	if c.RawPreviewLimit <= 0 {
		return fmt.Errorf("%w: raw_preview_limit must be positive", domain.ErrInvalidInput)
	}
	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		return fmt.Errorf("%w: rate_limit and rate_burst must be positive", domain.ErrInvalidInput)
	}
	if c.Popup.Timeout < 0 {
		return fmt.Errorf("%w: popup.timeout cannot be negative", domain.ErrInvalidInput)
	}
	mode, err := domain.ParsePopupMode(c.Popup.Mode)
	if err != nil {
		return err
	}
	if mode == domain.PopupModeCommand && strings.TrimSpace(c.Popup.Command) == "" {
		return fmt.Errorf("%w: popup.mode=command needs popup.command", domain.ErrInvalidInput)
	}
	return nil
}

// keyKind is the value type a config key accepts.
type keyKind int

const (
	kindString keyKind = iota
	kindDuration
	kindInt
	kindFloat
)

// knownKeys lists every file key and its type.
var knownKeys = map[string]keyKind{
	"backend_url":       kindString,
	"request_timeout":   kindDuration,
	"poll_interval":     kindDuration,
	"raw_preview_limit": kindInt,
	"rate_limit":        kindFloat,
	"rate_burst":        kindInt,
	"default_user":      kindString,
	"default_org":       kindString,
	"popup.mode":        kindString,
	"popup.command":     kindString,
	"popup.timeout":     kindDuration,
}

// Keys returns the supported config keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParseValue converts a command-line string into the value stored for key.
func ParseValue(key, raw string) (any, error) {
	kind, ok := knownKeys[key]
	if !ok {
		return nil, fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}

	raw = strings.TrimSpace(raw)
	switch kind {
	case kindDuration:
		if _, err := time.ParseDuration(raw); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
		}
		return raw, nil
	case kindInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
		}
		return n, nil
	case kindFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
		}
		return f, nil
	default:
		return raw, nil
	}
}

// Get returns the resolved value of key formatted for display.
func (c Config) Get(key string) (string, error) {
	switch key {
	case "backend_url":
		return c.BackendURL, nil
	case "request_timeout":
		return c.RequestTimeout.String(), nil
	case "poll_interval":
		return c.PollInterval.String(), nil
	case "raw_preview_limit":
		return strconv.Itoa(c.RawPreviewLimit), nil
	case "rate_limit":
		return strconv.FormatFloat(c.RateLimit, 'f', -1, 64), nil
	case "rate_burst":
		return strconv.Itoa(c.RateBurst), nil
	case "default_user":
		return c.DefaultUser, nil
	case "default_org":
		return c.DefaultOrg, nil
	case "popup.mode":
		return c.Popup.Mode, nil
	case "popup.command":
		return c.Popup.Command, nil
	case "popup.timeout":
		return c.Popup.Timeout.String(), nil
	default:
		return "", fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}
}

// apply sets one key from a decoded TOML value.
func (c *Config) apply(key string, value any) error {
	kind, ok := knownKeys[key]
	if !ok {
		return fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}

	switch kind {
	case kindString:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: %s must be a string", domain.ErrInvalidInput, key)
		}
		c.setString(key, s)
	case kindDuration:
		d, err := toDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, key, err)
		}
		c.setDuration(key, d)
	case kindInt:
		n, ok := value.(int64)
		if !ok {
			return fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
		}
		c.setInt(key, int(n))
	case kindFloat:
		switch v := value.(type) {
		case float64:
			c.RateLimit = v
		case int64:
			c.RateLimit = float64(v)
		default:
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
	}
	return nil
}

func (c *Config) setString(key, s string) {
	switch key {
	case "backend_url":
		c.BackendURL = s
	case "default_user":
		c.DefaultUser = s
	case "default_org":
		c.DefaultOrg = s
	case "popup.mode":
		c.Popup.Mode = s
	case "popup.command":
		c.Popup.Command = s
	}
}

func (c *Config) setDuration(key string, d time.Duration) {
	switch key {
	case "request_timeout":
		c.RequestTimeout = d
	case "poll_interval":
		c.PollInterval = d
	case "popup.timeout":
		c.Popup.Timeout = d
	}
}

func (c *Config) setInt(key string, n int) {
	switch key {
	case "raw_preview_limit":
		c.RawPreviewLimit = n
	case "rate_burst":
		c.RateBurst = n
	}
}

// toDuration accepts a Go duration string or a whole number of seconds.
func toDuration(value any) (time.Duration, error) {
	switch v := value.(type) {
	case string:
		return time.ParseDuration(v)
	case int64:
		return time.Duration(v) * time.Second, nil
	default:
		return 0, fmt.Errorf("want a duration string, got %T", value)
	}
}
