package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Veraticus/leasetx/internal/common"
	"github.com/Veraticus/leasetx/internal/model"
)

// EnvPrefix prefixes every environment variable override.
const EnvPrefix = "LEASETX"

// Config is the fully resolved application configuration.
type Config struct {
	API      APIConfig
	Search   SearchConfig
	Building SearchConfig
	TUI      TUIConfig
	Cache    CacheConfig
	Database DatabaseConfig
	Logging  LoggingConfig
}

// APIConfig configures the backend client.
type APIConfig struct {
	BaseURL       string
	Timeout       time.Duration
	RetryMax      int
	RatePerSecond float64
}

// SearchConfig configures one paged list.
type SearchConfig struct {
	PageSize int
}

// TUIConfig configures the interactive browser.
type TUIConfig struct {
	ScrollThreshold int
	Debounce        time.Duration
	Theme           string
}

// CacheConfig configures the location cache.
type CacheConfig struct {
	TTL           time.Duration
	MaxSize       int64
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// DatabaseConfig configures local storage.
type DatabaseConfig struct {
	Path string
}

// LoggingConfig configures slog.
type LoggingConfig struct {
	Level  string
	Format string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:5000")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.retry_max", 3)
	v.SetDefault("api.rate_per_second", 5.0)

	v.SetDefault("search.page_size", model.SearchPageSize)
	v.SetDefault("building.page_size", model.BuildingPageSize)

	v.SetDefault("tui.scroll_threshold", 5)
	v.SetDefault("tui.debounce", 150*time.Millisecond)
	v.SetDefault("tui.theme", "default")

	v.SetDefault("cache.ttl", 24*time.Hour)
	v.SetDefault("cache.max_size", 1000)
	v.SetDefault("cache.redis_addr", "")
	v.SetDefault("cache.redis_password", "")
	v.SetDefault("cache.redis_db", 0)

	v.SetDefault("database.path", DefaultDatabasePath())

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// BindEnv makes LEASETX_API_BASE_URL and friends override config keys.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// LoadDotEnv loads variables from the given .env files, or ./.env when none
// are given. Missing files are not an error; variables already set in the
// environment win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(ExpandPath(p)); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads the configuration out of v and validates it.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		API: APIConfig{
			BaseURL:       strings.TrimRight(v.GetString("api.base_url"), "/"),
			Timeout:       v.GetDuration("api.timeout"),
			RetryMax:      v.GetInt("api.retry_max"),
			RatePerSecond: v.GetFloat64("api.rate_per_second"),
		},
		Search:   SearchConfig{PageSize: v.GetInt("search.page_size")},
		Building: SearchConfig{PageSize: v.GetInt("building.page_size")},
		TUI: TUIConfig{
			ScrollThreshold: v.GetInt("tui.scroll_threshold"),
			Debounce:        v.GetDuration("tui.debounce"),
			Theme:           v.GetString("tui.theme"),
		},
		Cache: CacheConfig{
			TTL:           v.GetDuration("cache.ttl"),
			MaxSize:       v.GetInt64("cache.max_size"),
			RedisAddr:     v.GetString("cache.redis_addr"),
			RedisPassword: v.GetString("cache.redis_password"),
			RedisDB:       v.GetInt("cache.redis_db"),
		},
		Database: DatabaseConfig{Path: ExpandPath(v.GetString("database.path"))},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail far from their source.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("%w: api.base_url", common.ErrMissingConfig)
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api.base_url %q is not an absolute URL", common.ErrInvalidConfig, c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("%w: api.timeout must be positive", common.ErrInvalidConfig)
	}
	if c.API.RetryMax < 0 {
		return fmt.Errorf("%w: api.retry_max must not be negative", common.ErrInvalidConfig)
	}
	if c.API.RatePerSecond < 0 {
		return fmt.Errorf("%w: api.rate_per_second must not be negative", common.ErrInvalidConfig)
	}
	if c.Search.PageSize <= 0 || c.Building.PageSize <= 0 {
		return fmt.Errorf("%w: page sizes must be positive", common.ErrInvalidConfig)
	}
	if c.TUI.ScrollThreshold < 0 {
		return fmt.Errorf("%w: tui.scroll_threshold must not be negative", common.ErrInvalidConfig)
	}
	if _, err := common.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}
