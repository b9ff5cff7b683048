// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/verbumdei/lectio/internal/fetch"
)

// Config captures all configuration knobs loaded via Viper.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Race     RaceConfig     `mapstructure:"race"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Archive  ArchiveConfig  `mapstructure:"archive"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig controls the optional HTTP API.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// UpstreamConfig points at the readings source.
type UpstreamConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	UserAgent      string `mapstructure:"user_agent"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// RaceConfig governs the proxy-racing fallback.
type RaceConfig struct {
	DeadlineMs    int      `mapstructure:"deadline_ms"`
	StaggerMs     int      `mapstructure:"stagger_ms"`
	Routes        []string `mapstructure:"routes"`
	DirectBlocked bool     `mapstructure:"direct_blocked"`
}

// CacheConfig controls the durable cache tier. An empty DSN disables it.
type CacheConfig struct {
	PostgresDSN string `mapstructure:"postgres_dsn"`
	Table       string `mapstructure:"table"`
}

// ArchiveConfig controls raw page snapshots. An empty dir disables them.
type ArchiveConfig struct {
	Dir      string `mapstructure:"dir"`
	MaxBytes int64  `mapstructure:"max_bytes"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LECTIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("upstream.base_url", "https://bible.usccb.gov/bible/readings")
	v.SetDefault("upstream.user_agent", "lectio/0.1 (+https://github.com/verbumdei/lectio)")
	v.SetDefault("upstream.timeout_seconds", 15)
	v.SetDefault("race.deadline_ms", 6000)
	v.SetDefault("race.stagger_ms", 150)
	v.SetDefault("race.routes", fetch.DefaultRouteNames())
	v.SetDefault("race.direct_blocked", false)
	v.SetDefault("cache.table", "lectio_readings")
	v.SetDefault("archive.max_bytes", 5*1024*1024)
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if strings.TrimSpace(c.Upstream.BaseURL) == "" {
		return fmt.Errorf("upstream.base_url is required")
	}
	if c.Upstream.TimeoutSeconds <= 0 {
		return fmt.Errorf("upstream.timeout_seconds must be > 0")
	}
	if c.Race.DeadlineMs <= 0 {
		return fmt.Errorf("race.deadline_ms must be > 0")
	}
	if c.Race.StaggerMs < 0 {
		return fmt.Errorf("race.stagger_ms must be >= 0")
	}
	return nil
}

// UpstreamTimeout converts the upstream timeout into a duration.
func (c Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.Upstream.TimeoutSeconds) * time.Second
}

// RaceDeadline converts the race deadline into a duration.
func (c Config) RaceDeadline() time.Duration {
	return time.Duration(c.Race.DeadlineMs) * time.Millisecond
}

// RaceStagger converts the launch stagger into a duration.
func (c Config) RaceStagger() time.Duration {
	return time.Duration(c.Race.StaggerMs) * time.Millisecond
}
