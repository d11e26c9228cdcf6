// Package config loads the site configuration from defaults, an optional
// config file and PORTFOLIO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Configuration validation errors.
var (
	ErrUnknownDatabaseDriver = errors.New("database.driver must be 'sqlite' or 'postgres'")
	ErrMissingDatabaseDSN    = errors.New("database.dsn is required")
	ErrUnknownStorageDriver  = errors.New("storage.driver must be 'local' or 's3'")
	ErrMissingBucket         = errors.New("storage.s3.bucket is required for the s3 driver")
	ErrInvalidRefresh        = errors.New("sync.refresh_interval must be positive")
	ErrInvalidConcurrency    = errors.New("translate.concurrency must be between 1 and 4")
	ErrInvalidLogLevel       = errors.New("log.level must be one of: debug, info, warn, error")
)

// Config is the complete site configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Storage   StorageConfig   `mapstructure:"storage"`
	AI        AIConfig        `mapstructure:"ai"`
	Sync      SyncConfig      `mapstructure:"sync"`
	Translate TranslateConfig `mapstructure:"translate"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	PublicURL       string        `mapstructure:"public_url"`
	Debug           bool          `mapstructure:"debug"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type StorageConfig struct {
	Driver string   `mapstructure:"driver"`
	Local  LocalFS  `mapstructure:"local"`
	S3     S3Bucket `mapstructure:"s3"`
}

// LocalFS stores uploaded images on disk and serves them under URLPrefix.
type LocalFS struct {
	Dir       string `mapstructure:"dir"`
	URLPrefix string `mapstructure:"url_prefix"`
}

// S3Bucket describes any S3-compatible bucket (AWS, Supabase Storage, MinIO).
type S3Bucket struct {
	Bucket         string `mapstructure:"bucket"`
	Region         string `mapstructure:"region"`
	Endpoint       string `mapstructure:"endpoint"`
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	PublicBaseURL  string `mapstructure:"public_base_url"`
	ForcePathStyle bool   `mapstructure:"force_path_style"`
}

type AIConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type SyncConfig struct {
	RefreshInterval  time.Duration `mapstructure:"refresh_interval"`
	MaxAge           time.Duration `mapstructure:"max_age"`
	AdminIdleTimeout time.Duration `mapstructure:"admin_idle_timeout"`
}

type TranslateConfig struct {
	Concurrency    int           `mapstructure:"concurrency"`
	ActiveWindow   time.Duration `mapstructure:"active_window"`
	QueueSize      int           `mapstructure:"queue_size"`
	WriteWorkers   int           `mapstructure:"write_workers"`
	DeadLetterPath string        `mapstructure:"dead_letter_path"`
}

type AdminConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":6835")
	v.SetDefault("server.public_url", "http://localhost:6835")
	v.SetDefault("server.debug", false)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "data/portfolio.db")

	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.local.dir", "data/uploads")
	v.SetDefault("storage.local.url_prefix", "/uploads")
	v.SetDefault("storage.s3.bucket", "blog-images")
	v.SetDefault("storage.s3.region", "us-east-1")
	v.SetDefault("storage.s3.endpoint", "")
	v.SetDefault("storage.s3.access_key", "")
	v.SetDefault("storage.s3.secret_key", "")
	v.SetDefault("storage.s3.public_base_url", "")
	v.SetDefault("storage.s3.force_path_style", true)

	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", "gemini-2.5-flash")
	v.SetDefault("ai.timeout", 60*time.Second)

	v.SetDefault("sync.refresh_interval", 5*time.Second)
	v.SetDefault("sync.max_age", time.Minute)
	v.SetDefault("sync.admin_idle_timeout", 2*time.Minute)

	v.SetDefault("translate.concurrency", 1)
	v.SetDefault("translate.active_window", 10*time.Minute)
	v.SetDefault("translate.queue_size", 64)
	v.SetDefault("translate.write_workers", 2)
	v.SetDefault("translate.dead_letter_path", "data/deadletter.db")

	v.SetDefault("admin.email", "")
	v.SetDefault("admin.password", "")

	v.SetDefault("log.level", "info")
}

// Load reads the configuration. When path is empty a file named config.* is
// looked up in the working directory and /etc/portfolio; a missing file is
// not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("PORTFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/portfolio")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.Admin.Email = strings.ToLower(strings.TrimSpace(cfg.Admin.Email))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration for values the site cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("%w: got %q", ErrUnknownDatabaseDriver, c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return ErrMissingDatabaseDSN
	}

	switch c.Storage.Driver {
	case "local":
	case "s3":
		if c.Storage.S3.Bucket == "" {
			return ErrMissingBucket
		}
	default:
		return fmt.Errorf("%w: got %q", ErrUnknownStorageDriver, c.Storage.Driver)
	}

	if c.Sync.RefreshInterval <= 0 {
		return ErrInvalidRefresh
	}
	if c.Translate.Concurrency < 1 || c.Translate.Concurrency > 4 {
		return ErrInvalidConcurrency
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}

	return nil
}

// AIEnabled reports whether an AI API key is configured.
func (c *Config) AIEnabled() bool {
	return strings.TrimSpace(c.AI.APIKey) != ""
}
