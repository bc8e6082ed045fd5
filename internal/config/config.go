package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/localrivet/configurator"
)

// Config represents the lexsummary configuration
type Config struct {
	// Store contains storage-related configuration.
	Store struct {
		// SQLitePath is the path to the SQLite database file.
		SQLitePath string `json:"sqlite_path" env:"SQLITE_PATH" validate:"required"`

		// Enabled turns persistence of summaries on or off.
		Enabled bool `json:"enabled" env:"STORE_ENABLED"`
	} `json:"store"`

	// Summarizer contains summarization-related configuration.
	Summarizer struct {
		// MaxSentences is used when a request does not name a summary length.
		MaxSentences int `json:"max_sentences" env:"MAX_SENTENCES" validate:"min:1"`

		// MaxTextLength is the longest accepted input, in characters.
		MaxTextLength int `json:"max_text_length" env:"MAX_TEXT_LENGTH" validate:"min:1"`

		// CacheCapacity bounds the in-memory result cache.
		CacheCapacity int `json:"cache_capacity" env:"CACHE_CAPACITY" validate:"min:1"`

		// CacheTTLSeconds is how long a cached result stays valid.
		CacheTTLSeconds int `json:"cache_ttl_seconds" env:"CACHE_TTL_SECONDS" validate:"min:1"`

		// BatchWorkers bounds how many documents of a batch run at once.
		BatchWorkers int `json:"batch_workers" env:"BATCH_WORKERS" validate:"min:1"`
	} `json:"summarizer"`

	// Logging contains logging-related configuration.
	Logging struct {
		// Level is the minimum log level to display ("debug", "info", "warn", "error").
		Level string `json:"level" env:"LOG_LEVEL" validate:"required"`

		// Format is the log format to use ("text", "json").
		Format string `json:"format" env:"LOG_FORMAT"`

		// File, when set, sends logs to a rotating file instead of stderr.
		File string `json:"file" env:"LOG_FILE"`

		// MaxSizeMB is the size at which the log file is rotated.
		MaxSizeMB int `json:"max_size_mb" env:"LOG_MAX_SIZE_MB"`

		// MaxBackups is the number of rotated files to keep.
		MaxBackups int `json:"max_backups" env:"LOG_MAX_BACKUPS"`

		// MaxAgeDays is how long rotated files are kept.
		MaxAgeDays int `json:"max_age_days" env:"LOG_MAX_AGE_DAYS"`
	} `json:"logging"`

	// Internal state (not saved to config file)
	configPath     string       `json:"-"`
	mutex          sync.RWMutex `json:"-"`
	lastModifiedAt time.Time    `json:"-"`
}

// Default configuration values
const (
	DefaultConfigFilename  = ".lexsummaryconfig"
	DefaultSQLitePath      = ".lexsummary.db"
	DefaultMaxSentences    = 5
	DefaultMaxTextLength   = 100000
	DefaultCacheCapacity   = 1000
	DefaultCacheTTLSeconds = 24 * 60 * 60
	DefaultBatchWorkers    = 4
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultLogMaxSizeMB    = 10
	DefaultLogMaxBackups   = 3
	DefaultLogMaxAgeDays   = 28
)

// NewConfig creates a new Config instance with default values
func NewConfig() *Config {
	config := &Config{}
	config.Store.SQLitePath = DefaultSQLitePath
	config.Store.Enabled = true
	config.Summarizer.MaxSentences = DefaultMaxSentences
	config.Summarizer.MaxTextLength = DefaultMaxTextLength
	config.Summarizer.CacheCapacity = DefaultCacheCapacity
	config.Summarizer.CacheTTLSeconds = DefaultCacheTTLSeconds
	config.Summarizer.BatchWorkers = DefaultBatchWorkers
	config.Logging.Level = DefaultLogLevel
	config.Logging.Format = DefaultLogFormat
	config.Logging.MaxSizeMB = DefaultLogMaxSizeMB
	config.Logging.MaxBackups = DefaultLogMaxBackups
	config.Logging.MaxAgeDays = DefaultLogMaxAgeDays
	return config
}

// LoadConfig loads the configuration from the default path
func LoadConfig() (*Config, error) {
	return LoadConfigWithPath(DefaultConfigFilename)
}

// LoadConfigWithPath loads the configuration from a specific path.
// Environment variables prefixed with LEXSUMMARY_ override file values.
func LoadConfigWithPath(configPath string) (*Config, error) {
	// Configuration is loaded before the real logger exists, and stdout may
	// carry the MCP stdio transport.
	stdLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	cfg := NewConfig()

	if configPath == DefaultConfigFilename {
		foundPath, err := configurator.FindConfigFile(configPath)
		if err == nil {
			configPath = foundPath
			stdLogger.Debug("Found config file at " + foundPath)
		}
	}

	config := configurator.New(stdLogger).
		WithProvider(configurator.NewDefaultProvider())

	if _, err := os.Stat(configPath); err == nil {
		stdLogger.Info("Loading configuration", "path", configPath)
		config = config.WithProvider(configurator.NewFileProvider(configPath))
	} else {
		stdLogger.Info("Config file not found, using default configuration", "path", configPath)
	}

	config = config.
		WithProvider(configurator.NewEnvProvider("LEXSUMMARY")).
		WithValidator(configurator.NewDefaultValidator())

	if err := config.Load(context.Background(), cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg.configPath = configPath
	cfg.lastModifiedAt = time.Now()

	return cfg, nil
}

// SaveToFile saves the configuration to the specified file
func (c *Config) SaveToFile(path string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := configurator.SaveToFile(c, path, configurator.FormatJSON); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	c.configPath = path
	c.lastModifiedAt = time.Now()

	return nil
}

// Save saves the configuration to the path it was loaded from, or to the
// default file name when it was built in memory.
func (c *Config) Save() error {
	if c.configPath == "" {
		c.configPath = DefaultConfigFilename
	}
	return c.SaveToFile(c.configPath)
}

// GetConfigPath returns the path of the currently loaded configuration file
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// CacheTTL returns the cache lifetime as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Summarizer.CacheTTLSeconds) * time.Second
}
