// Package lexsummary summarizes plain text by picking its most central
// sentences with LexRank, and serves the summarizer as MCP tools.
package lexsummary

import (
	"context"
	"log/slog"

	"github.com/localrivet/lexsummary/internal/config"
	"github.com/localrivet/lexsummary/internal/errortypes"
	"github.com/localrivet/lexsummary/internal/lexrank"
	"github.com/localrivet/lexsummary/internal/server"
	"github.com/localrivet/lexsummary/internal/summarizer"
	"github.com/localrivet/lexsummary/internal/summarystore"
	"github.com/localrivet/lexsummary/internal/telemetry"
)

// Config represents the configuration for the lexsummary service.
type Config = config.Config

// SummaryResult is a structured summary.
type SummaryResult = lexrank.SummaryResult

// Section is one section of a SummaryResult.
type Section = lexrank.Section

// Summarize runs the engine directly, without caching or persistence.
// maxSentences <= 0 selects the default of five.
func Summarize(text, title string, maxSentences int) SummaryResult {
	return lexrank.Summarize(text, title, maxSentences)
}

// Server represents the lexsummary service.
type Server struct {
	config     *config.Config
	store      summarystore.SummaryStore
	summarizer *summarizer.LexRankSummarizer
	toolServer server.SummaryToolServer
	logger     *slog.Logger
}

// ServerOptions defines the options for creating a new Server.
type ServerOptions struct {
	Config     *Config      // Pre-filled config. If nil, ConfigPath is used.
	ConfigPath string       // Path to config file. Used if Config is nil. If both are empty, DefaultConfig() is used.
	Logger     *slog.Logger // External logger. If nil, slog.Default() is used.
}

// NewServer creates a new Server with the given options.
// If opts.Config is provided, it will be used directly.
// Otherwise, if opts.ConfigPath is provided, configuration will be loaded from that path.
// If neither is provided, DefaultConfig() will be used.
func NewServer(opts ServerOptions) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var cfg *Config
	var err error

	if opts.Config != nil {
		cfg = opts.Config
		logger.Info("Using provided Config object for server initialization")
	} else if opts.ConfigPath != "" {
		logger.Info("Loading configuration for server initialization", "path", opts.ConfigPath)
		cfg, err = config.LoadConfigWithPath(opts.ConfigPath)
		if err != nil {
			logger.Error("Failed to load configuration from path", "path", opts.ConfigPath, "error", err)
			return nil, errortypes.ConfigError(err, "Failed to load configuration from path: "+opts.ConfigPath)
		}
	} else {
		logger.Warn("No Config object or ConfigPath provided, using default configuration for server initialization")
		cfg = DefaultConfig()
	}

	store, sum, err := CreateComponents(cfg, logger)
	if err != nil {
		logger.Error("Failed to create components during server initialization", "error", err)
		return nil, err
	}

	logger.Info("Initializing summary tool server component")
	toolServer := server.NewSummaryToolServer(sum, logger.With("component", "server"))
	if err := toolServer.Initialize(); err != nil {
		if store != nil {
			store.Close()
		}
		return nil, errortypes.ConfigError(err, "Failed to initialize MCP summary tool server component")
	}

	logger.Info("lexsummary server successfully initialized")
	return &Server{
		config:     cfg,
		store:      store,
		summarizer: sum,
		toolServer: toolServer,
		logger:     logger,
	}, nil
}

// DefaultConfig returns the default configuration for the lexsummary service.
func DefaultConfig() *Config {
	return config.NewConfig()
}

// CreateComponents opens the store (when enabled) and builds the summarizer
// without creating a tool server. The returned store is nil when persistence
// is disabled.
func CreateComponents(cfg *Config, logger *slog.Logger) (summarystore.SummaryStore, *summarizer.LexRankSummarizer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var store summarystore.SummaryStore
	if cfg.Store.Enabled {
		logger.Info("Initializing SQLite summary store", "path", cfg.Store.SQLitePath)
		sqliteStore := summarystore.NewSQLiteSummaryStore()
		if err := sqliteStore.Initialize(cfg.Store.SQLitePath); err != nil {
			logger.Error("Failed to initialize SQLite summary store", "path", cfg.Store.SQLitePath, "error", err)
			return nil, nil, errortypes.DatabaseError(err, "Failed to initialize SQLite summary store")
		}
		store = sqliteStore
	} else {
		logger.Info("Summary store disabled")
	}

	sum := summarizer.NewLexRankSummarizer(summarizer.Options{
		MaxSentences:  cfg.Summarizer.MaxSentences,
		MaxTextLength: cfg.Summarizer.MaxTextLength,
		CacheCapacity: cfg.Summarizer.CacheCapacity,
		CacheTTL:      cfg.CacheTTL(),
		BatchWorkers:  cfg.Summarizer.BatchWorkers,
		Store:         store,
		Logger:        logger.With("component", "summarizer"),
		Metrics:       telemetry.NewMetricsCollector(),
	})
	if err := sum.Initialize(); err != nil {
		if store != nil {
			store.Close()
		}
		return nil, nil, errortypes.ConfigError(err, "Failed to initialize summarizer")
	}

	logger.Info("Components successfully initialized")
	return store, sum, nil
}

// Start starts the MCP server on stdio. It blocks until the client disconnects.
func (s *Server) Start() error {
	s.logger.Info("Starting lexsummary service")
	return s.toolServer.Start()
}

// Stop stops the tool server and closes the store.
func (s *Server) Stop() error {
	s.logger.Info("Stopping lexsummary service")
	if err := s.toolServer.Stop(); err != nil {
		s.logger.Error("Error stopping tool server", "error", err)
		return err
	}

	if s.store != nil {
		s.logger.Info("Closing store")
		if err := s.store.Close(); err != nil {
			s.logger.Error("Failed to close store", "error", err)
			return err
		}
	}

	s.logger.Info("lexsummary service stopped")
	return nil
}

// SummarizeText summarizes text through the caching summarizer and returns
// the result with its summary ID.
func (s *Server) SummarizeText(ctx context.Context, text, title string, maxSentences int) (string, SummaryResult, error) {
	summary, err := s.summarizer.Summarize(ctx, summarizer.Request{
		Text:         text,
		Title:        title,
		MaxSentences: maxSentences,
	})
	if err != nil {
		return "", SummaryResult{}, err
	}
	return summary.ID, summary.Result, nil
}

// GetStore returns the summary store, or nil when persistence is disabled.
func (s *Server) GetStore() summarystore.SummaryStore {
	return s.store
}

// GetSummarizer returns the summarizer instance used by the server.
func (s *Server) GetSummarizer() *summarizer.LexRankSummarizer {
	return s.summarizer
}

// GetConfig returns the configuration the server was built from.
func (s *Server) GetConfig() *Config {
	return s.config
}
