// Package summarizer provides the summarization service used by the tool
// server and the CLI: request validation, caching, persistence and metrics
// around the extractive engine.
package summarizer

import (
	"context"
	"errors"
	"time"

	"github.com/localrivet/lexsummary/internal/lexrank"
)

// Errors returned for rejected requests. They are wrapped in validation
// errors from errortypes.
var (
	ErrEmptyText           = errors.New("text is empty")
	ErrTextTooLong         = errors.New("text exceeds the maximum length")
	ErrInvalidMaxSentences = errors.New("max sentences must not be negative")
)

// Request is one document to summarize.
type Request struct {
	Text  string
	Title string
	// MaxSentences of zero uses the configured default.
	MaxSentences int
}

// Summary is the result of summarizing one request.
type Summary struct {
	ID        string
	Key       string
	Result    lexrank.SummaryResult
	CreatedAt time.Time
	// Cached reports whether the result came from the cache or the store.
	Cached bool
}

// Summarizer defines the interface for summarizing text content.
type Summarizer interface {
	// Initialize sets up the summarizer with any required configuration.
	Initialize() error

	// Summarize validates req and returns its summary.
	Summarize(ctx context.Context, req Request) (*Summary, error)
}
