// Package summarystore persists generated summaries so repeated requests
// and later lookups by ID survive process restarts.
package summarystore

import (
	"errors"
	"time"

	"github.com/localrivet/lexsummary/internal/lexrank"
)

// ErrNotFound is returned when no summary matches an ID or cache key.
var ErrNotFound = errors.New("summary not found")

// Record is one stored summary.
type Record struct {
	ID        string
	Key       string
	Title     string
	Result    lexrank.SummaryResult
	CreatedAt time.Time
}

// Entry is the listing view of a stored summary.
type Entry struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	TotalSentences int       `json:"total_sentences"`
	SummaryRatio   float64   `json:"summary_ratio"`
	CreatedAt      time.Time `json:"created_at"`
}

// SummaryStore defines the interface for storing and retrieving summaries.
type SummaryStore interface {
	// Initialize opens the store at dbPath, creating it if needed.
	Initialize(dbPath string) error

	// Close closes the store and releases any resources.
	Close() error

	// Store saves rec unless a record with the same cache key already exists,
	// in which case that record is returned unchanged. An empty ID is filled
	// in before saving.
	Store(rec Record) (Record, error)

	// GetByKey returns the record stored under a cache key.
	GetByKey(key string) (Record, error)

	// Get returns the record with the given ID.
	Get(id string) (Record, error)

	// List returns up to limit entries, newest first.
	List(limit int) ([]Entry, error)

	// Delete removes the record with the given ID.
	Delete(id string) error

	// Clear removes every record and reports how many were deleted.
	Clear() (int, error)
}
