package summarystore

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"crawshaw.io/sqlite"
	"github.com/google/uuid"

	"github.com/localrivet/lexsummary/internal/errortypes"
)

// SQLiteSummaryStore is an implementation of SummaryStore that uses SQLite.
// A single connection is shared and guarded by a mutex.
type SQLiteSummaryStore struct {
	conn   *sqlite.Conn
	dbPath string
	mu     sync.Mutex
}

// NewSQLiteSummaryStore creates a new SQLiteSummaryStore instance.
func NewSQLiteSummaryStore() *SQLiteSummaryStore {
	return &SQLiteSummaryStore{}
}

// Initialize initializes the store with the given database path.
func (s *SQLiteSummaryStore) Initialize(dbPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dbPath = dbPath

	conn, err := sqlite.OpenConn(dbPath, sqlite.SQLITE_OPEN_CREATE|sqlite.SQLITE_OPEN_READWRITE)
	if err != nil {
		return errortypes.DatabaseError(err, "failed to open SQLite database").WithField("path", dbPath)
	}
	s.conn = conn

	if err := s.createTable(); err != nil {
		s.conn.Close()
		s.conn = nil
		return errortypes.DatabaseError(err, "failed to create table").WithField("path", dbPath)
	}

	return nil
}

func (s *SQLiteSummaryStore) createTable() error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS summaries (
		id TEXT PRIMARY KEY,
		cache_key TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		result_json TEXT NOT NULL,
		total_sentences INTEGER NOT NULL,
		summary_ratio REAL NOT NULL,
		created_at INTEGER NOT NULL
	);`

	return s.exec(createTableSQL)
}

func (s *SQLiteSummaryStore) exec(query string) error {
	stmt, err := s.conn.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Reset()

	if _, err := stmt.Step(); err != nil {
		return fmt.Errorf("failed to execute statement: %w", err)
	}
	return nil
}

// Close closes the store and releases any resources.
func (s *SQLiteSummaryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

func (s *SQLiteSummaryStore) ready() error {
	if s.conn == nil {
		return errortypes.DatabaseError(errors.New("store is not initialized"), "summary store unavailable")
	}
	return nil
}

// Store saves rec. The first record stored under a cache key wins: a later
// record with the same key is not written and the existing one is returned,
// so IDs handed out earlier stay valid.
func (s *SQLiteSummaryStore) Store(rec Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return Record{}, err
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	resultJSON, err := json.Marshal(rec.Result)
	if err != nil {
		return Record{}, errortypes.EncodingError(err, "failed to encode summary").WithField("id", rec.ID)
	}

	insertSQL := `
	INSERT INTO summaries (id, cache_key, title, result_json, total_sentences, summary_ratio, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(cache_key) DO NOTHING;`

	stmt, err := s.conn.Prepare(insertSQL)
	if err != nil {
		return Record{}, errortypes.DatabaseError(err, "failed to prepare insert statement")
	}
	defer stmt.Reset()

	stmt.BindText(1, rec.ID)
	stmt.BindText(2, rec.Key)
	stmt.BindText(3, rec.Title)
	stmt.BindText(4, string(resultJSON))
	stmt.BindInt64(5, int64(rec.Result.TotalSentences))
	stmt.BindFloat(6, rec.Result.SummaryRatio)
	stmt.BindInt64(7, rec.CreatedAt.UnixNano())

	if _, err := stmt.Step(); err != nil {
		return Record{}, errortypes.DatabaseError(err, "failed to insert summary").WithField("id", rec.ID)
	}

	if s.conn.Changes() == 0 {
		return s.queryOne(selectByKeySQL, rec.Key)
	}
	return rec, nil
}

const (
	selectByKeySQL = `
	SELECT id, cache_key, title, result_json, created_at FROM summaries
	WHERE cache_key = ?;`

	selectByIDSQL = `
	SELECT id, cache_key, title, result_json, created_at FROM summaries
	WHERE id = ?;`
)

// GetByKey returns the record stored under a cache key.
func (s *SQLiteSummaryStore) GetByKey(key string) (Record, error) {
	return s.getOne(selectByKeySQL, key)
}

// Get returns the record with the given ID.
func (s *SQLiteSummaryStore) Get(id string) (Record, error) {
	return s.getOne(selectByIDSQL, id)
}

func (s *SQLiteSummaryStore) getOne(query, arg string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return Record{}, err
	}
	return s.queryOne(query, arg)
}

// queryOne runs a single-row select. The caller holds s.mu.
func (s *SQLiteSummaryStore) queryOne(query, arg string) (Record, error) {
	stmt, err := s.conn.Prepare(query)
	if err != nil {
		return Record{}, errortypes.DatabaseError(err, "failed to prepare select statement")
	}
	defer stmt.Reset()

	stmt.BindText(1, arg)

	hasRow, err := stmt.Step()
	if err != nil {
		return Record{}, errortypes.DatabaseError(err, "failed to execute select statement")
	}
	if !hasRow {
		return Record{}, errortypes.NotFoundError(ErrNotFound, "no stored summary").WithField("lookup", arg)
	}

	rec := Record{
		ID:        stmt.ColumnText(0),
		Key:       stmt.ColumnText(1),
		Title:     stmt.ColumnText(2),
		CreatedAt: time.Unix(0, stmt.ColumnInt64(4)),
	}
	if err := json.Unmarshal([]byte(stmt.ColumnText(3)), &rec.Result); err != nil {
		return Record{}, errortypes.EncodingError(err, "failed to decode stored summary").WithField("id", rec.ID)
	}

	return rec, nil
}

// List returns up to limit entries, newest first. A limit of zero or less
// returns every entry.
func (s *SQLiteSummaryStore) List(limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	selectSQL := `
	SELECT id, title, total_sentences, summary_ratio, created_at FROM summaries
	ORDER BY created_at DESC, id
	LIMIT ?;`

	stmt, err := s.conn.Prepare(selectSQL)
	if err != nil {
		return nil, errortypes.DatabaseError(err, "failed to prepare list statement")
	}
	defer stmt.Reset()

	stmt.BindInt64(1, int64(limit))

	entries := []Entry{}
	for {
		hasRow, err := stmt.Step()
		if err != nil {
			return nil, errortypes.DatabaseError(err, "failed to execute list statement")
		}
		if !hasRow {
			break
		}

		entries = append(entries, Entry{
			ID:             stmt.ColumnText(0),
			Title:          stmt.ColumnText(1),
			TotalSentences: int(stmt.ColumnInt64(2)),
			SummaryRatio:   stmt.ColumnFloat(3),
			CreatedAt:      time.Unix(0, stmt.ColumnInt64(4)),
		})
	}

	return entries, nil
}

// Delete removes the record with the given ID.
func (s *SQLiteSummaryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return err
	}

	stmt, err := s.conn.Prepare(`DELETE FROM summaries WHERE id = ?;`)
	if err != nil {
		return errortypes.DatabaseError(err, "failed to prepare delete statement")
	}
	defer stmt.Reset()

	stmt.BindText(1, id)
	if _, err := stmt.Step(); err != nil {
		return errortypes.DatabaseError(err, "failed to delete summary").WithField("id", id)
	}
	if s.conn.Changes() == 0 {
		return errortypes.NotFoundError(ErrNotFound, "no stored summary").WithField("id", id)
	}

	return nil
}

// Clear removes every record and reports how many were deleted.
func (s *SQLiteSummaryStore) Clear() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return 0, err
	}

	if err := s.exec(`DELETE FROM summaries;`); err != nil {
		return 0, errortypes.DatabaseError(err, "failed to clear summaries")
	}

	return s.conn.Changes(), nil
}
