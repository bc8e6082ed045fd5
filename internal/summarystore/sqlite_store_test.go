package summarystore

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/localrivet/lexsummary/internal/errortypes"
	"github.com/localrivet/lexsummary/internal/lexrank"
)

func newTestStore(t *testing.T) *SQLiteSummaryStore {
	t.Helper()

	store := NewSQLiteSummaryStore()
	if err := store.Initialize(filepath.Join(t.TempDir(), "summaries.db")); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleResult(title string) lexrank.SummaryResult {
	return lexrank.SummaryResult{
		Title:     title,
		KeyPoints: []string{"First point of the summary.", "Second point of the summary."},
		Sections: []lexrank.Section{
			{Heading: lexrank.MainContentHeading, HeadingLevel: 3, Content: "Remaining content."},
		},
		TotalSentences: 12,
		SummaryRatio:   0.25,
	}
}

func TestStoreAndGet(t *testing.T) {
	store := newTestStore(t)

	saved, err := store.Store(Record{Key: "key-1", Title: "Report", Result: sampleResult("Report")})
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if saved.ID == "" || saved.CreatedAt.IsZero() {
		t.Fatalf("Store() did not fill ID and timestamp: %+v", saved)
	}

	byID, err := store.Get(saved.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !reflect.DeepEqual(byID.Result, saved.Result) {
		t.Errorf("Get() result = %+v, want %+v", byID.Result, saved.Result)
	}
	if byID.Key != "key-1" || byID.Title != "Report" {
		t.Errorf("Get() = %+v", byID)
	}
	if !byID.CreatedAt.Equal(saved.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", byID.CreatedAt, saved.CreatedAt)
	}

	byKey, err := store.GetByKey("key-1")
	if err != nil {
		t.Fatalf("GetByKey() error = %v", err)
	}
	if byKey.ID != saved.ID {
		t.Errorf("GetByKey() ID = %q, want %q", byKey.ID, saved.ID)
	}
}

func TestStoreKeepsFirstRecordForKey(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Store(Record{Key: "shared", Title: "Old", Result: sampleResult("Old")})
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	second, err := store.Store(Record{Key: "shared", Title: "New", Result: sampleResult("New")})
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	if second.ID != first.ID || second.Title != "Old" {
		t.Errorf("second Store() = %+v, want existing record %s", second, first.ID)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", second.CreatedAt, first.CreatedAt)
	}
	if _, err := store.Get(first.ID); err != nil {
		t.Errorf("Get(first id) error = %v", err)
	}

	entries, err := store.List(-1)
	if err != nil || len(entries) != 1 {
		t.Errorf("List() = %+v, %v, want one entry", entries, err)
	}
}

func TestNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get("missing")
	if !errors.Is(err, ErrNotFound) || !errortypes.IsNotFoundError(err) {
		t.Errorf("Get() error = %v, want not found", err)
	}
	if _, err := store.GetByKey("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByKey() error = %v, want not found", err)
	}
	if err := store.Delete("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() error = %v, want not found", err)
	}
}

func TestListDeleteClear(t *testing.T) {
	store := newTestStore(t)

	base := time.Now()
	var ids []string
	for i, title := range []string{"one", "two", "three"} {
		rec, err := store.Store(Record{
			Key:       title,
			Title:     title,
			Result:    sampleResult(title),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("Store() error = %v", err)
		}
		ids = append(ids, rec.ID)
	}

	entries, err := store.List(2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 2 || entries[0].Title != "three" || entries[1].Title != "two" {
		t.Errorf("List(2) = %+v, want newest first", entries)
	}
	if entries[0].TotalSentences != 12 || entries[0].SummaryRatio != 0.25 {
		t.Errorf("entry = %+v", entries[0])
	}

	if err := store.Delete(ids[0]); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	all, err := store.List(0)
	if err != nil || len(all) != 2 {
		t.Fatalf("List(0) = %+v, %v", all, err)
	}

	deleted, err := store.Clear()
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if deleted != 2 {
		t.Errorf("Clear() = %d, want 2", deleted)
	}
	if all, _ := store.List(0); len(all) != 0 {
		t.Errorf("List() after Clear() = %+v", all)
	}
}

func TestClosedStore(t *testing.T) {
	store := NewSQLiteSummaryStore()

	if _, err := store.Store(Record{Key: "k"}); !errortypes.IsDatabaseError(err) {
		t.Errorf("Store() on uninitialized store error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Errorf("Close() on uninitialized store error = %v", err)
	}
}
