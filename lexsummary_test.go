package lexsummary

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

var sampleText = strings.Join([]string{
	"Regular exercise strengthens the heart, improves circulation, and helps people maintain a healthy body weight throughout their adult lives.",
	"Nutritionists recommend a balanced diet rich in vegetables, whole grains, and lean proteins to support long term physical wellbeing.",
	"Adequate sleep allows the brain to consolidate memories, regulate mood, and recover from the cognitive demands of a busy working day.",
}, " ")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSummarize(t *testing.T) {
	result := Summarize(sampleText, "Health", 0)
	if result.Title != "Health" {
		t.Errorf("Expected title 'Health', got %q", result.Title)
	}
	if result.TotalSentences != 3 {
		t.Errorf("Expected 3 sentences, got %d", result.TotalSentences)
	}
	if len(result.KeyPoints) == 0 {
		t.Error("Expected key points")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Store.SQLitePath == "" {
		t.Error("Expected a default SQLite path")
	}
	if cfg.Summarizer.MaxSentences != 5 {
		t.Errorf("Expected default max sentences 5, got %d", cfg.Summarizer.MaxSentences)
	}
}

func TestServerWithStore(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Store.SQLitePath = filepath.Join(t.TempDir(), "summaries.db")

	srv, err := NewServer(ServerOptions{Config: cfg, Logger: testLogger()})
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	defer srv.Stop()

	if srv.GetStore() == nil {
		t.Fatal("Expected a store when persistence is enabled")
	}

	id, result, err := srv.SummarizeText(context.Background(), sampleText, "Health", 3)
	if err != nil {
		t.Fatalf("SummarizeText failed: %v", err)
	}
	if id == "" {
		t.Fatal("Expected a summary ID")
	}

	rec, err := srv.GetStore().Get(id)
	if err != nil {
		t.Fatalf("Stored summary not found: %v", err)
	}
	if rec.Result.Title != result.Title || len(rec.Result.KeyPoints) != len(result.KeyPoints) {
		t.Errorf("Stored result %+v does not match %+v", rec.Result, result)
	}

	again, _, err := srv.SummarizeText(context.Background(), sampleText, "Health", 3)
	if err != nil {
		t.Fatalf("Second SummarizeText failed: %v", err)
	}
	if again != id {
		t.Errorf("Expected cached ID %s, got %s", id, again)
	}
}

func TestServerWithoutStore(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Store.Enabled = false

	srv, err := NewServer(ServerOptions{Config: cfg, Logger: testLogger()})
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}
	defer srv.Stop()

	if srv.GetStore() != nil {
		t.Error("Expected no store when persistence is disabled")
	}
	if srv.GetSummarizer().StoreEnabled() {
		t.Error("Summarizer should not report a store")
	}

	if _, _, err := srv.SummarizeText(context.Background(), "", "", 0); err == nil {
		t.Error("Expected an error for empty text")
	}
}
