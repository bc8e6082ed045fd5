// Package tools defines the request and response schemas of the lexsummary
// MCP tools.
package tools

import "github.com/localrivet/lexsummary/internal/lexrank"

const (
	// ToolSummarizeText is the name of the summarize_text MCP tool
	ToolSummarizeText = "summarize_text"

	// ToolSummarizeBatch is the name of the summarize_batch MCP tool
	ToolSummarizeBatch = "summarize_batch"

	// ToolGetSummary is the name of the get_summary MCP tool
	ToolGetSummary = "get_summary"

	// ToolListSummaries is the name of the list_summaries MCP tool
	ToolListSummaries = "list_summaries"

	// ToolDeleteSummary is the name of the delete_summary MCP tool
	ToolDeleteSummary = "delete_summary"

	// ToolClearSummaries is the name of the clear_summaries MCP tool
	ToolClearSummaries = "clear_summaries"

	// ToolHealth is the name of the summarizer_health MCP tool
	ToolHealth = "summarizer_health"

	// DefaultListLimit is used when list_summaries has no limit
	DefaultListLimit = 20

	// MaxBatchDocuments bounds a single summarize_batch call
	MaxBatchDocuments = 50

	// ClearConfirmation must be sent to clear_summaries
	ClearConfirmation = "confirm"

	StatusSuccess = "success"
	StatusError   = "error"
)

// SummarizeTextRequest defines the input schema for summarize_text tool
type SummarizeTextRequest struct {
	// Text is the document to summarize
	Text string `json:"text"`

	// Title is used as the summary title; empty means "Text Summary"
	Title string `json:"title,omitempty"`

	// MaxSentences caps selected sentences; zero uses the configured default
	MaxSentences int `json:"max_sentences,omitempty"`
}

// SummarizeTextResponse defines the output schema for summarize_text tool
type SummarizeTextResponse struct {
	Status  string                 `json:"status"`
	ID      string                 `json:"id,omitempty"`
	Cached  bool                   `json:"cached"`
	Summary *lexrank.SummaryResult `json:"summary,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Code    string                 `json:"code,omitempty"`
}

// SummarizeBatchRequest defines the input schema for summarize_batch tool
type SummarizeBatchRequest struct {
	Documents []SummarizeTextRequest `json:"documents"`
}

// BatchResult is one document's result in a summarize_batch response
type BatchResult struct {
	ID      string                `json:"id"`
	Cached  bool                  `json:"cached"`
	Summary lexrank.SummaryResult `json:"summary"`
}

// SummarizeBatchResponse defines the output schema for summarize_batch tool
type SummarizeBatchResponse struct {
	Status  string        `json:"status"`
	Results []BatchResult `json:"results"`
	Error   string        `json:"error,omitempty"`
	Code    string        `json:"code,omitempty"`
}

// GetSummaryRequest defines the input schema for get_summary tool
type GetSummaryRequest struct {
	ID string `json:"id"`
}

// GetSummaryResponse defines the output schema for get_summary tool
type GetSummaryResponse struct {
	Status    string                 `json:"status"`
	ID        string                 `json:"id,omitempty"`
	CreatedAt string                 `json:"created_at,omitempty"`
	Summary   *lexrank.SummaryResult `json:"summary,omitempty"`
	Error     string                 `json:"error,omitempty"`
	Code      string                 `json:"code,omitempty"`
}

// ListSummariesRequest defines the input schema for list_summaries tool
type ListSummariesRequest struct {
	// Limit is the maximum number of entries; zero uses DefaultListLimit
	Limit int `json:"limit,omitempty"`
}

// SummaryEntry is one row of a list_summaries response
type SummaryEntry struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	TotalSentences int     `json:"total_sentences"`
	SummaryRatio   float64 `json:"summary_ratio"`
	CreatedAt      string  `json:"created_at"`
}

// ListSummariesResponse defines the output schema for list_summaries tool
type ListSummariesResponse struct {
	Status    string         `json:"status"`
	Summaries []SummaryEntry `json:"summaries"`
	Error     string         `json:"error,omitempty"`
	Code      string         `json:"code,omitempty"`
}

// DeleteSummaryRequest defines the input schema for delete_summary tool
type DeleteSummaryRequest struct {
	ID string `json:"id"`
}

// DeleteSummaryResponse defines the output schema for delete_summary tool
type DeleteSummaryResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Code   string `json:"code,omitempty"`
}

// ClearSummariesRequest defines the input schema for clear_summaries tool
type ClearSummariesRequest struct {
	// Confirmation must equal ClearConfirmation
	Confirmation string `json:"confirmation"`
}

// ClearSummariesResponse defines the output schema for clear_summaries tool
type ClearSummariesResponse struct {
	Status       string `json:"status"`
	DeletedCount int    `json:"deleted_count"`
	Error        string `json:"error,omitempty"`
	Code         string `json:"code,omitempty"`
}

// HealthRequest defines the input schema for summarizer_health tool
type HealthRequest struct{}

// HealthResponse defines the output schema for summarizer_health tool
type HealthResponse struct {
	Status string `json:"status"`
	// Report is the health report as indented JSON
	Report string `json:"report,omitempty"`
	Error  string `json:"error,omitempty"`
	Code   string `json:"code,omitempty"`
}
