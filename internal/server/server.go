// Package server provides the MCP server implementation for the lexsummary service.
package server

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/localrivet/gomcp/server"

	"github.com/localrivet/lexsummary/internal/errortypes"
	"github.com/localrivet/lexsummary/internal/summarizer"
	"github.com/localrivet/lexsummary/internal/summarystore"
	"github.com/localrivet/lexsummary/internal/tools"
)

// Common server error types
var (
	ErrServerNotInitialized = errors.New("server not initialized")
	ErrMissingDependencies  = errors.New("one or more required dependencies are nil")
)

// SummaryService is what the tool handlers need from the summarizer.
type SummaryService interface {
	Summarize(ctx context.Context, req summarizer.Request) (*summarizer.Summary, error)
	SummarizeBatch(ctx context.Context, reqs []summarizer.Request) ([]*summarizer.Summary, error)
	Get(id string) (*summarizer.Summary, error)
	List(limit int) ([]summarystore.Entry, error)
	Delete(id string) error
	Clear() (int, error)
	Health() (*summarizer.HealthReport, error)
}

// SummaryToolServer defines the interface for the MCP server that handles
// summarization tool calls from MCP clients.
type SummaryToolServer interface {
	// Initialize initializes the server with dependencies and configurations.
	Initialize() error

	// Start starts the MCP server on the specified transport.
	Start() error

	// Stop gracefully shuts down the MCP server.
	Stop() error
}

// MCPSummaryToolServer implements SummaryToolServer over gomcp.
type MCPSummaryToolServer struct {
	service   SummaryService
	logger    *slog.Logger
	baseCtx   context.Context
	cancel    context.CancelFunc
	mcpServer server.Server
}

// NewSummaryToolServer creates a new MCPSummaryToolServer instance.
func NewSummaryToolServer(service SummaryService, logger *slog.Logger) *MCPSummaryToolServer {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &MCPSummaryToolServer{
		service: service,
		logger:  logger,
		baseCtx: ctx,
		cancel:  cancel,
	}
}

// Initialize registers the tools.
func (s *MCPSummaryToolServer) Initialize() error {
	s.logger.Info("Initializing MCP Summary Tool Server")

	if s.service == nil {
		return errortypes.ConfigError(ErrMissingDependencies, "server initialization failed")
	}

	srv := server.NewServer("lexsummary")

	srv = srv.Tool(tools.ToolSummarizeText, "Summarize a text document into key points and sections",
		s.handleSummarizeText)
	srv = srv.Tool(tools.ToolSummarizeBatch, "Summarize several documents in one call",
		s.handleSummarizeBatch)
	srv = srv.Tool(tools.ToolGetSummary, "Fetch a stored summary by ID",
		s.handleGetSummary)
	srv = srv.Tool(tools.ToolListSummaries, "List stored summaries, newest first",
		s.handleListSummaries)
	srv = srv.Tool(tools.ToolDeleteSummary, "Delete a stored summary by ID",
		s.handleDeleteSummary)
	srv = srv.Tool(tools.ToolClearSummaries, "Delete every stored summary",
		s.handleClearSummaries)
	srv = srv.Tool(tools.ToolHealth, "Report summarizer health and metrics",
		s.handleHealth)

	s.mcpServer = srv
	s.logger.Info("MCP Summary Tool Server initialized successfully", "tool_count", 7)
	return nil
}

// Start starts the MCP server on the stdio transport. It blocks until the
// client disconnects.
func (s *MCPSummaryToolServer) Start() error {
	if s.mcpServer == nil {
		return errortypes.ConfigError(ErrServerNotInitialized, "cannot start server")
	}

	s.logger.Info("Starting MCP Summary Tool Server")
	return s.mcpServer.AsStdio().Run()
}

// Stop cancels in-flight summarization. The transport exits when stdin closes.
func (s *MCPSummaryToolServer) Stop() error {
	s.logger.Info("Stopping MCP Summary Tool Server")
	s.cancel()
	return nil
}

func toRequest(req tools.SummarizeTextRequest) summarizer.Request {
	return summarizer.Request{
		Text:         req.Text,
		Title:        strings.TrimSpace(req.Title),
		MaxSentences: req.MaxSentences,
	}
}

func (s *MCPSummaryToolServer) handleSummarizeText(ctx *server.Context, req tools.SummarizeTextRequest) (tools.SummarizeTextResponse, error) {
	s.logger.Info("Processing summarize_text request", "text_length", len(req.Text), "max_sentences", req.MaxSentences)

	response := tools.SummarizeTextResponse{Status: tools.StatusSuccess}

	summary, err := s.service.Summarize(s.baseCtx, toRequest(req))
	if err != nil {
		e := toolError(s.logger, err)
		response.Status = tools.StatusError
		response.Error, response.Code = e.Message, e.Code
		return response, nil
	}

	response.ID = summary.ID
	response.Cached = summary.Cached
	response.Summary = &summary.Result
	s.logger.Info("Successfully summarized text",
		"id", summary.ID,
		"cached", summary.Cached,
		"key_points", len(summary.Result.KeyPoints))

	return response, nil
}

func (s *MCPSummaryToolServer) handleSummarizeBatch(ctx *server.Context, req tools.SummarizeBatchRequest) (tools.SummarizeBatchResponse, error) {
	s.logger.Info("Processing summarize_batch request", "documents", len(req.Documents))

	response := tools.SummarizeBatchResponse{Status: tools.StatusSuccess, Results: []tools.BatchResult{}}

	if len(req.Documents) == 0 || len(req.Documents) > tools.MaxBatchDocuments {
		e := toolError(s.logger, errortypes.ValidationError(
			errors.New("documents must contain between 1 and 50 entries"), "invalid summarize_batch request").
			WithField("documents", len(req.Documents)))
		response.Status = tools.StatusError
		response.Error, response.Code = e.Message, e.Code
		return response, nil
	}

	reqs := make([]summarizer.Request, len(req.Documents))
	for i, doc := range req.Documents {
		reqs[i] = toRequest(doc)
	}

	summaries, err := s.service.SummarizeBatch(s.baseCtx, reqs)
	if err != nil {
		e := toolError(s.logger, err)
		response.Status = tools.StatusError
		response.Error, response.Code = e.Message, e.Code
		return response, nil
	}

	for _, summary := range summaries {
		response.Results = append(response.Results, tools.BatchResult{
			ID:      summary.ID,
			Cached:  summary.Cached,
			Summary: summary.Result,
		})
	}
	s.logger.Info("Successfully summarized batch", "documents", len(summaries))

	return response, nil
}

func (s *MCPSummaryToolServer) handleGetSummary(ctx *server.Context, req tools.GetSummaryRequest) (tools.GetSummaryResponse, error) {
	s.logger.Info("Processing get_summary request", "id", req.ID)

	response := tools.GetSummaryResponse{Status: tools.StatusSuccess}

	if req.ID == "" {
		e := toolError(s.logger, errortypes.ValidationError(errors.New("id cannot be empty"), "invalid get_summary request"))
		response.Status = tools.StatusError
		response.Error, response.Code = e.Message, e.Code
		return response, nil
	}

	summary, err := s.service.Get(req.ID)
	if err != nil {
		e := toolError(s.logger, err)
		response.Status = tools.StatusError
		response.Error, response.Code = e.Message, e.Code
		return response, nil
	}

	response.ID = summary.ID
	response.CreatedAt = summary.CreatedAt.UTC().Format(time.RFC3339)
	response.Summary = &summary.Result
	return response, nil
}

func (s *MCPSummaryToolServer) handleListSummaries(ctx *server.Context, req tools.ListSummariesRequest) (tools.ListSummariesResponse, error) {
	s.logger.Info("Processing list_summaries request", "limit", req.Limit)

	response := tools.ListSummariesResponse{Status: tools.StatusSuccess, Summaries: []tools.SummaryEntry{}}

	limit := req.Limit
	if limit <= 0 {
		limit = tools.DefaultListLimit
		s.logger.Debug("Using default limit for list_summaries", "limit", limit)
	}

	entries, err := s.service.List(limit)
	if err != nil {
		e := toolError(s.logger, err)
		response.Status = tools.StatusError
		response.Error, response.Code = e.Message, e.Code
		return response, nil
	}

	for _, entry := range entries {
		response.Summaries = append(response.Summaries, tools.SummaryEntry{
			ID:             entry.ID,
			Title:          entry.Title,
			TotalSentences: entry.TotalSentences,
			SummaryRatio:   entry.SummaryRatio,
			CreatedAt:      entry.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	return response, nil
}

func (s *MCPSummaryToolServer) handleDeleteSummary(ctx *server.Context, req tools.DeleteSummaryRequest) (tools.DeleteSummaryResponse, error) {
	s.logger.Info("Processing delete_summary request", "id", req.ID)

	response := tools.DeleteSummaryResponse{Status: tools.StatusSuccess}

	if req.ID == "" {
		e := toolError(s.logger, errortypes.ValidationError(errors.New("id cannot be empty"), "invalid delete_summary request"))
		response.Status = tools.StatusError
		response.Error, response.Code = e.Message, e.Code
		return response, nil
	}

	if err := s.service.Delete(req.ID); err != nil {
		e := toolError(s.logger, err)
		response.Status = tools.StatusError
		response.Error, response.Code = e.Message, e.Code
		return response, nil
	}

	s.logger.Info("Successfully deleted summary", "id", req.ID)
	return response, nil
}

func (s *MCPSummaryToolServer) handleClearSummaries(ctx *server.Context, req tools.ClearSummariesRequest) (tools.ClearSummariesResponse, error) {
	s.logger.Info("Processing clear_summaries request")

	response := tools.ClearSummariesResponse{Status: tools.StatusSuccess}

	if req.Confirmation != tools.ClearConfirmation {
		e := toolError(s.logger, errortypes.ValidationError(
			errors.New("confirmation required, set confirmation to 'confirm' to clear all summaries"),
			"clear_summaries rejected"))
		response.Status = tools.StatusError
		response.Error, response.Code = e.Message, e.Code
		return response, nil
	}

	count, err := s.service.Clear()
	if err != nil {
		e := toolError(s.logger, err)
		response.Status = tools.StatusError
		response.Error, response.Code = e.Message, e.Code
		return response, nil
	}

	s.logger.Info("Successfully cleared summaries", "count", count)
	response.DeletedCount = count
	return response, nil
}

func (s *MCPSummaryToolServer) handleHealth(ctx *server.Context, req tools.HealthRequest) (tools.HealthResponse, error) {
	response := tools.HealthResponse{Status: tools.StatusSuccess}

	report, err := s.service.Health()
	if err == nil {
		response.Report, err = encodeReport(report)
	}
	if err != nil {
		e := toolError(s.logger, errortypes.InternalError(err, "failed to build health report"))
		response.Status = tools.StatusError
		response.Error, response.Code = e.Message, e.Code
		return response, nil
	}

	return response, nil
}
