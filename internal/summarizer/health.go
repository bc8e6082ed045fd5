package summarizer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/localrivet/lexsummary/internal/telemetry"
)

// Version is reported in health reports.
const Version = "1.0.0"

// HealthStatus represents the health status of a component
type HealthStatus string

const (
	// StatusHealthy indicates a component is fully operational
	StatusHealthy HealthStatus = "healthy"

	// StatusDegraded indicates a component is operational but with reduced capability
	StatusDegraded HealthStatus = "degraded"

	// StatusDisabled indicates an optional component is switched off
	StatusDisabled HealthStatus = "disabled"
)

// HealthReport contains information about the current health of the summarizer
type HealthReport struct {
	Status        HealthStatus       `json:"status"`
	Timestamp     time.Time          `json:"timestamp"`
	Components    map[string]string  `json:"components"`
	ResponseTimes map[string]float64 `json:"response_times_ms"`
	CacheStats    map[string]int64   `json:"cache_stats"`
	StoreStats    map[string]int64   `json:"store_stats"`
	EngineStats   map[string]int64   `json:"engine_stats"`
	TotalRequests int64              `json:"total_requests"`
	Version       string             `json:"version"`
}

// CreateHealthReport generates a health report for the summarizer
func CreateHealthReport(summarizer *LexRankSummarizer) (*HealthReport, error) {
	if summarizer == nil {
		return nil, fmt.Errorf("summarizer is nil")
	}

	m := summarizer.GetMetrics()
	if m == nil {
		return nil, fmt.Errorf("metrics collector is nil")
	}

	components := map[string]string{
		"engine": string(StatusHealthy),
		"cache":  string(StatusHealthy),
		"store":  string(StatusDisabled),
	}

	status := StatusHealthy
	storeFailures := m.GetCounter(telemetry.MetricStoreFailures)
	if summarizer.StoreEnabled() {
		components["store"] = string(StatusHealthy)
		if storeFailures > 0 {
			components["store"] = string(StatusDegraded)
			status = StatusDegraded
		}
	}

	ms := func(name string) float64 {
		return float64(m.GetTimerAverage(name)) / float64(time.Millisecond)
	}
	responseTimes := map[string]float64{
		"summarize_avg": ms(telemetry.MetricSummarizeTime),
		"summarize_p95": float64(m.GetTimerP95(telemetry.MetricSummarizeTime)) / float64(time.Millisecond),
	}

	cacheStats := map[string]int64{
		"hits":   m.GetCounter(telemetry.MetricCacheHits),
		"misses": m.GetCounter(telemetry.MetricCacheMisses),
		"size":   int64(m.GetGauge(telemetry.MetricCacheSize)),
	}

	storeStats := map[string]int64{
		"hits":     m.GetCounter(telemetry.MetricStoreHits),
		"misses":   m.GetCounter(telemetry.MetricStoreMisses),
		"writes":   m.GetCounter(telemetry.MetricStoreWrites),
		"failures": storeFailures,
	}

	engineStats := map[string]int64{
		"early_exit_short_text":    m.GetCounter(telemetry.MetricEarlyExitShortText),
		"early_exit_few_sentences": m.GetCounter(telemetry.MetricEarlyExitFewSentences),
		"ranker_iterations":        m.GetCounter(telemetry.MetricRankerIterations),
		"ranker_not_converged":     m.GetCounter(telemetry.MetricRankerNotConverged),
		"selected_sentences":       m.GetCounter(telemetry.MetricSelectedSentences),
		"validation_failures":      m.GetCounter(telemetry.MetricValidationFailures),
	}

	return &HealthReport{
		Status:        status,
		Timestamp:     time.Now(),
		Components:    components,
		ResponseTimes: responseTimes,
		CacheStats:    cacheStats,
		StoreStats:    storeStats,
		EngineStats:   engineStats,
		TotalRequests: m.GetCounter(telemetry.MetricRequests),
		Version:       Version,
	}, nil
}

// CreateHealthReportJSON generates a JSON health report for the summarizer
func CreateHealthReportJSON(summarizer *LexRankSummarizer) (string, error) {
	report, err := CreateHealthReport(summarizer)
	if err != nil {
		return "", err
	}

	reportJSON, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal health report: %w", err)
	}

	return string(reportJSON), nil
}

// ResetMetrics resets all metrics for the summarizer
func ResetMetrics(summarizer *LexRankSummarizer) error {
	if summarizer == nil {
		return fmt.Errorf("summarizer is nil")
	}

	m := summarizer.GetMetrics()
	if m == nil {
		return fmt.Errorf("metrics collector is nil")
	}

	m.Reset()
	return nil
}

// Health returns the current health report for s.
func (s *LexRankSummarizer) Health() (*HealthReport, error) {
	return CreateHealthReport(s)
}
