package telemetry

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestCountersAndGauges(t *testing.T) {
	m := NewMetricsCollector()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncrementCounter(MetricRequests, 1)
		}()
	}
	wg.Wait()

	if got := m.GetCounter(MetricRequests); got != 10 {
		t.Errorf("GetCounter() = %d, want 10", got)
	}

	m.SetGauge(MetricCacheSize, 3)
	if got := m.GetGauge(MetricCacheSize); got != 3 {
		t.Errorf("GetGauge() = %v, want 3", got)
	}
}

func TestTimers(t *testing.T) {
	m := NewMetricsCollector()

	if m.GetTimerAverage(MetricSummarizeTime) != 0 || m.GetTimerP95(MetricSummarizeTime) != 0 {
		t.Error("empty timer should report zero")
	}

	for i := 1; i <= 20; i++ {
		m.RecordTimer(MetricSummarizeTime, time.Duration(i)*time.Millisecond)
	}

	if got := m.GetTimerAverage(MetricSummarizeTime); got != 10500*time.Microsecond {
		t.Errorf("GetTimerAverage() = %v, want 10.5ms", got)
	}
	if got := m.GetTimerP95(MetricSummarizeTime); got != 20*time.Millisecond {
		t.Errorf("GetTimerP95() = %v, want 20ms", got)
	}
}

func TestTimerIsBounded(t *testing.T) {
	m := NewMetricsCollector()
	for i := 0; i < maxTimerSamples+25; i++ {
		m.RecordTimer(MetricSummarizeTime, time.Millisecond)
	}
	if got := m.GetTimerCount(MetricSummarizeTime); got != maxTimerSamples {
		t.Errorf("GetTimerCount() = %d, want %d", got, maxTimerSamples)
	}
}

func TestReportAndReset(t *testing.T) {
	m := NewMetricsCollector()
	m.IncrementCounter(MetricCacheHits, 2)
	m.SetGauge(MetricCacheSize, 1)
	m.RecordTimer(MetricSummarizeTime, time.Millisecond)
	m.RecordTimestamp(MetricLastSummary)

	report := m.GetReport()
	for _, want := range []string{MetricCacheHits + ": 2", MetricCacheSize + ": 1.00", MetricSummarizeTime, MetricLastSummary} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}

	if m.GetTimeSince(MetricLastSummary) <= 0 {
		t.Error("expected a recorded timestamp")
	}

	m.Reset()
	if m.GetCounter(MetricCacheHits) != 0 || m.GetTimeSince(MetricLastSummary) != 0 {
		t.Error("Reset() left metrics behind")
	}
}
