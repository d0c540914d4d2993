package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	EntriesFetched      int64
	StaleDropped        int64
	UndatedDropped      int64
	DuplicatesCollapsed int64
	OracleCalls         int64
	OracleFailures      int64
	ResultsReturned     int64

	// Timings
	LastRunDuration    time.Duration
	AverageRunDuration time.Duration
	TotalRunDuration   time.Duration
	RunCount           int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddEntriesFetched(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EntriesFetched += n
}

func (m *Metrics) AddStaleDropped(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StaleDropped += n
}

func (m *Metrics) AddUndatedDropped(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UndatedDropped += n
}

func (m *Metrics) AddDuplicatesCollapsed(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesCollapsed += n
}

func (m *Metrics) AddOracleCalls(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OracleCalls += n
}

func (m *Metrics) AddOracleFailures(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OracleFailures += n
}

func (m *Metrics) AddResultsReturned(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResultsReturned += n
}

// RecordRun tracks one pipeline invocation and marks the service healthy.
func (m *Metrics) RecordRun(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastRunDuration = duration
	m.TotalRunDuration += duration
	m.RunCount++
	m.AverageRunDuration = m.TotalRunDuration / time.Duration(m.RunCount)

	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"entries_fetched":         m.EntriesFetched,
		"stale_dropped":           m.StaleDropped,
		"undated_dropped":         m.UndatedDropped,
		"duplicates_collapsed":    m.DuplicatesCollapsed,
		"oracle_calls":            m.OracleCalls,
		"oracle_failures":         m.OracleFailures,
		"results_returned":        m.ResultsReturned,
		"last_run_duration_ms":    m.LastRunDuration.Milliseconds(),
		"average_run_duration_ms": m.AverageRunDuration.Milliseconds(),
		"last_run_time":           m.LastRunTime.Format(time.RFC3339),
		"last_error_time":         m.LastErrorTime.Format(time.RFC3339),
		"last_error":              m.LastError,
		"is_healthy":              m.IsHealthy,
	}
}
