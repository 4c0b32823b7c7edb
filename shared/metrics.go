package shared

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// SyncMetrics tracks external sync job outcomes.
type SyncMetrics struct {
	mutex          sync.RWMutex
	totalRuns      int64
	successfulRuns int64
	failedRuns     int64
	rowsUpserted   int64
	lastRunAt      time.Time
	lastRunError   string
}

// SyncMetricsSnapshot is a point-in-time copy safe for serialization.
type SyncMetricsSnapshot struct {
	TotalRuns      int64     `json:"total_runs"`
	SuccessfulRuns int64     `json:"successful_runs"`
	FailedRuns     int64     `json:"failed_runs"`
	RowsUpserted   int64     `json:"rows_upserted"`
	LastRunAt      time.Time `json:"last_run_at"`
	LastRunError   string    `json:"last_run_error,omitempty"`
}

func NewSyncMetrics() *SyncMetrics {
	return &SyncMetrics{}
}

// RecordRun records the outcome of one sync run.
func (m *SyncMetrics) RecordRun(rowsUpserted int, err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.totalRuns++
	m.rowsUpserted += int64(rowsUpserted)
	m.lastRunAt = time.Now()

	if err != nil {
		m.failedRuns++
		m.lastRunError = err.Error()
	} else {
		m.successfulRuns++
		m.lastRunError = ""
	}
}

// Snapshot returns a copy of the current counters.
func (m *SyncMetrics) Snapshot() SyncMetricsSnapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return SyncMetricsSnapshot{
		TotalRuns:      m.totalRuns,
		SuccessfulRuns: m.successfulRuns,
		FailedRuns:     m.failedRuns,
		RowsUpserted:   m.rowsUpserted,
		LastRunAt:      m.lastRunAt,
		LastRunError:   m.lastRunError,
	}
}

// LogSummary logs a structured summary of sync activity.
func (m *SyncMetrics) LogSummary() {
	snapshot := m.Snapshot()
	logrus.WithFields(logrus.Fields{
		"total_runs":      snapshot.TotalRuns,
		"successful_runs": snapshot.SuccessfulRuns,
		"failed_runs":     snapshot.FailedRuns,
		"rows_upserted":   snapshot.RowsUpserted,
		"last_run_at":     snapshot.LastRunAt,
	}).Info("IPO sync metrics summary")
}
