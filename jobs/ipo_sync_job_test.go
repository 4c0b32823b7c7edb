package jobs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/bluestock/ipo-platform/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The feed server below always fails before any upsert, so a service with no
// database is safe.
func newTestJob(url string) *IPOSyncJob {
	job := NewIPOSyncJob(services.NewIPOService(nil), url)
	job.maxAttempts = 2
	return job
}

func TestRunAbortsOnNonArrayPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "maintenance"}`))
	}))
	defer server.Close()

	job := newTestJob(server.URL)
	err := job.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected payload shape")

	snapshot := job.Metrics.Snapshot()
	assert.Equal(t, int64(1), snapshot.TotalRuns)
	assert.Equal(t, int64(1), snapshot.FailedRuns)
	assert.Zero(t, snapshot.RowsUpserted)
}

func TestRunRetriesThenFails(t *testing.T) {
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	job := newTestJob(server.URL)
	err := job.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
	assert.Equal(t, int64(2), atomic.LoadInt64(&hits))
}

func TestRunEmptyArrayIsSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	job := newTestJob(server.URL)
	require.NoError(t, job.Run(context.Background()))

	snapshot := job.Metrics.Snapshot()
	assert.Equal(t, int64(1), snapshot.SuccessfulRuns)
	assert.Zero(t, snapshot.RowsUpserted)
}

func TestFetchHonorsContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	job := newTestJob(server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := job.Run(ctx)
	require.Error(t, err)
}
