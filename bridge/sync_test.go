package bridge

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarketingDevWebexpR/b2b-template-sub010/commerce"
)

func syncEnabled(cfg *Config) { cfg.EnableSync = true }

// fastPoll keeps WaitForJob tests quick.
var fastPoll = PollOptions{
	InitialInterval: time.Millisecond,
	Multiplier:      1.1,
	MaxInterval:     5 * time.Millisecond,
}

func TestSyncService_StartSync(t *testing.T) {
	var idempotencyKeys []string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/sync/jobs", r.URL.Path)
		idempotencyKeys = append(idempotencyKeys, r.Header.Get("Idempotency-Key"))

		var body StartSyncInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, SyncProducts, body.Entity)
		assert.Equal(t, SyncIncremental, body.Mode) // defaulted

		writeData(t, w, rawSyncJob{ID: "job-1", Entity: "products", Mode: "incremental", Status: "queued"}, nil)
	}), syncEnabled)

	syncSvc, ok := client.Sync()
	require.True(t, ok)

	job, err := syncSvc.StartSync(context.Background(), StartSyncInput{Entity: SyncProducts})
	require.NoError(t, err)
	assert.Equal(t, "job-1", job.ID)
	assert.Equal(t, JobQueued, job.Status)
	require.Len(t, idempotencyKeys, 1)
	assert.NotEmpty(t, idempotencyKeys[0])

	// A second enqueue gets a fresh key: idempotency guards retries of one
	// logical enqueue, not distinct enqueues.
	_, err = syncSvc.StartSync(context.Background(), StartSyncInput{Entity: SyncProducts})
	require.NoError(t, err)
	require.Len(t, idempotencyKeys, 2)
	assert.NotEqual(t, idempotencyKeys[0], idempotencyKeys[1])
}

func TestSyncService_StartSync_RejectsUnknownEntity(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("invalid input must not reach the network")
	}), syncEnabled)

	syncSvc, _ := client.Sync()
	_, err := syncSvc.StartSync(context.Background(), StartSyncInput{Entity: "everything"})
	assert.ErrorIs(t, err, commerce.ErrInvalidInput)
}

func TestSyncService_WaitForJob_Completes(t *testing.T) {
	var polls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/sync/jobs/job-1", r.URL.Path)
		status := "running"
		if polls.Add(1) >= 3 {
			status = "completed"
		}
		writeData(t, w, rawSyncJob{ID: "job-1", Entity: "products", Status: status, Progress: 100}, nil)
	}), syncEnabled)

	syncSvc, _ := client.Sync()
	job, err := syncSvc.WaitForJob(context.Background(), "job-1", fastPoll)
	require.NoError(t, err)
	assert.Equal(t, JobCompleted, job.Status)
	assert.GreaterOrEqual(t, polls.Load(), int32(3))
}

func TestSyncService_WaitForJob_FailedJob(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errMsg := "source feed unreachable"
		writeData(t, w, rawSyncJob{ID: "job-9", Entity: "products", Status: "failed", Error: &errMsg}, nil)
	}), syncEnabled)

	syncSvc, _ := client.Sync()
	job, err := syncSvc.WaitForJob(context.Background(), "job-9", fastPoll)
	require.Error(t, err)
	assert.ErrorIs(t, err, commerce.ErrJobFailed)
	assert.Contains(t, err.Error(), "source feed unreachable")
	// The terminal job still comes back for inspection.
	require.NotNil(t, job)
	assert.Equal(t, JobFailed, job.Status)
}

func TestSyncService_WaitForJob_ContextCancelled(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeData(t, w, rawSyncJob{ID: "job-1", Entity: "products", Status: "running"}, nil)
	}), syncEnabled)

	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()

	syncSvc, _ := client.Sync()
	_, err := syncSvc.WaitForJob(ctx, "job-1", fastPoll)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSyncJobStatus_IsTerminal(t *testing.T) {
	assert.False(t, JobQueued.IsTerminal())
	assert.False(t, JobRunning.IsTerminal())
	assert.True(t, JobCompleted.IsTerminal())
	assert.True(t, JobFailed.IsTerminal())
	assert.True(t, JobCancelled.IsTerminal())
}

func TestSyncService_HealthAndStats(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sync/health":
			writeData(t, w, rawSyncHealth{Status: "ok", QueueDepth: 2, RunningJobs: 1}, nil)
		case "/sync/stats":
			writeData(t, w, rawSyncStats{TotalJobs: 40, CompletedJobs: 38, FailedJobs: 2}, nil)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}), syncEnabled)

	syncSvc, _ := client.Sync()

	health, err := syncSvc.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 2, health.QueueDepth)

	stats, err := syncSvc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 40, stats.TotalJobs)
	assert.Equal(t, 2, stats.FailedJobs)
}
