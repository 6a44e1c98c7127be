package bridge

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MarketingDevWebexpR/b2b-template-sub010/commerce"
	"github.com/MarketingDevWebexpR/b2b-template-sub010/internal/httpx"
)

// SyncEntity selects which catalog slice a sync job covers.
type SyncEntity string

const (
	SyncProducts    SyncEntity = "products"
	SyncCategories  SyncEntity = "categories"
	SyncInventory   SyncEntity = "inventory"
	SyncPrices      SyncEntity = "prices"
	SyncAllEntities SyncEntity = "all"
)

// IsValid checks if the entity is a known value.
func (e SyncEntity) IsValid() bool {
	switch e {
	case SyncProducts, SyncCategories, SyncInventory, SyncPrices, SyncAllEntities:
		return true
	}
	return false
}

// SyncMode selects between a full rebuild and an incremental delta run.
type SyncMode string

const (
	SyncFull        SyncMode = "full"
	SyncIncremental SyncMode = "incremental"
)

// SyncJobStatus is the lifecycle state of a sync job.
type SyncJobStatus string

const (
	JobQueued    SyncJobStatus = "queued"
	JobRunning   SyncJobStatus = "running"
	JobCompleted SyncJobStatus = "completed"
	JobFailed    SyncJobStatus = "failed"
	JobCancelled SyncJobStatus = "cancelled"
)

// IsValid checks if the status is a known value.
func (s SyncJobStatus) IsValid() bool {
	switch s {
	case JobQueued, JobRunning, JobCompleted, JobFailed, JobCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether the job reached an end state. Pollers stop
// at the first terminal status.
func (s SyncJobStatus) IsTerminal() bool {
	switch s {
	case JobCompleted, JobFailed, JobCancelled:
		return true
	}
	return false
}

// SyncJob is one catalog synchronization run.
type SyncJob struct {
	ID     string        `json:"id"`
	Entity SyncEntity    `json:"entity"`
	Mode   SyncMode      `json:"mode"`
	Status SyncJobStatus `json:"status"`

	// Progress is a 0-100 percentage; Total/Processed/Failed count records.
	Progress  int `json:"progress"`
	Total     int `json:"total"`
	Processed int `json:"processed"`
	Failed    int `json:"failed"`

	Error      *string    `json:"error,omitempty"`
	StartedAt  *time.Time `json:"startedAt,omitempty"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// SyncLogEntry is one line of a job's execution log.
type SyncLogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	EntityID  string    `json:"entityId,omitempty"`
}

// SyncHealth is the sync subsystem health snapshot.
type SyncHealth struct {
	Status       string     `json:"status"`
	QueueDepth   int        `json:"queueDepth"`
	RunningJobs  int        `json:"runningJobs"`
	LastJobAt    *time.Time `json:"lastJobAt,omitempty"`
	WorkerStatus string     `json:"workerStatus,omitempty"`
}

// SyncStats aggregates job history.
type SyncStats struct {
	TotalJobs     int        `json:"totalJobs"`
	CompletedJobs int        `json:"completedJobs"`
	FailedJobs    int        `json:"failedJobs"`
	AvgDuration   int        `json:"avgDurationMs"`
	LastSuccessAt *time.Time `json:"lastSuccessAt,omitempty"`
}

// StartSyncInput describes the job to enqueue.
type StartSyncInput struct {
	Entity SyncEntity `json:"entity"`
	Mode   SyncMode   `json:"mode,omitempty"`
	// Filters narrow incremental runs, e.g. {"category": "rings"}.
	Filters map[string]string `json:"filters,omitempty"`
}

// PollOptions tunes WaitForJob. Zero values take the defaults: 2s initial
// interval growing by 1.5x up to 15s between polls, bounded overall only
// by the caller's context.
type PollOptions struct {
	InitialInterval time.Duration
	Multiplier      float64
	MaxInterval     time.Duration
}

const (
	defaultPollInitial    = 2 * time.Second
	defaultPollMultiplier = 1.5
	defaultPollMax        = 15 * time.Second
)

// SyncService drives the Bridge catalog sync orchestrator. Jobs run
// server-side: StartSync returns immediately with a job id and callers
// either poll GetJob themselves or block in WaitForJob. Bridge-only, like
// InventoryService.
type SyncService struct {
	c *Client
}

// StartSync enqueues a job and returns it in queued (or already running)
// state. The request carries an idempotency key, so a retried enqueue
// after a network failure cannot start the same job twice.
func (s *SyncService) StartSync(ctx context.Context, input StartSyncInput) (*SyncJob, error) {
	if !input.Entity.IsValid() {
		return nil, fmt.Errorf("%w: unknown sync entity %q", commerce.ErrInvalidInput, input.Entity)
	}
	if input.Mode == "" {
		input.Mode = SyncIncremental
	}

	var out envelope[rawSyncJob]
	req := httpx.Request{
		Method:  http.MethodPost,
		Path:    "/sync/jobs",
		Body:    input,
		Headers: map[string]string{"Idempotency-Key": uuid.NewString()},
	}
	if err := s.c.http.DoJSON(ctx, req, &out); err != nil {
		return nil, apiError("sync.start", err)
	}

	job := mapSyncJob(out.Data)
	s.c.log.Debug("sync job started",
		zap.String("job_id", job.ID),
		zap.String("entity", string(job.Entity)),
		zap.String("mode", string(job.Mode)))
	return &job, nil
}

// GetJob fetches the current state of one job.
func (s *SyncService) GetJob(ctx context.Context, id string) (*SyncJob, error) {
	var out envelope[rawSyncJob]
	if err := s.c.http.Get(ctx, "/sync/jobs/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, apiError(fmt.Sprintf("sync.get_job %q", id), err)
	}
	job := mapSyncJob(out.Data)
	return &job, nil
}

// ListJobs pages through job history. Filters: "entity", "status".
func (s *SyncService) ListJobs(ctx context.Context, opts commerce.ListOptions) (*commerce.Page[SyncJob], error) {
	opts = opts.Normalize()

	q := url.Values{}
	q.Set("page", strconv.Itoa(opts.Page))
	q.Set("per_page", strconv.Itoa(opts.PageSize))
	for key, value := range opts.Filters {
		q.Set(key, value)
	}

	var out envelope[[]rawSyncJob]
	if err := s.c.http.Get(ctx, "/sync/jobs", q, &out); err != nil {
		return nil, apiError("sync.list_jobs", err)
	}

	jobs := make([]SyncJob, 0, len(out.Data))
	for _, raw := range out.Data {
		jobs = append(jobs, mapSyncJob(raw))
	}

	total := int64(len(jobs))
	if out.Meta != nil {
		total = out.Meta.Total
	}
	return commerce.NewPage(jobs, total, opts.Page, opts.PageSize), nil
}

// Cancel stops a queued or running job.
func (s *SyncService) Cancel(ctx context.Context, id string) (*SyncJob, error) {
	var out envelope[rawSyncJob]
	if err := s.c.http.Post(ctx, "/sync/jobs/"+url.PathEscape(id)+"/cancel", nil, &out); err != nil {
		return nil, apiError(fmt.Sprintf("sync.cancel %q", id), err)
	}
	job := mapSyncJob(out.Data)
	return &job, nil
}

// Retry re-enqueues a failed job as a new run.
func (s *SyncService) Retry(ctx context.Context, id string) (*SyncJob, error) {
	var out envelope[rawSyncJob]
	if err := s.c.http.Post(ctx, "/sync/jobs/"+url.PathEscape(id)+"/retry", nil, &out); err != nil {
		return nil, apiError(fmt.Sprintf("sync.retry %q", id), err)
	}
	job := mapSyncJob(out.Data)
	return &job, nil
}

// Logs pages through the execution log of one job.
func (s *SyncService) Logs(ctx context.Context, id string, opts commerce.ListOptions) (*commerce.Page[SyncLogEntry], error) {
	opts = opts.Normalize()

	q := url.Values{}
	q.Set("page", strconv.Itoa(opts.Page))
	q.Set("per_page", strconv.Itoa(opts.PageSize))

	var out envelope[[]rawSyncLogEntry]
	if err := s.c.http.Get(ctx, "/sync/jobs/"+url.PathEscape(id)+"/logs", q, &out); err != nil {
		return nil, apiError(fmt.Sprintf("sync.logs %q", id), err)
	}

	entries := make([]SyncLogEntry, 0, len(out.Data))
	for _, raw := range out.Data {
		entries = append(entries, SyncLogEntry{
			Timestamp: raw.Timestamp,
			Level:     raw.Level,
			Message:   raw.Message,
			EntityID:  raw.EntityID,
		})
	}

	total := int64(len(entries))
	if out.Meta != nil {
		total = out.Meta.Total
	}
	return commerce.NewPage(entries, total, opts.Page, opts.PageSize), nil
}

// Health fetches the sync subsystem health snapshot.
func (s *SyncService) Health(ctx context.Context) (*SyncHealth, error) {
	var out envelope[rawSyncHealth]
	if err := s.c.http.Get(ctx, "/sync/health", nil, &out); err != nil {
		return nil, apiError("sync.health", err)
	}
	return &SyncHealth{
		Status:       out.Data.Status,
		QueueDepth:   int(out.Data.QueueDepth),
		RunningJobs:  int(out.Data.RunningJobs),
		LastJobAt:    out.Data.LastJobAt,
		WorkerStatus: out.Data.WorkerStatus,
	}, nil
}

// Stats fetches aggregate job history.
func (s *SyncService) Stats(ctx context.Context) (*SyncStats, error) {
	var out envelope[rawSyncStats]
	if err := s.c.http.Get(ctx, "/sync/stats", nil, &out); err != nil {
		return nil, apiError("sync.stats", err)
	}
	return &SyncStats{
		TotalJobs:     int(out.Data.TotalJobs),
		CompletedJobs: int(out.Data.CompletedJobs),
		FailedJobs:    int(out.Data.FailedJobs),
		AvgDuration:   int(out.Data.AvgDurationMS),
		LastSuccessAt: out.Data.LastSuccessAt,
	}, nil
}

// WaitForJob polls GetJob until the job reaches a terminal status or ctx
// expires. Completed jobs return with a nil error; failed and cancelled
// jobs return the job alongside an error matching commerce.ErrJobFailed.
// The poll interval grows from opts.InitialInterval by opts.Multiplier up
// to opts.MaxInterval; the overall deadline belongs to ctx.
func (s *SyncService) WaitForJob(ctx context.Context, id string, opts PollOptions) (*SyncJob, error) {
	if opts.InitialInterval <= 0 {
		opts.InitialInterval = defaultPollInitial
	}
	if opts.Multiplier <= 1 {
		opts.Multiplier = defaultPollMultiplier
	}
	if opts.MaxInterval <= 0 {
		opts.MaxInterval = defaultPollMax
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = opts.InitialInterval
	bo.Multiplier = opts.Multiplier
	bo.MaxInterval = opts.MaxInterval
	bo.MaxElapsedTime = 0
	bo.RandomizationFactor = 0.1
	bo.Reset()

	for {
		job, err := s.GetJob(ctx, id)
		if err != nil {
			return nil, err
		}
		if job.Status.IsTerminal() {
			if job.Status == JobCompleted {
				return job, nil
			}
			detail := string(job.Status)
			if job.Error != nil && *job.Error != "" {
				detail = fmt.Sprintf("%s: %s", job.Status, *job.Error)
			}
			return job, fmt.Errorf("bridge: sync job %s %s: %w", id, detail, commerce.ErrJobFailed)
		}

		s.c.log.Debug("sync job pending",
			zap.String("job_id", id),
			zap.String("status", string(job.Status)),
			zap.Int("progress", job.Progress))

		timer := time.NewTimer(bo.NextBackOff())
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("bridge: wait for sync job %s: %w", id, ctx.Err())
		case <-timer.C:
		}
	}
}

func mapSyncJob(raw rawSyncJob) SyncJob {
	return SyncJob{
		ID:         raw.ID,
		Entity:     SyncEntity(raw.Entity),
		Mode:       SyncMode(raw.Mode),
		Status:     SyncJobStatus(raw.Status),
		Progress:   int(raw.Progress),
		Total:      int(raw.Total),
		Processed:  int(raw.Processed),
		Failed:     int(raw.Failed),
		Error:      raw.Error,
		StartedAt:  raw.StartedAt,
		FinishedAt: raw.FinishedAt,
		CreatedAt:  raw.CreatedAt,
	}
}
