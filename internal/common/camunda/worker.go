// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"encoding/json"
	"time"

	"recruit-workers/internal/common/errors"
	"recruit-workers/internal/common/logger"
	"recruit-workers/internal/common/metrics"
	"recruit-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// JobHandler is implemented by every worker package's Handler.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// Responder finishes jobs for one task type and records job metrics.
type Responder struct {
	taskType string
	logger   logger.Logger
	errors   *errors.ErrorHandler
	obs      *observability.Observability
}

func NewResponder(taskType string, log logger.Logger, obs *observability.Observability) *Responder {
	return &Responder{
		taskType: taskType,
		logger:   log,
		errors:   errors.NewErrorHandler(log),
		obs:      obs,
	}
}

// ParseVariables decodes the job variables into dst, wrapping failures as a
// PARSE_ERROR.
func ParseVariables(job entities.Job, dst interface{}) error {
	if err := json.Unmarshal([]byte(job.Variables), dst); err != nil {
		return errors.NewParseError(err)
	}
	return nil
}

func (r *Responder) Complete(client worker.JobClient, job entities.Job, output interface{}, started time.Time) {
	ctx := context.Background()

	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		r.logger.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		r.Fail(client, job, errors.NewParseError(err), started)
		return
	}

	if _, err := cmd.Send(ctx); err != nil {
		r.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		r.record(ctx, "send_failed", "", started)
		return
	}

	r.logger.Info("job completed", map[string]interface{}{
		"jobKey":     job.Key,
		"durationMs": time.Since(started).Milliseconds(),
	})
	r.record(ctx, "completed", "", started)
}

func (r *Responder) Fail(client worker.JobClient, job entities.Job, err error, started time.Time) {
	ctx := context.Background()
	bpmnErr := r.errors.HandleJobError(ctx, client, job, err)
	r.record(ctx, "failed", bpmnErr.Code, started)
}

func (r *Responder) record(ctx context.Context, status, errorCode string, started time.Time) {
	elapsed := time.Since(started)
	metrics.WorkerJobDuration.WithLabelValues(r.taskType).Observe(elapsed.Seconds())
	switch status {
	case "completed":
		metrics.WorkerJobsCompleted.WithLabelValues(r.taskType).Inc()
	default:
		if errorCode == "" {
			errorCode = status
		}
		metrics.WorkerJobsFailed.WithLabelValues(r.taskType, errorCode).Inc()
	}
	r.obs.RecordJob(ctx, r.taskType, status, elapsed)
}

// Track wraps a handler so the active-jobs gauge follows its execution.
func Track(taskType string, h JobHandler) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		gauge := metrics.WorkerJobsActive.WithLabelValues(taskType)
		gauge.Inc()
		defer gauge.Dec()
		h.Handle(client, job)
	}
}

// Open starts a job worker for taskType and returns it so the caller can close
// it on shutdown.
func Open(client zbc.Client, taskType string, maxJobsActive int, timeout time.Duration, h JobHandler) worker.JobWorker {
	return client.NewJobWorker().
		JobType(taskType).
		Handler(Track(taskType, h)).
		MaxJobsActive(maxJobsActive).
		Timeout(timeout).
		Open()
}
