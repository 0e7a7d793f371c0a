package recordinterview

import (
	"context"
	"strings"
	"time"

	"recruit-workers/internal/common/camunda"
	"recruit-workers/internal/common/errors"
	"recruit-workers/internal/common/logger"
	"recruit-workers/internal/common/observability"
	"recruit-workers/internal/lifecycle"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "record-interview"
)

type Service interface {
	RecordInterview(ctx context.Context, id string, record lifecycle.InterviewRecord) (*lifecycle.Application, error)
}

type Handler struct {
	config    *Config
	service   Service
	responder *camunda.Responder
	logger    logger.Logger
}

func NewHandler(config *Config, service Service, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		service:   service,
		responder: camunda.NewResponder(TaskType, log, obs),
		logger:    log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	started := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := camunda.ParseVariables(job, &input); err != nil {
		h.responder.Fail(client, job, err, started)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.responder.Fail(client, job, err, started)
		return
	}
	h.responder.Complete(client, job, output, started)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil || strings.TrimSpace(input.ApplicationID) == "" {
		return nil, errors.NewInvalidInputError("applicationId is required")
	}

	app, err := h.service.RecordInterview(ctx, input.ApplicationID, lifecycle.InterviewRecord{
		ChecklistResults: input.ChecklistResults,
		SkillComments:    input.SkillComments,
		Notes:            input.Notes,
	})
	if err != nil {
		return nil, err
	}

	output := &Output{
		ApplicationID:     app.ID,
		ApplicationStatus: string(app.Status),
		ChecklistTotal:    len(input.ChecklistResults),
	}
	for _, passed := range input.ChecklistResults {
		if passed {
			output.ChecklistPassed++
		}
	}
	if app.RespondedAt != nil {
		output.RespondedAt = app.RespondedAt.Format(time.RFC3339)
	}
	return output, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
