package changeapplicationstatus

import (
	"context"
	"fmt"
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
	TaskType = "change-application-status"
)

type Service interface {
	SetStatus(ctx context.Context, id, status string, comment *string) (*lifecycle.Application, error)
	MarkInReview(ctx context.Context, id string, comment *string) (*lifecycle.Application, error)
	MarkInterview(ctx context.Context, id string, comment *string) (*lifecycle.Application, error)
	Accept(ctx context.Context, id string, comment *string) (*lifecycle.Application, error)
	Reject(ctx context.Context, id string, comment *string) (*lifecycle.Application, error)
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
	if input == nil {
		return nil, errors.NewInvalidInputError("input cannot be nil")
	}
	if strings.TrimSpace(input.ApplicationID) == "" {
		return nil, errors.NewInvalidInputError("applicationId is required")
	}

	hasStatus := strings.TrimSpace(input.Status) != ""
	hasAction := strings.TrimSpace(input.Action) != ""
	if hasStatus == hasAction {
		return nil, errors.NewInvalidInputError("exactly one of status or action is required")
	}

	var (
		app *lifecycle.Application
		err error
	)
	if hasStatus {
		app, err = h.service.SetStatus(ctx, input.ApplicationID, input.Status, input.Comment)
	} else {
		app, err = h.apply(ctx, input.Action, input.ApplicationID, input.Comment)
	}
	if err != nil {
		return nil, err
	}

	output := &Output{
		ApplicationID:     app.ID,
		ApplicationStatus: string(app.Status),
		RecruiterComment:  app.RecruiterComment,
		Terminal:          app.Status.Terminal(),
	}
	if app.RespondedAt != nil {
		output.RespondedAt = app.RespondedAt.Format(time.RFC3339)
	}
	return output, nil
}

func (h *Handler) apply(ctx context.Context, action, id string, comment *string) (*lifecycle.Application, error) {
	switch strings.ToLower(strings.TrimSpace(action)) {
	case "review":
		return h.service.MarkInReview(ctx, id, comment)
	case "interview":
		return h.service.MarkInterview(ctx, id, comment)
	case "accept":
		return h.service.Accept(ctx, id, comment)
	case "reject":
		return h.service.Reject(ctx, id, comment)
	default:
		return nil, errors.NewInvalidInputError(fmt.Sprintf("unknown action %q", action))
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
