package listofferapplications

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
	TaskType = "list-offer-applications"
)

type Service interface {
	List(ctx context.Context, filter lifecycle.ListFilter) ([]*lifecycle.Application, error)
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
	h.logger.Debug("processing job", map[string]interface{}{
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

	filter := lifecycle.ListFilter{
		OfferID:     strings.TrimSpace(input.OfferID),
		RecruiterID: strings.TrimSpace(input.RecruiterID),
	}
	if strings.TrimSpace(input.Status) != "" {
		status, err := lifecycle.ParseStatus(input.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}

	apps, err := h.service.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	output := &Output{Applications: apps, Count: len(apps)}
	if len(apps) > 0 {
		output.TopScore = apps[0].Score
	}
	return output, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
