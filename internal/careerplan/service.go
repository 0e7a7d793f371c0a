package careerplan

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"recruit-workers/internal/common/errors"
	"recruit-workers/internal/common/logger"
	"recruit-workers/internal/common/metrics"
	"recruit-workers/internal/readiness"
	"recruit-workers/internal/suggest"

	"github.com/google/uuid"
)

const (
	DefaultMaxActions = 5
	DefaultTimeout    = 15 * time.Second
)

// Repository persists plans and their actions. FindPlan and Mutate return a
// NOT_FOUND error when the candidate has no plan.
type Repository interface {
	FindPlan(ctx context.Context, candidateID string) (*CareerPlan, error)
	// SaveObjective inserts the plan or updates the objective of the
	// candidate's existing plan, returning the stored plan id. Actions and
	// readiness are left alone.
	SaveObjective(ctx context.Context, plan *CareerPlan) (string, error)
	// ReplaceActions deletes every action of the plan, inserts actions and
	// sets the readiness score in one transaction.
	ReplaceActions(ctx context.Context, planID string, actions []readiness.ActionItem, readinessScore int) error
	// SavePlan upserts the objective and replaces the actions and readiness
	// score in one transaction, returning the stored plan id.
	SavePlan(ctx context.Context, plan *CareerPlan) (string, error)
	// Mutate runs fn on the locked plan and persists its readiness score and
	// action completion flags.
	Mutate(ctx context.Context, candidateID string, fn func(*CareerPlan) error) (*CareerPlan, error)
}

type ProfileSource interface {
	Profile(ctx context.Context, candidateID string) (*Profile, error)
}

type Service struct {
	repo       Repository
	profiles   ProfileSource
	generator  suggest.Generator
	logger     logger.Logger
	maxActions int
	timeout    time.Duration
	newID      func() string
}

type Option func(*Service)

func WithMaxActions(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxActions = n
		}
	}
}

// WithTimeout bounds each generator call.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

func NewService(repo Repository, profiles ProfileSource, generator suggest.Generator, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		profiles:   profiles,
		generator:  generator,
		logger:     log,
		maxActions: DefaultMaxActions,
		timeout:    DefaultTimeout,
		newID:      func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetPlan returns the candidate's plan with its completion stats.
func (s *Service) GetPlan(ctx context.Context, candidateID string) (*CareerPlan, error) {
	if err := requireCandidate(candidateID); err != nil {
		return nil, err
	}
	plan, err := s.repo.FindPlan(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	plan.Stats = readiness.Summarize(plan.Actions)
	return plan, nil
}

// UpdateObjective creates the plan if needed and overwrites its objective.
func (s *Service) UpdateObjective(ctx context.Context, candidateID string, obj Objective) (*CareerPlan, error) {
	if err := requireCandidate(candidateID); err != nil {
		return nil, err
	}
	if obj.TimeHorizonMonths < 0 {
		return nil, errors.NewInvalidInputError("timeHorizonMonths must not be negative")
	}

	if _, err := s.repo.SaveObjective(ctx, &CareerPlan{ID: s.newID(), CandidateID: candidateID, Objective: obj}); err != nil {
		return nil, err
	}
	s.logger.Info("career objective updated", map[string]interface{}{
		"candidateId": candidateID,
		"targetJob":   obj.TargetJob,
	})
	return s.GetPlan(ctx, candidateID)
}

// EnsurePlan makes sure the candidate has a plan, seeding a default objective
// when no target job is set, and then regenerates its actions. Nothing is
// written unless the generator succeeds.
func (s *Service) EnsurePlan(ctx context.Context, candidateID string) (*CareerPlan, error) {
	if err := requireCandidate(candidateID); err != nil {
		return nil, err
	}
	profile, err := s.profiles.Profile(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	plan, err := s.repo.FindPlan(ctx, candidateID)
	switch {
	case stderrors.Is(err, errors.ErrNotFound):
		plan = &CareerPlan{ID: s.newID(), CandidateID: candidateID}
	case err != nil:
		return nil, err
	}

	seeded := strings.TrimSpace(plan.TargetJob) == ""
	if seeded {
		plan.Objective = DefaultObjective()
	}

	if err := s.regenerate(ctx, plan, profile); err != nil {
		return nil, err
	}
	id, err := s.repo.SavePlan(ctx, plan)
	if err != nil {
		metrics.CareerPlanRefreshes.WithLabelValues("failure").Inc()
		return nil, err
	}
	plan.ID = id
	if seeded {
		s.logger.Info("seeded default career objective", map[string]interface{}{
			"candidateId": candidateID,
		})
	}
	s.refreshed(plan)
	return plan, nil
}

// ToggleAction flips the completion flag of one of the candidate's actions
// and stores the smoothed readiness score. An action outside the
// candidate's plan is reported as not found.
func (s *Service) ToggleAction(ctx context.Context, candidateID, actionID string) (*CareerPlan, error) {
	if err := requireCandidate(candidateID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(actionID) == "" {
		return nil, errors.NewInvalidInputError("actionId is required")
	}

	var stored, fresh int
	plan, err := s.repo.Mutate(ctx, candidateID, func(p *CareerPlan) error {
		a := p.action(actionID)
		if a == nil {
			return errors.NewNotFoundError("career action", actionID)
		}
		a.Completed = !a.Completed

		stored = p.ReadinessScore
		fresh = readiness.Compute(p.Actions)
		p.ReadinessScore = readiness.Smooth(stored, fresh)
		return nil
	})
	if err != nil {
		return nil, err
	}

	plan.Stats = readiness.Summarize(plan.Actions)
	s.logger.Info("career action toggled", map[string]interface{}{
		"candidateId": candidateID,
		"actionId":    actionID,
		"previous":    stored,
		"computed":    fresh,
		"readiness":   plan.ReadinessScore,
	})
	return plan, nil
}

func requireCandidate(candidateID string) error {
	if strings.TrimSpace(candidateID) == "" {
		return errors.NewInvalidInputError("candidateId is required")
	}
	return nil
}
