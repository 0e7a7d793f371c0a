package careerplan

import (
	"context"
	stderrors "errors"
	"time"

	"recruit-workers/internal/common/errors"
	"recruit-workers/internal/common/metrics"
	"recruit-workers/internal/readiness"
	"recruit-workers/internal/suggest"

	"golang.org/x/sync/errgroup"
)

// Refresh regenerates the candidate's actions from the suggestion generator.
// The previous actions are replaced and readiness is set from the generator's
// compatibility estimate. If the generator fails nothing is written.
func (s *Service) Refresh(ctx context.Context, candidateID string) (*CareerPlan, error) {
	if err := requireCandidate(candidateID); err != nil {
		return nil, err
	}

	var (
		plan    *CareerPlan
		profile *Profile
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.repo.FindPlan(gctx, candidateID)
		plan = p
		return err
	})
	g.Go(func() error {
		p, err := s.profiles.Profile(gctx, candidateID)
		profile = p
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := s.regenerate(ctx, plan, profile); err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceActions(ctx, plan.ID, plan.Actions, plan.ReadinessScore); err != nil {
		metrics.CareerPlanRefreshes.WithLabelValues("failure").Inc()
		return nil, err
	}
	s.refreshed(plan)
	return plan, nil
}

// regenerate asks the generator for new actions and sets them, with the
// readiness score derived from its compatibility, on plan in memory.
func (s *Service) regenerate(ctx context.Context, plan *CareerPlan, profile *Profile) error {
	res, err := s.suggest(ctx, profile, plan.Objective)
	if err != nil {
		metrics.CareerPlanRefreshes.WithLabelValues("failure").Inc()
		s.logger.Error("career plan refresh failed", map[string]interface{}{
			"candidateId": plan.CandidateID,
			"error":       err.Error(),
		})
		return err
	}

	suggestions := res.Actions
	if len(suggestions) > s.maxActions {
		s.logger.Warn("generator returned more actions than requested", map[string]interface{}{
			"candidateId": plan.CandidateID,
			"returned":    len(suggestions),
			"max":         s.maxActions,
		})
		suggestions = suggestions[:s.maxActions]
	}

	actions := readiness.BuildActions(suggestions)
	for i := range actions {
		actions[i].ID = s.newID()
	}
	plan.Actions = actions
	plan.ReadinessScore = readiness.FromCompatibility(res.Compatibility)
	plan.Stats = readiness.Summarize(actions)
	return nil
}

func (s *Service) refreshed(plan *CareerPlan) {
	metrics.CareerPlanRefreshes.WithLabelValues("success").Inc()
	plan.UpdatedAt = time.Now().UTC()
	s.logger.Info("career plan refreshed", map[string]interface{}{
		"candidateId": plan.CandidateID,
		"planId":      plan.ID,
		"actions":     len(plan.Actions),
		"readiness":   plan.ReadinessScore,
	})
}

func (s *Service) suggest(ctx context.Context, profile *Profile, obj Objective) (*suggest.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.generator.SuggestActions(ctx, ProfileText(profile), ObjectiveText(obj), s.maxActions)
	if err != nil {
		if !stderrors.Is(err, errors.ErrUpstreamFailure) {
			err = errors.NewUpstreamFailureError(suggest.ServiceName, err)
		}
		return nil, err
	}
	if res == nil {
		return nil, errors.NewUpstreamFailureError(suggest.ServiceName, stderrors.New("empty result"))
	}
	return res, nil
}
