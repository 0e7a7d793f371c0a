package lifecycle

import (
	"context"
	"strings"
	"time"

	"recruit-workers/internal/common/errors"
	"recruit-workers/internal/common/logger"
	"recruit-workers/internal/common/metrics"
	"recruit-workers/internal/matching"

	"github.com/google/uuid"
)

// Repository persists applications. Update must run mutate under a per-record
// lock and persist the result atomically; it returns a NOT_FOUND error for an
// unknown id.
type Repository interface {
	Create(ctx context.Context, app *Application) error
	Find(ctx context.Context, id string) (*Application, error)
	Update(ctx context.Context, id string, mutate func(*Application) error) (*Application, error)
	List(ctx context.Context, filter ListFilter) ([]*Application, error)
}

// SignalSource resolves the scoring inputs for candidates and offers.
type SignalSource interface {
	CandidateSignals(ctx context.Context, candidateID string) (*matching.CandidateSignals, error)
	OfferSignals(ctx context.Context, offerID string) (*matching.OfferSignals, error)
}

type Service struct {
	repo    Repository
	signals SignalSource
	scorer  *matching.Scorer
	logger  logger.Logger
	now     func() time.Time
	newID   func() string
}

type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

func NewService(repo Repository, signals SignalSource, scorer *matching.Scorer, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		signals: signals,
		scorer:  scorer,
		logger:  log,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScoreAndSubmit scores the candidate against the offer and stores a new
// PENDING application carrying that score.
func (s *Service) ScoreAndSubmit(ctx context.Context, sub Submission) (*Application, matching.Breakdown, error) {
	if strings.TrimSpace(sub.CandidateID) == "" || strings.TrimSpace(sub.OfferID) == "" {
		return nil, matching.Breakdown{}, errors.NewInvalidInputError("candidateId and offerId are required")
	}

	offer, err := s.signals.OfferSignals(ctx, sub.OfferID)
	if err != nil {
		return nil, matching.Breakdown{}, err
	}
	candidate, err := s.signals.CandidateSignals(ctx, sub.CandidateID)
	if err != nil {
		return nil, matching.Breakdown{}, err
	}

	breakdown := s.scorer.Breakdown(offer, candidate)

	app := &Application{
		ID:          s.newID(),
		CandidateID: sub.CandidateID,
		OfferID:     sub.OfferID,
		Status:      StatusPending,
		Score:       breakdown.Score,
		CoverLetter: sub.CoverLetter,
		CVURL:       sub.CVURL,
		SubmittedAt: s.now(),
	}
	if err := s.repo.Create(ctx, app); err != nil {
		return nil, breakdown, err
	}

	metrics.CompatibilityScore.Observe(float64(app.Score))
	s.logger.Info("application submitted", map[string]interface{}{
		"applicationId": app.ID,
		"candidateId":   app.CandidateID,
		"offerId":       app.OfferID,
		"score":         app.Score,
	})
	return app, breakdown, nil
}

// SetStatus moves an application to status, overwriting the recruiter comment
// and stamping the response time. Any state may be reached from any other;
// moving back to PENDING clears the response time.
func (s *Service) SetStatus(ctx context.Context, id, status string, comment *string) (*Application, error) {
	target, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, id, target, comment)
}

func (s *Service) MarkInReview(ctx context.Context, id string, comment *string) (*Application, error) {
	return s.transition(ctx, id, StatusInReview, comment)
}

func (s *Service) MarkInterview(ctx context.Context, id string, comment *string) (*Application, error) {
	return s.transition(ctx, id, StatusInterview, comment)
}

func (s *Service) Accept(ctx context.Context, id string, comment *string) (*Application, error) {
	return s.transition(ctx, id, StatusAccepted, comment)
}

func (s *Service) Reject(ctx context.Context, id string, comment *string) (*Application, error) {
	return s.transition(ctx, id, StatusRejected, comment)
}

func (s *Service) transition(ctx context.Context, id string, target Status, comment *string) (*Application, error) {
	var from Status
	app, err := s.repo.Update(ctx, id, func(a *Application) error {
		from = a.Status
		a.Status = target
		a.RecruiterComment = comment
		if target == StatusPending {
			// respondedAt is set exactly when the application left PENDING
			a.RespondedAt = nil
			return nil
		}
		now := s.now()
		a.RespondedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ApplicationTransitions.WithLabelValues(string(target)).Inc()
	s.logger.Info("application status changed", map[string]interface{}{
		"applicationId": id,
		"from":          string(from),
		"to":            string(target),
	})
	return app, nil
}

// RecordInterview stores the interview grading. The application moves to
// INTERVIEW unless it is already there, in which case status and response time
// are left alone so re-grading is idempotent.
func (s *Service) RecordInterview(ctx context.Context, id string, record InterviewRecord) (*Application, error) {
	var entered bool
	app, err := s.repo.Update(ctx, id, func(a *Application) error {
		rec := record
		a.Interview = &rec
		if a.Status != StatusInterview {
			now := s.now()
			a.Status = StatusInterview
			a.RespondedAt = &now
			entered = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if entered {
		metrics.ApplicationTransitions.WithLabelValues(string(StatusInterview)).Inc()
	}
	s.logger.Info("interview recorded", map[string]interface{}{
		"applicationId":    id,
		"enteredInterview": entered,
		"checklistItems":   len(record.ChecklistResults),
	})
	return app, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Application, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.NewInvalidInputError("applicationId is required")
	}
	return s.repo.Find(ctx, id)
}

// List returns applications for an offer or recruiter, highest score first.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Application, error) {
	if filter.OfferID == "" && filter.RecruiterID == "" {
		return nil, errors.NewInvalidInputError("offerId or recruiterId is required")
	}
	return s.repo.List(ctx, filter)
}
