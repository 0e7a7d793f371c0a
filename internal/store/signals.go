package store

import (
	"context"
	"database/sql"
	"time"

	"recruit-workers/internal/careerplan"
	"recruit-workers/internal/common/database"
	"recruit-workers/internal/common/errors"
	"recruit-workers/internal/common/logger"
	"recruit-workers/internal/matching"

	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

const (
	candidateSignalsKey = "candidate:signals:"
	offerSignalsKey     = "offer:signals:"
)

// SignalStore reads candidate and offer data. Scoring signals are cached in
// Redis for ttl; a nil cache disables caching. Cache failures are logged and
// fall back to the database.
type SignalStore struct {
	db     *sql.DB
	cache  redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewSignalStore(db *sql.DB, cache redis.Cmdable, ttl time.Duration, log logger.Logger) *SignalStore {
	return &SignalStore{db: db, cache: cache, ttl: ttl, logger: log}
}

func (s *SignalStore) CandidateSignals(ctx context.Context, candidateID string) (*matching.CandidateSignals, error) {
	key := candidateSignalsKey + candidateID
	var sig matching.CandidateSignals
	if s.fromCache(ctx, key, &sig) {
		return &sig, nil
	}

	err := s.db.QueryRowContext(ctx, `
		SELECT skills, education_level, field_of_study
		FROM candidates
		WHERE id = $1`, candidateID).Scan(pq.Array(&sig.Skills), &sig.EducationLevel, &sig.FieldOfStudy)
	if err != nil {
		return nil, lookupError(err, "candidate", candidateID)
	}

	s.toCache(ctx, key, &sig)
	return &sig, nil
}

func (s *SignalStore) OfferSignals(ctx context.Context, offerID string) (*matching.OfferSignals, error) {
	key := offerSignalsKey + offerID
	var sig matching.OfferSignals
	if s.fromCache(ctx, key, &sig) {
		return &sig, nil
	}

	err := s.db.QueryRowContext(ctx, `
		SELECT required_skills, experience_level, contract_type
		FROM offers
		WHERE id = $1`, offerID).Scan(&sig.RequiredSkills, &sig.ExperienceLevel, &sig.ContractType)
	if err != nil {
		return nil, lookupError(err, "offer", offerID)
	}

	s.toCache(ctx, key, &sig)
	return &sig, nil
}

// Invalidate drops cached signals for a candidate and an offer. Empty ids are
// skipped.
func (s *SignalStore) Invalidate(ctx context.Context, candidateID, offerID string) error {
	if s.cache == nil {
		return nil
	}
	var keys []string
	if candidateID != "" {
		keys = append(keys, candidateSignalsKey+candidateID)
	}
	if offerID != "" {
		keys = append(keys, offerSignalsKey+offerID)
	}
	if len(keys) == 0 {
		return nil
	}
	return s.cache.Del(ctx, keys...).Err()
}

// Profile loads the candidate summary used to build career plans.
func (s *SignalStore) Profile(ctx context.Context, candidateID string) (*careerplan.Profile, error) {
	var p careerplan.Profile
	err := s.db.QueryRowContext(ctx, `
		SELECT first_name, last_name, skills, languages
		FROM candidates
		WHERE id = $1`, candidateID).Scan(&p.FirstName, &p.LastName, pq.Array(&p.Skills), pq.Array(&p.Languages))
	if err != nil {
		return nil, lookupError(err, "candidate", candidateID)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT title, company
		FROM candidate_experiences
		WHERE candidate_id = $1
		ORDER BY started_on DESC NULLS LAST, id`, candidateID)
	if err != nil {
		return nil, errors.NewDatabaseError("load experiences", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e careerplan.Experience
		if err := rows.Scan(&e.Title, &e.Company); err != nil {
			return nil, errors.NewDatabaseError("scan experience", err)
		}
		p.Experiences = append(p.Experiences, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDatabaseError("load experiences", err)
	}
	return &p, nil
}

func (s *SignalStore) fromCache(ctx context.Context, key string, dst interface{}) bool {
	if s.cache == nil {
		return false
	}
	found, err := database.GetJSON(ctx, s.cache, key, dst)
	if err != nil {
		s.logger.Warn("signal cache read failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return false
	}
	return found
}

func (s *SignalStore) toCache(ctx context.Context, key string, v interface{}) {
	if s.cache == nil {
		return
	}
	if err := database.SetJSON(ctx, s.cache, key, v, s.ttl); err != nil {
		s.logger.Warn("signal cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}
