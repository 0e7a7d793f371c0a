package database

import (
	"context"
	"fmt"
)

// Schema is applied idempotently at startup.
const Schema = `
CREATE TABLE IF NOT EXISTS candidates (
    id              TEXT PRIMARY KEY,
    skills          TEXT[] NOT NULL DEFAULT '{}',
    education_level TEXT NOT NULL DEFAULT '',
    field_of_study  TEXT NOT NULL DEFAULT '',
    first_name      TEXT NOT NULL DEFAULT '',
    last_name       TEXT NOT NULL DEFAULT '',
    languages       TEXT[] NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS candidate_experiences (
    id           BIGSERIAL PRIMARY KEY,
    candidate_id TEXT NOT NULL REFERENCES candidates(id) ON DELETE CASCADE,
    title        TEXT NOT NULL DEFAULT '',
    company      TEXT NOT NULL DEFAULT '',
    started_on   DATE
);

CREATE TABLE IF NOT EXISTS offers (
    id               TEXT PRIMARY KEY,
    recruiter_id     TEXT NOT NULL DEFAULT '',
    required_skills  TEXT NOT NULL DEFAULT '',
    experience_level TEXT NOT NULL DEFAULT '',
    contract_type    TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS applications (
    id                TEXT PRIMARY KEY,
    candidate_id      TEXT NOT NULL REFERENCES candidates(id),
    offer_id          TEXT NOT NULL REFERENCES offers(id),
    status            TEXT NOT NULL,
    score             INTEGER NOT NULL CHECK (score BETWEEN 0 AND 100),
    cover_letter      TEXT NOT NULL DEFAULT '',
    cv_url            TEXT NOT NULL DEFAULT '',
    submitted_at      TIMESTAMPTZ NOT NULL,
    responded_at      TIMESTAMPTZ,
    recruiter_comment TEXT,
    interview_checklist      JSONB,
    interview_skill_comments JSONB,
    interview_notes          TEXT,
    UNIQUE (candidate_id, offer_id)
);

CREATE INDEX IF NOT EXISTS idx_applications_offer_score ON applications (offer_id, score DESC);
CREATE INDEX IF NOT EXISTS idx_offers_recruiter ON offers (recruiter_id);

CREATE TABLE IF NOT EXISTS career_plans (
    id                  TEXT PRIMARY KEY,
    candidate_id        TEXT NOT NULL UNIQUE,
    target_job          TEXT NOT NULL DEFAULT '',
    target_domain       TEXT NOT NULL DEFAULT '',
    objective_type      TEXT NOT NULL DEFAULT '',
    time_horizon_months INTEGER NOT NULL DEFAULT 0,
    description         TEXT NOT NULL DEFAULT '',
    readiness_score     INTEGER NOT NULL DEFAULT 0 CHECK (readiness_score BETWEEN 0 AND 100),
    updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS career_actions (
    id             TEXT PRIMARY KEY,
    plan_id        TEXT NOT NULL REFERENCES career_plans(id) ON DELETE CASCADE,
    label          TEXT NOT NULL,
    category       TEXT NOT NULL DEFAULT '',
    weight         INTEGER NOT NULL CHECK (weight >= 0),
    estimated_time TEXT NOT NULL DEFAULT '',
    priority       TEXT NOT NULL,
    order_index    INTEGER NOT NULL,
    completed      BOOLEAN NOT NULL DEFAULT false
);

CREATE INDEX IF NOT EXISTS idx_career_actions_plan ON career_actions (plan_id, order_index);
`

// EnsureSchema creates the tables used by the store if they are missing.
func (c *PostgresClient) EnsureSchema(ctx context.Context) error {
	if _, err := c.DB.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
