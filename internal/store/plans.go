package store

import (
	"context"
	"database/sql"

	"recruit-workers/internal/careerplan"
	"recruit-workers/internal/common/database"
	"recruit-workers/internal/common/errors"
	"recruit-workers/internal/readiness"
)

const planColumns = `id, candidate_id, target_job, target_domain, objective_type, time_horizon_months,
	description, readiness_score, updated_at`

// PlanRepo stores career plans and their actions.
type PlanRepo struct {
	db *sql.DB
}

func NewPlanRepo(db *sql.DB) *PlanRepo {
	return &PlanRepo{db: db}
}

func (r *PlanRepo) FindPlan(ctx context.Context, candidateID string) (*careerplan.CareerPlan, error) {
	return loadPlan(ctx, r.db, `SELECT `+planColumns+` FROM career_plans WHERE candidate_id = $1`, candidateID)
}

func (r *PlanRepo) SaveObjective(ctx context.Context, plan *careerplan.CareerPlan) (string, error) {
	id, err := upsertObjective(ctx, r.db, plan)
	if err != nil {
		return "", errors.NewDatabaseError("save career objective", err)
	}
	return id, nil
}

func (r *PlanRepo) ReplaceActions(ctx context.Context, planID string, actions []readiness.ActionItem, readinessScore int) error {
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		return writeActions(ctx, tx, planID, actions, readinessScore)
	})
	return passThrough(err, "replace career actions")
}

// SavePlan upserts the objective, then replaces the actions and readiness
// score of the stored plan, all in one transaction.
func (r *PlanRepo) SavePlan(ctx context.Context, plan *careerplan.CareerPlan) (string, error) {
	var id string
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		if id, err = upsertObjective(ctx, tx, plan); err != nil {
			return err
		}
		return writeActions(ctx, tx, id, plan.Actions, plan.ReadinessScore)
	})
	if err != nil {
		return "", passThrough(err, "save career plan")
	}
	return id, nil
}

func upsertObjective(ctx context.Context, q queryer, plan *careerplan.CareerPlan) (string, error) {
	var id string
	err := q.QueryRowContext(ctx, `
		INSERT INTO career_plans (id, candidate_id, target_job, target_domain, objective_type, time_horizon_months, description, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (candidate_id) DO UPDATE
		SET target_job = EXCLUDED.target_job,
		    target_domain = EXCLUDED.target_domain,
		    objective_type = EXCLUDED.objective_type,
		    time_horizon_months = EXCLUDED.time_horizon_months,
		    description = EXCLUDED.description,
		    updated_at = now()
		RETURNING id`,
		plan.ID, plan.CandidateID, plan.TargetJob, plan.TargetDomain, plan.ObjectiveType,
		plan.TimeHorizonMonths, plan.Description,
	).Scan(&id)
	return id, err
}

func writeActions(ctx context.Context, tx *sql.Tx, planID string, actions []readiness.ActionItem, readinessScore int) error {
	res, err := tx.ExecContext(ctx, `UPDATE career_plans SET readiness_score = $2, updated_at = now() WHERE id = $1`, planID, readinessScore)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return errors.NewNotFoundError("career plan", planID)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM career_actions WHERE plan_id = $1`, planID); err != nil {
		return err
	}
	for _, a := range actions {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO career_actions (id, plan_id, label, category, weight, estimated_time, priority, order_index, completed)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			a.ID, planID, a.Label, a.Category, a.Weight, a.EstimatedTime, string(a.Priority), a.OrderIndex, a.Completed,
		); err != nil {
			return err
		}
	}
	return nil
}

// Mutate locks the candidate's plan row for the duration of fn, then writes
// the readiness score and any completion flags fn changed.
func (r *PlanRepo) Mutate(ctx context.Context, candidateID string, fn func(*careerplan.CareerPlan) error) (*careerplan.CareerPlan, error) {
	var out *careerplan.CareerPlan
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		plan, err := loadPlan(ctx, tx, `SELECT `+planColumns+` FROM career_plans WHERE candidate_id = $1 FOR UPDATE`, candidateID)
		if err != nil {
			return err
		}

		before := make(map[string]bool, len(plan.Actions))
		for _, a := range plan.Actions {
			before[a.ID] = a.Completed
		}

		if err := fn(plan); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `UPDATE career_plans SET readiness_score = $2, updated_at = now() WHERE id = $1`, plan.ID, plan.ReadinessScore); err != nil {
			return err
		}
		for _, a := range plan.Actions {
			if was, ok := before[a.ID]; ok && was == a.Completed {
				continue
			}
			if _, err := tx.ExecContext(ctx, `UPDATE career_actions SET completed = $3 WHERE id = $1 AND plan_id = $2`, a.ID, plan.ID, a.Completed); err != nil {
				return err
			}
		}
		out = plan
		return nil
	})
	if err != nil {
		return nil, passThrough(err, "update career plan")
	}
	return out, nil
}

func loadPlan(ctx context.Context, q queryer, query, candidateID string) (*careerplan.CareerPlan, error) {
	var p careerplan.CareerPlan
	err := q.QueryRowContext(ctx, query, candidateID).Scan(
		&p.ID, &p.CandidateID, &p.TargetJob, &p.TargetDomain, &p.ObjectiveType, &p.TimeHorizonMonths,
		&p.Description, &p.ReadinessScore, &p.UpdatedAt,
	)
	if err != nil {
		return nil, lookupError(err, "career plan", candidateID)
	}

	rows, err := q.QueryContext(ctx, `
		SELECT id, label, category, weight, estimated_time, priority, order_index, completed
		FROM career_actions
		WHERE plan_id = $1
		ORDER BY order_index`, p.ID)
	if err != nil {
		return nil, errors.NewDatabaseError("load career actions", err)
	}
	defer rows.Close()

	p.Actions = make([]readiness.ActionItem, 0)
	for rows.Next() {
		var (
			a        readiness.ActionItem
			priority string
		)
		if err := rows.Scan(&a.ID, &a.Label, &a.Category, &a.Weight, &a.EstimatedTime, &priority, &a.OrderIndex, &a.Completed); err != nil {
			return nil, errors.NewDatabaseError("scan career action", err)
		}
		a.Priority = readiness.Priority(priority)
		p.Actions = append(p.Actions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDatabaseError("load career actions", err)
	}
	return &p, nil
}
