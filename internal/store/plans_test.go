package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"testing"
	"time"

	"recruit-workers/internal/careerplan"
	"recruit-workers/internal/common/errors"
	"recruit-workers/internal/readiness"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	planRowColumns = []string{
		"id", "candidate_id", "target_job", "target_domain", "objective_type", "time_horizon_months",
		"description", "readiness_score", "updated_at",
	}
	actionRowColumns = []string{"id", "label", "category", "weight", "estimated_time", "priority", "order_index", "completed"}
	planUpdatedAt    = time.Date(2026, 2, 20, 8, 0, 0, 0, time.UTC)
)

func planRow() *sqlmock.Rows {
	return sqlmock.NewRows(planRowColumns).
		AddRow("plan-1", "cand-1", "Backend developer", "Fintech", "FIRST_JOB", 12, "Join a payments team", 72, planUpdatedAt)
}

func actionRows() *sqlmock.Rows {
	return sqlmock.NewRows(actionRowColumns).
		AddRow("a1", "AWS certification", "CERTIFICATION", 20, "1-2 months", "high", 0, false).
		AddRow("a2", "Side project", "PROJECT", 15, "2-4 weeks", "medium", 1, true).
		AddRow("a3", "Internship", "EXPERIENCE", 15, "variable", "low", 2, false)
}

// ==========================
// FindPlan / SaveObjective
// ==========================

func TestPlanRepo_FindPlan(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`FROM career_plans WHERE candidate_id = \$1`).WithArgs("cand-1").WillReturnRows(planRow())
	mock.ExpectQuery(`FROM career_actions WHERE plan_id = \$1 ORDER BY order_index`).WithArgs("plan-1").WillReturnRows(actionRows())

	plan, err := NewPlanRepo(db).FindPlan(context.Background(), "cand-1")
	require.NoError(t, err)

	assert.Equal(t, "plan-1", plan.ID)
	assert.Equal(t, 12, plan.TimeHorizonMonths)
	assert.Equal(t, 72, plan.ReadinessScore)
	require.Len(t, plan.Actions, 3)
	assert.Equal(t, readiness.PriorityMedium, plan.Actions[1].Priority)
	assert.True(t, plan.Actions[1].Completed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepo_FindPlanMissing(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`FROM career_plans`).WithArgs("cand-9").WillReturnError(sql.ErrNoRows)

	_, err := NewPlanRepo(db).FindPlan(context.Background(), "cand-9")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestPlanRepo_SaveObjective(t *testing.T) {
	db, mock := newMockDB(t)
	plan := &careerplan.CareerPlan{
		ID:          "new-id",
		CandidateID: "cand-1",
		Objective:   careerplan.Objective{TargetJob: "SRE", TargetDomain: "Cloud", ObjectiveType: "CAREER_CHANGE", TimeHorizonMonths: 18},
	}
	mock.ExpectQuery(`INSERT INTO career_plans .* ON CONFLICT \(candidate_id\) DO UPDATE .* RETURNING id`).
		WithArgs("new-id", "cand-1", "SRE", "Cloud", "CAREER_CHANGE", 18, "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("plan-1"))

	id, err := NewPlanRepo(db).SaveObjective(context.Background(), plan)
	require.NoError(t, err)
	assert.Equal(t, "plan-1", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// ReplaceActions
// ==========================

func TestPlanRepo_ReplaceActions(t *testing.T) {
	db, mock := newMockDB(t)
	actions := []readiness.ActionItem{
		{ID: "n1", Label: "Get the CKA", Category: "CERTIFICATION", Weight: 20, EstimatedTime: "1-2 months", Priority: readiness.PriorityHigh, OrderIndex: 0},
		{ID: "n2", Label: "Polish the resume", Category: "", Weight: 10, EstimatedTime: "to be determined", Priority: readiness.PriorityMedium, OrderIndex: 1},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE career_plans SET readiness_score = \$2`).WithArgs("plan-1", 46).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM career_actions WHERE plan_id = \$1`).WithArgs("plan-1").WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`INSERT INTO career_actions`).
		WithArgs("n1", "plan-1", "Get the CKA", "CERTIFICATION", 20, "1-2 months", "high", 0, false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO career_actions`).
		WithArgs("n2", "plan-1", "Polish the resume", "", 10, "to be determined", "medium", 1, false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := NewPlanRepo(db).ReplaceActions(context.Background(), "plan-1", actions, 46)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepo_ReplaceActionsRollsBack(t *testing.T) {
	t.Run("unknown plan", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE career_plans`).WithArgs("plan-x", 10).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := NewPlanRepo(db).ReplaceActions(context.Background(), "plan-x", nil, 10)
		assert.ErrorIs(t, err, errors.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert fails", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE career_plans`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM career_actions`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`INSERT INTO career_actions`).WillReturnError(stderrors.New("disk full"))
		mock.ExpectRollback()

		err := NewPlanRepo(db).ReplaceActions(context.Background(), "plan-1", []readiness.ActionItem{{ID: "n1", Label: "x"}}, 10)
		assert.ErrorIs(t, err, errors.ErrDatabase)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// ==========================
// SavePlan
// ==========================

func TestPlanRepo_SavePlan(t *testing.T) {
	plan := &careerplan.CareerPlan{
		ID:             "new-id",
		CandidateID:    "cand-2",
		Objective:      careerplan.DefaultObjective(),
		ReadinessScore: 46,
		Actions: []readiness.ActionItem{
			{ID: "n1", Label: "Get the CKA", Category: "CERTIFICATION", Weight: 20, EstimatedTime: "1-2 months", Priority: readiness.PriorityHigh, OrderIndex: 0},
		},
	}
	obj := plan.Objective

	t.Run("objective and actions in one transaction", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO career_plans .* RETURNING id`).
			WithArgs("new-id", "cand-2", obj.TargetJob, obj.TargetDomain, obj.ObjectiveType, obj.TimeHorizonMonths, obj.Description).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("plan-7"))
		mock.ExpectExec(`UPDATE career_plans SET readiness_score = \$2`).WithArgs("plan-7", 46).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM career_actions WHERE plan_id = \$1`).WithArgs("plan-7").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`INSERT INTO career_actions`).
			WithArgs("n1", "plan-7", "Get the CKA", "CERTIFICATION", 20, "1-2 months", "high", 0, false).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		id, err := NewPlanRepo(db).SavePlan(context.Background(), plan)
		require.NoError(t, err)
		assert.Equal(t, "plan-7", id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failed action insert rolls back the objective", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO career_plans`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("plan-7"))
		mock.ExpectExec(`UPDATE career_plans`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM career_actions`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`INSERT INTO career_actions`).WillReturnError(stderrors.New("disk full"))
		mock.ExpectRollback()

		_, err := NewPlanRepo(db).SavePlan(context.Background(), plan)
		assert.ErrorIs(t, err, errors.ErrDatabase)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// ==========================
// Mutate
// ==========================

func TestPlanRepo_MutateWritesChangedFlags(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM career_plans WHERE candidate_id = \$1 FOR UPDATE`).WithArgs("cand-1").WillReturnRows(planRow())
	mock.ExpectQuery(`FROM career_actions`).WithArgs("plan-1").WillReturnRows(actionRows())
	mock.ExpectExec(`UPDATE career_plans SET readiness_score = \$2`).WithArgs("plan-1", 56).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE career_actions SET completed = \$3`).WithArgs("a1", "plan-1", true).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	plan, err := NewPlanRepo(db).Mutate(context.Background(), "cand-1", func(p *careerplan.CareerPlan) error {
		p.Actions[0].Completed = true
		p.ReadinessScore = 56
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 56, plan.ReadinessScore)
	assert.True(t, plan.Actions[0].Completed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepo_MutateRollsBackOnCallbackError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs("cand-1").WillReturnRows(planRow())
	mock.ExpectQuery(`FROM career_actions`).WithArgs("plan-1").WillReturnRows(actionRows())
	mock.ExpectRollback()

	_, err := NewPlanRepo(db).Mutate(context.Background(), "cand-1", func(p *careerplan.CareerPlan) error {
		return errors.NewNotFoundError("career action", "b1")
	})

	assert.ErrorIs(t, err, errors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanRepo_MutateMissingPlan(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs("cand-9").WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := NewPlanRepo(db).Mutate(context.Background(), "cand-9", func(*careerplan.CareerPlan) error { return nil })

	assert.ErrorIs(t, err, errors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
