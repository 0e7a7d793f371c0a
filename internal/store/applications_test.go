package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	stderrors "errors"
	"testing"
	"time"

	"recruit-workers/internal/common/errors"
	"recruit-workers/internal/lifecycle"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

var applicationRowColumns = []string{
	"id", "candidate_id", "offer_id", "status", "score", "cover_letter", "cv_url",
	"submitted_at", "responded_at", "recruiter_comment",
	"interview_checklist", "interview_skill_comments", "interview_notes",
}

var submittedAt = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func pendingRow(id string, score int) *sqlmock.Rows {
	return sqlmock.NewRows(applicationRowColumns).
		AddRow(id, "cand-1", "offer-1", "PENDING", score, "Hello", "https://cv/1.pdf", submittedAt, nil, nil, nil, nil, nil)
}

// ==========================
// Create / Find
// ==========================

func TestApplicationRepo_Create(t *testing.T) {
	app := &lifecycle.Application{
		ID: "app-1", CandidateID: "cand-1", OfferID: "offer-1",
		Status: lifecycle.StatusPending, Score: 88, SubmittedAt: submittedAt,
	}

	tests := []struct {
		name    string
		dbErr   error
		wantErr error
	}{
		{"inserted", nil, nil},
		{"duplicate pair", &pq.Error{Code: "23505", Message: "duplicate key value"}, errors.ErrConflict},
		{"connection lost", stderrors.New("connection reset"), errors.ErrDatabase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			exp := mock.ExpectExec(`INSERT INTO applications`).
				WithArgs("app-1", "cand-1", "offer-1", "PENDING", 88, "", "", submittedAt)
			if tt.dbErr != nil {
				exp.WillReturnError(tt.dbErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err := NewApplicationRepo(db).Create(context.Background(), app)

			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestApplicationRepo_Find(t *testing.T) {
	t.Run("with interview record", func(t *testing.T) {
		db, mock := newMockDB(t)
		responded := submittedAt.Add(72 * time.Hour)
		rows := sqlmock.NewRows(applicationRowColumns).AddRow(
			"app-1", "cand-1", "offer-1", "INTERVIEW", 75, "", "", submittedAt, responded, "Strong profile",
			[]byte(`{"communication":true,"go":false}`), []byte(`{"1":"solid SQL"}`), "Second round next week",
		)
		mock.ExpectQuery(`FROM applications a WHERE a.id = \$1`).WithArgs("app-1").WillReturnRows(rows)

		app, err := NewApplicationRepo(db).Find(context.Background(), "app-1")
		require.NoError(t, err)

		assert.Equal(t, lifecycle.StatusInterview, app.Status)
		require.NotNil(t, app.RespondedAt)
		assert.True(t, responded.Equal(*app.RespondedAt))
		require.NotNil(t, app.RecruiterComment)
		assert.Equal(t, "Strong profile", *app.RecruiterComment)
		require.NotNil(t, app.Interview)
		assert.Equal(t, map[string]bool{"communication": true, "go": false}, app.Interview.ChecklistResults)
		assert.Equal(t, map[int]string{1: "solid SQL"}, app.Interview.SkillComments)
		assert.Equal(t, "Second round next week", app.Interview.Notes)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("pending application", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`FROM applications a WHERE a.id = \$1`).WithArgs("app-2").WillReturnRows(pendingRow("app-2", 40))

		app, err := NewApplicationRepo(db).Find(context.Background(), "app-2")
		require.NoError(t, err)

		assert.Nil(t, app.RespondedAt)
		assert.Nil(t, app.RecruiterComment)
		assert.Nil(t, app.Interview)
		assert.Equal(t, "https://cv/1.pdf", app.CVURL)
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`FROM applications a WHERE a.id = \$1`).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

		_, err := NewApplicationRepo(db).Find(context.Background(), "ghost")
		assert.ErrorIs(t, err, errors.ErrNotFound)
	})
}

// ==========================
// Update
// ==========================

func TestApplicationRepo_Update(t *testing.T) {
	db, mock := newMockDB(t)
	responded := submittedAt.Add(48 * time.Hour)
	comment := "Not a fit"

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM applications a WHERE a.id = \$1 FOR UPDATE`).WithArgs("app-1").WillReturnRows(pendingRow("app-1", 60))
	mock.ExpectExec(`UPDATE applications SET status = \$2`).
		WithArgs("app-1", "REJECTED", responded, comment, nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	app, err := NewApplicationRepo(db).Update(context.Background(), "app-1", func(a *lifecycle.Application) error {
		a.Status = lifecycle.StatusRejected
		a.RespondedAt = &responded
		a.RecruiterComment = &comment
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, lifecycle.StatusRejected, app.Status)
	assert.Equal(t, 60, app.Score)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepo_UpdateWritesInterview(t *testing.T) {
	db, mock := newMockDB(t)
	responded := submittedAt.Add(24 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs("app-1").WillReturnRows(pendingRow("app-1", 60))
	mock.ExpectExec(`UPDATE applications`).
		WithArgs("app-1", "INTERVIEW", responded, nil, []byte(`{"english":true}`), []byte(`{"2":"needs practice"}`), "ok").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err := NewApplicationRepo(db).Update(context.Background(), "app-1", func(a *lifecycle.Application) error {
		a.Status = lifecycle.StatusInterview
		a.RespondedAt = &responded
		a.Interview = &lifecycle.InterviewRecord{
			ChecklistResults: map[string]bool{"english": true},
			SkillComments:    map[int]string{2: "needs practice"},
			Notes:            "ok",
		}
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepo_UpdateRollsBack(t *testing.T) {
	t.Run("missing application", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`FOR UPDATE`).WithArgs("ghost").WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		_, err := NewApplicationRepo(db).Update(context.Background(), "ghost", func(*lifecycle.Application) error { return nil })

		assert.ErrorIs(t, err, errors.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("mutate error is returned as is", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`FOR UPDATE`).WithArgs("app-1").WillReturnRows(pendingRow("app-1", 60))
		mock.ExpectRollback()

		_, err := NewApplicationRepo(db).Update(context.Background(), "app-1", func(*lifecycle.Application) error {
			return errors.NewInvalidInputError("nope")
		})

		assert.ErrorIs(t, err, errors.ErrInvalidInput)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// ==========================
// List
// ==========================

func TestApplicationRepo_List(t *testing.T) {
	tests := []struct {
		name   string
		filter lifecycle.ListFilter
		query  string
		args   []driver.Value
	}{
		{
			name:   "by offer",
			filter: lifecycle.ListFilter{OfferID: "offer-1"},
			query:  `JOIN offers o ON o.id = a.offer_id WHERE a.offer_id = \$1 ORDER BY a.score DESC`,
			args:   []driver.Value{"offer-1"},
		},
		{
			name:   "by recruiter and status",
			filter: lifecycle.ListFilter{RecruiterID: "rec-1", Status: lifecycle.StatusPending},
			query:  `WHERE o.recruiter_id = \$1 AND a.status = \$2 ORDER BY a.score DESC`,
			args:   []driver.Value{"rec-1", "PENDING"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			rows := sqlmock.NewRows(applicationRowColumns).
				AddRow("app-2", "cand-2", "offer-1", "PENDING", 91, "", "", submittedAt, nil, nil, nil, nil, nil).
				AddRow("app-1", "cand-1", "offer-1", "PENDING", 64, "", "", submittedAt, nil, nil, nil, nil, nil)
			mock.ExpectQuery(tt.query).WithArgs(tt.args...).WillReturnRows(rows)

			apps, err := NewApplicationRepo(db).List(context.Background(), tt.filter)
			require.NoError(t, err)

			require.Len(t, apps, 2)
			assert.Equal(t, 91, apps[0].Score)
			assert.Equal(t, 64, apps[1].Score)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestApplicationRepo_ListEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`FROM applications a`).WillReturnRows(sqlmock.NewRows(applicationRowColumns))

	apps, err := NewApplicationRepo(db).List(context.Background(), lifecycle.ListFilter{OfferID: "offer-9"})
	require.NoError(t, err)
	assert.NotNil(t, apps)
	assert.Empty(t, apps)
}
