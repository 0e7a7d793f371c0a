package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"recruit-workers/internal/common/database"
	"recruit-workers/internal/common/errors"
	"recruit-workers/internal/lifecycle"
)

const applicationColumns = `a.id, a.candidate_id, a.offer_id, a.status, a.score, a.cover_letter, a.cv_url,
	a.submitted_at, a.responded_at, a.recruiter_comment,
	a.interview_checklist, a.interview_skill_comments, a.interview_notes`

// ApplicationRepo stores applications in the applications table.
type ApplicationRepo struct {
	db *sql.DB
}

func NewApplicationRepo(db *sql.DB) *ApplicationRepo {
	return &ApplicationRepo{db: db}
}

func (r *ApplicationRepo) Create(ctx context.Context, app *lifecycle.Application) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO applications (id, candidate_id, offer_id, status, score, cover_letter, cv_url, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		app.ID, app.CandidateID, app.OfferID, string(app.Status), app.Score,
		app.CoverLetter, app.CVURL, app.SubmittedAt,
	)
	if isUniqueViolation(err) {
		return errors.NewConflictError(fmt.Sprintf("candidate %s already applied to offer %s", app.CandidateID, app.OfferID))
	}
	if err != nil {
		return errors.NewDatabaseError("insert application", err)
	}
	return nil
}

func (r *ApplicationRepo) Find(ctx context.Context, id string) (*lifecycle.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications a WHERE a.id = $1`, id)
	app, err := scanApplication(row)
	if err != nil {
		return nil, lookupError(err, "application", id)
	}
	return app, nil
}

// Update locks the row, applies mutate and writes back every mutable column.
func (r *ApplicationRepo) Update(ctx context.Context, id string, mutate func(*lifecycle.Application) error) (*lifecycle.Application, error) {
	var out *lifecycle.Application
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications a WHERE a.id = $1 FOR UPDATE`, id)
		app, err := scanApplication(row)
		if err != nil {
			return lookupError(err, "application", id)
		}

		if err := mutate(app); err != nil {
			return err
		}

		checklist, skillComments, notes, err := interviewColumns(app.Interview)
		if err != nil {
			return err
		}
		var comment sql.NullString
		if app.RecruiterComment != nil {
			comment = sql.NullString{String: *app.RecruiterComment, Valid: true}
		}
		var respondedAt sql.NullTime
		if app.RespondedAt != nil {
			respondedAt = sql.NullTime{Time: *app.RespondedAt, Valid: true}
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE applications
			SET status = $2, responded_at = $3, recruiter_comment = $4,
			    interview_checklist = $5, interview_skill_comments = $6, interview_notes = $7
			WHERE id = $1`,
			id, string(app.Status), respondedAt, comment, checklist, skillComments, notes,
		); err != nil {
			return err
		}
		out = app
		return nil
	})
	if err != nil {
		return nil, passThrough(err, "update application")
	}
	return out, nil
}

// List returns the matching applications ordered by score, best first. Ties
// keep submission order.
func (r *ApplicationRepo) List(ctx context.Context, filter lifecycle.ListFilter) ([]*lifecycle.Application, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.OfferID != "" {
		args = append(args, filter.OfferID)
		conds = append(conds, fmt.Sprintf("a.offer_id = $%d", len(args)))
	}
	if filter.RecruiterID != "" {
		args = append(args, filter.RecruiterID)
		conds = append(conds, fmt.Sprintf("o.recruiter_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conds = append(conds, fmt.Sprintf("a.status = $%d", len(args)))
	}

	query := `SELECT ` + applicationColumns + ` FROM applications a JOIN offers o ON o.id = a.offer_id`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY a.score DESC, a.submitted_at ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewDatabaseError("list applications", err)
	}
	defer rows.Close()

	apps := make([]*lifecycle.Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, errors.NewDatabaseError("scan application", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDatabaseError("list applications", err)
	}
	return apps, nil
}

func scanApplication(row rowScanner) (*lifecycle.Application, error) {
	var (
		app           lifecycle.Application
		status        string
		respondedAt   sql.NullTime
		comment       sql.NullString
		checklist     []byte
		skillComments []byte
		notes         sql.NullString
	)
	if err := row.Scan(
		&app.ID, &app.CandidateID, &app.OfferID, &status, &app.Score, &app.CoverLetter, &app.CVURL,
		&app.SubmittedAt, &respondedAt, &comment,
		&checklist, &skillComments, &notes,
	); err != nil {
		return nil, err
	}

	app.Status = lifecycle.Status(status)
	if respondedAt.Valid {
		t := respondedAt.Time
		app.RespondedAt = &t
	}
	if comment.Valid {
		c := comment.String
		app.RecruiterComment = &c
	}

	if checklist != nil || skillComments != nil || notes.Valid {
		rec := &lifecycle.InterviewRecord{Notes: notes.String}
		if checklist != nil {
			if err := json.Unmarshal(checklist, &rec.ChecklistResults); err != nil {
				return nil, fmt.Errorf("decode interview checklist: %w", err)
			}
		}
		if skillComments != nil {
			if err := json.Unmarshal(skillComments, &rec.SkillComments); err != nil {
				return nil, fmt.Errorf("decode interview skill comments: %w", err)
			}
		}
		app.Interview = rec
	}
	return &app, nil
}

// interviewColumns encodes a record for the three interview columns; a nil
// record clears them.
func interviewColumns(rec *lifecycle.InterviewRecord) (checklist, skillComments interface{}, notes sql.NullString, err error) {
	if rec == nil {
		return nil, nil, sql.NullString{}, nil
	}
	if checklist, err = json.Marshal(rec.ChecklistResults); err != nil {
		return nil, nil, notes, err
	}
	if skillComments, err = json.Marshal(rec.SkillComments); err != nil {
		return nil, nil, notes, err
	}
	return checklist, skillComments, sql.NullString{String: rec.Notes, Valid: true}, nil
}
