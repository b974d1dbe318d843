package repository

import (
	"context"
	"database/sql"
)

// SubmissionRepo handles submission history.
type SubmissionRepo struct {
	db *sql.DB
}

func NewSubmissionRepo(db *sql.DB) *SubmissionRepo { return &SubmissionRepo{db: db} }

func (r *SubmissionRepo) Insert(ctx context.Context, s Submission) error {
	majors, err := encodeList(s.Majors)
	if err != nil {
		return err
	}
	minors, err := encodeList(s.Minors)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
	INSERT INTO submissions(id, majors_json, minors_json, response, error, submitted_at)
	VALUES (?, ?, ?, ?, ?, ?);
	`, s.ID, majors, minors, s.Response, s.Error, s.SubmittedAt)
	return err
}

// List returns the newest submissions first. limit <= 0 returns all.
func (r *SubmissionRepo) List(ctx context.Context, limit int) ([]Submission, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, majors_json, minors_json, response, error, submitted_at
	FROM submissions ORDER BY submitted_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Submission
	for rows.Next() {
		var (
			s              Submission
			majors, minors string
		)
		if err := rows.Scan(&s.ID, &majors, &minors, &s.Response, &s.Error, &s.SubmittedAt); err != nil {
			return nil, err
		}
		if s.Majors, err = decodeList(majors); err != nil {
			return nil, err
		}
		if s.Minors, err = decodeList(minors); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
