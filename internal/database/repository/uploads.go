package repository

import (
	"context"
	"database/sql"
)

// UploadRepo handles upload history.
type UploadRepo struct {
	db *sql.DB
}

func NewUploadRepo(db *sql.DB) *UploadRepo { return &UploadRepo{db: db} }

func (r *UploadRepo) Insert(ctx context.Context, u Upload) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO uploads(id, file_name, size_bytes, response, error, uploaded_at)
	VALUES (?, ?, ?, ?, ?, ?);
	`, u.ID, u.FileName, u.SizeBytes, u.Response, u.Error, u.UploadedAt)
	return err
}

// List returns the newest uploads first. limit <= 0 returns all.
func (r *UploadRepo) List(ctx context.Context, limit int) ([]Upload, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, file_name, size_bytes, response, error, uploaded_at
	FROM uploads ORDER BY uploaded_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Upload
	for rows.Next() {
		var u Upload
		if err := rows.Scan(&u.ID, &u.FileName, &u.SizeBytes, &u.Response, &u.Error, &u.UploadedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
