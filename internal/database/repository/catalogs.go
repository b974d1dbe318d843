package repository

import (
	"context"
	"database/sql"
	"errors"
)

// CatalogRepo handles catalog snapshots.
type CatalogRepo struct {
	db *sql.DB
}

func NewCatalogRepo(db *sql.DB) *CatalogRepo { return &CatalogRepo{db: db} }

func (r *CatalogRepo) Save(ctx context.Context, s CatalogSnapshot) error {
	majors, err := encodeList(s.Majors)
	if err != nil {
		return err
	}
	minors, err := encodeList(s.Minors)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
	INSERT INTO catalog_snapshots(id, source, majors_json, minors_json, fetched_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 source=excluded.source,
	 majors_json=excluded.majors_json,
	 minors_json=excluded.minors_json,
	 fetched_at=excluded.fetched_at;
	`, s.ID, s.Source, majors, minors, s.FetchedAt)
	return err
}

// Latest returns the newest snapshot for source, or nil when none exists.
func (r *CatalogRepo) Latest(ctx context.Context, source string) (*CatalogSnapshot, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, source, majors_json, minors_json, fetched_at
	FROM catalog_snapshots WHERE source = ?
	ORDER BY fetched_at DESC, rowid DESC LIMIT 1`, source)
	var (
		s              CatalogSnapshot
		majors, minors string
	)
	if err := row.Scan(&s.ID, &s.Source, &majors, &minors, &s.FetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	var err error
	if s.Majors, err = decodeList(majors); err != nil {
		return nil, err
	}
	if s.Minors, err = decodeList(minors); err != nil {
		return nil, err
	}
	return &s, nil
}

// Prune keeps the newest keep snapshots per source.
func (r *CatalogRepo) Prune(ctx context.Context, source string, keep int) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
	DELETE FROM catalog_snapshots
	WHERE source = ? AND id NOT IN (
	  SELECT id FROM catalog_snapshots WHERE source = ?
	  ORDER BY fetched_at DESC, rowid DESC LIMIT ?
	)`, source, source, keep)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
