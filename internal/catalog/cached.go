package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jask/degreeplan/internal/database/repository"
)

// SnapshotStore persists catalog snapshots.
type SnapshotStore interface {
	Save(ctx context.Context, s repository.CatalogSnapshot) error
	Latest(ctx context.Context, source string) (*repository.CatalogSnapshot, error)
	Prune(ctx context.Context, source string, keep int) (int64, error)
}

// CachedSource snapshots every successful load of Primary and serves the
// newest snapshot when Primary fails.
type CachedSource struct {
	Primary   Source
	Snapshots SnapshotStore
	// Keep bounds the snapshots retained per source; zero keeps all.
	Keep int
	Log  zerolog.Logger
	Now  func() time.Time
}

func (s *CachedSource) Name() string { return s.Primary.Name() }

func (s *CachedSource) Load(ctx context.Context) (Catalog, error) {
	cat, err := s.Primary.Load(ctx)
	if err == nil {
		s.store(ctx, cat)
		return cat, nil
	}

	s.Log.Warn().Err(err).Str("source", s.Primary.Name()).Msg("catalog load failed, trying snapshot")
	snap, snapErr := s.Snapshots.Latest(ctx, s.Primary.Name())
	if snapErr != nil {
		s.Log.Error().Err(snapErr).Msg("read catalog snapshot")
		return Catalog{}, fmt.Errorf("load %s catalog: %w", s.Primary.Name(), err)
	}
	if snap == nil {
		s.Log.Warn().Str("source", s.Primary.Name()).Msg("no catalog snapshot available")
		return Catalog{}, fmt.Errorf("load %s catalog: %w", s.Primary.Name(), err)
	}
	s.Log.Info().
		Str("source", snap.Source).
		Time("fetched_at", snap.FetchedAt).
		Int("majors", len(snap.Majors)).
		Int("minors", len(snap.Minors)).
		Msg("serving cached catalog")
	return Catalog{
		Majors:    nonNil(snap.Majors),
		Minors:    nonNil(snap.Minors),
		Origin:    snap.Source,
		FetchedAt: snap.FetchedAt,
		Stale:     true,
	}, nil
}

func (s *CachedSource) store(ctx context.Context, cat Catalog) {
	fetched := cat.FetchedAt
	if fetched.IsZero() {
		fetched = now(s.Now)
	}
	snap := repository.CatalogSnapshot{
		ID:        uuid.NewString(),
		Source:    s.Primary.Name(),
		Majors:    cat.Majors,
		Minors:    cat.Minors,
		FetchedAt: fetched,
	}
	if err := s.Snapshots.Save(ctx, snap); err != nil {
		s.Log.Warn().Err(err).Msg("save catalog snapshot")
		return
	}
	if s.Keep > 0 {
		if _, err := s.Snapshots.Prune(ctx, snap.Source, s.Keep); err != nil {
			s.Log.Warn().Err(err).Msg("prune catalog snapshots")
		}
	}
}
