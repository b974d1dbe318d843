package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jask/degreeplan/internal/database"
	"github.com/jask/degreeplan/internal/planner"
)

// OptionsFetcher is the part of the planner client a RemoteSource needs.
type OptionsFetcher interface {
	FetchOptions(ctx context.Context) (planner.Options, error)
}

// RemoteSource loads the catalog from the planner service.
type RemoteSource struct {
	Client OptionsFetcher
	Now    func() time.Time
}

func (s *RemoteSource) Name() string { return "remote" }

func (s *RemoteSource) Load(ctx context.Context) (Catalog, error) {
	opts, err := s.Client.FetchOptions(ctx)
	if err != nil {
		return Catalog{}, fmt.Errorf("fetch options: %w", err)
	}
	return Catalog{
		Majors:    nonNil(opts.Majors),
		Minors:    nonNil(opts.Minors),
		Origin:    s.Name(),
		FetchedAt: now(s.Now),
	}, nil
}

func now(fn func() time.Time) time.Time {
	if fn != nil {
		return fn()
	}
	return database.Now()
}
