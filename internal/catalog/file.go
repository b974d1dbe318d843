package catalog

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jask/degreeplan/internal/planner"
)

// FileSource reads the catalog from a YAML file using the planner's keys
// (dropdown1 for majors, dropdown2 for minors). JSON files parse as well.
type FileSource struct {
	Path string
}

func (s *FileSource) Name() string { return "file" }

func (s *FileSource) Load(ctx context.Context) (Catalog, error) {
	if err := ctx.Err(); err != nil {
		return Catalog{}, err
	}
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog file: %w", err)
	}
	var opts planner.Options
	if err := yaml.Unmarshal(raw, &opts); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog file %s: %w", s.Path, err)
	}
	info, err := os.Stat(s.Path)
	if err != nil {
		return Catalog{}, fmt.Errorf("stat catalog file: %w", err)
	}
	return Catalog{
		Majors:    nonNil(opts.Majors),
		Minors:    nonNil(opts.Minors),
		Origin:    s.Name(),
		FetchedAt: info.ModTime().UTC(),
	}, nil
}
