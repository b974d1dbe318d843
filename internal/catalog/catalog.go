// Package catalog loads the major and minor option lists the form offers.
package catalog

import (
	"context"
	"time"
)

// Catalog is one loaded pair of option lists.
type Catalog struct {
	Majors    []string
	Minors    []string
	Origin    string
	FetchedAt time.Time
	// Stale is set when the lists came from a cached snapshot instead of Origin.
	Stale bool
}

// Empty reports whether neither list has entries.
func (c Catalog) Empty() bool { return len(c.Majors) == 0 && len(c.Minors) == 0 }

// Source yields a catalog.
type Source interface {
	Name() string
	Load(ctx context.Context) (Catalog, error)
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
