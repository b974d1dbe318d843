package core

import (
	"iter"
	"slices"
	"strings"
	"time"
)

// DefaultBlurGrace is how long suggestions survive after the input loses focus,
// so a click that caused the blur can still land on a suggestion.
const DefaultBlurGrace = 100 * time.Millisecond

type SelectionOption func(*SelectionWidget)

// WithBlurGrace overrides the deferred-clear window. Zero clears on blur.
func WithBlurGrace(d time.Duration) SelectionOption {
	return func(w *SelectionWidget) {
		if w == nil {
			return
		}
		w.grace = d
	}
}

// WithClock replaces time.Now for deadline bookkeeping.
func WithClock(now func() time.Time) SelectionOption {
	return func(w *SelectionWidget) {
		if w == nil {
			return
		}
		w.now = now
	}
}

// SelectionWidget binds a typed query to a filtered suggestion list and a
// bounded, deduplicated, insertion-ordered selection.
//
// It is not safe for concurrent use; callers drive it from a single event loop.
type SelectionWidget struct {
	catalog     []string
	max         int
	selected    []string
	suggestions []string
	query       string

	grace   time.Duration
	now     func() time.Time
	clearAt time.Time
	focused bool
}

// NewSelectionWidget copies catalog and returns an empty widget capped at
// maxSelections entries.
func NewSelectionWidget(catalog []string, maxSelections int, opts ...SelectionOption) (*SelectionWidget, error) {
	if maxSelections <= 0 {
		return nil, &ConfigError{Field: "maxSelections", Value: maxSelections}
	}
	w := &SelectionWidget{
		catalog: slices.Clone(catalog),
		max:     maxSelections,
		grace:   DefaultBlurGrace,
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(w)
	}
	if w.grace < 0 {
		w.grace = 0
	}
	if w.now == nil {
		w.now = time.Now
	}
	return w, nil
}

func (w *SelectionWidget) Max() int {
	if w == nil {
		return 0
	}
	return w.max
}

func (w *SelectionWidget) Query() string {
	if w == nil {
		return ""
	}
	return w.query
}

func (w *SelectionWidget) Catalog() []string {
	if w == nil {
		return nil
	}
	return slices.Clone(w.catalog)
}

// Suggestions returns the currently displayed suggestion list.
func (w *SelectionWidget) Suggestions() []string {
	if w == nil {
		return nil
	}
	return slices.Clone(w.suggestions)
}

// Selected returns the selection in pick order.
func (w *SelectionWidget) Selected() []string {
	if w == nil {
		return nil
	}
	return slices.Clone(w.selected)
}

func (w *SelectionWidget) Full() bool {
	if w == nil {
		return true
	}
	return len(w.selected) >= w.max
}

// Filter yields catalog entries whose lower-cased form contains the
// lower-cased query, in catalog order. An empty query yields nothing.
// Each call builds a fresh sequence.
func (w *SelectionWidget) Filter(query string) iter.Seq[string] {
	var catalog []string
	if w != nil {
		catalog = w.catalog
	}
	q := strings.ToLower(query)
	return func(yield func(string) bool) {
		if q == "" {
			return
		}
		for _, option := range catalog {
			if !strings.Contains(strings.ToLower(option), q) {
				continue
			}
			if !yield(option) {
				return
			}
		}
	}
}

// OnQueryChanged records the query and replaces the displayed suggestions.
func (w *SelectionWidget) OnQueryChanged(query string) []string {
	if w == nil {
		return nil
	}
	w.query = query
	w.suggestions = slices.Collect(w.Filter(query))
	return w.Suggestions()
}

// OnSuggestionPicked adds option to the selection. A full selection rejects the
// pick with *SelectionLimitError and leaves all state untouched; a duplicate is
// ignored. Otherwise the query and suggestions are cleared.
//
// option is trusted to come from the current suggestions.
func (w *SelectionWidget) OnSuggestionPicked(option string) error {
	if w == nil {
		return ErrInvalidConfig
	}
	if len(w.selected) >= w.max {
		return &SelectionLimitError{Max: w.max}
	}
	if !slices.Contains(w.selected, option) {
		w.selected = append(w.selected, option)
	}
	w.query = ""
	w.clearSuggestions()
	return nil
}

// OnSelectionRemoved drops every entry equal to option.
func (w *SelectionWidget) OnSelectionRemoved(option string) {
	if w == nil {
		return
	}
	w.selected = slices.DeleteFunc(w.selected, func(s string) bool { return s == option })
}

func (w *SelectionWidget) clearSuggestions() {
	w.suggestions = nil
	w.clearAt = time.Time{}
}
