package core

import "time"

// FocusTarget says where focus went when the input blurred.
type FocusTarget int

const (
	// FocusElsewhere hides suggestions after the grace window.
	FocusElsewhere FocusTarget = iota
	// FocusSuggestions keeps them: the pointer went down inside the list.
	FocusSuggestions
)

func (t FocusTarget) String() string {
	switch t {
	case FocusSuggestions:
		return "suggestions"
	default:
		return "elsewhere"
	}
}

// Focus marks the input focused and cancels any pending clear.
func (w *SelectionWidget) Focus() {
	if w == nil {
		return
	}
	w.focused = true
	w.clearAt = time.Time{}
}

func (w *SelectionWidget) Focused() bool {
	if w == nil {
		return false
	}
	return w.focused
}

// Blur marks the input unfocused. When focus moved into the suggestion list the
// list stays as is. Otherwise a clear is armed for now+grace and the delay is
// returned so the caller can schedule Expire; zero means nothing is pending.
func (w *SelectionWidget) Blur(target FocusTarget) time.Duration {
	if w == nil {
		return 0
	}
	w.focused = false
	if target == FocusSuggestions {
		w.clearAt = time.Time{}
		return 0
	}
	if len(w.suggestions) == 0 {
		return 0
	}
	if w.grace <= 0 {
		w.clearSuggestions()
		return 0
	}
	w.clearAt = w.now().Add(w.grace)
	return w.grace
}

// PendingClear reports whether a deferred clear is armed.
func (w *SelectionWidget) PendingClear() bool {
	if w == nil {
		return false
	}
	return !w.clearAt.IsZero()
}

// Expire clears the suggestions if an armed deadline is at or before now.
// Stale calls (focus came back, or a newer blur moved the deadline) are no-ops.
func (w *SelectionWidget) Expire(now time.Time) bool {
	if w == nil || w.clearAt.IsZero() {
		return false
	}
	if now.Before(w.clearAt) {
		return false
	}
	w.clearSuggestions()
	return true
}
