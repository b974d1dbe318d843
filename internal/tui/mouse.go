package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/degreeplan/core"
)

// handleMouse maps presses and releases onto the form. A press inside a
// suggestion list moves focus into the list so the suggestions survive the
// input's blur; the matching release picks.
func (a *App) handleMouse(m tea.MouseMsg) (tea.Model, tea.Cmd) {
	_, regions := a.layout()
	switch m.Action {
	case tea.MouseActionPress:
		if m.Button != tea.MouseButtonLeft {
			return a, nil
		}
		a.pressed = nil
		r, ok := hitTest(regions, m.X, m.Y)
		if !ok {
			return a, a.focusField(-1)
		}
		switch r.kind {
		case regionInput:
			return a, a.focusField(r.field)
		case regionSuggestion:
			var cmd tea.Cmd
			if a.focus == r.field {
				cmd = a.blurField(r.field, core.FocusSuggestions)
			} else {
				cmd = a.focusField(-1)
				a.fields[r.field].widget.Blur(core.FocusSuggestions)
			}
			a.pressed = &r
			return a, cmd
		case regionChip:
			a.pressed = &r
			return a, a.focusField(-1)
		}
	case tea.MouseActionRelease:
		pressed := a.pressed
		a.pressed = nil
		if pressed == nil {
			return a, nil
		}
		r, ok := hitTest(regions, m.X, m.Y)
		if !ok || r != *pressed {
			if pressed.kind == regionSuggestion {
				// Dragged off the list: treat as focus leaving it.
				if d := a.fields[pressed.field].widget.Blur(core.FocusElsewhere); d > 0 {
					return a, blurTick(pressed.field, d)
				}
			}
			return a, nil
		}
		f := &a.fields[r.field]
		switch r.kind {
		case regionSuggestion:
			sugg := f.widget.Suggestions()
			if r.index < len(sugg) {
				a.pick(r.field, sugg[r.index])
			}
			return a, a.focusField(r.field)
		case regionChip:
			sel := f.widget.Selected()
			if r.index < len(sel) {
				f.widget.OnSelectionRemoved(sel[r.index])
			}
		}
	}
	return a, nil
}
