package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/degreeplan/core"
)

type regionKind int

const (
	regionInput regionKind = iota
	regionSuggestion
	regionChip
)

// region is a clickable span on one screen row. x1 is exclusive.
type region struct {
	kind  regionKind
	field int
	index int
	y     int
	x0    int
	x1    int
}

func (a *App) View() string {
	var lines []string
	switch a.mode {
	case modeLoading:
		lines = []string{core.TitleStyle.Render("Degree Planner"), "", core.MutedStyle.Render("Loading options...")}
	case modeHistory:
		lines = a.historyLines()
	default:
		lines, _ = a.layout()
	}
	if a.height > 2 && len(lines) < a.height-2 {
		lines = append(lines, make([]string, a.height-2-len(lines))...)
	}
	lines = append(lines,
		core.RenderStatusBar(a.status, a.statusErr, a.width),
		core.RenderFooter(a.keys.BindingsForScope(a.scope()), a.width),
	)
	return strings.Join(lines, "\n")
}

// layout renders the form body one row per line and records where the
// clickable parts landed. Update hit-tests mouse events against the same regions.
func (a *App) layout() ([]string, []region) {
	var (
		lines   []string
		regions []region
	)
	title := core.TitleStyle.Render("Degree Planner")
	if a.origin != "" {
		title += core.MutedStyle.Render("  options: " + a.origin)
	}
	lines = append(lines, title, "")

	for i := range a.fields {
		f := &a.fields[i]
		sel := f.widget.Selected()
		lines = append(lines, core.LabelStyle.Render(f.label)+core.MutedStyle.Render(fmt.Sprintf("  %d/%d", len(sel), f.widget.Max())))

		y := len(lines)
		if len(sel) == 0 {
			lines = append(lines, core.MutedStyle.Render("No selections"))
		} else {
			var b strings.Builder
			x := 0
			for j, s := range sel {
				if j > 0 {
					b.WriteString(" ")
					x++
				}
				chip := core.ChipStyle.Render(s + " ×")
				w := lipgloss.Width(chip)
				regions = append(regions, region{kind: regionChip, field: i, index: j, y: y, x0: x, x1: x + w})
				b.WriteString(chip)
				x += w
			}
			lines = append(lines, core.TrimToWidth(b.String(), a.width))
		}

		regions = append(regions, region{kind: regionInput, field: i, index: -1, y: len(lines), x0: 0, x1: a.width})
		lines = append(lines, f.input.View())

		sugg := f.widget.Suggestions()
		start, end := suggestionWindow(len(sugg), f.cursor)
		for j := start; j < end; j++ {
			row := "  " + core.SuggestionStyle.Render(sugg[j])
			if j == f.cursor {
				row = core.CursorStyle.Render("› " + sugg[j])
			}
			regions = append(regions, region{kind: regionSuggestion, field: i, index: j, y: len(lines), x0: 0, x1: a.width})
			lines = append(lines, core.TrimToWidth(row, a.width))
		}
		if more := len(sugg) - end; more > 0 {
			lines = append(lines, core.MutedStyle.Render(fmt.Sprintf("  … %d more", more)))
		}
		if f.hint != "" {
			lines = append(lines, core.MutedStyle.Render("  "+f.hint))
		}
		lines = append(lines, "")
	}

	if a.progress != "" {
		lines = append(lines, core.LabelStyle.Render("Progress"))
		wrapped := lipgloss.NewStyle().Width(max(1, a.width)).Render(strings.TrimRight(a.progress, "\n"))
		lines = append(lines, strings.Split(wrapped, "\n")...)
		lines = append(lines, "")
	}

	if a.mode == modeUpload {
		lines = append(lines, core.LabelStyle.Render("Upload transcript"), a.upload.View(), "")
	}
	return lines, regions
}

// suggestionWindow returns the slice of n suggestions to show so that cursor stays visible.
func suggestionWindow(n, cursor int) (int, int) {
	if n <= maxVisibleSuggestions {
		return 0, n
	}
	start := 0
	if cursor >= maxVisibleSuggestions {
		start = cursor - maxVisibleSuggestions + 1
	}
	return start, start + maxVisibleSuggestions
}

func hitTest(regions []region, x, y int) (region, bool) {
	for _, r := range regions {
		if r.y == y && x >= r.x0 && x < r.x1 {
			return r, true
		}
	}
	return region{}, false
}

func (a *App) historyLines() []string {
	lines := []string{core.TitleStyle.Render("History"), "", core.LabelStyle.Render("Submissions")}
	if len(a.history.Submissions) == 0 {
		lines = append(lines, core.MutedStyle.Render("  Nothing yet."))
	}
	for _, s := range a.history.Submissions {
		row := fmt.Sprintf("  %s  majors: %s  minors: %s  ",
			s.SubmittedAt.Local().Format("2006-01-02 15:04"), listOrDash(s.Majors), listOrDash(s.Minors))
		row += outcome(s.Response, s.Error)
		lines = append(lines, core.TrimToWidth(row, a.width))
	}

	lines = append(lines, "", core.LabelStyle.Render("Uploads"))
	if len(a.history.Uploads) == 0 {
		lines = append(lines, core.MutedStyle.Render("  Nothing yet."))
	}
	for _, u := range a.history.Uploads {
		row := fmt.Sprintf("  %s  %s (%d bytes)  ",
			u.UploadedAt.Local().Format("2006-01-02 15:04"), u.FileName, u.SizeBytes)
		row += outcome(u.Response, u.Error)
		lines = append(lines, core.TrimToWidth(row, a.width))
	}
	return lines
}

func listOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func outcome(response, errText *string) string {
	if errText != nil {
		return "error: " + *errText
	}
	if response != nil {
		return "ok: " + strings.ReplaceAll(*response, "\n", " ")
	}
	return "ok"
}
