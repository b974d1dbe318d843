package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/degreeplan/core"
	"github.com/jask/degreeplan/internal/config"
	"github.com/jask/degreeplan/internal/planner"
	"github.com/jask/degreeplan/internal/service"
)

// Form is the service surface the TUI drives.
type Form interface {
	Open(ctx context.Context) (*service.Fields, error)
	Submit(ctx context.Context, sel planner.Selections) (string, error)
	Progress(ctx context.Context) (string, error)
	Upload(ctx context.Context, path string) (string, error)
	History(ctx context.Context, limit int) (service.History, error)
}

// Maintenance clears local history. Optional.
type Maintenance interface {
	ClearHistory(ctx context.Context) error
}

type appMode string

const (
	modeLoading appMode = "loading"
	modeForm    appMode = "form"
	modeUpload  appMode = "upload"
	modeHistory appMode = "history"
)

const (
	historyLimit          = 20
	maxVisibleSuggestions = 6
	noticeNoFile          = "Please select a file first."
)

type field struct {
	label  string
	widget *core.SelectionWidget
	input  textinput.Model
	cursor int
	hint   string
}

// App is the bubbletea model for the planner form.
type App struct {
	ctx   context.Context
	form  Form
	maint Maintenance
	keys  *core.KeyRegistry

	mode      appMode
	fields    []field
	focus     int // index into fields, -1 when nothing is focused
	origin    string
	progress  string
	history   service.History
	upload    textinput.Model
	pressed   *region
	status    string
	statusErr bool
	width     int
	height    int
}

func New(ctx context.Context, cfg config.Config, form Form, maint Maintenance) *App {
	bindings := core.ApplyActionKeybindings(core.DefaultKeyBindings(), cfg.Keys)
	up := textinput.New()
	up.Prompt = "File: "
	up.Placeholder = "path to transcript"
	return &App{
		ctx:    ctx,
		form:   form,
		maint:  maint,
		keys:   core.NewKeyRegistry(bindings),
		mode:   modeLoading,
		focus:  -1,
		upload: up,
		width:  80,
	}
}

func (a *App) Init() tea.Cmd {
	return a.openCmd()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		for i := range a.fields {
			a.fields[i].input.Width = max(10, m.Width-4)
		}
		a.upload.Width = max(10, m.Width-8)
		return a, nil
	case tea.KeyMsg:
		if a.keys.Action(m, a.scope()) == "quit" {
			return a, tea.Quit
		}
		switch a.mode {
		case modeForm:
			return a.handleFormKey(m)
		case modeUpload:
			return a.handleUploadKey(m)
		case modeHistory:
			return a.handleHistoryKey(m)
		}
		return a, nil
	case tea.MouseMsg:
		if a.mode != modeForm {
			return a, nil
		}
		return a.handleMouse(m)
	case formReadyMsg:
		return a.handleFormReady(m)
	case blurExpiredMsg:
		if m.field >= 0 && m.field < len(a.fields) {
			f := &a.fields[m.field]
			if f.widget.Expire(m.at) {
				f.cursor = 0
				f.hint = ""
			}
		}
		return a, nil
	case submitDoneMsg:
		if m.err != nil {
			a.setError("Error submitting selections: " + m.err.Error())
			return a, nil
		}
		a.setStatus("Selections submitted successfully: " + m.body)
		return a, nil
	case progressMsg:
		if m.err != nil {
			a.setError("Error fetching progress: " + m.err.Error())
			return a, nil
		}
		a.progress = m.text
		a.setStatus("Progress updated")
		return a, nil
	case uploadDoneMsg:
		if m.err != nil {
			if errors.Is(m.err, service.ErrNoFile) {
				a.setError(noticeNoFile)
			} else {
				a.setError("Error uploading file: " + m.err.Error())
			}
			return a, nil
		}
		a.upload.SetValue("")
		a.upload.Blur()
		a.mode = modeForm
		a.setStatus(m.body)
		return a, nil
	case historyMsg:
		if m.err != nil {
			a.setError("Error loading history: " + m.err.Error())
			return a, nil
		}
		a.history = m.history
		a.mode = modeHistory
		return a, nil
	case historyClearedMsg:
		if m.err != nil {
			a.setError("Error clearing history: " + m.err.Error())
			return a, nil
		}
		a.history = service.History{}
		a.setStatus("History cleared")
		return a, nil
	case core.StatusMsg:
		a.status, a.statusErr = m.Text, m.IsErr
		return a, nil
	}
	return a, nil
}

func (a *App) handleFormReady(m formReadyMsg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		a.setError("Could not start form: " + m.err.Error())
		return a, nil
	}
	a.fields = []field{
		newField("Majors", m.fields.Majors, a.width),
		newField("Minors", m.fields.Minors, a.width),
	}
	a.mode = modeForm
	a.origin = m.fields.Catalog.Origin
	switch {
	case m.fields.LoadErr != nil:
		a.setError("Could not load options: " + m.fields.LoadErr.Error())
	case m.fields.Catalog.Stale:
		a.setStatus(fmt.Sprintf("Offline: using options cached %s", m.fields.Catalog.FetchedAt.Local().Format("2006-01-02 15:04")))
	}
	return a, a.focusField(0)
}

func newField(label string, w *core.SelectionWidget, width int) field {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "type to search " + strings.ToLower(label)
	in.Width = max(10, width-4)
	return field{label: label, widget: w, input: in}
}

func (a *App) scope() string {
	switch a.mode {
	case modeUpload:
		return core.ScopeUpload
	case modeHistory:
		return core.ScopeHistory
	default:
		return core.ScopeForm
	}
}

func (a *App) handleFormKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.keys.Action(m, core.ScopeForm) {
	case "next-field":
		return a, a.focusField(a.nextFocus(1))
	case "prev-field":
		return a, a.focusField(a.nextFocus(-1))
	case "suggestion-up":
		if f := a.focused(); f != nil && f.cursor > 0 {
			f.cursor--
		}
		return a, nil
	case "suggestion-down":
		if f := a.focused(); f != nil && f.cursor < len(f.widget.Suggestions())-1 {
			f.cursor++
		}
		return a, nil
	case "pick":
		if f := a.focused(); f != nil {
			sugg := f.widget.Suggestions()
			if f.cursor >= 0 && f.cursor < len(sugg) {
				a.pick(a.focus, sugg[f.cursor])
			}
		}
		return a, nil
	case "remove-last":
		a.removeLast()
		return a, nil
	case "dismiss":
		return a, a.focusField(-1)
	case "submit":
		a.setStatus("Submitting selections...")
		return a, a.submitCmd(a.selections())
	case "progress":
		a.setStatus("Fetching progress...")
		return a, a.progressCmd()
	case "upload":
		blur := a.focusField(-1)
		a.mode = modeUpload
		a.setStatus("")
		return a, tea.Batch(blur, a.upload.Focus())
	case "history":
		return a, a.historyCmd()
	}

	f := a.focused()
	if f == nil {
		return a, nil
	}
	if m.Type == tea.KeyBackspace && f.input.Value() == "" {
		a.removeLast()
		return a, nil
	}
	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(m)
	if v := f.input.Value(); v != before {
		a.queryChanged(f, v)
	}
	return a, cmd
}

func (a *App) handleUploadKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.keys.Action(m, core.ScopeUpload) {
	case "confirm":
		path := strings.TrimSpace(a.upload.Value())
		if path == "" {
			a.setError(noticeNoFile)
			return a, nil
		}
		a.setStatus("Uploading " + path + "...")
		return a, a.uploadCmd(path)
	case "close":
		a.upload.Blur()
		a.mode = modeForm
		a.setStatus("")
		return a, a.focusField(0)
	}
	var cmd tea.Cmd
	a.upload, cmd = a.upload.Update(m)
	return a, cmd
}

func (a *App) handleHistoryKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.keys.Action(m, core.ScopeHistory) {
	case "close":
		a.mode = modeForm
		return a, a.focusField(0)
	case "clear-history":
		if a.maint == nil {
			return a, core.ErrorCmd(errors.New("history maintenance not configured"))
		}
		return a, a.clearHistoryCmd()
	}
	return a, nil
}

func (a *App) focused() *field {
	if a.focus < 0 || a.focus >= len(a.fields) {
		return nil
	}
	return &a.fields[a.focus]
}

func (a *App) nextFocus(delta int) int {
	n := len(a.fields)
	if n == 0 {
		return -1
	}
	if a.focus < 0 {
		if delta < 0 {
			return n - 1
		}
		return 0
	}
	return ((a.focus+delta)%n + n) % n
}

// focusField moves keyboard focus to fields[i], or to nothing when i is -1.
// The field losing focus arms its deferred suggestion clear.
func (a *App) focusField(i int) tea.Cmd {
	if i == a.focus || i >= len(a.fields) {
		return nil
	}
	var cmds []tea.Cmd
	if a.focus >= 0 {
		cmds = append(cmds, a.blurField(a.focus, core.FocusElsewhere))
	}
	a.focus = i
	if i >= 0 {
		f := &a.fields[i]
		f.widget.Focus()
		cmds = append(cmds, f.input.Focus())
	}
	return tea.Batch(cmds...)
}

func (a *App) blurField(i int, target core.FocusTarget) tea.Cmd {
	f := &a.fields[i]
	f.input.Blur()
	if a.focus == i {
		a.focus = -1
	}
	d := f.widget.Blur(target)
	if d <= 0 {
		return nil
	}
	return blurTick(i, d)
}

func blurTick(i int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return blurExpiredMsg{field: i, at: t} })
}

func (a *App) queryChanged(f *field, q string) {
	sugg := f.widget.OnQueryChanged(q)
	f.cursor = 0
	f.hint = ""
	if len(sugg) == 0 && strings.TrimSpace(q) != "" {
		if best, ok := f.widget.Closest(q); ok {
			f.hint = "Did you mean " + best + "?"
		}
	}
}

func (a *App) pick(i int, option string) {
	f := &a.fields[i]
	if err := f.widget.OnSuggestionPicked(option); err != nil {
		a.setError(err.Error())
		return
	}
	f.input.SetValue("")
	f.cursor = 0
	f.hint = ""
	a.setStatus("")
}

func (a *App) removeLast() {
	f := a.focused()
	if f == nil {
		return
	}
	sel := f.widget.Selected()
	if len(sel) == 0 {
		return
	}
	f.widget.OnSelectionRemoved(sel[len(sel)-1])
}

func (a *App) selections() planner.Selections {
	var sel planner.Selections
	if len(a.fields) > 0 {
		sel.Majors = a.fields[0].widget.Selected()
	}
	if len(a.fields) > 1 {
		sel.Minors = a.fields[1].widget.Selected()
	}
	return sel
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusErr = false
}

func (a *App) setError(s string) {
	a.status = s
	a.statusErr = true
}
