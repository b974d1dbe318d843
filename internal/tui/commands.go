package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/degreeplan/internal/planner"
	"github.com/jask/degreeplan/internal/service"
)

type formReadyMsg struct {
	fields *service.Fields
	err    error
}

type blurExpiredMsg struct {
	field int
	at    time.Time
}

type submitDoneMsg struct {
	body string
	err  error
}

type progressMsg struct {
	text string
	err  error
}

type uploadDoneMsg struct {
	body string
	err  error
}

type historyMsg struct {
	history service.History
	err     error
}

type historyClearedMsg struct{ err error }

func (a *App) openCmd() tea.Cmd {
	return func() tea.Msg {
		fields, err := a.form.Open(a.ctx)
		return formReadyMsg{fields: fields, err: err}
	}
}

// submitCmd sends sel, which must be captured before the command runs.
func (a *App) submitCmd(sel planner.Selections) tea.Cmd {
	return func() tea.Msg {
		body, err := a.form.Submit(a.ctx, sel)
		return submitDoneMsg{body: body, err: err}
	}
}

func (a *App) progressCmd() tea.Cmd {
	return func() tea.Msg {
		text, err := a.form.Progress(a.ctx)
		return progressMsg{text: text, err: err}
	}
}

func (a *App) uploadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		body, err := a.form.Upload(a.ctx, path)
		return uploadDoneMsg{body: body, err: err}
	}
}

func (a *App) historyCmd() tea.Cmd {
	return func() tea.Msg {
		h, err := a.form.History(a.ctx, historyLimit)
		return historyMsg{history: h, err: err}
	}
}

func (a *App) clearHistoryCmd() tea.Cmd {
	return func() tea.Msg {
		return historyClearedMsg{err: a.maint.ClearHistory(a.ctx)}
	}
}
