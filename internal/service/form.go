package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jask/degreeplan/core"
	"github.com/jask/degreeplan/internal/catalog"
	"github.com/jask/degreeplan/internal/database"
	"github.com/jask/degreeplan/internal/database/repository"
	"github.com/jask/degreeplan/internal/planner"
)

// ErrNoFile is returned by Upload when no path was given.
var ErrNoFile = errors.New("no file selected")

// PlannerClient is the subset of the planner client the form needs.
type PlannerClient interface {
	SubmitSelections(ctx context.Context, sel planner.Selections) (string, error)
	FetchProgress(ctx context.Context) (string, error)
	UploadFile(ctx context.Context, name string, r io.Reader) (string, error)
}

// SubmissionStore records submissions.
type SubmissionStore interface {
	Insert(ctx context.Context, s repository.Submission) error
	List(ctx context.Context, limit int) ([]repository.Submission, error)
}

// UploadStore records uploads.
type UploadStore interface {
	Insert(ctx context.Context, u repository.Upload) error
	List(ctx context.Context, limit int) ([]repository.Upload, error)
}

// Limits configures the two selection fields.
type Limits struct {
	Majors    int
	Minors    int
	BlurGrace time.Duration
}

// Fields is an opened form: one widget per field plus where the options came from.
type Fields struct {
	Majors  *core.SelectionWidget
	Minors  *core.SelectionWidget
	Catalog catalog.Catalog
	// LoadErr is set when no catalog could be loaded and the fields start empty.
	LoadErr error
}

// History is the local record of past submissions and uploads, newest first.
type History struct {
	Submissions []repository.Submission
	Uploads     []repository.Upload
}

// FormService builds the selection fields and runs the planner calls, recording
// every submission and upload locally.
type FormService struct {
	Catalog     catalog.Source
	Client      PlannerClient
	Submissions SubmissionStore
	Uploads     UploadStore
	Limits      Limits
	Log         zerolog.Logger
	Now         func() time.Time
}

// Open loads the catalog and constructs both fields. A catalog failure is not
// fatal: the fields start empty and the error is reported in Fields.LoadErr.
func (s *FormService) Open(ctx context.Context) (*Fields, error) {
	f := &Fields{}
	if s.Catalog != nil {
		cat, err := s.Catalog.Load(ctx)
		if err != nil {
			s.Log.Error().Err(err).Msg("catalog unavailable, starting with empty fields")
			f.LoadErr = err
		} else {
			f.Catalog = cat
			s.Log.Info().
				Str("origin", cat.Origin).
				Bool("stale", cat.Stale).
				Int("majors", len(cat.Majors)).
				Int("minors", len(cat.Minors)).
				Msg("catalog loaded")
		}
	}

	opts := []core.SelectionOption{core.WithBlurGrace(s.Limits.BlurGrace)}
	var err error
	if f.Majors, err = core.NewSelectionWidget(f.Catalog.Majors, s.Limits.Majors, opts...); err != nil {
		return nil, fmt.Errorf("majors field: %w", err)
	}
	if f.Minors, err = core.NewSelectionWidget(f.Catalog.Minors, s.Limits.Minors, opts...); err != nil {
		return nil, fmt.Errorf("minors field: %w", err)
	}
	return f, nil
}

// Submit sends the selections and records the attempt. It returns the service
// response text verbatim.
func (s *FormService) Submit(ctx context.Context, sel planner.Selections) (string, error) {
	body, err := s.Client.SubmitSelections(ctx, sel)
	rec := repository.Submission{
		ID:          uuid.NewString(),
		Majors:      sel.Majors,
		Minors:      sel.Minors,
		SubmittedAt: s.now(),
	}
	if err != nil {
		rec.Error = nullableStr(err.Error())
	} else {
		rec.Response = &body
	}
	if s.Submissions != nil {
		s.warnRecord(s.Submissions.Insert(ctx, rec), "submission")
	}
	if err != nil {
		s.Log.Error().Err(err).Int("majors", len(sel.Majors)).Int("minors", len(sel.Minors)).Msg("submit selections")
		return "", fmt.Errorf("submit selections: %w", err)
	}
	s.Log.Info().Str("submission_id", rec.ID).Msg("selections submitted")
	return body, nil
}

// Progress fetches the student progress text.
func (s *FormService) Progress(ctx context.Context) (string, error) {
	text, err := s.Client.FetchProgress(ctx)
	if err != nil {
		s.Log.Error().Err(err).Msg("fetch progress")
		return "", fmt.Errorf("fetch progress: %w", err)
	}
	return text, nil
}

// Upload sends the file at path and records the attempt.
func (s *FormService) Upload(ctx context.Context, path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", ErrNoFile
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat upload: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("upload %s: not a regular file", path)
	}

	name := filepath.Base(path)
	body, err := s.Client.UploadFile(ctx, name, f)
	rec := repository.Upload{
		ID:         uuid.NewString(),
		FileName:   name,
		SizeBytes:  info.Size(),
		UploadedAt: s.now(),
	}
	if err != nil {
		rec.Error = nullableStr(err.Error())
	} else {
		rec.Response = &body
	}
	if s.Uploads != nil {
		s.warnRecord(s.Uploads.Insert(ctx, rec), "upload")
	}
	if err != nil {
		s.Log.Error().Err(err).Str("file", name).Msg("upload file")
		return "", fmt.Errorf("upload file: %w", err)
	}
	s.Log.Info().Str("upload_id", rec.ID).Str("file", name).Int64("bytes", rec.SizeBytes).Msg("file uploaded")
	return body, nil
}

// History returns up to limit entries of each kind; limit <= 0 returns all.
func (s *FormService) History(ctx context.Context, limit int) (History, error) {
	var h History
	var err error
	if s.Submissions != nil {
		if h.Submissions, err = s.Submissions.List(ctx, limit); err != nil {
			return History{}, fmt.Errorf("list submissions: %w", err)
		}
	}
	if s.Uploads != nil {
		if h.Uploads, err = s.Uploads.List(ctx, limit); err != nil {
			return History{}, fmt.Errorf("list uploads: %w", err)
		}
	}
	return h, nil
}

func (s *FormService) warnRecord(err error, kind string) {
	if err != nil {
		s.Log.Warn().Err(err).Str("kind", kind).Msg("record history")
	}
}

func (s *FormService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return database.Now()
}

func nullableStr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
