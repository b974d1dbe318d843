package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jask/degreeplan/core"
	"github.com/jask/degreeplan/internal/catalog"
	"github.com/jask/degreeplan/internal/database"
	"github.com/jask/degreeplan/internal/database/repository"
	"github.com/jask/degreeplan/internal/planner"
	"github.com/jask/degreeplan/internal/testdata"
)

type fakeSource struct {
	cat catalog.Catalog
	err error
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Load(context.Context) (catalog.Catalog, error) { return f.cat, f.err }

type fakeClient struct {
	submitted   []planner.Selections
	submitBody  string
	submitErr   error
	progress    string
	progressErr error
	uploadName  string
	uploadData  string
	uploadBody  string
	uploadErr   error
}

func (f *fakeClient) SubmitSelections(_ context.Context, sel planner.Selections) (string, error) {
	f.submitted = append(f.submitted, sel)
	return f.submitBody, f.submitErr
}

func (f *fakeClient) FetchProgress(context.Context) (string, error) {
	return f.progress, f.progressErr
}

func (f *fakeClient) UploadFile(_ context.Context, name string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.uploadName = name
	f.uploadData = string(data)
	return f.uploadBody, f.uploadErr
}

func setupForm(t *testing.T, src catalog.Source, client *fakeClient) (*FormService, *sql.DB) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	return &FormService{
		Catalog:     src,
		Client:      client,
		Submissions: repository.NewSubmissionRepo(db),
		Uploads:     repository.NewUploadRepo(db),
		Limits:      Limits{Majors: 2, Minors: 1, BlurGrace: 50 * time.Millisecond},
		Log:         zerolog.Nop(),
		Now: func() time.Time {
			at = at.Add(time.Second)
			return at
		},
	}, db
}

func TestOpenBuildsFieldsFromCatalog(t *testing.T) {
	t.Parallel()
	src := &fakeSource{cat: catalog.Catalog{
		Majors: []string{"Biology", "Computer Science", "Chemistry"},
		Minors: []string{"Art", "Music"},
		Origin: "fake",
	}}
	svc, _ := setupForm(t, src, &fakeClient{})

	fields, err := svc.Open(context.Background())
	require.NoError(t, err)
	require.NoError(t, fields.LoadErr)
	require.Equal(t, 2, fields.Majors.Max())
	require.Equal(t, 1, fields.Minors.Max())
	require.Equal(t, []string{"Computer Science"}, fields.Majors.OnQueryChanged("ci"))
	require.Equal(t, []string{"Music"}, fields.Minors.OnQueryChanged("MU"))
	require.Equal(t, "fake", fields.Catalog.Origin)
}

func TestOpenWithFailedCatalogStartsEmpty(t *testing.T) {
	t.Parallel()
	svc, _ := setupForm(t, &fakeSource{err: errors.New("offline")}, &fakeClient{})

	fields, err := svc.Open(context.Background())
	require.NoError(t, err)
	require.ErrorContains(t, fields.LoadErr, "offline")
	require.Empty(t, fields.Majors.Catalog())
	require.Empty(t, fields.Majors.OnQueryChanged("bio"))
}

func TestOpenRejectsBadLimits(t *testing.T) {
	t.Parallel()
	svc, _ := setupForm(t, &fakeSource{}, &fakeClient{})
	svc.Limits.Minors = 0

	_, err := svc.Open(context.Background())
	require.ErrorIs(t, err, core.ErrInvalidConfig)
	require.ErrorContains(t, err, "minors field")
}

func TestOpenHonoursZeroBlurGrace(t *testing.T) {
	t.Parallel()
	src := &fakeSource{cat: catalog.Catalog{Majors: []string{"Biology", "Chemistry"}, Minors: []string{"Art"}}}
	svc, _ := setupForm(t, src, &fakeClient{})
	svc.Limits.BlurGrace = 0

	fields, err := svc.Open(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Biology"}, fields.Majors.OnQueryChanged("bio"))
	require.Zero(t, fields.Majors.Blur(core.FocusElsewhere))
	require.Empty(t, fields.Majors.Suggestions())
}

func TestSubmitRecordsSuccessAndFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := &fakeClient{submitBody: "saved"}
	svc, _ := setupForm(t, &fakeSource{}, client)

	body, err := svc.Submit(ctx, planner.Selections{Majors: []string{"Biology"}})
	require.NoError(t, err)
	require.Equal(t, "saved", body)
	require.Len(t, client.submitted, 1)

	client.submitErr = &planner.StatusError{Method: "POST", Path: "submit-selections", Code: 500, Body: "boom"}
	_, err = svc.Submit(ctx, planner.Selections{Minors: []string{"Art"}})
	var statusErr *planner.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, 500, statusErr.Code)

	hist, err := svc.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, hist.Submissions, 2)
	latest := hist.Submissions[0]
	require.Equal(t, []string{"Art"}, latest.Minors)
	require.Nil(t, latest.Response)
	require.NotNil(t, latest.Error)
	require.Contains(t, *latest.Error, "boom")
	require.Equal(t, "saved", *hist.Submissions[1].Response)
	require.Equal(t, []string{"Biology"}, hist.Submissions[1].Majors)
}

func TestSubmitDefaultsToDatabaseClock(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := setupForm(t, &fakeSource{}, &fakeClient{submitBody: "saved"})
	svc.Now = nil

	before := database.Now()
	_, err := svc.Submit(ctx, planner.Selections{Majors: []string{"Biology"}})
	require.NoError(t, err)

	hist, err := svc.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, hist.Submissions, 1)
	at := hist.Submissions[0].SubmittedAt
	require.Zero(t, at.Nanosecond())
	require.False(t, at.Before(before))
}

func TestProgress(t *testing.T) {
	t.Parallel()
	client := &fakeClient{progress: "42 of 120 credits"}
	svc, _ := setupForm(t, &fakeSource{}, client)

	text, err := svc.Progress(context.Background())
	require.NoError(t, err)
	require.Equal(t, "42 of 120 credits", text)

	client.progressErr = errors.New("timeout")
	_, err = svc.Progress(context.Background())
	require.ErrorContains(t, err, "fetch progress: timeout")
}

func TestUpload(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	client := &fakeClient{uploadBody: "File uploaded"}
	svc, _ := setupForm(t, &fakeSource{}, client)

	_, err := svc.Upload(ctx, "   ")
	require.ErrorIs(t, err, ErrNoFile)

	path := filepath.Join(t.TempDir(), "transcript.txt")
	require.NoError(t, os.WriteFile(path, []byte("BIO 101 A"), 0o600))
	body, err := svc.Upload(ctx, path)
	require.NoError(t, err)
	require.Equal(t, "File uploaded", body)
	require.Equal(t, "transcript.txt", client.uploadName)
	require.Equal(t, "BIO 101 A", client.uploadData)

	_, err = svc.Upload(ctx, filepath.Join(t.TempDir(), "missing.pdf"))
	require.ErrorContains(t, err, "open upload")

	_, err = svc.Upload(ctx, t.TempDir())
	require.ErrorContains(t, err, "not a regular file")

	hist, err := svc.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, hist.Uploads, 1)
	require.Equal(t, "transcript.txt", hist.Uploads[0].FileName)
	require.EqualValues(t, 9, hist.Uploads[0].SizeBytes)
}

func TestClearHistory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, db := setupForm(t, &fakeSource{}, &fakeClient{submitBody: "ok"})
	_, err := svc.Submit(ctx, planner.Selections{})
	require.NoError(t, err)

	require.NoError(t, (&MaintenanceService{DB: db}).ClearHistory(ctx))
	hist, err := svc.History(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, hist.Submissions)
	require.Empty(t, hist.Uploads)

	require.Error(t, (&MaintenanceService{}).ClearHistory(ctx))
}

func TestHistoryOverSeededData(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, db := setupForm(t, &fakeSource{}, &fakeClient{})
	require.NoError(t, testdata.Seed(ctx, testdata.Repos{
		Catalogs:    repository.NewCatalogRepo(db),
		Submissions: repository.NewSubmissionRepo(db),
		Uploads:     repository.NewUploadRepo(db),
	}, "remote", 5, 42))

	hist, err := svc.History(ctx, 3)
	require.NoError(t, err)
	require.Len(t, hist.Submissions, 3)
	require.Len(t, hist.Uploads, 3)
	require.Equal(t, "transcript-05.pdf", hist.Uploads[0].FileName)
	for _, s := range hist.Submissions {
		require.NotEmpty(t, s.Majors)
		require.True(t, (s.Response == nil) != (s.Error == nil))
	}

	snap, err := repository.NewCatalogRepo(db).Latest(ctx, "remote")
	require.NoError(t, err)
	require.Equal(t, testdata.Majors, snap.Majors)
}
