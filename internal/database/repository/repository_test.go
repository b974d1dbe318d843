package repository_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/degreeplan/internal/database"
	"github.com/jask/degreeplan/internal/database/repository"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func strPtr(s string) *string { return &s }

func TestCatalogRepoLatestAndPrune(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repository.NewCatalogRepo(openDB(t))

	latest, err := repo.Latest(ctx, "remote")
	require.NoError(t, err)
	require.Nil(t, latest)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, repository.CatalogSnapshot{
		ID: "s1", Source: "remote", Majors: []string{"Biology"}, FetchedAt: base,
	}))
	require.NoError(t, repo.Save(ctx, repository.CatalogSnapshot{
		ID: "s2", Source: "remote", Majors: []string{"Biology", "Chemistry"}, Minors: []string{"Art"}, FetchedAt: base.Add(time.Hour),
	}))
	require.NoError(t, repo.Save(ctx, repository.CatalogSnapshot{
		ID: "s3", Source: "file", Majors: []string{"History"}, FetchedAt: base.Add(2 * time.Hour),
	}))

	latest, err = repo.Latest(ctx, "remote")
	require.NoError(t, err)
	require.NotNil(t, latest)
	require.Equal(t, "s2", latest.ID)
	require.Equal(t, []string{"Biology", "Chemistry"}, latest.Majors)
	require.Equal(t, []string{"Art"}, latest.Minors)
	require.True(t, latest.FetchedAt.Equal(base.Add(time.Hour)))

	removed, err := repo.Prune(ctx, "remote", 1)
	require.NoError(t, err)
	require.EqualValues(t, 1, removed)

	other, err := repo.Latest(ctx, "file")
	require.NoError(t, err)
	require.Equal(t, "s3", other.ID)
	require.Equal(t, []string{}, other.Minors)
}

func TestSubmissionRepoListNewestFirst(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repository.NewSubmissionRepo(openDB(t))

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Insert(ctx, repository.Submission{
		ID: "a", Majors: []string{"Biology"}, Response: strPtr("ok"), SubmittedAt: base,
	}))
	require.NoError(t, repo.Insert(ctx, repository.Submission{
		ID: "b", Minors: []string{"Art"}, Error: strPtr("status 500"), SubmittedAt: base.Add(time.Minute),
	}))

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "b", all[0].ID)
	require.Equal(t, []string{}, all[0].Majors)
	require.Equal(t, []string{"Art"}, all[0].Minors)
	require.Nil(t, all[0].Response)
	require.Equal(t, "status 500", *all[0].Error)
	require.Equal(t, "ok", *all[1].Response)

	one, err := repo.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, one, 1)
	require.Equal(t, "b", one[0].ID)
}

func TestUploadRepoInsertAndList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repository.NewUploadRepo(openDB(t))

	at := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Insert(ctx, repository.Upload{
		ID: "u1", FileName: "transcript.pdf", SizeBytes: 42, Response: strPtr("received"), UploadedAt: at,
	}))

	list, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "transcript.pdf", list[0].FileName)
	require.EqualValues(t, 42, list[0].SizeBytes)
	require.Equal(t, "received", *list[0].Response)
	require.Nil(t, list[0].Error)
	require.True(t, list[0].UploadedAt.Equal(at))
}
