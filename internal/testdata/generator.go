package testdata

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/jask/degreeplan/internal/database"
	"github.com/jask/degreeplan/internal/database/repository"
)

// Majors and Minors are a small sample catalog.
var (
	Majors = []string{"Biology", "Chemistry", "Computer Science", "Economics", "History", "Mathematics", "Physics", "Psychology"}
	Minors = []string{"Art", "Data Science", "Music", "Philosophy", "Statistics"}
)

// Repos bundles repos used by Seed.
type Repos struct {
	Catalogs    *repository.CatalogRepo
	Submissions *repository.SubmissionRepo
	Uploads     *repository.UploadRepo
}

// Seed writes a catalog snapshot for source plus n sample submissions and uploads.
// The same seed always produces the same rows apart from ids.
func Seed(ctx context.Context, repos Repos, source string, n int, seed int64) error {
	rng := rand.New(rand.NewSource(seed))
	now := database.Now()

	if repos.Catalogs != nil {
		snap := repository.CatalogSnapshot{
			ID:        uuid.NewString(),
			Source:    source,
			Majors:    Majors,
			Minors:    Minors,
			FetchedAt: now.Add(-time.Hour),
		}
		if err := repos.Catalogs.Save(ctx, snap); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}

	for i := 0; i < n; i++ {
		at := now.Add(-time.Duration(n-i) * time.Minute)
		if repos.Submissions != nil {
			sub := repository.Submission{
				ID:          uuid.NewString(),
				Majors:      pick(rng, Majors, 1+rng.Intn(2)),
				Minors:      pick(rng, Minors, rng.Intn(2)),
				SubmittedAt: at,
			}
			if rng.Intn(10) < 2 {
				msg := "planner: POST submit-selections: 503 Service Unavailable"
				sub.Error = &msg
			} else {
				resp := "Selections saved"
				sub.Response = &resp
			}
			if err := repos.Submissions.Insert(ctx, sub); err != nil {
				return fmt.Errorf("seed submission: %w", err)
			}
		}
		if repos.Uploads != nil {
			resp := "File uploaded successfully"
			up := repository.Upload{
				ID:         uuid.NewString(),
				FileName:   fmt.Sprintf("transcript-%02d.pdf", i+1),
				SizeBytes:  int64(1024 + rng.Intn(64*1024)),
				Response:   &resp,
				UploadedAt: at,
			}
			if err := repos.Uploads.Insert(ctx, up); err != nil {
				return fmt.Errorf("seed upload: %w", err)
			}
		}
	}
	return nil
}

// pick returns k distinct entries of items in catalog order.
func pick(rng *rand.Rand, items []string, k int) []string {
	if k > len(items) {
		k = len(items)
	}
	idx := rng.Perm(len(items))[:k]
	out := make([]string, 0, k)
	for i, item := range items {
		for _, j := range idx {
			if i == j {
				out = append(out, item)
				break
			}
		}
	}
	return out
}
