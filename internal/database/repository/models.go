package repository

import "time"

// CatalogSnapshot is the last known option lists from one source.
type CatalogSnapshot struct {
	ID        string
	Source    string
	Majors    []string
	Minors    []string
	FetchedAt time.Time
}

// Submission records one attempt to submit selections.
type Submission struct {
	ID          string
	Majors      []string
	Minors      []string
	Response    *string
	Error       *string
	SubmittedAt time.Time
}

// Upload records one transcript upload attempt.
type Upload struct {
	ID         string
	FileName   string
	SizeBytes  int64
	Response   *string
	Error      *string
	UploadedAt time.Time
}
