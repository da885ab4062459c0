package repository

import (
	"context"

	"github.com/compozy/changelog/internal/domain"
)

// GitRepository defines the version-control queries the changelog is built from.

type GitRepository interface {
	// ListTags returns every tag name in the repository, unfiltered.
	ListTags(ctx context.Context) ([]string, error)
	// Log returns the non-merge commits selected by rng, newest first.
	Log(ctx context.Context, rng domain.Range) ([]domain.LogEntry, error)
}
