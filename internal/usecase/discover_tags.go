package usecase

import (
	"context"
	"fmt"

	"github.com/compozy/changelog/internal/domain"
	"github.com/compozy/changelog/internal/repository"
)

// DiscoverTagsUseCase finds the release tags of the repository.

type DiscoverTagsUseCase struct {
	GitRepo repository.GitRepository
}

// Execute returns the release tags sorted ascending. Names outside the release
// pattern are dropped without error.
func (uc *DiscoverTagsUseCase) Execute(ctx context.Context) ([]domain.Tag, error) {
	names, err := uc.GitRepo.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to discover tags: %w", err)
	}
	tags := make([]domain.Tag, 0, len(names))
	for _, name := range names {
		if tag, ok := domain.ParseTag(name); ok {
			tags = append(tags, tag)
		}
	}
	domain.SortTags(tags)
	return tags, nil
}
