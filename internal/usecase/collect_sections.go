package usecase

import (
	"context"

	"github.com/compozy/changelog/internal/domain"
	"github.com/compozy/changelog/internal/repository"
)

// CollectSectionsUseCase reads the commits of every release range.
type CollectSectionsUseCase struct {
	GitRepo repository.GitRepository
}

// Execute builds one section per tag, oldest first, plus the Unreleased section
// after the latest tag. With no tags the changelog is empty.
func (uc *CollectSectionsUseCase) Execute(ctx context.Context, tags []domain.Tag) (*domain.Changelog, error) {
	cl := &domain.Changelog{Releases: make([]domain.Section, 0, len(tags))}
	for i, rng := range Ranges(tags) {
		entries, err := uc.GitRepo.Log(ctx, rng)
		if err != nil {
			return nil, err
		}
		if i < len(tags) {
			cl.Releases = append(cl.Releases, domain.Section{Name: tags[i].Name, Entries: entries})
			continue
		}
		cl.Unreleased = &domain.Section{Name: domain.UnreleasedName, Entries: entries}
	}
	return cl, nil
}

// Ranges lists the ranges to query for tags sorted ascending: history start to
// the first tag, each consecutive pair, then the latest tag to HEAD.
func Ranges(tags []domain.Tag) []domain.Range {
	if len(tags) == 0 {
		return nil
	}
	ranges := make([]domain.Range, 0, len(tags)+1)
	prev := ""
	for _, tag := range tags {
		ranges = append(ranges, domain.Range{From: prev, To: tag.Name})
		prev = tag.Name
	}
	return append(ranges, domain.Range{From: prev, To: domain.HeadRef})
}
