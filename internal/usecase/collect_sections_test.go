package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/compozy/changelog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func parseTags(t *testing.T, names ...string) []domain.Tag {
	t.Helper()
	tags := make([]domain.Tag, 0, len(names))
	for _, name := range names {
		tag, ok := domain.ParseTag(name)
		require.True(t, ok, name)
		tags = append(tags, tag)
	}
	return tags
}

func TestRanges(t *testing.T) {
	t.Run("Should return no ranges without tags", func(t *testing.T) {
		assert.Nil(t, Ranges(nil))
	})
	t.Run("Should cover history start, consecutive pairs and HEAD", func(t *testing.T) {
		ranges := Ranges(parseTags(t, "v1.0.0", "v1.1.0", "v2.0.0"))
		assert.Equal(t, []domain.Range{
			{To: "v1.0.0"},
			{From: "v1.0.0", To: "v1.1.0"},
			{From: "v1.1.0", To: "v2.0.0"},
			{From: "v2.0.0", To: domain.HeadRef},
		}, ranges)
	})
}

func TestCollectSectionsUseCase_Execute(t *testing.T) {
	t.Run("Should collect one section per tag plus unreleased", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		uc := &CollectSectionsUseCase{GitRepo: gitRepo}
		ctx := context.Background()
		gitRepo.On("Log", ctx, domain.Range{To: "v1.0.0"}).
			Return(entries("bbbbbbb 2024-01-02 second", "aaaaaaa 2024-01-01 first"), nil)
		gitRepo.On("Log", ctx, domain.Range{From: "v1.0.0", To: "v1.1.0"}).
			Return(entries("ccccccc 2024-01-03 third"), nil)
		gitRepo.On("Log", ctx, domain.Range{From: "v1.1.0", To: domain.HeadRef}).
			Return(entries("ddddddd 2024-01-04 fourth"), nil)
		cl, err := uc.Execute(ctx, parseTags(t, "v1.0.0", "v1.1.0"))
		require.NoError(t, err)
		require.Len(t, cl.Releases, 2)
		assert.Equal(t, "v1.0.0", cl.Releases[0].Name)
		assert.Len(t, cl.Releases[0].Entries, 2)
		assert.Equal(t, "v1.1.0", cl.Releases[1].Name)
		require.NotNil(t, cl.Unreleased)
		assert.Equal(t, domain.UnreleasedName, cl.Unreleased.Name)
		assert.Equal(t, entries("ddddddd 2024-01-04 fourth"), cl.Unreleased.Entries)
		gitRepo.AssertExpectations(t)
	})
	t.Run("Should not query anything without tags", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		uc := &CollectSectionsUseCase{GitRepo: gitRepo}
		cl, err := uc.Execute(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, cl.Releases)
		assert.Nil(t, cl.Unreleased)
		gitRepo.AssertNotCalled(t, "Log", mock.Anything, mock.Anything)
	})
	t.Run("Should stop at the first failing range", func(t *testing.T) {
		gitRepo := new(mockGitRepository)
		uc := &CollectSectionsUseCase{GitRepo: gitRepo}
		ctx := context.Background()
		expectedErr := errors.New("bad revision")
		gitRepo.On("Log", ctx, domain.Range{To: "v1.0.0"}).Return(nil, expectedErr)
		cl, err := uc.Execute(ctx, parseTags(t, "v1.0.0", "v1.1.0"))
		assert.ErrorIs(t, err, expectedErr)
		assert.Nil(t, cl)
		gitRepo.AssertNumberOfCalls(t, "Log", 1)
	})
}
