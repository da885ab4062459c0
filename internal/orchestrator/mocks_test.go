package orchestrator

import (
	"context"

	"github.com/compozy/changelog/internal/domain"
	"github.com/stretchr/testify/mock"
)

// Mock for GitRepository
type mockGitRepository struct {
	mock.Mock
}

func (m *mockGitRepository) ListTags(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockGitRepository) Log(ctx context.Context, rng domain.Range) ([]domain.LogEntry, error) {
	args := m.Called(ctx, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LogEntry), args.Error(1)
}

// Mock for DocumentWriter
type mockDocumentWriter struct {
	mock.Mock
}

func (m *mockDocumentWriter) Write(ctx context.Context, path string, content []byte) error {
	args := m.Called(ctx, path, content)
	return args.Error(0)
}
