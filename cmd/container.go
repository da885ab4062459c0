package cmd

import (
	"github.com/compozy/changelog/internal/config"
	"github.com/compozy/changelog/internal/logger"
	"github.com/compozy/changelog/internal/orchestrator"
	"github.com/compozy/changelog/internal/repository"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// container holds all the dependencies for the application.

type container struct {
	cfg    *config.Config
	logger *zap.Logger

	fsRepo  repository.FileSystemRepository
	gitRepo repository.GitRepository
	writer  repository.DocumentWriter

	generateOrch *orchestrator.GenerateOrchestrator
}

// newContainer creates a new container with all the dependencies.
func newContainer(verbose bool) (*container, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	log := logger.New(verbose || cfg.Verbose)

	gitRepo, err := newGitRepository(cfg)
	if err != nil {
		return nil, err
	}
	log.Debug("configured backend", zap.String("backend", cfg.Backend), zap.String("output", cfg.OutputFile))

	fsRepo := repository.FileSystemRepository(afero.NewOsFs())
	writer := repository.NewDocumentWriter(fsRepo, cfg.LockTimeout)

	return &container{
		cfg:          cfg,
		logger:       log,
		fsRepo:       fsRepo,
		gitRepo:      gitRepo,
		writer:       writer,
		generateOrch: orchestrator.NewGenerateOrchestrator(gitRepo, writer, log),
	}, nil
}

// newGitRepository selects the version-control backend from configuration.
func newGitRepository(cfg *config.Config) (repository.GitRepository, error) {
	if cfg.Backend == config.BackendGoGit {
		return repository.NewGitRepository(".")
	}
	return repository.NewCLIGitRepository(cfg.GitBinary, "", cfg.CommandTimeout), nil
}

func (c *container) close() {
	//nolint:errcheck // stderr sync fails on some terminals
	_ = c.logger.Sync()
}
