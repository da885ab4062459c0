package orchestrator

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/compozy/changelog/internal/domain"
	"github.com/compozy/changelog/internal/repository"
	"github.com/compozy/changelog/internal/usecase"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GenerateConfig holds configuration for one changelog run.
type GenerateConfig struct {
	OutputFile string
	DryRun     bool      // Print the document instead of writing it
	Stdout     io.Writer // Destination for dry-run output; defaults to os.Stdout
}

// GenerateOrchestrator turns repository history into the changelog document.
type GenerateOrchestrator struct {
	gitRepo repository.GitRepository
	writer  repository.DocumentWriter
	logger  *zap.Logger
}

// NewGenerateOrchestrator creates a new GenerateOrchestrator.
func NewGenerateOrchestrator(
	gitRepo repository.GitRepository,
	writer repository.DocumentWriter,
	logger *zap.Logger,
) *GenerateOrchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GenerateOrchestrator{
		gitRepo: gitRepo,
		writer:  writer,
		logger:  logger,
	}
}

// Execute runs discovery, collection, rendering and writing. Nothing is
// written unless every step succeeds.
func (o *GenerateOrchestrator) Execute(ctx context.Context, cfg GenerateConfig) error {
	log := o.logger.With(zap.String("run_id", uuid.New().String()))

	tags, err := o.discoverTags(ctx, log)
	if err != nil {
		return err
	}
	cl, err := o.collectSections(ctx, log, tags)
	if err != nil {
		return fmt.Errorf("failed to collect release sections: %w", err)
	}
	content := usecase.RenderChangelog(cl)
	log.Debug("rendered changelog",
		zap.String("step", stepRender),
		zap.Int("releases", len(cl.Releases)),
		zap.Bool("unreleased", cl.HasUnreleased()),
		zap.Int("bytes", len(content)),
	)

	if cfg.DryRun {
		out := cfg.Stdout
		if out == nil {
			out = os.Stdout
		}
		if _, err := io.WriteString(out, content); err != nil {
			return fmt.Errorf("failed to print changelog: %w", err)
		}
		log.Debug("dry-run: changelog not written", zap.String("output", cfg.OutputFile))
		return nil
	}

	if err := o.writer.Write(ctx, cfg.OutputFile, []byte(content)); err != nil {
		return fmt.Errorf("failed to write changelog: %w", err)
	}
	log.Debug("changelog written", zap.String("step", stepWrite), zap.String("output", cfg.OutputFile))
	return nil
}

func (o *GenerateOrchestrator) discoverTags(ctx context.Context, log *zap.Logger) ([]domain.Tag, error) {
	uc := &usecase.DiscoverTagsUseCase{
		GitRepo: o.gitRepo,
	}
	tags, err := uc.Execute(ctx)
	if err != nil {
		return nil, err
	}
	log.Debug("discovered release tags", zap.String("step", stepDiscoverTags), zap.Int("count", len(tags)))
	return tags, nil
}

func (o *GenerateOrchestrator) collectSections(
	ctx context.Context,
	log *zap.Logger,
	tags []domain.Tag,
) (*domain.Changelog, error) {
	for _, rng := range usecase.Ranges(tags) {
		log.Debug("querying range", zap.String("step", stepCollectSections), zap.Stringer("range", rng))
	}
	uc := &usecase.CollectSectionsUseCase{
		GitRepo: o.gitRepo,
	}
	return uc.Execute(ctx, tags)
}
