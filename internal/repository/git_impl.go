package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/compozy/changelog/internal/domain"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

const (
	shortHashLength = 7
	shortDateLayout = "2006-01-02"
)

// gitRepository is the go-git implementation of the GitRepository interface.

type gitRepository struct {
	repo *git.Repository
}

// NewGitRepository opens the repository containing path with go-git.
func NewGitRepository(path string) (GitRepository, error) {
	if path == "" {
		path = "."
	}
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}
	return &gitRepository{repo: repo}, nil
}

// ListTags returns all tag names sorted by name, as `git tag --list` does.
func (r *gitRepository) ListTags(_ context.Context) ([]string, error) {
	tagRefs, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	var names []string
	if err := tagRefs.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Log walks the commits reachable from rng.To that are not reachable from rng.From.
func (r *gitRepository) Log(ctx context.Context, rng domain.Range) ([]domain.LogEntry, error) {
	toHash, err := r.resolveRef(rng.To)
	if err != nil {
		return nil, fmt.Errorf("failed to read log for %s: %w", rng, err)
	}
	var excluded map[plumbing.Hash]struct{}
	if rng.From != "" {
		fromHash, err := r.resolveRef(rng.From)
		if err != nil {
			return nil, fmt.Errorf("failed to read log for %s: %w", rng, err)
		}
		excluded, err = r.reachable(ctx, fromHash)
		if err != nil {
			return nil, fmt.Errorf("failed to read log for %s: %w", rng, err)
		}
	}
	commits, err := r.repo.Log(&git.LogOptions{From: toHash, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("failed to read log for %s: %w", rng, err)
	}
	var entries []domain.LogEntry
	err = commits.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, ok := excluded[c.Hash]; ok {
			return nil
		}
		if c.NumParents() > 1 {
			return nil
		}
		entries = append(entries, formatEntry(c))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate commits for %s: %w", rng, err)
	}
	return entries, nil
}

// reachable collects every commit hash reachable from start.
func (r *gitRepository) reachable(ctx context.Context, start plumbing.Hash) (map[plumbing.Hash]struct{}, error) {
	commits, err := r.repo.Log(&git.LogOptions{From: start})
	if err != nil {
		return nil, err
	}
	seen := make(map[plumbing.Hash]struct{})
	err = commits.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		seen[c.Hash] = struct{}{}
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return nil, err
	}
	return seen, nil
}

// resolveRef resolves HEAD, a tag name or any other revision to a commit hash.
func (r *gitRepository) resolveRef(ref string) (plumbing.Hash, error) {
	if ref == domain.HeadRef {
		head, err := r.repo.Head()
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("failed to get HEAD: %w", err)
		}
		return head.Hash(), nil
	}
	if tagRef, err := r.repo.Tag(ref); err == nil {
		return r.resolveTagCommit(tagRef)
	}
	hash, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("unknown revision %s: %w", ref, err)
	}
	return *hash, nil
}

// resolveTagCommit resolves a tag reference to its commit hash.
func (r *gitRepository) resolveTagCommit(tagRef *plumbing.Reference) (plumbing.Hash, error) {
	// Try as lightweight tag first
	if commit, err := r.repo.CommitObject(tagRef.Hash()); err == nil {
		return commit.Hash, nil
	}
	// Try as annotated tag
	if tagObj, err := r.repo.TagObject(tagRef.Hash()); err == nil {
		if commit, err := tagObj.Commit(); err == nil {
			return commit.Hash, nil
		}
	}
	return plumbing.ZeroHash, fmt.Errorf("failed to resolve commit for tag %s", tagRef.Name().Short())
}

// formatEntry renders a commit the way `--pretty=format:%h %ad %s --date=short` does.
func formatEntry(c *object.Commit) domain.LogEntry {
	hash := c.Hash.String()[:shortHashLength]
	date := c.Author.When.Format(shortDateLayout)
	return domain.LogEntry(hash + " " + date + " " + subject(c.Message))
}

// subject returns the first paragraph of a commit message on a single line.
func subject(message string) string {
	message = strings.TrimLeft(message, "\r\n")
	var lines []string
	for _, line := range strings.Split(message, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, " ")
}
