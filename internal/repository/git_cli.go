package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/compozy/changelog/internal/domain"
	"golang.org/x/text/encoding/unicode"
)

const (
	// DefaultGitBinary is the executable used by the CLI backend.
	DefaultGitBinary = "git"
	logFormat        = "--pretty=format:%h %ad %s"
)

// cliGitRepository implements GitRepository by running the git executable.
type cliGitRepository struct {
	binary string
	dir    string
	// timeout for each command; zero disables it
	timeout time.Duration
}

// NewCLIGitRepository creates a GitRepository backed by the git executable.
// Commands run in dir, or in the process working directory when dir is empty.
func NewCLIGitRepository(binary, dir string, timeout time.Duration) GitRepository {
	if binary == "" {
		binary = DefaultGitBinary
	}
	return &cliGitRepository{
		binary:  binary,
		dir:     dir,
		timeout: timeout,
	}
}

// ListTags returns the output of `git tag --list`, one name per element.
func (r *cliGitRepository) ListTags(ctx context.Context) ([]string, error) {
	out, err := r.executeCommand(ctx, "tag", "--list")
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	var tags []string
	for _, line := range splitLines(out) {
		if name := strings.TrimSpace(line); name != "" {
			tags = append(tags, name)
		}
	}
	return tags, nil
}

// Log runs `git log` over the range, excluding merge commits.
func (r *cliGitRepository) Log(ctx context.Context, rng domain.Range) ([]domain.LogEntry, error) {
	out, err := r.executeCommand(ctx,
		"log",
		"--no-merges",
		logFormat,
		"--date=short",
		rng.Spec(),
		"--",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to read log for %s: %w", rng, err)
	}
	var entries []domain.LogEntry
	for _, line := range splitLines(out) {
		if strings.TrimSpace(line) != "" {
			entries = append(entries, domain.LogEntry(line))
		}
	}
	return entries, nil
}

// executeCommand runs git with optional timeout and returns decoded, trimmed stdout.
func (r *cliGitRepository) executeCommand(ctx context.Context, args ...string) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Dir = r.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%s %s timed out after %v", r.binary, args[0], r.timeout)
		}
		if errMsg := strings.TrimSpace(decodeOutput(stderr.Bytes())); errMsg != "" {
			return "", fmt.Errorf("%s %s failed: %w (stderr: %s)", r.binary, args[0], err, errMsg)
		}
		return "", fmt.Errorf("%s %s failed: %w", r.binary, args[0], err)
	}

	return strings.TrimSpace(decodeOutput(stdout.Bytes())), nil
}

// decodeOutput decodes git output as UTF-8, replacing each invalid byte with U+FFFD.
func decodeOutput(b []byte) string {
	decoded, err := unicode.UTF8.NewDecoder().Bytes(b)
	if err != nil {
		return strings.ToValidUTF8(string(b), "\uFFFD")
	}
	return string(decoded)
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
