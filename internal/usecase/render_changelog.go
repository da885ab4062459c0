package usecase

import (
	"strings"
	"unicode"

	"github.com/compozy/changelog/internal/domain"
)

const (
	documentTitle        = "# Changelog"
	unreleasedHeading    = "## [Unreleased]"
	noChangesPlaceholder = "No changes recorded"
)

// RenderChangelog renders the document: Unreleased first when it has entries,
// then releases newest first. The output ends with exactly one newline and is
// identical for identical input.
func RenderChangelog(cl *domain.Changelog) string {
	lines := []string{documentTitle, ""}
	if cl.HasUnreleased() {
		lines = append(lines, unreleasedHeading, "")
		lines = appendBullets(lines, cl.Unreleased.Entries)
		lines = append(lines, "")
	}
	for i := len(cl.Releases) - 1; i >= 0; i-- {
		section := cl.Releases[i]
		lines = append(lines, "## "+section.Name, "")
		if section.IsEmpty() {
			lines = append(lines, "- "+noChangesPlaceholder)
		} else {
			lines = appendBullets(lines, section.Entries)
		}
		lines = append(lines, "")
	}
	return strings.TrimRightFunc(strings.Join(lines, "\n"), unicode.IsSpace) + "\n"
}

func appendBullets(lines []string, entries []domain.LogEntry) []string {
	for _, entry := range entries {
		lines = append(lines, "- "+string(entry))
	}
	return lines
}
