package domain

const (
	// HeadRef names the current working head in range queries.
	HeadRef = "HEAD"
	// UnreleasedName is the section name for commits after the latest tag.
	UnreleasedName = "Unreleased"
)

// LogEntry is one rendered commit line: short hash, date and subject.
type LogEntry string

// Range selects the commits reachable from To but not from From.
// An empty From means the start of history.
type Range struct {
	From string
	To   string
}

// Spec returns the revision range argument understood by git.
func (r Range) Spec() string {
	if r.From == "" {
		return r.To
	}
	return r.From + ".." + r.To
}

// String implements fmt.Stringer.
func (r Range) String() string {
	return r.Spec()
}

// Section pairs a release name with the commits that landed in it.
type Section struct {
	Name    string
	Entries []LogEntry
}

// IsEmpty reports whether the section has no entries.
func (s Section) IsEmpty() bool {
	return len(s.Entries) == 0
}

// Changelog holds everything needed to render the document.
// Releases are kept in ascending chronological order.
type Changelog struct {
	Unreleased *Section
	Releases   []Section
}

// HasUnreleased reports whether an Unreleased section should be rendered.
func (c *Changelog) HasUnreleased() bool {
	return c.Unreleased != nil && !c.Unreleased.IsEmpty()
}
