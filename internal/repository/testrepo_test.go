package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC)

// testRepo builds a throwaway repository with deterministic commit dates.
type testRepo struct {
	t    *testing.T
	dir  string
	repo *git.Repository
	n    int
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return &testRepo{t: t, dir: dir, repo: repo}
}

func (r *testRepo) signature() *object.Signature {
	return &object.Signature{
		Name:  "Test User",
		Email: "test@example.com",
		When:  baseTime.AddDate(0, 0, r.n),
	}
}

// commit writes a new file and commits it, returning the commit hash.
func (r *testRepo) commit(message string) plumbing.Hash {
	r.t.Helper()
	return r.commitWithParents(message, nil)
}

func (r *testRepo) commitWithParents(message string, parents []plumbing.Hash) plumbing.Hash {
	r.t.Helper()
	r.n++
	wt, err := r.repo.Worktree()
	require.NoError(r.t, err)
	name := fmt.Sprintf("file%d.txt", r.n)
	err = os.WriteFile(filepath.Join(r.dir, name), []byte(message), 0644)
	require.NoError(r.t, err)
	_, err = wt.Add(name)
	require.NoError(r.t, err)
	sig := r.signature()
	hash, err := wt.Commit(message, &git.CommitOptions{
		Author:    sig,
		Committer: sig,
		Parents:   parents,
	})
	require.NoError(r.t, err)
	return hash
}

// sideCommit stores a commit on top of parent without moving HEAD.
func (r *testRepo) sideCommit(message string, parent plumbing.Hash) plumbing.Hash {
	r.t.Helper()
	r.n++
	parentCommit, err := r.repo.CommitObject(parent)
	require.NoError(r.t, err)
	sig := r.signature()
	c := &object.Commit{
		Author:       *sig,
		Committer:    *sig,
		Message:      message,
		TreeHash:     parentCommit.TreeHash,
		ParentHashes: []plumbing.Hash{parent},
	}
	obj := r.repo.Storer.NewEncodedObject()
	require.NoError(r.t, c.Encode(obj))
	hash, err := r.repo.Storer.SetEncodedObject(obj)
	require.NoError(r.t, err)
	return hash
}

// merge records a merge commit of HEAD and other.
func (r *testRepo) merge(message string, other plumbing.Hash) plumbing.Hash {
	r.t.Helper()
	head, err := r.repo.Head()
	require.NoError(r.t, err)
	return r.commitWithParents(message, []plumbing.Hash{head.Hash(), other})
}

func (r *testRepo) tag(name string) {
	r.t.Helper()
	head, err := r.repo.Head()
	require.NoError(r.t, err)
	_, err = r.repo.CreateTag(name, head.Hash(), nil)
	require.NoError(r.t, err)
}

func (r *testRepo) annotatedTag(name string) {
	r.t.Helper()
	head, err := r.repo.Head()
	require.NoError(r.t, err)
	_, err = r.repo.CreateTag(name, head.Hash(), &git.CreateTagOptions{
		Message: "Release " + name,
		Tagger:  r.signature(),
	})
	require.NoError(r.t, err)
}

// entry formats the expected log line for a commit made by this helper.
func (r *testRepo) entry(hash plumbing.Hash, message string) string {
	r.t.Helper()
	c, err := r.repo.CommitObject(hash)
	require.NoError(r.t, err)
	return hash.String()[:7] + " " + c.Author.When.Format("2006-01-02") + " " + message
}
