package repository

import "github.com/spf13/afero"

// FileSystemRepository is the filesystem the changelog document is written to.

type FileSystemRepository interface {
	afero.Fs
}
