package ioutils

import (
	"github.com/spf13/afero"
)

// Scratch is a temporary directory owned exclusively by one run.
//
// The directory and everything in it is removed by Release. Release is
// safe to call more than once, so callers defer it immediately after
// acquisition and may also call it early.
type Scratch struct {
	fs   afero.Fs
	path string
}

// NewScratch creates a fresh temporary directory in the file system's
// default temp location, named with prefix.
func NewScratch(fs afero.Fs, prefix string) (*Scratch, error) {
	dir, err := afero.TempDir(fs, "", prefix)
	if err != nil {
		return nil, err
	}
	return &Scratch{fs: fs, path: dir}, nil
}

// Path returns the scratch directory path. It is empty after Release.
func (s *Scratch) Path() string {
	return s.path
}

// Release removes the scratch directory and its contents.
func (s *Scratch) Release() error {
	if s.path == "" {
		return nil
	}
	err := s.fs.RemoveAll(s.path)
	s.path = ""
	return err
}
