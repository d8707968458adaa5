// Package staging writes a group of output files so that either all of them
// appear at their destinations or none do.
//
// Each file is written to a temporary file in its destination directory and
// only renamed into place by Commit, once every file of the group was written.
//
//	set := &staging.Set{}
//	defer set.Discard()
//	f, err := set.Create("out/merged.xlsx")
//	...
//	return set.Commit()
package staging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentstation/contactmerge/pkg/constants"
	"github.com/agentstation/contactmerge/pkg/errors"
)

type file struct {
	temp string
	dest string
}

// Set is a group of staged files. The zero value is ready to use.
// A Set is not safe for concurrent use.
type Set struct {
	files []file
}

// Create creates the parent directory of dest and a temporary file beside
// dest. The caller writes to and closes the returned file.
func (s *Set) Create(dest string) (*os.File, error) {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", dest, err)
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".*.tmp")
	if err != nil {
		return nil, errors.WrapIO("create", dest, err)
	}
	if err := f.Chmod(constants.FilePermissions); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return nil, errors.WrapIO("create", dest, err)
	}
	s.files = append(s.files, file{temp: f.Name(), dest: dest})
	return f, nil
}

// Paths returns the destinations staged so far, in creation order.
func (s *Set) Paths() []string {
	out := make([]string, len(s.files))
	for i, f := range s.files {
		out[i] = f.dest
	}
	return out
}

// Len returns the number of staged files.
func (s *Set) Len() int {
	return len(s.files)
}

// Commit moves every staged file to its destination. If a move fails, the
// destinations already moved are removed and the remaining temporary files
// are discarded.
func (s *Set) Commit() error {
	defer s.Discard()

	for _, f := range s.files {
		if info, err := os.Stat(f.dest); err == nil && info.IsDir() {
			return errors.NewIOError("move", f.dest, fmt.Errorf("destination is a directory"))
		}
	}

	for i, f := range s.files {
		if err := os.Rename(f.temp, f.dest); err != nil {
			for _, done := range s.files[:i] {
				_ = os.Remove(done.dest)
			}
			return errors.WrapIO("move", f.dest, err)
		}
	}
	s.files = nil
	return nil
}

// Discard removes every temporary file that was not committed. It is safe to
// call after Commit.
func (s *Set) Discard() {
	for _, f := range s.files {
		_ = os.Remove(f.temp)
	}
	s.files = nil
}
