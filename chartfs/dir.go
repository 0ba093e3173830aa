// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chartfs

import (
	"os"
	"path/filepath"

	"golang.org/x/net/context"
)

// Dir is an FS rooted at a local directory. The directory is created
// on first write if it does not exist. The empty Dir is the current
// working directory.
type Dir string

// NewWriter implements FS.NewWriter. Data is written to a temporary
// file in the same directory and renamed into place on Close.
func (d Dir) NewWriter(_ context.Context, name, _ string) (Writer, error) {
	dir := string(d)
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
		return nil, err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return nil, err
	}
	return &dirWriter{f, path}, nil
}

type dirWriter struct {
	*os.File
	path string
}

func (w *dirWriter) Close() error {
	if err := w.File.Close(); err != nil {
		os.Remove(w.File.Name())
		return err
	}
	if err := os.Chmod(w.File.Name(), 0644); err != nil {
		os.Remove(w.File.Name())
		return err
	}
	return os.Rename(w.File.Name(), w.path)
}

func (w *dirWriter) CloseWithError(error) error {
	w.File.Close()
	return os.Remove(w.File.Name())
}
