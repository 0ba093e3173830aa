// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chartfs

import (
	"bytes"
	"errors"
	"sort"
	"sync"

	"golang.org/x/net/context"
)

// MemFS is an in-memory filesystem implementing the FS interface.
type MemFS struct {
	mu      sync.Mutex
	content map[string]*memFile
}

// NewMemFS constructs a new, empty MemFS.
func NewMemFS() *MemFS {
	return &MemFS{
		content: make(map[string]*memFile),
	}
}

// NewWriter returns a Writer for a given file name. When the Writer
// is closed, the file will be stored in the MemFS and can be
// retrieved with the Files or Bytes methods.
func (fs *MemFS) NewWriter(_ context.Context, name, contentType string) (Writer, error) {
	return &memFile{fs: fs, name: name, contentType: contentType}, nil
}

// Files returns the names of the files written to fs, in sorted
// order.
func (fs *MemFS) Files() []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	var names []string
	for name := range fs.content {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bytes returns the content and content type of the named file.
func (fs *MemFS) Bytes(name string) (data []byte, contentType string, ok bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	f, ok := fs.content[name]
	if !ok {
		return nil, "", false
	}
	return f.content.Bytes(), f.contentType, true
}

// memFile represents a file in a MemFS. While the file is being
// written, fs points to the filesystem. Close writes the file's
// content to fs and sets fs to nil.
type memFile struct {
	fs          *MemFS
	name        string
	contentType string
	content     bytes.Buffer
}

var errClosed = errors.New("chartfs: write to closed file")

func (f *memFile) Write(p []byte) (int, error) {
	if f.fs == nil {
		return 0, errClosed
	}
	return f.content.Write(p)
}

func (f *memFile) Close() error {
	if f.fs == nil {
		return errClosed
	}
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()
	f.fs.content[f.name] = f
	f.fs = nil
	return nil
}

func (f *memFile) CloseWithError(error) error {
	f.fs = nil
	return nil
}
