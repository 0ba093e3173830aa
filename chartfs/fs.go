// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chartfs provides the destinations charts and reports are
// written to.
package chartfs

import (
	"io"
	"path"

	"golang.org/x/net/context"
)

// An FS stores files.
type FS interface {
	// NewWriter creates a new file called name with the given
	// content type. The file is not visible under its final name
	// until Close returns successfully.
	NewWriter(ctx context.Context, name, contentType string) (Writer, error)
}

// A Writer is an io.Writer that can also be closed with an error.
type Writer interface {
	io.WriteCloser
	// CloseWithError cancels the writing of the file, removing
	// any partially written data.
	CloseWithError(error) error
}

// ContentType returns the content type for a file name, based on its
// extension.
func ContentType(name string) string {
	switch path.Ext(name) {
	case ".png":
		return "image/png"
	case ".html":
		return "text/html; charset=utf-8"
	case ".csv":
		return "text/csv; charset=utf-8"
	}
	return "application/octet-stream"
}
