// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gcs

import (
	"testing"

	"golang.org/x/net/context"
	"google.golang.org/api/option"
)

func TestClientOptions(t *testing.T) {
	for _, test := range []struct {
		creds, token string
		want         int
	}{
		{"", "", 0},
		{"key.json", "", 1},
		{"", "ya29.token", 1},
		{"key.json", "ya29.token", 2},
	} {
		if got := len(ClientOptions(test.creds, test.token)); got != test.want {
			t.Errorf("ClientOptions(%q, %q) returned %d options, want %d", test.creds, test.token, got, test.want)
		}
	}
}

func TestNewFSClose(t *testing.T) {
	fs, err := NewFS(context.Background(), "bucket", "charts/", option.WithoutAuthentication())
	if err != nil {
		t.Fatal(err)
	}
	if fs.prefix != "charts/" {
		t.Errorf("prefix = %q, want %q", fs.prefix, "charts/")
	}
	if err := fs.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
