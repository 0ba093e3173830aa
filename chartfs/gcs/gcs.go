// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gcs implements the chartfs.FS interface using Google Cloud
// Storage.
package gcs

import (
	"cloud.google.com/go/storage"
	"github.com/foldperf/foldperf/chartfs"
	"golang.org/x/net/context"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

// FS is an implementation of chartfs.FS using GCS.
type FS struct {
	client *storage.Client
	bucket *storage.BucketHandle
	prefix string
}

// NewFS constructs an FS that writes to the provided bucket. Object
// names are prefixed with prefix, which may be empty.
// On AppEngine or GCE, the default credentials are used. Otherwise,
// opts (see ClientOptions) select the credentials.
// The caller must Close the FS when done.
func NewFS(ctx context.Context, bucketName, prefix string, opts ...option.ClientOption) (*FS, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &FS{client, client.Bucket(bucketName), prefix}, nil
}

// Close closes the underlying storage client.
func (fs *FS) Close() error {
	return fs.client.Close()
}

// ClientOptions returns the client options for authenticating with a
// service account key file, a pre-issued OAuth2 access token, or
// neither, in which case application default credentials apply.
func ClientOptions(credentialsFile, accessToken string) []option.ClientOption {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	if accessToken != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
		opts = append(opts, option.WithTokenSource(ts))
	}
	return opts
}

func (fs *FS) NewWriter(ctx context.Context, name, contentType string) (chartfs.Writer, error) {
	ctx, cancel := context.WithCancel(ctx)
	w := fs.bucket.Object(fs.prefix + name).NewWriter(ctx)
	w.ContentType = contentType
	return &writer{w, cancel}, nil
}

// writer cancels the upload's context to abandon it, which discards
// the object.
type writer struct {
	*storage.Writer
	cancel context.CancelFunc
}

func (w *writer) Close() error {
	defer w.cancel()
	return w.Writer.Close()
}

func (w *writer) CloseWithError(err error) error {
	w.cancel()
	w.Writer.Close()
	return nil
}
