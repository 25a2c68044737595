/*
 * Copyright 2026 The Kythe Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package vfs defines a generic file system interface used to locate, read,
// and write compilation database files.
package vfs // import "compdb.io/compdb/go/platform/vfs"

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Interface is a virtual file system interface for reading and writing files.
// It wraps the normal os package functions so that tests and other callers
// can substitute a different implementation.
type Interface interface {
	Reader
	Writer
}

// Reader is a virtual file system interface for reading files.
type Reader interface {
	// Open opens an existing file for reading, as os.Open.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Glob returns the regular files beneath root that match the
	// slash-separated glob pattern, each joined onto root. The pattern is
	// matched relative to root, so root itself is taken literally. In
	// addition to the path.Match syntax, a "**" path segment matches zero or
	// more directories.
	Glob(ctx context.Context, root, pattern string) ([]string, error)
}

// Writer is a virtual file system interface for writing files.
type Writer interface {
	// Create creates or truncates a file for writing, as os.Create.
	Create(ctx context.Context, path string) (io.WriteCloser, error)
}

// Default is the global default VFS. This is usually the LocalFS and should
// only be replaced in tests.
var Default Interface = LocalFS{}

// ReadFile is the equivalent of os.ReadFile using r.
func ReadFile(ctx context.Context, r Reader, filename string) ([]byte, error) {
	f, err := r.Open(ctx, filename)
	if err != nil {
		return nil, err
	}
	defer f.Close() // ignore errors
	return io.ReadAll(f)
}

// WriteFile writes data to filename using w, truncating any existing file.
func WriteFile(ctx context.Context, w Writer, filename string, data []byte) error {
	f, err := w.Create(ctx, filename)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LocalFS implements the VFS interface using the local file system.
type LocalFS struct{}

// Open implements part of the VFS interface.
func (LocalFS) Open(_ context.Context, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// Create implements part of the VFS interface.
func (LocalFS) Create(_ context.Context, path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// Glob implements part of the VFS interface. Symlinked directories are
// followed, as they are in a bazel execution root.
func (LocalFS) Glob(_ context.Context, root, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}
	for i, m := range matches {
		matches[i] = filepath.Join(root, filepath.FromSlash(m))
	}
	return matches, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
