// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/modwire/modwire/pkg/defaults"
	"github.com/modwire/modwire/pkg/errors"
)

// Option configures a FileStore.
type Option func(*FileStore)

// WithMaxSize sets the maximum size (in bytes) of the file to be read.
// Default is defaults.StorageMaxFileSize.
func WithMaxSize(size int) Option {
	return func(s *FileStore) {
		s.maxSize = size
	}
}

// WithFileMode sets the permission bits used when creating the file.
// Default is 0644. Existing files keep their mode.
func WithFileMode(mode os.FileMode) Option {
	return func(s *FileStore) {
		s.mode = mode
	}
}

// FileStore is a Store backed by a single file on disk.
//
// Reads validate that the content is UTF-8 and below the configured size
// limit. Writes go through a temp file in the same directory followed by a
// rename, so a crash mid-write never leaves a half-written configuration.
type FileStore struct {
	path    string
	maxSize int
	mode    os.FileMode
}

// NewFileStore creates a FileStore for the file at path.
func NewFileStore(path string, opts ...Option) *FileStore {
	s := &FileStore{
		path:    path,
		maxSize: defaults.StorageMaxFileSize,
		mode:    0o644,
	}

	// Apply options
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file path this store reads and writes.
func (s *FileStore) Path() string {
	return s.path
}

// Read returns the full file content.
func (s *FileStore) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeStorage,
			"failed to read configuration file", err,
			map[string]any{"path": s.path})
	}

	if len(data) > s.maxSize {
		return "", errors.NewWithContext(errors.ErrCodeStorage,
			fmt.Sprintf("configuration file exceeds maximum size of %d bytes", s.maxSize),
			map[string]any{"path": s.path, "size": len(data)})
	}

	if !utf8.Valid(data) {
		return "", errors.NewWithContext(errors.ErrCodeStorage,
			"configuration file contains invalid UTF-8",
			map[string]any{"path": s.path})
	}

	return string(data), nil
}

// Write replaces the file content atomically.
func (s *FileStore) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeStorage,
			"failed to create temp file", err,
			map[string]any{"path": s.path})
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.WrapWithContext(errors.ErrCodeStorage,
			"failed to write configuration file", err,
			map[string]any{"path": s.path})
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.WrapWithContext(errors.ErrCodeStorage,
			"failed to close temp file", err,
			map[string]any{"path": s.path})
	}

	if err := os.Chmod(tmpName, s.mode); err != nil {
		os.Remove(tmpName)
		return errors.WrapWithContext(errors.ErrCodeStorage,
			"failed to set file mode", err,
			map[string]any{"path": s.path})
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return errors.WrapWithContext(errors.ErrCodeStorage,
			"failed to replace configuration file", err,
			map[string]any{"path": s.path})
	}

	return nil
}
