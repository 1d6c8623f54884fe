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

package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNotFound, "resource not found")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "resource not found" {
		t.Errorf("expected message 'resource not found', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeStorage, "operation failed", cause)

	if err.Code != ErrCodeStorage {
		t.Errorf("expected code %s, got %s", ErrCodeStorage, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("permission denied")
	ctx := map[string]interface{}{
		"path":    "config/modules.php",
		"profile": "application-config",
	}

	err := WrapWithContext(ErrCodeStorage, "configuration write failed", cause, ctx)

	if err.Code != ErrCodeStorage {
		t.Errorf("expected code %s, got %s", ErrCodeStorage, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["path"] != "config/modules.php" {
		t.Errorf("expected path to be config/modules.php")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeNotFound, "not found"),
			expected: "[NOT_FOUND] not found",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInternal, "failed", errors.New("root cause")),
			expected: "[INTERNAL] failed: root cause",
		},
		{
			name:     "pattern mismatch code",
			err:      New(ErrCodePatternMismatch, "insertion pattern matched nothing"),
			expected: "[PATTERN_MISMATCH] insertion pattern matched nothing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(New(ErrCodePatternMismatch, "x")); got != ErrCodePatternMismatch {
		t.Errorf("CodeOf() = %s, want %s", got, ErrCodePatternMismatch)
	}
	if got := CodeOf(errors.New("plain")); got != ErrCodeInternal {
		t.Errorf("CodeOf() = %s, want %s", got, ErrCodeInternal)
	}

	wrapped := Wrap(ErrCodeStorage, "outer", New(ErrCodePatternMismatch, "inner"))
	if got := CodeOf(wrapped); got != ErrCodeStorage {
		t.Errorf("CodeOf() = %s, want %s", got, ErrCodeStorage)
	}
}
