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

import "context"

// MemStore is an in-memory Store. It is used by tests and by callers that
// already hold the configuration text and only need the engine's transforms.
type MemStore struct {
	text   string
	writes int
}

// NewMemStore creates a MemStore seeded with the given text.
func NewMemStore(text string) *MemStore {
	return &MemStore{text: text}
}

// Read returns the current text.
func (s *MemStore) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.text, nil
}

// Write replaces the current text.
func (s *MemStore) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.text = text
	s.writes++
	return nil
}

// Text returns the current text without going through the Store contract.
func (s *MemStore) Text() string {
	return s.text
}

// Writes returns how many times Write has been called.
func (s *MemStore) Writes() int {
	return s.writes
}
