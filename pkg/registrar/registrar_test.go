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

package registrar_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modwire/modwire/pkg/errors"
	"github.com/modwire/modwire/pkg/notify"
	"github.com/modwire/modwire/pkg/registrar"
	"github.com/modwire/modwire/pkg/storage"
)

// inlineSet is the single-line quoted-list pattern table used by most tests.
func inlineSet() registrar.PatternSet {
	return registrar.PatternSet{
		Detect: `'%s'`,
		Insert: map[registrar.Category]registrar.PatternPair{
			registrar.CategoryComponent: {
				Match:    `('components'\s*=>\s*\[[^\]]*)\]`,
				Template: "$1,'%s']",
			},
			registrar.CategoryModule: {
				Match:    `('modules'\s*=>\s*\[[^\]]*)\]`,
				Template: "$1,'%s']",
			},
			registrar.CategoryDependency: {
				Match:    `('%s')`,
				Template: "$1,'%s'",
			},
			registrar.CategoryPreApplication: {
				Match:    `('%s')`,
				Template: "'%s',$1",
			},
		},
		Remove:  registrar.PatternPair{Match: `'%s',?`},
		Cleanup: registrar.PatternPair{Match: `,\s*\]`, Template: `]`},
	}
}

// blockSet is the multi-line pattern table with one quoted entry per line.
func blockSet() registrar.PatternSet {
	return registrar.PatternSet{
		Detect: `'%s'`,
		Insert: map[registrar.Category]registrar.PatternPair{
			registrar.CategoryModule: {
				Match:    `('modules'\s*=>\s*\[)`,
				Template: "$1\n        '%s',",
			},
			registrar.CategoryDependency: {
				Match:    `(?m)^([ \t]*)('%s',?)[ \t]*$`,
				Template: "$1$2\n$1'%s',",
			},
			registrar.CategoryComponent: {
				Match:    `('components'\s*=>\s*\[)`,
				Template: "$1\n        '%s',",
			},
			registrar.CategoryPreApplication: {
				Match:    `(?m)^([ \t]*)('%s',?)[ \t]*$`,
				Template: "$1'%s',\n$1$2",
			},
		},
		Remove:  registrar.PatternPair{Match: `(?m)^[ \t]*'%s',?[ \t]*$`},
		Cleanup: registrar.PatternPair{Match: `([,\[{(])(\r?\n){2}`, Template: "$1$2"},
	}
}

func newTestRegistrar(t *testing.T, set registrar.PatternSet, text string, opts ...registrar.Option) (*registrar.Registrar, *storage.MemStore, *notify.Recorder) {
	t.Helper()
	store := storage.NewMemStore(text)
	rec := notify.NewRecorder()
	opts = append([]registrar.Option{
		registrar.WithStore(store),
		registrar.WithNotifier(rec),
	}, opts...)
	r, err := registrar.New(set, opts...)
	require.NoError(t, err)
	return r, store, rec
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	t.Run("store is required", func(t *testing.T) {
		t.Parallel()
		_, err := registrar.New(inlineSet())
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
	})

	t.Run("invalid pattern set is rejected", func(t *testing.T) {
		t.Parallel()
		set := inlineSet()
		set.Detect = "no slot"
		_, err := registrar.New(set, registrar.WithStore(storage.NewMemStore("")))
		require.Error(t, err)
	})

	t.Run("dependencies require a dependency pair", func(t *testing.T) {
		t.Parallel()
		set := inlineSet()
		delete(set.Insert, registrar.CategoryDependency)
		_, err := registrar.New(set,
			registrar.WithStore(storage.NewMemStore("")),
			registrar.WithDependencies("Acme\\Core"))
		require.Error(t, err)
	})

	t.Run("application group requires a pre-application pair", func(t *testing.T) {
		t.Parallel()
		set := inlineSet()
		delete(set.Insert, registrar.CategoryPreApplication)
		_, err := registrar.New(set,
			registrar.WithStore(storage.NewMemStore("")),
			registrar.WithApplicationGroup("Application\\Module"))
		require.Error(t, err)
	})
}

func TestRegistersType(t *testing.T) {
	t.Parallel()

	set := inlineSet()
	delete(set.Insert, registrar.CategoryComponent)
	r, _, _ := newTestRegistrar(t, set, "")

	assert.True(t, r.RegistersType(registrar.CategoryModule))
	assert.False(t, r.RegistersType(registrar.CategoryComponent))
	assert.Equal(t, []registrar.Category{
		registrar.CategoryDependency,
		registrar.CategoryModule,
		registrar.CategoryPreApplication,
	}, r.AllowedTypes())
}

func TestRegisterModuleInline(t *testing.T) {
	t.Parallel()

	r, store, _ := newTestRegistrar(t, inlineSet(),
		`return ['modules' => ['Foo','Bar']];`)

	require.NoError(t, r.Register(t.Context(), "Baz", registrar.CategoryModule))
	assert.Equal(t, `return ['modules' => ['Foo','Bar','Baz']];`, store.Text())
	assert.Equal(t, 1, store.Writes())

	registered, err := r.IsRegistered(t.Context(), "Baz")
	require.NoError(t, err)
	assert.True(t, registered)
}

func TestRegisterIdempotent(t *testing.T) {
	t.Parallel()

	r, store, rec := newTestRegistrar(t, inlineSet(),
		`return ['modules' => ['Foo','Bar']];`)

	require.NoError(t, r.Register(t.Context(), "Baz", registrar.CategoryModule))
	require.NoError(t, r.Register(t.Context(), "Baz", registrar.CategoryModule))

	assert.Equal(t, `return ['modules' => ['Foo','Bar','Baz']];`, store.Text())
	assert.Equal(t, 1, store.Writes())

	events := rec.Events()
	require.Len(t, events, 1)
	assert.Equal(t, notify.LevelInfo, events[0].Level)
	assert.Equal(t, "Baz", events[0].Entry)
	assert.Contains(t, events[0].Message, "already registered")
}

func TestRegisterUnknownCategory(t *testing.T) {
	t.Parallel()

	set := inlineSet()
	delete(set.Insert, registrar.CategoryComponent)
	r, store, _ := newTestRegistrar(t, set, `return ['modules' => ['Foo']];`)

	err := r.Register(t.Context(), "Baz", registrar.CategoryComponent)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
	assert.Equal(t, 0, store.Writes())
}

func TestRegisterPatternMismatch(t *testing.T) {
	t.Parallel()

	r, store, _ := newTestRegistrar(t, inlineSet(), `return [];`)

	err := r.Register(t.Context(), "Baz", registrar.CategoryModule)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodePatternMismatch, errors.CodeOf(err))
	assert.Equal(t, 0, store.Writes())
	assert.Equal(t, `return [];`, store.Text())
}

func TestDeregisterRoundTrip(t *testing.T) {
	t.Parallel()

	original := `return ['modules' => ['Foo','Bar']];`
	r, store, rec := newTestRegistrar(t, inlineSet(), original)

	require.NoError(t, r.Register(t.Context(), "Baz", registrar.CategoryModule))
	require.NoError(t, r.Deregister(t.Context(), "Baz"))

	assert.Equal(t, original, store.Text())

	registered, err := r.IsRegistered(t.Context(), "Baz")
	require.NoError(t, err)
	assert.False(t, registered)

	events := rec.Events()
	require.Len(t, events, 1)
	assert.Contains(t, events[0].Message, "removed")
}

func TestDeregisterRemovalPatternMismatch(t *testing.T) {
	t.Parallel()

	// Detection sees the entry but the removal pattern requires it on its
	// own line, which the inline text never satisfies.
	set := inlineSet()
	set.Remove = registrar.PatternPair{Match: `(?m)^'%s',$`, Template: ""}

	original := `return ['modules' => ['Foo','Baz']];`
	r, store, rec := newTestRegistrar(t, set, original)

	err := r.Deregister(t.Context(), "Baz")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodePatternMismatch, errors.CodeOf(err))
	assert.Equal(t, 0, store.Writes())
	assert.Equal(t, original, store.Text())
	assert.Empty(t, rec.Events())
}

func TestDeregisterAbsent(t *testing.T) {
	t.Parallel()

	r, store, rec := newTestRegistrar(t, inlineSet(),
		`return ['modules' => ['Foo']];`)

	require.NoError(t, r.Deregister(t.Context(), "Qux"))
	assert.Equal(t, 0, store.Writes())
	assert.Empty(t, rec.Events())
}

func TestDeregisterBlockCleanup(t *testing.T) {
	t.Parallel()

	original := "return [\n" +
		"    'modules' => [\n" +
		"        'Application\\Module',\n" +
		"    ],\n" +
		"];\n"

	r, store, _ := newTestRegistrar(t, blockSet(), original)

	require.NoError(t, r.Register(t.Context(), "Acme\\Blog", registrar.CategoryModule))
	assert.Equal(t, "return [\n"+
		"    'modules' => [\n"+
		"        'Acme\\Blog',\n"+
		"        'Application\\Module',\n"+
		"    ],\n"+
		"];\n", store.Text())

	// Removal leaves a blank line; clean-up collapses it.
	require.NoError(t, r.Deregister(t.Context(), "Acme\\Blog"))
	assert.Equal(t, original, store.Text())
}

type failStore struct {
	err error
}

func (s failStore) Read(ctx context.Context) (string, error) { return "", s.err }

func (s failStore) Write(ctx context.Context, text string) error { return s.err }

func TestStorageErrorSurfaces(t *testing.T) {
	t.Parallel()

	boom := errors.New(errors.ErrCodeStorage, "disk on fire")
	r, err := registrar.New(inlineSet(),
		registrar.WithStore(failStore{err: boom}),
		registrar.WithNotifier(notify.NewRecorder()))
	require.NoError(t, err)

	err = r.Register(t.Context(), "Baz", registrar.CategoryModule)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeStorage, errors.CodeOf(err))

	err = r.Deregister(t.Context(), "Baz")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeStorage, errors.CodeOf(err))

	_, err = r.IsRegistered(t.Context(), "Baz")
	require.Error(t, err)
}
