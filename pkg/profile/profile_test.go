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

package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modwire/modwire/pkg/registrar"
	"github.com/modwire/modwire/pkg/storage"
)

func TestBuiltinProfiles(t *testing.T) {
	t.Parallel()

	reg := Builtin()
	assert.Equal(t, []string{ApplicationConfig, ModulesInline}, reg.Names())

	for _, name := range reg.Names() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			p, ok := reg.Get(name)
			require.True(t, ok)
			assert.NoError(t, p.Validate())
			assert.NotEmpty(t, p.Description)
			assert.ElementsMatch(t, registrar.SupportedCategories(), p.Categories())
		})
	}
}

func TestProfileValidate(t *testing.T) {
	t.Parallel()

	valid := applicationConfig()

	tests := []struct {
		name    string
		mutate  func(p Profile) Profile
		wantErr bool
	}{
		{
			name:   "built-in is valid",
			mutate: func(p Profile) Profile { return p },
		},
		{
			name: "empty name",
			mutate: func(p Profile) Profile {
				p.Name = ""
				return p
			},
			wantErr: true,
		},
		{
			name: "unknown category",
			mutate: func(p Profile) Profile {
				p.Insert = map[string]registrar.PatternPair{
					"plugin": {Match: `\[`},
				}
				return p
			},
			wantErr: true,
		},
		{
			name: "invalid detect pattern",
			mutate: func(p Profile) Profile {
				p.Detect = `(%s`
				return p
			},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.mutate(valid).Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegistryRegister(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	require.NoError(t, reg.Register(modulesInline()))

	t.Run("duplicate name", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, reg.Register(modulesInline()))
	})

	t.Run("invalid profile", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, reg.Register(Profile{Name: ""}))
	})

	t.Run("lookup", func(t *testing.T) {
		t.Parallel()
		p, ok := reg.Get(ModulesInline)
		require.True(t, ok)
		assert.Equal(t, ModulesInline, p.Name)

		_, ok = reg.Get("nope")
		assert.False(t, ok)
	})
}

func TestRegistryLoadFile(t *testing.T) {
	t.Parallel()

	content := `profiles:
  - name: ini-plugins
    description: plugin list in an ini section
    detect: '(?m)^plugin\s*=\s*%s$'
    insert:
      module:
        match: '(\[plugins\])'
        template: "$1\nplugin = %s"
    remove:
      match: '(?m)^plugin\s*=\s*%s$'
      template: ""
    dependencies:
      - core
`
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	reg := NewRegistry()
	require.NoError(t, reg.LoadFile(path))

	p, ok := reg.Get("ini-plugins")
	require.True(t, ok)
	assert.Equal(t, []string{"core"}, p.Dependencies)
	assert.Equal(t, []string{"module"}, p.Categories())

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, NewRegistry().LoadFile(filepath.Join(t.TempDir(), "absent.yaml")))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()
		bad := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("profiles: {not: a list"), 0600))
		assert.Error(t, NewRegistry().LoadFile(bad))
	})

	t.Run("empty collection", func(t *testing.T) {
		t.Parallel()
		empty := filepath.Join(t.TempDir(), "empty.yaml")
		require.NoError(t, os.WriteFile(empty, []byte("profiles: []\n"), 0600))
		assert.Error(t, NewRegistry().LoadFile(empty))
	})

	t.Run("name collision with registered profile", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, reg.LoadFile(path))
	})
}

func TestApplicationConfigEndToEnd(t *testing.T) {
	t.Parallel()

	p, ok := Builtin().Get(ApplicationConfig)
	require.True(t, ok)

	original := "return [\n" +
		"    'modules' => [\n" +
		"        'Application\\Module',\n" +
		"    ],\n" +
		"];\n"

	store := storage.NewMemStore(original)
	r, err := registrar.New(p.PatternSet(), registrar.WithStore(store))
	require.NoError(t, err)

	require.NoError(t, r.Register(t.Context(), "Acme\\Blog", registrar.CategoryModule))
	assert.Contains(t, store.Text(), "'Acme\\Blog',")

	require.NoError(t, r.Deregister(t.Context(), "Acme\\Blog"))
	assert.Equal(t, original, store.Text())
}

func TestModulesInlineEndToEnd(t *testing.T) {
	t.Parallel()

	p, ok := Builtin().Get(ModulesInline)
	require.True(t, ok)

	original := `return ['modules' => ['Foo','Bar']];`
	store := storage.NewMemStore(original)
	r, err := registrar.New(p.PatternSet(), registrar.WithStore(store))
	require.NoError(t, err)

	require.NoError(t, r.Register(t.Context(), "Baz", registrar.CategoryModule))
	assert.Equal(t, `return ['modules' => ['Foo','Bar','Baz']];`, store.Text())

	require.NoError(t, r.Deregister(t.Context(), "Baz"))
	assert.Equal(t, original, store.Text())
}
