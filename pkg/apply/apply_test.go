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

package apply

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modwire/modwire/pkg/profile"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestManifestValidate(t *testing.T) {
	t.Parallel()

	reg := profile.Builtin()
	valid := Manifest{
		Targets: []Target{
			{Name: "web", File: "config.php", Profile: profile.ModulesInline},
		},
		Entries: []Entry{
			{Name: "Acme\\Blog", Category: "module"},
		},
	}

	tests := []struct {
		name    string
		mutate  func(m Manifest) Manifest
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(m Manifest) Manifest { return m },
		},
		{
			name: "no targets",
			mutate: func(m Manifest) Manifest {
				m.Targets = nil
				return m
			},
			wantErr: true,
		},
		{
			name: "no entries",
			mutate: func(m Manifest) Manifest {
				m.Entries = nil
				return m
			},
			wantErr: true,
		},
		{
			name: "duplicate target name",
			mutate: func(m Manifest) Manifest {
				m.Targets = append(m.Targets, m.Targets[0])
				return m
			},
			wantErr: true,
		},
		{
			name: "target without file",
			mutate: func(m Manifest) Manifest {
				m.Targets = []Target{{Name: "web", Profile: profile.ModulesInline}}
				return m
			},
			wantErr: true,
		},
		{
			name: "unknown profile",
			mutate: func(m Manifest) Manifest {
				m.Targets = []Target{{Name: "web", File: "c.php", Profile: "nope"}}
				return m
			},
			wantErr: true,
		},
		{
			name: "invalid category",
			mutate: func(m Manifest) Manifest {
				m.Entries = []Entry{{Name: "X", Category: "plugin"}}
				return m
			},
			wantErr: true,
		},
		{
			name: "removal needs no category",
			mutate: func(m Manifest) Manifest {
				m.Entries = []Entry{{Name: "X", Remove: true}}
				return m
			},
		},
		{
			name: "unknown entry target",
			mutate: func(m Manifest) Manifest {
				m.Entries = []Entry{{Name: "X", Category: "module", Targets: []string{"api"}}}
				return m
			},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m := tc.mutate(valid)
			err := m.Validate(reg)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadManifest(t *testing.T) {
	t.Parallel()

	content := `targets:
  - name: web
    file: config/modules.php
    profile: modules-inline
entries:
  - name: Acme\Blog
    category: module
  - name: Acme\Old
    remove: true
    targets: [web]
`
	path := writeFile(t, t.TempDir(), "manifest.yaml", content)

	m, err := LoadManifest(path)
	require.NoError(t, err)
	require.NoError(t, m.Validate(profile.Builtin()))

	require.Len(t, m.Targets, 1)
	assert.Equal(t, "web", m.Targets[0].Name)
	require.Len(t, m.Entries, 2)
	assert.True(t, m.Entries[1].Remove)

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := LoadManifest(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()
		bad := writeFile(t, t.TempDir(), "bad.yaml", "targets: {not: [a")
		_, err := LoadManifest(bad)
		assert.Error(t, err)
	})
}

func TestEntriesFor(t *testing.T) {
	t.Parallel()

	m := Manifest{
		Entries: []Entry{
			{Name: "everywhere", Category: "module"},
			{Name: "web-only", Category: "module", Targets: []string{"web"}},
			{Name: "api-only", Category: "module", Targets: []string{"api"}},
		},
	}

	names := func(entries []Entry) []string {
		out := make([]string, 0, len(entries))
		for _, e := range entries {
			out = append(out, e.Name)
		}
		return out
	}

	assert.Equal(t, []string{"everywhere", "web-only"}, names(m.entriesFor("web")))
	assert.Equal(t, []string{"everywhere", "api-only"}, names(m.entriesFor("api")))
	assert.Equal(t, []string{"everywhere"}, names(m.entriesFor("other")))
}

func TestApplierRun(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	web := writeFile(t, dir, "web.php",
		`return ['modules' => ['Foo','Bar']];`)
	api := writeFile(t, dir, "api.php",
		`return ['modules' => ['Foo','Acme\Old']];`)

	m := &Manifest{
		Targets: []Target{
			{Name: "web", File: web, Profile: profile.ModulesInline},
			{Name: "api", File: api, Profile: profile.ModulesInline},
		},
		Entries: []Entry{
			{Name: "Baz", Category: "module"},
			{Name: "Acme\\Old", Remove: true, Targets: []string{"api"}},
		},
	}

	report, err := NewApplier().Run(t.Context(), m)
	require.NoError(t, err)
	require.NotNil(t, report)
	require.Len(t, report.Targets, 2)
	assert.Equal(t, 0, report.Failed())

	// Targets are reported in name order regardless of completion order.
	assert.Equal(t, "api", report.Targets[0].Target)
	assert.Equal(t, "web", report.Targets[1].Target)

	apiResults := report.Targets[0].Results
	require.Len(t, apiResults, 2)
	assert.Equal(t, StatusRegistered, apiResults[0].Status)
	assert.Equal(t, StatusRemoved, apiResults[1].Status)

	webResults := report.Targets[1].Results
	require.Len(t, webResults, 1)
	assert.Equal(t, StatusRegistered, webResults[0].Status)

	webText, err := os.ReadFile(web)
	require.NoError(t, err)
	assert.Equal(t, `return ['modules' => ['Foo','Bar','Baz']];`, string(webText))

	apiText, err := os.ReadFile(api)
	require.NoError(t, err)
	assert.Equal(t, `return ['modules' => ['Foo','Baz']];`, string(apiText))
}

func TestApplierRunIdempotent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	web := writeFile(t, dir, "web.php", `return ['modules' => ['Foo']];`)

	m := &Manifest{
		Targets: []Target{
			{Name: "web", File: web, Profile: profile.ModulesInline},
		},
		Entries: []Entry{
			{Name: "Baz", Category: "module"},
			{Name: "Absent", Remove: true},
		},
	}

	applier := NewApplier()
	_, err := applier.Run(t.Context(), m)
	require.NoError(t, err)

	report, err := applier.Run(t.Context(), m)
	require.NoError(t, err)

	results := report.Targets[0].Results
	require.Len(t, results, 2)
	assert.Equal(t, StatusSkipped, results[0].Status)
	assert.Equal(t, StatusSkipped, results[1].Status)
}

func TestApplierRunBlocked(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	web := writeFile(t, dir, "web.php",
		`return ['components' => ['Acme\Core']];`)

	m := &Manifest{
		Targets: []Target{
			{
				Name:         "web",
				File:         web,
				Profile:      profile.ModulesInline,
				Dependencies: []string{"Acme\\Core", "Acme\\Cache"},
			},
		},
		Entries: []Entry{
			{Name: "Acme\\Blog", Category: "component"},
		},
	}

	report, err := NewApplier().Run(t.Context(), m)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Blocked())

	tr := report.Targets[0]
	require.Len(t, tr.Results, 1)
	assert.Equal(t, StatusBlocked, tr.Results[0].Status)

	// The missing dependency shows up in the target's notification events.
	require.Len(t, tr.Events, 1)
	assert.Contains(t, tr.Events[0].Message, "Acme\\Cache")

	// Blocked registrations never touch the file.
	text, err := os.ReadFile(web)
	require.NoError(t, err)
	assert.Equal(t, `return ['components' => ['Acme\Core']];`, string(text))
}

func TestApplierRunFailureSummary(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	web := writeFile(t, dir, "web.php", `return [];`)

	m := &Manifest{
		Targets: []Target{
			{Name: "web", File: web, Profile: profile.ModulesInline},
		},
		Entries: []Entry{
			// No modules list in the text: the insertion pattern cannot
			// match and the entry fails.
			{Name: "Baz", Category: "module"},
		},
	}

	report, err := NewApplier().Run(t.Context(), m)
	require.Error(t, err)
	require.NotNil(t, report)
	assert.Equal(t, 1, report.Failed())
	assert.Equal(t, StatusError, report.Targets[0].Results[0].Status)
}

func TestApplierRunMissingTargetFile(t *testing.T) {
	t.Parallel()

	m := &Manifest{
		Targets: []Target{
			{
				Name:    "web",
				File:    filepath.Join(t.TempDir(), "absent.php"),
				Profile: profile.ModulesInline,
			},
		},
		Entries: []Entry{
			{Name: "Baz", Category: "module"},
		},
	}

	report, err := NewApplier().Run(t.Context(), m)
	require.Error(t, err)
	require.NotNil(t, report)
	assert.Equal(t, StatusError, report.Targets[0].Results[0].Status)
}
