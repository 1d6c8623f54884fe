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

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modwire/modwire/pkg/errors"
)

// Serve() itself blocks until shutdown, so these tests exercise the
// builder assembly and the route handlers it produces rather than the
// server lifecycle.

func TestConstants(t *testing.T) {
	assert.Equal(t, "modwired", name)
	assert.Equal(t, "dev", versionDefault)
	assert.NotEmpty(t, version)
	assert.NotEmpty(t, commit)
	assert.NotEmpty(t, date)
}

func TestNewBuilderRequiresManifest(t *testing.T) {
	t.Setenv(manifestEnvVar, "")

	_, err := newBuilder()
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidRequest, errors.CodeOf(err))
}

func TestNewBuilderMissingManifestFile(t *testing.T) {
	t.Setenv(manifestEnvVar, filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := newBuilder()
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeStorage, errors.CodeOf(err))
}

func TestNewBuilderFromEnvironment(t *testing.T) {
	dir := t.TempDir()

	modules := filepath.Join(dir, "modules.php")
	require.NoError(t, os.WriteFile(modules,
		[]byte(`return ['modules' => ['Acme\Core']];`), 0600))

	manifest := filepath.Join(dir, "manifest.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte(`
targets:
  - name: web
    file: `+modules+`
    profile: modules-inline
`), 0600))

	t.Setenv(manifestEnvVar, manifest)
	t.Setenv(profilesEnvVar, "")

	b, err := newBuilder()
	require.NoError(t, err)
	assert.Equal(t, []string{"web"}, b.TargetNames())

	// The handlers wired into the route map serve the manifest's target.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/v1/registrations?target=web&entry=Acme%5CCore", nil)
	b.HandleRegistrations(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var status struct {
		Registered bool `json:"registered"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status.Registered)
}

func TestNewBuilderWithExtraProfiles(t *testing.T) {
	dir := t.TempDir()

	modules := filepath.Join(dir, "plugins.ini")
	require.NoError(t, os.WriteFile(modules, []byte("[plugins]\n"), 0600))

	profiles := filepath.Join(dir, "profiles.yaml")
	require.NoError(t, os.WriteFile(profiles, []byte(`
profiles:
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
`), 0600))

	manifest := filepath.Join(dir, "manifest.yaml")
	require.NoError(t, os.WriteFile(manifest, []byte(`
targets:
  - name: ini
    file: `+modules+`
    profile: ini-plugins
`), 0600))

	t.Setenv(manifestEnvVar, manifest)
	t.Setenv(profilesEnvVar, profiles)

	b, err := newBuilder()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	b.HandleProfiles(rec, httptest.NewRequest(http.MethodGet, "/v1/profiles", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ini-plugins")
}
