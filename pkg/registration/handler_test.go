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

package registration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleRegistrationsLifecycle(t *testing.T) {
	t.Parallel()

	b, _ := newTestBuilder(t, `return ['modules' => ['Foo']];`)

	// Register
	body := `{"target":"web","entry":"Baz","category":"module"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/registrations", strings.NewReader(body))
	b.HandleRegistrations(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var op OperationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &op))
	assert.Equal(t, "registered", op.Status)
	assert.Equal(t, "Baz", op.Entry)

	// Status
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet,
		"/v1/registrations?target=web&entry="+url.QueryEscape("Baz"), nil)
	b.HandleRegistrations(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var status StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status.Registered)

	// Deregister
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete,
		"/v1/registrations?target=web&entry="+url.QueryEscape("Baz"), nil)
	b.HandleRegistrations(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &op))
	assert.Equal(t, "removed", op.Status)
}

func TestHandleRegistrationsErrors(t *testing.T) {
	t.Parallel()

	b, _ := newTestBuilder(t, `return ['modules' => ['Foo']];`)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{
			name:       "missing query parameters",
			method:     http.MethodGet,
			path:       "/v1/registrations",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown target",
			method:     http.MethodGet,
			path:       "/v1/registrations?target=api&entry=Baz",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "malformed body",
			method:     http.MethodPost,
			path:       "/v1/registrations",
			body:       `{"target":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown body field",
			method:     http.MethodPost,
			path:       "/v1/registrations",
			body:       `{"target":"web","entry":"Baz","category":"module","file":"/etc/passwd"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing category",
			method:     http.MethodPost,
			path:       "/v1/registrations",
			body:       `{"target":"web","entry":"Baz"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "method not allowed",
			method:     http.MethodPut,
			path:       "/v1/registrations",
			wantStatus: http.StatusMethodNotAllowed,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var req *http.Request
			if tc.body != "" {
				req = httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			} else {
				req = httptest.NewRequest(tc.method, tc.path, nil)
			}
			rec := httptest.NewRecorder()
			b.HandleRegistrations(rec, req)
			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

func TestHandleRegistrationsPatternMismatch(t *testing.T) {
	t.Parallel()

	// No modules list to insert into.
	b, _ := newTestBuilder(t, `return [];`)

	body := `{"target":"web","entry":"Baz","category":"module"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/registrations", strings.NewReader(body))
	b.HandleRegistrations(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "PATTERN_MISMATCH")
}

func TestHandleTargets(t *testing.T) {
	t.Parallel()

	b, _ := newTestBuilder(t, `return ['modules' => []];`)

	rec := httptest.NewRecorder()
	b.HandleTargets(rec, httptest.NewRequest(http.MethodGet, "/v1/targets", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var targets []TargetInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &targets))
	require.Len(t, targets, 1)
	assert.Equal(t, "web", targets[0].Name)

	rec = httptest.NewRecorder()
	b.HandleTargets(rec, httptest.NewRequest(http.MethodPost, "/v1/targets", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleProfiles(t *testing.T) {
	t.Parallel()

	b, _ := newTestBuilder(t, `return ['modules' => []];`)

	rec := httptest.NewRecorder()
	b.HandleProfiles(rec, httptest.NewRequest(http.MethodGet, "/v1/profiles", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var profiles []ProfileInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profiles))
	assert.Len(t, profiles, 2)
}
