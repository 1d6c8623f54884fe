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
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/modwire/modwire/pkg/defaults"
	"github.com/modwire/modwire/pkg/errors"
	"github.com/modwire/modwire/pkg/serializer"
	"github.com/modwire/modwire/pkg/server"
)

// maxRequestBody bounds POST bodies. Registration requests are tiny.
const maxRequestBody = 64 << 10

// HandleRegistrations serves /v1/registrations.
//
//	GET    ?target=web&entry=Acme\Blog  → registration status
//	POST   {target, entry, category}    → register
//	DELETE ?target=web&entry=Acme\Blog  → deregister
func (b *Builder) HandleRegistrations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.RegistrationHandlerTimeout)
	defer cancel()

	switch r.Method {
	case http.MethodGet:
		b.handleStatus(ctx, w, r)
	case http.MethodPost:
		b.handleRegister(ctx, w, r)
	case http.MethodDelete:
		b.handleDeregister(ctx, w, r)
	default:
		w.Header().Set("Allow", "GET, POST, DELETE")
		server.WriteError(w, r, http.StatusMethodNotAllowed,
			string(errors.ErrCodeMethodNotAllowed),
			"Method not allowed", false, nil)
	}
}

// HandleTargets serves GET /v1/targets.
func (b *Builder) HandleTargets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		server.WriteError(w, r, http.StatusMethodNotAllowed,
			string(errors.ErrCodeMethodNotAllowed),
			"Method not allowed", false, nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, b.Targets())
}

// HandleProfiles serves GET /v1/profiles.
func (b *Builder) HandleProfiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		server.WriteError(w, r, http.StatusMethodNotAllowed,
			string(errors.ErrCodeMethodNotAllowed),
			"Method not allowed", false, nil)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, b.Profiles())
}

func (b *Builder) handleStatus(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	targetName := r.URL.Query().Get("target")
	entry := r.URL.Query().Get("entry")
	if targetName == "" || entry == "" {
		server.WriteError(w, r, http.StatusBadRequest,
			string(errors.ErrCodeInvalidRequest),
			"target and entry query parameters are required", false, nil)
		return
	}

	resp, err := b.Status(ctx, targetName, entry)
	if err != nil {
		b.writeOperationError(w, r, err)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, resp)
}

func (b *Builder) handleRegister(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		slog.Debug("failed to decode register request", "error", err)
		server.WriteError(w, r, http.StatusBadRequest,
			string(errors.ErrCodeInvalidRequest),
			"invalid request body", false, nil)
		return
	}
	if req.Target == "" || req.Entry == "" || req.Category == "" {
		server.WriteError(w, r, http.StatusBadRequest,
			string(errors.ErrCodeInvalidRequest),
			"target, entry, and category are required", false, nil)
		return
	}

	resp, err := b.Register(ctx, req.Target, req.Entry, req.Category)
	if err != nil {
		b.writeOperationError(w, r, err)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, resp)
}

func (b *Builder) handleDeregister(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	targetName := r.URL.Query().Get("target")
	entry := r.URL.Query().Get("entry")
	if targetName == "" || entry == "" {
		server.WriteError(w, r, http.StatusBadRequest,
			string(errors.ErrCodeInvalidRequest),
			"target and entry query parameters are required", false, nil)
		return
	}

	resp, err := b.Deregister(ctx, targetName, entry)
	if err != nil {
		b.writeOperationError(w, r, err)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, resp)
}

// writeOperationError maps engine error codes to HTTP statuses.
func (b *Builder) writeOperationError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.CodeOf(err)

	status := http.StatusInternalServerError
	retryable := true
	switch code {
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
		retryable = false
	case errors.ErrCodeInvalidRequest:
		status = http.StatusBadRequest
		retryable = false
	case errors.ErrCodePatternMismatch:
		status = http.StatusUnprocessableEntity
		retryable = false
	case errors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}

	slog.Error("registration operation failed",
		"requestID", server.RequestIDFromContext(r.Context()),
		"code", code,
		"error", err)

	server.WriteError(w, r, status, string(code), err.Error(), retryable, nil)
}
