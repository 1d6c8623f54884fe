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
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/modwire/modwire/pkg/apply"
	"github.com/modwire/modwire/pkg/errors"
	"github.com/modwire/modwire/pkg/logging"
	"github.com/modwire/modwire/pkg/profile"
	"github.com/modwire/modwire/pkg/registration"
	"github.com/modwire/modwire/pkg/server"
)

const (
	name           = "modwired"
	versionDefault = "dev"

	// manifestEnvVar names the manifest file describing the targets the
	// daemon serves. Required.
	manifestEnvVar = "MODWIRE_MANIFEST"

	// profilesEnvVar names an optional profile file loaded on top of the
	// builtin profiles.
	profilesEnvVar = "MODWIRE_PROFILES"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/modwire/modwire/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the registration API server and blocks until shutdown.
// It configures logging, loads the target manifest and profiles, sets up
// routes, and handles graceful shutdown. Returns an error if the server
// fails to start or encounters a fatal error.
func Serve() error {
	ctx := context.Background()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	b, err := newBuilder()
	if err != nil {
		slog.Error("failed to configure registration builder", "error", err)
		return err
	}

	r := map[string]http.HandlerFunc{
		"/v1/registrations": b.HandleRegistrations,
		"/v1/targets":       b.HandleTargets,
		"/v1/profiles":      b.HandleProfiles,
	}

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(r),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

// newBuilder assembles the registration builder from the environment:
// the manifest pointed at by MODWIRE_MANIFEST, plus any extra profiles
// from MODWIRE_PROFILES.
func newBuilder() (*registration.Builder, error) {
	manifestPath := os.Getenv(manifestEnvVar)
	if manifestPath == "" {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"target manifest is required",
			map[string]interface{}{"env": manifestEnvVar})
	}

	registry := profile.Builtin()
	if path := os.Getenv(profilesEnvVar); path != "" {
		if err := registry.LoadFile(path); err != nil {
			return nil, err
		}
	}

	m, err := apply.LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(registry); err != nil {
		return nil, err
	}

	return registration.NewBuilder(m.Targets, registry)
}
