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

// Package api provides the HTTP API layer for the modwire registration daemon.
//
// This package acts as a thin wrapper around the reusable pkg/server package,
// configuring it with registration-specific routes and handlers. It exposes
// entry registration against the targets declared in the daemon's manifest.
// Note: the API server does not support manifest apply; use the CLI for bulk
// operations.
//
// # Usage
//
// To start the API server:
//
//	package main
//
//	import (
//	    "log"
//	    "github.com/modwire/modwire/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Endpoints
//
// Application Endpoints (with rate limiting):
//   - GET    /v1/registrations - Check whether an entry is registered
//   - POST   /v1/registrations - Register an entry in a target
//   - DELETE /v1/registrations - Deregister an entry from a target
//   - GET    /v1/targets       - List configured targets
//   - GET    /v1/profiles      - List available pattern profiles
//
// System Endpoints (no rate limiting):
//   - GET /health  - Health check (liveness probe)
//   - GET /ready   - Readiness check
//   - GET /metrics - Prometheus metrics
//
// # Configuration
//
// The server is configured via environment variables:
//   - MODWIRE_MANIFEST: Path to the target manifest file (required)
//   - MODWIRE_PROFILES: Path to an extra profile file (optional)
//   - PORT: HTTP server port (default: 8080)
//   - LOG_LEVEL: Logging level (debug, info, warn, error)
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/modwire/modwire/pkg/api.version=1.0.0'"
package api
