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

// Package server provides the HTTP server for the registration API.
//
// The server wraps API handlers with a standard middleware chain: Prometheus
// metrics, API version negotiation, request-ID propagation, panic recovery,
// token-bucket rate limiting, and request logging. System endpoints
// (/health, /ready, /metrics) bypass rate limiting.
//
// Usage:
//
//	s := server.New(
//		server.WithName("modwired"),
//		server.WithVersion(version),
//		server.WithHandler(map[string]http.HandlerFunc{
//			"/v1/registrations": h.HandleRegistrations,
//		}),
//	)
//	if err := s.Run(ctx); err != nil {
//		slog.Error("server exited", "error", err)
//	}
//
// Run blocks until SIGINT/SIGTERM and shuts down gracefully within the
// configured shutdown timeout. Configuration comes from defaults, the PORT
// and SHUTDOWN_TIMEOUT_SECONDS environment variables, and options, in that
// order.
package server
