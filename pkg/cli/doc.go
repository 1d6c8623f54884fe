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

// Package cli implements the command-line interface for the modwire tool.
//
// # Overview
//
// The modwire CLI registers and removes named entries in ordered
// configuration lists: module lists, component registrations, and similar
// text-based collections identified by pattern profiles. It is designed for
// developers and deployment tooling that manage installable modules.
//
// # Commands
//
// register - Register an entry:
//
//	modwire register --file config/modules.php --entry 'Acme\Blog'
//
// Inserts the entry into the file's ordered list at the position its
// category requires. Idempotent: registering a present entry changes
// nothing.
//
// deregister - Remove an entry:
//
//	modwire deregister --file config/modules.php --entry 'Acme\Blog'
//
// Removes the entry and normalizes the surrounding separators.
//
// status - Check registration:
//
//	modwire status --file config/modules.php --entry 'Acme\Blog'
//
// apply - Apply a manifest:
//
//	modwire apply --manifest registrations.yaml
//
// Applies every entry in a registration manifest across its targets and
// reports per-entry outcomes.
//
// profiles - List pattern profiles:
//
//	modwire profiles [--profiles extra.yaml]
//
// # Global Flags
//
//	--output, -o   Output file path (default: stdout)
//	--format, -t   Output format: yaml, json, table (default: yaml)
//	--profiles     Extra profile file loaded on top of the builtins
//	--log-level    Logging verbosity (debug, info, warn, error)
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, execution failure)
//
// # Architecture
//
// The CLI uses the urfave/cli/v3 framework and delegates to specialized
// packages:
//   - pkg/registrar - Pattern-driven registration engine
//   - pkg/profile - Pattern profiles for file kinds
//   - pkg/apply - Manifest application across targets
//   - pkg/serializer - Output formatting
//   - pkg/logging - Structured logging
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/modwire/modwire/pkg/cli.version=1.0.0'"
package cli
