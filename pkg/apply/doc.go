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

// Package apply runs declarative registration manifests.
//
// A manifest names targets (configuration files plus the profile describing
// their shape) and entries (registrations or removals, optionally restricted
// to specific targets). The Applier fans out over targets in parallel and
// applies each target's entries sequentially in manifest order, producing a
// per-entry report rather than stopping at the first failure.
package apply
