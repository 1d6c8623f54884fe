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

package storage

import "context"

// Store is the contract for a single configuration text resource.
//
// Read returns the entire current content. Write replaces the entire content.
// Implementations must be safe for sequential use by a single caller; callers
// needing concurrent access to the same underlying resource are responsible
// for external mutual exclusion.
type Store interface {
	// Read returns the full configuration text.
	Read(ctx context.Context) (string, error)

	// Write replaces the full configuration text.
	Write(ctx context.Context, text string) error
}
