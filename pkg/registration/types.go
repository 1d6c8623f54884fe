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

import "time"

// RegisterRequest is the JSON body of POST /v1/registrations.
type RegisterRequest struct {
	// Target is the manifest target name.
	Target string `json:"target"`

	// Entry is the configuration entry name.
	Entry string `json:"entry"`

	// Category is the entry category.
	Category string `json:"category"`
}

// OperationResponse reports the outcome of a registration or removal.
type OperationResponse struct {
	Target    string    `json:"target"`
	Entry     string    `json:"entry"`
	Category  string    `json:"category,omitempty"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// StatusResponse reports whether an entry is registered on a target.
type StatusResponse struct {
	Target     string `json:"target"`
	Entry      string `json:"entry"`
	Registered bool   `json:"registered"`
}

// TargetInfo describes one configured target.
type TargetInfo struct {
	Name       string   `json:"name"`
	File       string   `json:"file"`
	Profile    string   `json:"profile"`
	Categories []string `json:"categories"`
}

// ProfileInfo describes one available profile.
type ProfileInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Categories  []string `json:"categories"`
}
