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

package apply

import (
	"time"

	"github.com/modwire/modwire/pkg/notify"
)

// Status of one entry within a target.
type Status string

const (
	// StatusRegistered means the entry was inserted.
	StatusRegistered Status = "registered"
	// StatusRemoved means the entry was deregistered.
	StatusRemoved Status = "removed"
	// StatusSkipped means the text already reflected the desired state.
	StatusSkipped Status = "skipped"
	// StatusBlocked means a missing dependency prevented the insertion.
	StatusBlocked Status = "blocked"
	// StatusError means the operation failed.
	StatusError Status = "error"
)

// EntryResult is the outcome of one entry on one target.
type EntryResult struct {
	Entry    string `json:"entry" yaml:"entry"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	Status   Status `json:"status" yaml:"status"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

// TargetReport is the outcome of one target.
type TargetReport struct {
	Target  string `json:"target" yaml:"target"`
	File    string `json:"file" yaml:"file"`
	Profile string `json:"profile" yaml:"profile"`

	// Error is set when the target could not be prepared at all.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	Results []EntryResult `json:"results,omitempty" yaml:"results,omitempty"`

	// Events are the notifications emitted while applying this target.
	Events []notify.Event `json:"events,omitempty" yaml:"events,omitempty"`
}

// failed counts the target's failing results, counting a preparation error
// as one.
func (tr TargetReport) failed() int {
	n := 0
	if tr.Error != "" {
		n++
	}
	for _, r := range tr.Results {
		if r.Status == StatusError {
			n++
		}
	}
	return n
}

// Report is the outcome of one manifest run, ordered by target name.
type Report struct {
	Started  time.Time      `json:"started" yaml:"started"`
	Duration string         `json:"duration" yaml:"duration"`
	Targets  []TargetReport `json:"targets" yaml:"targets"`
}

// Failed returns the total number of failures across all targets.
func (r *Report) Failed() int {
	n := 0
	for _, tr := range r.Targets {
		n += tr.failed()
	}
	return n
}

// Blocked returns the total number of blocked registrations.
func (r *Report) Blocked() int {
	n := 0
	for _, tr := range r.Targets {
		for _, res := range tr.Results {
			if res.Status == StatusBlocked {
				n++
			}
		}
	}
	return n
}
