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
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/modwire/modwire/pkg/errors"
	"github.com/modwire/modwire/pkg/profile"
	"github.com/modwire/modwire/pkg/registrar"
)

// Target names one configuration file and the profile that describes its
// shape.
type Target struct {
	// Name identifies the target within the manifest.
	Name string `json:"name" yaml:"name"`

	// File is the path to the configuration file.
	File string `json:"file" yaml:"file"`

	// Profile is the name of the pattern profile to apply.
	Profile string `json:"profile" yaml:"profile"`

	// Dependencies overrides the profile's default dependency list.
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`

	// ApplicationGroup overrides the profile's default application-group
	// list.
	ApplicationGroup []string `json:"applicationGroup,omitempty" yaml:"applicationGroup,omitempty"`
}

// Entry is one registration or removal to perform.
type Entry struct {
	// Name is the configuration entry name.
	Name string `json:"name" yaml:"name"`

	// Category is the entry's category. Required unless Remove is set.
	Category string `json:"category,omitempty" yaml:"category,omitempty"`

	// Targets restricts the entry to the named targets. Empty means all.
	Targets []string `json:"targets,omitempty" yaml:"targets,omitempty"`

	// Remove deregisters the entry instead of registering it.
	Remove bool `json:"remove,omitempty" yaml:"remove,omitempty"`
}

// Manifest is a declarative batch of registrations across one or more
// configuration files.
type Manifest struct {
	Targets []Target `json:"targets" yaml:"targets"`
	Entries []Entry  `json:"entries" yaml:"entries"`
}

// LoadManifest reads and parses a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeStorage,
			"failed to read manifest", err,
			map[string]any{"path": path})
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
			"failed to parse manifest", err,
			map[string]any{"path": path})
	}
	return &m, nil
}

// Validate checks the manifest against the profile registry: target names
// unique, files and profiles resolvable, categories valid, and entry target
// references known.
func (m *Manifest) Validate(reg *profile.Registry) error {
	if len(m.Targets) == 0 {
		return errors.New(errors.ErrCodeInvalidRequest, "manifest has no targets")
	}
	if len(m.Entries) == 0 {
		return errors.New(errors.ErrCodeInvalidRequest, "manifest has no entries")
	}

	names := make(map[string]bool, len(m.Targets))
	for _, t := range m.Targets {
		if t.Name == "" {
			return errors.New(errors.ErrCodeInvalidRequest, "target has no name")
		}
		if names[t.Name] {
			return errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("duplicate target %q", t.Name))
		}
		names[t.Name] = true

		if t.File == "" {
			return errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("target %q has no file", t.Name))
		}
		if _, ok := reg.Get(t.Profile); !ok {
			return errors.NewWithContext(errors.ErrCodeNotFound,
				fmt.Sprintf("target %q references unknown profile %q", t.Name, t.Profile),
				map[string]any{"known": reg.Names()})
		}
	}

	for _, e := range m.Entries {
		if e.Name == "" {
			return errors.New(errors.ErrCodeInvalidRequest, "entry has no name")
		}
		if !e.Remove && !registrar.Category(e.Category).IsValid() {
			return errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("entry %q has invalid category %q", e.Name, e.Category))
		}
		for _, target := range e.Targets {
			if !names[target] {
				return errors.New(errors.ErrCodeInvalidRequest,
					fmt.Sprintf("entry %q references unknown target %q", e.Name, target))
			}
		}
	}

	return nil
}

// entriesFor returns the entries that apply to the named target, in manifest
// order.
func (m *Manifest) entriesFor(target string) []Entry {
	out := make([]Entry, 0, len(m.Entries))
	for _, e := range m.Entries {
		if len(e.Targets) == 0 {
			out = append(out, e)
			continue
		}
		for _, name := range e.Targets {
			if name == target {
				out = append(out, e)
				break
			}
		}
	}
	return out
}
