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

package profile

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/modwire/modwire/pkg/errors"
)

// Registry holds named profiles available for registration operations.
type Registry struct {
	profiles map[string]Profile
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		profiles: make(map[string]Profile),
	}
}

// Register validates and adds a profile. Registering a name twice is an
// error.
func (r *Registry) Register(p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, exists := r.profiles[p.Name]; exists {
		return errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("profile %q already registered", p.Name))
	}
	r.profiles[p.Name] = p
	return nil
}

// Get returns the profile with the given name.
func (r *Registry) Get(name string) (Profile, bool) {
	p, ok := r.profiles[name]
	return p, ok
}

// Names returns all registered profile names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// All returns all registered profiles ordered by name.
func (r *Registry) All() []Profile {
	out := make([]Profile, 0, len(r.profiles))
	for _, name := range r.Names() {
		out = append(out, r.profiles[name])
	}
	return out
}

// profileFile is the on-disk shape of a profile collection.
type profileFile struct {
	Profiles []Profile `yaml:"profiles"`
}

// LoadFile reads a YAML profile collection and registers every profile it
// contains. User-supplied profiles shadow nothing: a name collision with an
// already-registered profile is an error.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapWithContext(errors.ErrCodeStorage,
			"failed to read profile file", err,
			map[string]any{"path": path})
	}

	var f profileFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInvalidRequest,
			"failed to parse profile file", err,
			map[string]any{"path": path})
	}
	if len(f.Profiles) == 0 {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"profile file contains no profiles",
			map[string]any{"path": path})
	}

	for _, p := range f.Profiles {
		if err := r.Register(p); err != nil {
			return err
		}
	}
	return nil
}
