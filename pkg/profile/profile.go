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
	"slices"

	"github.com/modwire/modwire/pkg/errors"
	"github.com/modwire/modwire/pkg/registrar"
)

// Profile is a named pattern table for one concrete configuration-file kind.
// It is the serializable form of a registrar.PatternSet plus defaults for the
// ordering lists.
type Profile struct {
	// Name identifies the profile in registries and manifests.
	Name string `json:"name" yaml:"name"`

	// Description is a short human-readable summary for listings.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Detect is the detection pattern template (one %s slot).
	Detect string `json:"detect" yaml:"detect"`

	// Insert maps category name to its insertion pattern pair.
	Insert map[string]registrar.PatternPair `json:"insert" yaml:"insert"`

	// Remove is the generic removal pair.
	Remove registrar.PatternPair `json:"remove" yaml:"remove"`

	// Cleanup is the post-removal normalization pair.
	Cleanup registrar.PatternPair `json:"cleanup,omitempty" yaml:"cleanup,omitempty"`

	// Dependencies are default dependency entries for this kind.
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`

	// ApplicationGroup are default application-group entries for this kind.
	ApplicationGroup []string `json:"applicationGroup,omitempty" yaml:"applicationGroup,omitempty"`
}

// PatternSet converts the profile into the engine's pattern table.
func (p Profile) PatternSet() registrar.PatternSet {
	insert := make(map[registrar.Category]registrar.PatternPair, len(p.Insert))
	for name, pair := range p.Insert {
		insert[registrar.Category(name)] = pair
	}
	return registrar.PatternSet{
		Detect:  p.Detect,
		Insert:  insert,
		Remove:  p.Remove,
		Cleanup: p.Cleanup,
	}
}

// Validate checks the profile name, category names, and every pattern.
func (p Profile) Validate() error {
	if p.Name == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "profile has no name")
	}
	for name := range p.Insert {
		if !registrar.Category(name).IsValid() {
			return errors.NewWithContext(errors.ErrCodeInvalidRequest,
				"profile declares unknown category",
				map[string]any{"profile": p.Name, "category": name})
		}
	}
	if err := p.PatternSet().Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest,
			"profile "+p.Name+" has an invalid pattern set", err)
	}
	return nil
}

// Categories returns the category names the profile accepts, in a stable
// order.
func (p Profile) Categories() []string {
	cats := make([]string, 0, len(p.Insert))
	for name := range p.Insert {
		cats = append(cats, name)
	}
	slices.Sort(cats)
	return cats
}
