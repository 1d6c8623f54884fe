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

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/modwire/modwire/pkg/apply"
	"github.com/modwire/modwire/pkg/errors"
	"github.com/modwire/modwire/pkg/notify"
	"github.com/modwire/modwire/pkg/profile"
	"github.com/modwire/modwire/pkg/registrar"
	"github.com/modwire/modwire/pkg/storage"
)

// Builder serves registration operations against a fixed set of manifest
// targets. The API never accepts arbitrary file paths: only targets named in
// the manifest at startup can be edited.
type Builder struct {
	registry *profile.Registry
	targets  map[string]*target
}

type target struct {
	spec apply.Target
	eng  *registrar.Registrar
}

// NewBuilder creates a Builder from the manifest's targets. Every target's
// profile is resolved and its engine constructed up front, so a broken
// target fails at startup rather than on the first request.
func NewBuilder(targets []apply.Target, registry *profile.Registry) (*Builder, error) {
	if len(targets) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "no targets configured")
	}
	if registry == nil {
		registry = profile.Builtin()
	}

	b := &Builder{
		registry: registry,
		targets:  make(map[string]*target, len(targets)),
	}

	for _, spec := range targets {
		if spec.Name == "" || spec.File == "" {
			return nil, errors.New(errors.ErrCodeInvalidRequest,
				"target requires a name and a file")
		}
		if _, dup := b.targets[spec.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("duplicate target %q", spec.Name))
		}

		p, ok := registry.Get(spec.Profile)
		if !ok {
			return nil, errors.NewWithContext(errors.ErrCodeNotFound,
				fmt.Sprintf("target %q references unknown profile %q", spec.Name, spec.Profile),
				map[string]any{"known": registry.Names()})
		}

		deps := spec.Dependencies
		if deps == nil {
			deps = p.Dependencies
		}
		apps := spec.ApplicationGroup
		if apps == nil {
			apps = p.ApplicationGroup
		}

		eng, err := registrar.New(p.PatternSet(),
			registrar.WithStore(storage.NewFileStore(spec.File)),
			registrar.WithNotifier(notify.NewSlogNotifier(nil)),
			registrar.WithDependencies(deps...),
			registrar.WithApplicationGroup(apps...))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("failed to build engine for target %q", spec.Name), err)
		}

		b.targets[spec.Name] = &target{spec: spec, eng: eng}
	}

	return b, nil
}

// lookup returns the named target.
func (b *Builder) lookup(name string) (*target, error) {
	t, ok := b.targets[name]
	if !ok {
		return nil, errors.NewWithContext(errors.ErrCodeNotFound,
			fmt.Sprintf("unknown target %q", name),
			map[string]any{"known": b.TargetNames()})
	}
	return t, nil
}

// TargetNames returns the configured target names in sorted order.
func (b *Builder) TargetNames() []string {
	names := make([]string, 0, len(b.targets))
	for name := range b.targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Targets describes all configured targets.
func (b *Builder) Targets() []TargetInfo {
	out := make([]TargetInfo, 0, len(b.targets))
	for _, name := range b.TargetNames() {
		t := b.targets[name]
		cats := t.eng.AllowedTypes()
		names := make([]string, 0, len(cats))
		for _, c := range cats {
			names = append(names, c.String())
		}
		out = append(out, TargetInfo{
			Name:       t.spec.Name,
			File:       t.spec.File,
			Profile:    t.spec.Profile,
			Categories: names,
		})
	}
	return out
}

// Profiles describes all profiles in the registry.
func (b *Builder) Profiles() []ProfileInfo {
	out := make([]ProfileInfo, 0, len(b.registry.Names()))
	for _, p := range b.registry.All() {
		out = append(out, ProfileInfo{
			Name:        p.Name,
			Description: p.Description,
			Categories:  p.Categories(),
		})
	}
	return out
}

// Status reports whether entry is registered on the named target.
func (b *Builder) Status(ctx context.Context, targetName, entry string) (*StatusResponse, error) {
	t, err := b.lookup(targetName)
	if err != nil {
		return nil, err
	}

	registered, err := t.eng.IsRegistered(ctx, entry)
	if err != nil {
		return nil, err
	}
	return &StatusResponse{
		Target:     targetName,
		Entry:      entry,
		Registered: registered,
	}, nil
}

// Register inserts entry on the named target and reports the outcome.
func (b *Builder) Register(ctx context.Context, targetName, entry, category string) (*OperationResponse, error) {
	t, err := b.lookup(targetName)
	if err != nil {
		return nil, err
	}

	cat := registrar.Category(category)
	if !cat.IsValid() {
		return nil, errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid category %q", category))
	}

	before, err := t.eng.IsRegistered(ctx, entry)
	if err != nil {
		return nil, err
	}
	if before {
		return b.response(targetName, entry, category, string(apply.StatusSkipped)), nil
	}

	if err := t.eng.Register(ctx, entry, cat); err != nil {
		return nil, err
	}

	// Distinguish an insertion from an ordering block.
	after, err := t.eng.IsRegistered(ctx, entry)
	if err != nil {
		return nil, err
	}
	status := apply.StatusRegistered
	if !after {
		status = apply.StatusBlocked
	}
	return b.response(targetName, entry, category, string(status)), nil
}

// Deregister removes entry from the named target and reports the outcome.
func (b *Builder) Deregister(ctx context.Context, targetName, entry string) (*OperationResponse, error) {
	t, err := b.lookup(targetName)
	if err != nil {
		return nil, err
	}

	registered, err := t.eng.IsRegistered(ctx, entry)
	if err != nil {
		return nil, err
	}
	if !registered {
		return b.response(targetName, entry, "", string(apply.StatusSkipped)), nil
	}

	if err := t.eng.Deregister(ctx, entry); err != nil {
		return nil, err
	}
	return b.response(targetName, entry, "", string(apply.StatusRemoved)), nil
}

func (b *Builder) response(target, entry, category, status string) *OperationResponse {
	return &OperationResponse{
		Target:    target,
		Entry:     entry,
		Category:  category,
		Status:    status,
		Timestamp: time.Now().UTC(),
	}
}
