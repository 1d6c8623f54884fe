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
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/modwire/modwire/pkg/errors"
	"github.com/modwire/modwire/pkg/notify"
	"github.com/modwire/modwire/pkg/profile"
	"github.com/modwire/modwire/pkg/registrar"
	"github.com/modwire/modwire/pkg/storage"
)

// Applier runs a manifest against the configuration files it names. Targets
// run in parallel; entries within a target run sequentially in manifest
// order.
type Applier struct {
	registry *profile.Registry
	stores   func(t Target) storage.Store
}

// ApplierOption configures an Applier.
type ApplierOption func(*Applier)

// WithRegistry sets the profile registry. Defaults to the built-in profiles.
func WithRegistry(reg *profile.Registry) ApplierOption {
	return func(a *Applier) {
		a.registry = reg
	}
}

// WithStoreFactory overrides how target stores are created. Used by tests.
func WithStoreFactory(f func(t Target) storage.Store) ApplierOption {
	return func(a *Applier) {
		a.stores = f
	}
}

// NewApplier creates an Applier.
func NewApplier(opts ...ApplierOption) *Applier {
	a := &Applier{
		registry: profile.Builtin(),
		stores: func(t Target) storage.Store {
			return storage.NewFileStore(t.File)
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run validates the manifest and applies it. A failing target does not stop
// the others; per-entry failures are captured in the report and surfaced as
// a single summary error after all targets finish.
func (a *Applier) Run(ctx context.Context, m *Manifest) (*Report, error) {
	if err := m.Validate(a.registry); err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() {
		applyDuration.Observe(time.Since(start).Seconds())
	}()

	var mu sync.Mutex
	report := &Report{Started: start.UTC()}

	g, gctx := errgroup.WithContext(ctx)
	for _, target := range m.Targets {
		g.Go(func() error {
			tr := a.applyTarget(gctx, target, m.entriesFor(target.Name))
			mu.Lock()
			report.Targets = append(report.Targets, tr)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(report.Targets, func(i, j int) bool {
		return report.Targets[i].Target < report.Targets[j].Target
	})
	report.Duration = time.Since(start).String()

	if n := report.Failed(); n > 0 {
		return report, errors.NewWithContext(errors.ErrCodeInternal,
			"manifest applied with failures",
			map[string]any{"failed": n})
	}
	return report, nil
}

// applyTarget applies the target's entries sequentially. Entry failures are
// recorded and do not stop later entries.
func (a *Applier) applyTarget(ctx context.Context, target Target, entries []Entry) TargetReport {
	targetStart := time.Now()
	defer func() {
		applyTargetDuration.WithLabelValues(target.Name).Observe(time.Since(targetStart).Seconds())
	}()

	tr := TargetReport{
		Target:  target.Name,
		File:    target.File,
		Profile: target.Profile,
	}

	rec := notify.NewRecorder()
	r, err := a.registrarFor(target, rec)
	if err != nil {
		tr.Error = err.Error()
		return tr
	}

	for _, entry := range entries {
		result := a.applyEntry(ctx, r, entry)
		tr.Results = append(tr.Results, result)
		if result.Status == StatusError {
			slog.Error("entry failed",
				"target", target.Name,
				"entry", entry.Name,
				"error", result.Error)
		}
	}

	tr.Events = rec.Events()
	return tr
}

// registrarFor builds the engine for one target. Manifest lists override the
// profile's defaults.
func (a *Applier) registrarFor(target Target, n notify.Notifier) (*registrar.Registrar, error) {
	p, ok := a.registry.Get(target.Profile)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound,
			"unknown profile "+target.Profile)
	}

	deps := target.Dependencies
	if deps == nil {
		deps = p.Dependencies
	}
	apps := target.ApplicationGroup
	if apps == nil {
		apps = p.ApplicationGroup
	}

	return registrar.New(p.PatternSet(),
		registrar.WithStore(a.stores(target)),
		registrar.WithNotifier(n),
		registrar.WithDependencies(deps...),
		registrar.WithApplicationGroup(apps...))
}

func (a *Applier) applyEntry(ctx context.Context, r *registrar.Registrar, entry Entry) EntryResult {
	result := EntryResult{
		Entry:    entry.Name,
		Category: entry.Category,
	}

	before, err := r.IsRegistered(ctx, entry.Name)
	if err != nil {
		result.Status = StatusError
		result.Error = err.Error()
		return result
	}

	if entry.Remove {
		result.Category = ""
		if !before {
			result.Status = StatusSkipped
			return result
		}
		if err := r.Deregister(ctx, entry.Name); err != nil {
			result.Status = StatusError
			result.Error = err.Error()
			return result
		}
		result.Status = StatusRemoved
		return result
	}

	if before {
		result.Status = StatusSkipped
		return result
	}
	if err := r.Register(ctx, entry.Name, registrar.Category(entry.Category)); err != nil {
		result.Status = StatusError
		result.Error = err.Error()
		return result
	}

	// A nil error covers both an insertion and a blocked registration;
	// re-detect to tell them apart.
	after, err := r.IsRegistered(ctx, entry.Name)
	if err != nil {
		result.Status = StatusError
		result.Error = err.Error()
		return result
	}
	if after {
		result.Status = StatusRegistered
	} else {
		result.Status = StatusBlocked
	}
	return result
}
