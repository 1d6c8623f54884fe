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

package registrar

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/modwire/modwire/pkg/errors"
	"github.com/modwire/modwire/pkg/notify"
	"github.com/modwire/modwire/pkg/storage"
)

// Option configures a Registrar.
type Option func(*Registrar)

// WithStore sets the configuration text store. Required.
func WithStore(s storage.Store) Option {
	return func(r *Registrar) {
		r.store = s
	}
}

// WithNotifier sets the notification channel. Defaults to a slog-backed
// notifier on the default logger.
func WithNotifier(n notify.Notifier) Option {
	return func(r *Registrar) {
		r.notifier = n
	}
}

// WithDependencies sets the known dependency entries. When non-empty,
// component registrations are anchored after the last registered dependency,
// and a missing dependency blocks registration.
func WithDependencies(deps ...string) Option {
	return func(r *Registrar) {
		r.dependencies = slices.Clone(deps)
	}
}

// WithApplicationGroup sets the known application-group entries. When
// non-empty, module registrations are anchored before the first registered
// application entry.
func WithApplicationGroup(entries ...string) Option {
	return func(r *Registrar) {
		r.applicationGroup = slices.Clone(entries)
	}
}

// Registrar edits one configuration list by pattern-driven text
// transformation. It never parses the configuration language; the only
// structure it understands is what the pattern set imposes.
//
// Behavior is fully determined at construction: the pattern table, the
// dependency list, and the application-group list are immutable afterwards.
// Operations are sequential; the engine holds no cross-operation state
// beyond those lists.
type Registrar struct {
	patterns         PatternSet
	store            storage.Store
	notifier         notify.Notifier
	dependencies     []string
	applicationGroup []string
}

// New creates a Registrar for the given pattern set.
// The pattern set is compile-checked up front so operations cannot fail on a
// malformed pattern later.
func New(patterns PatternSet, opts ...Option) (*Registrar, error) {
	if err := patterns.Validate(); err != nil {
		return nil, err
	}

	r := &Registrar{
		patterns: patterns,
		notifier: notify.NewSlogNotifier(nil),
	}

	// Apply options
	for _, opt := range opts {
		opt(r)
	}

	if r.store == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "registrar requires a store")
	}
	if len(r.dependencies) > 0 {
		if _, ok := r.patterns.Insert[CategoryDependency]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidRequest,
				"dependencies configured but pattern set has no dependency pair")
		}
	}
	if len(r.applicationGroup) > 0 {
		if _, ok := r.patterns.Insert[CategoryPreApplication]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidRequest,
				"application group configured but pattern set has no pre-application pair")
		}
	}

	return r, nil
}

// RegistersType reports whether this registrar accepts entries of the given
// category.
func (r *Registrar) RegistersType(c Category) bool {
	_, ok := r.patterns.Insert[c]
	return ok
}

// AllowedTypes returns the categories this registrar accepts, in a stable
// order.
func (r *Registrar) AllowedTypes() []Category {
	out := make([]Category, 0, len(r.patterns.Insert))
	for c := range r.patterns.Insert {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// IsRegistered reports whether the named entry is present in the current
// configuration text.
func (r *Registrar) IsRegistered(ctx context.Context, entry string) (bool, error) {
	text, err := r.store.Read(ctx)
	if err != nil {
		return false, err
	}
	return r.isRegisteredIn(entry, text)
}

func (r *Registrar) isRegisteredIn(entry, text string) (bool, error) {
	re, err := compilePattern(r.patterns.Detect, entry)
	if err != nil {
		return false, err
	}
	return re.MatchString(text), nil
}

// Register inserts the named entry under the given category, honoring
// ordering rules. It is idempotent: an already-registered entry is reported
// via the notifier and left untouched.
func (r *Registrar) Register(ctx context.Context, entry string, category Category) error {
	if !r.RegistersType(category) {
		registrationsTotal.WithLabelValues(string(category), resultError).Inc()
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("category %q is not registered by this configuration", category),
			map[string]any{"entry": entry})
	}

	text, err := r.store.Read(ctx)
	if err != nil {
		registrationsTotal.WithLabelValues(string(category), resultError).Inc()
		return err
	}

	registered, err := r.isRegisteredIn(entry, text)
	if err != nil {
		registrationsTotal.WithLabelValues(string(category), resultError).Inc()
		return err
	}
	if registered {
		slog.Debug("entry already registered", "entry", entry, "category", category)
		r.notifier.Info(entry, fmt.Sprintf("%s is already registered, skipping", entry))
		registrationsTotal.WithLabelValues(string(category), resultSkipped).Inc()
		return nil
	}

	next, result, err := r.insert(entry, category, text)
	if err != nil {
		registrationsTotal.WithLabelValues(string(category), resultError).Inc()
		return err
	}
	if result == resultBlocked {
		// A missing dependency was reported; deliberately no mutation.
		registrationsTotal.WithLabelValues(string(category), resultBlocked).Inc()
		return nil
	}

	if err := r.store.Write(ctx, next); err != nil {
		registrationsTotal.WithLabelValues(string(category), resultError).Inc()
		return err
	}

	slog.Debug("entry registered", "entry", entry, "category", category)
	registrationsTotal.WithLabelValues(string(category), resultRegistered).Inc()
	return nil
}

// insert computes the new configuration text for entry. It applies ordering
// rules first and falls back to the category's generic insertion pattern.
func (r *Registrar) insert(entry string, category Category, text string) (string, string, error) {
	if category.DependencyOrdered() && len(r.dependencies) > 0 {
		next, inserted, err := r.insertAfterDependencies(entry, text)
		if err != nil {
			return "", resultError, err
		}
		if !inserted {
			return "", resultBlocked, nil
		}
		return next, resultRegistered, nil
	}

	if category.BeforeApplication() && len(r.applicationGroup) > 0 {
		next, anchored, err := r.insertBeforeApplication(entry, text)
		if err != nil {
			return "", resultError, err
		}
		if anchored {
			return next, resultRegistered, nil
		}
		// No application entry registered yet; fall through to the generic
		// pattern.
	}

	next, err := r.insertGeneric(entry, category, text)
	if err != nil {
		return "", resultError, err
	}
	return next, resultRegistered, nil
}

// insertGeneric applies the category's own pattern pair at its structural
// insertion point.
func (r *Registrar) insertGeneric(entry string, category Category, text string) (string, error) {
	pair := r.patterns.Insert[category]

	re, err := compilePattern(pair.Match, entry)
	if err != nil {
		return "", err
	}

	next := replaceFirst(re, text, fillTemplate(pair.Template, entry))
	if next == text {
		return "", errors.NewWithContext(errors.ErrCodePatternMismatch,
			fmt.Sprintf("insertion pattern for category %q matched nothing", category),
			map[string]any{"entry": entry})
	}
	return next, nil
}

// Deregister removes the named entry and collapses the blank-line artifacts
// the removal leaves behind. It is a no-op if the entry is not registered.
func (r *Registrar) Deregister(ctx context.Context, entry string) error {
	text, err := r.store.Read(ctx)
	if err != nil {
		deregistrationsTotal.WithLabelValues(resultError).Inc()
		return err
	}

	registered, err := r.isRegisteredIn(entry, text)
	if err != nil {
		deregistrationsTotal.WithLabelValues(resultError).Inc()
		return err
	}
	if !registered {
		slog.Debug("entry not registered", "entry", entry)
		deregistrationsTotal.WithLabelValues(resultSkipped).Inc()
		return nil
	}

	re, err := compilePattern(r.patterns.Remove.Match, entry)
	if err != nil {
		deregistrationsTotal.WithLabelValues(resultError).Inc()
		return err
	}
	next := re.ReplaceAllString(text, r.patterns.Remove.Template)
	if next == text {
		deregistrationsTotal.WithLabelValues(resultError).Inc()
		return errors.NewWithContext(errors.ErrCodePatternMismatch,
			"removal pattern matched nothing",
			map[string]any{"entry": entry})
	}

	// Clean-up runs unconditionally; matching nothing is legitimate.
	if r.patterns.Cleanup.Match != "" {
		cleanupRe, err := compilePattern(r.patterns.Cleanup.Match, entry)
		if err != nil {
			deregistrationsTotal.WithLabelValues(resultError).Inc()
			return err
		}
		next = cleanupRe.ReplaceAllString(next, r.patterns.Cleanup.Template)
	}

	if err := r.store.Write(ctx, next); err != nil {
		deregistrationsTotal.WithLabelValues(resultError).Inc()
		return err
	}

	r.notifier.Info(entry, fmt.Sprintf("removed %s from configuration", entry))
	deregistrationsTotal.WithLabelValues(resultRemoved).Inc()
	return nil
}
