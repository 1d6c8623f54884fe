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
	"fmt"

	"github.com/modwire/modwire/pkg/errors"
)

// insertAfterDependencies places entry after the last registered dependency.
//
// Every configured dependency must already be registered; each missing one is
// reported through the notifier and the insertion is treated as handled
// without mutating the text (inserting would violate ordering with an absent
// dependency). The second return value is false in that case.
//
// "Last" is the dependency whose detection match span is longest, not the one
// at the greatest byte offset. This is the matching rule, kept deliberately:
// span length stands in for how specific a registration line is. Ties go to
// the dependency configured first.
func (r *Registrar) insertAfterDependencies(entry, text string) (string, bool, error) {
	var missing []string
	anchor := ""
	anchorSpan := -1

	for _, dep := range r.dependencies {
		re, err := compilePattern(r.patterns.Detect, dep)
		if err != nil {
			return "", false, err
		}
		loc := re.FindStringIndex(text)
		if loc == nil {
			missing = append(missing, dep)
			continue
		}
		if span := loc[1] - loc[0]; span > anchorSpan {
			anchor = dep
			anchorSpan = span
		}
	}

	if len(missing) > 0 {
		for _, dep := range missing {
			r.notifier.Error(entry,
				fmt.Sprintf("dependency %s of %s is not registered", dep, entry))
		}
		return "", false, nil
	}

	pair := r.patterns.Insert[CategoryDependency]
	re, err := compilePattern(pair.Match, anchor)
	if err != nil {
		return "", false, err
	}

	next := replaceFirst(re, text, fillTemplate(pair.Template, entry))
	if next == text {
		return "", false, errors.NewWithContext(errors.ErrCodePatternMismatch,
			"dependency-anchored insertion pattern matched nothing",
			map[string]any{"entry": entry, "anchor": anchor})
	}
	return next, true, nil
}

// insertBeforeApplication places entry before the first registered
// application-group entry.
//
// Among the application entries present in the text, the anchor is the one
// whose detection match span is shortest (the span rule again, mirroring
// insertAfterDependencies). When none are present the second return value is
// false and the caller falls back to generic insertion.
func (r *Registrar) insertBeforeApplication(entry, text string) (string, bool, error) {
	anchor := ""
	anchorSpan := -1

	for _, app := range r.applicationGroup {
		re, err := compilePattern(r.patterns.Detect, app)
		if err != nil {
			return "", false, err
		}
		loc := re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		if span := loc[1] - loc[0]; anchorSpan < 0 || span < anchorSpan {
			anchor = app
			anchorSpan = span
		}
	}

	if anchor == "" {
		return "", false, nil
	}

	pair := r.patterns.Insert[CategoryPreApplication]
	re, err := compilePattern(pair.Match, anchor)
	if err != nil {
		return "", false, err
	}

	next := replaceFirst(re, text, fillTemplate(pair.Template, entry))
	if next == text {
		return "", false, errors.NewWithContext(errors.ErrCodePatternMismatch,
			"before-application insertion pattern matched nothing",
			map[string]any{"entry": entry, "anchor": anchor})
	}
	return next, true, nil
}
