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
	"regexp"
	"strings"

	"github.com/modwire/modwire/pkg/errors"
)

// PatternPair is a match pattern plus a replacement template.
//
// Match is a regular expression, optionally a template with one %s slot that
// receives a regex-escaped entry or anchor name. Template is the replacement
// text; it may reference capture groups from Match ($1, $2, ...) and may
// contain one %s slot that receives the replacement-escaped new entry name.
//
// Slot conventions per use:
//   - detection: Match has one slot (the entry), no Template
//   - generic insertion: Match has no slot, Template has one (the entry)
//   - anchored insertion (dependency, pre-application): Match has one slot
//     (the anchor), Template has one (the entry)
//   - removal: Match has one slot (the entry), Template is usually empty
type PatternPair struct {
	Match    string `json:"match" yaml:"match"`
	Template string `json:"template" yaml:"template"`
}

// PatternSet is the full pattern table for one configuration-list kind.
type PatternSet struct {
	// Detect is the detection pattern template: a regex with one %s slot for
	// the regex-escaped entry name.
	Detect string

	// Insert holds one insertion pair per category the engine accepts.
	Insert map[Category]PatternPair

	// Remove is the generic removal pair.
	Remove PatternPair

	// Cleanup collapses blank-line artifacts after removal. It is a fixed
	// pattern pair with no slots and is applied unconditionally.
	Cleanup PatternPair
}

// probeEntry is used to compile-check pattern templates at construction time.
const probeEntry = "ProbeEntry"

// Validate compile-checks every pattern in the set. A set that passes
// Validate cannot produce a regex compile error at operation time, because
// entry and anchor names are injected regex-escaped.
func (s PatternSet) Validate() error {
	if strings.Count(s.Detect, "%s") != 1 {
		return errors.New(errors.ErrCodeInvalidRequest,
			"detection pattern must contain exactly one %s slot")
	}
	if _, err := compilePattern(s.Detect, probeEntry); err != nil {
		return err
	}

	if len(s.Insert) == 0 {
		return errors.New(errors.ErrCodeInvalidRequest,
			"pattern set declares no insertion categories")
	}
	for cat, pair := range s.Insert {
		if !cat.IsValid() {
			return errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("unknown category %q in pattern set", cat))
		}
		if _, err := compilePattern(pair.Match, probeEntry); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("invalid insertion pattern for category %q", cat), err)
		}
	}

	if s.Remove.Match != "" {
		if _, err := compilePattern(s.Remove.Match, probeEntry); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRequest,
				"invalid removal pattern", err)
		}
	}
	if s.Cleanup.Match != "" {
		if _, err := regexp.Compile(s.Cleanup.Match); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRequest,
				"invalid clean-up pattern", err)
		}
	}

	return nil
}

// compilePattern fills the template's %s slot (when present) with the
// regex-escaped name and compiles the result.
func compilePattern(template, name string) (*regexp.Regexp, error) {
	expr := template
	if strings.Contains(template, "%s") {
		expr = fmt.Sprintf(template, regexp.QuoteMeta(name))
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInternal,
			"failed to compile pattern", err,
			map[string]any{"pattern": template})
	}
	return re, nil
}

// fillTemplate fills the replacement template's %s slot (when present) with
// the replacement-escaped entry name.
func fillTemplate(template, entry string) string {
	if !strings.Contains(template, "%s") {
		return template
	}
	return fmt.Sprintf(template, escapeReplacement(entry))
}

// escapeReplacement escapes characters that are special in regexp replacement
// templates so entry names are inserted literally.
func escapeReplacement(entry string) string {
	return strings.ReplaceAll(entry, "$", "$$")
}

// replaceFirst applies the replacement template to the first match of re in
// text. Returns text unchanged when re does not match.
func replaceFirst(re *regexp.Regexp, text, replacement string) string {
	loc := re.FindStringSubmatchIndex(text)
	if loc == nil {
		return text
	}

	var out []byte
	out = append(out, text[:loc[0]]...)
	out = re.ExpandString(out, replacement, text, loc)
	out = append(out, text[loc[1]:]...)
	return string(out)
}
