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
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category is the role of an entry in a configuration list. It selects which
// insertion pattern applies and whether ordering rules kick in.
type Category string

// Valid Category constants.
const (
	// CategoryComponent marks entries that must appear after their
	// dependencies in the configuration list.
	CategoryComponent Category = "component"

	// CategoryModule marks entries that must appear before the application
	// module group.
	CategoryModule Category = "module"

	// CategoryDependency names the pattern pair used for dependency-anchored
	// insertion. It is an anchor pattern slot, not a category callers
	// register entries under directly.
	CategoryDependency Category = "dependency"

	// CategoryPreApplication names the pattern pair used for
	// before-application insertion. Like CategoryDependency, it is an anchor
	// pattern slot.
	CategoryPreApplication Category = "pre-application"
)

// String returns the string representation of the Category.
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the Category is one of the recognized categories.
func (c Category) IsValid() bool {
	switch c {
	case CategoryComponent, CategoryModule, CategoryDependency, CategoryPreApplication:
		return true
	default:
		return false
	}
}

// DependencyOrdered reports whether entries of this category must be placed
// after their registered dependencies.
func (c Category) DependencyOrdered() bool {
	return c == CategoryComponent
}

// BeforeApplication reports whether entries of this category must be placed
// before the first registered application-group entry.
func (c Category) BeforeApplication() bool {
	return c == CategoryModule
}

// DisplayName returns a human-readable form of the category for table output.
func (c Category) DisplayName() string {
	return cases.Title(language.English).String(string(c))
}

// SupportedCategories returns the names of all recognized categories.
func SupportedCategories() []string {
	return []string{
		string(CategoryComponent),
		string(CategoryModule),
		string(CategoryDependency),
		string(CategoryPreApplication),
	}
}
