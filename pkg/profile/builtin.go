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

import "github.com/modwire/modwire/pkg/registrar"

// Built-in profile names.
const (
	// ApplicationConfig targets block-style quoted-entry lists, one entry per
	// indented line:
	//
	//	return [
	//	    'components' => [
	//	        'Acme\Core',
	//	    ],
	//	    'modules' => [
	//	        'Acme\Blog',
	//	        'Application\Module',
	//	    ],
	//	];
	ApplicationConfig = "application-config"

	// ModulesInline targets single-line quoted-entry lists:
	//
	//	return ['modules' => ['Foo','Bar']];
	ModulesInline = "modules-inline"
)

// applicationConfig covers all four categories. New component and module
// entries land at the top of their section; the dependency and
// pre-application pairs anchor on an existing entry's line and clone its
// indentation.
func applicationConfig() Profile {
	return Profile{
		Name:        ApplicationConfig,
		Description: "Block-style configuration with one quoted entry per line",
		Detect:      `'%s'`,
		Insert: map[string]registrar.PatternPair{
			string(registrar.CategoryComponent): {
				Match:    `('components'\s*=>\s*\[)`,
				Template: "$1\n        '%s',",
			},
			string(registrar.CategoryModule): {
				Match:    `('modules'\s*=>\s*\[)`,
				Template: "$1\n        '%s',",
			},
			string(registrar.CategoryDependency): {
				Match:    `(?m)^([ \t]*)('%s',?)[ \t]*$`,
				Template: "$1$2\n$1'%s',",
			},
			string(registrar.CategoryPreApplication): {
				Match:    `(?m)^([ \t]*)('%s',?)[ \t]*$`,
				Template: "$1'%s',\n$1$2",
			},
		},
		Remove: registrar.PatternPair{
			Match:    `(?m)^[ \t]*'%s',?[ \t]*$`,
			Template: "",
		},
		Cleanup: registrar.PatternPair{
			Match:    `([,\[{(])(\r?\n){2}`,
			Template: "$1$2",
		},
	}
}

// modulesInline covers the compact single-line form. Generic insertion
// appends at the end of the list; the anchored pairs insert adjacent to the
// anchor occurrence.
func modulesInline() Profile {
	return Profile{
		Name:        ModulesInline,
		Description: "Single-line configuration list with quoted entries",
		Detect:      `'%s'`,
		Insert: map[string]registrar.PatternPair{
			string(registrar.CategoryComponent): {
				Match:    `('components'\s*=>\s*\[[^\]]*)\]`,
				Template: "$1,'%s']",
			},
			string(registrar.CategoryModule): {
				Match:    `('modules'\s*=>\s*\[[^\]]*)\]`,
				Template: "$1,'%s']",
			},
			string(registrar.CategoryDependency): {
				Match:    `('%s')`,
				Template: "$1,'%s'",
			},
			string(registrar.CategoryPreApplication): {
				Match:    `('%s')`,
				Template: "'%s',$1",
			},
		},
		Remove: registrar.PatternPair{
			Match:    `'%s',?`,
			Template: "",
		},
		Cleanup: registrar.PatternPair{
			Match:    `,\s*\]`,
			Template: "]",
		},
	}
}

// Builtin returns a registry preloaded with the built-in profiles.
func Builtin() *Registry {
	r := NewRegistry()
	// Built-ins are validated by tests; registration cannot fail here.
	_ = r.Register(applicationConfig())
	_ = r.Register(modulesInline())
	return r
}
