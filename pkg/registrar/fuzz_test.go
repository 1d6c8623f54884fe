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
	"strings"
	"testing"
)

// FuzzDetection checks that entry names are always injected into patterns as
// literals: whatever the entry contains, the compiled detection pattern must
// compile and must match the entry quoted in a configuration list.
func FuzzDetection(f *testing.F) {
	f.Add("Acme\\Blog")
	f.Add("a.b*c")
	f.Add("entry(with)parens")
	f.Add("[^]")
	f.Add("$1")
	f.Add("")

	f.Fuzz(func(t *testing.T, entry string) {
		if strings.Contains(entry, "'") {
			t.Skip("quoted-list entries cannot contain quotes")
		}

		re, err := compilePattern(`'%s'`, entry)
		if err != nil {
			t.Fatalf("detection pattern failed to compile for %q: %v", entry, err)
		}

		text := "return ['" + entry + "'];"
		if !re.MatchString(text) {
			t.Errorf("detection missed entry %q in %q", entry, text)
		}
	})
}

// FuzzReplacementEscaping checks that entry names survive template expansion
// byte for byte, including regexp replacement metacharacters.
func FuzzReplacementEscaping(f *testing.F) {
	f.Add("Acme\\Blog")
	f.Add("Cache$Store")
	f.Add("$1$2")
	f.Add("${name}")

	f.Fuzz(func(t *testing.T, entry string) {
		if strings.Contains(entry, "'") {
			t.Skip("quoted-list entries cannot contain quotes")
		}

		re, err := compilePattern(`('Anchor')`, "")
		if err != nil {
			t.Fatal(err)
		}

		got := replaceFirst(re, "['Anchor']", fillTemplate("$1,'%s'", entry))
		want := "['Anchor','" + entry + "']"
		if got != want {
			t.Errorf("replacement mangled entry %q: got %q, want %q", entry, got, want)
		}
	})
}
