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

package version

import (
	"testing"
)

func FuzzParseVersion(f *testing.F) {
	for _, seed := range []string{
		"1", "v1.2", "1.2.3", "0.0.0", "", ".", "1..2", "vv1", "-1", "1.2.3.4",
		"  1.2.3  ", "aptos-node-v1.8.3", "1.8.3-rc.1", "1.8.3+build.7", "1.+5",
		"aptos-node-v1.10.0-rc.2", "release-2024.11",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		v, err := ParseVersion(input)
		if err != nil {
			return
		}
		if !v.IsValid() {
			t.Fatalf("ParseVersion(%q) = %+v, which is not valid", input, v)
		}

		again, err := ParseVersion(v.String())
		if err != nil {
			t.Fatalf("re-parsing %q (from %q): %v", v.String(), input, err)
		}
		if again.Compare(v) != 0 || again.Precision != v.Precision {
			t.Fatalf("round trip of %q: %+v != %+v", input, again, v)
		}

		ref := NewVersion(1, 8, 3)
		if v.Compare(ref) != -ref.Compare(v) {
			t.Fatalf("Compare is not antisymmetric for %q", input)
		}
	})
}
