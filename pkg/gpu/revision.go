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

package gpu

import "fmt"

// Revision is a silicon revision decoded from raw identification registers.
// It is a structured version, not a free-form string, so callers can compare
// revisions numerically. Mali reports it as rXpY plus a status field, Adreno
// as major/minor plus a patch level.
type Revision struct {
	Major int `json:"major" yaml:"major"`
	Minor int `json:"minor" yaml:"minor"`

	// Patch carries the vendor's status or patch-level field.
	Patch int `json:"patch,omitempty" yaml:"patch,omitempty"`
}

// String returns the revision in ARM's conventional rXpY form, with a
// non-zero patch appended as a suffix.
func (r Revision) String() string {
	if r.Patch != 0 {
		return fmt.Sprintf("r%dp%d.%d", r.Major, r.Minor, r.Patch)
	}
	return fmt.Sprintf("r%dp%d", r.Major, r.Minor)
}

// Compare returns a negative value if r is older than other, zero if equal,
// and a positive value if newer. Components are compared most significant
// first.
func (r Revision) Compare(other Revision) int {
	if r.Major != other.Major {
		return r.Major - other.Major
	}
	if r.Minor != other.Minor {
		return r.Minor - other.Minor
	}
	return r.Patch - other.Patch
}

// EqualsOrNewer returns true if r is equal to or newer than other.
func (r Revision) EqualsOrNewer(other Revision) bool {
	return r.Compare(other) >= 0
}
