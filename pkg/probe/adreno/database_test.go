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

package adreno

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NVIDIA/gpu-probe/pkg/gpu"
)

func TestLookupChip(t *testing.T) {
	tests := []struct {
		name       string
		chipID     uint32
		want       string
		confidence gpu.Confidence
	}{
		{"measured entry", 0x07060001, "Adreno 740", gpu.ConfidenceExact},
		{"reverse engineered entry", 0x07050000, "Adreno 750", gpu.ConfidenceExact},
		{"heuristic entry", 0x06010200, "Adreno 612/615/616", gpu.ConfidenceApproximate},
		{"base id match", 0x06010007, "Adreno 610", gpu.ConfidenceApproximate},
		{"series fallback", 0x06030002, "Adreno 6xx (unlisted)", gpu.ConfidenceUnknown},
		{"future series", 0x08010000, "Adreno 8xx (unlisted)", gpu.ConfidenceUnknown},
		{"unknown series", 0x02000000, "Unknown Adreno 0x02000000", gpu.ConfidenceUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			specs, confidence := lookupChip(tc.chipID)
			assert.Equal(t, tc.want, specs.Name)
			assert.Equal(t, tc.confidence, confidence)
		})
	}
}

// TestChipTableConsistency guards the database against duplicate chip
// IDs, and against base-ID masking ever shadowing a distinct exact
// entry: every entry must resolve to itself through lookupChip.
func TestChipTableConsistency(t *testing.T) {
	seen := make(map[uint32]string, len(chips))
	for _, e := range chips {
		prev, dup := seen[e.ID]
		assert.Falsef(t, dup,
			"chips %q and %q share id 0x%08X", prev, e.Specs.Name, e.ID)
		seen[e.ID] = e.Specs.Name

		specs, confidence := lookupChip(e.ID)
		assert.Equal(t, e.Specs.Name, specs.Name)
		want := gpu.ConfidenceExact
		if e.Specs.Provenance == provHeuristic {
			want = gpu.ConfidenceApproximate
		}
		assert.Equal(t, want, confidence)
	}
}

// The 530 predates the split chip ID convention and reports a 4-series
// ID; its database entry still names the right product and family.
func TestLookupChipMisreportedSeries(t *testing.T) {
	specs, confidence := lookupChip(0x04020000)
	assert.Equal(t, "Adreno 530", specs.Name)
	assert.Equal(t, gpu.FamilyAdreno5xx, specs.Family)
	assert.Equal(t, gpu.ConfidenceExact, confidence)
}
