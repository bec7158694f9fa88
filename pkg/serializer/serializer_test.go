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

package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/gpu-probe/pkg/gpu"
)

func testRecord() *gpu.Info {
	return &gpu.Info{
		Vendor:         gpu.VendorMali,
		Family:         gpu.FamilyValhall,
		ModelName:      "Mali-G78",
		Revision:       gpu.Revision{Major: 1, Minor: 3},
		NumShaderCores: 24,
		Confidence:     gpu.ConfidenceExact,
		RawID:          0x90021030,
		Mali: &gpu.MaliData{
			ProductID:   0x9002,
			NumL2Slices: 4,
			NumL2Bytes:  2 << 20,
		},
	}
}

func TestSerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatJSON, &buf)
	require.NoError(t, w.Serialize(context.Background(), testRecord()))

	var decoded gpu.Info
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Mali-G78", decoded.ModelName)
	assert.Equal(t, uint32(24), decoded.NumShaderCores)
	assert.Equal(t, gpu.ConfidenceExact, decoded.Confidence)
}

func TestSerializeYAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatYAML, &buf)
	require.NoError(t, w.Serialize(context.Background(), testRecord()))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Mali-G78", decoded["modelName"])
}

func TestSerializeTable(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)
	require.NoError(t, w.Serialize(context.Background(), testRecord()))

	out := buf.String()
	assert.Contains(t, out, "FIELD")
	assert.Contains(t, out, "ModelName")
	assert.Contains(t, out, "Mali-G78")
	assert.Contains(t, out, "Mali.NumL2Bytes")
	// Absent vendor payloads are omitted, not rendered as nil.
	assert.NotContains(t, out, "Adreno.")
}

func TestSerializeTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)
	require.NoError(t, w.Serialize(context.Background(), struct{}{}))
	assert.Equal(t, "<empty>\n", buf.String())
}

func TestNewWriterUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(Format("bogus"), &buf)
	require.NoError(t, w.Serialize(context.Background(), testRecord()))
	assert.True(t, strings.HasPrefix(strings.TrimSpace(buf.String()), "{"))
}

func TestSupportedFormats(t *testing.T) {
	formats := SupportedFormats()
	assert.Equal(t, []string{"json", "yaml", "table"}, formats)
	for _, f := range formats {
		assert.False(t, Format(f).IsUnknown())
	}
}

func TestFileWriterOrStdout(t *testing.T) {
	path := t.TempDir() + "/record.json"
	w := NewFileWriterOrStdout(FormatJSON, path)
	require.NoError(t, w.Serialize(context.Background(), testRecord()))
	require.NoError(t, w.Close())

	var decoded gpu.Info
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Mali-G78", decoded.ModelName)
}
