/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCommands(t *testing.T) {
	cmd := New()
	require.NotNil(t, cmd)
	assert.Equal(t, name, cmd.Name)

	names := make([]string, 0, len(cmd.Commands))
	for _, c := range cmd.Commands {
		names = append(names, c.Name)
	}
	assert.ElementsMatch(t, []string{"detect", "mali", "adreno"}, names)
}

func TestUnknownFormatRejectedBeforeProbe(t *testing.T) {
	for _, sub := range []string{"detect", "mali", "adreno"} {
		t.Run(sub, func(t *testing.T) {
			err := New().Run(context.Background(), []string{
				name, sub,
				"--device", filepath.Join(t.TempDir(), "no-such-node"),
				"--format", "xml",
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "unknown output format")
		})
	}
}

func TestMissingDeviceErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-node")

	for _, sub := range []string{"mali", "adreno"} {
		t.Run(sub, func(t *testing.T) {
			err := New().Run(context.Background(), []string{
				name, sub, "--device", missing, "--format", "json",
			})
			require.Error(t, err)
			assert.NotContains(t, err.Error(), "unknown output format")
		})
	}
}

func TestDetectHintExhaustionErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-node")

	err := New().Run(context.Background(), []string{
		name, "detect", "--device", missing,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no GPU detected")
}
