//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "llrp-cli.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
reader:
  address: "speedway:5084"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "speedway:5084", cfg.Reader.Address)
	assert.Equal(t, 10*time.Second, cfg.Reader.ConnectTimeout())
	assert.Equal(t, 20*time.Second, cfg.Reader.CommandTimeout())
	assert.Equal(t, 10*time.Second, cfg.Reader.KeepAliveInterval())
	assert.Equal(t, 15*time.Second, cfg.Reader.WatchdogWindow())
	assert.True(t, cfg.Report.IncludePeakRSSI)
	assert.Equal(t, uint16(16), cfg.Report.TagsPerReport)
	assert.Equal(t, "localhost:8181", cfg.Monitor.Listen)
	assert.Empty(t, cfg.Database.Path, "persistence is opt-in")
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
reader:
  address: "10.0.0.7:5084"
  keepAliveIntervalSeconds: 30
  watchdogGraceSeconds: 10
report:
  includeChannelIndex: true
  tagsPerReport: 1
database:
  path: "/tmp/tags.db"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 40*time.Second, cfg.Reader.WatchdogWindow())
	assert.True(t, cfg.Report.IncludeChannelIndex)
	assert.Equal(t, uint16(1), cfg.Report.TagsPerReport)
	assert.Equal(t, "/tmp/tags.db", cfg.Database.Path)
}

func TestLoadRejectsInvalid(t *testing.T) {
	for _, tc := range []struct {
		name     string
		contents string
	}{
		{"bad yaml", "reader: [not a map"},
		{"zero connect timeout", "reader:\n  connectTimeoutSeconds: 0\n"},
		{"negative command timeout", "reader:\n  commandTimeoutSeconds: -1\n"},
		{"keepalive without grace", "reader:\n  watchdogGraceSeconds: 0\n"},
		{"negative recent tags", "monitor:\n  recentTags: -5\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.contents))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDefaultValidates(t *testing.T) {
	assert.NoError(t, Default().Validate())
}
