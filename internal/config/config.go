//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

// Package config holds the typed yaml configuration for the CLI boundary.
// The protocol engine itself takes no configuration beyond its options;
// everything here describes how the CLI drives it.
package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Reader   ReaderConfig   `yaml:"reader"`
	Report   ReportConfig   `yaml:"report"`
	Monitor  MonitorConfig  `yaml:"monitor"`
	Database DatabaseConfig `yaml:"database"`
}

// ReaderConfig describes the connection to a single LLRP Reader.
// Durations are whole seconds, matching how they're set on Readers.
type ReaderConfig struct {
	// Address is the Reader's host:port. LLRP's registered port is 5084.
	Address                  string `yaml:"address"`
	ConnectTimeoutSeconds    int    `yaml:"connectTimeoutSeconds"`
	CommandTimeoutSeconds    int    `yaml:"commandTimeoutSeconds"`
	KeepAliveIntervalSeconds int    `yaml:"keepAliveIntervalSeconds"`
	// WatchdogGraceSeconds is added to the keepalive interval to form
	// the watchdog window, absorbing scheduling jitter on the Reader.
	WatchdogGraceSeconds int `yaml:"watchdogGraceSeconds"`
}

func (r ReaderConfig) ConnectTimeout() time.Duration {
	return time.Duration(r.ConnectTimeoutSeconds) * time.Second
}

func (r ReaderConfig) CommandTimeout() time.Duration {
	return time.Duration(r.CommandTimeoutSeconds) * time.Second
}

func (r ReaderConfig) KeepAliveInterval() time.Duration {
	return time.Duration(r.KeepAliveIntervalSeconds) * time.Second
}

// WatchdogWindow is how long the client waits for a keepalive
// before declaring the connection lost.
func (r ReaderConfig) WatchdogWindow() time.Duration {
	return time.Duration(r.KeepAliveIntervalSeconds+r.WatchdogGraceSeconds) * time.Second
}

// ReportConfig selects the optional per-tag fields the Reader should
// include in its reports and how often it should flush them.
type ReportConfig struct {
	IncludeAntennaID    bool `yaml:"includeAntennaID"`
	IncludeChannelIndex bool `yaml:"includeChannelIndex"`
	IncludePeakRSSI     bool `yaml:"includePeakRSSI"`
	IncludeFirstSeen    bool `yaml:"includeFirstSeen"`
	IncludeLastSeen     bool `yaml:"includeLastSeen"`
	IncludeTagSeenCount bool `yaml:"includeTagSeenCount"`

	// TagsPerReport flushes a report every N tags; 0 reports only
	// when an antenna inventory round or the ROSpec ends.
	TagsPerReport uint16 `yaml:"tagsPerReport"`
}

// MonitorConfig configures the read-only HTTP observer surface.
type MonitorConfig struct {
	Listen     string `yaml:"listen"`
	RecentTags int    `yaml:"recentTags"`
}

// DatabaseConfig configures the sqlite tag-report sink.
// An empty path disables persistence.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// Default returns the configuration used when no file is given.
// The address is intentionally empty: it must come from the file
// or the command line.
func Default() Config {
	return Config{
		Reader: ReaderConfig{
			ConnectTimeoutSeconds:    10,
			CommandTimeoutSeconds:    20,
			KeepAliveIntervalSeconds: 10,
			WatchdogGraceSeconds:     5,
		},
		Report: ReportConfig{
			IncludeAntennaID:    true,
			IncludePeakRSSI:     true,
			IncludeLastSeen:     true,
			IncludeTagSeenCount: true,
			TagsPerReport:       16,
		},
		Monitor: MonitorConfig{
			Listen:     "localhost:8181",
			RecentTags: 100,
		},
	}
}

// Load reads a yaml config file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to read config %q", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "failed to parse config %q", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.WithMessagef(err, "invalid config %q", path)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Reader.ConnectTimeoutSeconds <= 0 {
		return errors.New("reader.connectTimeoutSeconds must be positive")
	}
	if c.Reader.CommandTimeoutSeconds <= 0 {
		return errors.New("reader.commandTimeoutSeconds must be positive")
	}
	if c.Reader.KeepAliveIntervalSeconds < 0 {
		return errors.New("reader.keepAliveIntervalSeconds cannot be negative")
	}
	if c.Reader.KeepAliveIntervalSeconds > 0 && c.Reader.WatchdogGraceSeconds <= 0 {
		return errors.New("reader.watchdogGraceSeconds must be positive when keepalives are on")
	}
	if c.Monitor.RecentTags < 0 {
		return errors.New("monitor.recentTags cannot be negative")
	}
	return nil
}
