// SPDX-License-Identifier: AGPL-3.0-or-later

// Package siteconfig loads the optional config.yaml from the support
// directory. It customises the built-in defaults for a cluster: scheduler
// executable, job-root prefix stripped in log lines, preferred editor and
// the default job settings. A missing file means built-in defaults; a
// malformed one is a fatal configuration error.
package siteconfig

import (
	"fmt"
	"os"

	"github.com/gsub-org/gsub/internal/settings"
	"github.com/gsub-org/gsub/internal/units"
	"gopkg.in/yaml.v3"
)

const (
	defaultScheduler = "qsub"
	defaultJobRoot   = "/work/gd2613/jobs/"
)

// Config mirrors config.yaml.
type Config struct {
	Scheduler string `yaml:"scheduler"`
	JobRoot   string `yaml:"job_root"`
	Editor    string `yaml:"editor"`
	Defaults  struct {
		Queue    string `yaml:"queue"`
		Cores    int    `yaml:"cores"`
		Memory   string `yaml:"memory"`
		Walltime string `yaml:"walltime"`
	} `yaml:"defaults"`
}

// Load reads the config file at path. A missing file yields the zero Config.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// SchedulerBin returns the scheduler executable, qsub by default.
func (c Config) SchedulerBin() string {
	if c.Scheduler != "" {
		return c.Scheduler
	}
	return defaultScheduler
}

// JobRootPrefix returns the prefix stripped from working directories in log
// lines.
func (c Config) JobRootPrefix() string {
	if c.JobRoot != "" {
		return c.JobRoot
	}
	return defaultJobRoot
}

// ApplyDefaults folds the configured default job settings over s. Only
// fields present in the file overwrite; the memory string goes through the
// usual unit parsing.
func (c Config) ApplyDefaults(s settings.Settings) (settings.Settings, error) {
	s = s.WithQueue(c.Defaults.Queue).WithWalltime(c.Defaults.Walltime)
	if c.Defaults.Cores != 0 {
		s = s.WithCores(c.Defaults.Cores)
	}
	if c.Defaults.Memory != "" {
		mb, err := units.ParseMB(c.Defaults.Memory, s.MemoryMB)
		if err != nil {
			return s, fmt.Errorf("config defaults.memory: %w", err)
		}
		s = s.WithMemoryMB(mb)
	}
	return s, nil
}
