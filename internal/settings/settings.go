// SPDX-License-Identifier: AGPL-3.0-or-later

// Package settings holds the resolved job configuration.
//
// Settings is an immutable value: every override derives a fresh value via a
// copy-with-changes method, so the precedence chain default -> preset -> CLI
// override stays auditable and each intermediate value can be inspected in
// isolation.
package settings

import (
	"fmt"
	"strings"

	"github.com/gsub-org/gsub/internal/preset"
	"github.com/gsub-org/gsub/internal/units"
)

// Settings is the full per-invocation job configuration.
type Settings struct {
	Queue             string
	Cores             int
	MemoryMB          int
	Walltime          string
	GaussianVersion   string // empty when absent
	Quiet             bool
	ForcePriority     bool
	CorrectionEnabled bool
	MaxDiskMB         int
	MaxDiskSet        bool
	PresetLoaded      int // 0 when no preset applied, display only
	DryRun            bool
	ShowSummary       bool
	Annotation        string // one-line note of the last preset applied
}

// Defaults returns the built-in configuration: quiet submission to pqph
// with 12 cores, 47988 MB and the maximum walltime.
func Defaults() Settings {
	return Settings{
		Queue:             "pqph",
		Cores:             12,
		MemoryMB:          47988,
		Walltime:          "119:59:00",
		Quiet:             true,
		CorrectionEnabled: true,
	}
}

// WithQueue keeps the previous queue when q is empty, matching the
// historical "empty value keeps prior" option handling.
func (s Settings) WithQueue(q string) Settings {
	if q != "" {
		s.Queue = q
	}
	return s
}

func (s Settings) WithCores(cores int) Settings {
	s.Cores = cores
	return s
}

func (s Settings) WithMemoryMB(mb int) Settings {
	s.MemoryMB = mb
	return s
}

// WithWalltime keeps the previous walltime when w is empty.
func (s Settings) WithWalltime(w string) Settings {
	if w != "" {
		s.Walltime = w
	}
	return s
}

// WithGaussianVersion resets the version to absent when v is empty.
func (s Settings) WithGaussianVersion(v string) Settings {
	s.GaussianVersion = v
	return s
}

func (s Settings) WithMaxDiskMB(mb int) Settings {
	s.MaxDiskMB = mb
	s.MaxDiskSet = true
	return s
}

func (s Settings) WithQuiet(quiet bool) Settings {
	s.Quiet = quiet
	return s
}

func (s Settings) WithForcePriority(force bool) Settings {
	s.ForcePriority = force
	return s
}

func (s Settings) WithCorrection(enabled bool) Settings {
	s.CorrectionEnabled = enabled
	return s
}

func (s Settings) WithDryRun(dry bool) Settings {
	s.DryRun = dry
	return s
}

func (s Settings) WithShowSummary(show bool) Settings {
	s.ShowSummary = show
	return s
}

// ApplyPreset substitutes the preset's values into the configuration.
// Queue, cores, memory and walltime only overwrite when the preset carries a
// non-zero value; version and maxdisk are replaced unconditionally, so a
// preset without them resets both to absent.
func (s Settings) ApplyPreset(index int, p preset.Preset) Settings {
	if p.Queue != "" {
		s.Queue = p.Queue
	}
	if p.Cores != 0 {
		s.Cores = p.Cores
	}
	if p.MemoryMB != 0 {
		s.MemoryMB = p.MemoryMB
	}
	if p.Walltime != "" {
		s.Walltime = p.Walltime
	}
	s.GaussianVersion = p.GaussianVersion
	s.MaxDiskMB = p.MaxDiskMB
	s.MaxDiskSet = p.MaxDiskSet
	s.PresetLoaded = index

	maxdisk := ""
	if s.MaxDiskSet {
		maxdisk = units.FormatMB(s.MaxDiskMB)
	}
	s.Annotation = strings.TrimSpace(fmt.Sprintf("Charged preset : %s %d %s %s %s %s",
		s.Queue, s.Cores, units.FormatMB(s.MemoryMB), s.Walltime, s.GaussianVersion, maxdisk))
	return s
}

// Summary renders the human-readable configuration line shown in previews.
func (s Settings) Summary() string {
	parts := []string{
		fmt.Sprintf("Cores: %d", s.Cores),
		fmt.Sprintf("Memory: %s", units.FormatMB(s.MemoryMB)),
		fmt.Sprintf("Cue: %s", s.Queue),
		fmt.Sprintf("Walltime: %s", s.Walltime),
	}
	if s.GaussianVersion != "" {
		parts = append(parts, fmt.Sprintf("Gaussian-version: %s", s.GaussianVersion))
	}
	if s.MaxDiskSet {
		parts = append(parts, fmt.Sprintf("Maxdisk: %s", units.FormatMB(s.MaxDiskMB)))
	}
	return strings.Join(parts, "; ")
}
