// SPDX-License-Identifier: AGPL-3.0-or-later

// Package preset reads the flat preset file shared with the historical
// workflow.
//
// One preset per line, six `;`-separated fields:
//
//	[CUE];[CORES];[MEMORY];[WALLTIME];[GAUSSIAN VERSION];[MAXDISK]
//
// Lines starting with ## are comments. A line that fails to parse is
// skipped without consuming an index, so preset numbering only counts valid
// lines. The file is re-read on every access; nothing is cached between
// invocations.
package preset

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/gsub-org/gsub/internal/units"
)

// ErrNotFound reports a preset index outside [1, count].
var ErrNotFound = errors.New("preset: not found")

// Preset is one saved bundle of job settings.
type Preset struct {
	Queue           string
	Cores           int
	MemoryMB        int
	Walltime        string
	GaussianVersion string // empty when absent
	MaxDiskMB       int
	MaxDiskSet      bool
}

// ParseLine parses a single preset-file line.
func ParseLine(line string) (Preset, error) {
	parts := strings.Split(line, ";")
	if len(parts) != 6 {
		return Preset{}, fmt.Errorf("preset line must contain exactly six fields, got %d", len(parts))
	}
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	cores, err := strconv.Atoi(parts[1])
	if err != nil {
		return Preset{}, fmt.Errorf("preset cores: %w", err)
	}
	memory, err := units.ParseMB(parts[2], 0)
	if err != nil {
		return Preset{}, fmt.Errorf("preset memory: %w", err)
	}
	p := Preset{
		Queue:           parts[0],
		Cores:           cores,
		MemoryMB:        memory,
		Walltime:        parts[3],
		GaussianVersion: parts[4],
	}
	if parts[5] != "" {
		maxdisk, err := units.ParseMB(parts[5], 0)
		if err != nil {
			return Preset{}, fmt.Errorf("preset maxdisk: %w", err)
		}
		p.MaxDiskMB = maxdisk
		p.MaxDiskSet = true
	}
	return p, nil
}

// Line renders the preset back into the on-disk format.
func (p Preset) Line() string {
	maxdisk := ""
	if p.MaxDiskSet {
		maxdisk = units.FormatMB(p.MaxDiskMB)
	}
	return strings.Join([]string{
		p.Queue,
		strconv.Itoa(p.Cores),
		units.FormatMB(p.MemoryMB),
		p.Walltime,
		p.GaussianVersion,
		maxdisk,
	}, ";")
}

// Entry pairs a preset with its 1-based index over valid lines.
type Entry struct {
	Index  int
	Preset Preset
}

// Store reads presets from a file path.
type Store struct {
	Path string
}

// List returns the valid presets in file order. Blank lines, ## comments and
// malformed lines are skipped; malformed lines do not consume an index.
func (s Store) List() ([]Entry, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open presets: %w", err)
	}
	defer f.Close()

	var entries []Entry
	index := 1
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "##") {
			continue
		}
		p, err := ParseLine(line)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{Index: index, Preset: p})
		index++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}
	return entries, nil
}

// Get returns the preset with the given 1-based index.
func (s Store) Get(index int) (Preset, error) {
	entries, err := s.List()
	if err != nil {
		return Preset{}, err
	}
	if index < 1 || index > len(entries) {
		return Preset{}, fmt.Errorf("%w: preset %d", ErrNotFound, index)
	}
	return entries[index-1].Preset, nil
}

// Format renders the listing printed by `--preset show`.
func (s Store) Format() (string, error) {
	entries, err := s.List()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, e := range entries {
		maxdisk := ""
		if e.Preset.MaxDiskSet {
			maxdisk = units.FormatMB(e.Preset.MaxDiskMB)
		}
		fmt.Fprintf(&b, "%d - cue: %s cores:%d memory: %s walltime: %s gaussian version: %s max disk: %s\n",
			e.Index, e.Preset.Queue, e.Preset.Cores, units.FormatMB(e.Preset.MemoryMB),
			e.Preset.Walltime, e.Preset.GaussianVersion, maxdisk)
	}
	return b.String(), nil
}

// Edit hands the preset file to an interactive editor and blocks until it
// exits. An empty editor falls back to $EDITOR, then vi.
func (s Store) Edit(editor string) error {
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}
	cmd := exec.Command(editor, s.Path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("edit presets with %s: %w", editor, err)
	}
	return nil
}
