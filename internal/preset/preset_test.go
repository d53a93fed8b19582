// SPDX-License-Identifier: AGPL-3.0-or-later
package preset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePresets(t *testing.T, content string) Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".presets")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write presets: %v", err)
	}
	return Store{Path: path}
}

func TestListSkipsCommentsBlanksAndMalformedLines(t *testing.T) {
	store := writePresets(t, strings.Join([]string{
		"## comment",
		"",
		"not-a-preset",
		"pqph;8;14400MB;119:59:00;d01;800GB",
		"short;4;8GB;24:00:00;;",
	}, "\n")+"\n")

	entries, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 presets, got %d: %+v", len(entries), entries)
	}
	// Malformed and comment lines never consume an index.
	if entries[0].Index != 1 || entries[1].Index != 2 {
		t.Fatalf("unexpected indices: %+v", entries)
	}
	if entries[0].Preset.Queue != "pqph" || entries[0].Preset.MemoryMB != 14400 {
		t.Fatalf("first preset: %+v", entries[0].Preset)
	}
	second := entries[1].Preset
	if second.GaussianVersion != "" || second.MaxDiskSet {
		t.Fatalf("optional fields should be absent: %+v", second)
	}
	if second.MemoryMB != 8000 {
		t.Fatalf("GB memory not converted: %+v", second)
	}
}

func TestParseLineRejectsBadFieldCounts(t *testing.T) {
	for _, line := range []string{
		"pqph;8;14400MB;119:59:00;d01",
		"pqph;8;14400MB;119:59:00;d01;800GB;extra",
		"pqph;eight;14400MB;119:59:00;d01;",
		"pqph;8;lots;119:59:00;d01;",
	} {
		if _, err := ParseLine(line); err == nil {
			t.Fatalf("ParseLine(%q): expected error", line)
		}
	}
}

func TestGet(t *testing.T) {
	store := writePresets(t, "pqph;12;48000MB;119:59:00;d01;400GB\nshort;4;8GB;24:00:00;;\n")

	p, err := store.Get(2)
	if err != nil {
		t.Fatalf("Get(2): %v", err)
	}
	if p.Queue != "short" || p.Cores != 4 {
		t.Fatalf("Get(2) = %+v", p)
	}

	for _, index := range []int{0, 3, -1} {
		if _, err := store.Get(index); !errors.Is(err, ErrNotFound) {
			t.Fatalf("Get(%d): expected ErrNotFound, got %v", index, err)
		}
	}
}

func TestLineRoundTrip(t *testing.T) {
	line := "pqph;8;14400MB;119:59:00;d01;800GB"
	p, err := ParseLine(line)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if got := p.Line(); got != line {
		t.Fatalf("Line() = %q, want %q", got, line)
	}
}

func TestFormat(t *testing.T) {
	store := writePresets(t, "pqph;12;48000MB;119:59:00;d01;400GB\n")
	got, err := store.Format()
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	want := "1 - cue: pqph cores:12 memory: 48GB walltime: 119:59:00 gaussian version: d01 max disk: 400GB\n"
	if got != want {
		t.Fatalf("Format() = %q, want %q", got, want)
	}
}
