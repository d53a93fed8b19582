// SPDX-License-Identifier: AGPL-3.0-or-later
package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBinDirPrecedence(t *testing.T) {
	t.Setenv("GSUB_BIN_DIR", "/tmp/from-env")
	if got := BinDir(); got != "/tmp/from-env" {
		t.Fatalf("env dir: got %q", got)
	}

	SetBinDirOverride("/tmp/from-override")
	t.Cleanup(func() { SetBinDirOverride("") })
	if got := BinDir(); got != "/tmp/from-override" {
		t.Fatalf("override dir: got %q", got)
	}

	SetBinDirOverride("")
	if got := BinDir(); got != "/tmp/from-env" {
		t.Fatalf("cleared override should fall back to env, got %q", got)
	}
}

func TestBootstrapCreatesSupportFiles(t *testing.T) {
	dir := t.TempDir()
	SetBinDirOverride(dir)
	t.Cleanup(func() { SetBinDirOverride("") })

	if err := Bootstrap(); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	script, err := os.ReadFile(ScriptFile())
	if err != nil {
		t.Fatalf("script not created: %v", err)
	}
	if !strings.Contains(string(script), "#PBS -lselect=1:ncpus=") {
		t.Fatalf("script template missing resource directive:\n%s", script)
	}
	info, err := os.Stat(ScriptFile())
	if err != nil {
		t.Fatalf("stat script: %v", err)
	}
	if info.Mode().Perm()&0o100 == 0 {
		t.Fatalf("script not executable: %v", info.Mode())
	}

	presets, err := os.ReadFile(PresetsFile())
	if err != nil {
		t.Fatalf("presets not created: %v", err)
	}
	if !strings.Contains(string(presets), "pqph;12;48000MB;119:59:00;d01;400GB") {
		t.Fatalf("preset template missing default preset:\n%s", presets)
	}

	for _, name := range []string{LogFile(), FullLogFile()} {
		if _, err := os.Stat(name); err != nil {
			t.Fatalf("log %s not created: %v", name, err)
		}
	}
}

func TestBootstrapKeepsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	SetBinDirOverride(dir)
	t.Cleanup(func() { SetBinDirOverride("") })

	custom := "#!/bin/sh\n# customised\n"
	if err := os.WriteFile(filepath.Join(dir, ".rng"), []byte(custom), 0o755); err != nil {
		t.Fatalf("seed script: %v", err)
	}
	if err := Bootstrap(); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	got, err := os.ReadFile(ScriptFile())
	if err != nil {
		t.Fatalf("read script: %v", err)
	}
	if string(got) != custom {
		t.Fatalf("bootstrap overwrote existing script:\n%s", got)
	}
}
