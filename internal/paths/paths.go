// SPDX-License-Identifier: AGPL-3.0-or-later

// Package paths centralises gsub support-file resolution.
//
// All state lives in one flat support directory (historically ~/bin): the
// reusable PBS submission script, the preset file, the two job logs, the
// optional site config and the submission history database.
package paths

import (
	"os"
	"path/filepath"
	"sync/atomic"
)

const (
	envBinDir = "GSUB_BIN_DIR"

	scriptName  = ".rng"
	presetsName = ".presets"
	logName     = ".wlog"
	fullLogName = ".wulog"
	configName  = "config.yaml"
	historyName = "gsub.db"
)

var override atomic.Pointer[string]

// SetBinDirOverride pins the support directory to an explicit location.
// Passing an empty string clears the override. Intended for tests and for
// the site config loader.
func SetBinDirOverride(dir string) {
	if dir == "" {
		override.Store(nil)
		return
	}
	clean := filepath.Clean(dir)
	override.Store(&clean)
}

// BinDir returns the directory holding all gsub support files.
// Order of precedence:
//  1. Explicit override via SetBinDirOverride.
//  2. GSUB_BIN_DIR environment variable.
//  3. ~/bin, the historical location.
//  4. Fallback: ./bin under the current working directory.
func BinDir() string {
	if ptr := override.Load(); ptr != nil && *ptr != "" {
		return *ptr
	}
	if dir := os.Getenv(envBinDir); dir != "" {
		return filepath.Clean(dir)
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, "bin")
	}
	if cwd, err := os.Getwd(); err == nil && cwd != "" {
		return filepath.Join(cwd, "bin")
	}
	return filepath.Join(os.TempDir(), "bin")
}

// ScriptFile returns the path of the reusable PBS submission script.
func ScriptFile() string { return filepath.Join(BinDir(), scriptName) }

// PresetsFile returns the path of the preset definitions file.
func PresetsFile() string { return filepath.Join(BinDir(), presetsName) }

// LogFile returns the path of the terse job log.
func LogFile() string { return filepath.Join(BinDir(), logName) }

// FullLogFile returns the path of the full job log.
func FullLogFile() string { return filepath.Join(BinDir(), fullLogName) }

// ConfigFile returns the path of the optional site config.
func ConfigFile() string { return filepath.Join(BinDir(), configName) }

// HistoryFile returns the path of the submission history database.
func HistoryFile() string { return filepath.Join(BinDir(), historyName) }
