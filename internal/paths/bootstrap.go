// SPDX-License-Identifier: AGPL-3.0-or-later
package paths

import (
	"fmt"
	"os"
)

// Bootstrap ensures the support directory and its default files exist.
// Existing files are never touched, so a customised script or preset file
// survives upgrades.
func Bootstrap() error {
	dir := BinDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure support dir: %w", err)
	}
	if _, err := os.Stat(ScriptFile()); os.IsNotExist(err) {
		if err := os.WriteFile(ScriptFile(), []byte(DefaultScriptTemplate), 0o755); err != nil {
			return fmt.Errorf("write default submission script: %w", err)
		}
	}
	if _, err := os.Stat(PresetsFile()); os.IsNotExist(err) {
		if err := os.WriteFile(PresetsFile(), []byte(DefaultPresetTemplate), 0o644); err != nil {
			return fmt.Errorf("write default presets: %w", err)
		}
	}
	for _, target := range []string{LogFile(), FullLogFile()} {
		f, err := os.OpenFile(target, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("touch log %s: %w", target, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("touch log %s: %w", target, err)
		}
	}
	return nil
}
