// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gaussian corrects Gaussian input files before submission.
package gaussian

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gsub-org/gsub/internal/directive"
	"github.com/gsub-org/gsub/internal/settings"
)

// Stem returns the input file name without directory or extension; it names
// the job, the checkpoint file and the in= variable of the PBS script.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// CorrectInput aligns the input file's link-0 directives with the resolved
// settings. Disabled correction or a missing file is a silent no-op.
//
// The memory directive is deliberately set to 75% of the scheduler request
// to leave headroom for the cluster's accounting overhead.
func CorrectInput(path string, s settings.Settings) error {
	if !s.CorrectionEnabled {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	lines, err := directive.ReadLines(path)
	if err != nil {
		return err
	}

	gm := s.MemoryMB * 15 / 20
	lines = directive.Upsert(lines, "%mem", fmt.Sprintf("%%mem=%dMB", gm), 0)
	lines = directive.Upsert(lines, "%nprocshared", fmt.Sprintf("%%nprocshared=%d", s.Cores), 1)
	lines = directive.Upsert(lines, "%chk", fmt.Sprintf("%%chk=%s.chk", Stem(path)), 2)
	if s.MaxDiskSet {
		lines = directive.Upsert(lines, "maxdisk", fmt.Sprintf("maxdisk=%dMB", s.MaxDiskMB), directive.Append)
	}

	return directive.WriteLines(path, lines, 0o644)
}
