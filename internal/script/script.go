// SPDX-License-Identifier: AGPL-3.0-or-later

// Package script rewrites the reusable PBS submission script so its
// directives match the resolved job settings. The script is edited in place
// once per run, before the first file is submitted.
package script

import (
	"fmt"
	"strings"

	"github.com/gsub-org/gsub/internal/directive"
	"github.com/gsub-org/gsub/internal/settings"
)

// publicQueue is the sentinel queue name that removes the queue directive
// instead of writing one.
const publicQueue = "PUBLIC"

// queueFallbackIndex is where a missing queue directive lands in the stock
// script template; tooling that reads the script by line offset relies on it.
const queueFallbackIndex = 13

// Update rewrites the submission script at path from s.
func Update(path string, s settings.Settings) error {
	lines, err := directive.ReadLines(path)
	if err != nil {
		return err
	}

	resources := fmt.Sprintf("#PBS -lselect=1:ncpus=%d:mem=%dMB", s.Cores, s.MemoryMB)
	if s.MaxDiskSet {
		resources += fmt.Sprintf(":tmpspace=%dMB", s.MaxDiskMB)
	}
	lines = directive.Upsert(lines, "#PBS -lselect=1:ncpus=", resources, directive.Append)
	lines = directive.Upsert(lines, "#PBS -l walltime=",
		fmt.Sprintf("#PBS -l walltime=%s", s.Walltime), directive.Append)

	if strings.EqualFold(s.Queue, publicQueue) {
		lines = directive.Remove(lines, "#PBS -q ")
	} else {
		lines = directive.Upsert(lines, "#PBS -q ", "#PBS -q "+s.Queue, queueFallbackIndex)
	}

	if s.GaussianVersion != "" {
		lines = directive.Upsert(lines, "module load gaussian/",
			"module load gaussian/g09-"+s.GaussianVersion, directive.Append)
	}

	return directive.WriteLines(path, lines, 0o755)
}
