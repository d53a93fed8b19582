// SPDX-License-Identifier: AGPL-3.0-or-later
package submit

import (
	"github.com/gsub-org/gsub/internal/gaussian"
	"github.com/gsub-org/gsub/internal/scheduler"
	"github.com/gsub-org/gsub/internal/script"
	"github.com/gsub-org/gsub/internal/settings"
)

// Kind bundles the capabilities that vary per science-package/scheduler
// pairing. The pipeline selects one Kind per run and never branches on the
// concrete type.
type Kind interface {
	// Extension is the expected input file extension, including the dot.
	Extension() string
	// EnsureInput corrects the input file's directives in place.
	EnsureInput(path string, s settings.Settings) error
	// GenerateScript rewrites the reusable submission script from s.
	GenerateScript(s settings.Settings) error
	// Command builds the scheduler argument vector for one job.
	Command(s settings.Settings, jobName, inputStem string) []string
}

// GaussianPBS submits Gaussian .com inputs through the PBS qsub client.
type GaussianPBS struct {
	ScriptPath   string
	SchedulerBin string // empty means qsub
}

func (g GaussianPBS) Extension() string { return ".com" }

func (g GaussianPBS) EnsureInput(path string, s settings.Settings) error {
	return gaussian.CorrectInput(path, s)
}

func (g GaussianPBS) GenerateScript(s settings.Settings) error {
	return script.Update(g.ScriptPath, s)
}

func (g GaussianPBS) Command(s settings.Settings, jobName, inputStem string) []string {
	return scheduler.Command(s, g.SchedulerBin, jobName, inputStem, g.ScriptPath)
}
