// SPDX-License-Identifier: AGPL-3.0-or-later

// Package scheduler abstracts the batch scheduler behind a submit call, with
// a PBS qsub implementation driving the real cluster.
package scheduler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/gsub-org/gsub/internal/settings"
)

// maxJobNameLen bounds the scheduler-visible job name.
const maxJobNameLen = 15

// Outcome is the result of one submission attempt.
type Outcome struct {
	Succeeded bool
	Output    string // stdout if non-empty, else stderr, trimmed
}

// Scheduler submits a prepared command to the batch system.
type Scheduler interface {
	Submit(ctx context.Context, argv []string) Outcome
}

// PBS invokes the qsub client tools. The executable to run arrives as the
// first token of the prepared argument vector.
type PBS struct{}

// Submit runs argv as a blocking child process and captures its output.
// A missing executable is reported as a failed outcome rather than an
// error, so the batch can continue with the next file.
func (p PBS) Submit(ctx context.Context, argv []string) Outcome {
	if len(argv) == 0 {
		return Outcome{Succeeded: false, Output: "empty submission command"}
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil && errors.Is(err, exec.ErrNotFound) {
		return Outcome{
			Succeeded: false,
			Output:    fmt.Sprintf("%s command not found. Please ensure the PBS client tools are installed.", argv[0]),
		}
	}

	output := strings.TrimSpace(stdout.String())
	if output == "" {
		output = strings.TrimSpace(stderr.String())
	}
	return Outcome{Succeeded: err == nil, Output: output}
}

// Command builds the exact scheduler argument vector for one job. Pure
// function of its inputs; bin defaults to qsub when empty.
func Command(s settings.Settings, bin, jobName, inputStem, scriptPath string) []string {
	if bin == "" {
		bin = "qsub"
	}
	argv := []string{bin}
	if s.ForcePriority {
		argv = append(argv, "-p", "100")
	}
	argv = append(argv, "-N", jobName, "-v", "in="+inputStem, scriptPath)
	return argv
}

// JobName derives the scheduler-visible job name from the input file stem.
func JobName(stem string) string {
	if len(stem) > maxJobNameLen {
		return stem[:maxJobNameLen]
	}
	return stem
}
