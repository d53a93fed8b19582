// SPDX-License-Identifier: AGPL-3.0-or-later

// Package joblog keeps the append-only submission ledger.
//
// Two physical logs share one entry format; the terse one backs the --logs
// readback, the full one is kept for manual inspection. Every entry is a
// single newline-terminated append.
package joblog

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Logger appends submission outcomes to the terse and full logs.
type Logger struct {
	Path     string // terse log
	FullPath string
	// JobRoot is stripped from the working directory in log lines.
	JobRoot string
	// Now allows tests to pin the timestamp; nil means time.Now().UTC.
	Now func() time.Time
}

// Line formats one log entry from the scheduler output and the job stem.
func (l Logger) Line(schedulerOutput, jobStem string) string {
	now := time.Now().UTC
	if l.Now != nil {
		now = l.Now
	}
	workdir, err := os.Getwd()
	if err != nil {
		workdir = ""
	}
	workdir = strings.TrimPrefix(workdir, l.JobRoot)
	return fmt.Sprintf("%s | %s | %s | %s", now().Format("02/01 - 15:04"), schedulerOutput, jobStem, workdir)
}

// Append writes entry to both logs, newline-terminated.
func (l Logger) Append(entry string) error {
	for _, path := range []string{l.Path, l.FullPath} {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log %s: %w", path, err)
		}
		_, werr := f.WriteString(entry + "\n")
		cerr := f.Close()
		if werr != nil {
			return fmt.Errorf("append log %s: %w", path, werr)
		}
		if cerr != nil {
			return fmt.Errorf("close log %s: %w", path, cerr)
		}
	}
	return nil
}

// Show renders the terse log for the given selector: "all" dumps the file
// verbatim, anything else keeps only the lines containing the selector as a
// literal substring.
func (l Logger) Show(selector string) (string, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return "", fmt.Errorf("read log: %w", err)
	}
	selector = strings.TrimSpace(selector)
	if strings.EqualFold(selector, "all") {
		return string(data), nil
	}
	var matches []string
	for _, line := range strings.Split(strings.TrimSuffix(string(data), "\n"), "\n") {
		if strings.Contains(line, selector) {
			matches = append(matches, line)
		}
	}
	return strings.Join(matches, "\n"), nil
}
