// SPDX-License-Identifier: AGPL-3.0-or-later

// Package submit orchestrates the per-file submission pipeline: resolve the
// input path, validate it, correct its directives, preview or confirm,
// short-circuit on dry-run, execute and log.
package submit

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/gsub-org/gsub/internal/gaussian"
	"github.com/gsub-org/gsub/internal/history"
	"github.com/gsub-org/gsub/internal/joblog"
	"github.com/gsub-org/gsub/internal/scheduler"
	"github.com/gsub-org/gsub/internal/settings"
	"github.com/gsub-org/gsub/internal/ui"
)

// Pipeline processes input files strictly sequentially, in argument order.
type Pipeline struct {
	Kind      Kind
	Scheduler scheduler.Scheduler
	Log       joblog.Logger
	History   *history.DB // optional; nil disables the history record

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Now pins timestamps in tests; nil means time.Now().UTC.
	Now func() time.Time

	confirmReader *bufio.Reader
}

// Run rewrites the submission script once and then submits every file.
// Validation failures are fatal for the whole batch; scheduler failures and
// declined confirmations only skip the file at hand.
func (p *Pipeline) Run(ctx context.Context, files []string, s settings.Settings) error {
	if err := p.Kind.GenerateScript(s); err != nil {
		return err
	}

	for _, raw := range files {
		path := p.resolveInput(raw)
		if err := p.validateInput(path); err != nil {
			return err
		}
		if err := p.Kind.EnsureInput(path, s); err != nil {
			return err
		}

		stem := gaussian.Stem(path)
		jobName := scheduler.JobName(stem)
		argv := p.Kind.Command(s, jobName, stem)

		if s.Quiet && (s.ShowSummary || s.DryRun) {
			p.printQuietSummary(path, s, argv)
		}
		if !p.confirm(path, s, argv) {
			fmt.Fprintf(p.Stdout, "%s\n", ui.Banner.Render("\n Work aborted \n"))
			continue
		}
		if s.DryRun {
			fmt.Fprintln(p.Stdout, "Dry-run: qsub command not executed.")
			continue
		}

		outcome := p.Scheduler.Submit(ctx, argv)
		if outcome.Output != "" {
			fmt.Fprintln(p.Stdout, outcome.Output)
		}
		if !outcome.Succeeded {
			fmt.Fprintf(p.Stdout, "%s\n", ui.Banner.Render("\n Submission failed \n"))
			continue
		}

		entry := p.Log.Line(outcome.Output, stem)
		if err := p.Log.Append(entry); err != nil {
			return err
		}
		p.recordHistory(ctx, s, stem, outcome.Output)
		fmt.Fprintf(p.Stdout, "%s\n", ui.Banner.Render(fmt.Sprintf("\n %s - Work sent \n", p.now().Format("15:04"))))
	}
	return nil
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now().UTC()
}

// resolveInput prefers the literal argument; when that file does not exist
// and lacks the expected extension, the extension is appended and tried.
// A path that resolves nowhere is kept literal so validation can reject it.
func (p *Pipeline) resolveInput(raw string) string {
	if _, err := os.Stat(raw); err == nil {
		return raw
	}
	if filepath.Ext(raw) != p.Kind.Extension() {
		alternative := raw + p.Kind.Extension()
		if _, err := os.Stat(alternative); err == nil {
			return alternative
		}
	}
	return raw
}

func (p *Pipeline) validateInput(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%q does not exists.", path)
	}
	if !strings.EqualFold(filepath.Ext(path), p.Kind.Extension()) {
		return fmt.Errorf("%q is not a %s file.", path, strings.TrimPrefix(p.Kind.Extension(), "."))
	}
	return nil
}

// confirm shows the interactive preview and blocks for a yes/no answer.
// Quiet mode skips the prompt entirely. Only "y" and "yes" (any case)
// proceed.
func (p *Pipeline) confirm(path string, s settings.Settings, argv []string) bool {
	if s.Quiet {
		return true
	}

	fmt.Fprintf(p.Stdout, "%s\n", ui.Banner.Render("Job overview for "+filepath.Base(path)))
	fmt.Fprintf(p.Stdout, "Input file : %s\n", path)
	if s.PresetLoaded != 0 {
		fmt.Fprintf(p.Stdout, "Preset loaded: %d\n", s.PresetLoaded)
	}
	p.printPreview(path)
	if s.Annotation != "" {
		fmt.Fprintf(p.Stdout, "%s\n", ui.Banner.Render(s.Annotation))
	}
	fmt.Fprintf(p.Stdout, "Command    : %s\n", shellquote.Join(argv...))
	fmt.Fprintln(p.Stdout, s.Summary())
	if s.DryRun {
		fmt.Fprintln(p.Stdout, "Dry-run mode: submission will not be sent.")
	}
	fmt.Fprintf(p.Stdout, "%s\n ", ui.Heading.Render("------------------------------Are you sure? [y/N]-------------------------------"))

	if p.confirmReader == nil {
		p.confirmReader = bufio.NewReader(p.Stdin)
	}
	answer, err := p.confirmReader.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func (p *Pipeline) printQuietSummary(path string, s settings.Settings, argv []string) {
	fmt.Fprintf(p.Stdout, "%s\n", ui.Banner.Render("Job overview for "+filepath.Base(path)))
	fmt.Fprintf(p.Stdout, "Input file : %s\n", path)
	fmt.Fprintln(p.Stdout, s.Summary())
	if s.PresetLoaded != 0 {
		fmt.Fprintf(p.Stdout, "Preset loaded: %d\n", s.PresetLoaded)
	}
	if s.Annotation != "" {
		fmt.Fprintf(p.Stdout, "%s\n", ui.Banner.Render(s.Annotation))
	}
	mode := "Queued submission"
	if s.DryRun {
		mode = "Dry-run (no submission)"
	}
	fmt.Fprintf(p.Stdout, "Mode       : %s\n", mode)
	fmt.Fprintf(p.Stdout, "Command    : %s\n", shellquote.Join(argv...))
}

func (p *Pipeline) printPreview(path string) {
	fmt.Fprintf(p.Stdout, "%s\n\n", ui.Rule())
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(p.Stdout, "(input file preview skipped)")
	} else {
		fmt.Fprintln(p.Stdout, string(data))
	}
	fmt.Fprintf(p.Stdout, "\n%s\n\n", ui.Rule())
}

func (p *Pipeline) recordHistory(ctx context.Context, s settings.Settings, stem, output string) {
	if p.History == nil {
		return
	}
	workdir, err := os.Getwd()
	if err != nil {
		workdir = ""
	}
	workdir = strings.TrimPrefix(workdir, p.Log.JobRoot)
	err = p.History.Record(ctx, history.Submission{
		SubmittedAt: p.now(),
		JobName:     stem,
		Queue:       s.Queue,
		Cores:       s.Cores,
		MemoryMB:    s.MemoryMB,
		Walltime:    s.Walltime,
		Output:      output,
		Workdir:     workdir,
	})
	if err != nil {
		fmt.Fprintf(p.Stderr, "warning: %v\n", err)
	}
}
