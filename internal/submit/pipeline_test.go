// SPDX-License-Identifier: AGPL-3.0-or-later
package submit

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/gsub-org/gsub/internal/directive"
	"github.com/gsub-org/gsub/internal/joblog"
	"github.com/gsub-org/gsub/internal/paths"
	"github.com/gsub-org/gsub/internal/scheduler"
	"github.com/gsub-org/gsub/internal/settings"
)

type stubScheduler struct {
	outcome scheduler.Outcome
	calls   [][]string
}

func (s *stubScheduler) Submit(_ context.Context, argv []string) scheduler.Outcome {
	call := make([]string, len(argv))
	copy(call, argv)
	s.calls = append(s.calls, call)
	return s.outcome
}

// guardReader fails the test on any read; quiet submissions must never
// touch standard input.
type guardReader struct{ t *testing.T }

func (g guardReader) Read([]byte) (int, error) {
	g.t.Fatalf("pipeline read from stdin in quiet mode")
	return 0, nil
}

type fixture struct {
	pipeline *Pipeline
	sched    *stubScheduler
	script   string
	dir      string
	stdout   *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	script := filepath.Join(dir, ".rng")
	if err := os.WriteFile(script, []byte(paths.DefaultScriptTemplate), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	sched := &stubScheduler{outcome: scheduler.Outcome{Succeeded: true, Output: "7197851.pbs"}}
	stdout := &bytes.Buffer{}
	p := &Pipeline{
		Kind:      GaussianPBS{ScriptPath: script},
		Scheduler: sched,
		Log: joblog.Logger{
			Path:     filepath.Join(dir, ".wlog"),
			FullPath: filepath.Join(dir, ".wulog"),
			JobRoot:  "/work/gd2613/jobs/",
			Now:      func() time.Time { return time.Date(2024, 3, 7, 14, 5, 0, 0, time.UTC) },
		},
		Stdin:  guardReader{t: t},
		Stdout: stdout,
		Stderr: &bytes.Buffer{},
		Now:    func() time.Time { return time.Date(2024, 3, 7, 14, 5, 0, 0, time.UTC) },
	}
	return &fixture{pipeline: p, sched: sched, script: script, dir: dir, stdout: stdout}
}

func (f *fixture) writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func TestRunQuietEndToEnd(t *testing.T) {
	f := newFixture(t)
	input := f.writeInput(t, "water.com", "# opt\n\nwater\n\n0 1\n")
	s := settings.Defaults().WithCores(4).WithMemoryMB(8000)

	if err := f.pipeline.Run(context.Background(), []string{input}, s); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Input file gained its directives as the first three lines.
	lines, err := directive.ReadLines(input)
	if err != nil {
		t.Fatalf("read input: %v", err)
	}
	want := []string{"%mem=6000MB", "%nprocshared=4", "%chk=water.chk"}
	if !reflect.DeepEqual(lines[:3], want) {
		t.Fatalf("input header = %v, want %v", lines[:3], want)
	}

	// Submission script was rewritten before the submission.
	scriptContent, err := os.ReadFile(f.script)
	if err != nil {
		t.Fatalf("read script: %v", err)
	}
	if !strings.Contains(string(scriptContent), "#PBS -lselect=1:ncpus=4:mem=8000MB") {
		t.Fatalf("script resource line missing:\n%s", scriptContent)
	}

	// The scheduler saw exactly one command carrying the job name.
	if len(f.sched.calls) != 1 {
		t.Fatalf("expected 1 submission, got %d", len(f.sched.calls))
	}
	wantArgv := []string{"qsub", "-N", "water", "-v", "in=water", f.script}
	if !reflect.DeepEqual(f.sched.calls[0], wantArgv) {
		t.Fatalf("argv = %v, want %v", f.sched.calls[0], wantArgv)
	}

	// One entry in each log.
	for _, logPath := range []string{f.pipeline.Log.Path, f.pipeline.Log.FullPath} {
		data, err := os.ReadFile(logPath)
		if err != nil {
			t.Fatalf("read log %s: %v", logPath, err)
		}
		if !strings.Contains(string(data), "07/03 - 14:05 | 7197851.pbs | water | ") {
			t.Fatalf("log %s = %q", logPath, data)
		}
		if strings.Count(string(data), "\n") != 1 {
			t.Fatalf("expected a single entry in %s: %q", logPath, data)
		}
	}

	if !strings.Contains(f.stdout.String(), "Work sent") {
		t.Fatalf("missing success banner:\n%s", f.stdout.String())
	}
}

func TestRunDryRunSkipsSchedulerAndLog(t *testing.T) {
	f := newFixture(t)
	input := f.writeInput(t, "water.com", "0 1\n")
	s := settings.Defaults().WithDryRun(true).WithShowSummary(true)

	if err := f.pipeline.Run(context.Background(), []string{input}, s); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(f.sched.calls) != 0 {
		t.Fatalf("scheduler called on dry-run: %v", f.sched.calls)
	}
	if _, err := os.Stat(f.pipeline.Log.Path); !os.IsNotExist(err) {
		data, _ := os.ReadFile(f.pipeline.Log.Path)
		if len(data) != 0 {
			t.Fatalf("log written on dry-run: %q", data)
		}
	}
	out := f.stdout.String()
	if !strings.Contains(out, "qsub -N water -v in=water") {
		t.Fatalf("command not printed:\n%s", out)
	}
	if !strings.Contains(out, "Dry-run: qsub command not executed.") {
		t.Fatalf("dry-run note missing:\n%s", out)
	}
}

func TestRunResolvesMissingExtension(t *testing.T) {
	f := newFixture(t)
	f.writeInput(t, "water.com", "0 1\n")

	bare := filepath.Join(f.dir, "water")
	if err := f.pipeline.Run(context.Background(), []string{bare}, settings.Defaults()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(f.sched.calls) != 1 {
		t.Fatalf("expected 1 submission, got %d", len(f.sched.calls))
	}
}

func TestRunMissingFileIsFatal(t *testing.T) {
	f := newFixture(t)
	first := filepath.Join(f.dir, "absent.com")
	second := f.writeInput(t, "later.com", "0 1\n")

	err := f.pipeline.Run(context.Background(), []string{first, second}, settings.Defaults())
	if err == nil || !strings.Contains(err.Error(), "does not exists") {
		t.Fatalf("expected fatal missing-file error, got %v", err)
	}
	// Fail-fast: the rest of the batch is not submitted.
	if len(f.sched.calls) != 0 {
		t.Fatalf("batch continued after fatal error: %v", f.sched.calls)
	}
}

func TestRunWrongExtensionIsFatal(t *testing.T) {
	f := newFixture(t)
	bad := f.writeInput(t, "notes.txt", "hello\n")

	err := f.pipeline.Run(context.Background(), []string{bad}, settings.Defaults())
	if err == nil || !strings.Contains(err.Error(), "is not a com file") {
		t.Fatalf("expected wrong-extension error, got %v", err)
	}
}

func TestRunSchedulerFailureContinuesBatch(t *testing.T) {
	f := newFixture(t)
	f.sched.outcome = scheduler.Outcome{Succeeded: false, Output: "qsub: rejected"}
	first := f.writeInput(t, "water.com", "0 1\n")
	second := f.writeInput(t, "ethanol.com", "0 1\n")

	if err := f.pipeline.Run(context.Background(), []string{first, second}, settings.Defaults()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(f.sched.calls) != 2 {
		t.Fatalf("expected both files submitted, got %d", len(f.sched.calls))
	}
	if data, _ := os.ReadFile(f.pipeline.Log.Path); len(data) != 0 {
		t.Fatalf("failed submissions must not be logged: %q", data)
	}
	if !strings.Contains(f.stdout.String(), "Submission failed") {
		t.Fatalf("failure banner missing:\n%s", f.stdout.String())
	}
}

func TestRunDeclinedConfirmationSkipsFileOnly(t *testing.T) {
	f := newFixture(t)
	first := f.writeInput(t, "water.com", "0 1\n")
	second := f.writeInput(t, "ethanol.com", "0 1\n")

	f.pipeline.Stdin = strings.NewReader("no\nyes\n")
	s := settings.Defaults().WithQuiet(false).WithShowSummary(true)

	if err := f.pipeline.Run(context.Background(), []string{first, second}, s); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(f.sched.calls) != 1 {
		t.Fatalf("expected only the confirmed file, got %d", len(f.sched.calls))
	}
	if !strings.HasSuffix(f.sched.calls[0][len(f.sched.calls[0])-1], ".rng") {
		t.Fatalf("argv = %v", f.sched.calls[0])
	}
	if !strings.Contains(f.stdout.String(), "Work aborted") {
		t.Fatalf("abort banner missing:\n%s", f.stdout.String())
	}
}

func TestConfirmPreviewShowsFileAndCommand(t *testing.T) {
	f := newFixture(t)
	input := f.writeInput(t, "water.com", "%chk=water.chk\n0 1\n")
	f.pipeline.Stdin = strings.NewReader("y\n")

	s := settings.Defaults().WithQuiet(false)
	if err := f.pipeline.Run(context.Background(), []string{input}, s); err != nil {
		t.Fatalf("Run: %v", err)
	}
	out := f.stdout.String()
	for _, fragment := range []string{
		"Job overview for water.com",
		"%chk=water.chk",
		"Command    : qsub -N water -v in=water",
		"Are you sure? [y/N]",
	} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("preview missing %q:\n%s", fragment, out)
		}
	}
	if len(f.sched.calls) != 1 {
		t.Fatalf("confirmed file not submitted")
	}
}
