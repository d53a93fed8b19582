// SPDX-License-Identifier: AGPL-3.0-or-later
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gsub-org/gsub/internal/history"
	"github.com/gsub-org/gsub/internal/joblog"
	"github.com/gsub-org/gsub/internal/paths"
	"github.com/gsub-org/gsub/internal/preset"
	"github.com/gsub-org/gsub/internal/scheduler"
	"github.com/gsub-org/gsub/internal/settings"
	"github.com/gsub-org/gsub/internal/siteconfig"
	"github.com/gsub-org/gsub/internal/submit"
	"github.com/gsub-org/gsub/internal/units"
)

// cliState carries the configuration chain while flags are applied in argv
// order. Each override derives a fresh Settings value; a short-circuit flag
// (--logs, --preset show/set, --history) records a pending action handled
// before any file is touched.
type cliState struct {
	settings settings.Settings
	presets  preset.Store
	config   siteconfig.Config
	stderr   io.Writer

	logsSelector  string
	logsRequested bool
	presetAction  string // "show" or "set"
	historyLimit  int
	historyWanted bool
}

func Execute() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(argv []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if err := paths.Bootstrap(); err != nil {
		return err
	}
	cfg, err := siteconfig.Load(paths.ConfigFile())
	if err != nil {
		return err
	}
	initial, err := cfg.ApplyDefaults(settings.Defaults())
	if err != nil {
		return err
	}

	st := &cliState{
		settings: initial,
		presets:  preset.Store{Path: paths.PresetsFile()},
		config:   cfg,
		stderr:   stderr,
	}
	root := newRootCmd(st)
	root.SetArgs(argv)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.Execute()
}

func newRootCmd(st *cliState) *cobra.Command {
	root := &cobra.Command{
		Use:           "gsub [flags] [jobfile.com ...]",
		Short:         "Submit Gaussian jobs to the PBS cluster",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return st.dispatch(cmd.Context(), cmd, args)
		},
	}
	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		fmt.Fprint(cmd.OutOrStdout(), usageText())
	})
	root.SetUsageFunc(func(cmd *cobra.Command) error {
		fmt.Fprint(cmd.OutOrStdout(), usageText())
		return nil
	})
	addFlags(root.Flags(), st)
	return root
}

// addFlags registers every option as a custom pflag value so overrides and
// presets apply strictly left to right over the token stream.
func addFlags(flags *pflag.FlagSet, st *cliState) {
	stringFlag(flags, "queue", "q", st.applyQueue)
	stringFlag(flags, "cue", "", st.applyQueue)
	stringFlag(flags, "cores", "c", st.applyCores)
	stringFlag(flags, "nproc", "", st.applyCores)
	stringFlag(flags, "memory", "m", st.applyMemory)
	stringFlag(flags, "mem", "", st.applyMemory)
	stringFlag(flags, "walltime", "w", st.applyWalltime)
	stringFlag(flags, "gaussian-version", "g", st.applyVersion)
	stringFlag(flags, "gauss", "", st.applyVersion)
	stringFlag(flags, "maxdisk", "d", st.applyMaxDisk)
	stringFlag(flags, "preset", "p", st.applyPreset)
	stringFlag(flags, "presets", "", st.applyPreset)
	stringFlag(flags, "logs", "l", st.applyLogs)
	stringFlag(flags, "history", "", st.applyHistory)
	// a bare --history defaults to the last 20 submissions
	flags.Lookup("history").NoOptDefVal = "20"

	toggleFlag(flags, "quiet", "s", func() {
		st.settings = st.settings.WithQuiet(true)
	})
	toggleFlag(flags, "prompt", "i", func() {
		st.settings = st.settings.WithQuiet(false).WithShowSummary(true)
	})
	toggleFlag(flags, "interactive", "", func() {
		st.settings = st.settings.WithQuiet(false).WithShowSummary(true)
	})
	toggleFlag(flags, "dry-run", "r", func() {
		st.settings = st.settings.WithDryRun(true).WithShowSummary(true)
	})
	toggleFlag(flags, "show-summary", "", func() {
		st.settings = st.settings.WithShowSummary(true)
	})
	toggleFlag(flags, "no-correction", "n", func() {
		st.settings = st.settings.WithCorrection(false)
	})
	toggleFlag(flags, "force", "f", func() {
		st.settings = st.settings.WithForcePriority(true)
	})
}

func (st *cliState) applyQueue(value string) error {
	st.settings = st.settings.WithQueue(value)
	return nil
}

func (st *cliState) applyCores(value string) error {
	cores, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("invalid core count %q", value)
	}
	st.settings = st.settings.WithCores(cores)
	return nil
}

func (st *cliState) applyMemory(value string) error {
	mb, err := units.ParseMB(value, st.settings.MemoryMB)
	if err != nil {
		return err
	}
	st.settings = st.settings.WithMemoryMB(mb)
	return nil
}

func (st *cliState) applyWalltime(value string) error {
	st.settings = st.settings.WithWalltime(value)
	return nil
}

func (st *cliState) applyVersion(value string) error {
	st.settings = st.settings.WithGaussianVersion(value)
	return nil
}

func (st *cliState) applyMaxDisk(value string) error {
	mb, err := units.ParseMB(value, st.settings.MaxDiskMB)
	if err != nil {
		return err
	}
	st.settings = st.settings.WithMaxDiskMB(mb)
	return nil
}

// applyPreset resolves a numeric preset at its position in the token
// stream, so a later explicit flag still overrides it. The show/set verbs
// are deferred to dispatch.
func (st *cliState) applyPreset(value string) error {
	switch strings.ToLower(value) {
	case "show":
		st.presetAction = "show"
		return nil
	case "set":
		st.presetAction = "set"
		return nil
	}
	index, err := strconv.Atoi(value)
	if err != nil {
		return st.presetFailure(fmt.Errorf("invalid preset identifier: %s", value))
	}
	p, err := st.presets.Get(index)
	if err != nil {
		if errors.Is(err, preset.ErrNotFound) {
			return st.presetFailure(err)
		}
		return err
	}
	st.settings = st.settings.ApplyPreset(index, p)
	return nil
}

// presetFailure prints the valid preset listing as a hint before failing.
func (st *cliState) presetFailure(cause error) error {
	w := st.stderr
	if w == nil {
		w = os.Stderr
	}
	if listing, err := st.presets.Format(); err == nil {
		fmt.Fprint(w, listing)
	}
	return cause
}

func (st *cliState) applyLogs(selector string) error {
	st.logsSelector = selector
	st.logsRequested = true
	return nil
}

func (st *cliState) applyHistory(value string) error {
	limit, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || limit < 0 {
		return fmt.Errorf("invalid history limit %q", value)
	}
	st.historyLimit = limit
	st.historyWanted = true
	return nil
}

func (st *cliState) logger() joblog.Logger {
	return joblog.Logger{
		Path:     paths.LogFile(),
		FullPath: paths.FullLogFile(),
		JobRoot:  st.config.JobRootPrefix(),
	}
}

// dispatch handles the short-circuit actions, then hands the file list to
// the submission pipeline.
func (st *cliState) dispatch(ctx context.Context, cmd *cobra.Command, files []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	if st.logsRequested {
		text, err := st.logger().Show(st.logsSelector)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, text)
		return nil
	}
	switch st.presetAction {
	case "show":
		listing, err := st.presets.Format()
		if err != nil {
			return err
		}
		fmt.Fprint(out, listing)
		return nil
	case "set":
		return st.presets.Edit(st.config.Editor)
	}
	if st.historyWanted {
		db, err := history.Open(ctx, paths.HistoryFile())
		if err != nil {
			return err
		}
		defer db.Close()
		subs, err := db.Recent(ctx, st.historyLimit)
		if err != nil {
			return err
		}
		fmt.Fprint(out, history.Format(subs))
		return nil
	}

	if len(files) == 0 {
		fmt.Fprint(out, usageText())
		return nil
	}

	var db *history.DB
	if opened, err := history.Open(ctx, paths.HistoryFile()); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	} else {
		db = opened
		defer db.Close()
	}

	pipeline := &submit.Pipeline{
		Kind: submit.GaussianPBS{
			ScriptPath:   paths.ScriptFile(),
			SchedulerBin: st.config.SchedulerBin(),
		},
		Scheduler: scheduler.PBS{},
		Log:       st.logger(),
		History:   db,
		Stdin:     cmd.InOrStdin(),
		Stdout:    out,
		Stderr:    cmd.ErrOrStderr(),
	}
	return pipeline.Run(ctx, files, st.settings)
}
