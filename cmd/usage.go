// SPDX-License-Identifier: AGPL-3.0-or-later
package cmd

import (
	"fmt"
	"strings"

	"github.com/gsub-org/gsub/internal/ui"
)

// usageText renders the option reference shown by --help and by an empty
// file list.
func usageText() string {
	h := ui.Heading.Render
	o := ui.Option.Render
	var b strings.Builder

	b.WriteString("\ngsub v1.2\n\n")
	fmt.Fprintf(&b, "%s\n        gsub\n\n", h("NAME"))
	fmt.Fprintf(&b, "%s\n        gsub [jobfilename.com]\n        gsub --queue pqph --memory 48GB file1.com file2.com\n\n", h("SYNOPSIS"))
	fmt.Fprintf(&b, "%s\n", h("OPTIONS"))

	options := []struct {
		flags string
		help  string
	}{
		{o("-q") + ", " + o("--queue") + " [cue]", "set the cue for the job, default is pqph"},
		{o("-c") + ", " + o("--cores") + " [cores]", "sets the number of cores, 12 is set as default"},
		{o("-m") + ", " + o("--memory") + " [memory]", "sets the quantity of memory to use (MB or GB)"},
		{o("-w") + ", " + o("--walltime") + " [walltime]", "set the walltime"},
		{o("-g") + ", " + o("--gaussian-version") + " [gaussian version]", "sets the version of gaussian in use (e.g. d01)"},
		{o("-s") + ", " + o("--quiet"), "send directly the job (default behaviour)"},
		{o("-i") + ", " + o("--prompt"), "review the input interactively before submission"},
		{o("-p") + ", " + o("--preset") + " [preset]", "preset =\n                        [0-9]   load a preset\n                        show    list the saved preset\n                        set     open the editor to set the preset"},
		{o("-d") + ", " + o("--maxdisk") + " [max disk]", "set the maxdisk"},
		{o("-n") + ", " + o("--no-correction"), "no correction of the input file"},
		{o("-f") + ", " + o("--force"), "submit with priority (qsub -p 100)"},
		{o("-l") + ", " + o("--logs") + " [select]", "select =\n                        all\n                        work ID (e.g. '7197851')\n                prints the log of the jobs sent"},
		{o("--history") + " [count]", "prints the last submissions recorded in the history"},
		{o("-r") + ", " + o("--dry-run"), "show the qsub command instead of submitting"},
		{o("--show-summary"), "print a short job overview even in quiet mode"},
		{o("-h") + ", " + o("--help"), "help"},
	}
	for _, opt := range options {
		fmt.Fprintf(&b, "        %s\n                %s\n", opt.flags, opt.help)
	}

	fmt.Fprintf(&b, "\n%s\n", h("DESCRIPTION"))
	b.WriteString(`This function sends the jobs to the HPC.
It also corrects the settings of your file automatically.
In the input file the checkpoint filename is set equally to the input filename,
the number of cores is set coherently to the input as the memory. This automatic
correction can be disabled by -n option.
`)
	return b.String()
}
