// SPDX-License-Identifier: AGPL-3.0-or-later
package cmd

import "github.com/spf13/pflag"

// applyValue routes every occurrence of a value-carrying option through its
// apply function as pflag parses it, preserving argv order across options.
type applyValue struct {
	apply func(string) error
}

func (v *applyValue) String() string { return "" }

func (v *applyValue) Set(value string) error { return v.apply(value) }

func (v *applyValue) Type() string { return "string" }

// toggleValue is a boolean option that fires its apply function when seen.
type toggleValue struct {
	apply func()
}

func (v *toggleValue) String() string { return "false" }

func (v *toggleValue) Set(string) error {
	v.apply()
	return nil
}

func (v *toggleValue) Type() string { return "bool" }

func stringFlag(flags *pflag.FlagSet, name, shorthand string, apply func(string) error) {
	flags.VarP(&applyValue{apply: apply}, name, shorthand, "")
}

func toggleFlag(flags *pflag.FlagSet, name, shorthand string, apply func()) {
	flags.VarP(&toggleValue{apply: apply}, name, shorthand, "")
	flag := flags.Lookup(name)
	flag.NoOptDefVal = "true"
}
