package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

type optionKind int

const (
	optString optionKind = iota
	optBool
	optList
)

type optionSpec struct {
	name  string
	short string
	kind  optionKind
	usage string
}

type commandSpec struct {
	name    string
	aliases []string
	group   string
	// args is the positional usage, for example "<reference> [relative_path]".
	args    string
	arity   cobra.PositionalArgs
	options []optionSpec
	short   string
	long    string
	example string
	// confirm, when set, is shown before the action runs unless --force is given.
	confirm string
	// unsupervised actions run without ensuring the service is up.
	unsupervised bool
	run          func(ctx context.Context, app *commandContext, inv *invocation) error
}

// Shared option declarations.
var (
	identifierOption = optionSpec{name: "identifier", short: "i", kind: optString, usage: "workspace identifier"}
	verboseOption    = optionSpec{name: "verbose", short: "v", kind: optBool, usage: "verbose"}
	forceOption      = optionSpec{name: "force", short: "f", kind: optBool, usage: "skip the confirmation prompt"}
)

// validateSpecs rejects tables where two commands share a name or alias.
func validateSpecs(specs []commandSpec) error {
	seen := make(map[string]string, len(specs))
	for _, spec := range specs {
		if spec.name == "" {
			return fmt.Errorf("command table: entry with empty name")
		}
		if spec.run == nil {
			return fmt.Errorf("command table: %s has no action", spec.name)
		}
		for _, key := range append([]string{spec.name}, spec.aliases...) {
			if owner, dup := seen[key]; dup {
				return fmt.Errorf("command table: %q used by both %s and %s", key, owner, spec.name)
			}
			seen[key] = spec.name
		}
		flags := map[string]string{}
		for _, opt := range globalFlags {
			flags[opt.name] = "global"
			if opt.short != "" {
				flags["-"+opt.short] = "global"
			}
		}
		for _, opt := range spec.options {
			for _, key := range []string{opt.name, "-" + opt.short} {
				if key == "-" {
					continue
				}
				if owner, dup := flags[key]; dup {
					return fmt.Errorf("command table: %s option %q clashes with %s flag %q", spec.name, opt.name, owner, key)
				}
				flags[key] = spec.name
			}
		}
	}
	return nil
}

func buildCommand(app *commandContext, spec commandSpec) *cobra.Command {
	use := spec.name
	if spec.args != "" {
		use += " " + spec.args
	}
	arity := spec.arity
	if arity == nil {
		arity = cobra.NoArgs
	}
	cmd := &cobra.Command{
		Use:     use,
		Aliases: spec.aliases,
		GroupID: spec.group,
		Short:   spec.short,
		Long:    spec.long,
		Example: spec.example,
		Args:    arity,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv := &invocation{cmd: cmd, args: args}
			action := func(ctx context.Context) error {
				if spec.confirm != "" && !inv.Bool("force") {
					ok, err := app.confirm(ctx, spec.confirm)
					if err != nil || !ok {
						return err
					}
				}
				return spec.run(ctx, app, inv)
			}
			if spec.unsupervised {
				return action(cmd.Context())
			}
			sup, err := app.supervisor()
			if err != nil {
				return err
			}
			return sup.EnsureRunning(cmd.Context(), action)
		},
	}
	for _, opt := range spec.options {
		switch opt.kind {
		case optBool:
			cmd.Flags().BoolP(opt.name, opt.short, false, opt.usage)
		case optList:
			cmd.Flags().StringSliceP(opt.name, opt.short, nil, opt.usage+" (comma separated)")
		default:
			cmd.Flags().StringP(opt.name, opt.short, "", opt.usage)
		}
	}
	return cmd
}

// invocation is the parsed form of one command run.
type invocation struct {
	cmd  *cobra.Command
	args []string
}

// Arg returns the i-th positional argument or "" when it was omitted.
func (i *invocation) Arg(n int) string {
	if n < len(i.args) {
		return i.args[n]
	}
	return ""
}

func (i *invocation) String(name string) string {
	if i.cmd.Flags().Lookup(name) == nil {
		return ""
	}
	v, _ := i.cmd.Flags().GetString(name)
	return v
}

func (i *invocation) Bool(name string) bool {
	if i.cmd.Flags().Lookup(name) == nil {
		return false
	}
	v, _ := i.cmd.Flags().GetBool(name)
	return v
}

// List returns a list option and whether it was given at all.
func (i *invocation) List(name string) ([]string, bool) {
	flag := i.cmd.Flags().Lookup(name)
	if flag == nil || !flag.Changed {
		return nil, false
	}
	v, _ := i.cmd.Flags().GetStringSlice(name)
	return v, true
}
