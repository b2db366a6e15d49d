package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

const (
	groupAuth      = "authentication"
	groupWorkspace = "workspace"
	groupAsset     = "asset"
	groupVCS       = "version control"
	groupBranch    = "branch"
	groupConfig    = "configuration"
)

var commandGroups = []string{groupAuth, groupWorkspace, groupAsset, groupVCS, groupBranch, groupConfig}

// commandTable is every command the CLI dispatches, in help order.
func commandTable() []commandSpec {
	var specs []commandSpec
	specs = append(specs, authCommands()...)
	specs = append(specs, workspaceCommands()...)
	specs = append(specs, assetCommands()...)
	specs = append(specs, vcsCommands()...)
	specs = append(specs, branchCommands()...)
	specs = append(specs, configCommands()...)
	specs = append(specs, helpCommand())
	return specs
}

func newRootCommand(app *commandContext) (*cobra.Command, error) {
	specs := commandTable()
	if err := validateSpecs(specs); err != nil {
		return nil, err
	}

	rootCmd := &cobra.Command{
		Use:           "bilrost",
		Short:         "Bilrost CLI",
		Long:          "Bilrost CLI v" + version + "\n\nCommand line front end for Bilrost workspaces, assets and version control.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return &UnknownCommandError{Args: args}
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.resolveOptions()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	bindGlobalFlags(rootCmd.PersistentFlags(), app)

	for _, id := range commandGroups {
		rootCmd.AddGroup(&cobra.Group{ID: id, Title: groupTitle(id)})
	}
	for _, spec := range specs {
		cmd := buildCommand(app, spec)
		if spec.name == "help" {
			rootCmd.SetHelpCommand(cmd)
			continue
		}
		rootCmd.AddCommand(cmd)
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	return rootCmd, nil
}

// globalFlags are inherited by every command, so no command option may
// reuse their names or shorthands. cobra adds help/-h to each command.
var globalFlags = []optionSpec{
	{name: "pwd", short: "P"},
	{name: "output", short: "O"},
	{name: "bilrost-output", short: "B"},
	{name: "config"},
	{name: "help", short: "h"},
}

func bindGlobalFlags(flags *pflag.FlagSet, app *commandContext) {
	flags.StringVarP(&app.pwdFlag, "pwd", "P", "", "Path of the folder to parse, relative to the current directory")
	flags.StringVarP(&app.opts.Output, "output", "O", "", "Write console output to <filename>.log")
	flags.BoolVarP(&app.opts.ServiceOutput, "bilrost-output", "B", false, "Display the Bilrost service output")
	flags.StringVar(&app.opts.ConfigPath, "config", "", "Configuration file path")
}

// execute runs one CLI invocation and returns the process exit code.
func (c *commandContext) execute(ctx context.Context, args []string) int {
	rootCmd, err := newRootCommand(c)
	if err != nil {
		fmt.Fprintf(c.stderr, "error: %v\n", err)
		return 1
	}
	rootCmd.SetArgs(args)
	rootCmd.SetIn(c.stdin)
	rootCmd.SetOut(c.stdout)
	rootCmd.SetErr(c.stderr)

	err = rootCmd.ExecuteContext(ctx)
	code := reportError(c.errorWriter(), err)
	c.close()
	return code
}

// errorWriter follows the console redirect so failures land in the log file.
func (c *commandContext) errorWriter() *consoleErrorWriter {
	return &consoleErrorWriter{app: c}
}

type consoleErrorWriter struct {
	app *commandContext
}

func (w *consoleErrorWriter) Write(p []byte) (int, error) {
	if w.app.console.Path() == "" {
		return w.app.stderr.Write(p)
	}
	w.app.console.Error("%s", p)
	return len(p), nil
}
