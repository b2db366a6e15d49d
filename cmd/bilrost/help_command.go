package main

import (
	"context"

	"github.com/spf13/cobra"
)

func helpCommand() commandSpec {
	return commandSpec{
		name:         "help",
		args:         "[command]",
		arity:        cobra.ArbitraryArgs,
		short:        "Display help for bilrost or one of its commands",
		unsupervised: true,
		run: func(_ context.Context, _ *commandContext, inv *invocation) error {
			root := inv.cmd.Root()
			if len(inv.args) == 0 {
				return root.Help()
			}
			target, rest, err := root.Find(inv.args)
			if err != nil || target == nil || target == root || len(rest) > 0 {
				return &UnknownCommandError{Args: inv.args}
			}
			return target.Help()
		},
	}
}
