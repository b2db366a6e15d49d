package main

import (
	"context"

	"github.com/spf13/cobra"

	"bilrost/internal/backend"
)

func configCommands() []commandSpec {
	return []commandSpec{
		{
			name:  "get-config",
			group: groupConfig,
			args:  "<name>",
			arity: cobra.ExactArgs(1),
			short: "Get configuration value",
			run: func(ctx context.Context, app *commandContext, inv *invocation) error {
				return app.call(func(a backend.Actions) (any, error) { return a.GetConfig(ctx, inv.Arg(0)) })
			},
		},
		{
			name:  "get-configs",
			group: groupConfig,
			short: "Get all configuration values",
			run: func(ctx context.Context, app *commandContext, _ *invocation) error {
				return app.call(func(a backend.Actions) (any, error) { return a.GetConfigs(ctx) })
			},
		},
		{
			name:  "set-config",
			group: groupConfig,
			args:  "<name> <value>",
			arity: cobra.ExactArgs(2),
			short: "Set a new configuration value",
			run: func(ctx context.Context, app *commandContext, inv *invocation) error {
				return app.call(func(a backend.Actions) (any, error) { return a.SetConfig(ctx, inv.Arg(0), inv.Arg(1)) })
			},
		},
		{
			name:  "del-config",
			group: groupConfig,
			args:  "<name>",
			arity: cobra.ExactArgs(1),
			short: "Reset a configuration value",
			run: func(ctx context.Context, app *commandContext, inv *invocation) error {
				return app.call(func(a backend.Actions) (any, error) { return a.DelConfig(ctx, inv.Arg(0)) })
			},
		},
	}
}
