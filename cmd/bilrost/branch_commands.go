package main

import (
	"context"

	"github.com/spf13/cobra"

	"bilrost/internal/backend"
)

func branchCommands() []commandSpec {
	return []commandSpec{
		{
			name:    "list-branches",
			aliases: []string{"ls-branches"},
			group:   groupBranch,
			options: []optionSpec{identifierOption, verboseOption},
			short:   "List available branches",
			long:    "List available branches.\n\nWithout --verbose the output lists local branches with their status and remote branches by name.",
			run: func(ctx context.Context, app *commandContext, inv *invocation) error {
				return app.withBackend(ctx, inv, func(a backend.Actions, id string) (any, error) {
					return a.ListBranches(ctx, id, inv.Bool("verbose"))
				})
			},
		},
		{
			name:    "current-branch",
			group:   groupBranch,
			options: []optionSpec{identifierOption},
			short:   "Get current branch",
			run: func(ctx context.Context, app *commandContext, inv *invocation) error {
				return app.withBackend(ctx, inv, func(a backend.Actions, id string) (any, error) {
					return a.CurrentBranch(ctx, id)
				})
			},
		},
		{
			name:    "create-branch",
			group:   groupBranch,
			args:    "<branch_name>",
			arity:   cobra.ExactArgs(1),
			options: []optionSpec{identifierOption},
			short:   "Create a branch from the current one",
			run: func(ctx context.Context, app *commandContext, inv *invocation) error {
				return app.withBackend(ctx, inv, func(a backend.Actions, id string) (any, error) {
					return a.CreateBranch(ctx, id, inv.Arg(0))
				})
			},
		},
		{
			name:    "change-branch",
			group:   groupBranch,
			args:    "<branch_name>",
			arity:   cobra.ExactArgs(1),
			options: []optionSpec{identifierOption, forceOption},
			short:   "Change branch",
			long:    "Change branch.\n\nWARNING: you will LOSE your data. All resources will be removed along with subscription and stage lists.",
			confirm: destructivePrompt,
			run: func(ctx context.Context, app *commandContext, inv *invocation) error {
				return app.withBackend(ctx, inv, func(a backend.Actions, id string) (any, error) {
					return a.ChangeBranch(ctx, id, inv.Arg(0))
				})
			},
		},
		{
			name:    "remove-branch",
			group:   groupBranch,
			args:    "<branch_name>",
			arity:   cobra.ExactArgs(1),
			options: []optionSpec{identifierOption},
			short:   "Remove branch",
			run: func(ctx context.Context, app *commandContext, inv *invocation) error {
				return app.withBackend(ctx, inv, func(a backend.Actions, id string) (any, error) {
					return a.RemoveBranch(ctx, id, inv.Arg(0))
				})
			},
		},
	}
}
