package main

import (
	"context"

	"github.com/spf13/cobra"

	"bilrost/internal/backend"
	"bilrost/internal/pushfolder"
	"bilrost/internal/refs"
)

func vcsCommands() []commandSpec {
	identifierOnly := []optionSpec{identifierOption}
	return []commandSpec{
		{
			name:    "list-subscriptions",
			aliases: []string{"ls-subscriptions"},
			group:   groupVCS,
			options: identifierOnly,
			short:   "List subscriptions",
			run: func(ctx context.Context, app *commandContext, inv *invocation) error {
				return app.withBackend(ctx, inv, func(a backend.Actions, id string) (any, error) {
					return a.ListSubscriptions(ctx, id)
				})
			},
		},
		{
			name:    "subscribe",
			group:   groupVCS,
			args:    "<asset_reference>",
			arity:   cobra.ExactArgs(1),
			options: identifierOnly,
			short:   "Subscribe to an asset",
			example: "  bilrost subscribe /assets/foo",
			run: func(ctx context.Context, app *commandContext, inv *invocation) error {
				ref := refs.AssetRef(inv.Arg(0))
				return app.withBackend(ctx, inv, func(a backend.Actions, id string) (any, error) {
					return a.Subscribe(ctx, id, backend.SubscriptionAsset, ref)
				})
			},
		},
		{
			name:    "unsubscribe",
			group:   groupVCS,
			args:    "<asset_reference>",
			arity:   cobra.ExactArgs(1),
			options: identifierOnly,
			short:   "Unsubscribe from an asset",
			run: func(ctx context.Context, app *commandContext, inv *invocation) error {
				ref := refs.AssetRef(inv.Arg(0))
				return app.withBackend(ctx, inv, func(a backend.Actions, id string) (any, error) {
					return a.Unsubscribe(ctx, id, ref)
				})
			},
		},
		{
			name:    "reset-subscriptions",
			group:   groupVCS,
			options: identifierOnly,
			short:   "Remove every subscription",
			run: func(ctx context.Context, app *commandContext, inv *invocation) error {
				return app.withBackend(ctx, inv, func(a backend.Actions, id string) (any, error) {
					return a.ResetSubscriptions(ctx, id)
				})
			},
		},
		{
			name:    "list-stage",
			aliases: []string{"ls-stage"},
			group:   groupVCS,
			options: identifierOnly,
			short:   "List staged assets",
			run: func(ctx context.Context, app *commandContext, inv *invocation) error {
				return app.withBackend(ctx, inv, func(a backend.Actions, id string) (any, error) {
					return a.ListStage(ctx, id)
				})
			},
		},
		{
			name:    "stage",
			group:   groupVCS,
			args:    "<asset_reference>",
			arity:   cobra.ExactArgs(1),
			options: identifierOnly,
			short:   "Stage an asset",
			run: func(ctx context.Context, app *commandContext, inv *invocation) error {
				ref := refs.AssetRef(inv.Arg(0))
				return app.withBackend(ctx, inv, func(a backend.Actions, id string) (any, error) {
					return a.Stage(ctx, id, ref)
				})
			},
		},
		{
			name:    "unstage",
			group:   groupVCS,
			args:    "<asset_reference>",
			arity:   cobra.ExactArgs(1),
			options: identifierOnly,
			short:   "Unstage an asset",
			run: func(ctx context.Context, app *commandContext, inv *invocation) error {
				ref := refs.AssetRef(inv.Arg(0))
				return app.withBackend(ctx, inv, func(a backend.Actions, id string) (any, error) {
					return a.Unstage(ctx, id, ref)
				})
			},
		},
		{
			name:    "reset-stage",
			group:   groupVCS,
			options: identifierOnly,
			short:   "Unstage everything",
			run: func(ctx context.Context, app *commandContext, inv *invocation) error {
				return app.withBackend(ctx, inv, func(a backend.Actions, id string) (any, error) {
					return a.ResetStage(ctx, id)
				})
			},
		},
		{
			name:  "status",
			group: groupVCS,
			options: []optionSpec{
				identifierOption,
				{name: "reference", short: "r", kind: optString, usage: "resource reference"},
			},
			short: "Print workspace, resource or asset statuses",
			run: func(ctx context.Context, app *commandContext, inv *invocation) error {
				ref := ""
				if r := inv.String("reference"); r != "" {
					ref = refs.ResourceRef(r)
				}
				return app.withBackend(ctx, inv, func(a backend.Actions, id string) (any, error) {
					return a.Status(ctx, id, ref)
				})
			},
		},
		{
			name:    "push",
			group:   groupVCS,
			args:    "<commit_comment>",
			arity:   cobra.ExactArgs(1),
			options: identifierOnly,
			short:   "Push staged items",
			run: func(ctx context.Context, app *commandContext, inv *invocation) error {
				return app.withBackend(ctx, inv, func(a backend.Actions, id string) (any, error) {
					return a.Push(ctx, id, inv.Arg(0))
				})
			},
		},
		{
			name:    "push-folder-asset",
			group:   groupVCS,
			args:    "<reference> <directory_relative_path>",
			arity:   cobra.ExactArgs(2),
			options: identifierOnly,
			short:   "Push a folder asset",
			long:    "Version every file of a directory as one asset: a fast way to version a directory.",
			example: "  bilrost push-folder-asset /assets/duck ./duck",
			run:     runPushFolderAsset,
		},
	}
}

func runPushFolderAsset(ctx context.Context, app *commandContext, inv *invocation) error {
	loc, err := app.locator()
	if err != nil {
		return err
	}
	return app.withBackend(ctx, inv, func(a backend.Actions, id string) (any, error) {
		wf := &pushfolder.Workflow{Actions: a, Workspaces: loc, Logger: app.diagnostics()}
		return wf.Run(ctx, pushfolder.Request{
			Identifier: id,
			Reference:  inv.Arg(0),
			Dir:        refs.ResolvePath(app.opts.Pwd, inv.Arg(1)),
		})
	})
}
