package main

import (
	"context"

	"github.com/spf13/cobra"

	"bilrost/internal/assetdef"
	"bilrost/internal/backend"
	"bilrost/internal/refs"
)

func assetCommands() []commandSpec {
	return []commandSpec{
		{
			name:    "list-assets",
			aliases: []string{"ls-assets"},
			group:   groupAsset,
			args:    "[asset_reference]",
			arity:   cobra.MaximumNArgs(1),
			options: []optionSpec{identifierOption, verboseOption},
			short:   "List assets",
			example: "  bilrost list-assets\n  bilrost list-assets levels/",
			run: func(ctx context.Context, app *commandContext, inv *invocation) error {
				ref := ""
				if len(inv.args) > 0 {
					ref = refs.AssetRef(inv.Arg(0))
				}
				return app.withBackend(ctx, inv, func(a backend.Actions, id string) (any, error) {
					return a.ListAssets(ctx, id, ref, inv.Bool("verbose"))
				})
			},
		},
		{
			name:  "create-asset",
			group: groupAsset,
			args:  "<reference>",
			arity: cobra.ExactArgs(1),
			options: []optionSpec{
				identifierOption,
				{name: "definition-path", short: "p", kind: optString, usage: "JSON or YAML file with the asset definition"},
			},
			short:   "Create an asset",
			example: "  bilrost create-asset duck\n  bilrost create-asset duck -p duck.yaml",
			run:     runCreateAsset,
		},
		{
			name:    "rename-asset",
			group:   groupAsset,
			args:    "<reference> <new_reference>",
			arity:   cobra.ExactArgs(2),
			options: []optionSpec{identifierOption, verboseOption},
			short:   "Rename an asset",
			example: "  bilrost rename-asset old_foo new_foo",
			run: func(ctx context.Context, app *commandContext, inv *invocation) error {
				from, to := refs.AssetRef(inv.Arg(0)), refs.AssetRef(inv.Arg(1))
				return app.withBackend(ctx, inv, func(a backend.Actions, id string) (any, error) {
					result, err := a.RenameAsset(ctx, id, from, to)
					if err != nil || inv.Bool("verbose") {
						return result, err
					}
					return "Asset " + from + " renamed to " + to, nil
				})
			},
		},
		{
			name:  "update-asset",
			group: groupAsset,
			args:  "<asset_reference>",
			arity: cobra.ExactArgs(1),
			options: []optionSpec{
				identifierOption,
				{name: "main", short: "m", kind: optString, usage: "update main resource reference"},
				{name: "add", short: "a", kind: optList, usage: "add resource dependencies"},
				{name: "remove", short: "r", kind: optList, usage: "remove resource dependencies"},
				{name: "comment", short: "c", kind: optString, usage: "set asset comment field"},
			},
			short:   "Update an asset",
			long:    "Update an asset. Resource references given to --main, --add and --remove are resolved under /resources/.",
			example: "  bilrost update-asset duck --main duck/duck.fbx --add duck/a.png,duck/b.png",
			run:     runUpdateAsset,
		},
		{
			name:    "delete-asset",
			group:   groupAsset,
			args:    "<asset_reference>",
			arity:   cobra.ExactArgs(1),
			options: []optionSpec{identifierOption},
			short:   "Delete an asset",
			run: func(ctx context.Context, app *commandContext, inv *invocation) error {
				ref := refs.AssetRef(inv.Arg(0))
				return app.withBackend(ctx, inv, func(a backend.Actions, id string) (any, error) {
					result, err := a.DeleteAsset(ctx, id, ref)
					if err == nil && result == nil {
						return "Asset " + ref + " deleted", nil
					}
					return result, err
				})
			},
		},
		{
			name:    "list-resources",
			aliases: []string{"ls-resources"},
			group:   groupAsset,
			args:    "[ref]",
			arity:   cobra.MaximumNArgs(1),
			options: []optionSpec{
				{name: "query", short: "q", kind: optString, usage: "search query"},
				identifierOption,
			},
			short: "List resources",
			run: func(ctx context.Context, app *commandContext, inv *invocation) error {
				ref := ""
				if len(inv.args) > 0 {
					ref = refs.ResourceRef(inv.Arg(0))
				}
				return app.withBackend(ctx, inv, func(a backend.Actions, id string) (any, error) {
					return a.ListResources(ctx, id, ref, inv.String("query"))
				})
			},
		},
	}
}

func runCreateAsset(ctx context.Context, app *commandContext, inv *invocation) error {
	ref := refs.AssetRef(inv.Arg(0))
	var def backend.AssetDefinition
	if p := inv.String("definition-path"); p != "" {
		loaded, err := assetdef.ReadFile(refs.ResolvePath(app.opts.Pwd, p))
		if err != nil {
			return err
		}
		def = loaded
	}
	return app.withBackend(ctx, inv, func(a backend.Actions, id string) (any, error) {
		return a.CreateAsset(ctx, id, ref, def)
	})
}

func runUpdateAsset(ctx context.Context, app *commandContext, inv *invocation) error {
	ref := refs.AssetRef(inv.Arg(0))

	fields := map[string]any{}
	if main := inv.String("main"); main != "" {
		fields["main"] = main
	}
	if add, ok := inv.List("add"); ok {
		fields["add"] = add
	}
	if remove, ok := inv.List("remove"); ok {
		fields["remove"] = remove
	}
	resolved := refs.ResourceRefsInObject(fields)

	update := backend.AssetUpdate{Comment: inv.String("comment")}
	update.Main, _ = resolved["main"].(string)
	update.Add, _ = resolved["add"].([]string)
	update.Remove, _ = resolved["remove"].([]string)

	return app.withBackend(ctx, inv, func(a backend.Actions, id string) (any, error) {
		return a.UpdateAsset(ctx, id, ref, update)
	})
}
