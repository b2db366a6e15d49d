package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bilrost/internal/backend"
	"bilrost/internal/favorites"
	"bilrost/internal/refs"
	"bilrost/internal/workspace"
)

func workspaceCommands() []commandSpec {
	return []commandSpec{
		{
			name:    "list-workspaces",
			aliases: []string{"ls-workspaces"},
			group:   groupWorkspace,
			short:   "List workspaces available in the favorite list",
			options: []optionSpec{identifierOption, verboseOption},
			run:     runListWorkspaces,
		},
		{
			name:    "add-workspace",
			aliases: []string{"bookmark"},
			group:   groupWorkspace,
			args:    "<identifier> [relative_path]",
			arity:   cobra.RangeArgs(1, 2),
			short:   "Add workspace to the favorite list with an associated name identifier",
			example: "  bilrost add-workspace my-game ./game",
			run:     runAddWorkspace,
		},
		{
			name:    "forget-workspace",
			aliases: []string{"unbookmark"},
			group:   groupWorkspace,
			args:    "<identifier>",
			arity:   cobra.ExactArgs(1),
			short:   "Forget a workspace from the favorite list",
			run: func(ctx context.Context, app *commandContext, inv *invocation) error {
				reg, err := app.workspaces()
				if err != nil {
					return err
				}
				if err := reg.Remove(ctx, inv.Arg(0)); err != nil {
					return err
				}
				app.console.Info("Workspace %s forgotten", inv.Arg(0))
				return nil
			},
		},
		{
			name:    "forget-workspaces",
			aliases: []string{"unbookmark-all"},
			group:   groupWorkspace,
			short:   "Forget every workspace in the favorite list",
			run: func(ctx context.Context, app *commandContext, _ *invocation) error {
				reg, err := app.workspaces()
				if err != nil {
					return err
				}
				removed, err := reg.RemoveAll(ctx)
				if err != nil {
					return err
				}
				app.console.Info("%d workspace(s) forgotten", removed)
				return nil
			},
		},
		{
			name:    "create-workspace",
			group:   groupWorkspace,
			args:    "<relative_path> <organization> <repository> <branch>",
			arity:   cobra.ExactArgs(4),
			options: []optionSpec{{name: "description", short: "d", kind: optString, usage: "description"}},
			short:   "Create a workspace",
			long:    "Create a workspace. The target directory given by <relative_path> will be created.",
			example: "  bilrost create-workspace folder_name organization_name project_name master",
			run:     runCreateWorkspace,
		},
		{
			name:  "reset-workspace",
			group: groupWorkspace,
			args:  "[workspace_relative_path]",
			arity: cobra.MaximumNArgs(1),
			options: []optionSpec{
				forceOption,
				{name: "silent", short: "s", kind: optBool, usage: "silent error output if workspace not found or invalid"},
			},
			short:   "Reset a workspace",
			long:    "Reset a workspace.\n\nWARNING: you will LOSE some data. All resources, subscription and stage lists are removed.",
			confirm: destructivePrompt,
			run:     runResetWorkspace,
		},
		{
			name:    "delete-workspace",
			aliases: []string{"remove-workspace"},
			group:   groupWorkspace,
			args:    "<relative_path>",
			arity:   cobra.ExactArgs(1),
			options: []optionSpec{identifierOption},
			short:   "Delete a workspace",
			long:    "Delete a workspace.\n\nA workspace cannot be removed while the terminal's working directory is the workspace or one of its children.",
			run:     runDeleteWorkspace,
		},
	}
}

func runListWorkspaces(ctx context.Context, app *commandContext, inv *invocation) error {
	identifier := inv.String("identifier")
	if inv.Bool("verbose") {
		return app.call(func(a backend.Actions) (any, error) {
			return a.ListWorkspaces(ctx, identifier, true)
		})
	}

	reg, err := app.workspaces()
	if err != nil {
		return err
	}
	registered, err := reg.List(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(registered))
	for _, ws := range registered {
		if identifier != "" && !ws.Matches(identifier) {
			continue
		}
		rows = append(rows, []string{ws.Identifier(), ws.Path, ws.URL})
	}
	if identifier != "" && len(rows) == 0 {
		return fmt.Errorf("%w: %s", favorites.ErrNotFound, identifier)
	}
	if len(rows) == 0 {
		app.console.Info("No workspaces registered")
		return nil
	}
	app.console.Info("%s", renderTable([]string{"Identifier", "Path", "URL"}, rows))
	return nil
}

func runAddWorkspace(ctx context.Context, app *commandContext, inv *invocation) error {
	dir := refs.ResolvePath(app.opts.Pwd, inv.Arg(1))
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("workspace path: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("workspace path %s is not a directory", dir)
	}
	reg, err := app.workspaces()
	if err != nil {
		return err
	}
	ws, err := reg.Add(ctx, inv.Arg(0), dir)
	if err != nil {
		return err
	}
	app.console.Info("Workspace %s added (%s)", ws.Identifier(), ws.Path)
	return nil
}

func runCreateWorkspace(ctx context.Context, app *commandContext, inv *invocation) error {
	input := backend.WorkspaceInput{
		Path:         refs.ResolvePath(app.opts.Pwd, inv.Arg(0)),
		Organization: inv.Arg(1),
		ProjectName:  inv.Arg(2),
		Branch:       inv.Arg(3),
		Description:  inv.String("description"),
		FromRepo:     true,
	}
	actions, err := app.backend()
	if err != nil {
		return err
	}
	result, err := actions.CreateWorkspace(ctx, input)
	if err != nil {
		return err
	}

	// New workspaces are registered so later commands can locate them.
	if reg, err := app.workspaces(); err == nil {
		if _, err := reg.Add(ctx, "", input.Path); err != nil && !errors.Is(err, favorites.ErrDuplicate) {
			app.console.Warn("workspace created but not added to favorites: %v", err)
		}
	}
	return app.print(result)
}

func runResetWorkspace(ctx context.Context, app *commandContext, inv *invocation) error {
	dir := refs.ResolvePath(app.opts.Pwd, inv.Arg(0))
	silent := inv.Bool("silent")

	id, err := app.identifier(ctx, "", dir)
	if err != nil {
		if silent && errors.Is(err, workspace.ErrWorkspaceNotFound) {
			return nil
		}
		return err
	}
	actions, err := app.backend()
	if err != nil {
		return err
	}
	result, err := actions.ResetWorkspace(ctx, id)
	if err != nil {
		if silent && backend.IsNotFound(err) {
			return nil
		}
		return err
	}
	if result == nil {
		app.console.Info("Workspace %s reset", id)
		return nil
	}
	return app.print(result)
}

func runDeleteWorkspace(ctx context.Context, app *commandContext, inv *invocation) error {
	dir := refs.ResolvePath(app.opts.Pwd, inv.Arg(0))
	id, err := app.identifier(ctx, inv.String("identifier"), dir)
	if err != nil {
		return err
	}
	actions, err := app.backend()
	if err != nil {
		return err
	}
	result, err := actions.DeleteWorkspace(ctx, id)
	if err != nil {
		return err
	}
	if reg, err := app.workspaces(); err == nil {
		if err := reg.Remove(ctx, id); err != nil && !errors.Is(err, favorites.ErrNotFound) {
			app.console.Warn("workspace deleted but still in favorites: %v", err)
		}
	}
	if result == nil {
		app.console.Info("Workspace %s deleted", id)
		return nil
	}
	return app.print(result)
}
