package main

import (
	"context"

	"github.com/spf13/cobra"

	"bilrost/internal/backend"
)

func authCommands() []commandSpec {
	return []commandSpec{
		{
			name:  "whoami",
			group: groupAuth,
			short: "Display the signed-in user",
			run: func(ctx context.Context, app *commandContext, _ *invocation) error {
				return app.call(func(a backend.Actions) (any, error) { return a.Whoami(ctx) })
			},
		},
		{
			name:  "login",
			group: groupAuth,
			short: "Sign in through the web browser",
			long:  "Opens the sign-in page in the default web browser. You have one minute to complete the login.",
			run: func(ctx context.Context, app *commandContext, _ *invocation) error {
				return app.call(func(a backend.Actions) (any, error) { return a.Login(ctx) })
			},
		},
		{
			name:  "session",
			group: groupAuth,
			args:  "<token>",
			arity: cobra.ExactArgs(1),
			short: "Set the session token",
			run: func(ctx context.Context, app *commandContext, inv *invocation) error {
				return app.call(func(a backend.Actions) (any, error) { return a.Session(ctx, inv.Arg(0)) })
			},
		},
		{
			name:  "logout",
			group: groupAuth,
			short: "Sign out",
			run: func(ctx context.Context, app *commandContext, _ *invocation) error {
				if err := app.call(func(a backend.Actions) (any, error) { return a.Logout(ctx) }); err != nil {
					return err
				}
				app.console.Info("Signed out")
				return nil
			},
		},
	}
}
