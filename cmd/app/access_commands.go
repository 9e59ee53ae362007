package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/clinicapp/accessgate/cmd/app/commands"
	"github.com/clinicapp/accessgate/internal/app"
	"github.com/clinicapp/accessgate/internal/config"
)

func formatFlag(usage string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   commands.FormatText,
		Usage:   usage,
	}
}

func getAccessCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "sync-roles",
			Usage: "Copy every profile role into the identity provider's role claim",
			Flags: []cli.Flag{
				formatFlag("Output format: 'text' or 'json'"),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				syncUseCase, err := container.SyncUseCase()
				if err != nil {
					return err
				}

				return commands.RunSyncRoles(
					ctx,
					syncUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "check-access",
			Usage: "Evaluate the gate for a path and session token",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "path",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "Request path, e.g. /reportes/mensual",
				},
				&cli.StringFlag{
					Name:    "token",
					Aliases: []string{"t"},
					Usage:   "Session token; omit to check an anonymous request",
				},
				formatFlag("Output format: 'text' or 'json'"),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				gateUseCase, err := container.GateUseCase()
				if err != nil {
					return err
				}

				return commands.RunCheckAccess(
					ctx,
					gateUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("path"),
					cmd.String("token"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "issue-token",
			Usage: "Mint a development session token from the stored role claim (hmac mode)",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "subject",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "Identity subject (user ID)",
				},
				formatFlag("Output format: 'text' or 'json'"),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				tokenIssueUseCase, err := container.TokenIssueUseCase()
				if err != nil {
					return err
				}

				return commands.RunIssueToken(
					ctx,
					tokenIssueUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("subject"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "show-matrix",
			Usage: "Print the effective route matrix in evaluation order",
			Flags: []cli.Flag{
				formatFlag("Output format: 'text', 'json' or 'yaml'"),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				matrix, err := container.RouteMatrix()
				if err != nil {
					return err
				}

				return commands.RunShowMatrix(matrix, commands.DefaultIO().Writer, cmd.String("format"))
			},
		},
	}
}
