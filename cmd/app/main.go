// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/meshpay/meshpay-go/cmd/app/commands"
	"github.com/meshpay/meshpay-go/internal/config"
	webhooksDomain "github.com/meshpay/meshpay-go/internal/webhooks/domain"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "app",
		Usage:   "MeshPay client toolkit: webhook intake gateway and credential tooling",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the webhook intake gateway",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "token",
				Usage: "Exchange client credentials and print the Authorization header value",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunToken(ctx, commands.DefaultIO())
				},
			},
			{
				Name:  "sign",
				Usage: "Compute a webhook signature header for a payload",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "payload",
						Aliases: []string{"p"},
						Usage:   "Payload to sign (omit to read from stdin)",
					},
					&cli.StringFlag{
						Name:    "secret",
						Aliases: []string{"s"},
						Usage:   "Signing secret (defaults to WEBHOOK_SECRET)",
					},
					&cli.IntFlag{
						Name:    "timestamp",
						Aliases: []string{"t"},
						Usage:   "Unix timestamp to sign with (defaults to now)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					secret := cmd.String("secret")
					if secret == "" {
						secret = config.Load().WebhookSecret
					}
					return commands.RunSign(
						cmd.String("payload"),
						secret,
						int64(cmd.Int("timestamp")),
						commands.DefaultIO(),
					)
				},
			},
			{
				Name:  "verify",
				Usage: "Verify a webhook signature header against a payload",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "payload",
						Aliases: []string{"p"},
						Usage:   "Payload to verify (omit to read from stdin)",
					},
					&cli.StringFlag{
						Name:     "header",
						Aliases:  []string{"H"},
						Required: true,
						Usage:    "Signature header value (t=<ts>,v=<sig>)",
					},
					&cli.StringFlag{
						Name:    "secret",
						Aliases: []string{"s"},
						Usage:   "Signing secret (defaults to WEBHOOK_SECRET)",
					},
					&cli.DurationFlag{
						Name:  "tolerance",
						Value: webhooksDomain.DefaultTolerance,
						Usage: "Allowed clock skew for the signed timestamp",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					secret := cmd.String("secret")
					if secret == "" {
						secret = config.Load().WebhookSecret
					}
					return commands.RunVerify(
						cmd.String("payload"),
						cmd.String("header"),
						secret,
						cmd.Duration("tolerance"),
						commands.DefaultIO(),
					)
				},
			},
			{
				Name:  "register-secret",
				Usage: "Register a webhook signing secret with the platform",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "secret",
						Aliases:  []string{"s"},
						Required: true,
						Usage:    "Signing secret (at least 32 printable ASCII characters)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunRegisterSecret(ctx, cmd.String("secret"), commands.DefaultIO())
				},
			},
			{
				Name:  "generate-secret",
				Usage: "Generate a signing secret that satisfies the registration policy",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "length",
						Aliases: []string{"l"},
						Value:   webhooksDomain.MinSecretLength,
						Usage:   "Secret length in characters",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunGenerateSecret(cmd.Int("length"), commands.DefaultIO())
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
