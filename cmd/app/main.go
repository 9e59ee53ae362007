// Package main provides the entry point for the access gate with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
)

// Build-time version information (injected via ldflags).
var (
	version   = "dev"
	buildDate = "unknown"
	commitSHA = "unknown"
)

func main() {
	cmd := &cli.Command{
		Name:     "accessgate",
		Usage:    "Role-based authorization gate and claims synchronizer for the clinic app",
		Version:  version,
		Commands: getCommands(version),
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error",
			slog.Any("error", err),
			slog.String("build_date", buildDate),
			slog.String("commit_sha", commitSHA),
		)
		os.Exit(1)
	}
}
