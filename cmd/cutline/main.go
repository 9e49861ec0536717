// Package main provides the entry point for the cutline CLI.
package main

import (
	"context"
	"os"

	"github.com/mrz1836/cutline/internal/cli"
)

// Set at build time via -ldflags "-X main.version=...".
//
//nolint:gochecknoglobals // Build-time version injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx := context.Background()
	err := cli.Execute(ctx, cli.BuildInfo{Version: version, Commit: commit, Date: date})
	os.Exit(cli.ExitCodeForError(err))
}
