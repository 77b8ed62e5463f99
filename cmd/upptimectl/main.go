// Package main is the entry point for the upptimectl CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/noplagiarism/upptimectl/internal/app"
	"github.com/noplagiarism/upptimectl/internal/cli"
	"github.com/noplagiarism/upptimectl/internal/domain"
)

// version is set at build time using -ldflags.
var version = "dev"

// Exit statuses.
const (
	exitError        = 1
	exitMissingToken = 2
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

func run() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	container, err := app.New(cwd)
	if err != nil {
		// Allow help and version without a git repo
		if errors.Is(err, domain.ErrNotGitRepository) {
			return runWithoutContainer(ctx, err)
		}
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() { _ = container.Close() }()

	rootCmd := cli.NewRootCommand(container, version)
	return rootCmd.ExecuteContext(ctx)
}

// runWithoutContainer handles cases where git repo is not found.
func runWithoutContainer(ctx context.Context, gitErr error) error {
	if !canRunWithoutGit(os.Args[1:]) {
		return gitErr
	}
	return cli.NewRootCommand(nil, version).ExecuteContext(ctx)
}

func canRunWithoutGit(args []string) bool {
	if len(args) == 0 {
		return true
	}
	if args[0] == "help" {
		return true
	}
	for _, arg := range args {
		if arg == "--version" || arg == "-v" || arg == "--help" || arg == "-h" {
			return true
		}
	}
	return false
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	if errors.Is(err, domain.ErrMissingToken) {
		return exitMissingToken
	}
	return exitError
}
