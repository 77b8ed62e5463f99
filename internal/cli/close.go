package cli

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/noplagiarism/upptimectl/internal/app"
	"github.com/noplagiarism/upptimectl/internal/usecase"
)

// newCloseIssuesCommand creates the close-issues command.
func newCloseIssuesCommand(c *app.Container) *cobra.Command {
	var dryRun bool
	var delay time.Duration

	cmd := &cobra.Command{
		Use:   "close-issues [NUMBER...]",
		Short: "Close status issues of untracked services",
		Long: `Close open status issues whose service no longer has a directory.

Each issue gets a comment first (failures are logged and ignored), then is
closed. Issues are closed one at a time with a delay between closures.
Pass issue numbers to close exactly those issues instead.

The tracker token is read from the variable named by [issues] token_env.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			numbers, err := parseIssueNumbers(args)
			if err != nil {
				return err
			}

			// Fails on a missing token before any request is made
			uc, err := c.CloseStaleIssuesUseCase()
			if err != nil {
				return err
			}

			in := usecase.CloseStaleIssuesInput{
				Numbers: numbers,
				DryRun:  dryRun,
			}
			if cmd.Flags().Changed("delay") {
				in.Delay = &delay
			}

			out, err := uc.Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			printCloseReport(cmd.OutOrStdout(), out, len(numbers) > 0, dryRun)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List issues that would be closed")
	cmd.Flags().DurationVar(&delay, "delay", 0, "Delay between closures (default from [issues] close_delay)")

	return cmd
}

// parseIssueNumbers parses issue numbers, dropping repeats so that an issue
// is never commented on or closed twice.
func parseIssueNumbers(args []string) ([]int, error) {
	var numbers []int
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid issue number: %q", arg)
		}
		if !slices.Contains(numbers, n) {
			numbers = append(numbers, n)
		}
	}
	return numbers, nil
}
