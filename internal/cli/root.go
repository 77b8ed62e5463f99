// Package cli provides the command-line interface for upptimectl.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noplagiarism/upptimectl/internal/app"
)

// NewRootCommand creates the root command for upptimectl.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "upptimectl",
		Short: "Maintain an Upptime status repository",
		Long: `upptimectl keeps an Upptime status repository in step with the
instances feed: sync-sites regenerates the monitored sites, and
close-issues closes status issues of services that are no longer tracked.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. help outside a repository)
			if c == nil || c.AppConfig == nil {
				return nil
			}
			// config show reports warnings itself
			if p := cmd.Parent(); p != nil && p.Name() == "config" {
				return nil
			}

			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
	}

	root.AddCommand(
		newSyncSitesCommand(c),
		newCloseIssuesCommand(c),
		newConfigCommand(c),
	)

	return root
}
