package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noplagiarism/upptimectl/internal/app"
	"github.com/noplagiarism/upptimectl/internal/usecase"
)

// newSyncSitesCommand creates the sync-sites command.
func newSyncSitesCommand(c *app.Container) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "sync-sites",
		Short: "Regenerate monitored sites from the instances feed",
		Long: `Fetch the instances feed, build one site per instance of every tracked
service and rewrite the sites of the Upptime config when they differ.

Keys other than sites, and their comments, are left untouched.
Nothing is written when the sites are already up to date.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := c.Config.SitesPath

			if !dryRun && c.Git != nil {
				warnUncommitted(c, path)
			}

			out, err := c.SyncSitesUseCase().Execute(cmd.Context(), usecase.SyncSitesInput{
				DryRun: dryRun,
			})
			if err != nil {
				return err
			}

			printSyncReport(cmd.OutOrStdout(), out, path, dryRun)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report changes without writing")

	return cmd
}

// warnUncommitted warns before a rewrite would mix with local edits.
// Git failures never block the sync.
func warnUncommitted(c *app.Container, path string) {
	changed, err := c.Git.HasChanges(path)
	if err != nil {
		c.Logger.Debug("sync", fmt.Sprintf("git status of %s: %v", path, err))
		return
	}
	if !changed {
		return
	}

	msg := fmt.Sprintf("%s has uncommitted changes", path)
	if branch, err := c.Git.CurrentBranch(); err == nil {
		msg += fmt.Sprintf(" on branch %s", branch)
	}
	c.Logger.Warn("sync", msg)
}
