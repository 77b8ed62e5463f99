package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/noplagiarism/upptimectl/internal/domain"
	"github.com/noplagiarism/upptimectl/internal/usecase"
)

// Colors defines the report color palette.
var Colors = struct {
	Title   lipgloss.Color
	Added   lipgloss.Color
	Removed lipgloss.Color
	Changed lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color
}{
	Title:   lipgloss.Color("#6C5CE7"), // Purple
	Added:   lipgloss.Color("#00B894"), // Green
	Removed: lipgloss.Color("#D63031"), // Red
	Changed: lipgloss.Color("#FDCB6E"), // Yellow
	Muted:   lipgloss.Color("#636E72"), // Gray
	Warning: lipgloss.Color("#E17055"), // Orange
}

// reportStyles contains the lipgloss styles used for command reports.
type reportStyles struct {
	Title   lipgloss.Style
	Added   lipgloss.Style
	Removed lipgloss.Style
	Changed lipgloss.Style
	Muted   lipgloss.Style
	Warning lipgloss.Style
}

func defaultReportStyles() reportStyles {
	return reportStyles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(Colors.Title),
		Added:   lipgloss.NewStyle().Foreground(Colors.Added),
		Removed: lipgloss.NewStyle().Foreground(Colors.Removed),
		Changed: lipgloss.NewStyle().Foreground(Colors.Changed),
		Muted:   lipgloss.NewStyle().Foreground(Colors.Muted),
		Warning: lipgloss.NewStyle().Bold(true).Foreground(Colors.Warning),
	}
}

// printSyncReport writes the result of a sites sync.
func printSyncReport(w io.Writer, out *usecase.SyncSitesOutput, path string, dryRun bool) {
	s := defaultReportStyles()

	_, _ = fmt.Fprintln(w, s.Title.Render(fmt.Sprintf("Sites: %d from feed", len(out.Sites))))
	for _, u := range out.Diff.Added {
		_, _ = fmt.Fprintln(w, s.Added.Render("  + "+hostOf(u)))
	}
	for _, u := range out.Diff.Removed {
		_, _ = fmt.Fprintln(w, s.Removed.Render("  - "+hostOf(u)))
	}
	for _, u := range out.Diff.Changed {
		_, _ = fmt.Fprintln(w, s.Changed.Render("  ~ "+hostOf(u)))
	}

	switch {
	case !out.Changed:
		_, _ = fmt.Fprintln(w, s.Muted.Render("Up to date, nothing written"))
	case dryRun:
		_, _ = fmt.Fprintln(w, s.Warning.Render("Dry run: "+path+" would be rewritten"))
	case out.Written:
		if out.Diff.IsEmpty() {
			_, _ = fmt.Fprintln(w, s.Changed.Render("  ~ order"))
		}
		_, _ = fmt.Fprintf(w, "Wrote %s\n", path)
	}
}

// printCloseReport writes the result of a close-issues run.
// The stale label line is omitted when explicit issue numbers were given.
func printCloseReport(w io.Writer, out *usecase.CloseStaleIssuesOutput, explicit, dryRun bool) {
	s := defaultReportStyles()

	if !explicit {
		labels := "none"
		if len(out.StaleLabels) > 0 {
			labels = strings.Join(out.StaleLabels, ", ")
		}
		_, _ = fmt.Fprintln(w, s.Title.Render("Stale labels: "+labels))
	}

	if dryRun {
		for _, issue := range out.Planned {
			if !issue.State.CanTransitionTo(domain.IssueClosed) {
				_, _ = fmt.Fprintln(w, s.Muted.Render(fmt.Sprintf("  skipped #%d (%s)", issue.Number, issue.State)))
				continue
			}
			_, _ = fmt.Fprintln(w, s.Warning.Render("  would close "+issueLine(issue)))
		}
		return
	}

	for _, issue := range out.Closed {
		_, _ = fmt.Fprintln(w, s.Removed.Render("  closed "+issueLine(issue)))
	}
	for _, issue := range out.Skipped {
		_, _ = fmt.Fprintln(w, s.Muted.Render(fmt.Sprintf("  skipped #%d (%s)", issue.Number, issue.State)))
	}
	for _, issue := range out.Unlabeled {
		_, _ = fmt.Fprintln(w, s.Muted.Render(fmt.Sprintf("  no status label #%d", issue.Number)))
	}
	if out.CommentFailures > 0 {
		_, _ = fmt.Fprintln(w, s.Warning.Render(fmt.Sprintf("Comment failures: %d", out.CommentFailures)))
	}
	_, _ = fmt.Fprintf(w, "Closed %d issue(s)\n", len(out.Closed))
}

func issueLine(issue domain.Issue) string {
	return fmt.Sprintf("#%d %s", issue.Number, issue.Title)
}

func hostOf(url string) string {
	return domain.Site{URL: url}.Host()
}
