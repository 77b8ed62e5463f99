package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/noplagiarism/upptimectl/internal/domain"
)

// CloseStaleIssuesInput contains the parameters for closing stale issues.
type CloseStaleIssuesInput struct {
	Delay   *time.Duration // Overrides the configured delay between closures
	Numbers []int          // Close these issues instead of computing stale ones
	DryRun  bool           // Report what would be closed without touching the tracker
}

// CloseStaleIssuesOutput contains the result of closing stale issues.
type CloseStaleIssuesOutput struct {
	StaleLabels     []string       // Labels without a service directory
	Planned         []domain.Issue // Issues scheduled for closing, in closing order
	Closed          []domain.Issue // Issues actually closed
	Skipped         []domain.Issue // Issues that were not open
	Unlabeled       []domain.Issue // Open issues without a status label
	CommentFailures int
}

// CloseStaleIssues is the use case for closing status issues of services
// that are no longer tracked.
type CloseStaleIssues struct {
	tracker  domain.IssueTracker
	services domain.ServiceDirectory
	clock    domain.Clock
	logger   domain.Logger
	cfg      domain.IssuesConfig
}

// NewCloseStaleIssues creates a new CloseStaleIssues use case.
func NewCloseStaleIssues(
	tracker domain.IssueTracker,
	services domain.ServiceDirectory,
	clock domain.Clock,
	logger domain.Logger,
	cfg domain.IssuesConfig,
) *CloseStaleIssues {
	return &CloseStaleIssues{
		tracker:  tracker,
		services: services,
		clock:    clock,
		logger:   logger,
		cfg:      cfg,
	}
}

// Execute closes the stale issues one at a time: a best-effort comment,
// then the close. The delay is waited between consecutive closures.
// A failed close or a rate-limited comment stops the run; issues already
// closed stay closed.
func (uc *CloseStaleIssues) Execute(ctx context.Context, in CloseStaleIssuesInput) (*CloseStaleIssuesOutput, error) {
	out := &CloseStaleIssuesOutput{}

	if len(in.Numbers) > 0 {
		for _, n := range in.Numbers {
			issue, err := uc.tracker.GetIssue(ctx, n)
			if err != nil {
				return nil, fmt.Errorf("get issue #%d: %w", n, err)
			}
			out.Planned = append(out.Planned, *issue)
		}
	} else if err := uc.planStale(ctx, out); err != nil {
		return nil, err
	}

	if in.DryRun {
		return out, nil
	}

	delay := uc.cfg.CloseDelay
	if in.Delay != nil {
		delay = *in.Delay
	}

	for _, issue := range out.Planned {
		if err := issue.State.ValidateTransition(domain.IssueClosed); err != nil {
			uc.logger.Info("issues", fmt.Sprintf("skipped #%d: %v", issue.Number, err))
			out.Skipped = append(out.Skipped, issue)
			continue
		}

		if len(out.Closed) > 0 {
			if err := uc.clock.Sleep(ctx, delay); err != nil {
				return nil, fmt.Errorf("wait before closing #%d: %w", issue.Number, err)
			}
		}

		if err := uc.tracker.Comment(ctx, issue.Number, uc.cfg.Comment); err != nil {
			// Every later request would be refused too
			if errors.Is(err, domain.ErrRateLimited) {
				return nil, fmt.Errorf("comment on #%d: %w", issue.Number, err)
			}
			out.CommentFailures++
			uc.logger.Warn("issues", fmt.Sprintf("comment on #%d failed: %v", issue.Number, err))
		}

		if err := uc.tracker.Close(ctx, issue.Number); err != nil {
			return nil, fmt.Errorf("close issue #%d: %w", issue.Number, err)
		}
		issue.State = domain.IssueClosed
		out.Closed = append(out.Closed, issue)
		uc.logger.Info("issues", fmt.Sprintf("closed #%d %s", issue.Number, issue.Title))
	}

	return out, nil
}

// planStale fills the stale labels and the issues under them.
func (uc *CloseStaleIssues) planStale(ctx context.Context, out *CloseStaleIssuesOutput) error {
	services, err := uc.services.List()
	if err != nil {
		return fmt.Errorf("list services: %w", err)
	}

	issues, err := uc.tracker.ListOpenIssues(ctx, uc.cfg.StatusLabel)
	if err != nil {
		return fmt.Errorf("list issues: %w", err)
	}

	// The listing label is on every issue and never names a service
	excluded := append(slices.Clone(uc.cfg.ExcludedLabels), uc.cfg.StatusLabel)
	groups, unlabeled := domain.GroupIssuesByStatusLabel(issues, excluded)
	for _, issue := range unlabeled {
		uc.logger.Warn("issues", fmt.Sprintf("#%d has no status label, skipped", issue.Number))
	}

	out.Unlabeled = unlabeled
	out.StaleLabels = groups.StaleLabels(services)
	out.Planned = groups.Collect(out.StaleLabels)
	uc.logger.Debug("issues", fmt.Sprintf("%d open issues, %d stale", len(issues), len(out.Planned)))
	return nil
}
