package usecase

import (
	"context"
	"fmt"

	"github.com/noplagiarism/upptimectl/internal/domain"
)

// SyncSitesInput contains the parameters for synchronizing sites.
type SyncSitesInput struct {
	DryRun bool // Compute and report without writing
}

// SyncSitesOutput contains the result of synchronizing sites.
type SyncSitesOutput struct {
	Sites   []domain.Site   // Candidate sites built from the feed
	Diff    domain.SiteDiff // URL-level difference against the existing sites
	Changed bool            // Existing sites differ from the candidates
	Written bool            // The config file was rewritten
}

// SyncSites is the use case for regenerating the monitored sites from the instances feed.
type SyncSites struct {
	feed   domain.FeedSource
	store  domain.SiteStore
	logger domain.Logger
	icons  map[string]string
	cfg    domain.SyncConfig
}

// NewSyncSites creates a new SyncSites use case.
func NewSyncSites(feed domain.FeedSource, store domain.SiteStore, cfg *domain.Config, logger domain.Logger) *SyncSites {
	return &SyncSites{
		feed:   feed,
		store:  store,
		logger: logger,
		icons:  cfg.Icons,
		cfg:    cfg.Sync,
	}
}

// Execute fetches the feed, builds the candidate sites and rewrites the
// config file when they differ from the existing ones.
// Equal site lists never cause a write.
func (uc *SyncSites) Execute(ctx context.Context, in SyncSitesInput) (*SyncSitesOutput, error) {
	uc.logger.Debug("sync", "fetching instances feed")
	feed, err := uc.feed.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}

	sites, err := domain.BuildSites(feed, uc.cfg, uc.icons)
	if err != nil {
		return nil, fmt.Errorf("build sites: %w", err)
	}

	current, err := uc.store.Sites()
	if err != nil {
		return nil, fmt.Errorf("read sites: %w", err)
	}

	out := &SyncSitesOutput{
		Sites:   sites,
		Diff:    domain.DiffSites(current, sites),
		Changed: !domain.SitesEqual(current, sites),
	}
	if !out.Changed {
		uc.logger.Info("sync", fmt.Sprintf("%d sites up to date", len(sites)))
		return out, nil
	}
	if in.DryRun {
		uc.logger.Info("sync", "dry run, config not written")
		return out, nil
	}

	if err := uc.store.ReplaceSites(sites); err != nil {
		return nil, fmt.Errorf("write sites: %w", err)
	}
	out.Written = true
	uc.logger.Info("sync", fmt.Sprintf("wrote %d sites (+%d -%d ~%d)",
		len(sites), len(out.Diff.Added), len(out.Diff.Removed), len(out.Diff.Changed)))

	return out, nil
}
