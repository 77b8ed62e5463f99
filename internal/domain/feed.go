package domain

import "fmt"

// FeedService is one service entry of the instances feed.
type FeedService struct {
	Name      string   `json:"name"`
	Instances []string `json:"instances"`
}

// Feed is the remote instances catalog keyed by service identifier.
type Feed map[string]FeedService

// Service returns the entry for a tracked service identifier.
func (f Feed) Service(id string) (FeedService, error) {
	svc, ok := f[id]
	if !ok {
		return FeedService{}, fmt.Errorf("%w: %q", ErrServiceNotInFeed, id)
	}
	return svc, nil
}

// IconKey selects which key is used to look up a service icon.
type IconKey string

const (
	IconKeyID   IconKey = "id"   // Look up by tracked service identifier
	IconKeyName IconKey = "name" // Look up by the feed's display name (legacy behavior)
)

// IsValid returns true if the icon key is known.
func (k IconKey) IsValid() bool {
	return k == IconKeyID || k == IconKeyName
}

// BuildSites generates the candidate site list for the tracked services.
// Services are visited in configuration order and instances in feed order.
func BuildSites(feed Feed, cfg SyncConfig, icons map[string]string) ([]Site, error) {
	var sites []Site
	for _, id := range cfg.Services {
		svc, err := feed.Service(id)
		if err != nil {
			return nil, err
		}

		iconKey := id
		if cfg.IconKey == IconKeyName {
			iconKey = svc.Name
		}
		icon := icons[iconKey]

		for _, domain := range svc.Instances {
			sites = append(sites, Site{
				Name:                SiteName(svc.Name, domain),
				URL:                 SiteURL(domain),
				Icon:                icon,
				ExpectedStatusCodes: cfg.ExpectedStatusCodes,
			})
		}
	}
	return sites, nil
}
