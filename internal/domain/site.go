package domain

import (
	"reflect"
	"strings"
)

// Site is one monitored endpoint in the `sites` sequence of an Upptime config.
// URL is the natural key; every other field is derived or decorative.
// Zero values mean "absent" and are not serialized.
// Fields are ordered to minimize memory padding.
type Site struct {
	Extra               map[string]any `yaml:",inline"`
	Name                string         `yaml:"name"`
	URL                 string         `yaml:"url"`
	Method              string         `yaml:"method,omitempty"`
	Body                string         `yaml:"body,omitempty"`
	Icon                string         `yaml:"icon,omitempty"`
	ExpectedStatusCodes []int          `yaml:"expectedStatusCodes,omitempty,flow"`
	Port                int            `yaml:"port,omitempty"`
}

// SiteURL returns the URL monitored for an instance domain.
func SiteURL(domain string) string {
	return "https://" + domain
}

// SiteName returns the display name of a generated site.
func SiteName(serviceName, domain string) string {
	return serviceName + " " + domain
}

// Host returns the host part of the site URL.
func (s Site) Host() string {
	host := strings.TrimPrefix(s.URL, "https://")
	host = strings.TrimPrefix(host, "http://")
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	return host
}

// Equal reports whether every field of s matches other.
// An empty Extra map equals a nil one.
func (s Site) Equal(other Site) bool {
	if s.Name != other.Name || s.URL != other.URL || s.Method != other.Method ||
		s.Body != other.Body || s.Icon != other.Icon || s.Port != other.Port {
		return false
	}
	if len(s.ExpectedStatusCodes) != len(other.ExpectedStatusCodes) {
		return false
	}
	for i, code := range s.ExpectedStatusCodes {
		if other.ExpectedStatusCodes[i] != code {
			return false
		}
	}
	if len(s.Extra) == 0 && len(other.Extra) == 0 {
		return true
	}
	return reflect.DeepEqual(s.Extra, other.Extra)
}

// SitesEqual reports whether two site lists match position by position.
func SitesEqual(a, b []Site) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// SiteDiff summarizes how a new site list differs from an old one, keyed by URL.
type SiteDiff struct {
	Added   []string // URLs only in the new list
	Removed []string // URLs only in the old list
	Changed []string // URLs in both lists whose records differ
}

// IsEmpty reports whether no URL was added, removed or changed.
func (d SiteDiff) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// DiffSites compares two site lists by URL.
// A pure reordering yields an empty diff even though SitesEqual is false.
func DiffSites(oldSites, newSites []Site) SiteDiff {
	oldByURL := make(map[string]Site, len(oldSites))
	for _, s := range oldSites {
		oldByURL[s.URL] = s
	}
	newURLs := make(map[string]struct{}, len(newSites))

	var diff SiteDiff
	for _, s := range newSites {
		newURLs[s.URL] = struct{}{}
		old, ok := oldByURL[s.URL]
		switch {
		case !ok:
			diff.Added = append(diff.Added, s.URL)
		case !old.Equal(s):
			diff.Changed = append(diff.Changed, s.URL)
		}
	}
	for _, s := range oldSites {
		if _, ok := newURLs[s.URL]; !ok {
			diff.Removed = append(diff.Removed, s.URL)
		}
	}
	return diff
}
