package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSiteURLAndName(t *testing.T) {
	assert.Equal(t, "https://a.example", SiteURL("a.example"))
	assert.Equal(t, "Svc a.example", SiteName("Svc", "a.example"))
}

func TestSite_Host(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://a.example", "a.example"},
		{"http://a.example/path?q=1", "a.example"},
		{"https://a.example:8443#frag", "a.example:8443"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Site{URL: tt.url}.Host(), tt.url)
	}
}

func TestSite_Equal(t *testing.T) {
	base := Site{
		Name:                "Svc a.example",
		URL:                 "https://a.example",
		Icon:                "https://icons.example/svc.png",
		ExpectedStatusCodes: []int{200, 404},
	}

	tests := []struct {
		name   string
		modify func(s *Site)
		want   bool
	}{
		{"identical", func(*Site) {}, true},
		{"nil and empty extra", func(s *Site) { s.Extra = map[string]any{} }, true},
		{"different icon", func(s *Site) { s.Icon = "" }, false},
		{"different name", func(s *Site) { s.Name = "Other" }, false},
		{"different method", func(s *Site) { s.Method = "POST" }, false},
		{"different port", func(s *Site) { s.Port = 8080 }, false},
		{"different body", func(s *Site) { s.Body = "x" }, false},
		{"codes reordered", func(s *Site) { s.ExpectedStatusCodes = []int{404, 200} }, false},
		{"codes shorter", func(s *Site) { s.ExpectedStatusCodes = []int{200} }, false},
		{"extra field", func(s *Site) { s.Extra = map[string]any{"maxResponseTime": 5000} }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := base
			other.ExpectedStatusCodes = append([]int(nil), base.ExpectedStatusCodes...)
			tt.modify(&other)
			assert.Equal(t, tt.want, base.Equal(other))
		})
	}
}

func TestSitesEqual(t *testing.T) {
	a := Site{Name: "A", URL: "https://a.example"}
	b := Site{Name: "B", URL: "https://b.example"}

	assert.True(t, SitesEqual(nil, []Site{}))
	assert.True(t, SitesEqual([]Site{a, b}, []Site{a, b}))
	assert.False(t, SitesEqual([]Site{a, b}, []Site{b, a}), "order matters")
	assert.False(t, SitesEqual([]Site{a}, []Site{a, b}))
}

func TestDiffSites(t *testing.T) {
	a := Site{Name: "A", URL: "https://a.example"}
	b := Site{Name: "B", URL: "https://b.example"}
	c := Site{Name: "C", URL: "https://c.example"}
	bIcon := b
	bIcon.Icon = "https://icons.example/b.png"

	diff := DiffSites([]Site{a, b}, []Site{bIcon, c})

	assert.Equal(t, []string{"https://c.example"}, diff.Added)
	assert.Equal(t, []string{"https://a.example"}, diff.Removed)
	assert.Equal(t, []string{"https://b.example"}, diff.Changed)
	assert.False(t, diff.IsEmpty())
}

func TestDiffSites_Reorder(t *testing.T) {
	a := Site{Name: "A", URL: "https://a.example"}
	b := Site{Name: "B", URL: "https://b.example"}

	assert.True(t, DiffSites([]Site{a, b}, []Site{b, a}).IsEmpty())
}
