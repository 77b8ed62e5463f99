package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeed_Service(t *testing.T) {
	feed := Feed{"svc": {Name: "Svc", Instances: []string{"a.example"}}}

	svc, err := feed.Service("svc")
	require.NoError(t, err)
	assert.Equal(t, "Svc", svc.Name)

	_, err = feed.Service("missing")
	assert.ErrorIs(t, err, ErrServiceNotInFeed)
}

func TestIconKey_IsValid(t *testing.T) {
	assert.True(t, IconKeyID.IsValid())
	assert.True(t, IconKeyName.IsValid())
	assert.False(t, IconKey("").IsValid())
	assert.False(t, IconKey("title").IsValid())
}

func TestBuildSites_TwoDomains(t *testing.T) {
	feed := Feed{"svc": {Name: "Svc", Instances: []string{"a.example", "b.example"}}}
	codes := []int{200, 404}
	cfg := SyncConfig{Services: []string{"svc"}, IconKey: IconKeyID, ExpectedStatusCodes: codes}

	sites, err := BuildSites(feed, cfg, nil)

	require.NoError(t, err)
	require.Len(t, sites, 2)
	assert.Equal(t, "https://a.example", sites[0].URL)
	assert.Equal(t, "https://b.example", sites[1].URL)
	assert.Equal(t, "Svc a.example", sites[0].Name)
	for _, s := range sites {
		assert.Equal(t, codes, s.ExpectedStatusCodes)
	}
}

func TestBuildSites_Order(t *testing.T) {
	feed := Feed{
		"one": {Name: "One", Instances: []string{"z.example", "a.example"}},
		"two": {Name: "Two", Instances: []string{"m.example"}},
	}
	cfg := SyncConfig{Services: []string{"two", "one"}, IconKey: IconKeyID}

	sites, err := BuildSites(feed, cfg, nil)

	require.NoError(t, err)
	var urls []string
	for _, s := range sites {
		urls = append(urls, s.URL)
	}
	assert.Equal(t, []string{"https://m.example", "https://z.example", "https://a.example"}, urls)
}

func TestBuildSites_IconKey(t *testing.T) {
	feed := Feed{"svc": {Name: "Svc", Instances: []string{"a.example"}}}
	icons := map[string]string{"svc": "https://icons.example/svc.png"}

	byID, err := BuildSites(feed, SyncConfig{Services: []string{"svc"}, IconKey: IconKeyID}, icons)
	require.NoError(t, err)
	assert.Equal(t, "https://icons.example/svc.png", byID[0].Icon)

	// Legacy lookup uses the display name, which the id-keyed table does not contain
	byName, err := BuildSites(feed, SyncConfig{Services: []string{"svc"}, IconKey: IconKeyName}, icons)
	require.NoError(t, err)
	assert.Empty(t, byName[0].Icon)
}

func TestBuildSites_MissingService(t *testing.T) {
	feed := Feed{"svc": {Name: "Svc"}}

	_, err := BuildSites(feed, SyncConfig{Services: []string{"svc", "gone"}}, nil)

	assert.ErrorIs(t, err, ErrServiceNotInFeed)
}
