package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIssue_StatusLabel(t *testing.T) {
	excluded := []string{"status"}

	tests := []struct {
		name   string
		labels []string
		want   string
		ok     bool
	}{
		{"after status", []string{"status", "svc1"}, "svc1", true},
		{"before status", []string{"svc1", "status"}, "svc1", true},
		{"first wins", []string{"status", "svc1", "svc2"}, "svc1", true},
		{"only status", []string{"status"}, "", false},
		{"no labels", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Issue{Labels: tt.labels}.StatusLabel(excluded)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestGroupIssuesByStatusLabel(t *testing.T) {
	issues := []Issue{
		{Number: 1, Labels: []string{"status", "svc1"}},
		{Number: 2, Labels: []string{"status", "svc3"}},
		{Number: 3, Labels: []string{"status"}},
		{Number: 4, Labels: []string{"status", "svc3"}},
	}

	groups, unlabeled := GroupIssuesByStatusLabel(issues, []string{"status"})

	assert.Equal(t, []int{1}, numbers(groups["svc1"]))
	assert.Equal(t, []int{2, 4}, numbers(groups["svc3"]))
	assert.Equal(t, []int{3}, numbers(unlabeled))
}

func TestIssueGroups_StaleLabels(t *testing.T) {
	groups := IssueGroups{
		"svc1": {{Number: 1}},
		"svc3": {{Number: 2}},
	}

	stale := groups.StaleLabels([]string{"svc1", "svc2"})

	assert.Equal(t, []string{"svc3"}, stale)
	assert.Equal(t, []int{2}, numbers(groups.Collect(stale)))
}

func TestIssueGroups_StaleLabels_Sorted(t *testing.T) {
	groups := IssueGroups{
		"zeta":  {{Number: 1}},
		"alpha": {{Number: 2}, {Number: 3}},
	}

	stale := groups.StaleLabels(nil)

	assert.Equal(t, []string{"alpha", "zeta"}, stale)
	assert.Equal(t, []int{2, 3, 1}, numbers(groups.Collect(stale)))
}

func numbers(issues []Issue) []int {
	var res []int
	for _, i := range issues {
		res = append(res, i.Number)
	}
	return res
}
