package domain

import (
	"slices"
	"sort"
)

// Issue represents a tracker issue.
// Fields are ordered to minimize memory padding.
type Issue struct {
	Title  string
	State  IssueState
	Labels []string
	Number int
}

// StatusLabel returns the first label that is not excluded.
// The tracker returns labels in a stable order, so an issue carrying several
// candidate labels is always grouped under the same one.
func (i Issue) StatusLabel(excluded []string) (string, bool) {
	for _, l := range i.Labels {
		if !slices.Contains(excluded, l) {
			return l, true
		}
	}
	return "", false
}

// IssueGroups maps a status label to the open issues carrying it, in tracker order.
type IssueGroups map[string][]Issue

// GroupIssuesByStatusLabel groups issues by their status label.
// Issues without a status label are returned separately.
func GroupIssuesByStatusLabel(issues []Issue, excluded []string) (IssueGroups, []Issue) {
	groups := make(IssueGroups)
	var unlabeled []Issue
	for _, issue := range issues {
		label, ok := issue.StatusLabel(excluded)
		if !ok {
			unlabeled = append(unlabeled, issue)
			continue
		}
		groups[label] = append(groups[label], issue)
	}
	return groups, unlabeled
}

// StaleLabels returns the labels that have no matching service, sorted.
func (g IssueGroups) StaleLabels(services []string) []string {
	known := make(map[string]struct{}, len(services))
	for _, s := range services {
		known[s] = struct{}{}
	}
	var stale []string
	for label := range g {
		if _, ok := known[label]; !ok {
			stale = append(stale, label)
		}
	}
	sort.Strings(stale)
	return stale
}

// Collect returns the issues under the given labels, label by label.
func (g IssueGroups) Collect(labels []string) []Issue {
	var issues []Issue
	for _, l := range labels {
		issues = append(issues, g[l]...)
	}
	return issues
}
