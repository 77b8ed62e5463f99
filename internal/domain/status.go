package domain

import "fmt"

// IssueState represents the lifecycle state of a tracker issue.
type IssueState string

const (
	IssueOpen   IssueState = "open"   // Issue is open
	IssueClosed IssueState = "closed" // Issue is closed
)

// transitions defines the allowed issue state transitions.
// Closing is terminal; this tool never reopens an issue.
var transitions = map[IssueState][]IssueState{
	IssueOpen:   {IssueClosed},
	IssueClosed: {},
}

// CanTransitionTo returns true if the state can transition to the target state.
func (s IssueState) CanTransitionTo(target IssueState) bool {
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// ValidateTransition returns ErrInvalidTransition when the state cannot
// move to target.
func (s IssueState) ValidateTransition(target IssueState) error {
	if !s.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, target)
	}
	return nil
}

// IsTerminal returns true if the state is terminal.
func (s IssueState) IsTerminal() bool {
	return s == IssueClosed
}
