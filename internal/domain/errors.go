package domain

import "errors"

// Domain errors.
var (
	ErrServiceNotInFeed  = errors.New("service not found in feed")
	ErrMissingToken      = errors.New("tracker token not set in environment")
	ErrInvalidTransition = errors.New("invalid issue state transition")
	ErrIssueNotFound     = errors.New("issue not found")
	ErrRateLimited       = errors.New("tracker rate limit exceeded")
	ErrInvalidIconKey    = errors.New("invalid icon key (use \"id\" or \"name\")")
	ErrInvalidRepo       = errors.New("invalid repository (use \"owner/name\")")
	ErrConfigExists      = errors.New("config file already exists")
	ErrNotGitRepository  = errors.New("not a git repository (or any of the parent directories)")
	ErrSitesNotSequence  = errors.New("sites key is not a sequence")
)
