package engine

import "errors"

// Validation errors. Each names the rule the input violated; the caller maps
// them to API error codes.
var (
	ErrNonPositiveCredits  = errors.New("credits must be greater than zero")
	ErrNonPositivePeriod   = errors.New("period must be greater than zero")
	ErrUnknownPrerequisite = errors.New("prerequisite does not exist in this guide")
	ErrPrerequisitePeriod  = errors.New("prerequisite must belong to an earlier period")
	ErrScoreRequired       = errors.New("a score is required to approve a subject")
	ErrScoreOutOfRange     = errors.New("score must be between 0 and 100")
	ErrUnknownStatus       = errors.New("unknown subject status")
	ErrUnknownTheme        = errors.New("unknown theme")
	ErrUnknownPeriodType   = errors.New("unknown period type")
)

// State errors.
var (
	ErrSubjectNotFound   = errors.New("subject not found in this guide")
	ErrSubjectBlocked    = errors.New("subject is blocked by its prerequisites")
	ErrIllegalTransition = errors.New("status transition not allowed")
)
