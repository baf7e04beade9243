package outingdomain

import "errors"

var (
	ErrEmptyRoster          = errors.New("roster is empty")
	ErrInvalidGroupSize     = errors.New("group size must be at least 1")
	ErrGroupNotFound        = errors.New("group not found")
	ErrMarkerNotInGroup     = errors.New("marker is not a member of the group")
	ErrUnknownScoringFormat = errors.New("unknown scoring format")
)
