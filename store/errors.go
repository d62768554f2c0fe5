package store

import "errors"

// Sentinel errors returned by store operations. Every failure leaves the
// store unchanged; callers match with errors.Is and surface the message.
var (
	ErrUnauthenticated     = errors.New("you must be logged in")
	ErrForbidden           = errors.New("only organizers can perform this action")
	ErrNotFound            = errors.New("event not found")
	ErrRoleNotFound        = errors.New("volunteer role not found")
	ErrAlreadyAttending    = errors.New("you are already attending this event")
	ErrAlreadyVolunteering = errors.New("you are already volunteering for this role")
	ErrSoldOut             = errors.New("this event is sold out")
	ErrRoleFull            = errors.New("no volunteer spots available for this role")
	ErrDuplicateEmail      = errors.New("email already exists")
	ErrEmptyContent        = errors.New("comment cannot be empty")
	ErrInvalidDraft        = errors.New("invalid event draft")
	ErrInvalidInput        = errors.New("invalid input")
)
