package employee

import "errors"

var (
	ErrNotFound   = errors.New("employee: not found")
	ErrEmailTaken = errors.New("employee: email already exists")
	ErrForbidden  = errors.New("employee: access denied")
	// ErrInvalidArgument is wrapped by every rejected list parameter.
	ErrInvalidArgument = errors.New("employee: invalid argument")
)
