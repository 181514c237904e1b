package domain

import "errors"

// ErrNotFound is returned by stores when a record does not exist
var ErrNotFound = errors.New("not found")

// ValidationError reports bad caller input
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}
