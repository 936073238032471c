package employee

import "errors"

// Employee domain errors
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrChatHandleExists = errors.New("chat handle already registered")
	ErrEmptyRoster      = errors.New("roster is empty")
)
