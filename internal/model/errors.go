package model

import "errors"

var (
	// ErrFixture is returned when a sandbox root could not be set up.
	ErrFixture = errors.New("fixture could not be created")
	// ErrNotValid is returned when an input (path, count, manifest) is not valid.
	ErrNotValid = errors.New("not valid")
)
