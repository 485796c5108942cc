package store

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a write aimed at a document that does not exist. A plain
// read miss is not an error: ByID returns (nil, nil) for an absent id.
var ErrNotFound = errors.New("document not found")

// WriteError wraps create/update/delete failures.
type WriteError struct {
	Collection string
	Op         string
	Err        error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ReadError wraps fetch failures, distinct from "not found".
type ReadError struct {
	Collection string
	Err        error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Collection, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
