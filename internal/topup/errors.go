package topup

import (
	"errors"
	"fmt"
)

// Kind classifies report generation failures.
type Kind string

const (
	KindFileRead  Kind = "file_read"
	KindParse     Kind = "parse"
	KindShape     Kind = "shape"
	KindFileWrite Kind = "file_write"
)

// Sentinel errors matched through errors.Is against an *Error.
var (
	// ErrFileRead indicates an input file is missing or unreadable.
	ErrFileRead = errors.New("topup: read input")
	// ErrParse indicates an input file is not valid JSON.
	ErrParse = errors.New("topup: parse input")
	// ErrShape indicates a record lacks a required field or holds the wrong type.
	ErrShape = errors.New("topup: invalid record shape")
	// ErrFileWrite indicates the report could not be written.
	ErrFileWrite = errors.New("topup: write report")
)

// Error carries the failure kind together with the file it concerns.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindFileRead:
		return target == ErrFileRead
	case KindParse:
		return target == ErrParse
	case KindShape:
		return target == ErrShape
	case KindFileWrite:
		return target == ErrFileWrite
	}
	return false
}

// FieldError reports a missing field on a single record.
type FieldError struct {
	Collection string
	Index      int
	Field      string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s[%d]: missing required field %q", e.Collection, e.Index, e.Field)
}

// KindOf returns the kind of err, or the empty kind when err is not an *Error.
func KindOf(err error) Kind {
	var topupErr *Error
	if errors.As(err, &topupErr) {
		return topupErr.Kind
	}
	return ""
}
