package editor

import (
	"errors"
	"fmt"
)

var (
	// ErrCancelled is returned when the user declines a confirmation. It is
	// not a failure: the requested operation simply did not happen.
	ErrCancelled = errors.New("cancelled")
	// ErrNoPath is returned when saving a document that was never given a
	// file path.
	ErrNoPath = errors.New("document has no file path")
)

// IOError reports a failed read or write of a document's file.
type IOError struct {
	Op   string // "open" or "save"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// DecodeError reports text that cannot be represented in a document's
// encoding, either when reading bytes or when writing characters.
type DecodeError struct {
	Op       string
	Path     string
	Encoding string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s %s: not valid %s: %v", e.Op, e.Path, e.Encoding, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
