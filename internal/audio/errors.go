package audio

import (
	"errors"
	"fmt"
)

// ErrNoTag is returned by Load when a file carries no ID3v2 tag.
// Callers skip such files rather than failing.
var ErrNoTag = errors.New("no ID3v2 tag")

// LoadError is returned when a tag cannot be read or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: load tag: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// UnsupportedFormatError is returned when the tag version is not handled.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// PersistError is returned when a rewritten file cannot be written.
// The source file is left untouched.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s: save tag: %v", e.Path, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
