// Package platform holds the error taxonomy shared by the command handlers
// and the filesystem adapter they call into.
package platform

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrCancelled marks an interaction the user dismissed. It is not a failure
	// and is never reported.
	ErrCancelled = errors.New("cancelled by user")

	// ErrValidation indicates input that did not match the required pattern.
	ErrValidation = errors.New("input does not match required pattern")

	// ErrUnsupported indicates an operation the target cannot perform, such as
	// renaming a content-addressed file.
	ErrUnsupported = errors.New("unsupported operation")
)

// Error codes reported by platform operations. CodeCancelled is reserved for
// user cancellation and must not be reported as an error.
const (
	CodeCancelled             = 0
	CodeNotFound              = 1
	CodeSecurity              = 2
	CodeAbort                 = 3
	CodeNotReadable           = 4
	CodeEncoding              = 5
	CodeNoModificationAllowed = 6
	CodeInvalidState          = 7
	CodeSyntax                = 8
	CodeInvalidModification   = 9
	CodeQuotaExceeded         = 10
	CodeTypeMismatch          = 11
	CodePathExists            = 12
)

var codeMessages = map[int]string{
	CodeNotFound:              "file not found",
	CodeSecurity:              "permission denied",
	CodeAbort:                 "operation aborted",
	CodeNotReadable:           "file not readable",
	CodeEncoding:              "invalid path encoding",
	CodeNoModificationAllowed: "modification not allowed",
	CodeInvalidState:          "invalid state",
	CodeSyntax:                "syntax error",
	CodeInvalidModification:   "invalid modification",
	CodeQuotaExceeded:         "quota exceeded",
	CodeTypeMismatch:          "type mismatch",
	CodePathExists:            "path already exists",
}

// Message returns the human-readable text for a platform error code.
func Message(code int) string {
	if msg, ok := codeMessages[code]; ok {
		return msg
	}
	return fmt.Sprintf("error code %d", code)
}

// Error is a failed platform operation carrying a numeric code.
type Error struct {
	Op   string
	Path string
	Code int
	Err  error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Op, e.Path, Message(e.Code))
	if e.Code == CodeCancelled {
		msg = fmt.Sprintf("%s %s: %s", e.Op, e.Path, ErrCancelled)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports code 0 as a cancellation so callers only need errors.Is.
func (e *Error) Is(target error) bool {
	return target == ErrCancelled && e.Code == CodeCancelled
}

// Code extracts the platform code from err. ok is false when err carries none.
func Code(err error) (code int, ok bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code, true
	}
	return 0, false
}

// wrap converts an OS level error into an *Error with a matching code.
func wrap(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var pe *Error
	if errors.As(err, &pe) {
		return err
	}
	code := CodeInvalidState
	switch {
	case errors.Is(err, fs.ErrNotExist):
		code = CodeNotFound
	case errors.Is(err, fs.ErrPermission):
		code = CodeSecurity
	case errors.Is(err, fs.ErrExist):
		code = CodePathExists
	case errors.Is(err, fs.ErrInvalid):
		code = CodeInvalidModification
	}
	return &Error{Op: op, Path: path, Code: code, Err: err}
}
