package docpix

import "fmt"

// Application error codes.
const (
	EARCHIVE    = "archive"    // container cannot be opened or an entry cannot be read
	ECONFLICT   = "conflict"   // unique output name exhausted
	EFILESYSTEM = "filesystem" // directory creation or file write failure
	EINTERNAL   = "internal"   // unexpected internal error
	EINVALID    = "invalid"    // invalid input
	ENOTFOUND   = "not_found"  // resource not found
)

// Error represents an application error with a machine-readable code and a
// human-readable message. An optional underlying cause is reachable through
// errors.Unwrap.
type Error struct {
	// Code is one of the application error code constants above.
	Code string

	// Message is a human-readable description of the error.
	Message string

	// Err is the wrapped cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.Err }

// Errorf returns a new Error with the given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WrapErrorf returns a new Error with the given code and formatted message
// that wraps err as its cause.
func WrapErrorf(code string, err error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// ErrorCode returns the code of the root Error, if available.
// Returns EINTERNAL for non-application errors and "" for nil.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := err.(*Error); ok && e.Code != "" {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the message of the root Error, if available.
// Returns a generic message for non-application errors and "" for nil.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := err.(*Error); ok && e.Message != "" {
		return e.Message
	}
	return "An internal error has occurred."
}
