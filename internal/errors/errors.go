package errors

import "fmt"

// ErrorCode represents a cardbox error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrFileNotFound   ErrorCode = "FILE_NOT_FOUND"  // 404
	ErrEntryNotFound  ErrorCode = "ENTRY_NOT_FOUND" // 404
	ErrFetchFailed    ErrorCode = "FETCH_FAILED"    // 502
	ErrSnapshotFailed ErrorCode = "SNAPSHOT_FAILED" // 500
	ErrCancelled      ErrorCode = "CANCELLED"       // 499
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// BoxError represents a structured error with code, status, and details.
type BoxError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *BoxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *BoxError {
	return &BoxError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewFileNotFound creates a 404 error for a missing source file.
func NewFileNotFound(path string) *BoxError {
	return &BoxError{
		Code:    ErrFileNotFound,
		Status:  404,
		Message: fmt.Sprintf("file not found: %s", path),
		Details: map[string]any{"path": path},
	}
}

// NewEntryNotFound creates a 404 error for a missing deck entry.
func NewEntryNotFound(id string) *BoxError {
	return &BoxError{
		Code:    ErrEntryNotFound,
		Status:  404,
		Message: fmt.Sprintf("entry not found: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewFetchFailed creates a 502 error for a failed source read or URL fetch.
// The deck is left unchanged for the failing source.
func NewFetchFailed(source string, err error) *BoxError {
	msg := fmt.Sprintf("failed to fetch %s", source)
	if err != nil {
		msg = fmt.Sprintf("failed to fetch %s: %v", source, err)
	}
	return &BoxError{
		Code:    ErrFetchFailed,
		Status:  502,
		Message: msg,
		Details: map[string]any{"source": source},
	}
}

// NewSnapshotFailed creates a 500 error for a snapshot write failure.
// Callers report it and keep the in-memory deck authoritative.
func NewSnapshotFailed(err error) *BoxError {
	msg := "snapshot write failed"
	if err != nil {
		msg = fmt.Sprintf("snapshot write failed: %v", err)
	}
	return &BoxError{
		Code:    ErrSnapshotFailed,
		Status:  500,
		Message: msg,
	}
}

// NewCancelled creates a 499 error for a cancelled operation.
func NewCancelled(operation string) *BoxError {
	return &BoxError{
		Code:    ErrCancelled,
		Status:  499,
		Message: fmt.Sprintf("%s cancelled", operation),
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *BoxError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &BoxError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a BoxError with the given code.
func Is(err error, code ErrorCode) bool {
	if bErr, ok := err.(*BoxError); ok {
		return bErr.Code == code
	}
	return false
}
