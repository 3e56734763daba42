package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a Yomikae error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrFileTooLarge   ErrorCode = "FILE_TOO_LARGE"  // 413
	ErrDecodeFailed   ErrorCode = "DECODE_FAILED"   // 422
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// YomikaeError represents a structured error with code, status, and details.
type YomikaeError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *YomikaeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *YomikaeError {
	return &YomikaeError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when a character cannot be resolved.
func NewNotFound(query string) *YomikaeError {
	return &YomikaeError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("character not found: %s", query),
		Details: map[string]any{"query": query},
	}
}

// NewFileNotFound creates a 404 error for a missing snapshot or dictionary file.
func NewFileNotFound(path string) *YomikaeError {
	return &YomikaeError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("file not found: %s", path),
		Details: map[string]any{"path": path},
	}
}

// NewFileTooLarge creates a 413 error when a file or response body exceeds the byte limit.
func NewFileTooLarge(max, actual int64) *YomikaeError {
	return &YomikaeError{
		Code:    ErrFileTooLarge,
		Status:  413,
		Message: fmt.Sprintf("file exceeds maximum size: %d bytes (max %d)", actual, max),
		Details: map[string]any{"max_bytes": max, "actual_bytes": actual},
	}
}

// NewDecodeFailed creates a 422 error for data that cannot be decoded.
// The underlying decoder error is carried in details, not in the message.
func NewDecodeFailed(what string, err error) *YomikaeError {
	e := &YomikaeError{
		Code:    ErrDecodeFailed,
		Status:  422,
		Message: fmt.Sprintf("cannot decode %s", what),
		Details: map[string]any{},
	}
	if err != nil {
		e.Details["decode_error"] = err.Error()
	}
	return e
}

// NewInternal creates a 500 error for unexpected internal errors.
// The message is generic; the original error is preserved in details for logging.
func NewInternal(err error) *YomikaeError {
	e := &YomikaeError{
		Code:    ErrInternal,
		Status:  500,
		Message: "an internal error occurred",
		Details: map[string]any{},
	}
	if err != nil {
		e.Details["internal_error"] = err.Error()
	}
	return e
}

// Is checks if an error is a YomikaeError with the given code, unwrapping as needed.
func Is(err error, code ErrorCode) bool {
	var yErr *YomikaeError
	if stderrors.As(err, &yErr) {
		return yErr.Code == code
	}
	return false
}
