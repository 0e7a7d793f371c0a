// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeInvalidInput    ErrorCode = "INVALID_INPUT"
	ErrCodeUpstreamFailure ErrorCode = "UPSTREAM_FAILURE"
	ErrCodeConflict        ErrorCode = "CONFLICT"

	ErrCodeDatabaseError ErrorCode = "DATABASE_ERROR"
	ErrCodeParseError    ErrorCode = "PARSE_ERROR"
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// Is matches any StandardError carrying the same code, so callers can test
// against the sentinels below with errors.Is.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	return ok && t.Code == e.Code
}

// Sentinels for errors.Is checks.
var (
	ErrNotFound        = &StandardError{Code: ErrCodeNotFound, Message: "not found"}
	ErrInvalidInput    = &StandardError{Code: ErrCodeInvalidInput, Message: "invalid input"}
	ErrUpstreamFailure = &StandardError{Code: ErrCodeUpstreamFailure, Message: "upstream failure"}
	ErrConflict        = &StandardError{Code: ErrCodeConflict, Message: "conflict"}
	ErrDatabase        = &StandardError{Code: ErrCodeDatabaseError, Message: "database error"}
)

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

// NewNotFoundError reports a missing record. id is kept in Metadata.
func NewNotFoundError(entity, id string) *StandardError {
	e := newError(ErrCodeNotFound, entity+" not found", "", false, nil)
	e.Metadata = map[string]interface{}{"entity": entity, "id": id}
	return e
}

func NewInvalidInputError(details string) *StandardError {
	return newError(ErrCodeInvalidInput, "invalid input", details, false, nil)
}

// NewUpstreamFailureError wraps a failure of an external collaborator such as
// the suggestion generator. It is retryable.
func NewUpstreamFailureError(service string, err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	e := newError(ErrCodeUpstreamFailure, service+" unavailable", details, true, err)
	e.Metadata = map[string]interface{}{"service": service}
	return e
}

func NewConflictError(details string) *StandardError {
	return newError(ErrCodeConflict, "conflicting state", details, false, nil)
}

func NewDatabaseError(operation string, err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	e := newError(ErrCodeDatabaseError, "database operation failed", details, true, err)
	e.Metadata = map[string]interface{}{"operation": operation}
	return e
}

func NewParseError(err error) *StandardError {
	return newError(ErrCodeParseError, "failed to parse job variables", err.Error(), false, err)
}

// From returns err as a StandardError, searching the wrap chain first and
// falling back to INTERNAL_ERROR.
func From(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return newError(ErrCodeInternalError, "unexpected error", err.Error(), false, err)
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeNotFound:        "NOT_FOUND",
	ErrCodeInvalidInput:    "INVALID_INPUT",
	ErrCodeUpstreamFailure: "UPSTREAM_FAILURE",
	ErrCodeConflict:        "CONFLICT",
	ErrCodeDatabaseError:   "DATABASE_ERROR",
	ErrCodeParseError:      "INVALID_INPUT",
	ErrCodeInternalError:   "INTERNAL_ERROR",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseError:
		return 3
	case ErrCodeUpstreamFailure:
		return 2
	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeNotFound, ErrCodeConflict:
		return "BUSINESS"
	case ErrCodeInvalidInput, ErrCodeParseError:
		return "VALIDATION"
	case ErrCodeUpstreamFailure:
		return "UPSTREAM"
	case ErrCodeDatabaseError:
		return "DATABASE"
	default:
		return "OTHER"
	}
}
