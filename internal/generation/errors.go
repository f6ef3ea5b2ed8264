package generation

import (
	"errors"
	"fmt"
)

// Code is a stable, machine-readable failure category. Codes survive
// wrapping and are the contract callers program against.
type Code string

const (
	// CodeInvalidParameters means caller-supplied fields failed
	// validation; the request never reached the network.
	CodeInvalidParameters Code = "invalid_parameters"

	// CodeMissingAPIKey means no credential is configured for the
	// selected provider.
	CodeMissingAPIKey Code = "missing_api_key"

	// CodeInvalidAPIKey means the credential fails format checks or was
	// rejected by the provider.
	CodeInvalidAPIKey Code = "invalid_api_key"

	// CodeUnsupportedProvider means the provider ID is not in the registry.
	CodeUnsupportedProvider Code = "unsupported_provider"

	// CodeAPIError covers network failures, non-2xx responses, and
	// explicit error payloads from the provider.
	CodeAPIError Code = "api_error"

	// CodeInvalidResponse means the provider returned 2xx but the body
	// is missing the expected content field.
	CodeInvalidResponse Code = "invalid_response"

	// CodeJSONError means the provider returned 2xx with an unparsable body.
	CodeJSONError Code = "json_error"

	// CodePostCreationFailed means generation succeeded but the result
	// could not be persisted. The cached text remains valid, so a retry
	// will not re-bill the provider.
	CodePostCreationFailed Code = "post_creation_failed"
)

// Error is the failure value returned by every operation in the
// generation pipeline. It carries a stable code, a human-readable
// message, and optionally the underlying cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

// NewError creates an Error with the given code and message.
func NewError(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError creates an Error that wraps an underlying cause.
func WrapError(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap allows error unwrapping.
func (e *Error) Unwrap() error {
	return e.cause
}

// CodeOf extracts the Code from err, or "" if err is not a generation
// Error anywhere in its chain.
func CodeOf(err error) Code {
	var genErr *Error
	if errors.As(err, &genErr) {
		return genErr.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}
