package util

import (
	"errors"
	"fmt"
)

// Common sentinel errors.
var (
	ErrParse              = errors.New("parse error")
	ErrBodyTooLarge       = errors.New("body size limit exceeded")
	ErrUnsupportedVersion = errors.New("unsupported HTTP version")
	ErrTransferEncoding   = errors.New("transfer-encoding must be chunked or content-length defined")
	ErrNotFound           = errors.New("not found")
	ErrMissingParameter   = errors.New("missing route parameter")
	ErrNotReady           = errors.New("message not ready")
	ErrInvalidInput       = errors.New("invalid input")
	ErrConfigInvalid      = errors.New("invalid configuration")
)

// Parse failure reasons. They double as metric label values.
const (
	ReasonVersion      = "version"
	ReasonStatus       = "status"
	ReasonTarget       = "target"
	ReasonHeader       = "header"
	ReasonLength       = "content_length"
	ReasonChunk        = "chunk"
	ReasonSizeLimit    = "size_limit"
	ReasonIncomplete   = "incomplete"
	ReasonUnclassified = "other"
)

// ParseError represents malformed or oversized wire input.
type ParseError struct {
	Reason  string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target.
func (e *ParseError) Is(target error) bool {
	if target == ErrParse {
		return true
	}
	if target == ErrBodyTooLarge && e.Reason == ReasonSizeLimit {
		return true
	}
	_, ok := target.(*ParseError)
	return ok || errors.Is(e.Cause, target)
}

// NewParseError creates a new ParseError.
func NewParseError(reason, message string) *ParseError {
	return &ParseError{Reason: reason, Message: message}
}

// NewParseErrorWithCause creates a new ParseError with a cause.
func NewParseErrorWithCause(reason, message string, cause error) *ParseError {
	return &ParseError{Reason: reason, Message: message, Cause: cause}
}

// ParseReason returns the reason of a ParseError found in err's chain.
func ParseReason(err error) string {
	var pe *ParseError
	if errors.As(err, &pe) && pe.Reason != "" {
		return pe.Reason
	}
	return ReasonUnclassified
}

// UsageError represents a caller misconfiguration detected while
// serializing a message or resolving a route.
type UsageError struct {
	Op      string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *UsageError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *UsageError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target.
func (e *UsageError) Is(target error) bool {
	_, ok := target.(*UsageError)
	return ok || errors.Is(e.Cause, target)
}

// NewUsageError creates a new UsageError wrapping a sentinel.
func NewUsageError(op string, cause error) *UsageError {
	return &UsageError{Op: op, Message: cause.Error(), Cause: cause}
}

// NewUnsupportedVersionError reports a version value outside 9, 10 and 11.
func NewUnsupportedVersionError(version int) *UsageError {
	return &UsageError{
		Op:      "version",
		Message: fmt.Sprintf("unsupported HTTP version %d", version),
		Cause:   ErrUnsupportedVersion,
	}
}

// ConfigError represents a configuration-related error.
type ConfigError struct {
	Field   string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error at %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target.
func (e *ConfigError) Is(target error) bool {
	if target == ErrConfigInvalid {
		return true
	}
	_, ok := target.(*ConfigError)
	return ok || errors.Is(e.Cause, target)
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{Field: field, Message: message}
}

// NewConfigErrorWithCause creates a new ConfigError with a cause.
func NewConfigErrorWithCause(field, message string, cause error) *ConfigError {
	return &ConfigError{Field: field, Message: message, Cause: cause}
}

// ValidationError represents a validation failure.
type ValidationError struct {
	Fields  map[string]string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s (fields: %v)", e.Message, e.Fields)
}

// Is checks if the error matches the target.
func (e *ValidationError) Is(target error) bool {
	if target == ErrConfigInvalid {
		return true
	}
	_, ok := target.(*ValidationError)
	return ok
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message, Fields: make(map[string]string)}
}

// AddField adds a field error.
func (e *ValidationError) AddField(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = message
}

// HasErrors reports whether any field error was recorded.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// RouteNotFoundError is returned when a route is looked up by name and no
// such route is registered.
type RouteNotFoundError struct {
	Name string
}

// Error implements the error interface.
func (e *RouteNotFoundError) Error() string {
	return fmt.Sprintf("route not found: %s", e.Name)
}

// Is checks if the error matches the target.
func (e *RouteNotFoundError) Is(target error) bool {
	if target == ErrNotFound {
		return true
	}
	_, ok := target.(*RouteNotFoundError)
	return ok
}

// NewRouteNotFoundError creates a new RouteNotFoundError.
func NewRouteNotFoundError(name string) *RouteNotFoundError {
	return &RouteNotFoundError{Name: name}
}

// MissingParameterError is returned when a URL is generated for a route
// without a value for one of its captures.
type MissingParameterError struct {
	Route string
	Param string
}

// Error implements the error interface.
func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("route %s: missing parameter %q", e.Route, e.Param)
}

// Is checks if the error matches the target.
func (e *MissingParameterError) Is(target error) bool {
	if target == ErrMissingParameter {
		return true
	}
	_, ok := target.(*MissingParameterError)
	return ok
}

// NewMissingParameterError creates a new MissingParameterError.
func NewMissingParameterError(route, param string) *MissingParameterError {
	return &MissingParameterError{Route: route, Param: param}
}

// WrapError wraps an error with additional context.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsParseError returns true if err was caused by malformed wire input.
func IsParseError(err error) bool {
	return err != nil && errors.Is(err, ErrParse)
}

// IsUsageError returns true if err reports a caller misconfiguration.
func IsUsageError(err error) bool {
	if err == nil {
		return false
	}
	var ue *UsageError
	if errors.As(err, &ue) {
		return true
	}
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrMissingParameter)
}
