package gptrouter

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ErrEmptyInput is returned when a required input slice is empty.
var ErrEmptyInput = errors.New("empty input")

// ErrMissingCreatedByUserID is returned when request metadata is supplied
// without a created_by_user_id entry.
var ErrMissingCreatedByUserID = errors.New("metadata is missing required key " + MetaCreatedByUserID)

// ErrorCategory classifies errors by how they should be handled.
type ErrorCategory string

const (
	// ErrorTransient indicates the error is temporary and the operation can be retried.
	// Examples: rate limits, temporary network issues, server overload.
	ErrorTransient ErrorCategory = "transient"

	// ErrorPermanent indicates the error is not recoverable through retry.
	// Examples: invalid API key, insufficient permissions.
	ErrorPermanent ErrorCategory = "permanent"

	// ErrorUserInput indicates the caller sent a request that must be corrected.
	ErrorUserInput ErrorCategory = "user_input"
)

// CategorizedError is an error that provides information about how it should be handled.
// The client never retries; callers that want a retry policy can build it on this.
type CategorizedError interface {
	error
	Category() ErrorCategory
	Retryable() bool           // convenience: returns true if Category == ErrorTransient
	StatusCode() int           // HTTP status code if applicable, 0 otherwise
	RetryAfter() time.Duration // suggested retry delay from server, 0 if not available
}

// ErrorKind is the closed set of classified router failures.
type ErrorKind string

const (
	KindBadRequest          ErrorKind = "bad_request"
	KindUnauthorized        ErrorKind = "unauthorized"
	KindForbidden           ErrorKind = "forbidden"
	KindNotAvailable        ErrorKind = "not_available"
	KindTooManyRequests     ErrorKind = "too_many_requests"
	KindInternalServerError ErrorKind = "internal_server_error"
	KindUnknown             ErrorKind = "unknown"
)

// statusKinds maps router status codes to error kinds. Statuses that are
// not listed classify as KindUnknown.
var statusKinds = map[int]ErrorKind{
	http.StatusBadRequest:          KindBadRequest,
	http.StatusUnauthorized:        KindUnauthorized,
	http.StatusForbidden:           KindForbidden,
	http.StatusNotAcceptable:       KindNotAvailable,
	http.StatusTooManyRequests:     KindTooManyRequests,
	http.StatusInternalServerError: KindInternalServerError,
	http.StatusServiceUnavailable:  KindNotAvailable,
}

// KindForStatus returns the error kind for an HTTP status code.
func KindForStatus(status int) ErrorKind {
	if kind, ok := statusKinds[status]; ok {
		return kind
	}
	return KindUnknown
}

// Category returns how errors of this kind should be handled.
func (k ErrorKind) Category() ErrorCategory {
	switch k {
	case KindTooManyRequests, KindNotAvailable, KindInternalServerError:
		return ErrorTransient
	case KindBadRequest:
		return ErrorUserInput
	default:
		return ErrorPermanent
	}
}

// APIError is a non-success HTTP response from the router.
type APIError struct {
	Kind       ErrorKind
	Code       int           // HTTP status code
	Body       any           // decoded JSON error body, or the raw text when it is not JSON
	RetryDelay time.Duration // from Retry-After header, 0 if not available
}

// Sentinels for matching with errors.Is. Any *APIError of the same kind matches.
var (
	ErrBadRequest          = &APIError{Kind: KindBadRequest}
	ErrUnauthorized        = &APIError{Kind: KindUnauthorized}
	ErrForbidden           = &APIError{Kind: KindForbidden}
	ErrNotAvailable        = &APIError{Kind: KindNotAvailable}
	ErrTooManyRequests     = &APIError{Kind: KindTooManyRequests}
	ErrInternalServerError = &APIError{Kind: KindInternalServerError}
)

// NewAPIError classifies a status code and wraps the decoded body.
func NewAPIError(status int, body any, header http.Header) *APIError {
	return &APIError{
		Kind:       KindForStatus(status),
		Code:       status,
		Body:       body,
		RetryDelay: parseRetryAfter(header),
	}
}

// Error returns the error message.
func (e *APIError) Error() string {
	if e.Code == 0 {
		return fmt.Sprintf("router error: %s", e.Kind)
	}
	return fmt.Sprintf("router error: %s (status %d): %v", e.Kind, e.Code, e.Body)
}

// Is reports whether target is an *APIError of the same kind.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Kind == e.Kind
}

// Category returns the error category.
func (e *APIError) Category() ErrorCategory {
	return e.Kind.Category()
}

// Retryable returns true if the error is transient and can be retried.
func (e *APIError) Retryable() bool {
	return e.Category() == ErrorTransient
}

// StatusCode returns the HTTP status code.
func (e *APIError) StatusCode() int {
	return e.Code
}

// RetryAfter returns the suggested retry delay, or 0 if not available.
func (e *APIError) RetryAfter() time.Duration {
	return e.RetryDelay
}

// Message returns the "message" field of a JSON object body, if present.
func (e *APIError) Message() string {
	if m, ok := e.Body.(map[string]any); ok {
		if s, ok := m["message"].(string); ok {
			return s
		}
	}
	return ""
}

func parseRetryAfter(h http.Header) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// ErrAPITimeout matches any *APITimeoutError via errors.Is.
var ErrAPITimeout = &APITimeoutError{}

// APITimeoutError reports that the transport timed out waiting for a
// unary response. It is never an HTTP-level error.
type APITimeoutError struct {
	Cause error
}

func (e *APITimeoutError) Error() string {
	return "request to router timed out"
}

func (e *APITimeoutError) Unwrap() error { return e.Cause }

// Is reports whether target is an *APITimeoutError.
func (e *APITimeoutError) Is(target error) bool {
	_, ok := target.(*APITimeoutError)
	return ok
}

// Category returns ErrorTransient.
func (e *APITimeoutError) Category() ErrorCategory { return ErrorTransient }

// Retryable returns true.
func (e *APITimeoutError) Retryable() bool { return true }

// StatusCode returns 0.
func (e *APITimeoutError) StatusCode() int { return 0 }

// RetryAfter returns 0.
func (e *APITimeoutError) RetryAfter() time.Duration { return 0 }

// ErrStreamTimeout matches any *StreamTimeoutError via errors.Is.
var ErrStreamTimeout = &StreamTimeoutError{}

// StreamTimeoutError reports that a stream stalled past the read timeout
// while it was being iterated.
type StreamTimeoutError struct {
	Timeout time.Duration
	Cause   error
}

func (e *StreamTimeoutError) Error() string {
	if e.Timeout > 0 {
		return fmt.Sprintf("stream read timed out after %s", e.Timeout)
	}
	return "stream read timed out"
}

func (e *StreamTimeoutError) Unwrap() error { return e.Cause }

// Is reports whether target is a *StreamTimeoutError.
func (e *StreamTimeoutError) Is(target error) bool {
	_, ok := target.(*StreamTimeoutError)
	return ok
}

// Category returns ErrorTransient.
func (e *StreamTimeoutError) Category() ErrorCategory { return ErrorTransient }

// Retryable returns true.
func (e *StreamTimeoutError) Retryable() bool { return true }

// StatusCode returns 0.
func (e *StreamTimeoutError) StatusCode() int { return 0 }

// RetryAfter returns 0.
func (e *StreamTimeoutError) RetryAfter() time.Duration { return 0 }

// StreamingError is an explicit {"event": "error"} frame sent by the router
// in the middle of a stream.
type StreamingError struct {
	Payload map[string]any
}

// Message returns the payload's "message" field, or "" if absent.
func (e *StreamingError) Message() string {
	if s, ok := e.Payload["message"].(string); ok {
		return s
	}
	return ""
}

func (e *StreamingError) Error() string {
	if msg := e.Message(); msg != "" {
		return "stream error: " + msg
	}
	return fmt.Sprintf("stream error: %v", e.Payload)
}

// DecodeError reports a JSON body that does not fit the expected shape.
type DecodeError struct {
	Target string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Target, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// KindOf returns the ErrorKind of an *APIError in err's chain, or "" if none.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

// IsTransient returns true if the error is categorized as transient.
// It checks if the error or any wrapped error implements CategorizedError.
func IsTransient(err error) bool {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category() == ErrorTransient
	}
	return false
}

// IsPermanent returns true if the error is categorized as permanent.
func IsPermanent(err error) bool {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category() == ErrorPermanent
	}
	return false
}

// IsUserInput returns true if the error is categorized as user input error.
func IsUserInput(err error) bool {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category() == ErrorUserInput
	}
	return false
}

// StatusCodeOf returns the HTTP status code from a categorized error, or 0.
func StatusCodeOf(err error) int {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.StatusCode()
	}
	return 0
}

// RetryAfterOf returns the retry delay from a categorized error, or 0.
func RetryAfterOf(err error) time.Duration {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.RetryAfter()
	}
	return 0
}
