package oshi

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors - use with errors.Is()
var (
	ErrTransport       = errors.New("oshibot: transport failure")
	ErrProtocol        = errors.New("oshibot: invalid response")
	ErrUnauthorized    = errors.New("oshibot: unauthorized (invalid token)")
	ErrGroupAssignment = errors.New("oshibot: bot not assigned to group")
	ErrNotFound        = errors.New("oshibot: not found")
	ErrRateLimited     = errors.New("oshibot: rate limit exceeded")
	ErrAPI             = errors.New("oshibot: api error")

	// Client errors
	ErrCircuitOpen      = errors.New("oshibot: circuit breaker open")
	ErrResponseTooLarge = errors.New("oshibot: response too large")

	// Validation errors
	ErrInvalidToken  = errors.New("oshibot: bot token is required")
	ErrInvalidConfig = errors.New("oshibot: invalid configuration")
)

// Kind classifies a failed call. The set is closed: every error returned by
// the request executor carries exactly one of these.
type Kind int

const (
	// KindTransport: no HTTP response was obtained (refused, DNS, timeout, cancelled).
	KindTransport Kind = iota + 1
	// KindProtocol: a response arrived but its body is not a JSON object.
	KindProtocol
	// KindAuth: HTTP 401.
	KindAuth
	// KindGroupAssignment: HTTP 403, the bot may not post into the group.
	KindGroupAssignment
	// KindNotFound: HTTP 404.
	KindNotFound
	// KindRateLimit: HTTP 429 that survived the single permitted retry.
	KindRateLimit
	// KindAPI: any other status >= 400.
	KindAPI
)

var kindNames = map[Kind]string{
	KindTransport:       "transport",
	KindProtocol:        "protocol",
	KindAuth:            "auth",
	KindGroupAssignment: "group_assignment",
	KindNotFound:        "not_found",
	KindRateLimit:       "rate_limit",
	KindAPI:             "api",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Sentinel returns the sentinel error matched by errors.Is for this kind.
func (k Kind) Sentinel() error {
	switch k {
	case KindTransport:
		return ErrTransport
	case KindProtocol:
		return ErrProtocol
	case KindAuth:
		return ErrUnauthorized
	case KindGroupAssignment:
		return ErrGroupAssignment
	case KindNotFound:
		return ErrNotFound
	case KindRateLimit:
		return ErrRateLimited
	default:
		return ErrAPI
	}
}

// Error is a classified failure of one bot API operation.
// Use errors.As() to extract it and switch on Kind, or errors.Is() with a sentinel.
type Error struct {
	Kind      Kind
	Status    int    // HTTP status; 0 for transport failures
	Message   string // server-supplied or default message
	Method    string // HTTP method of the operation
	Path      string // API path, e.g. /api/bot/send
	Addr      string // target address (base URL + path, no query)
	RequestID string // X-Request-ID shared by every attempt
	cause     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("oshibot: ")
	if e.Method != "" {
		fmt.Fprintf(&b, "%s %s failed: ", e.Method, e.Path)
	}
	b.WriteString(e.Message)
	if e.Status > 0 {
		fmt.Fprintf(&b, " (status=%d)", e.Status)
	}
	if e.cause != nil {
		fmt.Fprintf(&b, ": %v", e.cause)
	}
	return b.String()
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.cause == nil {
		return []error{e.Kind.Sentinel()}
	}
	return []error{e.Kind.Sentinel(), e.cause}
}

// Cause returns the underlying error, if any.
func (e *Error) Cause() error { return e.cause }

// NewError creates a classified error.
func NewError(kind Kind, status int, message string) *Error {
	return &Error{Kind: kind, Status: status, Message: message}
}

// NewTransportError creates a KindTransport error for addr.
func NewTransportError(addr, message string, cause error) *Error {
	return &Error{
		Kind:    KindTransport,
		Message: message,
		Addr:    addr,
		cause:   cause,
	}
}

// NewProtocolError creates a KindProtocol error carrying the raw status.
func NewProtocolError(status int, cause error) *Error {
	return &Error{
		Kind:    KindProtocol,
		Status:  status,
		Message: fmt.Sprintf("Invalid response from server (HTTP %d)", status),
		cause:   cause,
	}
}

// NewRateLimitError creates a KindRateLimit error.
func NewRateLimitError(cause error) *Error {
	return &Error{
		Kind:    KindRateLimit,
		Status:  429,
		Message: "Rate limit: max 60 messages/minute",
		cause:   cause,
	}
}

// KindOf returns the Kind of a classified error, or 0 if err is not one.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// ValidationError represents a local precondition failure.
// No request is sent when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("oshibot: validation: %s - %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
