package domain

// ErrorKind is the closed set of failure categories the system produces.
// Every kind maps deterministically to one HTTP status in the API layer.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindConflict     ErrorKind = "conflict"
	KindConfig       ErrorKind = "config"
	KindInternal     ErrorKind = "internal"
)

// Error is a tagged failure: the Kind drives transport mapping, the
// Message is safe to show to callers, and Details carries the individual
// reasons of an aggregate failure (field validation, store rejections).
type Error struct {
	Kind    ErrorKind
	Message string
	Details []string
}

func (e *Error) Error() string {
	return e.Message
}

// E builds an Error of the given kind.
func E(kind ErrorKind, message string, details ...string) *Error {
	return &Error{Kind: kind, Message: message, Details: details}
}

func NotFound(message string) *Error     { return E(KindNotFound, message) }
func Unauthorized(message string) *Error { return E(KindUnauthorized, message) }
func Forbidden(message string) *Error    { return E(KindForbidden, message) }
func Conflict(message string) *Error     { return E(KindConflict, message) }

// Validation builds a 400-class failure carrying per-field reasons.
func Validation(message string, details ...string) *Error {
	return E(KindValidation, message, details...)
}

// ConfigMissing marks a fatal startup misconfiguration. It must stop the
// process during bootstrap; it is never a recoverable per-request error.
func ConfigMissing(message string) *Error {
	return E(KindConfig, message)
}
