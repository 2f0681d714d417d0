package logs

import (
	"fmt"
	"net/http"
)

// ValidationError reports caller-supplied parameters that are malformed
// or mutually incompatible. It is never retried.
type ValidationError struct {
	Message string
	Field   string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid parameter %q: %s", e.Field, e.Message)
	}
	return e.Message
}

// StatusCode returns the HTTP status code for this error.
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }

// Hint returns a suggestion for resolving this error.
func (e *ValidationError) Hint() string {
	if e.Field != "" {
		return fmt.Sprintf("Check the %q parameter of your request.", e.Field)
	}
	return "Check the request parameters."
}

// NotFoundError reports a query against a log group that was never
// populated for the tenant. A group that exists with zero streams does
// not produce this error.
type NotFoundError struct {
	Group string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("log group %q does not exist", e.Group)
}

// StatusCode returns the HTTP status code for this error.
func (e *NotFoundError) StatusCode() int { return http.StatusNotFound }

// Hint returns a suggestion for resolving this error.
func (e *NotFoundError) Hint() string {
	return fmt.Sprintf("Log group %q was never created for this tenant. Populate it first, even with an empty stream list.", e.Group)
}

// InvalidTokenError reports a pagination token that is unknown or was
// already consumed. The only recovery is to restart the listing.
type InvalidTokenError struct {
	Token string
}

func (e *InvalidTokenError) Error() string {
	return "invalid or expired pagination token"
}

// StatusCode returns the HTTP status code for this error.
func (e *InvalidTokenError) StatusCode() int { return http.StatusBadRequest }

// Hint returns a suggestion for resolving this error.
func (e *InvalidTokenError) Hint() string {
	return "Pagination tokens are single-use. Restart the listing without a token."
}

// ConsistencyError reports an event batch that would violate a stream's
// recorded history. The store does not attempt repair; the fixture or
// caller producing the batch is at fault.
type ConsistencyError struct {
	Group  string
	Stream string
	Detail string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("stream %q in group %q: %s", e.Stream, e.Group, e.Detail)
}

// StatusCode returns the HTTP status code for this error.
func (e *ConsistencyError) StatusCode() int { return http.StatusBadRequest }

// Hint returns a suggestion for resolving this error.
func (e *ConsistencyError) Hint() string {
	return "A stream's first event timestamp is fixed by the first batch ever ingested; later batches must share it."
}

// StatusCodeError is implemented by errors that map to an HTTP status.
type StatusCodeError interface {
	error
	StatusCode() int
}
