package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a business-rule rejection. These are returned to the
// caller as-is; they are not retryable and never fatal to the engine.
type Kind string

const (
	KindInvalidRange            Kind = "invalid_range"
	KindPastDate                Kind = "past_date"
	KindSlotNotOffered          Kind = "slot_not_offered"
	KindSlotConflict            Kind = "slot_conflict"
	KindInvalidStatusTransition Kind = "invalid_status_transition"
	KindNotFound                Kind = "not_found"
	KindForbidden               Kind = "forbidden"
	KindBadInput                Kind = "bad_input"
)

// Error is a business-rule rejection. Anything that is not an *Error is
// treated as an infrastructure failure and surfaced as a 500 so the
// caller can decide whether to retry.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Is lets errors.Is match two business errors by Kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// KindOf returns the business kind of err, or "" if err is not a
// business rejection.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// HTTPStatus maps a business error to the status code handlers respond
// with. A request abandoned while waiting on a resource lock maps to
// 503; other infrastructure errors map to 500.
func HTTPStatus(err error) int {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}
	switch KindOf(err) {
	case KindInvalidRange, KindPastDate, KindBadInput:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindSlotNotOffered, KindSlotConflict, KindInvalidStatusTransition:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
