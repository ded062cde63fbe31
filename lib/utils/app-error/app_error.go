package apperror

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies an error for callers: workflow errors abort the
// requested transition and surface unchanged; dispatch errors are logged
// and never unwind a committed transition.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindInvalidState Kind = "invalid_state"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindDispatch     Kind = "dispatch"
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(err error, kind Kind, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func Validation(format string, args ...interface{}) error {
	return New(KindValidation, format, args...)
}

func InvalidState(format string, args ...interface{}) error {
	return New(KindInvalidState, format, args...)
}

func NotFound(format string, args ...interface{}) error {
	return New(KindNotFound, format, args...)
}

func Conflict(format string, args ...interface{}) error {
	return New(KindConflict, format, args...)
}

func Dispatch(err error, msg string) error {
	return Wrap(err, KindDispatch, msg)
}

func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
