package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error so handlers can map it to a status code and a
// distinguishable user-visible message.
type Kind string

const (
	// KindUser covers bad or missing input from the caller.
	KindUser Kind = "user"
	// KindScoringUnavailable means the emotion classifier failed or
	// returned nothing; the note must not be persisted.
	KindScoringUnavailable Kind = "scoring_unavailable"
	// KindInsufficientData means an aggregate was requested over fewer
	// observations than it is defined for.
	KindInsufficientData Kind = "insufficient_data"
	// KindInvalidInput marks contract violations such as an unknown
	// emotion label or an empty series where a value is required.
	KindInvalidInput Kind = "invalid_input"
	// KindConflict is a persistence uniqueness violation ("already exists").
	KindConflict Kind = "conflict"
	// KindNotFound covers both missing and not-owned resources; the two
	// are deliberately indistinguishable to the caller.
	KindNotFound Kind = "not_found"
	KindInternal Kind = "internal"
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, or KindInternal when err carries none.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
