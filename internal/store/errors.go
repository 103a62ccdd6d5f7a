package store

import "errors"

// Sentinels for the store error taxonomy. Stores return wrapped values
// that carry caller-facing messages; handlers match with errors.Is and
// surface the message in the response envelope.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

type storeError struct {
	kind error
	msg  string
}

func (e *storeError) Error() string { return e.msg }

func (e *storeError) Is(target error) bool { return target == e.kind }

func notFound(entity string) error {
	return &storeError{kind: ErrNotFound, msg: entity + " not found"}
}

func notFoundMessage(msg string) error {
	return &storeError{kind: ErrNotFound, msg: msg}
}

func conflict(msg string) error {
	return &storeError{kind: ErrConflict, msg: msg}
}
