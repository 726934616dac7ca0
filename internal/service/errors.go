package service

import (
	"errors"
	"fmt"

	"github.com/sunethdesoyza/lyst-backend/internal/store"
)

// Kind classifies the deliberate control-flow errors services return
// to the boundary layer. Anything outside the taxonomy is an
// unexpected failure and is wrapped with operation context instead.
type Kind int

const (
	// KindNotFound: the referenced record does not exist within the
	// caller's scope.
	KindNotFound Kind = iota + 1
	// KindInvalidOperation: a business-rule violation, e.g. mutating
	// an archived list or revoking a share you do not own.
	KindInvalidOperation
	// KindConflict: a uniqueness violation or a blocked deletion.
	KindConflict
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func InvalidOperationf(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidOperation, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func isKind(err error, kind Kind) bool {
	var svcErr *Error
	return errors.As(err, &svcErr) && svcErr.Kind == kind
}

func IsNotFound(err error) bool         { return isKind(err, KindNotFound) }
func IsInvalidOperation(err error) bool { return isKind(err, KindInvalidOperation) }
func IsConflict(err error) bool         { return isKind(err, KindConflict) }

// notFoundOr converts a store miss into a NotFound service error and
// wraps anything else with the given operation description.
func notFoundOr(err error, op, message string) error {
	if errors.Is(err, store.ErrNotFound) {
		return NotFoundf("%s", message)
	}
	return fmt.Errorf("%s: %w", op, err)
}
