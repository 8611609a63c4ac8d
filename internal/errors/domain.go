// Package errors defines the error taxonomy shared by the fee service and
// its HTTP boundary. Every failure a caller can observe is a DomainError
// with one of three kinds; the handlers map kinds to status codes without
// inspecting messages.
package errors

import (
	stderrors "errors"
	"fmt"
)

type Kind int

const (
	// KindValidation covers malformed or semantically invalid client input.
	KindValidation Kind = iota
	// KindNotFound means no fee configuration matched the transaction.
	KindNotFound
	// KindInternal marks invariant violations. The message is for operators;
	// callers only ever see a generic server error.
	KindInternal
)

type DomainError struct {
	Kind    Kind
	Message string
}

func (e *DomainError) Error() string { return e.Message }

func Validation(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Internal(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindInternal, Message: fmt.Sprintf(format, args...)}
}

// KindOf classifies any error. Errors that are not DomainErrors are treated
// as internal faults.
func KindOf(err error) Kind {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}
