package analysis

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies an analysis error. Kinds are stable identifiers;
// message text is not.
type ErrorKind string

const (
	ErrMultiClassDecl      ErrorKind = "multi_class_decl"
	ErrMultiEntryPoint     ErrorKind = "multi_entry_point"
	ErrNoEntryPoint        ErrorKind = "no_entry_point"
	ErrDoubleVarDecl       ErrorKind = "double_var_decl"
	ErrUnresolvedName      ErrorKind = "unresolved_name"
	ErrUnresolvedClass     ErrorKind = "unresolved_class"
	ErrTypeMismatch        ErrorKind = "type_mismatch"
	ErrNonClassFieldTarget ErrorKind = "non_class_field_target"
	ErrArityMismatch       ErrorKind = "arity_mismatch"
	ErrThisInStaticMethod  ErrorKind = "this_in_static_method"
	ErrThisOutsideMethod   ErrorKind = "this_outside_method"
)

// Error is a single semantic error with a stable kind.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the error kind from err, or "" if err carries none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// ErrorList aggregates the errors collected by the preprocessing pass.
type ErrorList struct {
	Errors []*Error
}

func (e *ErrorList) Error() string {
	if len(e.Errors) == 0 {
		return "preprocessing failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("preprocessing error: %s", e.Errors[0])
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("preprocessing failed with %d errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err))
	}
	return sb.String()
}
