package types

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every structured error below matches one of these through
// errors.Is.
var (
	// ErrUnknownAttribute means a name does not resolve on the record type
	ErrUnknownAttribute = errors.New("unknown attribute")
	// ErrInvalidAttribute means a name resolves but its kind is unsupported or its value is absent
	ErrInvalidAttribute = errors.New("invalid attribute")
	// ErrInvalidPrecedenceSpec means the precedence list is empty or holds a malformed or unresolvable token
	ErrInvalidPrecedenceSpec = errors.New("invalid precedence spec")
	// ErrComparisonFailed means an attribute could not be read or compared while ordering records
	ErrComparisonFailed = errors.New("comparison failed")

	// ErrMismatchedKinds is the ErrInvalidAttribute case of two values that
	// have no order between them, such as text against a number
	ErrMismatchedKinds = fmt.Errorf("%w: mismatched kinds", ErrInvalidAttribute)
)

// AttributeError reports a failure to resolve or read one attribute
type AttributeError struct {
	Type      string // Record type name
	Attribute string // Bare attribute name
	Err       error  // Wraps ErrUnknownAttribute or ErrInvalidAttribute
}

// Error implements the error interface
func (e *AttributeError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("attribute %q: %v", e.Attribute, e.Err)
	}
	return fmt.Sprintf("attribute %q of %s: %v", e.Attribute, e.Type, e.Err)
}

// Unwrap allows error unwrapping
func (e *AttributeError) Unwrap() error {
	return e.Err
}

// PrecedenceError reports a precedence list that cannot drive a comparison.
// Index is -1 when the list as a whole is at fault.
type PrecedenceError struct {
	Index int
	Token string
	Err   error
}

// Error implements the error interface
func (e *PrecedenceError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%v: %v", ErrInvalidPrecedenceSpec, e.Err)
	}
	return fmt.Sprintf("%v: index %d (%q): %v", ErrInvalidPrecedenceSpec, e.Index, e.Token, e.Err)
}

// Is matches ErrInvalidPrecedenceSpec
func (e *PrecedenceError) Is(target error) bool {
	return target == ErrInvalidPrecedenceSpec
}

// Unwrap allows error unwrapping
func (e *PrecedenceError) Unwrap() error {
	return e.Err
}

// ComparisonError reports an attribute failure hit while comparing records,
// annotated with the precedence entry that triggered it
type ComparisonError struct {
	Index int
	Token string
	Err   error
}

// Error implements the error interface
func (e *ComparisonError) Error() string {
	return fmt.Sprintf("%v at precedence index %d (%q): %v", ErrComparisonFailed, e.Index, e.Token, e.Err)
}

// Is matches ErrComparisonFailed
func (e *ComparisonError) Is(target error) bool {
	return target == ErrComparisonFailed
}

// Unwrap allows error unwrapping
func (e *ComparisonError) Unwrap() error {
	return e.Err
}
