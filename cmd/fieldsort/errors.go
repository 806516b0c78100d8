package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arthur-debert/fieldsort/fieldsort/dataset"
	"github.com/arthur-debert/fieldsort/types"
)

// CLIError represents a user-friendly CLI error with context and suggestions
type CLIError struct {
	Operation   string   // The operation that failed (e.g., "sort people.yaml")
	Cause       string   // The underlying cause (e.g., "unknown attribute")
	Details     string   // Additional technical details
	Suggestions []string // Helpful suggestions for the user
	Underlying  error    // Original error for debugging
}

// Error implements the error interface
func (e *CLIError) Error() string {
	var msg strings.Builder

	if e.Operation != "" {
		msg.WriteString(fmt.Sprintf("Failed to %s", e.Operation))
	} else {
		msg.WriteString("Operation failed")
	}

	if e.Cause != "" {
		msg.WriteString(fmt.Sprintf(": %s", e.Cause))
	}

	if e.Details != "" {
		msg.WriteString(fmt.Sprintf(" (%s)", e.Details))
	}

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n\nSuggestions:")
		for i, suggestion := range e.Suggestions {
			msg.WriteString(fmt.Sprintf("\n  %d. %s", i+1, suggestion))
		}
	}

	return msg.String()
}

// Unwrap returns the underlying error
func (e *CLIError) Unwrap() error {
	return e.Underlying
}

// NewFileError creates an error for failures reading or writing record files
func NewFileError(operation string, underlying error, suggestions ...string) *CLIError {
	cause := "file operation failed"
	details := ""

	if underlying != nil {
		details = underlying.Error()

		errStr := strings.ToLower(underlying.Error())
		switch {
		case strings.Contains(errStr, "no such file"):
			cause = "record file not found"
		case strings.Contains(errStr, "permission denied"):
			cause = "insufficient permissions to access the record file"
		case strings.Contains(errStr, "failed to acquire lock"):
			cause = "record file is locked by another process"
		case strings.Contains(errStr, "no format registered"), strings.Contains(errStr, "no file extension"):
			cause = "unsupported record file"
		}
	}

	return &CLIError{
		Operation:   operation,
		Cause:       cause,
		Details:     details,
		Suggestions: suggestions,
		Underlying:  underlying,
	}
}

// NewSortError turns a precedence or comparison failure into advice about
// the --by list
func NewSortError(operation string, err error, acc *dataset.Accessor) *CLIError {
	cliErr := &CLIError{Operation: operation, Details: err.Error(), Underlying: err}

	var attrErr *types.AttributeError
	switch {
	case errors.Is(err, types.ErrUnknownAttribute) && errors.As(err, &attrErr):
		cliErr.Cause = fmt.Sprintf("unknown attribute %q", attrErr.Attribute)
		cliErr.Details = ""
		cliErr.Suggestions = []string{CommonSuggestions.CaseSensitive}
		if names := acc.Names(); len(names) > 0 {
			cliErr.Suggestions = append(cliErr.Suggestions,
				fmt.Sprintf("Available attributes: %s", strings.Join(names, ", ")))
		}
		cliErr.Suggestions = append(cliErr.Suggestions, CommonSuggestions.RunFields)

	case errors.Is(err, types.ErrEmptyPrecedence):
		cliErr.Cause = "no attributes to sort by"
		cliErr.Details = ""
		cliErr.Suggestions = []string{CommonSuggestions.ByFormat, CommonSuggestions.CheckConfig}

	case errors.Is(err, types.ErrInvalidPrecedenceSpec):
		cliErr.Cause = "invalid --by list"
		cliErr.Suggestions = []string{CommonSuggestions.ByFormat}

	case errors.Is(err, types.ErrMismatchedKinds):
		cliErr.Cause = "values of different kinds cannot be compared"
		cliErr.Suggestions = []string{
			"Use one kind of value (text, number, boolean or date) per attribute",
			CommonSuggestions.RunFields,
		}

	case errors.Is(err, types.ErrInvalidAttribute):
		cliErr.Cause = "a record has no value for a sort attribute"
		cliErr.Suggestions = []string{
			"Give every record a non-null value for each --by attribute",
			CommonSuggestions.RunFields,
		}

	case errors.Is(err, types.ErrComparisonFailed):
		cliErr.Cause = "records cannot be compared"

	default:
		cliErr.Cause = "sort failed"
	}

	return cliErr
}

// WrapError wraps an existing error with CLI-friendly context
func WrapError(operation string, err error, suggestions ...string) error {
	if err == nil {
		return nil
	}

	// If it's already a CLIError, just update the operation
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		if cliErr.Operation == "" {
			cliErr.Operation = operation
		}
		return cliErr
	}

	return NewFileError(operation, err, suggestions...)
}

// Common error messages and suggestions
var (
	CommonSuggestions = struct {
		CaseSensitive string
		RunFields     string
		ByFormat      string
		CheckConfig   string
		CheckPerms    string
	}{
		CaseSensitive: "Attribute names are case-sensitive",
		RunFields:     "Run 'fieldsort fields FILE' to list attributes and their kinds",
		ByFormat:      "Use --by with comma-separated names, '-' marks descending (e.g. --by -age,name)",
		CheckConfig:   "Set 'by' in fieldsort.yaml or FIELDSORT_BY to sort without --by",
		CheckPerms:    "Check file permissions and directory access",
	}
)
