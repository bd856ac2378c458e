package compute

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrUnsupportedIdentifier = errors.New("unsupported identifier")
	ErrNotSet                = errors.New("argument not set")
	ErrAllocationFailure     = errors.New("allocation failure")
	ErrNullResult            = errors.New("compute invoked without input or result wired")
	ErrUnsupportedMethod     = errors.New("no kernel registered for method and data type")
)

// Violation describes a single violated constraint found during check().
type Violation struct {
	Arg     string // Argument or parameter field involved
	Details string // What was expected and what was found
}

// String implements fmt.Stringer.
func (v Violation) String() string {
	if v.Arg != "" {
		return fmt.Sprintf("%s: %s", v.Arg, v.Details)
	}
	return v.Details
}

// ValidationError aggregates every constraint violation found by a
// check() call, so a caller can report all problems at once instead of
// fixing them one at a time. Err, when set, categorizes the failure
// (ErrInvalidInput for input checks) and is reachable via errors.Is.
type ValidationError struct {
	Violations []Violation
	Err        error
}

// Unwrap returns the category sentinel, if any.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Violations) == 1 {
		return fmt.Sprintf("validation failed: %s", e.Violations[0])
	}
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("validation failed (%d violations): %s", len(e.Violations), strings.Join(parts, "; "))
}

// Add records a violation.
func (e *ValidationError) Add(arg, format string, args ...any) {
	e.Violations = append(e.Violations, Violation{Arg: arg, Details: fmt.Sprintf(format, args...)})
}

// ErrOrNil returns the error if any violation was recorded, nil otherwise.
func (e *ValidationError) ErrOrNil() error {
	if len(e.Violations) == 0 {
		return nil
	}
	return e
}
