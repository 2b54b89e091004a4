package engine

import (
	"errors"
	"fmt"
)

// ErrorClass represents the classification of an error for abort-or-degrade
// decisions during parsing and sequencing.
type ErrorClass string

const (
	// ErrorClassSyntax indicates an unparseable line: malformed numeric
	// fields, wrong field count, or an unknown token. Fatal.
	ErrorClassSyntax ErrorClass = "syntax"

	// ErrorClassScope indicates a structurally valid attribute in an
	// invalid parser scope, e.g. "spacing:" before any "Tape:". Fatal.
	ErrorClassScope ErrorClass = "scope"

	// ErrorClassLookup indicates an unresolved reference: an unknown
	// designator in the measured format, or a board part with no mapped
	// feeder. Non-fatal; the affected derivation is skipped.
	ErrorClassLookup ErrorClass = "lookup"

	// ErrorClassInvariant indicates a well-formed configuration that
	// violates a physical invariant, e.g. a feeder pickup below bed
	// level. Fatal.
	ErrorClassInvariant ErrorClass = "invariant"

	// ErrorClassDepleted indicates a feeder advanced past zero remaining
	// stock. Non-fatal; logged so the operator can restock.
	ErrorClassDepleted ErrorClass = "depleted"
)

// PlacementError is a classified error with source-location context.
type PlacementError struct {
	// Class is the error classification.
	Class ErrorClass `json:"class"`

	// Message is the human-readable error message.
	Message string `json:"message"`

	// File and Line locate the offending configuration line, when the
	// error originates from a parser.
	File string `json:"file,omitempty"`
	Line int    `json:"line,omitempty"`

	// Token is the offending token, when one exists.
	Token string `json:"token,omitempty"`

	// Component is the component identity or designator involved.
	Component string `json:"component,omitempty"`

	// Err is the underlying error, if any.
	Err error `json:"-"`
}

// Error implements the error interface.
func (e *PlacementError) Error() string {
	msg := e.Message
	if e.Token != "" {
		msg = fmt.Sprintf("%s: %q", msg, e.Token)
	}
	if e.Component != "" {
		msg = fmt.Sprintf("%s (component=%s)", msg, e.Component)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.File != "" {
		return fmt.Sprintf("%s:%d: [%s] %s", e.File, e.Line, e.Class, msg)
	}
	return fmt.Sprintf("[%s] %s", e.Class, msg)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *PlacementError) Unwrap() error { return e.Err }

// Is implements error equality for errors.Is: two placement errors match
// when their classes match.
func (e *PlacementError) Is(target error) bool {
	t, ok := target.(*PlacementError)
	if !ok {
		return false
	}
	return e.Class == t.Class
}

// NewSyntaxError creates a fatal syntax error.
func NewSyntaxError(message string, err error) *PlacementError {
	return &PlacementError{Class: ErrorClassSyntax, Message: message, Err: err}
}

// NewScopeError creates a fatal out-of-scope attribute error.
func NewScopeError(message string) *PlacementError {
	return &PlacementError{Class: ErrorClassScope, Message: message}
}

// NewLookupError creates a non-fatal unresolved-reference error.
func NewLookupError(message string) *PlacementError {
	return &PlacementError{Class: ErrorClassLookup, Message: message}
}

// NewInvariantError creates a fatal invariant-violation error.
func NewInvariantError(message string) *PlacementError {
	return &PlacementError{Class: ErrorClassInvariant, Message: message}
}

// NewDepletedError creates a non-fatal feeder-depletion error.
func NewDepletedError(message string) *PlacementError {
	return &PlacementError{Class: ErrorClassDepleted, Message: message}
}

// WithLocation adds file:line context to an error.
func (e *PlacementError) WithLocation(file string, line int) *PlacementError {
	e.File = file
	e.Line = line
	return e
}

// WithToken adds the offending token to an error.
func (e *PlacementError) WithToken(token string) *PlacementError {
	e.Token = token
	return e
}

// WithComponent adds the component identity to an error.
func (e *PlacementError) WithComponent(component string) *PlacementError {
	e.Component = component
	return e
}

// classOf extracts the class of a placement error, or "" for other errors.
func classOf(err error) ErrorClass {
	var e *PlacementError
	if errors.As(err, &e) {
		return e.Class
	}
	return ""
}

// IsSyntax returns true for syntax-class errors.
func IsSyntax(err error) bool { return classOf(err) == ErrorClassSyntax }

// IsScope returns true for scope-class errors.
func IsScope(err error) bool { return classOf(err) == ErrorClassScope }

// IsLookup returns true for lookup-class errors.
func IsLookup(err error) bool { return classOf(err) == ErrorClassLookup }

// IsInvariant returns true for invariant-class errors.
func IsInvariant(err error) bool { return classOf(err) == ErrorClassInvariant }

// IsDepleted returns true for depletion-class errors.
func IsDepleted(err error) bool { return classOf(err) == ErrorClassDepleted }

// IsFatal returns true if the error must abort the run. Syntax, scope and
// invariant errors are fatal; lookup and depletion errors degrade.
func IsFatal(err error) bool {
	switch classOf(err) {
	case ErrorClassSyntax, ErrorClassScope, ErrorClassInvariant:
		return true
	}
	return false
}
