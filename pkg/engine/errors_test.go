package engine

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestPlacementError_Formatting(t *testing.T) {
	err := NewSyntaxError("bad spacing", nil).
		WithLocation("feeders.conf", 12).
		WithToken("spacing:")

	msg := err.Error()
	for _, want := range []string{"feeders.conf:12", "syntax", "bad spacing", `"spacing:"`} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error %q should contain %q", msg, want)
		}
	}
}

func TestPlacementError_Classification(t *testing.T) {
	tests := []struct {
		err   error
		check func(error) bool
		fatal bool
	}{
		{NewSyntaxError("x", nil), IsSyntax, true},
		{NewScopeError("x"), IsScope, true},
		{NewLookupError("x"), IsLookup, false},
		{NewInvariantError("x"), IsInvariant, true},
		{NewDepletedError("x"), IsDepleted, false},
	}

	for _, tt := range tests {
		if !tt.check(tt.err) {
			t.Errorf("Predicate rejected its own class: %v", tt.err)
		}
		if IsFatal(tt.err) != tt.fatal {
			t.Errorf("IsFatal(%v) = %v, want %v", tt.err, IsFatal(tt.err), tt.fatal)
		}
	}

	// Wrapped errors classify through the chain.
	wrapped := fmt.Errorf("loading config: %w", NewScopeError("angle without tape"))
	if !IsScope(wrapped) {
		t.Error("Classification should see through wrapping")
	}
	if IsSyntax(errors.New("plain")) {
		t.Error("Plain errors have no class")
	}
}

func TestPlacementError_Unwrap(t *testing.T) {
	cause := errors.New("strconv failure")
	err := NewSyntaxError("bad count", cause)
	if !errors.Is(err, cause) {
		t.Error("Underlying error should be reachable via errors.Is")
	}
}
