package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name        string
		err         *Error
		wantKind    Kind
		wantCode    string
		wantMessage string
	}{
		{
			name:        "not found",
			err:         NotFound("Task", "abc-123"),
			wantKind:    KindNotFound,
			wantCode:    CodeNotFound,
			wantMessage: "Task with id abc-123 not found",
		},
		{
			name:        "authentication",
			err:         Authentication("Invalid credentials"),
			wantKind:    KindAuthentication,
			wantCode:    CodeAuthentication,
			wantMessage: "Invalid credentials",
		},
		{
			name:        "authorization",
			err:         Authorization("You don't have access to this task"),
			wantKind:    KindAuthorization,
			wantCode:    CodeAuthorization,
			wantMessage: "You don't have access to this task",
		},
		{
			name:        "validation",
			err:         Validation("Title must be between 1 and 200 characters"),
			wantKind:    KindValidation,
			wantCode:    CodeValidation,
			wantMessage: "Title must be between 1 and 200 characters",
		},
		{
			name:        "duplicate",
			err:         Duplicate("User", "email", "a@b.com"),
			wantKind:    KindDuplicate,
			wantCode:    CodeDuplicate,
			wantMessage: "User with email 'a@b.com' already exists",
		},
		{
			name:        "business rule",
			err:         BusinessRule("rule broken"),
			wantKind:    KindBusinessRule,
			wantCode:    CodeBusinessRule,
			wantMessage: "rule broken",
		},
		{
			name:        "task assignment",
			err:         TaskAssignment("Cannot assign task to inactive user"),
			wantKind:    KindBusinessRule,
			wantCode:    CodeBusinessRule,
			wantMessage: "Task assignment error: Cannot assign task to inactive user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", tt.err.Kind, tt.wantKind)
			}
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", tt.err.Code, tt.wantCode)
			}
			if tt.err.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", tt.err.Message, tt.wantMessage)
			}
			wantString := tt.wantCode + ": " + tt.wantMessage
			if tt.err.Error() != wantString {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), wantString)
			}
		})
	}
}

func TestFrom(t *testing.T) {
	orig := NotFound("User", "u-1")

	t.Run("direct error", func(t *testing.T) {
		got, ok := From(orig)
		if !ok {
			t.Fatal("From() ok = false, want true")
		}
		if got != orig {
			t.Errorf("From() = %v, want %v", got, orig)
		}
	})

	t.Run("wrapped error", func(t *testing.T) {
		wrapped := fmt.Errorf("handling request: %w", orig)
		got, ok := From(wrapped)
		if !ok {
			t.Fatal("From() ok = false for wrapped error, want true")
		}
		if got.Code != CodeNotFound {
			t.Errorf("Code = %q, want %q", got.Code, CodeNotFound)
		}
	})

	t.Run("plain error", func(t *testing.T) {
		if _, ok := From(errors.New("boom")); ok {
			t.Error("From() ok = true for plain error, want false")
		}
	})
}

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantOK      bool
		wantKind    Kind
		wantMessage string
	}{
		{
			name:        "plain taxonomy string",
			input:       "AUTHENTICATION_ERROR: Invalid credentials",
			wantOK:      true,
			wantKind:    KindAuthentication,
			wantMessage: "Invalid credentials",
		},
		{
			name:        "prefixed by transport error text",
			input:       "service call failed: ENTITY_NOT_FOUND: Task with id t-9 not found",
			wantOK:      true,
			wantKind:    KindNotFound,
			wantMessage: "Task with id t-9 not found",
		},
		{
			name:   "no taxonomy code",
			input:  "dial tcp: connection refused",
			wantOK: false,
		},
		{
			name:   "code without separator",
			input:  "VALIDATION_ERROR without colon",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", got.Kind, tt.wantKind)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	// Errors crossing the service container arrive as plain strings; Parse
	// must recover what Error() rendered.
	for _, orig := range []*Error{
		NotFound("TaskList", "l-1"),
		Authentication("Invalid token"),
		Authorization("denied"),
		Validation("bad input"),
		Duplicate("User", "username", "bob"),
		TaskAssignment("Cannot assign task to inactive user"),
	} {
		got, ok := Parse(orig.Error())
		if !ok {
			t.Fatalf("Parse(%q) ok = false, want true", orig.Error())
		}
		if got.Kind != orig.Kind || got.Code != orig.Code || got.Message != orig.Message {
			t.Errorf("round trip of %q = %+v, want %+v", orig.Error(), got, orig)
		}
	}
}
