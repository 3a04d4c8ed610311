package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKinds(t *testing.T) {
	driverErr := errors.New("connection refused")
	tests := []struct {
		name    string
		err     error
		check   func(error) bool
		message string
	}{
		{
			name:    "validation",
			err:     Validation("quest_id", "must be a UUID"),
			check:   IsValidation,
			message: "validation failed for quest_id: must be a UUID",
		},
		{
			name:    "not found",
			err:     NotFound("quest", "abc"),
			check:   IsNotFound,
			message: "quest with ID abc not found",
		},
		{
			name:    "forbidden",
			err:     Forbidden("quest belongs to another user"),
			check:   IsAuthorization,
			message: "not authorized: quest belongs to another user",
		},
		{
			name:    "conflict",
			err:     Conflict("quest", "abc", "already completed"),
			check:   IsConflict,
			message: "quest abc: already completed",
		},
		{
			name:    "storage",
			err:     Storage("select", "quest", driverErr),
			check:   IsStorage,
			message: "repository error during select for quest: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("handler: %w", tt.err)
			if !tt.check(wrapped) {
				t.Errorf("kind check failed for wrapped %v", wrapped)
			}
			if got := tt.err.Error(); got != tt.message {
				t.Errorf("Error() got = %q, want %q", got, tt.message)
			}
		})
	}
}

func TestStorageUnwrap(t *testing.T) {
	driverErr := errors.New("timeout")
	err := Storage("update", "stats", driverErr)
	if !errors.Is(err, driverErr) {
		t.Errorf("errors.Is() = false, want true")
	}
	if Storage("update", "stats", nil) != nil {
		t.Errorf("Storage(nil) should be nil")
	}
}

func TestUnauthenticated(t *testing.T) {
	if !IsUnauthenticated(Unauthenticated()) {
		t.Errorf("IsUnauthenticated(Unauthenticated()) = false")
	}
	if IsUnauthenticated(Forbidden("nope")) {
		t.Errorf("IsUnauthenticated(Forbidden()) = true")
	}
	if !IsAuthorization(Unauthenticated()) {
		t.Errorf("IsAuthorization(Unauthenticated()) = false")
	}
}
