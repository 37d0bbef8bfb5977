package users

import (
	"errors"
	"testing"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		expected error
	}{
		{name: "plain", username: "alice", expected: nil},
		{name: "allowed symbols", username: "a.li-ce+@_1", expected: nil},
		{name: "reserved me", username: "me", expected: errReservedUsername},
		{name: "reserved me uppercase", username: "Me", expected: errReservedUsername},
		{name: "space", username: "ali ce", expected: errInvalidUsername},
		{name: "slash", username: "ali/ce", expected: errInvalidUsername},
		{name: "empty", username: "", expected: errInvalidUsername},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateUsername(tt.username)
			if !errors.Is(err, tt.expected) {
				t.Fatalf("validateUsername(%q) = %v, expected %v", tt.username, err, tt.expected)
			}
		})
	}
}

func TestRecipesLimit(t *testing.T) {
	tests := []struct {
		name      string
		value     recipesLimit
		wantError bool
		wantInt   int
	}{
		{name: "absent means no limit", value: "", wantError: false, wantInt: -1},
		{name: "zero", value: "0", wantError: false, wantInt: 0},
		{name: "positive", value: "3", wantError: false, wantInt: 3},
		{name: "negative", value: "-1", wantError: true},
		{name: "non-integer", value: "three", wantError: true},
		{name: "float", value: "1.5", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.value.Validate()
			if tt.wantError {
				if err == nil {
					t.Fatalf("Validate(%q) expected an error", tt.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate(%q) returned unexpected error: %v", tt.value, err)
			}
			if got := tt.value.Int(); got != tt.wantInt {
				t.Errorf("Int(%q) = %d, expected %d", tt.value, got, tt.wantInt)
			}
		})
	}
}
