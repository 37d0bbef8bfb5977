package password

import (
	"errors"
	"testing"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		expected error
	}{
		{
			name:     "strong password",
			password: "tr0ub4dor&3-verylong",
			expected: nil,
		},
		{
			name:     "too short",
			password: "abc123",
			expected: ErrTooShort,
		},
		{
			name:     "long but low entropy",
			password: "aaaaaaaaaa",
			expected: ErrTooWeak,
		},
		{
			name:     "empty",
			password: "",
			expected: ErrTooShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.expected == nil {
				if err != nil {
					t.Fatalf("ValidatePassword() returned unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.expected) {
				t.Fatalf("ValidatePassword() = %v, expected %v", err, tt.expected)
			}
		})
	}
}
