package argon2id

import (
	"errors"
	"strings"
	"testing"
)

// fast parameters so the suite does not burn CPU
var testParams = Params{
	Memory:      16 * 1024,
	Iterations:  1,
	Parallelism: 2,
	SaltLength:  16,
	KeyLength:   32,
}

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("correct horse battery staple", testParams)
	if err != nil {
		t.Fatalf("Hash() returned unexpected error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("unexpected hash format: %q", hash)
	}

	match, err := Verify("correct horse battery staple", hash)
	if err != nil {
		t.Fatalf("Verify() returned unexpected error: %v", err)
	}
	if !match {
		t.Error("expected matching password to verify")
	}

	match, err = Verify("wrong password", hash)
	if err != nil {
		t.Fatalf("Verify() returned unexpected error: %v", err)
	}
	if match {
		t.Error("expected non-matching password to fail")
	}
}

func TestHashUniqueSalt(t *testing.T) {
	a, err := Hash("same password", testParams)
	if err != nil {
		t.Fatalf("Hash() returned unexpected error: %v", err)
	}
	b, err := Hash("same password", testParams)
	if err != nil {
		t.Fatalf("Hash() returned unexpected error: %v", err)
	}
	if a == b {
		t.Error("two hashes of the same password should differ by salt")
	}
}

func TestVerifyInvalidHash(t *testing.T) {
	tests := []struct {
		name     string
		hash     string
		expected error
	}{
		{
			name:     "empty string",
			hash:     "",
			expected: ErrInvalidHash,
		},
		{
			name:     "wrong algorithm",
			hash:     "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$a2V5",
			expected: ErrInvalidHash,
		},
		{
			name:     "wrong version",
			hash:     "$argon2id$v=12$m=65536,t=1,p=4$c2FsdA$a2V5",
			expected: ErrIncompatibleVersion,
		},
		{
			name:     "corrupt salt",
			hash:     "$argon2id$v=19$m=65536,t=1,p=4$!!!$a2V5",
			expected: ErrInvalidHash,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Verify("password", tt.hash)
			if !errors.Is(err, tt.expected) {
				t.Fatalf("Verify() = %v, expected %v", err, tt.expected)
			}
		})
	}
}
