package jwt

import (
	"testing"
)

var testSecret = []byte("test-secret-with-sufficient-length")

func TestGenerateAndValidateJWT(t *testing.T) {
	signed, err := GenerateJWT(JWTParams{UserID: "42", Role: "user"}, testSecret, DefaultKID)
	if err != nil {
		t.Fatalf("GenerateJWT() returned unexpected error: %v", err)
	}

	token, err := ValidateJWT(signed, DefaultKID, testSecret)
	if err != nil {
		t.Fatalf("ValidateJWT() returned unexpected error: %v", err)
	}
	if !token.Valid {
		t.Fatal("expected a valid token")
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		t.Fatalf("GetSubject() returned unexpected error: %v", err)
	}
	if sub != "42" {
		t.Errorf("expected subject %q, got %q", "42", sub)
	}
}

func TestValidateJWTWrongSecret(t *testing.T) {
	signed, err := GenerateJWT(JWTParams{UserID: "42", Role: "user"}, testSecret, DefaultKID)
	if err != nil {
		t.Fatalf("GenerateJWT() returned unexpected error: %v", err)
	}

	if _, err := ValidateJWT(signed, DefaultKID, []byte("another-secret")); err == nil {
		t.Fatal("expected validation to fail with the wrong secret")
	}
}

func TestValidateJWTWrongKID(t *testing.T) {
	signed, err := GenerateJWT(JWTParams{UserID: "42", Role: "user"}, testSecret, "2")
	if err != nil {
		t.Fatalf("GenerateJWT() returned unexpected error: %v", err)
	}

	if _, err := ValidateJWT(signed, DefaultKID, testSecret); err == nil {
		t.Fatal("expected validation to fail with a mismatched kid")
	}
}

func TestValidateJWTGarbage(t *testing.T) {
	if _, err := ValidateJWT("not.a.jwt", DefaultKID, testSecret); err == nil {
		t.Fatal("expected validation to fail for a malformed token")
	}
}
