package security

import (
	"strings"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, []string{"USER", "ADMIN"})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.UserID != 42 || len(claims.Roles) != 2 || claims.Issuer != defaultJWTIssuer {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	sig, err := ExtractSignature(token)
	if err != nil || sig == "" || !strings.HasSuffix(token, sig) {
		t.Fatalf("unexpected signature %q, %v", sig, err)
	}
}

func TestValidateTokenTampered(t *testing.T) {
	token, err := GenerateToken(42, nil)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	parts := strings.Split(token, ".")
	forged := parts[0] + "." + parts[1] + ".invalid"
	if _, err = ValidateToken(forged); err == nil {
		t.Fatalf("tampered token must be rejected")
	}
	if _, err = ExtractSignature("not-a-token"); err == nil {
		t.Fatalf("malformed token must be rejected")
	}
}

func TestValidateTokenAnonymousUser(t *testing.T) {
	token, err := GenerateToken(0, nil)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err = ValidateToken(token); err == nil {
		t.Fatalf("token for user 0 must be rejected")
	}
}
