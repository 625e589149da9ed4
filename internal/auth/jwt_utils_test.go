package auth

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, "shopkeeper")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 42 || claims.Role != "shopkeeper" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	token, err := GenerateToken(1, "owner")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ValidateToken(token + "x"); err == nil {
		t.Fatal("expected tampered token to be rejected")
	}
	if _, err := ValidateToken("not-a-token"); err == nil {
		t.Fatal("expected garbage token to be rejected")
	}
}
