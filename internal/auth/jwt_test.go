package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	testSecret = "test-secret"
	testIssuer = "creator-marketplace"
)

func TestParseJWT_RoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateJWT(testSecret, testIssuer, userID, "brand", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseJWT(testSecret, testIssuer, token)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("user_id = %s, want %s", claims.UserID, userID)
	}
	if claims.Role != "brand" {
		t.Errorf("role = %q, want brand", claims.Role)
	}
}

func TestParseJWT_WrongSecret(t *testing.T) {
	token, _ := GenerateJWT(testSecret, testIssuer, uuid.New(), "brand", time.Hour)

	if _, err := ParseJWT("other-secret", testIssuer, token); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParseJWT_WrongIssuer(t *testing.T) {
	token, _ := GenerateJWT(testSecret, "someone-else", uuid.New(), "brand", time.Hour)

	if _, err := ParseJWT(testSecret, testIssuer, token); err == nil {
		t.Fatal("expected error for wrong issuer")
	}
	if _, err := ParseJWT(testSecret, "", token); err != nil {
		t.Fatalf("empty issuer should skip the check, got: %v", err)
	}
}

func TestGenerateJWT_DefaultExpiration(t *testing.T) {
	token, _ := GenerateJWT(testSecret, testIssuer, uuid.New(), "creator", -time.Hour)
	// non-positive expiration falls back to 24h
	if _, err := ParseJWT(testSecret, testIssuer, token); err != nil {
		t.Fatalf("expected default expiration, got: %v", err)
	}
}

func TestParseJWT_Expired(t *testing.T) {
	claims := Claims{
		UserID: uuid.New(),
		Role:   "brand",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			Issuer:    testIssuer,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseJWT(testSecret, testIssuer, token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestParseJWT_MissingUserID(t *testing.T) {
	token, _ := GenerateJWT(testSecret, testIssuer, uuid.Nil, "brand", time.Hour)

	if _, err := ParseJWT(testSecret, testIssuer, token); err == nil {
		t.Fatal("expected error for token without user_id")
	}
}

func TestParseJWT_Garbage(t *testing.T) {
	if _, err := ParseJWT(testSecret, testIssuer, "not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
