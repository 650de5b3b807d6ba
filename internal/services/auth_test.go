package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func strPtr(s string) *string { return &s }

func TestHMACTokenVerifierRoundTrip(t *testing.T) {
	v, err := NewHMACTokenVerifier("secret", "")
	if err != nil {
		t.Fatalf("NewHMACTokenVerifier: %v", err)
	}
	admin := true
	raw, err := SignIdentityToken("secret", Identity{
		Subject:   "u1",
		Email:     strPtr("u1@example.com"),
		FirstName: strPtr("Ada"),
		IsAdmin:   &admin,
	}, time.Minute)
	if err != nil {
		t.Fatalf("SignIdentityToken: %v", err)
	}
	id, err := v.Verify(context.Background(), raw)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id.Subject != "u1" {
		t.Fatalf("subject: want=u1 got=%s", id.Subject)
	}
	if id.Email == nil || *id.Email != "u1@example.com" {
		t.Fatalf("email: got=%v", id.Email)
	}
	if id.IsAdmin == nil || !*id.IsAdmin {
		t.Fatalf("is_admin claim lost")
	}
	up := id.Upsert()
	if up.ID != "u1" || up.FirstName == nil || *up.FirstName != "Ada" || up.LastName != nil {
		t.Fatalf("upsert payload: got=%+v", up)
	}
}

func TestHMACTokenVerifierRejects(t *testing.T) {
	v, err := NewHMACTokenVerifier("secret", "")
	if err != nil {
		t.Fatalf("NewHMACTokenVerifier: %v", err)
	}

	wrongKey, _ := SignIdentityToken("other", Identity{Subject: "u1"}, time.Minute)
	expired, _ := SignIdentityToken("secret", Identity{Subject: "u1"}, -time.Hour)
	noSub, _ := SignIdentityToken("secret", Identity{}, time.Minute)
	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1"}).SignedString([]byte("secret"))

	cases := map[string]string{
		"empty":     "",
		"garbage":   "not-a-token",
		"wrong key": wrongKey,
		"expired":   expired,
		"no sub":    noSub,
		"no exp":    noExp,
	}
	for name, raw := range cases {
		if _, err := v.Verify(context.Background(), raw); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestNewHMACTokenVerifierRequiresSecret(t *testing.T) {
	if _, err := NewHMACTokenVerifier("  ", ""); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
