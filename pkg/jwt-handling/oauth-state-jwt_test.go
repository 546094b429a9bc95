package jwthandling

import (
	"testing"
	"time"
)

func TestOAuthStateToken(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		token, err := GenerateOAuthStateToken(time.Minute, "nonce-1", "/v1/pdf", "secret")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		claims, valid, err := ValidateOAuthStateToken(token, "secret")
		if err != nil || !valid {
			t.Fatalf("token should be valid: %v", err)
		}
		if claims.Nonce != "nonce-1" || claims.ReturnTo != "/v1/pdf" {
			t.Errorf("unexpected claims: %+v", claims)
		}
	})

	t.Run("wrong key", func(t *testing.T) {
		token, err := GenerateOAuthStateToken(time.Minute, "nonce-1", "", "secret")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, valid, err := ValidateOAuthStateToken(token, "other")
		if valid || err == nil {
			t.Error("token signed with another key must be rejected")
		}
	})

	t.Run("expired", func(t *testing.T) {
		token, err := GenerateOAuthStateToken(-time.Minute, "nonce-1", "", "secret")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, valid, _ := ValidateOAuthStateToken(token, "secret")
		if valid {
			t.Error("expired token must be rejected")
		}
	})

	t.Run("garbage", func(t *testing.T) {
		_, valid, err := ValidateOAuthStateToken("not-a-token", "secret")
		if valid || err == nil {
			t.Error("garbage must be rejected")
		}
	})
}
