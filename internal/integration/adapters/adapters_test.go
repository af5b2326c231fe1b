// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func TestTokenService(t *testing.T) {
	svc := NewTokenService("unit-test-secret", 15*time.Minute)
	userID := uuid.New()

	t.Run("round trip preserves claims", func(t *testing.T) {
		token, err := svc.GenerateAccessToken(context.Background(), userID, "user@example.com")
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}

		claims, err := svc.ValidateAccessToken(context.Background(), token)
		if err != nil {
			t.Fatalf("failed to validate token: %v", err)
		}
		if claims.UserID != userID {
			t.Errorf("expected user ID %s, got %s", userID, claims.UserID)
		}
		if claims.Email != "user@example.com" {
			t.Errorf("expected email user@example.com, got %s", claims.Email)
		}
		if !claims.ExpiresAt.After(time.Now()) {
			t.Error("expected expiry in the future")
		}
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		other := NewTokenService("different-secret", 15*time.Minute)
		token, err := other.GenerateAccessToken(context.Background(), userID, "user@example.com")
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}

		if _, err := svc.ValidateAccessToken(context.Background(), token); err == nil {
			t.Error("expected validation to fail for a foreign signature")
		}
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expired := NewTokenService("unit-test-secret", -1*time.Minute)
		token, err := expired.GenerateAccessToken(context.Background(), userID, "user@example.com")
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}

		if _, err := svc.ValidateAccessToken(context.Background(), token); err == nil {
			t.Error("expected validation to fail for an expired token")
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		if _, err := svc.ValidateAccessToken(context.Background(), "not.a.token"); err == nil {
			t.Error("expected validation to fail for malformed input")
		}
	})
}

func TestPasswordService(t *testing.T) {
	svc := NewPasswordService()

	t.Run("hash and verify", func(t *testing.T) {
		hash, err := svc.HashPassword("correct horse battery staple")
		if err != nil {
			t.Fatalf("failed to hash password: %v", err)
		}
		if hash == "correct horse battery staple" {
			t.Fatal("hash must not equal the plain password")
		}

		if err := svc.VerifyPassword(hash, "correct horse battery staple"); err != nil {
			t.Errorf("expected matching password to verify: %v", err)
		}
		if err := svc.VerifyPassword(hash, "wrong password"); err == nil {
			t.Error("expected mismatched password to fail verification")
		}
	})

	t.Run("strength validation", func(t *testing.T) {
		if err := svc.ValidatePasswordStrength("short1!"); err == nil {
			t.Error("expected a 7-character password to be rejected")
		}
		if err := svc.ValidatePasswordStrength("longenough"); err != nil {
			t.Errorf("expected an 8+ character password to pass: %v", err)
		}
	})
}

func TestRedisStatsCache(t *testing.T) {
	newCache := func(t *testing.T) (*redisStatsCache, *miniredis.Miniredis) {
		t.Helper()
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		return &redisStatsCache{client: client}, mr
	}

	type payload struct {
		Total int `json:"total"`
	}

	t.Run("set then get", func(t *testing.T) {
		cache, _ := newCache(t)

		if err := cache.Set(context.Background(), "stats:u1:category:a:b", payload{Total: 42}, time.Minute); err != nil {
			t.Fatalf("failed to set: %v", err)
		}

		var got payload
		hit, err := cache.Get(context.Background(), "stats:u1:category:a:b", &got)
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if !hit {
			t.Fatal("expected a cache hit")
		}
		if got.Total != 42 {
			t.Errorf("expected total 42, got %d", got.Total)
		}
	})

	t.Run("miss returns false without error", func(t *testing.T) {
		cache, _ := newCache(t)

		var got payload
		hit, err := cache.Get(context.Background(), "stats:u1:missing", &got)
		if err != nil {
			t.Fatalf("unexpected error on miss: %v", err)
		}
		if hit {
			t.Error("expected a miss")
		}
	})

	t.Run("entries expire with the ttl", func(t *testing.T) {
		cache, mr := newCache(t)

		if err := cache.Set(context.Background(), "stats:u1:monthly:a:b", payload{Total: 7}, time.Minute); err != nil {
			t.Fatalf("failed to set: %v", err)
		}
		mr.FastForward(2 * time.Minute)

		var got payload
		hit, err := cache.Get(context.Background(), "stats:u1:monthly:a:b", &got)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if hit {
			t.Error("expected the entry to have expired")
		}
	})

	t.Run("invalidate removes only the user namespace", func(t *testing.T) {
		cache, _ := newCache(t)

		keys := []string{
			"stats:u1:category:a:b",
			"stats:u1:monthly:a:b",
			"stats:u2:category:a:b",
		}
		for _, key := range keys {
			if err := cache.Set(context.Background(), key, payload{Total: 1}, time.Minute); err != nil {
				t.Fatalf("failed to set %s: %v", key, err)
			}
		}

		if err := cache.InvalidateUser(context.Background(), "u1"); err != nil {
			t.Fatalf("failed to invalidate: %v", err)
		}

		var got payload
		for _, key := range keys[:2] {
			if hit, _ := cache.Get(context.Background(), key, &got); hit {
				t.Errorf("expected %s to be invalidated", key)
			}
		}
		if hit, _ := cache.Get(context.Background(), keys[2], &got); !hit {
			t.Error("expected the other user's entry to survive")
		}
	})

	t.Run("invalidating an empty namespace is a no-op", func(t *testing.T) {
		cache, _ := newCache(t)
		if err := cache.InvalidateUser(context.Background(), "nobody"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
