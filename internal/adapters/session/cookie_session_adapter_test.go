package session_adapter

import (
	"context"
	"errors"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"

	"property-search-service/internal/core/domain"
)

const backendURL = "http://backend.local"

func newJarWithToken(t *testing.T, token string) http.CookieJar {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	u, err := url.Parse(backendURL)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	jar.SetCookies(u, []*http.Cookie{{Name: TokenCookieName, Value: token}})
	return jar
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	})
	raw, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}

func TestTokenMissingCookie(t *testing.T) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	adapter, err := NewCookieSessionAdapter(jar, backendURL)
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}

	if _, err := adapter.Token(context.Background()); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestTokenValidJWT(t *testing.T) {
	raw := signedToken(t, time.Now().Add(time.Hour))
	adapter, err := NewCookieSessionAdapter(newJarWithToken(t, raw), backendURL)
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}

	got, err := adapter.Token(context.Background())
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if got != raw {
		t.Fatal("adapter must return the raw cookie value")
	}
}

func TestTokenExpiredJWT(t *testing.T) {
	raw := signedToken(t, time.Now().Add(-time.Hour))
	adapter, err := NewCookieSessionAdapter(newJarWithToken(t, raw), backendURL)
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}

	if _, err := adapter.Token(context.Background()); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated for expired token, got %v", err)
	}
}

// Непарсящийся токен считается непрозрачным и передаётся бэкенду как есть.
func TestTokenOpaqueValuePassesThrough(t *testing.T) {
	adapter, err := NewCookieSessionAdapter(newJarWithToken(t, "opaque-session-id"), backendURL)
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}

	got, err := adapter.Token(context.Background())
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if got != "opaque-session-id" {
		t.Fatalf("unexpected token: %q", got)
	}
}

func TestTokenWithoutExpClaimPassesThrough(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1"})
	raw, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	adapter, err := NewCookieSessionAdapter(newJarWithToken(t, raw), backendURL)
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}

	if _, err := adapter.Token(context.Background()); err != nil {
		t.Fatalf("token without exp must be accepted, got %v", err)
	}
}
