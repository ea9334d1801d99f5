//go:build integration
// +build integration

package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	goAuthClient "github.com/MrEthical07/goAuthClient"
	jwtlib "github.com/golang-jwt/jwt/v5"
)

const backendSecret = "integration-test-secret"

func mintToken(t *testing.T, subject string, ttl time.Duration) string {
	t.Helper()

	claims := jwtlib.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwtlib.NewNumericDate(time.Now()),
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte(backendSecret))
	if err != nil {
		t.Fatalf("sign token failed: %v", err)
	}
	return signed
}

// authBackend is a minimal credential-issuing API: a protected resource that
// checks the access header, and a refresh endpoint that rotates tokens.
type authBackend struct {
	mu            sync.Mutex
	validAccess   string
	validRefresh  string
	refreshCalls  int
	protectedHits int
}

func (b *authBackend) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.refreshCalls++

		if r.Header.Get("x-refresh-token") != b.validRefresh {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"message": "refresh token rejected",
				"traceId": "it-refresh",
			})
			return
		}

		b.validAccess = mintToken(t, "it-user", time.Minute)
		b.validRefresh = mintToken(t, "it-user", time.Hour)
		w.Header().Set("X-Access-Token", b.validAccess)
		w.Header().Set("X-Refresh-Token", b.validRefresh)
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("/protected", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.protectedHits++
		valid := r.Header.Get("x-access-token") == b.validAccess && b.validAccess != ""
		b.mu.Unlock()

		if !valid {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"message": "access token rejected",
				"traceId": "it-protected",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	})

	return mux
}

func (b *authBackend) stats() (refreshCalls, protectedHits int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.refreshCalls, b.protectedHits
}

func newIntegrationBackend(t *testing.T) (*authBackend, *httptest.Server) {
	t.Helper()

	backend := &authBackend{
		validRefresh: mintToken(t, "it-user", time.Hour),
	}
	srv := httptest.NewServer(backend.handler(t))
	t.Cleanup(srv.Close)
	return backend, srv
}

func newIntegrationClient(t *testing.T, baseURL string, mutate func(*goAuthClient.Builder)) *goAuthClient.Client {
	t.Helper()

	b := goAuthClient.New().
		WithBaseURL(baseURL).
		WithMetricsEnabled(true)
	if mutate != nil {
		mutate(b)
	}

	client, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(client.Close)
	return client
}
