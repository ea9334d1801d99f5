package credstore

import (
	"context"
	"time"
)

// Keys used by the engine. The login flag outlives individual tokens and
// marks that a user profile completed login on this client.
const (
	KeyAccessToken  = "access-token"
	KeyRefreshToken = "refresh-token"
	KeyLoggedIn     = "logged-in"
)

// Credential is the full stored credential material.
type Credential struct {
	AccessToken   string
	RefreshToken  string
	RefreshExpiry time.Time
}

// Store is the key/value persistence contract. A zero expiry means the
// entry does not expire.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, expiry time.Time) error
	Remove(ctx context.Context, key string) error
}

// Save persists a credential pair. The refresh token expires with its
// decoded expiry; the access token and login flag follow the same horizon so
// a dead refresh token never leaves stale siblings behind.
func Save(ctx context.Context, s Store, c Credential) error {
	if err := s.Set(ctx, KeyAccessToken, c.AccessToken, c.RefreshExpiry); err != nil {
		return err
	}
	if err := s.Set(ctx, KeyRefreshToken, c.RefreshToken, c.RefreshExpiry); err != nil {
		return err
	}
	return s.Set(ctx, KeyLoggedIn, "1", c.RefreshExpiry)
}

// Load reads the stored token pair. ok is false when either token is absent.
func Load(ctx context.Context, s Store) (c Credential, ok bool, err error) {
	access, ok, err := s.Get(ctx, KeyAccessToken)
	if err != nil || !ok {
		return Credential{}, false, err
	}
	refresh, ok, err := s.Get(ctx, KeyRefreshToken)
	if err != nil || !ok {
		return Credential{}, false, err
	}
	return Credential{AccessToken: access, RefreshToken: refresh}, true, nil
}

// Clear removes every credential key. Used by forced logout.
func Clear(ctx context.Context, s Store) error {
	for _, key := range []string{KeyAccessToken, KeyRefreshToken, KeyLoggedIn} {
		if err := s.Remove(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
