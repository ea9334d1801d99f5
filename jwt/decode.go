package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry is returned when a token decodes cleanly but carries no exp
// claim.
var ErrNoExpiry = errors.New("token has no expiry claim")

// ErrMalformedToken is returned when the token is not a decodable JWT.
var ErrMalformedToken = errors.New("malformed token")

// DecodeExpiry extracts the expiry timestamp from a token without verifying
// its signature.
func DecodeExpiry(token string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()

	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiry
	}

	return claims.ExpiresAt.Time, nil
}

// DecodeSubject extracts the sub claim, when present. Useful for audit
// metadata; an empty subject is not an error.
func DecodeSubject(token string) (string, error) {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()

	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	return claims.Subject, nil
}
