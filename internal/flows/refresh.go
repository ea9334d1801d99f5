package flows

import (
	"context"
	"time"
)

// RefreshFailureKind classifies refresh cycle failures for root-level mapping.
type RefreshFailureKind int

const (
	RefreshFailureNone RefreshFailureKind = iota
	RefreshFailureRateLimited
	RefreshFailureNoCredential
	RefreshFailureTransport
	RefreshFailureMissingTokens
	RefreshFailureDecodeExpiry
	RefreshFailurePersist
)

// RefreshResult carries either the persisted token pair or failure metadata.
type RefreshResult struct {
	Failure       RefreshFailureKind
	Err           error
	AccessToken   string
	RefreshToken  string
	RefreshExpiry time.Time
}

// RefreshDeps captures refresh cycle dependencies.
type RefreshDeps struct {
	// CheckRate records the attempt against the refresh budget; a non-nil
	// error means forced logout and the cycle must skip the network call.
	CheckRate func() error

	// CurrentTokens reads the stored access and refresh tokens.
	CurrentTokens func(ctx context.Context) (access, refresh string, err error)

	// CallRefresh issues exactly one refresh transport call and returns the
	// rotated token pair from the response headers.
	CallRefresh func(ctx context.Context, access, refresh string) (newAccess, newRefresh string, err error)

	// DecodeExpiry derives the new refresh token's expiry by decoding it.
	DecodeExpiry func(token string) (time.Time, error)

	// Persist writes the rotated credential to the store. Queued entries are
	// replayed only after Persist returns, so replays see the new tokens.
	Persist func(ctx context.Context, access, refresh string, expiry time.Time) error

	Warn func(format string, args ...any)
}

// RunRefresh executes one refresh cycle. The caller owns the surrounding
// state machine: it must hold Refreshing across the call and return to Idle
// afterwards regardless of outcome.
func RunRefresh(ctx context.Context, deps RefreshDeps) RefreshResult {
	if deps.CheckRate != nil {
		if err := deps.CheckRate(); err != nil {
			return RefreshResult{Failure: RefreshFailureRateLimited, Err: err}
		}
	}

	access, refresh, err := deps.CurrentTokens(ctx)
	if err != nil || refresh == "" {
		return RefreshResult{Failure: RefreshFailureNoCredential, Err: err}
	}

	newAccess, newRefresh, err := deps.CallRefresh(ctx, access, refresh)
	if err != nil {
		return RefreshResult{Failure: RefreshFailureTransport, Err: err}
	}
	if newAccess == "" || newRefresh == "" {
		return RefreshResult{Failure: RefreshFailureMissingTokens}
	}

	expiry, err := deps.DecodeExpiry(newRefresh)
	if err != nil {
		if deps.Warn != nil {
			deps.Warn("goAuthClient: refresh token expiry decode failed: %v", err)
		}
		return RefreshResult{Failure: RefreshFailureDecodeExpiry, Err: err}
	}

	if err := deps.Persist(ctx, newAccess, newRefresh, expiry); err != nil {
		return RefreshResult{Failure: RefreshFailurePersist, Err: err}
	}

	return RefreshResult{
		AccessToken:   newAccess,
		RefreshToken:  newRefresh,
		RefreshExpiry: expiry,
	}
}
