package pipeline

import (
	"context"

	"github.com/MrEthical07/goAuthClient/internal/classify"
	"github.com/MrEthical07/goAuthClient/internal/request"
)

// PreferenceSource yields the user's locale and currency, when set.
// The boolean reports presence; absent values attach no header.
type PreferenceSource interface {
	Locale(ctx context.Context) (string, bool)
	Currency(ctx context.Context) (string, bool)
}

// TokenSource yields the current access token, when a credential exists.
type TokenSource func(ctx context.Context) (string, bool)

// Connectivity fails with an Offline error when the local network is known
// to be down. A nil probe assumes online.
func Connectivity(online func() bool) Stage {
	return Stage{
		Name: "connectivity",
		Apply: func(_ context.Context, d *request.Descriptor) error {
			if online != nil && !online() {
				return &classify.Error{
					Kind:    classify.KindOffline,
					Message: "You appear to be offline. Check your connection.",
					TraceID: d.TraceID,
				}
			}
			return nil
		},
	}
}

// RefreshGate fails with a RefreshInProgress flow-control error while a
// refresh is in flight, unless the descriptor is itself a queue replay.
// This keeps new requests from racing ahead of queued ones.
func RefreshGate(refreshing func() bool) Stage {
	return Stage{
		Name: "refresh-gate",
		Apply: func(_ context.Context, d *request.Descriptor) error {
			if d.IsRetry {
				return nil
			}
			if refreshing != nil && refreshing() {
				return &classify.Error{
					Kind:    classify.KindRefreshInProgress,
					Message: "token refresh in progress",
					TraceID: d.TraceID,
				}
			}
			return nil
		},
	}
}

// AuthPrecondition fails with Unauthorized when the descriptor requires
// credentials and none are present. Optional policy stage.
func AuthPrecondition(token TokenSource) Stage {
	return Stage{
		Name: "auth-precondition",
		Apply: func(ctx context.Context, d *request.Descriptor) error {
			if !d.NeedsAuth {
				return nil
			}
			if _, ok := token(ctx); !ok {
				return &classify.Error{
					Kind:    classify.KindUnauthorized,
					Message: "no stored credential",
					TraceID: d.TraceID,
				}
			}
			return nil
		},
	}
}

// PreferenceHeaders attaches the locale and currency headers from the
// preference source, only when a value is present.
func PreferenceHeaders(prefs PreferenceSource, localeHeader, currencyHeader string) Stage {
	return Stage{
		Name: "preference-headers",
		Apply: func(ctx context.Context, d *request.Descriptor) error {
			if prefs == nil {
				return nil
			}
			if locale, ok := prefs.Locale(ctx); ok && locale != "" {
				d.SetHeader(localeHeader, locale)
			}
			if currency, ok := prefs.Currency(ctx); ok && currency != "" {
				d.SetHeader(currencyHeader, currency)
			}
			return nil
		},
	}
}

// CredentialHeader attaches the access token header when a credential is
// present. Absence is not an error here; the precondition stage decides
// whether missing credentials reject the request.
func CredentialHeader(token TokenSource, header string) Stage {
	return Stage{
		Name: "credential-header",
		Apply: func(ctx context.Context, d *request.Descriptor) error {
			if !d.NeedsAuth {
				return nil
			}
			if value, ok := token(ctx); ok && value != "" {
				d.SetHeader(header, value)
			}
			return nil
		},
	}
}
