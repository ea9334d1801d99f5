package middleware

import (
	"context"
	"net/http"

	goAuthClient "github.com/MrEthical07/goAuthClient"
)

// CredentialSource yields the currently stored credential, if any.
// [goAuthClient.Client] satisfies this interface.
type CredentialSource interface {
	Credential(ctx context.Context) (goAuthClient.Credential, bool, error)
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// AttachHeader returns a transport wrapper that sets the named header to the
// stored access token on every outgoing request. When no credential is stored
// or the lookup fails, the request is forwarded unmodified.
func AttachHeader(source CredentialSource, header string) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		if next == nil {
			next = http.DefaultTransport
		}
		return roundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if source == nil || header == "" {
				return next.RoundTrip(r)
			}

			cred, ok, err := source.Credential(r.Context())
			if err != nil || !ok || cred.AccessToken == "" {
				return next.RoundTrip(r)
			}

			clone := r.Clone(r.Context())
			clone.Header.Set(header, cred.AccessToken)
			return next.RoundTrip(clone)
		})
	}
}

// Attach returns a transport wrapper using the client's configured credential
// header name.
func Attach(client *goAuthClient.Client) func(http.RoundTripper) http.RoundTripper {
	return AttachHeader(client, client.AuthHeader())
}
