package middleware

import (
	"context"
	"net/http"

	goAuthClient "github.com/MrEthical07/goAuthClient"
)

// AttachBearer returns a transport wrapper that sets
// "Authorization: Bearer <access token>" on every outgoing request, for APIs
// that expect the standard scheme instead of a custom header.
func AttachBearer(source CredentialSource) func(http.RoundTripper) http.RoundTripper {
	return AttachHeader(bearerSource{inner: source}, "Authorization")
}

type bearerSource struct {
	inner CredentialSource
}

func (b bearerSource) Credential(ctx context.Context) (goAuthClient.Credential, bool, error) {
	if b.inner == nil {
		return goAuthClient.Credential{}, false, nil
	}

	cred, ok, err := b.inner.Credential(ctx)
	if err != nil || !ok || cred.AccessToken == "" {
		return cred, ok, err
	}

	cred.AccessToken = "Bearer " + cred.AccessToken
	return cred, true, nil
}
