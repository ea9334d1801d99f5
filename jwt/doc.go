// Package jwt implements client-side inspection of server-issued tokens.
//
// # Scope
//
// The client never signs or verifies tokens — signature verification is the
// server's job, and the client has no key material. The only structural fact
// the engine needs is the refresh token's expiry, which it derives by
// decoding the exp claim of the freshly rotated token before persisting the
// credential.
//
// # What this package must NOT do
//
//   - Validate signatures or accept/reject tokens on trust grounds.
//   - Access credential storage or perform I/O.
//   - Import goAuthClient.
package jwt
