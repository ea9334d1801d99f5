// Package credstore persists the client's credential material as cookie-like
// key/value entries with optional expiry.
//
// # Keys
//
// Three keys exist: the access token, the refresh token, and a login flag
// that survives token rotation and marks an authenticated profile. Writes
// are whole-value overwrites — readers always see either the prior or the
// fully updated value, never a torn write.
//
// # Implementations
//
//   - [Memory] — in-process map store, the default for a single client.
//   - [Redis] — go-redis backed store for daemons and server-side proxies
//     that share one user's tokens across restarts. Sharing tokens does not
//     extend the single-flight refresh guarantee across processes.
//
// # What this package must NOT do
//
//   - Decode, validate, or refresh tokens.
//   - Import goAuthClient or any internal package.
package credstore
