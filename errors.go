package goAuthClient

import "errors"

var (
	// ErrOffline is returned when the local network is known to be down.
	ErrOffline = errors.New("offline")
	// ErrUnauthorized is returned when a request fails authentication and no
	// recovery is possible.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrRefreshInProgress is an internal flow-control signal; callers only
	// see it when waiting on a queued request is impossible.
	ErrRefreshInProgress = errors.New("refresh in progress")
	// ErrRefreshRateLimited is returned when the refresh attempt budget is
	// exhausted and the client forced a logout.
	ErrRefreshRateLimited = errors.New("refresh rate limited")
	// ErrRefreshFailed is returned when the refresh transport call itself
	// failed and queued requests were rejected.
	ErrRefreshFailed = errors.New("refresh failed")
	// ErrForcedLogout is returned to queued requests rejected by a forced
	// logout.
	ErrForcedLogout = errors.New("forced logout")
	// ErrNoCredential is returned when an operation requires a stored
	// credential and none exists.
	ErrNoCredential = errors.New("no stored credential")
	// ErrClientNotReady is returned when a Client method is called before
	// Build completed.
	ErrClientNotReady = errors.New("client not initialized")
	// ErrTransportMissing is returned by Build when neither a transport nor
	// a base URL was configured.
	ErrTransportMissing = errors.New("no transport configured")
)
