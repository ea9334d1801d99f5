package internaldefs

import (
	goAuthClient "github.com/MrEthical07/goAuthClient"
)

// CounterDef defines a public type used by goAuthClient APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   goAuthClient.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by goAuthClient APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   goAuthClient.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the client engine.
var CounterDefs = []CounterDef{
	{ID: goAuthClient.MetricRequestSuccess, Name: "goauthclient_request_success_total", Help: "Requests that completed with a success status."},
	{ID: goAuthClient.MetricRequestFailure, Name: "goauthclient_request_failure_total", Help: "Requests that failed in the pipeline, transport, or response policy."},
	{ID: goAuthClient.MetricRequestOffline, Name: "goauthclient_request_offline_total", Help: "Requests rejected or failed while offline."},
	{ID: goAuthClient.MetricRefreshTriggered, Name: "goauthclient_refresh_triggered_total", Help: "Refresh cycles started by an unauthorized response."},
	{ID: goAuthClient.MetricRefreshSuccess, Name: "goauthclient_refresh_success_total", Help: "Refresh cycles that persisted a rotated credential."},
	{ID: goAuthClient.MetricRefreshFailure, Name: "goauthclient_refresh_failure_total", Help: "Refresh cycles that failed before persisting."},
	{ID: goAuthClient.MetricRefreshRateLimited, Name: "goauthclient_refresh_rate_limited_total", Help: "Refresh cycles denied by the attempt limiter."},
	{ID: goAuthClient.MetricForcedLogout, Name: "goauthclient_forced_logout_total", Help: "Forced logouts after an unrecoverable refresh failure."},
	{ID: goAuthClient.MetricQueueEnqueued, Name: "goauthclient_queue_enqueued_total", Help: "Requests parked behind an in-flight refresh."},
	{ID: goAuthClient.MetricQueueReplayed, Name: "goauthclient_queue_replayed_total", Help: "Queued requests replayed after a successful refresh."},
	{ID: goAuthClient.MetricQueueRejected, Name: "goauthclient_queue_rejected_total", Help: "Queued requests rejected by a failed refresh."},
	{ID: goAuthClient.MetricNotificationShown, Name: "goauthclient_notification_shown_total", Help: "User-facing failure notifications displayed."},
	{ID: goAuthClient.MetricKnownHTTPFailure, Name: "goauthclient_known_http_failure_total", Help: "Failures matched by the known-status message table."},
	{ID: goAuthClient.MetricUnclassifiedFailure, Name: "goauthclient_unclassified_failure_total", Help: "Failures with no usable classification."},
}

// HistogramDefs is an exported constant or variable used by the client engine.
var HistogramDefs = []HistogramDef{
	{ID: goAuthClient.MetricRequestLatency, Name: "goauthclient_request_latency_seconds", Help: "End-to-end request latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the client engine.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the client engine.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or transport checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or transport checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
