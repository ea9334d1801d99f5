package flows

import (
	"context"
	"errors"
	"testing"
	"time"
)

func workingDeps(calls *[]string) RefreshDeps {
	record := func(name string) {
		if calls != nil {
			*calls = append(*calls, name)
		}
	}
	expiry := time.Now().Add(24 * time.Hour)

	return RefreshDeps{
		CheckRate: func() error {
			record("rate")
			return nil
		},
		CurrentTokens: func(context.Context) (string, string, error) {
			record("tokens")
			return "old-access", "old-refresh", nil
		},
		CallRefresh: func(_ context.Context, access, refresh string) (string, string, error) {
			record("call")
			return "new-access", "new-refresh", nil
		},
		DecodeExpiry: func(string) (time.Time, error) {
			record("decode")
			return expiry, nil
		},
		Persist: func(_ context.Context, access, refresh string, _ time.Time) error {
			record("persist")
			return nil
		},
	}
}

func TestRunRefreshSuccessOrder(t *testing.T) {
	var calls []string
	result := RunRefresh(context.Background(), workingDeps(&calls))

	if result.Failure != RefreshFailureNone {
		t.Fatalf("unexpected failure %d: %v", result.Failure, result.Err)
	}
	if result.AccessToken != "new-access" || result.RefreshToken != "new-refresh" {
		t.Fatalf("unexpected tokens %q/%q", result.AccessToken, result.RefreshToken)
	}

	want := []string{"rate", "tokens", "call", "decode", "persist"}
	if len(calls) != len(want) {
		t.Fatalf("calls %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("calls %v, want %v", calls, want)
		}
	}
}

func TestRunRefreshRateLimitedSkipsTransport(t *testing.T) {
	var calls []string
	deps := workingDeps(&calls)
	limited := errors.New("limited")
	deps.CheckRate = func() error { return limited }

	result := RunRefresh(context.Background(), deps)
	if result.Failure != RefreshFailureRateLimited {
		t.Fatalf("failure %d, want rate limited", result.Failure)
	}
	for _, call := range calls {
		if call == "call" {
			t.Fatal("rate-limited cycle must not touch the transport")
		}
	}
}

func TestRunRefreshNoRefreshToken(t *testing.T) {
	deps := workingDeps(nil)
	deps.CurrentTokens = func(context.Context) (string, string, error) { return "a", "", nil }

	result := RunRefresh(context.Background(), deps)
	if result.Failure != RefreshFailureNoCredential {
		t.Fatalf("failure %d, want no credential", result.Failure)
	}
}

func TestRunRefreshTransportFailure(t *testing.T) {
	deps := workingDeps(nil)
	boom := errors.New("network down")
	deps.CallRefresh = func(context.Context, string, string) (string, string, error) {
		return "", "", boom
	}

	result := RunRefresh(context.Background(), deps)
	if result.Failure != RefreshFailureTransport || !errors.Is(result.Err, boom) {
		t.Fatalf("failure %d err %v, want transport/%v", result.Failure, result.Err, boom)
	}
}

func TestRunRefreshMissingRotatedTokens(t *testing.T) {
	deps := workingDeps(nil)
	deps.CallRefresh = func(context.Context, string, string) (string, string, error) {
		return "new-access", "", nil
	}

	result := RunRefresh(context.Background(), deps)
	if result.Failure != RefreshFailureMissingTokens {
		t.Fatalf("failure %d, want missing tokens", result.Failure)
	}
}

func TestRunRefreshPersistFailure(t *testing.T) {
	deps := workingDeps(nil)
	boom := errors.New("store down")
	deps.Persist = func(context.Context, string, string, time.Time) error { return boom }

	result := RunRefresh(context.Background(), deps)
	if result.Failure != RefreshFailurePersist || !errors.Is(result.Err, boom) {
		t.Fatalf("failure %d err %v, want persist/%v", result.Failure, result.Err, boom)
	}
}
