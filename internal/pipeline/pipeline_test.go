package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/MrEthical07/goAuthClient/internal/classify"
	"github.com/MrEthical07/goAuthClient/internal/request"
)

func TestChainRunsStagesInOrder(t *testing.T) {
	var order []string
	stage := func(name string) Stage {
		return Stage{
			Name: name,
			Apply: func(context.Context, *request.Descriptor) error {
				order = append(order, name)
				return nil
			},
		}
	}

	chain := NewChain(stage("first"), stage("second"), stage("third"))
	if err := chain.Run(context.Background(), request.New("GET", "/")); err != nil {
		t.Fatalf("chain failed: %v", err)
	}

	want := []string{"first", "second", "third"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("stage order %v, want %v", order, want)
		}
	}
}

func TestChainShortCircuitsOnFirstFailure(t *testing.T) {
	boom := errors.New("boom")
	ran := false

	chain := NewChain(
		Stage{Name: "fail", Apply: func(context.Context, *request.Descriptor) error { return boom }},
		Stage{Name: "after", Apply: func(context.Context, *request.Descriptor) error {
			ran = true
			return nil
		}},
	)

	if err := chain.Run(context.Background(), request.New("GET", "/")); !errors.Is(err, boom) {
		t.Fatalf("expected stage error, got %v", err)
	}
	if ran {
		t.Fatal("stage after failure must not run")
	}
}

func TestConnectivityStage(t *testing.T) {
	offline := Connectivity(func() bool { return false })

	err := offline.Apply(context.Background(), request.New("GET", "/"))
	var cerr *classify.Error
	if !errors.As(err, &cerr) || cerr.Kind != classify.KindOffline {
		t.Fatalf("expected offline classification, got %v", err)
	}

	online := Connectivity(func() bool { return true })
	if err := online.Apply(context.Background(), request.New("GET", "/")); err != nil {
		t.Fatalf("online probe must pass: %v", err)
	}
}

func TestRefreshGateBlocksUnlessRetry(t *testing.T) {
	gate := RefreshGate(func() bool { return true })

	err := gate.Apply(context.Background(), request.New("GET", "/"))
	var cerr *classify.Error
	if !errors.As(err, &cerr) || cerr.Kind != classify.KindRefreshInProgress {
		t.Fatalf("expected refresh-in-progress, got %v", err)
	}

	retry := request.New("GET", "/")
	retry.IsRetry = true
	if err := gate.Apply(context.Background(), retry); err != nil {
		t.Fatalf("retry must bypass gate: %v", err)
	}
}

func TestAuthPreconditionStage(t *testing.T) {
	noToken := AuthPrecondition(func(context.Context) (string, bool) { return "", false })

	err := noToken.Apply(context.Background(), request.New("GET", "/"))
	var cerr *classify.Error
	if !errors.As(err, &cerr) || cerr.Kind != classify.KindUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	public := request.New("GET", "/")
	public.NeedsAuth = false
	if err := noToken.Apply(context.Background(), public); err != nil {
		t.Fatalf("public request must pass: %v", err)
	}
}

func TestTemplateSubstitutesAndRemoves(t *testing.T) {
	d := request.New("GET", "/users/{id}")
	d.Body = map[string]any{"id": float64(7), "name": "x"}

	if err := Template(false).Apply(context.Background(), d); err != nil {
		t.Fatalf("template failed: %v", err)
	}

	if d.URL != "/users/7" {
		t.Fatalf("url %q, want /users/7", d.URL)
	}
	if _, ok := d.Body["id"]; ok {
		t.Fatal("substituted field must be removed from body")
	}
	if d.Body["name"] != "x" {
		t.Fatal("unrelated body field must survive templating")
	}
}

func TestTemplateKeepFields(t *testing.T) {
	d := request.New("GET", "/users/{id}")
	d.Body = map[string]any{"id": "u1"}

	if err := Template(true).Apply(context.Background(), d); err != nil {
		t.Fatalf("template failed: %v", err)
	}
	if d.URL != "/users/u1" {
		t.Fatalf("url %q, want /users/u1", d.URL)
	}
	if d.Body["id"] != "u1" {
		t.Fatal("keepFields must preserve the substituted field")
	}
}

func TestRouteParamsReadMethod(t *testing.T) {
	d := request.New("GET", "/search")
	d.Body = map[string]any{"a": float64(1)}

	if err := RouteParams().Apply(context.Background(), d); err != nil {
		t.Fatalf("routing failed: %v", err)
	}

	if d.Query["a"] != "1" {
		t.Fatalf("query %v, want a=1", d.Query)
	}
	if len(d.Body) != 0 {
		t.Fatalf("read-method body must be cleared, got %v", d.Body)
	}
	if !d.IsPreprocessed {
		t.Fatal("routing must mark the descriptor preprocessed")
	}
}

func TestRouteParamsWriteMethodKeepsBody(t *testing.T) {
	d := request.New("POST", "/users")
	d.Body = map[string]any{"name": "x"}

	if err := RouteParams().Apply(context.Background(), d); err != nil {
		t.Fatalf("routing failed: %v", err)
	}

	if d.Body["name"] != "x" {
		t.Fatal("write-method body must stay in place")
	}
	if len(d.Query) != 0 {
		t.Fatalf("write-method query must stay empty, got %v", d.Query)
	}
}

func TestRouteParamsIdempotent(t *testing.T) {
	d := request.New("GET", "/search")
	d.Body = map[string]any{"a": float64(1)}

	_ = RouteParams().Apply(context.Background(), d)
	d.Body = map[string]any{"b": float64(2)}
	_ = RouteParams().Apply(context.Background(), d)

	if _, ok := d.Query["b"]; ok {
		t.Fatal("preprocessed descriptor must pass through unchanged")
	}
}

type staticPrefs struct {
	locale, currency string
}

func (p staticPrefs) Locale(context.Context) (string, bool)   { return p.locale, p.locale != "" }
func (p staticPrefs) Currency(context.Context) (string, bool) { return p.currency, p.currency != "" }

func TestPreferenceHeadersOnlyWhenPresent(t *testing.T) {
	d := request.New("GET", "/")
	stage := PreferenceHeaders(staticPrefs{locale: "en-GB"}, "x-locale", "currency")

	if err := stage.Apply(context.Background(), d); err != nil {
		t.Fatalf("stage failed: %v", err)
	}
	if d.Headers["x-locale"] != "en-GB" {
		t.Fatalf("locale header %q, want en-GB", d.Headers["x-locale"])
	}
	if _, ok := d.Headers["currency"]; ok {
		t.Fatal("absent currency must attach no header")
	}
}

func TestCredentialHeaderStage(t *testing.T) {
	stage := CredentialHeader(func(context.Context) (string, bool) { return "tok-1", true }, "x-access-token")

	d := request.New("GET", "/")
	if err := stage.Apply(context.Background(), d); err != nil {
		t.Fatalf("stage failed: %v", err)
	}
	if d.Headers["x-access-token"] != "tok-1" {
		t.Fatalf("token header %q, want tok-1", d.Headers["x-access-token"])
	}

	public := request.New("GET", "/")
	public.NeedsAuth = false
	_ = stage.Apply(context.Background(), public)
	if _, ok := public.Headers["x-access-token"]; ok {
		t.Fatal("public request must not carry the token header")
	}
}

func TestResponseChainShortCircuits(t *testing.T) {
	boom := errors.New("decode failed")
	ran := false

	chain := NewResponseChain(
		ResponseStage{Name: "fail", Apply: func(context.Context, *request.Descriptor, *request.Response) error {
			return boom
		}},
		ResponseStage{Name: "after", Apply: func(context.Context, *request.Descriptor, *request.Response) error {
			ran = true
			return nil
		}},
	)

	err := chain.Run(context.Background(), request.New("GET", "/"), &request.Response{StatusCode: 200})
	if !errors.Is(err, boom) {
		t.Fatalf("expected stage error, got %v", err)
	}
	if ran {
		t.Fatal("response stage after failure must not run")
	}
}
