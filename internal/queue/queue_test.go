package queue

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/MrEthical07/goAuthClient/internal/request"
)

func TestDrainPreservesEnqueueOrder(t *testing.T) {
	q := New()

	var pendings []*Pending
	for _, name := range []string{"A", "B", "C"} {
		d := request.New("GET", "/"+name)
		pendings = append(pendings, q.Enqueue(d))
	}

	var dispatched []string
	q.Drain(context.Background(), func(_ context.Context, d *request.Descriptor) (*request.Response, error) {
		dispatched = append(dispatched, d.URL)
		return &request.Response{StatusCode: 200}, nil
	})

	want := []string{"/A", "/B", "/C"}
	if len(dispatched) != len(want) {
		t.Fatalf("dispatched %d entries, want %d", len(dispatched), len(want))
	}
	for i := range want {
		if dispatched[i] != want[i] {
			t.Fatalf("dispatch order %v, want %v", dispatched, want)
		}
	}

	for i, p := range pendings {
		resp, err := p.Wait(context.Background())
		if err != nil {
			t.Fatalf("entry %d rejected: %v", i, err)
		}
		if resp.StatusCode != 200 {
			t.Fatalf("entry %d status %d", i, resp.StatusCode)
		}
	}

	if q.Len() != 0 {
		t.Fatalf("queue not cleared after drain: %d entries", q.Len())
	}
}

func TestDrainMarksRetry(t *testing.T) {
	q := New()
	q.Enqueue(request.New("GET", "/x"))

	q.Drain(context.Background(), func(_ context.Context, d *request.Descriptor) (*request.Response, error) {
		if !d.IsRetry {
			t.Fatal("replayed descriptor not marked IsRetry")
		}
		return &request.Response{StatusCode: 200}, nil
	})
}

func TestOneFailureDoesNotAbortDrain(t *testing.T) {
	q := New()

	pa := q.Enqueue(request.New("GET", "/a"))
	pb := q.Enqueue(request.New("GET", "/b"))

	failA := errors.New("replay failed")
	q.Drain(context.Background(), func(_ context.Context, d *request.Descriptor) (*request.Response, error) {
		if d.URL == "/a" {
			return nil, failA
		}
		return &request.Response{StatusCode: 200}, nil
	})

	if _, err := pa.Wait(context.Background()); !errors.Is(err, failA) {
		t.Fatalf("entry A: expected replay error, got %v", err)
	}
	if resp, err := pb.Wait(context.Background()); err != nil || resp.StatusCode != 200 {
		t.Fatalf("entry B: expected success, got %v / %v", resp, err)
	}
}

func TestRejectAllClearsQueue(t *testing.T) {
	q := New()

	rejected := errors.New("refresh failed")
	var pendings []*Pending
	for i := 0; i < 4; i++ {
		pendings = append(pendings, q.Enqueue(request.New("POST", fmt.Sprintf("/r%d", i))))
	}

	q.RejectAll(rejected)

	for i, p := range pendings {
		if _, err := p.Wait(context.Background()); !errors.Is(err, rejected) {
			t.Fatalf("entry %d: expected rejection error, got %v", i, err)
		}
	}
	if q.Len() != 0 {
		t.Fatalf("queue not cleared after reject: %d entries", q.Len())
	}
}

func TestWaitHonorsContext(t *testing.T) {
	q := New()
	p := q.Enqueue(request.New("GET", "/never"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}
