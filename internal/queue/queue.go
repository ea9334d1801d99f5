package queue

import (
	"context"

	"github.com/MrEthical07/goAuthClient/internal/request"
)

// outcome is the terminal result delivered to one pending handle.
type outcome struct {
	resp *request.Response
	err  error
}

// Pending is the completion handle returned by Enqueue. The caller blocks on
// Wait until the coordinator resolves or rejects the entry.
type Pending struct {
	done chan outcome
}

func newPending() *Pending {
	return &Pending{done: make(chan outcome, 1)}
}

// Wait blocks until the entry is resolved, rejected, or ctx is done.
func (p *Pending) Wait(ctx context.Context) (*request.Response, error) {
	select {
	case out := <-p.done:
		return out.resp, out.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *Pending) resolve(resp *request.Response, err error) {
	p.done <- outcome{resp: resp, err: err}
}

type entry struct {
	desc    *request.Descriptor
	pending *Pending
	seq     uint64
}

// ReplayFunc re-dispatches one queued descriptor through the full pipeline.
type ReplayFunc func(ctx context.Context, d *request.Descriptor) (*request.Response, error)

// Queue is the ordered holding area for requests blocked by a refresh.
// The Queue itself is not synchronized: only the coordinator mutates it, and
// the coordinator serializes every mutation under its state lock.
type Queue struct {
	entries []entry
	nextSeq uint64
}

// New creates an empty Queue.
func New() *Queue {
	return &Queue{}
}

// Enqueue appends the descriptor and returns its completion handle.
func (q *Queue) Enqueue(d *request.Descriptor) *Pending {
	p := newPending()
	q.entries = append(q.entries, entry{desc: d, pending: p, seq: q.nextSeq})
	q.nextSeq++
	return p
}

// Len returns the number of queued entries.
func (q *Queue) Len() int {
	return len(q.entries)
}

// take removes and returns every queued entry, leaving the queue empty.
func (q *Queue) take() []entry {
	taken := q.entries
	q.entries = nil
	return taken
}

// Drain replays every queued entry sequentially in enqueue order. Each
// descriptor is marked as a retry before replay so it bypasses the refresh
// gate and is never re-enqueued. Each replay outcome resolves only that
// entry's handle; a failed replay does not abort the drain.
func (q *Queue) Drain(ctx context.Context, replay ReplayFunc) {
	for _, e := range q.take() {
		e.desc.IsRetry = true
		resp, err := replay(ctx, e.desc)
		e.pending.resolve(resp, err)
	}
}

// RejectAll rejects every queued entry with err and clears the queue.
func (q *Queue) RejectAll(err error) {
	for _, e := range q.take() {
		e.pending.resolve(nil, err)
	}
}
