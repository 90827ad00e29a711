package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeSource struct {
	mu    sync.Mutex
	calls int
	// per-call scripted results
	batches [][]Event
	errs    []error
	since   []time.Time
}

func (f *fakeSource) Changes(ctx context.Context, since time.Time) ([]Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.calls
	f.calls++
	f.since = append(f.since, since)
	var events []Event
	var err error
	if i < len(f.batches) {
		events = f.batches[i]
	}
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return events, err
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestPollerDeliversAndAdvancesWatermark(t *testing.T) {
	base := time.Now().UTC()
	src := &fakeSource{
		batches: [][]Event{
			{
				{ID: "e1", Action: "CREATE", Entity: "jobs", Timestamp: base.Add(1 * time.Second)},
				{ID: "e2", Action: "UPDATE", Entity: "jobs", Timestamp: base.Add(2 * time.Second)},
			},
		},
	}
	sink := NewChannelSink(8)
	p := NewPoller(src, time.Millisecond, time.Second, sink)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Run(ctx)
	}()

	var got []Event
	timeout := time.After(2 * time.Second)
	for len(got) < 2 {
		select {
		case ev := <-sink.Events():
			got = append(got, ev)
		case <-timeout:
			t.Fatalf("received %d events, want 2", len(got))
		}
	}
	cancel()
	<-done

	if got[0].ID != "e1" || got[1].ID != "e2" {
		t.Errorf("events out of order: %s, %s", got[0].ID, got[1].ID)
	}

	src.mu.Lock()
	defer src.mu.Unlock()
	// After the first batch the watermark must sit at the newest event, so
	// later polls ask only for what follows it.
	for _, since := range laterSince(src.since) {
		if since.Before(base.Add(2 * time.Second)) {
			t.Errorf("later poll used stale watermark %v", since)
		}
	}
}

// laterSince returns every since value after the first call.
func laterSince(since []time.Time) []time.Time {
	if len(since) <= 1 {
		return nil
	}
	return since[1:]
}

func TestPollerBacksOffOnFailure(t *testing.T) {
	src := &fakeSource{
		errs: []error{errors.New("db down"), errors.New("db down"), nil},
	}
	p := NewPoller(src, time.Millisecond, time.Second)

	ctx := context.Background()
	p.poll(ctx)
	afterFirst := p.backoff
	p.poll(ctx)
	afterSecond := p.backoff

	if afterFirst <= 0 {
		t.Fatal("no backoff after first failure")
	}
	if afterSecond <= afterFirst {
		t.Errorf("backoff did not grow: %v then %v", afterFirst, afterSecond)
	}

	p.poll(ctx)
	if p.backoff != 0 {
		t.Errorf("backoff = %v after success, want reset", p.backoff)
	}
}

func TestPollerBackoffIsCapped(t *testing.T) {
	var errs []error
	for i := 0; i < 10; i++ {
		errs = append(errs, errors.New("db down"))
	}
	src := &fakeSource{errs: errs}
	max := 50 * time.Millisecond
	p := NewPoller(src, time.Millisecond, max)

	for i := 0; i < 10; i++ {
		p.poll(context.Background())
	}
	if p.backoff > max {
		t.Errorf("backoff = %v, want capped at %v", p.backoff, max)
	}
}

func TestEventTimeAcceptsTextTimestamps(t *testing.T) {
	want := time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   any
		ok   bool
	}{
		{"time value", want, true},
		{"rfc3339", "2025-06-01T14:30:00Z", true},
		{"sqlite datetime", "2025-06-01 14:30:00", true},
		{"garbage", "yesterday", false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := eventTime(tt.in)
			if ok != tt.ok {
				t.Fatalf("eventTime(%v) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && !got.Equal(want) {
				t.Errorf("eventTime(%v) = %v, want %v", tt.in, got, want)
			}
		})
	}
}

func TestChannelSinkDropsWhenFull(t *testing.T) {
	sink := NewChannelSink(1)
	ctx := context.Background()

	if err := sink.Deliver(ctx, Event{ID: "e1"}); err != nil {
		t.Fatalf("deliver: %v", err)
	}
	// Buffer is full; this must not block or error.
	done := make(chan error, 1)
	go func() { done <- sink.Deliver(ctx, Event{ID: "e2"}) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("deliver on full buffer: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("deliver blocked on full buffer")
	}

	if ev := <-sink.Events(); ev.ID != "e1" {
		t.Errorf("buffered event = %s, want e1", ev.ID)
	}
}
