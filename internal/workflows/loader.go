package workflows

import (
	"context"
	"sync"

	"github.com/sdex/configviewer/internal/settings"
)

// LoadEvent is the outcome of one background load.
type LoadEvent struct {
	// Seq identifies the request that produced the event.
	Seq    uint64
	Kind   settings.Kind
	Result *LoadResult
	Err    error
}

// Loader runs loads in the background. Starting a load cancels the one in
// flight, and only the most recently started load delivers an event.
type Loader struct {
	base LoadOptions

	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelFunc
	closed  bool
	wg      sync.WaitGroup
	results chan LoadEvent
}

// NewLoader returns a Loader that loads with base, overriding its Kind on
// every Start.
func NewLoader(base LoadOptions) *Loader {
	return &Loader{
		base:    base,
		results: make(chan LoadEvent, 1),
	}
}

// Results delivers load events. It is closed by Close. At most one event is
// buffered; an unread event is dropped when a newer load starts.
func (l *Loader) Results() <-chan LoadEvent {
	return l.results
}

// Start begins loading kind and returns the request's sequence number.
// It returns 0 after Close.
func (l *Loader) Start(ctx context.Context, kind settings.Kind) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return 0
	}
	if l.cancel != nil {
		l.cancel()
	}
	l.drain()

	l.seq++
	seq := l.seq
	loadCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel

	opts := l.base
	opts.Kind = kind

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer cancel()

		result, err := Load(loadCtx, opts)
		l.deliver(LoadEvent{Seq: seq, Kind: kind, Result: result, Err: err})
	}()

	return seq
}

// deliver sends ev unless a newer load was started in the meantime.
func (l *Loader) deliver(ev LoadEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || ev.Seq != l.seq {
		return
	}
	l.drain()
	l.results <- ev
}

// drain discards a buffered event. Callers hold l.mu.
func (l *Loader) drain() {
	select {
	case <-l.results:
	default:
	}
}

// Close cancels the load in flight, waits for every worker to return and
// closes the results channel. It is safe to call more than once.
func (l *Loader) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	if l.cancel != nil {
		l.cancel()
	}
	l.mu.Unlock()

	l.wg.Wait()
	close(l.results)
}
