package cancel

import (
	"context"
	"sync"
	"time"
)

// Source owns a cancellation flag. The flag flips at most once; tokens
// handed out by the source observe it. All methods are safe for concurrent
// use.
type Source struct {
	mu       sync.Mutex
	canceled bool
	nextID   int
	regs     []registration
	timer    *time.Timer
	done     chan struct{}
}

type registration struct {
	id int
	fn func()
}

// NewSource returns a source that cancels only when Cancel is called.
func NewSource() *Source {
	return &Source{done: make(chan struct{})}
}

// NewSourceWithTimeout returns a source that cancels itself after d elapses,
// unless Close is called first. A non-positive d cancels immediately.
func NewSourceWithTimeout(d time.Duration) *Source {
	s := NewSource()
	if d <= 0 {
		s.Cancel()
		return s
	}
	s.timer = time.AfterFunc(d, s.Cancel)
	return s
}

// Token returns an observer handle for this source.
func (s *Source) Token() Token { return Token{src: s} }

// IsCanceled reports whether the source has been canceled.
func (s *Source) IsCanceled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canceled
}

// Cancel flips the flag. The first call runs every registered callback
// synchronously, in registration order; later calls are no-ops.
func (s *Source) Cancel() {
	s.mu.Lock()
	if s.canceled {
		s.mu.Unlock()
		return
	}
	s.canceled = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	regs := s.regs
	s.regs = nil
	s.mu.Unlock()

	close(s.done)
	for _, r := range regs {
		r.fn()
	}
}

// Close releases the source's timeout timer, if any. It never cancels: a
// closed source that was not canceled stays uncanceled forever.
func (s *Source) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// register adds fn, returning its id, or runs it immediately when the flag
// is already set.
func (s *Source) register(fn func()) (int, bool) {
	s.mu.Lock()
	if s.canceled {
		s.mu.Unlock()
		fn()
		return 0, false
	}
	s.nextID++
	id := s.nextID
	s.regs = append(s.regs, registration{id: id, fn: fn})
	s.mu.Unlock()
	return id, true
}

func (s *Source) unregister(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.regs {
		if r.id == id {
			s.regs = append(s.regs[:i], s.regs[i+1:]...)
			return
		}
	}
}

// Token is an immutable handle observing a source's cancellation flag.
// The zero Token is never canceled.
type Token struct {
	src *Source
}

// IsCanceled reports whether the token's source has been canceled.
func (t Token) IsCanceled() bool {
	return t.src != nil && t.src.IsCanceled()
}

// Done returns a channel closed when the token's source cancels. For the
// zero token it returns nil, a channel that never becomes ready.
func (t Token) Done() <-chan struct{} {
	if t.src == nil {
		return nil
	}
	return t.src.done
}

// Register arranges for fn to run when the source cancels. If the source is
// already canceled, fn runs immediately on the calling goroutine. The
// returned function removes the registration; calling it after cancellation
// is harmless. On the zero token fn never runs.
func (t Token) Register(fn func()) (unregister func()) {
	if t.src == nil || fn == nil {
		return func() {}
	}
	id, ok := t.src.register(fn)
	if !ok {
		return func() {}
	}
	src := t.src
	return func() { src.unregister(id) }
}

// Context returns a context canceled when either parent is done or the
// token fires. The returned CancelFunc releases the registration and must
// be called to avoid leaking it.
func (t Token) Context(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancelCtx := context.WithCancel(parent)
	if t.src == nil {
		return ctx, cancelCtx
	}
	unreg := t.Register(cancelCtx)
	return ctx, func() {
		unreg()
		cancelCtx()
	}
}
