package console

import (
	"os"
	"os/signal"
	"sync"
)

// SignalBridge is a process-wide registry mapping OS signals to callbacks.
// Registration redirects delivery of the signal into the bridge; a single
// dispatch goroutine looks up and invokes the callback. Dispatch is best
// effort: if the registry lock is held (registration in flight) the
// delivery is dropped rather than risking a stall, and a panicking callback
// is contained. Callbacks run concurrently with the main loop and must
// restrict themselves to signal-safe work (atomics, no allocation, no
// locks shared with the loop).
type SignalBridge struct {
	mu        sync.Mutex
	callbacks map[os.Signal]func()

	ch        chan os.Signal
	done      chan struct{}
	closeOnce sync.Once
	diag      DiagnosticLog
}

// NewSignalBridge creates a bridge and starts its dispatch goroutine.
func NewSignalBridge() *SignalBridge {
	b := &SignalBridge{
		callbacks: make(map[os.Signal]func()),
		ch:        make(chan os.Signal, 8),
		done:      make(chan struct{}),
	}
	go b.loop()
	return b
}

// SetDiagnostics attaches an optional log for dropped or failed deliveries.
func (b *SignalBridge) SetDiagnostics(diag DiagnosticLog) {
	b.mu.Lock()
	b.diag = diag
	b.mu.Unlock()
}

// Register maps a signal to a callback; the last registration for a signal
// wins. Delivery of the signal is redirected to the bridge.
func (b *SignalBridge) Register(sig os.Signal, callback func()) {
	if sig == nil || callback == nil {
		return
	}
	b.mu.Lock()
	b.callbacks[sig] = callback
	b.mu.Unlock()
	signal.Notify(b.ch, sig)
}

// Unregister removes a callback and restores the signal's default OS
// disposition. Unregistering an unknown signal is a no-op.
func (b *SignalBridge) Unregister(sig os.Signal) {
	if sig == nil {
		return
	}
	signal.Reset(sig)
	b.mu.Lock()
	delete(b.callbacks, sig)
	b.mu.Unlock()
}

// Close stops delivery and the dispatch goroutine. Idempotent.
func (b *SignalBridge) Close() {
	b.closeOnce.Do(func() {
		signal.Stop(b.ch)
		close(b.done)
	})
}

func (b *SignalBridge) loop() {
	for {
		select {
		case sig := <-b.ch:
			b.dispatch(sig)
		case <-b.done:
			return
		}
	}
}

// dispatch invokes the callback for one delivered signal. A contended lock
// means the registry is being mutated; the delivery is dropped rather than
// blocked on.
func (b *SignalBridge) dispatch(sig os.Signal) {
	if !b.mu.TryLock() {
		return
	}
	callback := b.callbacks[sig]
	diag := b.diag
	b.mu.Unlock()

	if callback == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil && diag != nil {
			diag.Logf("signal %v callback panicked: %v", sig, r)
		}
	}()
	callback()
}
