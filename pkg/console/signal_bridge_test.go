//go:build !windows
// +build !windows

package console

import (
	"sync/atomic"
	"syscall"
	"testing"
	"time"
)

func TestSignalBridgeDispatch(t *testing.T) {
	b := NewSignalBridge()
	defer b.Close()

	var fired atomic.Int32
	b.Register(syscall.SIGUSR1, func() { fired.Add(1) })

	b.ch <- syscall.SIGUSR1
	waitFor(t, func() bool { return fired.Load() == 1 }, "callback never fired")

	b.ch <- syscall.SIGUSR1
	waitFor(t, func() bool { return fired.Load() == 2 }, "callback did not fire twice")
}

func TestSignalBridgeLastRegistrationWins(t *testing.T) {
	b := NewSignalBridge()
	defer b.Close()

	var first, second atomic.Int32
	b.Register(syscall.SIGUSR1, func() { first.Add(1) })
	b.Register(syscall.SIGUSR1, func() { second.Add(1) })

	b.ch <- syscall.SIGUSR1
	waitFor(t, func() bool { return second.Load() == 1 }, "replacement callback never fired")
	if first.Load() != 0 {
		t.Error("Replaced callback must not fire")
	}
}

func TestSignalBridgeUnregister(t *testing.T) {
	b := NewSignalBridge()
	defer b.Close()

	var fired atomic.Int32
	b.Register(syscall.SIGUSR1, func() { fired.Add(1) })
	b.Unregister(syscall.SIGUSR1)

	b.ch <- syscall.SIGUSR1
	// Give the dispatch goroutine a chance to (wrongly) fire.
	time.Sleep(20 * time.Millisecond)
	if fired.Load() != 0 {
		t.Error("Unregistered callback must not fire")
	}

	// Unregistering an unknown signal is a no-op.
	b.Unregister(syscall.SIGUSR2)
}

func TestSignalBridgeIgnoresUnknownSignal(t *testing.T) {
	b := NewSignalBridge()
	defer b.Close()

	b.ch <- syscall.SIGUSR2
	time.Sleep(20 * time.Millisecond)
	// Nothing to assert beyond "no panic, loop still alive".
	var fired atomic.Int32
	b.Register(syscall.SIGUSR1, func() { fired.Add(1) })
	b.ch <- syscall.SIGUSR1
	waitFor(t, func() bool { return fired.Load() == 1 }, "loop died on unknown signal")
}

type recordingLog struct {
	lines atomic.Int32
}

func (r *recordingLog) Logf(format string, v ...any) {
	r.lines.Add(1)
}

func TestSignalBridgeContainsCallbackPanic(t *testing.T) {
	b := NewSignalBridge()
	defer b.Close()

	diag := &recordingLog{}
	b.SetDiagnostics(diag)

	var after atomic.Int32
	b.Register(syscall.SIGUSR1, func() { panic("boom") })

	b.ch <- syscall.SIGUSR1
	waitFor(t, func() bool { return diag.lines.Load() == 1 }, "panic was not logged")

	// The loop survived the panic and can dispatch again.
	b.Register(syscall.SIGUSR1, func() { after.Add(1) })
	b.ch <- syscall.SIGUSR1
	waitFor(t, func() bool { return after.Load() == 1 }, "loop died after callback panic")
}

func TestSignalBridgeCloseIdempotent(t *testing.T) {
	b := NewSignalBridge()
	b.Close()
	b.Close()
}

func TestSignalBridgeNilArguments(t *testing.T) {
	b := NewSignalBridge()
	defer b.Close()

	b.Register(nil, func() {})
	b.Register(syscall.SIGUSR1, nil)
	b.Unregister(nil)
}
