//go:build windows
// +build windows

package console

import "os"

// resizeSignal returns nil on Windows; there is no SIGWINCH equivalent and
// resize detection falls back to polling GetSize.
func resizeSignal() os.Signal {
	return nil
}

// terminateSignals returns the signals that request a graceful stop.
func terminateSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}

// setNonblock is a no-op on Windows; console reads are handled by the
// blocking os.Stdin.Read with a short poll interval.
func setNonblock(fd int, nonblock bool) error {
	return nil
}
