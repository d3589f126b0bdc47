//go:build !windows
// +build !windows

package console

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// resizeSignal returns the terminal resize signal (SIGWINCH) on Unix.
func resizeSignal() os.Signal {
	return syscall.SIGWINCH
}

// terminateSignals returns the signals that request a graceful stop.
func terminateSignals() []os.Signal {
	return []os.Signal{syscall.SIGINT, syscall.SIGTERM}
}

// setNonblock toggles non-blocking mode on a file descriptor.
func setNonblock(fd int, nonblock bool) error {
	return unix.SetNonblock(fd, nonblock)
}
