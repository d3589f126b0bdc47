package console

import (
	"bufio"
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"
)

// terminalManager implements TerminalManager on a real tty using buffered
// ANSI output and golang.org/x/term for raw mode and size detection.
type terminalManager struct {
	mu       sync.Mutex
	in       *os.File
	tty      *os.File
	out      *bufio.Writer
	oldState *term.State
	rawMode  bool
}

// NewTerminalManager creates a terminal manager bound to the process's
// controlling terminal (stdin/stdout).
func NewTerminalManager() TerminalManager {
	return newTerminalManagerFor(os.Stdin, os.Stdout)
}

func newTerminalManagerFor(in, tty *os.File) *terminalManager {
	return &terminalManager{
		in:  in,
		tty: tty,
		out: bufio.NewWriter(tty),
	}
}

// Init verifies that the manager is attached to a terminal.
func (tm *terminalManager) Init() error {
	if !term.IsTerminal(int(tm.in.Fd())) {
		return fmt.Errorf("%w: fd %d", ErrNotTerminal, tm.in.Fd())
	}
	return nil
}

// Cleanup restores cooked mode and cursor visibility. Safe to call more
// than once.
func (tm *terminalManager) Cleanup() error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.rawMode && tm.oldState != nil {
		if err := term.Restore(int(tm.in.Fd()), tm.oldState); err != nil {
			return fmt.Errorf("failed to restore terminal: %w", err)
		}
		tm.rawMode = false
		tm.oldState = nil
	}

	tm.out.WriteString(showCursorSeq())
	return tm.out.Flush()
}

// GetSize returns the current terminal size.
func (tm *terminalManager) GetSize() (width, height int, err error) {
	return term.GetSize(int(tm.tty.Fd()))
}

// SetRawMode enables or disables raw mode, saving the prior state so
// Cleanup can restore it.
func (tm *terminalManager) SetRawMode(enabled bool) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if enabled == tm.rawMode {
		return nil
	}

	fd := int(tm.in.Fd())
	if enabled {
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("failed to set raw mode: %w", err)
		}
		tm.oldState = oldState
		tm.rawMode = true
		return nil
	}

	if tm.oldState != nil {
		if err := term.Restore(fd, tm.oldState); err != nil {
			return fmt.Errorf("failed to restore terminal: %w", err)
		}
		tm.oldState = nil
		tm.rawMode = false
	}
	return nil
}

// IsRawMode returns true if the terminal is in raw mode.
func (tm *terminalManager) IsRawMode() bool {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return tm.rawMode
}

func (tm *terminalManager) EnterAltScreen() error {
	_, err := tm.out.WriteString(enterAltScreenSeq())
	return err
}

func (tm *terminalManager) ExitAltScreen() error {
	_, err := tm.out.WriteString(exitAltScreenSeq())
	return err
}

// MoveCursor moves the cursor to the given 1-based position.
func (tm *terminalManager) MoveCursor(x, y int) error {
	_, err := tm.out.WriteString(moveCursorSeq(x, y))
	return err
}

func (tm *terminalManager) HideCursor() error {
	_, err := tm.out.WriteString(hideCursorSeq())
	return err
}

func (tm *terminalManager) ShowCursor() error {
	_, err := tm.out.WriteString(showCursorSeq())
	return err
}

func (tm *terminalManager) ClearScreen() error {
	_, err := tm.out.WriteString(clearScreenSeq())
	return err
}

func (tm *terminalManager) ClearLine() error {
	_, err := tm.out.WriteString(clearLineSeq())
	return err
}

func (tm *terminalManager) Write(data []byte) (int, error) {
	return tm.out.Write(data)
}

// Flush pushes buffered output to the terminal.
func (tm *terminalManager) Flush() error {
	return tm.out.Flush()
}
