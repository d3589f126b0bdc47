package console

import (
	"bytes"
	"sync"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal(msg)
}

// fakeTerminal is an in-memory TerminalManager for loop and rendering
// tests. It records call counts so teardown ordering can be asserted.
type fakeTerminal struct {
	mu     sync.Mutex
	width  int
	height int

	writes bytes.Buffer

	rawMode     bool
	altScreen   bool
	initCalls   int
	cleanups    int
	rawToggles  int
	clearCalls  int
	flushCalls  int
	cursorShown bool

	initErr error
	sizeErr error
}

func newFakeTerminal(width, height int) *fakeTerminal {
	return &fakeTerminal{width: width, height: height}
}

func (f *fakeTerminal) setSize(width, height int) {
	f.mu.Lock()
	f.width, f.height = width, height
	f.mu.Unlock()
}

func (f *fakeTerminal) Init() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initCalls++
	return f.initErr
}

func (f *fakeTerminal) Cleanup() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleanups++
	f.rawMode = false
	return nil
}

func (f *fakeTerminal) GetSize() (int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.width, f.height, f.sizeErr
}

func (f *fakeTerminal) SetRawMode(enabled bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rawMode != enabled {
		f.rawToggles++
	}
	f.rawMode = enabled
	return nil
}

func (f *fakeTerminal) IsRawMode() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rawMode
}

func (f *fakeTerminal) EnterAltScreen() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.altScreen = true
	return nil
}

func (f *fakeTerminal) ExitAltScreen() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.altScreen = false
	return nil
}

func (f *fakeTerminal) MoveCursor(x, y int) error { return nil }

func (f *fakeTerminal) HideCursor() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cursorShown = false
	return nil
}

func (f *fakeTerminal) ShowCursor() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cursorShown = true
	return nil
}

func (f *fakeTerminal) ClearScreen() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clearCalls++
	return nil
}

func (f *fakeTerminal) ClearLine() error { return nil }

func (f *fakeTerminal) Write(data []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes.Write(data)
}

func (f *fakeTerminal) Flush() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flushCalls++
	return nil
}

func (f *fakeTerminal) written() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes.String()
}
