package console

import (
	"fmt"
	"testing"
)

func typeString(e *LineEditor, s string) {
	for _, r := range s {
		e.ProcessKey(KeyEvent{Type: KeyRune, Rune: r})
	}
}

func submit(e *LineEditor) KeyResult {
	return e.ProcessKey(KeyEvent{Type: KeyEnter})
}

func TestLineEditorTypingAndCursor(t *testing.T) {
	e := NewLineEditor(78)

	typeString(e, "hello")
	if e.Input() != "hello" || e.Cursor() != 5 {
		t.Fatalf("Expected buffer %q cursor 5, got %q cursor %d", "hello", e.Input(), e.Cursor())
	}

	// Insert in the middle.
	e.ProcessKey(KeyEvent{Type: KeyLeft})
	e.ProcessKey(KeyEvent{Type: KeyLeft})
	typeString(e, "XY")
	if e.Input() != "helXYlo" {
		t.Errorf("Expected mid-buffer insert %q, got %q", "helXYlo", e.Input())
	}

	e.ProcessKey(KeyEvent{Type: KeyHome})
	if e.Cursor() != 0 {
		t.Errorf("Expected cursor 0 after Home, got %d", e.Cursor())
	}
	e.ProcessKey(KeyEvent{Type: KeyEnd})
	if e.Cursor() != len("helXYlo") {
		t.Errorf("Expected cursor at end, got %d", e.Cursor())
	}
}

func TestLineEditorBackspaceAndDelete(t *testing.T) {
	e := NewLineEditor(78)
	typeString(e, "abc")

	e.ProcessKey(KeyEvent{Type: KeyBackspace})
	if e.Input() != "ab" {
		t.Errorf("Expected %q after backspace, got %q", "ab", e.Input())
	}

	e.ProcessKey(KeyEvent{Type: KeyHome})
	e.ProcessKey(KeyEvent{Type: KeyDelete})
	if e.Input() != "b" {
		t.Errorf("Expected %q after delete, got %q", "b", e.Input())
	}

	// At the boundaries both are no-ops.
	e.ProcessKey(KeyEvent{Type: KeyBackspace})
	e.ProcessKey(KeyEvent{Type: KeyEnd})
	e.ProcessKey(KeyEvent{Type: KeyDelete})
	if e.Input() != "b" {
		t.Errorf("Boundary edits must be no-ops, got %q", e.Input())
	}
}

func TestLineEditorSubmit(t *testing.T) {
	e := NewLineEditor(78)
	typeString(e, "look")

	result := submit(e)
	if !result.Submitted || result.Text != "look" {
		t.Fatalf("Expected submission of %q, got %+v", "look", result)
	}
	if e.Input() != "" || e.Cursor() != 0 {
		t.Errorf("Buffer must be cleared after submit, got %q cursor %d", e.Input(), e.Cursor())
	}

	// Enter on an empty buffer submits nothing.
	result = submit(e)
	if result.Submitted {
		t.Error("Empty buffer must not submit")
	}
	if !result.NeedsRedraw {
		t.Error("Every key reports NeedsRedraw")
	}
}

// Submitting the same command repeatedly stores it once; empty commands are
// never stored.
func TestLineEditorHistoryDeduplication(t *testing.T) {
	e := NewLineEditor(78)

	for i := 0; i < 3; i++ {
		typeString(e, "look")
		submit(e)
	}
	if n := len(e.History()); n != 1 {
		t.Fatalf("Expected 1 history entry after duplicate submits, got %d", n)
	}

	typeString(e, "north")
	submit(e)
	typeString(e, "look")
	submit(e)
	if n := len(e.History()); n != 3 {
		t.Errorf("Non-consecutive duplicates are distinct entries, expected 3, got %d", n)
	}
}

func TestLineEditorHistoryCap(t *testing.T) {
	e := NewLineEditor(78)
	for i := 0; i < maxHistorySize+20; i++ {
		typeString(e, fmt.Sprintf("cmd%d", i))
		submit(e)
	}
	h := e.History()
	if len(h) != maxHistorySize {
		t.Fatalf("Expected history capped at %d, got %d", maxHistorySize, len(h))
	}
	if h[0].Command != "cmd20" {
		t.Errorf("Expected oldest entries evicted, first is %q", h[0].Command)
	}
}

func TestLineEditorHistoryBrowsing(t *testing.T) {
	e := NewLineEditor(78)
	for _, cmd := range []string{"first", "second", "third"} {
		typeString(e, cmd)
		submit(e)
	}

	// Up walks newest to oldest and sticks at the oldest entry.
	e.ProcessKey(KeyEvent{Type: KeyUp})
	if e.Input() != "third" {
		t.Fatalf("Expected %q, got %q", "third", e.Input())
	}
	e.ProcessKey(KeyEvent{Type: KeyUp})
	e.ProcessKey(KeyEvent{Type: KeyUp})
	e.ProcessKey(KeyEvent{Type: KeyUp})
	if e.Input() != "first" {
		t.Errorf("Expected browsing to stick at oldest, got %q", e.Input())
	}

	// Down walks back; moving past the newest clears the buffer and exits
	// browsing.
	e.ProcessKey(KeyEvent{Type: KeyDown})
	e.ProcessKey(KeyEvent{Type: KeyDown})
	if e.Input() != "third" {
		t.Errorf("Expected %q, got %q", "third", e.Input())
	}
	e.ProcessKey(KeyEvent{Type: KeyDown})
	if e.Input() != "" {
		t.Errorf("Expected empty buffer after exiting history, got %q", e.Input())
	}
	// Down when not browsing is a no-op.
	e.ProcessKey(KeyEvent{Type: KeyDown})
	if e.Input() != "" {
		t.Errorf("Down outside browsing must be a no-op, got %q", e.Input())
	}
}

func TestLineEditorSubmitWhileBrowsing(t *testing.T) {
	e := NewLineEditor(78)
	typeString(e, "north")
	submit(e)

	e.ProcessKey(KeyEvent{Type: KeyUp})
	result := submit(e)
	if !result.Submitted || result.Text != "north" {
		t.Fatalf("Expected recalled command submitted, got %+v", result)
	}
	// Browsing state resets; a fresh Up starts at the newest entry again.
	e.ProcessKey(KeyEvent{Type: KeyUp})
	if e.Input() != "north" {
		t.Errorf("Expected fresh browse after submit, got %q", e.Input())
	}
}

func TestLineEditorResizeClampsCursor(t *testing.T) {
	e := NewLineEditor(78)
	typeString(e, "a long command line")

	e.Resize(5)
	if e.Input() != "a long command line" {
		t.Error("Resize must not mutate the buffer")
	}
	if e.CursorCol() != 4 {
		t.Errorf("Expected cursor column clamped to 4, got %d", e.CursorCol())
	}

	e.Resize(78)
	if e.CursorCol() != len("a long command line") {
		t.Errorf("Expected cursor column restored, got %d", e.CursorCol())
	}
}

func TestLineEditorRender(t *testing.T) {
	e := NewLineEditor(0)
	// Rendering with no bound surface must not panic.
	e.Render()

	s, _ := newSurface(1, 21, 10, 1)
	e.BindSurface(s)
	typeString(e, "hello")
	e.Render()
	if got := s.Line(0); got != "hello     " {
		t.Errorf("Expected rendered line %q, got %q", "hello     ", got)
	}

	e.BindSurface(nil)
	e.Render() // still no panic
}

func TestLineEditorClearHistory(t *testing.T) {
	e := NewLineEditor(78)
	typeString(e, "look")
	submit(e)

	e.ClearHistory()
	if len(e.History()) != 0 {
		t.Error("Expected empty history after ClearHistory")
	}
	e.ProcessKey(KeyEvent{Type: KeyUp})
	if e.Input() != "" {
		t.Errorf("Up with empty history must be a no-op, got %q", e.Input())
	}
}
