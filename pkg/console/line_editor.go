package console

import "time"

// maxHistorySize bounds the command history; the oldest entry is evicted
// first once the cap is exceeded.
const maxHistorySize = 100

// HistoryEntry is a previously submitted command with its submission time.
type HistoryEntry struct {
	Command string
	At      time.Time
}

// KeyResult describes what a key press did to the editor. NeedsRedraw is
// always true in this design; reporting false for no-op keys would save a
// repaint but complicate every caller for no visible gain.
type KeyResult struct {
	NeedsRedraw bool
	Submitted   bool
	Text        string
}

// LineEditor owns an editable text buffer, a cursor, and a bounded command
// history. It holds a non-owning reference to its render target surface,
// rebound by the session on every resize.
type LineEditor struct {
	buf    []rune
	cursor int
	width  int

	history    []HistoryEntry
	historyIdx int // -1 means not browsing

	target *Surface
}

// NewLineEditor creates an editor rendering into the given width.
func NewLineEditor(width int) *LineEditor {
	return &LineEditor{width: width, historyIdx: -1}
}

// ProcessKey maps one key event deterministically onto a buffer mutation.
func (e *LineEditor) ProcessKey(ev KeyEvent) KeyResult {
	result := KeyResult{NeedsRedraw: true}

	switch ev.Type {
	case KeyBackspace:
		if e.cursor > 0 {
			e.buf = append(e.buf[:e.cursor-1], e.buf[e.cursor:]...)
			e.cursor--
		}
	case KeyDelete:
		if e.cursor < len(e.buf) {
			e.buf = append(e.buf[:e.cursor], e.buf[e.cursor+1:]...)
		}
	case KeyLeft:
		if e.cursor > 0 {
			e.cursor--
		}
	case KeyRight:
		if e.cursor < len(e.buf) {
			e.cursor++
		}
	case KeyHome:
		e.cursor = 0
	case KeyEnd:
		e.cursor = len(e.buf)
	case KeyUp:
		e.historyBack()
	case KeyDown:
		e.historyForward()
	case KeyEnter:
		if len(e.buf) > 0 {
			result.Submitted = true
			result.Text = string(e.buf)
			e.appendHistory(result.Text)
			e.buf = e.buf[:0]
			e.cursor = 0
			e.historyIdx = -1
		}
	case KeyRune:
		e.buf = append(e.buf[:e.cursor], append([]rune{ev.Rune}, e.buf[e.cursor:]...)...)
		e.cursor++
	}

	return result
}

// historyBack enters or continues browsing toward the oldest entry. The
// first press jumps to the most recent entry.
func (e *LineEditor) historyBack() {
	if len(e.history) == 0 {
		return
	}
	if e.historyIdx == -1 {
		e.historyIdx = len(e.history) - 1
	} else if e.historyIdx > 0 {
		e.historyIdx--
	}
	e.buf = []rune(e.history[e.historyIdx].Command)
	e.cursor = len(e.buf)
}

// historyForward moves toward the newest entry; moving past it exits
// browsing and clears the buffer. No-op when not browsing.
func (e *LineEditor) historyForward() {
	if e.historyIdx == -1 {
		return
	}
	if e.historyIdx < len(e.history)-1 {
		e.historyIdx++
		e.buf = []rune(e.history[e.historyIdx].Command)
		e.cursor = len(e.buf)
		return
	}
	e.historyIdx = -1
	e.buf = e.buf[:0]
	e.cursor = 0
}

// appendHistory stores a submitted command. Empty text and exact duplicates
// of the most recent entry are silent no-ops.
func (e *LineEditor) appendHistory(cmd string) {
	if cmd == "" {
		return
	}
	if n := len(e.history); n > 0 && e.history[n-1].Command == cmd {
		return
	}
	e.history = append(e.history, HistoryEntry{Command: cmd, At: time.Now()})
	if len(e.history) > maxHistorySize {
		e.history = e.history[1:]
	}
}

// Resize updates the rendering width and re-clamps the cursor. Width only
// affects truncation at render time; the buffer is never mutated.
func (e *LineEditor) Resize(width int) {
	e.width = width
	e.clampCursor()
}

// BindSurface rebinds the editor's render target after a surface recreate.
func (e *LineEditor) BindSurface(s *Surface) {
	e.target = s
	if s != nil {
		w, _ := s.Size()
		e.width = w
	}
	e.clampCursor()
}

func (e *LineEditor) clampCursor() {
	if e.cursor > len(e.buf) {
		e.cursor = len(e.buf)
	}
	if e.cursor < 0 {
		e.cursor = 0
	}
}

// Render writes the buffer into row 0 of the bound surface, truncated to
// the viewport width. Cursor placement on screen is the caller's job.
func (e *LineEditor) Render() {
	if e.target == nil {
		return
	}
	e.target.Clear()
	e.target.SetLine(0, string(e.buf))
}

// CursorCol returns the cursor column within the input pane, clamped to the
// visible width.
func (e *LineEditor) CursorCol() int {
	col := e.cursor
	if e.width > 0 && col > e.width-1 {
		col = e.width - 1
	}
	if col < 0 {
		col = 0
	}
	return col
}

// Input returns the current buffer content.
func (e *LineEditor) Input() string {
	return string(e.buf)
}

// Cursor returns the cursor index within the buffer.
func (e *LineEditor) Cursor() int {
	return e.cursor
}

// History returns the stored entries, oldest first.
func (e *LineEditor) History() []HistoryEntry {
	return e.history
}

// ClearHistory drops all stored entries and exits browsing.
func (e *LineEditor) ClearHistory() {
	e.history = nil
	e.historyIdx = -1
}
