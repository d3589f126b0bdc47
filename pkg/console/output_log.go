package console

import (
	"strings"
	"sync"
)

// DefaultOutputCap is the number of display lines retained by the session's
// output log.
const DefaultOutputCap = 1000

// OutputLog is a bounded, mutex-guarded ordered sequence of display lines.
// It is shared between the main loop and asynchronous shutdown paths, so
// every mutation goes through the lock. Signal callbacks must never touch
// it (they use atomics only).
type OutputLog struct {
	mu       sync.Mutex
	lines    []string
	maxLines int
	scroll   int // lines scrolled back from the newest
}

// NewOutputLog creates a log retaining at most maxLines lines.
func NewOutputLog(maxLines int) *OutputLog {
	if maxLines < 1 {
		maxLines = 1
	}
	return &OutputLog{
		lines:    make([]string, 0, maxLines),
		maxLines: maxLines,
	}
}

// Append adds content to the log. Content spanning multiple lines is split;
// a trailing newline does not produce an empty final line. Once the cap is
// exceeded the oldest lines are evicted first.
func (l *OutputLog) Append(content string) {
	parts := strings.Split(content, "\n")

	l.mu.Lock()
	defer l.mu.Unlock()

	for i, line := range parts {
		if i == len(parts)-1 && line == "" {
			continue
		}
		l.lines = append(l.lines, line)
	}

	if excess := len(l.lines) - l.maxLines; excess > 0 {
		copy(l.lines, l.lines[excess:])
		l.lines = l.lines[:l.maxLines]
	}
}

// Len returns the number of retained lines.
func (l *OutputLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lines)
}

// SnapshotVisible returns the slice of lines visible in a viewport of the
// given height when scrolled back scrollOffset lines from the newest. Both
// ends clamp gracefully; the result is in chronological order.
func (l *OutputLog) SnapshotVisible(viewportHeight, scrollOffset int) []string {
	if viewportHeight < 0 {
		viewportHeight = 0
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	total := len(l.lines)
	last := total - scrollOffset
	if last < 0 {
		last = 0
	}
	first := last - viewportHeight
	if first < 0 {
		first = 0
	}

	visible := make([]string, last-first)
	copy(visible, l.lines[first:last])
	return visible
}

// Visible returns the viewport slice at the log's current scroll position.
func (l *OutputLog) Visible(viewportHeight int) []string {
	l.mu.Lock()
	scroll := l.scroll
	l.mu.Unlock()
	return l.SnapshotVisible(viewportHeight, scroll)
}

// ScrollUp moves the viewport toward older lines, clamped so the oldest
// line can reach the top of the viewport but no further.
func (l *OutputLog) ScrollUp(n, viewportHeight int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.scroll += n
	max := len(l.lines) - viewportHeight
	if max < 0 {
		max = 0
	}
	if l.scroll > max {
		l.scroll = max
	}
}

// ScrollDown moves the viewport toward the newest lines.
func (l *OutputLog) ScrollDown(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.scroll -= n
	if l.scroll < 0 {
		l.scroll = 0
	}
}

// ScrollToBottom snaps the viewport to the newest line.
func (l *OutputLog) ScrollToBottom() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.scroll = 0
}

// Scroll returns the current scroll offset.
func (l *OutputLog) Scroll() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.scroll
}
