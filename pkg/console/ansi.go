package console

import "fmt"

// ANSI escape sequence helpers for consistent terminal control.

// moveCursorSeq returns the escape sequence to move the cursor to (x,y).
// Note: ANSI uses row (y) first, then column (x). Both are 1-based.
func moveCursorSeq(x, y int) string {
	return fmt.Sprintf("\033[%d;%dH", y, x)
}

// clearScreenSeq clears the whole screen and homes the cursor.
func clearScreenSeq() string { return "\033[2J\033[H" }

// clearLineSeq clears the entire current line.
func clearLineSeq() string { return "\r\033[K" }

// hideCursorSeq and showCursorSeq toggle cursor visibility.
func hideCursorSeq() string { return "\033[?25l" }
func showCursorSeq() string { return "\033[?25h" }

// enterAltScreenSeq and exitAltScreenSeq switch the alternate screen buffer.
func enterAltScreenSeq() string { return "\033[?1049h" }
func exitAltScreenSeq() string  { return "\033[?1049l" }

// sgrResetSeq resets all character attributes.
func sgrResetSeq() string { return "\033[0m" }
