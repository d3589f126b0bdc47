package console

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Surface is an opaque rectangular terminal drawing region with its own
// content buffer. Surfaces are exclusively owned, never copied; the
// SurfaceManager creates and destroys them as a set.
type Surface struct {
	x, y          int // top-left corner in terminal cells, 0-based
	width, height int
	cells         [][]rune
	sgr           string // optional SGR prefix applied per row at blit time
}

func newSurface(x, y, width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: surface %dx%d at (%d,%d)", ErrTerminalTooSmall, width, height, x, y)
	}

	cells := make([][]rune, height)
	for row := range cells {
		cells[row] = make([]rune, width)
	}
	s := &Surface{x: x, y: y, width: width, height: height, cells: cells}
	s.Clear()
	return s, nil
}

// Size returns the surface dimensions in cells.
func (s *Surface) Size() (width, height int) {
	return s.width, s.height
}

// Origin returns the surface's top-left terminal position (0-based).
func (s *Surface) Origin() (x, y int) {
	return s.x, s.y
}

// Clear fills the surface with spaces.
func (s *Surface) Clear() {
	for row := range s.cells {
		for col := range s.cells[row] {
			s.cells[row][col] = ' '
		}
	}
}

// SetLine writes text into the given row starting at column 0, truncated to
// the surface width by display-cell count. Out-of-range rows are ignored.
func (s *Surface) SetLine(row int, text string) {
	if row < 0 || row >= s.height {
		return
	}

	for col := range s.cells[row] {
		s.cells[row][col] = ' '
	}

	col := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > s.width {
			break
		}
		s.cells[row][col] = r
		for i := 1; i < w; i++ {
			s.cells[row][col+i] = ' '
		}
		col += w
	}
}

// Box draws a border around the surface edge with an optional title on the
// top edge. Surfaces smaller than 2x2 cannot carry a border and are left
// untouched.
func (s *Surface) Box(title string) {
	if s.width < 2 || s.height < 2 {
		return
	}

	for col := 1; col < s.width-1; col++ {
		s.cells[0][col] = '─'
		s.cells[s.height-1][col] = '─'
	}
	for row := 1; row < s.height-1; row++ {
		s.cells[row][0] = '│'
		s.cells[row][s.width-1] = '│'
	}
	s.cells[0][0] = '┌'
	s.cells[0][s.width-1] = '┐'
	s.cells[s.height-1][0] = '└'
	s.cells[s.height-1][s.width-1] = '┘'

	if title == "" {
		return
	}
	label := " " + title + " "
	col := 2
	for _, r := range label {
		if col >= s.width-2 {
			break
		}
		s.cells[0][col] = r
		col += runewidth.RuneWidth(r)
	}
}

// Line returns the content of a row as a string, for rendering and tests.
func (s *Surface) Line(row int) string {
	if row < 0 || row >= s.height {
		return ""
	}
	return s.rowString(row)
}

// rowString serializes a row cell by cell, skipping the pad cells that
// follow a double-width rune so the string occupies exactly the surface
// width in display columns.
func (s *Surface) rowString(row int) string {
	var b strings.Builder
	for col := 0; col < s.width; {
		r := s.cells[row][col]
		b.WriteRune(r)
		if w := runewidth.RuneWidth(r); w > 1 {
			col += w
		} else {
			col++
		}
	}
	return b.String()
}

// Blit writes the surface content to the terminal at its origin.
func (s *Surface) Blit(tm TerminalManager) error {
	for row := 0; row < s.height; row++ {
		if err := tm.MoveCursor(s.x+1, s.y+row+1); err != nil {
			return err
		}
		line := s.rowString(row)
		if s.sgr != "" {
			line = s.sgr + line + sgrResetSeq()
		}
		if _, err := tm.Write([]byte(line)); err != nil {
			return err
		}
	}
	return nil
}
