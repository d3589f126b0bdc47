package console

const (
	// defaultInputHeight is the preferred outer height of the input pane,
	// including its top and bottom border rows.
	defaultInputHeight = 3

	// minTermWidth and minTermHeight are the smallest terminal dimensions
	// that leave at least one content row and column inside each pane.
	minTermWidth  = 10
	minTermHeight = 15
)

// Geometry describes the vertical split of the terminal into an output pane
// stacked above an input pane, plus the inner (content) dimensions of each
// pane once the one-cell border is subtracted.
type Geometry struct {
	TermHeight int
	TermWidth  int

	OutputHeight int // outer height of the output pane
	InputHeight  int // outer height of the input pane

	OutputInnerH int
	OutputInnerW int
	InputInnerH  int
	InputInnerW  int
}

// ComputeLayout derives pane geometry from terminal dimensions. It is a pure
// function with no side effects. Negative dimensions are clamped to zero.
// The input pane gets its preferred height, clamped to at least one row and
// to at most a fifth of the terminal; whatever remains goes to the output
// pane, so OutputHeight+InputHeight always equals the (clamped) height.
func ComputeLayout(height, width int) Geometry {
	if height < 0 {
		height = 0
	}
	if width < 0 {
		width = 0
	}

	inputH := defaultInputHeight
	if maxInput := height / 5; inputH > maxInput {
		inputH = maxInput
	}
	if inputH < 1 {
		inputH = 1
	}
	if inputH > height {
		inputH = height
	}

	return Geometry{
		TermHeight:   height,
		TermWidth:    width,
		OutputHeight: height - inputH,
		InputHeight:  inputH,
		OutputInnerH: innerDim(height - inputH),
		OutputInnerW: innerDim(width),
		InputInnerH:  innerDim(inputH),
		InputInnerW:  innerDim(width),
	}
}

// Usable reports whether the terminal is large enough for both bordered
// panes to hold at least one content cell.
func (g Geometry) Usable() bool {
	return g.TermWidth >= minTermWidth && g.TermHeight >= minTermHeight
}

func innerDim(outer int) int {
	if outer <= 2 {
		return 0
	}
	return outer - 2
}
