package console

import (
	"fmt"

	"github.com/muesli/termenv"
)

const (
	outputTitle = "Output"
	inputTitle  = "Input"
)

// surfaceSet holds the four window handles as a unit. Either all four are
// valid or the set does not exist; partial states are never observable.
type surfaceSet struct {
	outputBorder  *Surface
	outputContent *Surface
	inputBorder   *Surface
	inputContent  *Surface
}

// SurfaceManager owns the pane surfaces and translates terminal dimensions
// into a consistent, leak-free set of four nested drawing regions.
type SurfaceManager struct {
	geo Geometry
	set *surfaceSet

	borderSGR string
	textSGR   string
}

// NewSurfaceManager creates a manager that styles panes for the given
// termenv color profile.
func NewSurfaceManager(profile termenv.Profile) *SurfaceManager {
	m := &SurfaceManager{}
	if profile != termenv.Ascii {
		m.borderSGR = sgrForeground(profile.Color("6")) // cyan borders
		m.textSGR = sgrForeground(profile.Color("7"))   // white text
	}
	return m
}

func sgrForeground(c termenv.Color) string {
	if c == nil {
		return ""
	}
	return termenv.CSI + c.Sequence(false) + "m"
}

// Create destroys any existing surfaces, then builds the four-pane set for
// the given geometry. On any single creation failure every partially
// created surface is released and the manager returns to the torn-down
// state, so Ready() never observes a partial set.
func (m *SurfaceManager) Create(geo Geometry) error {
	m.Destroy()

	if !geo.Usable() {
		return fmt.Errorf("%w: %dx%d (need at least %dx%d)",
			ErrTerminalTooSmall, geo.TermWidth, geo.TermHeight, minTermWidth, minTermHeight)
	}

	outputBorder, err := newSurface(0, 0, geo.TermWidth, geo.OutputHeight)
	if err != nil {
		return err
	}
	inputBorder, err := newSurface(0, geo.OutputHeight, geo.TermWidth, geo.InputHeight)
	if err != nil {
		return err
	}
	outputContent, err := newSurface(1, 1, geo.OutputInnerW, geo.OutputInnerH)
	if err != nil {
		return err
	}
	inputContent, err := newSurface(1, geo.OutputHeight+1, geo.InputInnerW, geo.InputInnerH)
	if err != nil {
		return err
	}

	outputBorder.sgr = m.borderSGR
	inputBorder.sgr = m.borderSGR
	outputContent.sgr = m.textSGR
	inputContent.sgr = m.textSGR
	outputBorder.Box(outputTitle)
	inputBorder.Box(inputTitle)

	m.geo = geo
	m.set = &surfaceSet{
		outputBorder:  outputBorder,
		outputContent: outputContent,
		inputBorder:   inputBorder,
		inputContent:  inputContent,
	}
	return nil
}

// Destroy unconditionally releases all four handles. Idempotent.
func (m *SurfaceManager) Destroy() {
	m.set = nil
}

// Ready reports whether all four surfaces are valid.
func (m *SurfaceManager) Ready() bool {
	return m.set != nil
}

// Geometry returns the layout the current set was built for.
func (m *SurfaceManager) Geometry() Geometry {
	return m.geo
}

// OutputContent returns the output pane's content surface, or nil when torn
// down.
func (m *SurfaceManager) OutputContent() *Surface {
	if m.set == nil {
		return nil
	}
	return m.set.outputContent
}

// InputContent returns the input pane's content surface, or nil when torn
// down.
func (m *SurfaceManager) InputContent() *Surface {
	if m.set == nil {
		return nil
	}
	return m.set.inputContent
}

// Blit writes all four surfaces to the terminal, borders first so content
// overdraws the interior.
func (m *SurfaceManager) Blit(tm TerminalManager) error {
	if m.set == nil {
		return nil
	}
	for _, s := range []*Surface{m.set.outputBorder, m.set.inputBorder, m.set.outputContent, m.set.inputContent} {
		if err := s.Blit(tm); err != nil {
			return err
		}
	}
	return nil
}
