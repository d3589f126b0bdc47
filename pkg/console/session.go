package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/muesli/termenv"
)

const degradedNotice = "Terminal too small - resize to continue."

// defaultTick bounds CPU usage of the cooperative loop; stop latency is at
// most one tick.
const defaultTick = 20 * time.Millisecond

type sessionConfig struct {
	tm         TerminalManager
	input      io.Reader
	profile    termenv.Profile
	profileSet bool
	diag       DiagnosticLog
	bridge     *SignalBridge
	tick       time.Duration
	altScreen  bool
}

// Option configures a Session at construction time.
type Option func(*sessionConfig)

// WithTerminalManager substitutes the terminal implementation (tests).
func WithTerminalManager(tm TerminalManager) Option {
	return func(c *sessionConfig) { c.tm = tm }
}

// WithInput reads key bytes from r instead of the process's stdin.
func WithInput(r io.Reader) Option {
	return func(c *sessionConfig) { c.input = r }
}

// WithColorProfile skips terminal color detection and forces a profile.
func WithColorProfile(p termenv.Profile) Option {
	return func(c *sessionConfig) { c.profile = p; c.profileSet = true }
}

// WithDiagnostics attaches an optional session log.
func WithDiagnostics(diag DiagnosticLog) Option {
	return func(c *sessionConfig) { c.diag = diag }
}

// WithSignalBridge substitutes the signal registry (tests).
func WithSignalBridge(b *SignalBridge) Option {
	return func(c *sessionConfig) { c.bridge = b }
}

// WithTickInterval overrides the idle sleep between loop iterations.
func WithTickInterval(d time.Duration) Option {
	return func(c *sessionConfig) { c.tick = d }
}

// WithAltScreen controls use of the alternate screen buffer.
func WithAltScreen(enabled bool) Option {
	return func(c *sessionConfig) { c.altScreen = enabled }
}

// Session composes the terminal manager, surfaces, line editor, output log
// and signal bridge into an interactive split-screen loop around an
// external command dispatcher.
type Session struct {
	tm         TerminalManager
	pump       *inputPump
	surfaces   *SurfaceManager
	editor     *LineEditor
	out        *OutputLog
	bridge     *SignalBridge
	dispatcher Dispatcher
	diag       DiagnosticLog

	running       atomic.Bool
	resizePending atomic.Bool
	pollResize    bool // no resize signal on this platform, compare sizes instead
	lastW, lastH  int
	tick          time.Duration
	altScreen     bool

	closeOnce sync.Once
	closeErr  error
}

// NewSession acquires the terminal, configures raw non-blocking input,
// verifies color capability, lays out the panes and registers signal
// handlers, in that order. Any failure unwinds everything started so far
// and restores the terminal. A too-small terminal is not a failure: the
// session starts in degraded mode and recovers on resize.
func NewSession(dispatcher Dispatcher, opts ...Option) (*Session, error) {
	cfg := sessionConfig{tick: defaultTick, altScreen: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	tm := cfg.tm
	if tm == nil {
		tm = NewTerminalManager()
	}
	if err := tm.Init(); err != nil {
		return nil, fmt.Errorf("terminal init: %w", err)
	}

	ok := false
	defer func() {
		if ok {
			return
		}
		// Unwind: restore the terminal before reporting the failure.
		if cfg.altScreen {
			_ = tm.ExitAltScreen()
		}
		_ = tm.ShowCursor()
		_ = tm.Flush()
		_ = tm.SetRawMode(false)
		_ = tm.Cleanup()
	}()

	if err := tm.SetRawMode(true); err != nil {
		return nil, fmt.Errorf("raw mode: %w", err)
	}
	if cfg.altScreen {
		if err := tm.EnterAltScreen(); err != nil {
			return nil, fmt.Errorf("alternate screen: %w", err)
		}
	}
	_ = tm.ClearScreen()
	_ = tm.ShowCursor()
	_ = tm.Flush()

	profile := cfg.profile
	if !cfg.profileSet {
		profile = termenv.ColorProfile()
	}
	if profile == termenv.Ascii {
		return nil, ErrNoColorSupport
	}

	s := &Session{
		tm:         tm,
		surfaces:   NewSurfaceManager(profile),
		out:        NewOutputLog(DefaultOutputCap),
		dispatcher: dispatcher,
		diag:       cfg.diag,
		tick:       cfg.tick,
		altScreen:  cfg.altScreen,
	}

	width, height, err := tm.GetSize()
	if err != nil {
		width, height = 0, 0
	}
	s.lastW, s.lastH = width, height
	geo := ComputeLayout(height, width)
	s.editor = NewLineEditor(geo.InputInnerW)
	if err := s.surfaces.Create(geo); err != nil {
		// Degraded mode: keep running, input inert except resize.
		s.diagf("starting degraded at %dx%d: %v", width, height, err)
	} else {
		s.editor.BindSurface(s.surfaces.InputContent())
	}

	if cfg.input != nil {
		s.pump = newInputPump(cfg.input)
	} else {
		pump, err := newTerminalPump(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("non-blocking input: %w", err)
		}
		s.pump = pump
	}

	s.bridge = cfg.bridge
	if s.bridge == nil {
		s.bridge = NewSignalBridge()
	}
	s.bridge.SetDiagnostics(cfg.diag)
	for _, sig := range terminateSignals() {
		s.bridge.Register(sig, s.Stop)
	}
	if sig := resizeSignal(); sig != nil {
		s.bridge.Register(sig, func() { s.resizePending.Store(true) })
	} else {
		s.pollResize = true
	}

	// The session counts as running from here so a Stop (for example a
	// signal) landing before Run is not lost.
	s.running.Store(true)

	s.diagf("session initialized at %dx%d (degraded=%t)", width, height, !s.surfaces.Ready())
	ok = true
	return s, nil
}

// Run drives the main event loop until Stop is observed, then tears the
// session down. Single-threaded and cooperative: one input event, one
// redraw and one bounded sleep per iteration.
func (s *Session) Run() error {
	if s.running.Load() && s.surfaces.Ready() {
		s.out.Append("Console UI ready. Type 'help' or 'exit'.")
	}

	for s.running.Load() {
		s.step()
		time.Sleep(s.tick)
	}
	return s.Close()
}

// Stop requests loop termination. It is the sole cross-context mutation
// point: safe to call from signal callbacks because it only flips an
// atomic, never allocates or takes a lock.
func (s *Session) Stop() {
	s.running.Store(false)
}

// OutputLog exposes the shared output log so collaborators (and tests) can
// append lines.
func (s *Session) OutputLog() *OutputLog {
	return s.out
}

// step runs one loop iteration. Nothing recoverable escapes: dispatch and
// render failures become output lines and the loop continues.
func (s *Session) step() {
	defer func() {
		if r := recover(); r != nil {
			s.out.Append(fmt.Sprintf("Error: internal: %v", r))
		}
	}()

	if s.resizePending.Swap(false) {
		s.handleResize()
	} else if s.pollResize {
		if w, h, err := s.tm.GetSize(); err == nil && (w != s.lastW || h != s.lastH) {
			s.handleResize()
		}
	}

	ev, err := s.pump.Poll()
	if err != nil {
		s.diagf("input: %v", err)
	}
	if ev != nil {
		s.handleKey(*ev)
	}

	s.render()
}

func (s *Session) handleKey(ev KeyEvent) {
	if ev.Type == KeyCtrlC {
		s.Stop()
		return
	}
	// Degraded mode: every key except the resize event is inert.
	if !s.surfaces.Ready() {
		return
	}

	switch ev.Type {
	case KeyPageUp:
		page := s.surfaces.Geometry().OutputInnerH
		s.out.ScrollUp(page, page)
	case KeyPageDown:
		s.out.ScrollDown(s.surfaces.Geometry().OutputInnerH)
	default:
		result := s.editor.ProcessKey(ev)
		if result.Submitted {
			s.out.ScrollToBottom()
			s.submit(result.Text)
		}
	}
}

// submit echoes the command, consults the dispatcher, and surfaces the
// result. The dispatch result is always appended, success or error.
func (s *Session) submit(text string) {
	s.out.Append("> " + text)

	cmd, args := splitCommand(text)
	if cmd == "" {
		return
	}

	if s.safeShouldQuit(cmd, args) {
		s.out.Append("Exiting.")
		s.diagf("quit command %q", cmd)
		s.Stop()
		return
	}

	result := s.safeHandle(cmd, args)
	if result.Status == StatusError {
		s.out.Append("Error: " + result.Message)
	} else {
		s.out.Append(result.Message)
	}
}

func (s *Session) safeHandle(cmd, args string) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			result = Result{Status: StatusError, Message: fmt.Sprintf("command %q panicked: %v", cmd, r)}
		}
	}()
	return s.dispatcher.Handle(cmd, args)
}

func (s *Session) safeShouldQuit(cmd, args string) (quit bool) {
	defer func() {
		if r := recover(); r != nil {
			quit = false
		}
	}()
	return s.dispatcher.ShouldQuit(cmd, args)
}

// handleResize recomputes geometry and atomically recreates the surfaces.
// Exactly one notice is logged when the session leaves degraded mode.
func (s *Session) handleResize() {
	width, height, err := s.tm.GetSize()
	if err != nil {
		s.diagf("resize: %v", err)
		return
	}
	s.lastW, s.lastH = width, height

	wasDegraded := !s.surfaces.Ready()
	geo := ComputeLayout(height, width)
	if err := s.surfaces.Create(geo); err != nil {
		s.diagf("resize to %dx%d: %v", width, height, err)
		_ = s.tm.ClearScreen()
		return
	}

	s.editor.BindSurface(s.surfaces.InputContent())
	if wasDegraded {
		s.out.Append("Terminal resized to usable dimensions.")
		s.diagf("leaving degraded mode at %dx%d", width, height)
	}
	_ = s.tm.ClearScreen()
}

// render repaints both panes and places the terminal cursor inside the
// input pane. In degraded mode it falls back to a single status line.
func (s *Session) render() {
	if !s.surfaces.Ready() {
		_ = s.tm.ClearScreen()
		_ = s.tm.MoveCursor(1, 1)
		_, _ = s.tm.Write([]byte(degradedNotice))
		_ = s.tm.HideCursor()
		_ = s.tm.Flush()
		return
	}

	geo := s.surfaces.Geometry()
	output := s.surfaces.OutputContent()
	output.Clear()
	for i, line := range s.out.Visible(geo.OutputInnerH) {
		output.SetLine(i, line)
	}
	s.editor.Render()

	if err := s.surfaces.Blit(s.tm); err != nil {
		s.diagf("render: %v", err)
	}

	x, y := s.surfaces.InputContent().Origin()
	_ = s.tm.MoveCursor(x+s.editor.CursorCol()+1, y+1)
	_ = s.tm.ShowCursor()
	_ = s.tm.Flush()
}

// Close tears the session down: signal handlers first, then surfaces, then
// terminal restoration. Idempotent; safe to call alongside Run's own
// teardown.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.running.Store(false)

		for _, sig := range terminateSignals() {
			s.bridge.Unregister(sig)
		}
		if sig := resizeSignal(); sig != nil {
			s.bridge.Unregister(sig)
		}
		s.bridge.Close()

		s.surfaces.Destroy()
		if s.pump != nil {
			_ = s.pump.Close()
		}

		if s.altScreen {
			_ = s.tm.ExitAltScreen()
		}
		_ = s.tm.ShowCursor()
		_ = s.tm.Flush()
		if err := s.tm.SetRawMode(false); err != nil {
			s.closeErr = err
		}
		if err := s.tm.Cleanup(); err != nil && s.closeErr == nil {
			s.closeErr = err
		}
		s.diagf("session closed")
	})
	return s.closeErr
}

func (s *Session) diagf(format string, v ...any) {
	if s.diag != nil {
		s.diag.Logf(format, v...)
	}
}

// splitCommand parses user input into a command word and the remaining
// argument string.
func splitCommand(input string) (cmd, args string) {
	input = strings.TrimSpace(input)
	cmd, args, _ = strings.Cut(input, " ")
	return cmd, strings.TrimSpace(args)
}
