package console

// TerminalManager handles all low-level terminal operations the session
// needs. The production implementation drives a real tty; tests substitute
// an in-memory fake.
type TerminalManager interface {
	// Initialization
	Init() error
	Cleanup() error

	// Size detection
	GetSize() (width, height int, err error)

	// Terminal modes
	SetRawMode(enabled bool) error
	IsRawMode() bool

	// Screen buffer
	EnterAltScreen() error
	ExitAltScreen() error

	// Cursor control (1-based coordinates)
	MoveCursor(x, y int) error
	HideCursor() error
	ShowCursor() error

	// Screen operations
	ClearScreen() error
	ClearLine() error

	// Output
	Write(data []byte) (int, error)
	Flush() error
}

// Status classifies the outcome of a dispatched command.
type Status int

const (
	StatusSuccess Status = iota
	StatusError
)

// Result is what a Dispatcher returns for a handled command. The message is
// always surfaced to the output pane, success or not.
type Result struct {
	Status  Status
	Message string
}

// Dispatcher receives parsed (command, args) pairs from the session. The
// session treats it as an opaque service: errors and panics from Handle are
// converted into output lines, never propagated.
type Dispatcher interface {
	Handle(cmd, args string) Result
	ShouldQuit(cmd, args string) bool
}

// DiagnosticLog is an optional line-oriented session log for operator
// debugging. It must never write to the managed terminal.
type DiagnosticLog interface {
	Logf(format string, v ...any)
}
