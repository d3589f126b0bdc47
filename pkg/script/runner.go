// Package script loads Lua command scripts and exposes them through the
// same capability interface native commands implement: help, description,
// and run(args) returning a message or an error.
package script

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// Command is a validated, loaded script command. It satisfies the game
// package's Command interface.
type Command struct {
	mu    sync.Mutex
	state *lua.LState

	name string
	help string
	desc string
}

// Name returns the command name the script was registered under.
func (c *Command) Name() string { return c.name }

// Help returns the script's help string.
func (c *Command) Help() string { return c.help }

// Description returns the script's description string.
func (c *Command) Description() string { return c.desc }

// Run invokes the script's run(args) function. Scripts report failure by
// returning (nil, message).
func (c *Command) Run(args string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fn := c.state.GetGlobal("run")
	if err := c.state.CallByParam(lua.P{Fn: fn, NRet: 2, Protect: true}, lua.LString(args)); err != nil {
		return "", fmt.Errorf("script %q: %w", c.name, err)
	}

	errVal := c.state.Get(-1)
	retVal := c.state.Get(-2)
	c.state.Pop(2)

	if msg, ok := retVal.(lua.LString); ok {
		return string(msg), nil
	}
	if msg, ok := errVal.(lua.LString); ok {
		return "", fmt.Errorf("script %q: %s", c.name, string(msg))
	}
	return "", fmt.Errorf("script %q returned no message", c.name)
}

// Close releases the script's interpreter state.
func (c *Command) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Close()
}

// Runner loads and owns script commands.
type Runner struct {
	commands map[string]*Command
	diag     func(format string, v ...any)
}

// NewRunner creates an empty runner. diag may be nil.
func NewRunner(diag func(format string, v ...any)) *Runner {
	return &Runner{commands: make(map[string]*Command), diag: diag}
}

// Load reads and validates one script file. The script must define string
// globals `help` and `description` and a function `run`.
func (r *Runner) Load(name, path string) (*Command, error) {
	state := lua.NewState()
	ok := false
	defer func() {
		if !ok {
			state.Close()
		}
	}()

	if err := state.DoFile(path); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	help, err := stringGlobal(state, "help")
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	desc, err := stringGlobal(state, "description")
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	if state.GetGlobal("run").Type() != lua.LTFunction {
		return nil, fmt.Errorf("validate %s: global 'run' must be a function", path)
	}

	cmd := &Command{state: state, name: name, help: help, desc: desc}
	r.commands[name] = cmd
	ok = true
	return cmd, nil
}

// LoadDir loads every .lua file in dir, registering each under its base
// name. Invalid scripts are logged and skipped, never fatal; a missing
// directory loads nothing.
func (r *Runner) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read script dir %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".lua") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".lua")
		if _, err := r.Load(name, filepath.Join(dir, entry.Name())); err != nil {
			r.diagf("skipping script %s: %v", entry.Name(), err)
		}
	}
	return nil
}

// Commands returns the loaded commands sorted by name.
func (r *Runner) Commands() []*Command {
	out := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		out = append(out, cmd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Close releases all loaded scripts.
func (r *Runner) Close() {
	for _, cmd := range r.commands {
		cmd.Close()
	}
	r.commands = make(map[string]*Command)
}

func (r *Runner) diagf(format string, v ...any) {
	if r.diag != nil {
		r.diag(format, v...)
	}
}

func stringGlobal(state *lua.LState, name string) (string, error) {
	value := state.GetGlobal(name)
	str, ok := value.(lua.LString)
	if !ok {
		return "", fmt.Errorf("global %q must be a string", name)
	}
	return string(str), nil
}
