// Package game implements the command dispatcher behind the console UI: a
// flat name→command registry over a tiny two-room world. It is the
// session's stand-in command target, not a simulation.
package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/termquest/termquest/pkg/console"
)

// Command is the capability interface every dispatchable command
// implements, whether native or script-backed.
type Command interface {
	Help() string
	Description() string
	Run(args string) (string, error)
}

type funcCommand struct {
	help string
	desc string
	run  func(args string) (string, error)
}

// NewCommand wraps a plain function as a Command.
func NewCommand(help, description string, run func(args string) (string, error)) Command {
	return &funcCommand{help: help, desc: description, run: run}
}

func (c *funcCommand) Help() string                    { return c.help }
func (c *funcCommand) Description() string             { return c.desc }
func (c *funcCommand) Run(args string) (string, error) { return c.run(args) }

// World is the mutable game state: the player and where they stand.
type World struct {
	PlayerName  string
	CurrentRoom string
}

// Engine is a name→command registry implementing console.Dispatcher.
// It is confined to the session's loop goroutine.
type Engine struct {
	world    World
	commands map[string]Command
}

// NewEngine creates an engine with the built-in commands registered and the
// player placed in the starting room.
func NewEngine(playerName string) *Engine {
	e := &Engine{
		world:    World{PlayerName: playerName, CurrentRoom: StartRoom},
		commands: make(map[string]Command),
	}
	e.registerBuiltins()
	return e
}

// Register adds or replaces a command.
func (e *Engine) Register(name string, cmd Command) {
	e.commands[name] = cmd
}

// World returns a copy of the current game state.
func (e *Engine) World() World {
	return e.world
}

// Handle looks up and runs a command. Unknown commands and command errors
// come back as error results; the message is never empty.
func (e *Engine) Handle(cmd, args string) console.Result {
	name := strings.ToLower(strings.TrimSpace(cmd))
	command, ok := e.commands[name]
	if !ok {
		return console.Result{
			Status:  console.StatusError,
			Message: fmt.Sprintf("Unknown command: '%s'. Type 'help' for a list of commands.", cmd),
		}
	}

	message, err := command.Run(args)
	if err != nil {
		return console.Result{Status: console.StatusError, Message: err.Error()}
	}
	return console.Result{Status: console.StatusSuccess, Message: message}
}

// ShouldQuit reports whether the command ends the session.
func (e *Engine) ShouldQuit(cmd, args string) bool {
	name := strings.ToLower(strings.TrimSpace(cmd))
	return name == "exit" || name == "quit"
}

// CommandNames returns the registered command names, sorted.
func (e *Engine) CommandNames() []string {
	names := make([]string, 0, len(e.commands))
	for name := range e.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Engine) registerBuiltins() {
	e.Register("look", NewCommand("look", "Describe the current room.",
		func(string) (string, error) {
			room, ok := rooms[e.world.CurrentRoom]
			if !ok {
				return "", fmt.Errorf("you are nowhere recognizable")
			}
			return fmt.Sprintf("You are in %s. %s", e.world.CurrentRoom, room.description), nil
		}))

	for _, dir := range []string{"north", "south", "east", "west"} {
		dir := dir
		e.Register(dir, NewCommand(dir, "Move "+dir+".",
			func(string) (string, error) {
				return e.move(dir)
			}))
	}

	e.Register("help", NewCommand("help [command]",
		"Display help for all commands or a specific command.",
		func(args string) (string, error) {
			return e.helpText(args)
		}))

	e.Register("exit", NewCommand("exit", "Exit the game.",
		func(string) (string, error) { return "Goodbye.", nil }))
	e.Register("quit", NewCommand("quit", "Exit the game.",
		func(string) (string, error) { return "Goodbye.", nil }))
}

func (e *Engine) move(direction string) (string, error) {
	room, ok := rooms[e.world.CurrentRoom]
	if !ok {
		return "", fmt.Errorf("you are nowhere recognizable")
	}
	next, ok := room.exits[direction]
	if !ok {
		return "", fmt.Errorf("You can't go %s from here.", direction)
	}
	e.world.CurrentRoom = next
	return fmt.Sprintf("You move %s into %s.", direction, next), nil
}

func (e *Engine) helpText(args string) (string, error) {
	topic := strings.TrimSpace(args)
	if topic == "" {
		var b strings.Builder
		b.WriteString("Available commands:\n")
		for _, name := range e.CommandNames() {
			fmt.Fprintf(&b, "  %s - %s\n", name, e.commands[name].Description())
		}
		return strings.TrimRight(b.String(), "\n"), nil
	}

	command, ok := e.commands[strings.ToLower(topic)]
	if !ok {
		return "", fmt.Errorf("Unknown command: '%s'. Type 'help' for a list of commands.", topic)
	}
	return fmt.Sprintf("%s\n  %s", command.Help(), command.Description()), nil
}
