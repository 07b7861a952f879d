// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"strings"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// HandlerFunc executes a command. Errors are reported by the Engine.
type HandlerFunc func(ctx context.Context, e *Engine, args Args) error

// Command represents a shell command that can be executed.
type Command struct {
	// Name is the primary command name (e.g., "help")
	Name string

	// Aliases are alternative names (e.g., "h")
	Aliases []string

	// Description is shown in help
	Description string

	// Usage shows argument syntax (e.g., "show <id>")
	Usage string

	// Args defines the expected arguments
	Args []ArgDef

	// Handler is the function that executes the command
	Handler HandlerFunc
}

// ArgDef defines an argument for a command.
type ArgDef struct {
	// Name of the argument
	Name string

	// Required indicates if the argument must be provided
	Required bool

	// Type determines completion behavior
	Type ArgType
}

// ArgType indicates what kind of completion to provide.
type ArgType int

const (
	ArgTypeString ArgType = iota // Free-form string
	ArgTypeQuizID                // Id of a stored quiz
)

// TakesQuizID reports whether the first argument is a quiz id.
func (c *Command) TakesQuizID() bool {
	return len(c.Args) > 0 && c.Args[0].Type == ArgTypeQuizID
}

// =============================================================================
// ARGUMENTS
// =============================================================================

// Args are the arguments following the command name.
type Args []string

// Get returns argument i and whether it was given.
func (a Args) Get(i int) (string, bool) {
	if i < 0 || i >= len(a) {
		return "", false
	}
	return a[i], true
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds all registered commands.
// Lookups are case-insensitive.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]*Command
	order    []*Command
}

// NewRegistry creates a new command registry with all built-in commands.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]*Command),
	}
	r.registerBuiltins()
	return r
}

// Register adds a command to the registry. A later command with the same
// name or alias replaces the earlier one.
func (r *Registry) Register(cmd *Command) {
	name := strings.ToLower(cmd.Name)
	if old, ok := r.commands[name]; ok {
		r.remove(old)
	}
	r.commands[name] = cmd
	for _, alias := range cmd.Aliases {
		r.aliases[strings.ToLower(alias)] = cmd
	}
	r.order = append(r.order, cmd)
}

func (r *Registry) remove(cmd *Command) {
	for i, c := range r.order {
		if c == cmd {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	for alias, c := range r.aliases {
		if c == cmd {
			delete(r.aliases, alias)
		}
	}
}

// Get retrieves a command by name or alias.
func (r *Registry) Get(name string) *Command {
	name = strings.ToLower(strings.TrimSpace(name))
	if cmd, ok := r.commands[name]; ok {
		return cmd
	}
	if cmd, ok := r.aliases[name]; ok {
		return cmd
	}
	return nil
}

// All returns all registered commands in registration order.
func (r *Registry) All() []*Command {
	cmds := make([]*Command, len(r.order))
	copy(cmds, r.order)
	return cmds
}

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

func (r *Registry) registerBuiltins() {
	idArg := []ArgDef{{Name: "id", Required: true, Type: ArgTypeQuizID}}

	r.Register(&Command{
		Name:        "help",
		Aliases:     []string{"h"},
		Description: "Show this help",
		Usage:       "h|help",
		Handler:     handleHelp,
	})

	r.Register(&Command{
		Name:        "list",
		Description: "List the existing quizzes",
		Usage:       "list",
		Handler:     handleList,
	})

	r.Register(&Command{
		Name:        "show",
		Description: "Show the question and answer of a quiz",
		Usage:       "show <id>",
		Args:        idArg,
		Handler:     handleShow,
	})

	r.Register(&Command{
		Name:        "add",
		Description: "Add a new quiz interactively",
		Usage:       "add",
		Handler:     handleAdd,
	})

	r.Register(&Command{
		Name:        "delete",
		Description: "Delete a quiz",
		Usage:       "delete <id>",
		Args:        idArg,
		Handler:     handleDelete,
	})

	r.Register(&Command{
		Name:        "edit",
		Description: "Edit a quiz",
		Usage:       "edit <id>",
		Args:        idArg,
		Handler:     handleEdit,
	})

	r.Register(&Command{
		Name:        "test",
		Description: "Test yourself on a quiz",
		Usage:       "test <id>",
		Args:        idArg,
		Handler:     handleTest,
	})

	r.Register(&Command{
		Name:        "play",
		Aliases:     []string{"p"},
		Description: "Answer every quiz in random order until you miss one",
		Usage:       "p|play",
		Handler:     handlePlay,
	})

	r.Register(&Command{
		Name:        "export",
		Description: "Write every quiz to a markdown or json file (--blank leaves out the answers)",
		Usage:       "export <format> [--blank] [path]",
		Args: []ArgDef{
			{Name: "format", Required: true, Type: ArgTypeString},
			{Name: "path", Type: ArgTypeString},
		},
		Handler: handleExport,
	})

	r.Register(&Command{
		Name:        "credits",
		Description: "Show the credits",
		Usage:       "credits",
		Handler:     handleCredits,
	})

	r.Register(&Command{
		Name:        "quit",
		Aliases:     []string{"q"},
		Description: "Quit the program",
		Usage:       "q|quit",
		Handler:     handleQuit,
	})
}
