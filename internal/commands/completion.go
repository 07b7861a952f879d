// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"sort"
	"strings"
)

// =============================================================================
// COMPLETER
// =============================================================================

// Completer handles tab completion for command names and quiz ids.
// Complete has the signature expected by the line editor.
type Completer struct {
	registry *Registry

	// IDsFn returns the ids of stored quizzes, if set.
	IDsFn func() []string
}

// NewCompleter creates a new completer with the given registry.
func NewCompleter(registry *Registry) *Completer {
	return &Completer{
		registry: registry,
	}
}

// Complete returns whole-line candidates for line.
func (c *Completer) Complete(line string) []string {
	trimmed := strings.TrimLeft(line, " \t")
	parts := splitCommandLine(trimmed)

	// Still typing the command name?
	if len(parts) <= 1 && !strings.HasSuffix(trimmed, " ") {
		partial := ""
		if len(parts) == 1 {
			partial = parts[0]
		}
		return c.completeCommands(partial)
	}

	cmd := c.registry.Get(parts[0])
	if cmd == nil || !cmd.TakesQuizID() || c.IDsFn == nil {
		return nil
	}

	// Only the first argument is completed.
	partial := ""
	switch {
	case len(parts) == 1:
	case len(parts) == 2 && !strings.HasSuffix(trimmed, " "):
		partial = parts[1]
	default:
		return nil
	}

	var out []string
	for _, id := range c.IDsFn() {
		if strings.HasPrefix(id, partial) {
			out = append(out, parts[0]+" "+id)
		}
	}
	return out
}

func (c *Completer) completeCommands(partial string) []string {
	partial = strings.ToLower(partial)

	var out []string
	for _, cmd := range c.registry.All() {
		name := strings.ToLower(cmd.Name)
		if strings.HasPrefix(name, partial) {
			suffix := ""
			if len(cmd.Args) > 0 {
				suffix = " "
			}
			out = append(out, name+suffix)
		}
	}
	sort.Strings(out)
	return out
}
