// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands is the quiz shell's command engine.
//
// An input line is a command name followed by optional arguments; names are
// case-insensitive and quoted arguments may contain spaces. Engine.Execute
// runs one line to completion and reports every failure to the output, so a
// failed command never ends the session. Only quit and a closed input do.
//
// # Built-in Commands
//
//   - h|help: Show available commands
//   - list: List quizzes as [id]: question
//   - show <id>: Show a quiz as [id]: question => answer
//   - add: Ask for a question and answer and store them
//   - delete <id>: Delete a quiz (unknown ids are ignored)
//   - edit <id>: Edit a quiz, pre-filling the current text
//   - test <id>: Ask one quiz and report CORRECT or INCORRECT
//   - p|play: Ask every quiz once in random order until a miss
//   - credits: Show the credits
//   - q|quit: End the session
//
// # Usage
//
//	engine := commands.NewEngine(repo, prompt.NewSequencer(p, true), console)
//	if quit := engine.Execute(ctx, "show 3"); quit {
//	    return
//	}
package commands
