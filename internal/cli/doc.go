// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli wires the quizrun process together.
//
// It parses process flags, loads configuration, opens the quiz store,
// chooses a prompter for the terminal and runs the quiz > loop.
//
// # Usage
//
//	os.Exit(cli.NewApp().Main(ctx, os.Args[1:]))
//
// A command given on the command line runs before the first prompt:
//
//	quizrun --driver memory list
//
// When stdin is not a terminal, lines are read from it as a script and the
// session ends when the script runs out.
//
// # Exit Codes
//
//   - 0: normal quit or end of input
//   - 1: startup failure (config, storage, terminal)
//   - 2: invalid flags
package cli
