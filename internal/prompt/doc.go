// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prompt reads user input for the quiz shell.
//
// A Prompter reads one line per call. Liner is the interactive
// implementation backed by github.com/peterh/liner, with persistent
// history and pre-filled editing. Script replays canned answers and is
// used by tests and non-interactive input.
//
// Sequencer wraps a Prompter for multi-step dialogs: each Ask returns the
// trimmed response and the next prompt is only issued once it returns.
//
// Any failure of the underlying input (EOF, Ctrl+C, closed terminal) is
// reported as ErrInputClosed.
package prompt
