// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prompt

import (
	"errors"
)

// ErrInputClosed is returned once the input stream can no longer be read.
var ErrInputClosed = errors.New("input closed")

// Prompter reads lines of user input.
type Prompter interface {
	// Prompt shows text and returns the line the user typed.
	Prompt(text string) (string, error)

	// PromptWithPrefill is like Prompt but starts the line with prefill
	// for editing. Implementations without line editing ignore prefill.
	PromptWithPrefill(text, prefill string) (string, error)

	// Close releases the input. Further prompts return ErrInputClosed.
	Close() error
}
