// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prompt

import (
	"context"
	"strings"
)

// =============================================================================
// SEQUENCER
// =============================================================================

// Sequencer chains prompts for a single command.
type Sequencer struct {
	p Prompter

	// prefill is false when the prompter has no line editing.
	prefill bool
}

// NewSequencer wraps p. When prefill is false AskPrefilled shows a blank line.
func NewSequencer(p Prompter, prefill bool) *Sequencer {
	return &Sequencer{p: p, prefill: prefill}
}

// Ask shows text and returns the response with surrounding whitespace
// removed. It fails with ctx.Err() if ctx is already done.
func (s *Sequencer) Ask(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := s.p.Prompt(text)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// AskPrefilled is Ask with the line pre-filled with current.
func (s *Sequencer) AskPrefilled(ctx context.Context, text, current string) (string, error) {
	if !s.prefill {
		return s.Ask(ctx, text)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := s.p.PromptWithPrefill(text, current)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Prompter returns the wrapped prompter.
func (s *Sequencer) Prompter() Prompter {
	return s.p
}
