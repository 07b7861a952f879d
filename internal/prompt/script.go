// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

// =============================================================================
// SCRIPTED PROMPTER
// =============================================================================

// Script is a Prompter that replays a fixed list of lines.
// Once the lines run out every prompt returns ErrInputClosed.
type Script struct {
	mu     sync.Mutex
	lines  []string
	closed bool

	// Echo, if set, receives each prompt followed by the line that
	// answered it, so piped sessions read like a terminal transcript.
	Echo io.Writer

	// Prompts records every prompt text shown, in order.
	Prompts []string
	// Prefills records the prefill given to each PromptWithPrefill call.
	Prefills []string
}

// NewScript creates a Script that answers with lines in order.
func NewScript(lines ...string) *Script {
	return &Script{lines: lines}
}

// ReadScript reads every line of r into a Script. Used when stdin is
// not a terminal.
func ReadScript(r io.Reader) (*Script, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return NewScript(lines...), nil
}

func (s *Script) Prompt(text string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Prompts = append(s.Prompts, text)
	if s.closed || len(s.lines) == 0 {
		return "", ErrInputClosed
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	if s.Echo != nil {
		fmt.Fprintln(s.Echo, text+line)
	}
	return line, nil
}

// PromptWithPrefill records prefill and otherwise behaves like Prompt:
// the scripted line replaces the prefilled text.
func (s *Script) PromptWithPrefill(text, prefill string) (string, error) {
	s.mu.Lock()
	s.Prefills = append(s.Prefills, prefill)
	s.mu.Unlock()
	return s.Prompt(text)
}

func (s *Script) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Remaining returns the number of unread lines.
func (s *Script) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

// PromptCount returns how many prompts have been shown.
func (s *Script) PromptCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Prompts)
}
