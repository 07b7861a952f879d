// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prompt

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/peterh/liner"
)

// =============================================================================
// LINER PROMPTER
// =============================================================================

// Liner is an interactive Prompter with line editing and history.
// USABILITY: Supports arrow keys for history navigation and line editing.
type Liner struct {
	line        *liner.State
	historyFile string

	mu     sync.Mutex
	closed bool
}

// LinerOptions configures NewLiner.
type LinerOptions struct {
	// HistoryFile is loaded on start and written on Close. Empty disables
	// persistent history.
	HistoryFile string

	// Completer returns completions for the current line, if set.
	Completer func(line string) []string
}

// NewLiner takes over the terminal for line editing.
// Close must be called to restore the terminal.
func NewLiner(opts LinerOptions) *Liner {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	if opts.Completer != nil {
		line.SetCompleter(opts.Completer)
	}

	l := &Liner{
		line:        line,
		historyFile: opts.HistoryFile,
	}
	l.LoadHistory()
	return l
}

// SetCompleter replaces the tab completion function.
func (l *Liner) SetCompleter(f func(line string) []string) {
	l.line.SetCompleter(f)
}

// LoadHistory loads command history from file.
func (l *Liner) LoadHistory() {
	if l.historyFile == "" {
		return
	}
	if f, err := os.Open(l.historyFile); err == nil {
		if _, err := l.line.ReadHistory(f); err != nil {
			log.Printf("HISTORY_LOAD_FAILED | file=%s error=%v", l.historyFile, err)
		}
		f.Close()
	}
}

// SaveHistory persists command history to file with secure permissions.
func (l *Liner) SaveHistory() error {
	if l.historyFile == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(l.historyFile), 0700); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	// Create file with secure permissions (0600 - owner read/write only)
	f, err := os.OpenFile(l.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	if _, err := l.line.WriteHistory(f); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}

// Prompt reads one line. Non-blank lines are added to history.
func (l *Liner) Prompt(text string) (string, error) {
	if l.isClosed() {
		return "", ErrInputClosed
	}
	input, err := l.line.Prompt(text)
	return l.finish(input, err)
}

// PromptWithPrefill reads one line starting from prefill, cursor at end.
func (l *Liner) PromptWithPrefill(text, prefill string) (string, error) {
	if l.isClosed() {
		return "", ErrInputClosed
	}
	input, err := l.line.PromptWithSuggestion(text, prefill, -1)
	return l.finish(input, err)
}

func (l *Liner) finish(input string, err error) (string, error) {
	if err != nil {
		return "", translateError(err)
	}
	if strings.TrimSpace(input) != "" {
		l.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history and restores the terminal.
func (l *Liner) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	l.mu.Unlock()

	histErr := l.SaveHistory()
	if histErr != nil {
		log.Printf("HISTORY_SAVE_FAILED | file=%s error=%v", l.historyFile, histErr)
	}
	if err := l.line.Close(); err != nil {
		return err
	}
	return histErr
}

func (l *Liner) isClosed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

// translateError maps liner and io failures to ErrInputClosed.
func translateError(err error) error {
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, liner.ErrPromptAborted):
		return ErrInputClosed
	case errors.Is(err, liner.ErrInvalidPrompt):
		return fmt.Errorf("invalid prompt: %w", err)
	default:
		return fmt.Errorf("%w: %v", ErrInputClosed, err)
	}
}
