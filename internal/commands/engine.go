// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jeranaias/quizrun/internal/exam"
	"github.com/jeranaias/quizrun/internal/output"
	"github.com/jeranaias/quizrun/internal/prompt"
	"github.com/jeranaias/quizrun/internal/quiz"
)

// =============================================================================
// ERRORS
// =============================================================================

// errQuit is returned by the quit handler to end the session.
var errQuit = errors.New("quit")

// UnknownCommandError is returned for a command name that is not registered.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("Unknown command: %q", e.Name)
}

// =============================================================================
// ENGINE
// =============================================================================

// Output is the sink commands write to.
type Output interface {
	output.Sink
	// Linef formats and writes a plain line.
	Linef(format string, args ...any)
	// Success writes a confirmation of a change to the store.
	Success(text string)
	// Hint writes de-emphasized secondary text.
	Hint(text string)
	// Markdown renders a block of markdown text.
	Markdown(md string)
}

// Engine executes command lines against a quiz repository.
// It runs one command at a time.
type Engine struct {
	registry *Registry
	parser   *Parser
	repo     quiz.Repository
	seq      *prompt.Sequencer
	out      Output

	examOpts []exam.Option
}

// Option configures an Engine.
type Option func(*Engine)

// WithExamOptions passes options to every exam started by play.
func WithExamOptions(opts ...exam.Option) Option {
	return func(e *Engine) {
		e.examOpts = append(e.examOpts, opts...)
	}
}

// NewEngine creates an Engine with the built-in commands.
func NewEngine(repo quiz.Repository, seq *prompt.Sequencer, out Output, opts ...Option) *Engine {
	registry := NewRegistry()
	e := &Engine{
		registry: registry,
		parser:   NewParser(registry),
		repo:     repo,
		seq:      seq,
		out:      out,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the engine's command registry.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Execute runs one input line and reports the outcome.
//
// Command failures are reported to the output and never returned. The
// result is true when the session should end: after quit, or once the
// input can no longer be read.
func (e *Engine) Execute(ctx context.Context, line string) (quit bool) {
	parsed := e.parser.Parse(line)
	if parsed.Empty() {
		return false
	}

	if parsed.Command == nil {
		log.Printf("COMMAND_UNKNOWN | name=%q", parsed.CommandName)
		e.report(&UnknownCommandError{Name: parsed.CommandName})
		e.out.Hint("Type help to list the available commands.")
		return false
	}

	name := parsed.Command.Name
	err := parsed.Command.Handler(ctx, e, parsed.Args)
	switch {
	case err == nil:
		log.Printf("COMMAND_OK | name=%s", name)
		return false

	case errors.Is(err, errQuit):
		log.Printf("SESSION_QUIT | name=%s", name)
		return true

	case errors.Is(err, prompt.ErrInputClosed):
		log.Printf("SESSION_INPUT_CLOSED | name=%s error=%v", name, err)
		e.out.Line("")
		return true

	default:
		log.Printf("COMMAND_FAILED | name=%s error=%v", name, err)
		e.report(err)
		return false
	}
}

// report writes err as one line, or one line per validation message.
func (e *Engine) report(err error) {
	for _, line := range quiz.Lines(err) {
		e.out.Error(line)
	}
}

// lookup validates raw as an id and fetches the quiz.
func (e *Engine) lookup(ctx context.Context, args Args) (*quiz.Quiz, error) {
	raw, present := args.Get(0)
	id, err := quiz.ValidateID(raw, present)
	if err != nil {
		return nil, err
	}
	q, err := e.repo.FindByID(ctx, id)
	if err != nil {
		return nil, quiz.NewRepositoryError("find", err)
	}
	if q == nil {
		return nil, &quiz.NotFoundError{ID: id}
	}
	return q, nil
}
