// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - The interactive quiz > loop.
//
// USABILITY: Line editing and history when stdin is a terminal

package cli

import (
	"context"
	"errors"
	"log"

	"github.com/jeranaias/quizrun/internal/commands"
	"github.com/jeranaias/quizrun/internal/prompt"
)

// REPL reads command lines and hands them to the engine one at a time.
type REPL struct {
	Engine   *commands.Engine
	Prompter prompt.Prompter
	// Prompt is shown before each command
	Prompt string
}

// Run executes first (if not empty) and then prompts until quit or until
// input is closed. A closed input is a normal end of session.
func (r *REPL) Run(ctx context.Context, first string) error {
	if first != "" {
		if quit := r.Engine.Execute(ctx, first); quit {
			return nil
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := r.Prompter.Prompt(r.Prompt)
		if err != nil {
			if errors.Is(err, prompt.ErrInputClosed) {
				log.Printf("SESSION_END | reason=input_closed")
				return nil
			}
			return err
		}

		// Empty lines are handled by the engine as a no-op and re-prompt.
		if quit := r.Engine.Execute(ctx, line); quit {
			return nil
		}
	}
}
