// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jeranaias/quizrun/internal/exam"
	"github.com/jeranaias/quizrun/internal/export"
	"github.com/jeranaias/quizrun/internal/output"
	"github.com/jeranaias/quizrun/internal/quiz"
	"github.com/jeranaias/quizrun/internal/util"
)

const defaultCredits = `# Credits

quizrun was written by Jesse Morgan / Morgan Forge.

Released under the GNU Affero General Public License v3.0 or later.
`

// =============================================================================
// SESSION COMMANDS
// =============================================================================

func handleHelp(_ context.Context, e *Engine, _ Args) error {
	var b strings.Builder
	b.WriteString("# Commands\n\n")
	for _, cmd := range e.registry.All() {
		fmt.Fprintf(&b, "- `%s` - %s\n", cmd.Usage, cmd.Description)
	}
	e.out.Markdown(b.String())
	return nil
}

func handleQuit(_ context.Context, e *Engine, _ Args) error {
	if err := e.seq.Prompter().Close(); err != nil {
		log.Printf("PROMPT_CLOSE_FAILED | error=%v", err)
	}
	return errQuit
}

func handleCredits(_ context.Context, e *Engine, _ Args) error {
	e.out.Markdown(defaultCredits)
	return nil
}

// =============================================================================
// QUIZ COMMANDS
// =============================================================================

func handleAdd(ctx context.Context, e *Engine, _ Args) error {
	question, err := e.seq.Ask(ctx, "Enter a question: ")
	if err != nil {
		return err
	}
	answer, err := e.seq.Ask(ctx, "Enter the answer: ")
	if err != nil {
		return err
	}

	q, err := e.repo.Create(ctx, question, answer)
	if err != nil {
		return quiz.NewRepositoryError("create", err)
	}

	log.Printf("QUIZ_CREATED | id=%d question=%q", q.ID, util.TruncateRunes(q.Question, 60))
	e.out.Success(fmt.Sprintf("Added %s", q))
	return nil
}

func handleList(ctx context.Context, e *Engine, _ Args) error {
	quizzes, err := e.repo.FindAll(ctx)
	if err != nil {
		return quiz.NewRepositoryError("find all", err)
	}
	for _, q := range quizzes {
		e.out.Linef("[%d]: %s", q.ID, q.Question)
	}
	return nil
}

func handleShow(ctx context.Context, e *Engine, args Args) error {
	q, err := e.lookup(ctx, args)
	if err != nil {
		return err
	}
	e.out.Line(q.String())
	return nil
}

func handleTest(ctx context.Context, e *Engine, args Args) error {
	q, err := e.lookup(ctx, args)
	if err != nil {
		return err
	}

	response, err := e.seq.Ask(ctx, q.Question+" ")
	if err != nil {
		return err
	}

	correct := quiz.MatchAnswer(response, q.Answer)
	e.out.Line("Your answer is:")
	if correct {
		e.out.Line("Correct")
		e.out.Emphasized("CORRECT", output.StyleSuccess)
	} else {
		e.out.Line("Incorrect")
		e.out.Emphasized("INCORRECT", output.StyleFailure)
	}
	log.Printf("QUIZ_TESTED | id=%d correct=%t", q.ID, correct)
	return nil
}

func handleEdit(ctx context.Context, e *Engine, args Args) error {
	q, err := e.lookup(ctx, args)
	if err != nil {
		return err
	}

	question, err := e.seq.AskPrefilled(ctx, "Enter the question: ", q.Question)
	if err != nil {
		return err
	}
	answer, err := e.seq.AskPrefilled(ctx, "Enter the answer: ", q.Answer)
	if err != nil {
		return err
	}

	updated, err := e.repo.Update(ctx, q.ID, question, answer)
	if err != nil {
		return quiz.NewRepositoryError("update", err)
	}

	log.Printf("QUIZ_UPDATED | id=%d", updated.ID)
	e.out.Success(fmt.Sprintf("Changed quiz %d to: %s => %s", updated.ID, updated.Question, updated.Answer))
	return nil
}

func handleDelete(ctx context.Context, e *Engine, args Args) error {
	raw, present := args.Get(0)
	id, err := quiz.ValidateID(raw, present)
	if err != nil {
		return err
	}

	if err := e.repo.DeleteByID(ctx, id); err != nil {
		return quiz.NewRepositoryError("delete", err)
	}

	log.Printf("QUIZ_DELETED | id=%d", id)
	e.out.Success(fmt.Sprintf("Deleted quiz %d.", id))
	return nil
}

func handlePlay(ctx context.Context, e *Engine, _ Args) error {
	ctrl := exam.NewController(e.repo, e.seq, e.out, e.examOpts...)
	_, err := ctrl.Run(ctx)
	return err
}

// =============================================================================
// EXPORT
// =============================================================================

// blankFlag turns a markdown export into a worksheet without answers.
const blankFlag = "--blank"

func handleExport(ctx context.Context, e *Engine, args Args) error {
	blank := false
	var rest Args
	for _, arg := range args {
		if arg == blankFlag {
			blank = true
			continue
		}
		rest = append(rest, arg)
	}

	raw, ok := rest.Get(0)
	if !ok {
		return &quiz.MissingParameterError{Param: "format"}
	}
	format, err := export.ParseFormat(raw)
	if err != nil {
		return err
	}
	if blank && format != export.FormatMarkdown {
		return fmt.Errorf("%s applies to markdown exports only", blankFlag)
	}

	opts := export.DefaultOptions()
	opts.IncludeAnswers = !blank
	exporter, err := export.New(format, opts)
	if err != nil {
		return err
	}

	quizzes, err := e.repo.FindAll(ctx)
	if err != nil {
		return quiz.NewRepositoryError("find all", err)
	}

	path, _ := rest.Get(1)
	written, err := export.ExportToFile(quizzes, exporter, path)
	if err != nil {
		return err
	}

	log.Printf("QUIZ_EXPORTED | format=%s blank=%t count=%d path=%s", format, blank, len(quizzes), written)
	e.out.Success(fmt.Sprintf("Exported %d quizzes to %s.", len(quizzes), written))
	return nil
}
