// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package exam

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/quizrun/internal/output"
	"github.com/jeranaias/quizrun/internal/prompt"
	"github.com/jeranaias/quizrun/internal/quiz"
	"github.com/jeranaias/quizrun/internal/storage"
)

// oracleAsker answers every question correctly from a lookup table,
// except the wrongAt-th question (1-based) when wrongAt > 0.
type oracleAsker struct {
	answers map[string]string
	wrongAt int
	err     error
	asked   []string
}

func (a *oracleAsker) Ask(_ context.Context, text string) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	question := strings.TrimSuffix(text, ": ")
	a.asked = append(a.asked, question)
	if len(a.asked) == a.wrongAt {
		return "definitely wrong", nil
	}
	return "  " + strings.ToUpper(a.answers[question]) + " ", nil
}

func newRepo(t *testing.T, n int) (*storage.MemoryRepository, map[string]string) {
	t.Helper()
	repo := storage.NewMemoryRepository()
	answers := make(map[string]string, n)
	for i := 0; i < n; i++ {
		q := "Question " + string(rune('A'+i))
		a := "answer " + string(rune('a'+i))
		_, err := repo.Create(context.Background(), q, a)
		require.NoError(t, err)
		answers[q] = a
	}
	return repo, answers
}

func newConsole() (*output.Console, *bytes.Buffer) {
	var buf bytes.Buffer
	return output.NewConsole(&buf, output.Options{}), &buf
}

func TestRun_FullCorrectRun(t *testing.T) {
	for _, n := range []int{1, 4, 12} {
		repo, answers := newRepo(t, n)
		asker := &oracleAsker{answers: answers}
		console, buf := newConsole()

		res, err := NewController(repo, asker, console, WithSeed(7)).Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, n, res.Score)
		assert.Equal(t, n, res.Asked)
		assert.Equal(t, StateExhausted, res.Outcome)
		assert.NotEmpty(t, res.SessionID)

		// Every quiz exactly once.
		seen := make(map[string]int)
		for _, q := range asker.asked {
			seen[q]++
		}
		assert.Len(t, seen, n)
		for q, count := range seen {
			assert.Equal(t, 1, count, q)
		}

		out := buf.String()
		assert.Contains(t, out, "Nothing left to ask.")
		assert.Contains(t, out, "End of exam. Score:")
	}
}

func TestRun_WrongAnswerEndsSession(t *testing.T) {
	const n = 5
	for k := 1; k <= n; k++ {
		repo, answers := newRepo(t, n)
		asker := &oracleAsker{answers: answers, wrongAt: k}
		console, buf := newConsole()

		res, err := NewController(repo, asker, console, WithSeed(uint64(k))).Run(context.Background())
		require.NoError(t, err)

		assert.Equal(t, k-1, res.Score, "wrong at %d", k)
		assert.Equal(t, k, res.Asked)
		assert.Equal(t, StateIncorrect, res.Outcome)
		assert.Len(t, asker.asked, k)
		assert.Contains(t, buf.String(), "INCORRECT.")
		assert.NotContains(t, buf.String(), "Nothing left to ask.")
	}
}

func TestRun_EmptyRepositoryNeverPrompts(t *testing.T) {
	script := prompt.NewScript("unused")
	console, buf := newConsole()

	ctrl := NewController(storage.NewMemoryRepository(), prompt.NewSequencer(script, false), console)
	res, err := ctrl.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, res.Score)
	assert.Equal(t, 0, res.Asked)
	assert.Equal(t, StateExhausted, res.Outcome)
	assert.Equal(t, 0, script.PromptCount())
	assert.Contains(t, buf.String(), "0")
}

func TestRun_SameSeedSameOrder(t *testing.T) {
	repo, answers := newRepo(t, 8)
	console, _ := newConsole()

	first := &oracleAsker{answers: answers}
	_, err := NewController(repo, first, console, WithSeed(42)).Run(context.Background())
	require.NoError(t, err)

	second := &oracleAsker{answers: answers}
	_, err = NewController(repo, second, console, WithSeed(42)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.asked, second.asked)
}

func TestRun_AskerFailureAborts(t *testing.T) {
	repo, _ := newRepo(t, 3)
	console, buf := newConsole()

	_, err := NewController(repo, &oracleAsker{err: prompt.ErrInputClosed}, console).Run(context.Background())
	assert.ErrorIs(t, err, prompt.ErrInputClosed)
	assert.NotContains(t, buf.String(), "End of exam.")
}

type failingRepo struct {
	quiz.Repository
}

func (failingRepo) FindAll(context.Context) ([]quiz.Quiz, error) {
	return nil, quiz.NewRepositoryError("find all", errors.New("disk on fire"))
}

func TestRun_RepositoryFailure(t *testing.T) {
	console, _ := newConsole()

	res, err := NewController(failingRepo{}, &oracleAsker{}, console).Run(context.Background())
	var repoErr *quiz.RepositoryError
	require.ErrorAs(t, err, &repoErr)
	assert.Equal(t, StateLoading, res.Outcome)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "asking", StateAsking.String())
	assert.Equal(t, "exhausted", StateExhausted.String())
	assert.Equal(t, "unknown", State(42).String())
}
