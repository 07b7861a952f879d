// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"

	"github.com/jeranaias/quizrun/internal/quiz"
)

// StarterQuizzes are inserted into an empty store when seeding is enabled.
var StarterQuizzes = []quiz.Quiz{
	{Question: "Capital of Italy", Answer: "Rome"},
	{Question: "Capital of France", Answer: "Paris"},
	{Question: "Capital of Spain", Answer: "Madrid"},
	{Question: "Capital of Portugal", Answer: "Lisbon"},
}

// Seed inserts StarterQuizzes when repo holds no quizzes.
// Returns the number of quizzes inserted.
func Seed(ctx context.Context, repo quiz.Repository) (int, error) {
	existing, err := repo.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i, q := range StarterQuizzes {
		if _, err := repo.Create(ctx, q.Question, q.Answer); err != nil {
			return i, err
		}
	}
	return len(StarterQuizzes), nil
}
