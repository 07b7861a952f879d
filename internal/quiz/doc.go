// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package quiz defines the quiz entity and the contracts shared by the
// command engine and the stores that persist quizzes.
//
// # Key Types
//
//   - Quiz: A question/answer pair addressed by a store-assigned id
//   - Repository: Persistence contract consumed by the command engine
//   - MissingParameterError, NotANumberError, NotFoundError,
//     ValidationError, RepositoryError: the error taxonomy every command
//     reports at its boundary
//
// # Usage
//
// Validate a raw id argument and look the quiz up:
//
//	id, err := quiz.ValidateID(raw, present)
//	if err != nil {
//	    return err
//	}
//	q, err := repo.FindByID(ctx, id)
//
// Compare a user response with the stored answer:
//
//	if quiz.MatchAnswer(response, q.Answer) {
//	    // correct
//	}
package quiz
