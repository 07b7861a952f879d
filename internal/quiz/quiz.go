// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package quiz

import (
	"context"
	"fmt"
	"time"
)

// Quiz is a persisted question/answer pair.
// ID is assigned by the Repository and never changes after creation.
type Quiz struct {
	ID        int       `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// String renders the quiz as "[id]: question => answer".
func (q Quiz) String() string {
	return fmt.Sprintf("[%d]: %s => %s", q.ID, q.Question, q.Answer)
}

// Repository is the persistence contract for quizzes.
//
// Create and Update must reject blank question or answer text with a
// *ValidationError. FindByID returns (nil, nil) when no quiz has the id.
// DeleteByID is a no-op for unknown ids. Any other store failure is
// returned as a *RepositoryError.
type Repository interface {
	Create(ctx context.Context, question, answer string) (Quiz, error)
	FindAll(ctx context.Context) ([]Quiz, error)
	FindByID(ctx context.Context, id int) (*Quiz, error)
	Update(ctx context.Context, id int, question, answer string) (Quiz, error)
	DeleteByID(ctx context.Context, id int) error
}
