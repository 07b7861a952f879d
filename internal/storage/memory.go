// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"sync"
	"time"

	"github.com/jeranaias/quizrun/internal/quiz"
)

// =============================================================================
// MEMORY REPOSITORY
// =============================================================================

// MemoryRepository keeps quizzes in process memory, in insertion order.
// It is safe for concurrent use.
type MemoryRepository struct {
	mu      sync.RWMutex
	quizzes []quiz.Quiz
	nextID  int

	// now is the clock used for timestamps; replaced in tests.
	now func() time.Time
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		quizzes: make([]quiz.Quiz, 0),
		nextID:  1,
		now:     time.Now,
	}
}

// Create stores a new quiz and assigns it the next id.
func (m *MemoryRepository) Create(ctx context.Context, question, answer string) (quiz.Quiz, error) {
	if err := ctx.Err(); err != nil {
		return quiz.Quiz{}, quiz.NewRepositoryError("create", err)
	}
	if err := quiz.ValidateFields(question, answer); err != nil {
		return quiz.Quiz{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	q := quiz.Quiz{
		ID:        m.nextID,
		Question:  question,
		Answer:    answer,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.nextID++
	m.quizzes = append(m.quizzes, q)
	return q, nil
}

// FindAll returns a copy of every stored quiz.
func (m *MemoryRepository) FindAll(ctx context.Context) ([]quiz.Quiz, error) {
	if err := ctx.Err(); err != nil {
		return nil, quiz.NewRepositoryError("find all", err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]quiz.Quiz, len(m.quizzes))
	copy(out, m.quizzes)
	return out, nil
}

// FindByID returns the quiz with id, or nil when there is none.
func (m *MemoryRepository) FindByID(ctx context.Context, id int) (*quiz.Quiz, error) {
	if err := ctx.Err(); err != nil {
		return nil, quiz.NewRepositoryError("find", err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.indexOf(id); i >= 0 {
		q := m.quizzes[i]
		return &q, nil
	}
	return nil, nil
}

// Update replaces the question and answer of an existing quiz.
func (m *MemoryRepository) Update(ctx context.Context, id int, question, answer string) (quiz.Quiz, error) {
	if err := ctx.Err(); err != nil {
		return quiz.Quiz{}, quiz.NewRepositoryError("update", err)
	}
	if err := quiz.ValidateFields(question, answer); err != nil {
		return quiz.Quiz{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return quiz.Quiz{}, &quiz.NotFoundError{ID: id}
	}
	m.quizzes[i].Question = question
	m.quizzes[i].Answer = answer
	m.quizzes[i].UpdatedAt = m.now()
	return m.quizzes[i], nil
}

// DeleteByID removes the quiz with id. Unknown ids are ignored.
func (m *MemoryRepository) DeleteByID(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return quiz.NewRepositoryError("delete", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.indexOf(id); i >= 0 {
		m.quizzes = append(m.quizzes[:i], m.quizzes[i+1:]...)
	}
	return nil
}

// Created is always true: a memory store starts empty on every run.
func (m *MemoryRepository) Created() bool {
	return true
}

// Close is a no-op.
func (m *MemoryRepository) Close() error {
	return nil
}

// indexOf returns the slice position of id or -1. Caller holds the lock.
func (m *MemoryRepository) indexOf(id int) int {
	for i := range m.quizzes {
		if m.quizzes[i].ID == id {
			return i
		}
	}
	return -1
}
