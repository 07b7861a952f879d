// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jeranaias/quizrun/internal/quiz"
	"github.com/jeranaias/quizrun/internal/util"
)

// =============================================================================
// STORED FILE FORMAT
// =============================================================================

// storedFile is the on-disk layout of a JSON quiz file.
type storedFile struct {
	NextID    int         `json:"next_id"`
	UpdatedAt time.Time   `json:"updated_at"`
	Quizzes   []quiz.Quiz `json:"quizzes"`
}

// =============================================================================
// FILE REPOSITORY
// =============================================================================

// FileRepository persists quizzes in a single JSON file.
// Every mutation rewrites the whole file atomically.
type FileRepository struct {
	// Path is the JSON file holding the quizzes.
	Path string

	mu      sync.Mutex
	mem     *MemoryRepository
	created bool
}

// NewFileRepository opens (or creates) the JSON quiz file at path.
func NewFileRepository(path string) (*FileRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create quiz directory: %w", err)
	}

	r := &FileRepository{
		Path: path,
		mem:  NewMemoryRepository(),
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

// load reads the file into memory. A missing file is an empty store.
func (r *FileRepository) load() error {
	data, err := os.ReadFile(r.Path)
	if err != nil {
		if os.IsNotExist(err) {
			r.created = true
			return nil
		}
		return fmt.Errorf("failed to read quiz file: %w", err)
	}

	var f storedFile
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to decode quiz file %s: %w", r.Path, err)
	}

	r.mem.mu.Lock()
	defer r.mem.mu.Unlock()
	r.mem.quizzes = append(make([]quiz.Quiz, 0, len(f.Quizzes)), f.Quizzes...)
	r.mem.nextID = f.NextID
	for _, q := range f.Quizzes {
		if q.ID >= r.mem.nextID {
			r.mem.nextID = q.ID + 1
		}
	}
	if r.mem.nextID < 1 {
		r.mem.nextID = 1
	}
	return nil
}

// save writes the in-memory state back to disk. Caller holds r.mu.
func (r *FileRepository) save() error {
	r.mem.mu.RLock()
	f := storedFile{
		NextID:    r.mem.nextID,
		UpdatedAt: r.mem.now(),
		Quizzes:   r.mem.quizzes,
	}
	data, err := json.MarshalIndent(f, "", "  ")
	r.mem.mu.RUnlock()
	if err != nil {
		return err
	}

	// RELIABILITY: Atomic write with fsync prevents data loss on crash
	return util.AtomicWriteFile(r.Path, data, 0644)
}

// rollback discards unsaved changes by re-reading the file.
func (r *FileRepository) rollback() {
	r.mem.mu.Lock()
	r.mem.quizzes = r.mem.quizzes[:0]
	r.mem.nextID = 1
	r.mem.mu.Unlock()
	_ = r.load()
}

// Create stores a new quiz and persists the file.
func (r *FileRepository) Create(ctx context.Context, question, answer string) (quiz.Quiz, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, err := r.mem.Create(ctx, question, answer)
	if err != nil {
		return quiz.Quiz{}, err
	}
	if err := r.save(); err != nil {
		r.rollback()
		return quiz.Quiz{}, quiz.NewRepositoryError("create", err)
	}
	return q, nil
}

// FindAll returns every quiz in insertion order.
func (r *FileRepository) FindAll(ctx context.Context) ([]quiz.Quiz, error) {
	return r.mem.FindAll(ctx)
}

// FindByID returns the quiz with id, or nil when there is none.
func (r *FileRepository) FindByID(ctx context.Context, id int) (*quiz.Quiz, error) {
	return r.mem.FindByID(ctx, id)
}

// Update changes an existing quiz and persists the file.
func (r *FileRepository) Update(ctx context.Context, id int, question, answer string) (quiz.Quiz, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	q, err := r.mem.Update(ctx, id, question, answer)
	if err != nil {
		return quiz.Quiz{}, err
	}
	if err := r.save(); err != nil {
		r.rollback()
		return quiz.Quiz{}, quiz.NewRepositoryError("update", err)
	}
	return q, nil
}

// DeleteByID removes the quiz with id and persists the file.
func (r *FileRepository) DeleteByID(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.mem.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}
	if err := r.mem.DeleteByID(ctx, id); err != nil {
		return err
	}
	if err := r.save(); err != nil {
		r.rollback()
		return quiz.NewRepositoryError("delete", err)
	}
	return nil
}

// Created reports whether the file did not exist when it was opened.
func (r *FileRepository) Created() bool {
	return r.created
}

// Close is a no-op; every mutation is already on disk.
func (r *FileRepository) Close() error {
	return nil
}
