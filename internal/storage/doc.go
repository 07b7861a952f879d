// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides quiz persistence for quizrun.
//
// Every backend implements quiz.Repository and validates quiz text before
// writing, so blank questions or answers never reach disk.
//
// # Key Types
//
//   - SQLRepository: SQLite (modernc, pure Go) or PostgreSQL (pgx) tables
//   - FileRepository: A single JSON file rewritten atomically on change
//   - MemoryRepository: Process-local store, used by tests and --driver memory
//
// # Usage
//
// Open the configured store:
//
//	store, err := storage.Open(ctx, storage.Options{
//	    Driver: storage.DriverSQLite,
//	    DSN:    "file:quizzes.db",
//	    Seed:   true,
//	})
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
// Quizzes are returned in id order by the SQL backends and insertion order
// by the others.
package storage
