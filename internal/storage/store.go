// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jeranaias/quizrun/internal/quiz"
)

// Driver names a quiz store backend.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
	DriverJSON     Driver = "json"
	DriverMemory   Driver = "memory"
)

// ParseDriver maps a configured driver name to a Driver.
func ParseDriver(name string) (Driver, error) {
	switch d := Driver(strings.ToLower(strings.TrimSpace(name))); d {
	case DriverSQLite, DriverPostgres, DriverJSON, DriverMemory:
		return d, nil
	case "sqlite3":
		return DriverSQLite, nil
	case "pgx", "postgresql":
		return DriverPostgres, nil
	default:
		return "", fmt.Errorf("unsupported storage driver %q (use sqlite, postgres, json or memory)", name)
	}
}

// Store is a quiz repository that owns resources released by Close.
type Store interface {
	quiz.Repository
	// Created reports whether opening the store created it, as opposed
	// to finding an existing file or table.
	Created() bool
	Close() error
}

// Options selects and configures a store.
type Options struct {
	Driver Driver
	// DSN is the database DSN for sql drivers or the file path for json.
	DSN string
	// Seed inserts the starter quizzes into a newly created store.
	Seed bool
}

// Open opens the store described by opts.
func Open(ctx context.Context, opts Options) (Store, error) {
	var (
		store Store
		err   error
	)
	switch opts.Driver {
	case DriverSQLite, DriverPostgres:
		store, err = OpenSQL(ctx, opts.Driver, opts.DSN)
	case DriverJSON:
		store, err = NewFileRepository(opts.DSN)
	case DriverMemory:
		store = NewMemoryRepository()
	default:
		err = fmt.Errorf("unsupported storage driver %q", opts.Driver)
	}
	if err != nil {
		return nil, err
	}

	log.Printf("STORE_OPEN | driver=%s", opts.Driver)

	// Only a new store is seeded, so deleting every quiz sticks.
	if opts.Seed && store.Created() {
		n, err := Seed(ctx, store)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to seed quizzes: %w", err)
		}
		if n > 0 {
			log.Printf("STORE_SEEDED | driver=%s quizzes=%d", opts.Driver, n)
		}
	}
	return store, nil
}
