// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/quizrun/internal/quiz"
)

// =============================================================================
// REPOSITORY CONTRACT TESTS
// =============================================================================

// backends returns a constructor per driver, each backed by a fresh temp dir.
func backends() map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store {
			return NewMemoryRepository()
		},
		"json": func(t *testing.T) Store {
			r, err := NewFileRepository(filepath.Join(t.TempDir(), "quizzes.json"))
			require.NoError(t, err)
			return r
		},
		"sqlite": func(t *testing.T) Store {
			r, err := OpenSQL(context.Background(), DriverSQLite, filepath.Join(t.TempDir(), "quizzes.db"))
			require.NoError(t, err)
			t.Cleanup(func() { r.Close() })
			return r
		},
	}
}

func TestRepository_CreateAndFind(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := open(t)

			created, err := repo.Create(ctx, "2+2", "4")
			require.NoError(t, err)
			assert.Positive(t, created.ID)
			assert.False(t, created.CreatedAt.IsZero())

			found, err := repo.FindByID(ctx, created.ID)
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.Equal(t, "2+2", found.Question)
			assert.Equal(t, "4", found.Answer)
		})
	}
}

func TestRepository_FindByIDMissing(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			found, err := open(t).FindByID(context.Background(), 404)
			require.NoError(t, err)
			assert.Nil(t, found)
		})
	}
}

func TestRepository_RejectsBlankFields(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := open(t)

			_, err := repo.Create(ctx, "   ", "")
			var validationErr *quiz.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Len(t, validationErr.Messages, 2)

			all, err := repo.FindAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, all)

			q, err := repo.Create(ctx, "Capital of Spain", "Madrid")
			require.NoError(t, err)

			_, err = repo.Update(ctx, q.ID, "Capital of Spain", " ")
			require.ErrorAs(t, err, &validationErr)

			found, err := repo.FindByID(ctx, q.ID)
			require.NoError(t, err)
			assert.Equal(t, "Madrid", found.Answer)
		})
	}
}

func TestRepository_FindAllInsertionOrder(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := open(t)

			for _, q := range StarterQuizzes {
				_, err := repo.Create(ctx, q.Question, q.Answer)
				require.NoError(t, err)
			}

			all, err := repo.FindAll(ctx)
			require.NoError(t, err)
			require.Len(t, all, len(StarterQuizzes))
			for i, q := range all {
				assert.Equal(t, StarterQuizzes[i].Question, q.Question)
			}
		})
	}
}

func TestRepository_Update(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := open(t)

			q, err := repo.Create(ctx, "Capital of Italy", "Roma")
			require.NoError(t, err)

			updated, err := repo.Update(ctx, q.ID, "Capital of Italy?", "Rome")
			require.NoError(t, err)
			assert.Equal(t, q.ID, updated.ID)
			assert.Equal(t, "Capital of Italy?", updated.Question)
			assert.Equal(t, "Rome", updated.Answer)

			_, err = repo.Update(ctx, q.ID+100, "x", "y")
			var notFound *quiz.NotFoundError
			require.ErrorAs(t, err, &notFound)
			assert.Equal(t, q.ID+100, notFound.ID)
		})
	}
}

func TestRepository_DeleteByID(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := open(t)

			q, err := repo.Create(ctx, "Capital of France", "Paris")
			require.NoError(t, err)

			require.NoError(t, repo.DeleteByID(ctx, q.ID))
			found, err := repo.FindByID(ctx, q.ID)
			require.NoError(t, err)
			assert.Nil(t, found)

			// Unknown ids are a no-op.
			require.NoError(t, repo.DeleteByID(ctx, q.ID))
			require.NoError(t, repo.DeleteByID(ctx, -1))
		})
	}
}

func TestRepository_IDsNotReused(t *testing.T) {
	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repo := open(t)

			first, err := repo.Create(ctx, "a", "b")
			require.NoError(t, err)
			require.NoError(t, repo.DeleteByID(ctx, first.ID))

			second, err := repo.Create(ctx, "c", "d")
			require.NoError(t, err)
			assert.Greater(t, second.ID, first.ID)
		})
	}
}

// =============================================================================
// BACKEND-SPECIFIC TESTS
// =============================================================================

func TestFileRepository_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "quizzes.json")

	repo, err := NewFileRepository(path)
	require.NoError(t, err)
	q, err := repo.Create(ctx, "2+2", "4")
	require.NoError(t, err)

	reopened, err := NewFileRepository(path)
	require.NoError(t, err)
	found, err := reopened.FindByID(ctx, q.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "4", found.Answer)

	next, err := reopened.Create(ctx, "3+3", "6")
	require.NoError(t, err)
	assert.Greater(t, next.ID, q.ID)
}

func TestFileRepository_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quizzes.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewFileRepository(path)
	require.Error(t, err)
}

func TestSQLRepository_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "quizzes.db")

	repo, err := OpenSQL(ctx, DriverSQLite, path)
	require.NoError(t, err)
	q, err := repo.Create(ctx, "2+2", "4")
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	reopened, err := OpenSQL(ctx, DriverSQLite, path)
	require.NoError(t, err)
	defer reopened.Close()

	found, err := reopened.FindByID(ctx, q.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "2+2", found.Question)
}

func TestSQLRepository_CreatesParentDirectory(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "fresh-home", "nested", "quizzes.db")

	repo, err := OpenSQL(ctx, DriverSQLite, path)
	require.NoError(t, err)
	assert.True(t, repo.Created())
	require.NoError(t, repo.Close())
	assert.FileExists(t, path)

	reopened, err := OpenSQL(ctx, DriverSQLite, path)
	require.NoError(t, err)
	defer reopened.Close()
	assert.False(t, reopened.Created())
}

func TestSqliteFileDir(t *testing.T) {
	tests := map[string]string{
		"":                                "",
		":memory:":                        "",
		"file::memory:?cache=shared":      "",
		"quizzes.db":                      "",
		"/var/lib/quizrun/quizzes.db":     "/var/lib/quizrun",
		"file:/tmp/q/quizzes.db?mode=rwc": "/tmp/q",
	}
	for dsn, want := range tests {
		assert.Equal(t, want, sqliteFileDir(dsn), dsn)
	}
}

func TestSQLRepository_ClosedDatabase(t *testing.T) {
	ctx := context.Background()
	repo, err := OpenSQL(ctx, DriverSQLite, filepath.Join(t.TempDir(), "quizzes.db"))
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	_, err = repo.FindAll(ctx)
	var repoErr *quiz.RepositoryError
	require.ErrorAs(t, err, &repoErr)
	assert.Equal(t, "find all", repoErr.Op)
}

func TestSQLRepository_Rebind(t *testing.T) {
	pg := &SQLRepository{driver: DriverPostgres}
	assert.Equal(t, "UPDATE q SET a = $1 WHERE id = $2", pg.rebind("UPDATE q SET a = ? WHERE id = ?"))

	lite := &SQLRepository{driver: DriverSQLite}
	assert.Equal(t, "SELECT ?", lite.rebind("SELECT ?"))
}

// =============================================================================
// OPEN AND SEED TESTS
// =============================================================================

func TestParseDriver(t *testing.T) {
	tests := map[string]Driver{
		"sqlite":     DriverSQLite,
		"SQLite3":    DriverSQLite,
		" postgres ": DriverPostgres,
		"pgx":        DriverPostgres,
		"json":       DriverJSON,
		"memory":     DriverMemory,
	}
	for in, want := range tests {
		got, err := ParseDriver(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDriver("mongo")
	require.Error(t, err)
}

func TestOpen_SeedsEmptyStoreOnce(t *testing.T) {
	ctx := context.Background()
	opts := Options{
		Driver: DriverJSON,
		DSN:    filepath.Join(t.TempDir(), "quizzes.json"),
		Seed:   true,
	}

	store, err := Open(ctx, opts)
	require.NoError(t, err)
	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(StarterQuizzes))
	require.NoError(t, store.Close())

	reopened, err := Open(ctx, opts)
	require.NoError(t, err)
	all, err = reopened.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(StarterQuizzes))
}

func TestOpen_DoesNotReseedEmptiedStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	for _, opts := range []Options{
		{Driver: DriverJSON, DSN: filepath.Join(dir, "quizzes.json"), Seed: true},
		{Driver: DriverSQLite, DSN: filepath.Join(dir, "quizzes.db"), Seed: true},
	} {
		t.Run(string(opts.Driver), func(t *testing.T) {
			store, err := Open(ctx, opts)
			require.NoError(t, err)
			all, err := store.FindAll(ctx)
			require.NoError(t, err)
			require.Len(t, all, len(StarterQuizzes))
			for _, q := range all {
				require.NoError(t, store.DeleteByID(ctx, q.ID))
			}
			require.NoError(t, store.Close())

			reopened, err := Open(ctx, opts)
			require.NoError(t, err)
			defer reopened.Close()
			all, err = reopened.FindAll(ctx)
			require.NoError(t, err)
			assert.Empty(t, all, "an emptied store stays empty")
		})
	}
}

func TestOpen_NoSeed(t *testing.T) {
	store, err := Open(context.Background(), Options{Driver: DriverMemory})
	require.NoError(t, err)

	all, err := store.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "mongo"})
	require.Error(t, err)
}
