// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // Pure Go SQLite driver

	"github.com/jeranaias/quizrun/internal/quiz"
)

// =============================================================================
// SQL REPOSITORY
// =============================================================================

// SQLRepository stores quizzes in a SQLite or PostgreSQL database.
type SQLRepository struct {
	db      *sql.DB
	driver  Driver
	created bool

	// now is the clock used for timestamps; replaced in tests.
	now func() time.Time
}

// OpenSQL opens the database for driver and ensures the schema exists.
func OpenSQL(ctx context.Context, driver Driver, dsn string) (*SQLRepository, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
	default:
		return nil, fmt.Errorf("unsupported sql driver: %s", driver)
	}

	if driver == DriverSQLite {
		if dir := sqliteFileDir(dsn); dir != "" {
			if err := os.MkdirAll(dir, 0700); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == DriverSQLite {
		// SQLite only supports one writer at a time, so limit connections
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	r := &SQLRepository{db: db, driver: driver, now: time.Now}
	if err := r.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return r, nil
}

// sqliteFileDir returns the directory of a SQLite file DSN, or "" for
// in-memory databases and DSNs in the current directory.
func sqliteFileDir(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || strings.HasPrefix(path, ":memory:") {
		return ""
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return ""
	}
	return dir
}

// ensureSchema applies pragmas and creates the quiz table.
func (r *SQLRepository) ensureSchema(ctx context.Context) error {
	schema := SchemaPostgres
	if r.driver == DriverSQLite {
		schema = SchemaSQLite
		pragmas := []string{
			"PRAGMA journal_mode=WAL",
			"PRAGMA synchronous=NORMAL",
			"PRAGMA busy_timeout=5000",
		}
		for _, pragma := range pragmas {
			if _, err := r.db.ExecContext(ctx, pragma); err != nil {
				return fmt.Errorf("failed to set pragma: %w", err)
			}
		}
	}

	exists, err := r.tableExists(ctx)
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return err
	}
	r.created = !exists
	return nil
}

// tableExists reports whether the quizzes table is already present.
func (r *SQLRepository) tableExists(ctx context.Context) (bool, error) {
	query := `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'quizzes'`
	if r.driver == DriverPostgres {
		query = `SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = 'quizzes'`
	}
	var n int
	if err := r.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Created reports whether opening the database created the quiz table.
func (r *SQLRepository) Created() bool {
	return r.created
}

// rebind rewrites ? placeholders as $n for PostgreSQL.
func (r *SQLRepository) rebind(query string) string {
	if r.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

// Create inserts a new quiz and returns it with its assigned id.
func (r *SQLRepository) Create(ctx context.Context, question, answer string) (quiz.Quiz, error) {
	if err := quiz.ValidateFields(question, answer); err != nil {
		return quiz.Quiz{}, err
	}

	now := r.now()
	q := quiz.Quiz{
		Question:  question,
		Answer:    answer,
		CreatedAt: now,
		UpdatedAt: now,
	}

	row := r.db.QueryRowContext(ctx,
		r.rebind(`INSERT INTO quizzes (question, answer, created_at, updated_at) VALUES (?, ?, ?, ?) RETURNING id`),
		question, answer, now.UnixMilli(), now.UnixMilli())
	var id int64
	if err := row.Scan(&id); err != nil {
		return quiz.Quiz{}, quiz.NewRepositoryError("create", err)
	}
	q.ID = int(id)
	return q, nil
}

// FindAll returns every quiz ordered by id.
func (r *SQLRepository) FindAll(ctx context.Context) ([]quiz.Quiz, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, question, answer, created_at, updated_at FROM quizzes ORDER BY id`)
	if err != nil {
		return nil, quiz.NewRepositoryError("find all", err)
	}
	defer rows.Close()

	quizzes := make([]quiz.Quiz, 0)
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, quiz.NewRepositoryError("find all", err)
		}
		quizzes = append(quizzes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, quiz.NewRepositoryError("find all", err)
	}
	return quizzes, nil
}

// FindByID returns the quiz with id, or nil when there is none.
func (r *SQLRepository) FindByID(ctx context.Context, id int) (*quiz.Quiz, error) {
	row := r.db.QueryRowContext(ctx,
		r.rebind(`SELECT id, question, answer, created_at, updated_at FROM quizzes WHERE id = ?`), id)
	q, err := scanQuiz(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, quiz.NewRepositoryError("find", err)
	}
	return &q, nil
}

// Update changes the question and answer of an existing quiz.
func (r *SQLRepository) Update(ctx context.Context, id int, question, answer string) (quiz.Quiz, error) {
	if err := quiz.ValidateFields(question, answer); err != nil {
		return quiz.Quiz{}, err
	}

	now := r.now()
	res, err := r.db.ExecContext(ctx,
		r.rebind(`UPDATE quizzes SET question = ?, answer = ?, updated_at = ? WHERE id = ?`),
		question, answer, now.UnixMilli(), id)
	if err != nil {
		return quiz.Quiz{}, quiz.NewRepositoryError("update", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return quiz.Quiz{}, quiz.NewRepositoryError("update", err)
	}
	if affected == 0 {
		return quiz.Quiz{}, &quiz.NotFoundError{ID: id}
	}

	q, err := r.FindByID(ctx, id)
	if err != nil {
		return quiz.Quiz{}, err
	}
	if q == nil {
		return quiz.Quiz{}, &quiz.NotFoundError{ID: id}
	}
	return *q, nil
}

// DeleteByID removes the quiz with id. Unknown ids are ignored.
func (r *SQLRepository) DeleteByID(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, r.rebind(`DELETE FROM quizzes WHERE id = ?`), id); err != nil {
		return quiz.NewRepositoryError("delete", err)
	}
	return nil
}

// Close closes the database.
func (r *SQLRepository) Close() error {
	return r.db.Close()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuiz(s rowScanner) (quiz.Quiz, error) {
	var (
		q                quiz.Quiz
		id               int64
		created, updated int64
	)
	if err := s.Scan(&id, &q.Question, &q.Answer, &created, &updated); err != nil {
		return quiz.Quiz{}, err
	}
	q.ID = int(id)
	q.CreatedAt = time.UnixMilli(created)
	q.UpdatedAt = time.UnixMilli(updated)
	return q, nil
}
