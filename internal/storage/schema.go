// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

// SchemaSQLite creates the quiz table for SQLite.
const SchemaSQLite = `
CREATE TABLE IF NOT EXISTS quizzes (
  id         INTEGER PRIMARY KEY AUTOINCREMENT,
  question   TEXT    NOT NULL CHECK (length(trim(question)) > 0),
  answer     TEXT    NOT NULL CHECK (length(trim(answer)) > 0),
  created_at INTEGER NOT NULL,
  updated_at INTEGER NOT NULL
);
`

// SchemaPostgres creates the quiz table for PostgreSQL.
const SchemaPostgres = `
CREATE TABLE IF NOT EXISTS quizzes (
  id         BIGSERIAL PRIMARY KEY,
  question   TEXT   NOT NULL CHECK (length(trim(question)) > 0),
  answer     TEXT   NOT NULL CHECK (length(trim(answer)) > 0),
  created_at BIGINT NOT NULL,
  updated_at BIGINT NOT NULL
);
`
