// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes the quiz collection to shareable files.
//
// # Key Types
//
//   - Format: Export format enumeration (JSON, Markdown)
//   - Exporter: Converts a list of quizzes to bytes
//   - Options: Export configuration options
//
// # Supported Formats
//
//   - JSON: Machine-readable, every field of every quiz
//   - Markdown: A printable study sheet
//
// # Usage
//
//	exporter, err := export.New(export.FormatMarkdown, nil)
//	path, err := export.ExportToFile(quizzes, exporter, "")
package export
