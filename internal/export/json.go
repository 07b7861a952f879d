// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"time"

	"github.com/jeranaias/quizrun/internal/quiz"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports quizzes to JSON format.
// NOTE: JSON exports always include answers and timestamps so the file is
// a faithful copy of the store.
type JSONExporter struct {
	options *Options
}

// jsonDocument is the top-level JSON export shape.
type jsonDocument struct {
	Generator string      `json:"generator"`
	Exported  time.Time   `json:"exported"`
	Count     int         `json:"count"`
	Quizzes   []quiz.Quiz `json:"quizzes"`
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

// Export converts quizzes to JSON format.
func (e *JSONExporter) Export(quizzes []quiz.Quiz) ([]byte, error) {
	if quizzes == nil {
		quizzes = []quiz.Quiz{}
	}
	doc := jsonDocument{
		Generator: "quizrun",
		Exported:  e.options.now().UTC(),
		Count:     len(quizzes),
		Quizzes:   quizzes,
	}
	return json.MarshalIndent(doc, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
