// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds small helpers shared by the quiz store, config and
// export packages.
//
// # Key Functions
//
//   - AtomicWriteFile: Crash-safe file replacement with fsync
//   - AtomicWriteFileWithDir: Same, with a mode for created directories
//   - TruncateRunes: UTF-8 safe truncation for log fields
//
// # Usage
//
//	err := util.AtomicWriteFile(path, data, 0644)
//	log.Printf("QUIZ_CREATED | question=%q", util.TruncateRunes(q, 60))
package util
