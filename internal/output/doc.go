// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package output renders quiz shell results to the terminal.
//
// Console is the Sink used by the command engine. Plain lines go out
// unchanged; emphasized lines (scores, correct/incorrect results) are drawn
// as lipgloss banners; help and credits text is rendered as markdown with
// glamour when enabled.
//
// Color handling:
//   - Colors are disabled for non-TTY output (piped, redirected)
//   - Respects NO_COLOR (https://no-color.org/) and FORCE_COLOR
//   - ColorMode from config can force colors on or off
package output
