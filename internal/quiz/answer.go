// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package quiz

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeAnswer prepares text for answer comparison: surrounding
// whitespace is trimmed, the text is NFKC-normalized and case-folded.
func NormalizeAnswer(s string) string {
	s = strings.TrimSpace(s)
	s = norm.NFKC.String(s)
	return cases.Fold().String(s)
}

// MatchAnswer reports whether response matches the stored answer,
// ignoring case and surrounding whitespace.
func MatchAnswer(response, answer string) bool {
	return NormalizeAnswer(response) == NormalizeAnswer(answer)
}
