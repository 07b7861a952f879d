// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package quiz

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// IDParam is the parameter name reported in id validation errors.
const IDParam = "id"

// ValidateID turns a raw command argument into a quiz id.
//
// present is false when the argument was not given at all. Parsing takes
// the leading integer portion of raw and discards the rest, so "3abc" is 3.
// Leading whitespace and a sign are accepted, as is a 0x prefix for hex.
// Negative and out-of-range values are not rejected here; values beyond the
// int range saturate. Whether the quiz exists is checked by the lookup.
func ValidateID(raw string, present bool) (int, error) {
	if !present {
		return 0, &MissingParameterError{Param: IDParam}
	}
	id, ok := parseIntPrefix(raw)
	if !ok {
		return 0, &NotANumberError{Param: IDParam, Value: raw}
	}
	return id, nil
}

// parseIntPrefix parses the integer prefix of s.
func parseIntPrefix(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	neg := false
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	base := 10
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		// A hex prefix must be followed by a hex digit.
		if len(s) == 2 || !isDigit(s[2], 16) {
			return 0, false
		}
		base = 16
		s = s[2:]
	}

	end := 0
	for end < len(s) && isDigit(s[end], base) {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.ParseUint(s[:end], base, 64)
	if err != nil || n > math.MaxInt {
		// Only range errors are possible once the prefix is all digits.
		if neg {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	if neg {
		return -int(n), true
	}
	return int(n), true
}

func isDigit(c byte, base int) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case base == 16 && c >= 'a' && c <= 'f':
		return true
	case base == 16 && c >= 'A' && c <= 'F':
		return true
	}
	return false
}
