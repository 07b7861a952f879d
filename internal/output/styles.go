// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Style is a cosmetic hint for an emphasized line.
type Style int

const (
	// StyleInfo is neutral emphasis.
	StyleInfo Style = iota
	// StyleSuccess marks a correct answer.
	StyleSuccess
	// StyleFailure marks an incorrect answer.
	StyleFailure
	// StyleScore marks a score report.
	StyleScore
)

// String returns the hint name, used in logs and plain-text fallbacks.
func (s Style) String() string {
	switch s {
	case StyleSuccess:
		return "success"
	case StyleFailure:
		return "failure"
	case StyleScore:
		return "score"
	default:
		return "info"
	}
}

// palette holds the styles bound to one renderer.
type palette struct {
	banner  map[Style]lipgloss.Style
	err     lipgloss.Style
	dim     lipgloss.Style
	success lipgloss.Style
}

func newPalette(r *lipgloss.Renderer) palette {
	bannerBase := r.NewStyle().
		Bold(true).
		Padding(0, 2).
		Border(lipgloss.RoundedBorder())

	return palette{
		banner: map[Style]lipgloss.Style{
			StyleInfo: bannerBase.
				Foreground(lipgloss.Color("75")). // Blue
				BorderForeground(lipgloss.Color("75")),
			StyleSuccess: bannerBase.
				Foreground(lipgloss.Color("42")). // Green
				BorderForeground(lipgloss.Color("42")),
			StyleFailure: bannerBase.
				Foreground(lipgloss.Color("196")). // Red
				BorderForeground(lipgloss.Color("196")),
			StyleScore: bannerBase.
				Foreground(lipgloss.Color("214")). // Yellow/Orange
				BorderForeground(lipgloss.Color("214")),
		},
		err: r.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true),
		dim: r.NewStyle().
			Foreground(lipgloss.Color("242")), // Dim gray
		success: r.NewStyle().
			Foreground(lipgloss.Color("82")), // Bright green
	}
}

func (p palette) bannerFor(s Style) lipgloss.Style {
	if st, ok := p.banner[s]; ok {
		return st
	}
	return p.banner[StyleInfo]
}
