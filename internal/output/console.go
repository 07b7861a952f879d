// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package output

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Sink receives command results.
type Sink interface {
	// Line writes text followed by a newline.
	Line(text string)
	// Emphasized writes text as a prominent banner.
	Emphasized(text string, style Style)
	// Error writes a one-line error report.
	Error(text string)
}

// Options configures a Console.
type Options struct {
	// Colors enables ANSI styling.
	Colors bool
	// Markdown renders Markdown calls with glamour instead of raw text.
	Markdown bool
	// Width is the wrap width for markdown. Zero means DefaultTerminalWidth.
	Width int
}

// Console is a Sink writing to a terminal or any io.Writer.
type Console struct {
	mu       sync.Mutex
	w        io.Writer
	colors   bool
	markdown bool
	width    int
	styles   palette
	md       *glamour.TermRenderer
}

// NewConsole creates a Console writing to w.
func NewConsole(w io.Writer, opts Options) *Console {
	profile := ColorProfile(opts.Colors)
	r := lipgloss.NewRenderer(w, termenv.WithProfile(profile))

	width := opts.Width
	if width <= 0 {
		width = DefaultTerminalWidth
	}

	return &Console{
		w:        w,
		colors:   opts.Colors,
		markdown: opts.Markdown,
		width:    width,
		styles:   newPalette(r),
	}
}

func (c *Console) Line(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, text)
}

// Linef formats and writes a line.
func (c *Console) Linef(format string, args ...any) {
	c.Line(fmt.Sprintf(format, args...))
}

func (c *Console) Emphasized(text string, style Style) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, c.styles.bannerFor(style).Render(text))
}

func (c *Console) Error(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, c.styles.err.Render(text))
}

// Hint writes de-emphasized secondary text.
func (c *Console) Hint(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, c.styles.dim.Render(text))
}

// Success writes a short confirmation line.
func (c *Console) Success(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, c.styles.success.Render(text))
}

// Markdown renders md with glamour when enabled, otherwise writes it
// unchanged. Render failures fall back to the raw text.
func (c *Console) Markdown(md string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.markdown {
		fmt.Fprintln(c.w, strings.TrimRight(md, "\n"))
		return
	}

	if c.md == nil {
		styleOpt := glamour.WithAutoStyle()
		if !c.colors {
			styleOpt = glamour.WithStandardStyle("notty")
		}
		renderer, err := glamour.NewTermRenderer(
			styleOpt,
			glamour.WithWordWrap(c.width),
		)
		if err != nil {
			fmt.Fprintln(c.w, strings.TrimRight(md, "\n"))
			return
		}
		c.md = renderer
	}

	rendered, err := c.md.Render(md)
	if err != nil {
		fmt.Fprintln(c.w, strings.TrimRight(md, "\n"))
		return
	}
	fmt.Fprint(c.w, rendered)
}
