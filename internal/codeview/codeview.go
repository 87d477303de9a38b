// Package codeview shows the portable HTML string as syntax-highlighted
// source, the way the application's code view does.
package codeview

import (
	"fmt"
	"io"
	"slices"

	"github.com/alecthomas/chroma/v2/quick"
)

// Formats accepted by Highlight.
var Formats = []string{"terminal", "terminal8", "terminal16", "terminal256", "terminal16m", "html", "noop"}

// DefaultStyle is the chroma style used when none is given.
const DefaultStyle = "monokai"

// Highlight writes portable to w highlighted as HTML source. format names a
// chroma formatter; style a chroma style (unknown styles fall back to
// chroma's default).
func Highlight(w io.Writer, portable, format, style string) error {
	if !slices.Contains(Formats, format) {
		return fmt.Errorf("unsupported highlight format %q, valid options: %v", format, Formats)
	}
	if style == "" {
		style = DefaultStyle
	}
	if portable == "" {
		return nil
	}
	if err := quick.Highlight(w, portable, "html", format, style); err != nil {
		return fmt.Errorf("highlight portable html: %w", err)
	}
	return nil
}
