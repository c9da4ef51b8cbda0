// Package wrap splits a passage into lines that fit the terminal.
package wrap

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Margin is the number of columns reserved at the terminal edge so a
// line never renders flush against it.
const Margin = 15

// EffectiveWidth returns the usable line width for a terminal width,
// never less than one column.
func EffectiveWidth(terminalWidth, margin int) int {
	width := terminalWidth - margin
	if width < 1 {
		width = 1
	}
	return width
}

// Wrap packs the whitespace-separated words of text greedily into lines
// of at most EffectiveWidth(terminalWidth, Margin) display columns. A
// word always starts a line when it does not fit, and a word wider than
// the whole line is placed alone and never split. Empty or
// whitespace-only text yields no lines.
func Wrap(text string, terminalWidth int) []string {
	return WrapWidth(text, EffectiveWidth(terminalWidth, Margin))
}

// WrapWidth is Wrap with the effective width supplied directly.
func WrapWidth(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	lines := make([]string, 0, len(words))
	var line strings.Builder
	line.WriteString(words[0])
	lineWidth := runewidth.StringWidth(words[0])

	for _, word := range words[1:] {
		wordWidth := runewidth.StringWidth(word)
		if lineWidth+1+wordWidth <= width {
			line.WriteByte(' ')
			line.WriteString(word)
			lineWidth += 1 + wordWidth
			continue
		}
		lines = append(lines, line.String())
		line.Reset()
		line.WriteString(word)
		lineWidth = wordWidth
	}
	return append(lines, line.String())
}
