package jsgen

import (
	"fmt"
	"strings"
)

// Position returns the line and column number, both starting at 1, for an offset in text.
// It only treats \n, \r, and \r\n as newlines.
func Position(text string, offset int) (line, col int) {
	line = 1
	start := 0
	for i := 0; i < offset && i < len(text); i++ {
		if text[i] == '\n' || text[i] == '\r' && (i+1 == len(text) || text[i+1] != '\n') {
			line++
			start = i + 1
		}
	}
	return line, offset - start + 1
}

// Offset is the inverse of Position, it returns -1 when the line does not exist.
func Offset(text string, line, col int) int {
	start := 0
	for l := 1; l < line; l++ {
		i := strings.IndexAny(text[start:], "\r\n")
		if i < 0 {
			return -1
		}
		start += i + 1
		if text[start-1] == '\r' && start < len(text) && text[start] == '\n' {
			start++
		}
	}
	return start + col - 1
}

// Context returns the line of text at the given line number followed by a caret under the column.
func Context(text string, line, col int) string {
	start := Offset(text, line, 1)
	if start < 0 || len(text) < start {
		return ""
	}
	end := strings.IndexAny(text[start:], "\r\n")
	if end < 0 {
		end = len(text) - start
	}
	b := strings.ReplaceAll(text[start:start+end], "\t", " ") // keep the caret aligned
	return fmt.Sprintf("%5d: %s\n%s^", line, b, strings.Repeat(" ", col+6))
}
