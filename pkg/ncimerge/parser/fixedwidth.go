// Package parser slices fixed-width instrument reports into text fields.
package parser

import (
	"strings"
	"unicode/utf8"
)

// ColumnSpec locates one field inside a fixed-width report.
type ColumnSpec struct {
	// Start is the zero-based byte offset of the field.
	Start int
	// Width is the field width in bytes.
	Width int
	// HeaderSkip is the number of leading lines to ignore.
	HeaderSkip int
	// RowCount is the maximum number of lines read after HeaderSkip.
	RowCount int
}

// End returns the exclusive end offset of the field.
func (s ColumnSpec) End() int {
	return s.Start + s.Width
}

// Extract returns the trimmed field described by spec for each selected line.
// Lines too short to hold the whole field are left out of the result.
func Extract(text string, spec ColumnSpec) []string {
	lines := splitLines(text)
	if spec.HeaderSkip >= len(lines) || spec.RowCount <= 0 {
		return []string{}
	}
	lines = lines[max(spec.HeaderSkip, 0):]
	if len(lines) > spec.RowCount {
		lines = lines[:spec.RowCount]
	}

	fields := make([]string, 0, len(lines))
	for _, line := range lines {
		field, ok := slice(line, spec.Start, spec.End())
		if !ok {
			continue
		}
		fields = append(fields, strings.TrimSpace(field))
	}
	return fields
}

// slice returns line[start:end] when the range is inside the line and does
// not cut through a multi-byte character.
func slice(line string, start, end int) (string, bool) {
	if start < 0 || end < start || end > len(line) {
		return "", false
	}
	if start < len(line) && !utf8.RuneStart(line[start]) {
		return "", false
	}
	if end < len(line) && !utf8.RuneStart(line[end]) {
		return "", false
	}
	return line[start:end], true
}

// splitLines splits on '\n', drops a trailing '\r' from every line and does
// not report an empty final line after a terminating newline.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
