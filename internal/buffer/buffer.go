// Package buffer accumulates generated Ruby source line by line.
package buffer

import (
	"fmt"
	"strings"
)

const indentUnit = "  "

// Buffer is an append-only, indentation aware sequence of lines for one
// generated file. A Buffer is not reused: call Document once it is complete.
type Buffer struct {
	fileName string
	source   string
	lines    []string
	level    int
}

// New creates a buffer for fileName (relative, '/' separated, without
// extension). Source names what the file is generated from and is used in
// error messages.
func New(fileName, source string) *Buffer {
	return &Buffer{fileName: fileName, source: source}
}

// AddLine appends a line at the current indentation. Without args the format
// is used verbatim.
func (b *Buffer) AddLine(format string, args ...any) {
	line := format
	if len(args) > 0 {
		line = fmt.Sprintf(format, args...)
	}
	if line == "" {
		b.lines = append(b.lines, "")
		return
	}
	b.lines = append(b.lines, strings.Repeat(indentUnit, b.level)+line)
}

// Blank appends an empty line.
func (b *Buffer) Blank() {
	b.AddLine("")
}

// Comment appends a "##" documentation block.
func (b *Buffer) Comment(text ...string) {
	b.AddLine("##")
	for _, t := range text {
		b.AddLine("# %s", t)
	}
	b.AddLine("#")
}

// Block appends header, runs fn with one more level of indentation and closes
// the block with "end". The closing line is written even if fn panics.
func (b *Buffer) Block(header string, fn func()) {
	b.AddLine(header)
	b.level++
	defer func() {
		b.level--
		b.AddLine("end")
	}()
	if fn != nil {
		fn()
	}
}

// Module opens one "module" per "::" separated segment of name, runs fn inside
// and closes them in reverse order.
func (b *Buffer) Module(name string, fn func()) {
	segments := strings.Split(name, "::")
	var open func(i int)
	open = func(i int) {
		if i == len(segments) {
			if fn != nil {
				fn()
			}
			return
		}
		b.Block("module "+strings.TrimSpace(segments[i]), func() { open(i + 1) })
	}
	open(0)
}

// Document freezes the buffer content. Runs of blank lines are collapsed and
// blank lines right before a closing "end" or at the end are dropped.
func (b *Buffer) Document() *Document {
	out := make([]string, 0, len(b.lines))
	for _, line := range b.lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" && (len(out) == 0 || out[len(out)-1] == "") {
			continue
		}
		if trimmed == "end" && len(out) > 0 && out[len(out)-1] == "" {
			out = out[:len(out)-1]
		}
		out = append(out, line)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return &Document{FileName: b.fileName, Source: b.source, lines: out}
}
