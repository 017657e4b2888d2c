package buffer

import (
	"bytes"
	"path/filepath"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
)

// Extension is appended to every document file name.
const Extension = ".rb"

// Banner opens every generated file.
var Banner = []string{
	"#",
	"# This file was generated by writergen. DO NOT EDIT.",
	"#",
}

// Document is the immutable content of one generated file.
type Document struct {
	FileName string // relative, '/' separated, no extension
	Source   string // what the file was generated from
	lines    []string
}

// Lines returns a copy of the body lines, without the banner.
func (d *Document) Lines() []string {
	return slices.Clone(d.lines)
}

// Path returns the relative file path including the extension.
func (d *Document) Path() string {
	return d.FileName + Extension
}

// Bytes renders the banner followed by the body, newline terminated.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	for _, l := range Banner {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	for _, l := range d.lines {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Write stores the document under root, creating directories as needed.
func (d *Document) Write(fs afero.Fs, root string) error {
	target := filepath.Join(root, filepath.FromSlash(d.Path()))
	if err := fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errors.Wrapf(err, "error writing %s: create directory", d.Source)
	}
	if err := afero.WriteFile(fs, target, d.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "error writing %s", d.Source)
	}
	return nil
}
