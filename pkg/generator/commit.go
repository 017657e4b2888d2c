package generator

import (
	"github.com/spf13/afero"

	"github.com/cmmoran/writergen/internal/buffer"
)

// Commit writes every document of the result under root. The first failure
// aborts the commit; files already written are left in place.
func (r *Result) Commit(fs afero.Fs, root string, written func(*buffer.Document)) error {
	for _, doc := range r.Documents {
		if err := doc.Write(fs, root); err != nil {
			return err
		}
		if written != nil {
			written(doc)
		}
	}
	return nil
}

// Paths returns the relative paths of all documents, in generation order.
func (r *Result) Paths() []string {
	out := make([]string, 0, len(r.Documents))
	for _, doc := range r.Documents {
		out = append(out, doc.Path())
	}
	return out
}
