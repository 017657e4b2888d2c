// Package verify checks that generated Ruby source parses.
package verify

import (
	"github.com/cockroachdb/errors"
	sitter "github.com/tree-sitter/go-tree-sitter"
	ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"
)

// ErrInvalidSyntax is returned when the parse tree contains errors.
var ErrInvalidSyntax = errors.New("invalid ruby syntax")

// Ruby parses source and fails if tree-sitter reports an error or a missing
// node anywhere in the tree. The position of the first problem is reported.
func Ruby(source []byte) error {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(sitter.NewLanguage(ruby.Language())); err != nil {
		return errors.Wrap(err, "load ruby grammar")
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return errors.Wrap(ErrInvalidSyntax, "no parse tree")
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return nil
	}
	if bad := firstError(root); bad != nil {
		pos := bad.StartPosition()
		return errors.Wrapf(ErrInvalidSyntax, "line %d column %d: %s", pos.Row+1, pos.Column+1, bad.Kind())
	}
	return ErrInvalidSyntax
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil || !child.HasError() && !child.IsMissing() {
			continue
		}
		if bad := firstError(child); bad != nil {
			return bad
		}
	}
	return nil
}
