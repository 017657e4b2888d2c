// Package schema decides how model names appear in XML documents: which
// members are attributes and what tag text they use.
package schema

import (
	"strings"

	"github.com/cmmoran/writergen/pkg/model"
)

// DefaultAttributes are the member names represented as XML attributes.
var DefaultAttributes = []string{"href", "id", "rel"}

// Names is the schema naming oracle. Tag text is independent from the Ruby
// identifiers derived by package names.
type Names interface {
	// IsAttribute reports whether a member with this name is written as an
	// XML attribute instead of an inner element.
	IsAttribute(name model.Name) bool
	// TagName returns the XML tag or attribute name.
	TagName(name model.Name) string
}

type schemaNames struct {
	attributes map[string]bool
}

// New returns the default oracle. Attribute names are compared against the
// tag form of the member name; no arguments selects DefaultAttributes.
func New(attributes ...string) Names {
	if len(attributes) == 0 {
		attributes = DefaultAttributes
	}
	s := &schemaNames{attributes: make(map[string]bool, len(attributes))}
	for _, a := range attributes {
		s.attributes[s.TagName(model.ParseName(a))] = true
	}
	return s
}

func (s *schemaNames) IsAttribute(name model.Name) bool {
	return s.attributes[s.TagName(name)]
}

func (s *schemaNames) TagName(name model.Name) string {
	return strings.Join(name.Words(), "_")
}

// Partition splits the members of st into attribute and element represented
// members. Each partition lists sorted attributes and then sorted links; the
// attribute partition is always written first.
func Partition(st *model.StructType, names Names) (attributes, elements []*model.Member) {
	for _, m := range st.Members() {
		if names.IsAttribute(m.Name) {
			attributes = append(attributes, m)
		} else {
			elements = append(elements, m)
		}
	}
	return attributes, elements
}
