package model

import (
	"slices"
)

// TypeKind identifies the variant of a Type.
type TypeKind int

const (
	KindInvalid   TypeKind = iota
	KindPrimitive          // string, boolean, integer, decimal, date
	KindEnum               // enumerated string values
	KindStruct             // named members
	KindList               // list of one element type
)

func (k TypeKind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindEnum:
		return "enum"
	case KindStruct:
		return "struct"
	case KindList:
		return "list"
	default:
		return "invalid"
	}
}

// PrimitiveKind identifies one of the fixed primitive types.
type PrimitiveKind int

const (
	PrimitiveString PrimitiveKind = iota
	PrimitiveBoolean
	PrimitiveInteger
	PrimitiveDecimal
	PrimitiveDate
)

var primitiveNames = map[PrimitiveKind]string{
	PrimitiveString:  "string",
	PrimitiveBoolean: "boolean",
	PrimitiveInteger: "integer",
	PrimitiveDecimal: "decimal",
	PrimitiveDate:    "date",
}

func (k PrimitiveKind) String() string {
	if s, ok := primitiveNames[k]; ok {
		return s
	}
	return "unknown"
}

// Type is one of *PrimitiveType, *EnumType, *StructType or *ListType. The set
// is closed: the marker method is unexported.
type Type interface {
	// TypeName returns the model name of the type. Lists are named after
	// the plural of their element type.
	TypeName() Name
	isType()
}

// PrimitiveType is one of the built-in scalar types.
type PrimitiveType struct {
	Kind PrimitiveKind
}

func (t *PrimitiveType) TypeName() Name { return NewName(t.Kind.String()) }
func (*PrimitiveType) isType()          {}

// EnumType is a named set of textual values.
type EnumType struct {
	Name   Name
	Values []Name
}

func (t *EnumType) TypeName() Name { return t.Name }
func (*EnumType) isType()          {}

// StructType has named, typed members split into attributes and links.
type StructType struct {
	Name       Name
	Attributes []*Member
	Links      []*Member
}

func (t *StructType) TypeName() Name { return t.Name }
func (*StructType) isType()          {}

// Compare orders structs by name.
func (t *StructType) Compare(other *StructType) int {
	return t.Name.Compare(other.Name)
}

// SortedAttributes returns the attributes in name order.
func (t *StructType) SortedAttributes() []*Member {
	return sortMembers(t.Attributes)
}

// SortedLinks returns the links in name order.
func (t *StructType) SortedLinks() []*Member {
	return sortMembers(t.Links)
}

// Members returns the sorted attributes followed by the sorted links.
func (t *StructType) Members() []*Member {
	return append(t.SortedAttributes(), t.SortedLinks()...)
}

// ListType is a list of a single element type.
type ListType struct {
	Element Type
}

func (t *ListType) TypeName() Name {
	if t.Element == nil {
		return Name{}
	}
	return Plural(t.Element.TypeName())
}
func (*ListType) isType() {}

// Member is an attribute or link of a struct.
type Member struct {
	Name Name
	Type Type
}

// Service is a named API service. Only its name is used here.
type Service struct {
	Name Name
}

// Model is the root of the type model.
type Model struct {
	types    []Type
	services []*Service
}

// New builds a model from the given types and services.
func New(types []Type, services []*Service) *Model {
	return &Model{
		types:    slices.Clone(types),
		services: slices.Clone(services),
	}
}

// Types returns the named types of the model sorted by name. Each call
// returns a fresh slice.
func (m *Model) Types() []Type {
	out := slices.Clone(m.types)
	slices.SortStableFunc(out, func(a, b Type) int {
		return a.TypeName().Compare(b.TypeName())
	})
	return out
}

// Structs returns the struct types of the model in their natural order.
func (m *Model) Structs() []*StructType {
	return Structs(m.Types())
}

// Services returns the services sorted by name.
func (m *Model) Services() []*Service {
	out := slices.Clone(m.services)
	slices.SortStableFunc(out, func(a, b *Service) int {
		return a.Name.Compare(b.Name)
	})
	return out
}

// Lookup finds a named type.
func (m *Model) Lookup(name Name) (Type, bool) {
	for _, t := range m.types {
		if t.TypeName().Equal(name) {
			return t, true
		}
	}
	return nil, false
}

func sortMembers(members []*Member) []*Member {
	out := slices.Clone(members)
	slices.SortStableFunc(out, func(a, b *Member) int {
		return a.Name.Compare(b.Name)
	})
	return out
}
