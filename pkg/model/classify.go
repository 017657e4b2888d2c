package model

// Kind reports the variant of t. A nil type is KindInvalid.
func Kind(t Type) TypeKind {
	switch t.(type) {
	case *PrimitiveType:
		return KindPrimitive
	case *EnumType:
		return KindEnum
	case *StructType:
		return KindStruct
	case *ListType:
		return KindList
	default:
		return KindInvalid
	}
}

// IsStruct reports whether t is a struct type.
func IsStruct(t Type) bool {
	return Kind(t) == KindStruct
}

// IsScalar reports whether t is a primitive or an enum.
func IsScalar(t Type) bool {
	k := Kind(t)
	return k == KindPrimitive || k == KindEnum
}

// Structs keeps the struct types of types, preserving order.
func Structs(types []Type) []*StructType {
	out := make([]*StructType, 0, len(types))
	for _, t := range types {
		if st, ok := t.(*StructType); ok {
			out = append(out, st)
		}
	}
	return out
}
