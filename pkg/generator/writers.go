package generator

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/writergen/internal/buffer"
	"github.com/cmmoran/writergen/pkg/model"
	"github.com/cmmoran/writergen/pkg/names"
	"github.com/cmmoran/writergen/pkg/schema"
)

// emitter renders the per-type writer files. plan holds the writer name of
// every struct that is generated in this run.
type emitter struct {
	*Generator
	plan    map[*model.StructType]names.QualifiedName
	buffer  *buffer.Buffer
	skipped []string
}

func (e *emitter) writerFile(st *model.StructType) (*buffer.Document, error) {
	writerName := e.plan[st]
	e.buffer = buffer.New(writerName.FileName, writerName.String())
	log := e.log.With("type", names.ClassStyle(st.Name), "file", writerName.FileName)

	var err error
	e.buffer.Module(writerName.ModuleName, func() {
		e.buffer.Blank()
		err = e.writerClass(st)
		e.buffer.Blank()
	})
	if err != nil {
		return nil, err
	}
	log.Debug("generated writer")
	return e.buffer.Document(), nil
}

func (e *emitter) writerClass(st *model.StructType) error {
	var err error
	e.buffer.Block(e.classDeclaration(st), func() {
		e.buffer.Blank()
		err = e.methods(st)
	})
	return err
}

func (e *emitter) classDeclaration(st *model.StructType) string {
	return classDeclaration(e.plan[st], e.names.BaseWriterName())
}

func classDeclaration(writer, base names.QualifiedName) string {
	return fmt.Sprintf("class %s < %s # :nodoc:", writer.ClassName, base.ClassName)
}

func (e *emitter) methods(st *model.StructType) error {
	singular := e.schema.TagName(st.Name)
	plural := e.schema.TagName(model.Plural(st.Name))

	var err error
	e.buffer.Block("def self.write_one(object, writer, singular = nil)", func() {
		e.buffer.AddLine("singular ||= '%s'", singular)
		e.buffer.AddLine("writer.write_start(singular)")
		err = e.membersWrite(st)
		e.buffer.AddLine("writer.write_end")
	})
	if err != nil {
		return err
	}
	e.buffer.Blank()

	e.buffer.Block("def self.write_many(list, writer, singular = nil, plural = nil)", func() {
		e.buffer.AddLine("singular ||= '%s'", singular)
		e.buffer.AddLine("plural ||= '%s'", plural)
		e.buffer.AddLine("writer.write_start(plural)")
		e.buffer.Block("list.each do |item|", func() {
			e.buffer.AddLine("write_one(item, writer, singular)")
		})
		e.buffer.AddLine("writer.write_end")
	})
	e.buffer.Blank()
	return nil
}

// membersWrite writes the attribute represented members first and then the
// element represented ones. Readers of the generated documents rely on
// this order.
func (e *emitter) membersWrite(st *model.StructType) error {
	attributes, elements := schema.Partition(st, e.schema)
	for _, m := range attributes {
		if err := e.memberWriteAsAttribute(st, m); err != nil {
			return err
		}
	}
	for _, m := range elements {
		if err := e.memberWriteAsElement(st, m); err != nil {
			return err
		}
	}
	return nil
}

func (e *emitter) unsupported(st *model.StructType, m *model.Member, why string) error {
	return errors.WithHintf(
		errors.Wrapf(ErrUnsupportedMember, "%s.%s: %s", names.ClassStyle(st.Name), e.names.MemberStyle(m.Name), why),
		"member kind is %s", model.Kind(m.Type),
	)
}

func (e *emitter) memberWriteAsAttribute(st *model.StructType, m *model.Member) error {
	property := "object." + e.names.MemberStyle(m.Name)
	attribute := e.schema.TagName(m.Name)
	switch t := m.Type.(type) {
	case *model.PrimitiveType:
		e.primitiveAsAttribute(t, attribute, property)
	case *model.EnumType:
		e.buffer.AddLine("writer.write_attribute('%[1]s', %[2]s.to_s) unless %[2]s.nil?", attribute, property)
	case *model.StructType, *model.ListType:
		return e.unsupported(st, m, "only primitives and enums can be attributes")
	default:
		return e.unsupported(st, m, "no type")
	}
	return nil
}

func (e *emitter) primitiveAsAttribute(t *model.PrimitiveType, tag, value string) {
	switch t.Kind {
	case model.PrimitiveString:
		e.buffer.AddLine("writer.write_attribute('%[1]s', %[2]s) unless %[2]s.nil?", tag, value)
	case model.PrimitiveBoolean, model.PrimitiveInteger, model.PrimitiveDecimal:
		e.buffer.AddLine("writer.write_attribute('%[1]s', %[2]s.to_s) unless %[2]s.nil?", tag, value)
	case model.PrimitiveDate:
		e.buffer.AddLine("writer.write_attribute('%[1]s', %[2]s.xmlschema) unless %[2]s.nil?", tag, value)
	}
}

func (e *emitter) memberWriteAsElement(st *model.StructType, m *model.Member) error {
	property := "object." + e.names.MemberStyle(m.Name)
	tag := e.schema.TagName(m.Name)
	switch t := m.Type.(type) {
	case *model.PrimitiveType:
		e.primitiveAsElement(t, tag, property)
	case *model.EnumType:
		e.enumAsElement(tag, property)
	case *model.StructType:
		return e.structAsElement(st, m, t, tag, property)
	case *model.ListType:
		return e.listAsElement(st, m, t, property)
	default:
		return e.unsupported(st, m, "no type")
	}
	return nil
}

var primitiveWriteMethods = map[model.PrimitiveKind]string{
	model.PrimitiveString:  "write_string",
	model.PrimitiveBoolean: "write_boolean",
	model.PrimitiveInteger: "write_integer",
	model.PrimitiveDecimal: "write_decimal",
	model.PrimitiveDate:    "write_date",
}

func (e *emitter) primitiveAsElement(t *model.PrimitiveType, tag, value string) {
	e.buffer.AddLine("writer.%[1]s('%[2]s', %[3]s) unless %[3]s.nil?", primitiveWriteMethods[t.Kind], tag, value)
}

func (e *emitter) enumAsElement(tag, value string) {
	e.buffer.AddLine("writer.write_string('%[1]s', %[2]s.to_s) unless %[2]s.nil?", tag, value)
}

func (e *emitter) structAsElement(st *model.StructType, m *model.Member, t *model.StructType, tag, property string) error {
	writerName, ok := e.plan[t]
	if !ok {
		e.skip(st, m, t)
		return nil
	}
	e.buffer.AddLine("%[1]s.write_one(%[2]s, writer, '%[3]s') unless %[2]s.nil?", writerName.ClassName, property, tag)
	return nil
}

func (e *emitter) listAsElement(st *model.StructType, m *model.Member, t *model.ListType, property string) error {
	pluralTag := e.schema.TagName(m.Name)
	singularTag := e.schema.TagName(model.Singular(m.Name))

	et := t.Element
	switch {
	case model.IsScalar(et):
		e.buffer.Block(fmt.Sprintf("if not %[1]s.nil? and not %[1]s.empty? then", property), func() {
			e.buffer.AddLine("writer.write_start('%s')", pluralTag)
			e.buffer.Block(fmt.Sprintf("%s.each do |item|", property), func() {
				if pt, ok := et.(*model.PrimitiveType); ok {
					e.primitiveAsElement(pt, singularTag, "item")
				} else {
					e.enumAsElement(singularTag, "item")
				}
			})
			e.buffer.AddLine("writer.write_end")
		})
	case model.IsStruct(et):
		target := et.(*model.StructType)
		writerName, ok := e.plan[target]
		if !ok {
			e.skip(st, m, target)
			return nil
		}
		e.buffer.AddLine(
			"%[1]s.write_many(%[2]s, writer, '%[3]s', '%[4]s') unless %[2]s.nil? or %[2]s.empty?",
			writerName.ClassName, property, singularTag, pluralTag,
		)
	case model.Kind(et) == model.KindList:
		return e.unsupported(st, m, "lists of lists have no XML representation")
	default:
		return e.unsupported(st, m, "list without element type")
	}
	return nil
}

func (e *emitter) skip(st *model.StructType, m *model.Member, target *model.StructType) {
	entry := names.ClassStyle(st.Name) + "." + e.names.MemberStyle(m.Name)
	e.skipped = append(e.skipped, entry)
	e.log.Warn("member skipped, its type is not generated", "member", entry, "target", names.ClassStyle(target.Name))
}
