package generator

import (
	"github.com/cmmoran/writergen/internal/buffer"
	"github.com/cmmoran/writergen/pkg/model"
)

// writersFile builds the aggregate file: empty declarations of the base
// writer and of every struct writer, so that any writer can refer to any
// other regardless of load order, followed by the statements that load them.
// Stubs and loads use the same order: the natural order of the structs.
func (g *Generator) writersFile(structs []*model.StructType) *buffer.Document {
	base := g.names.BaseWriterName()
	b := buffer.New(g.names.WritersFileName(), "writers forward declarations")

	b.Comment("These forward declarations are required in order to avoid circular dependencies.")
	b.Module(g.names.ModuleName(), func() {
		b.Blank()
		b.Block("class "+base.ClassName+" # :nodoc:", nil)
		b.Blank()
		for _, st := range structs {
			b.Block(classDeclaration(g.names.WriterName(st), base), nil)
			b.Blank()
		}
	})
	b.Blank()

	b.Comment("Load all the writers.")
	b.AddLine("load '%s%s'", base.FileName, buffer.Extension)
	for _, st := range structs {
		b.AddLine("load '%s%s'", g.names.WriterName(st).FileName, buffer.Extension)
	}
	return b.Document()
}
