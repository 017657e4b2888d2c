package generator

import (
	"github.com/cmmoran/writergen/internal/buffer"
	"github.com/cmmoran/writergen/pkg/names"
)

func (g *Generator) versionFile() *buffer.Document {
	b := buffer.New(g.names.VersionFileName(), "version")
	b.Module(g.names.ModuleName(), func() {
		b.AddLine("%s = '%s'.freeze", names.ConstantStyle(names.VersionName), g.Opts.Version)
	})
	return b.Document()
}
