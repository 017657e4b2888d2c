// Package generator emits the Ruby classes that write model objects as XML
// documents: one writer per struct type plus an aggregate file with forward
// declarations and load statements.
package generator

import (
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/gobwas/glob"

	"github.com/cmmoran/writergen/internal/buffer"
	"github.com/cmmoran/writergen/internal/verify"
	"github.com/cmmoran/writergen/pkg/model"
	"github.com/cmmoran/writergen/pkg/names"
	"github.com/cmmoran/writergen/pkg/schema"
)

var (
	// ErrUnsupportedMember is returned for a member the writers cannot render:
	// a missing type, a struct or list represented as an attribute, or a list
	// of lists.
	ErrUnsupportedMember = errors.New("unsupported member")
	// ErrInvalidPattern is returned for a type filter that is not a valid glob.
	ErrInvalidPattern = errors.New("invalid type pattern")
)

// Generator holds the configuration of a generation run.
type Generator struct {
	Opts Options

	names   *names.Deriver
	schema  schema.Names
	log     *slog.Logger
	include []glob.Glob
	exclude []glob.Glob
}

// Result is the complete, in-memory output of a run. Nothing is written to
// storage until Commit.
type Result struct {
	Documents []*buffer.Document
	// Writers lists the generated writers in the order the forward
	// declarations use.
	Writers []names.QualifiedName
	// Cycles lists groups of writers that reference each other, each sorted
	// by class name.
	Cycles [][]string
	// Skipped lists "Struct.member" entries omitted because their type was
	// filtered out.
	Skipped []string
}

// New creates a generator from the defaults and opts.
func New(opts ...Option) (*Generator, error) {
	o := NewOptions()
	for _, fn := range opts {
		fn(o)
	}
	return NewWithOpts(o)
}

func NewWithOpts(opts *Options) (*Generator, error) {
	if err := opts.Normalize(); err != nil {
		return nil, err
	}

	g := &Generator{
		Opts: *opts,
		names: names.New(names.Config{
			ModuleName:    opts.ModuleName,
			ReservedWords: opts.ReservedWords,
		}),
		schema: opts.Schema,
		log:    opts.Logger,
	}
	if g.schema == nil {
		g.schema = schema.New(opts.Attributes...)
	}

	var err error
	if g.include, err = compilePatterns(opts.IncludeTypes); err != nil {
		return nil, err
	}
	if g.exclude, err = compilePatterns(opts.ExcludeTypes); err != nil {
		return nil, err
	}
	return g, nil
}

// Names exposes the name deriver used by the generator.
func (g *Generator) Names() *names.Deriver {
	return g.names
}

// Generate renders every writer of m. Names of all writers are computed in
// one pass before any body is rendered, so bodies only refer to names that
// are known to be generated.
func (g *Generator) Generate(m *model.Model) (*Result, error) {
	structs := g.selectStructs(m)
	plan := make(map[*model.StructType]names.QualifiedName, len(structs))
	res := &Result{}
	for _, st := range structs {
		wn := g.names.WriterName(st)
		plan[st] = wn
		res.Writers = append(res.Writers, wn)
	}
	g.log.Debug("planned writers", "module", g.names.ModuleName(), "count", len(structs))

	cycles, err := referenceCycles(structs, plan)
	if err != nil {
		return nil, err
	}
	for _, c := range cycles {
		g.log.Debug("writers reference each other", "writers", c)
	}
	res.Cycles = cycles

	e := &emitter{Generator: g, plan: plan}
	for _, st := range structs {
		doc, err := e.writerFile(st)
		if err != nil {
			return nil, err
		}
		res.Documents = append(res.Documents, doc)
	}
	res.Skipped = e.skipped

	if g.Opts.ForwardDeclarations {
		res.Documents = append(res.Documents, g.writersFile(structs))
	}
	if g.Opts.Version != "" {
		res.Documents = append(res.Documents, g.versionFile())
	}

	if g.Opts.Verify {
		for _, doc := range res.Documents {
			if err := verify.Ruby(doc.Bytes()); err != nil {
				return nil, errors.Wrapf(err, "verify %s", doc.Path())
			}
		}
	}
	return res, nil
}

func compilePatterns(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidPattern, "%q: %v", p, err)
		}
		out = append(out, g)
	}
	return out, nil
}

// selectStructs returns the struct types that pass the type filters, in
// their natural order. Patterns match the class-style type name.
func (g *Generator) selectStructs(m *model.Model) []*model.StructType {
	all := m.Structs()
	out := make([]*model.StructType, 0, len(all))
	for _, st := range all {
		name := names.ClassStyle(st.Name)
		if !g.included(name) {
			g.log.Debug("type excluded", "type", name)
			continue
		}
		out = append(out, st)
	}
	return out
}

func (g *Generator) included(name string) bool {
	for _, p := range g.exclude {
		if p.Match(name) {
			return false
		}
	}
	if len(g.include) == 0 {
		return true
	}
	for _, p := range g.include {
		if p.Match(name) {
			return true
		}
	}
	return false
}
