package generator

import (
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/dominikbraun/graph"

	"github.com/cmmoran/writergen/pkg/model"
	"github.com/cmmoran/writergen/pkg/names"
)

// referenceCycles builds the graph of writer calls (a struct member, or a
// list of structs, makes its writer call the member type's writer) and
// returns the groups of writers that reach each other. Self references count
// as a group of one.
func referenceCycles(structs []*model.StructType, plan map[*model.StructType]names.QualifiedName) ([][]string, error) {
	g := graph.New(graph.StringHash, graph.Directed())
	for _, st := range structs {
		if err := g.AddVertex(plan[st].ClassName); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
			return nil, errors.Wrap(err, "add writer vertex")
		}
	}

	selfRefs := make(map[string]bool)
	for _, st := range structs {
		from := plan[st].ClassName
		for _, m := range st.Members() {
			target := referencedStruct(m.Type)
			if target == nil {
				continue
			}
			wn, ok := plan[target]
			if !ok {
				continue
			}
			if wn.ClassName == from {
				selfRefs[from] = true
				continue
			}
			if err := g.AddEdge(from, wn.ClassName); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
				return nil, errors.Wrapf(err, "add reference %s -> %s", from, wn.ClassName)
			}
		}
	}

	components, err := graph.StronglyConnectedComponents(g)
	if err != nil {
		return nil, errors.Wrap(err, "writer reference components")
	}

	var cycles [][]string
	for _, c := range components {
		if len(c) > 1 || (len(c) == 1 && selfRefs[c[0]]) {
			c = slices.Clone(c)
			slices.Sort(c)
			cycles = append(cycles, c)
		}
	}
	slices.SortFunc(cycles, func(a, b []string) int {
		return slices.Compare(a, b)
	})
	return cycles, nil
}

func referencedStruct(t model.Type) *model.StructType {
	switch v := t.(type) {
	case *model.StructType:
		return v
	case *model.ListType:
		if st, ok := v.Element.(*model.StructType); ok {
			return st
		}
	}
	return nil
}
