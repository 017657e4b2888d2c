package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/writergen/pkg/model"
)

func TestNames(t *testing.T) {
	s := New()
	require.True(t, s.IsAttribute(model.NewName("id")))
	require.True(t, s.IsAttribute(model.NewName("href")))
	require.False(t, s.IsAttribute(model.NewName("name")))
	require.Equal(t, "virtual_machine", s.TagName(model.ParseName("virtualMachine")))

	custom := New("name", "storageDomain")
	require.True(t, custom.IsAttribute(model.NewName("name")))
	require.True(t, custom.IsAttribute(model.NewName("storage", "domain")))
	require.False(t, custom.IsAttribute(model.NewName("id")))
}

func TestPartition(t *testing.T) {
	str := &model.PrimitiveType{Kind: model.PrimitiveString}
	st := &model.StructType{
		Name: model.NewName("vm"),
		Attributes: []*model.Member{
			{Name: model.NewName("name"), Type: str},
			{Name: model.NewName("id"), Type: str},
			{Name: model.NewName("description"), Type: str},
		},
		Links: []*model.Member{
			{Name: model.NewName("rel"), Type: str},
			{Name: model.NewName("disks"), Type: str},
		},
	}

	names := func(members []*model.Member) []string {
		out := make([]string, 0, len(members))
		for _, m := range members {
			out = append(out, m.Name.String())
		}
		return out
	}

	attributes, elements := Partition(st, New())
	require.Equal(t, []string{"id", "rel"}, names(attributes))
	require.Equal(t, []string{"description", "name", "disks"}, names(elements))

	again, _ := Partition(st, New())
	require.Equal(t, names(attributes), names(again))
}
