package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		words []string
	}{
		{name: "camel", in: "virtualMachine", words: []string{"virtual", "machine"}},
		{name: "pascal", in: "VirtualMachine", words: []string{"virtual", "machine"}},
		{name: "snake", in: "virtual_machine", words: []string{"virtual", "machine"}},
		{name: "kebab and dots", in: "host-nic.port", words: []string{"host", "nic", "port"}},
		{name: "acronym followed by word", in: "HTTPSConnection", words: []string{"https", "connection"}},
		{name: "trailing acronym", in: "vmID", words: []string{"vm", "id"}},
		{name: "single word", in: "disk", words: []string{"disk"}},
		{name: "whitespace", in: "  storage   domain ", words: []string{"storage", "domain"}},
		{name: "empty", in: "", words: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseName(tt.in)
			if diff := cmp.Diff(tt.words, got.Words()); diff != "" {
				t.Errorf("ParseName(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestNameBasics(t *testing.T) {
	n := NewName("Virtual", "", " Machine ")
	require.Equal(t, []string{"virtual", "machine"}, n.Words())
	require.Equal(t, 2, n.Len())
	require.False(t, n.IsEmpty())
	require.True(t, Name{}.IsEmpty())
	require.Equal(t, "virtualMachine", n.String())

	words := n.Words()
	words[0] = "changed"
	require.Equal(t, "virtual", n.Words()[0], "Words must return a copy")

	c := n.Concat(NewName("writer"))
	require.Equal(t, []string{"virtual", "machine", "writer"}, c.Words())
	require.Equal(t, 2, n.Len(), "Concat must not modify the receiver")

	require.True(t, n.Equal(ParseName("VirtualMachine")))
	require.False(t, n.Equal(c))
}

func TestNameCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{a: "disk", b: "disk", want: 0},
		{a: "disk", b: "vm", want: -1},
		{a: "vm", b: "disk", want: 1},
		{a: "host", b: "hostNic", want: -1},
		{a: "hostNic", b: "host", want: 1},
		{a: "hostNic", b: "hostStorage", want: -1},
	}
	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			require.Equal(t, tt.want, ParseName(tt.a).Compare(ParseName(tt.b)))
		})
	}
}

func TestPluralSingular(t *testing.T) {
	tests := []struct {
		singular string
		plural   string
	}{
		{singular: "disk", plural: "disks"},
		{singular: "virtualMachine", plural: "virtualMachines"},
		{singular: "storageDomain", plural: "storageDomains"},
		{singular: "hostNic", plural: "hostNics"},
		{singular: "property", plural: "properties"},
	}
	for _, tt := range tests {
		t.Run(tt.singular, func(t *testing.T) {
			s := ParseName(tt.singular)
			p := ParseName(tt.plural)
			require.True(t, Plural(s).Equal(p), "Plural(%s) = %s", s, Plural(s))
			require.True(t, Singular(p).Equal(s), "Singular(%s) = %s", p, Singular(p))
		})
	}
	require.True(t, Plural(Name{}).IsEmpty())
}
