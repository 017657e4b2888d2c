package model

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

const vmYAML = `
types:
  - name: VirtualMachine
    attributes:
      - name: id
        type: string
      - name: name
        type: String
      - name: status
        type: VmStatus
    links:
      - name: disks
        type: Disk[]
      - name: parent
        type: VirtualMachine
  - name: Disk
    kind: struct
    attributes:
      - name: size
        type: integer
      - name: created
        type: date
  - name: VmStatus
    kind: enum
    values: [up, down]
services:
  - name: vms
`

const vmTOML = `
[[types]]
name = "Disk"
kind = "struct"

  [[types.attributes]]
  name = "size"
  type = "integer"

  [[types.attributes]]
  name = "tags"
  type = "string[]"
`

func TestDecodeYAML(t *testing.T) {
	m, err := Decode(strings.NewReader(vmYAML), FormatYAML)
	require.NoError(t, err)

	structs := m.Structs()
	require.Len(t, structs, 2)
	disk, vm := structs[0], structs[1]
	require.Equal(t, "disk", disk.Name.String())
	require.Equal(t, "virtualMachine", vm.Name.String())

	require.Equal(t, []string{"id", "name", "status"}, memberNames(vm.SortedAttributes()))
	require.Equal(t, []string{"disks", "parent"}, memberNames(vm.SortedLinks()))

	attrs := vm.SortedAttributes()
	require.Equal(t, &PrimitiveType{Kind: PrimitiveString}, attrs[1].Type)
	status, ok := attrs[2].Type.(*EnumType)
	require.True(t, ok)
	require.Len(t, status.Values, 2)

	links := vm.SortedLinks()
	list, ok := links[0].Type.(*ListType)
	require.True(t, ok)
	require.Same(t, disk, list.Element)
	require.Same(t, vm, links[1].Type, "self references resolve to the same struct")

	require.Equal(t, &PrimitiveType{Kind: PrimitiveDate}, disk.SortedAttributes()[0].Type)
	require.Len(t, m.Services(), 1)
}

func TestDecodeTOML(t *testing.T) {
	m, err := Decode(strings.NewReader(vmTOML), FormatTOML)
	require.NoError(t, err)
	structs := m.Structs()
	require.Len(t, structs, 1)
	tags := structs[0].SortedAttributes()[1]
	require.Equal(t, "tags", tags.Name.String())
	require.Equal(t, &ListType{Element: &PrimitiveType{Kind: PrimitiveString}}, tags.Type)
}

func TestDecodeEmpty(t *testing.T) {
	m, err := Decode(strings.NewReader(""), FormatYAML)
	require.NoError(t, err)
	require.Empty(t, m.Types())
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{
			name: "unknown member type",
			doc: `
types:
  - name: Vm
    attributes:
      - name: host
        type: Host
`,
			wantErr: ErrUnknownType,
		},
		{
			name: "duplicate type",
			doc: `
types:
  - name: Vm
  - name: vm
`,
			wantErr: ErrDuplicateName,
		},
		{
			name: "duplicate member across attributes and links",
			doc: `
types:
  - name: Vm
    attributes:
      - name: name
        type: string
    links:
      - name: name
        type: string
`,
			wantErr: ErrDuplicateName,
		},
		{
			name: "type named like a primitive",
			doc: `
types:
  - name: Date
    attributes:
      - name: day
        type: integer
`,
			wantErr: ErrDuplicateName,
		},
		{
			name: "enum named like a primitive",
			doc: `
types:
  - name: string
    kind: enum
    values: [a]
`,
			wantErr: ErrDuplicateName,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc), FormatYAML)
			require.Error(t, err)
			require.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}

	_, err := Decode(strings.NewReader("types:\n  - name: Vm\n    kind: union\n"), FormatYAML)
	require.ErrorContains(t, err, "unsupported kind")

	_, err = Decode(strings.NewReader(""), Format("json"))
	require.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.yml")
	require.NoError(t, os.WriteFile(path, []byte(vmYAML), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	require.Len(t, m.Structs(), 2)

	_, err = Load(filepath.Join(dir, "model.json"))
	require.True(t, errors.Is(err, ErrUnknownFormat))

	_, err = Load(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
}
