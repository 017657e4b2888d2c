package model

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownFormat = errors.New("unknown model document format")
	ErrUnknownType   = errors.New("unknown type reference")
	ErrDuplicateName = errors.New("duplicate name")
)

// Format is the encoding of a model document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf picks the document format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "%s", path)
	}
}

type document struct {
	Types    []typeDoc    `yaml:"types" toml:"types"`
	Services []serviceDoc `yaml:"services" toml:"services"`
}

type typeDoc struct {
	Name       string      `yaml:"name" toml:"name"`
	Kind       string      `yaml:"kind" toml:"kind"`
	Values     []string    `yaml:"values,omitempty" toml:"values,omitempty"`
	Attributes []memberDoc `yaml:"attributes,omitempty" toml:"attributes,omitempty"`
	Links      []memberDoc `yaml:"links,omitempty" toml:"links,omitempty"`
}

type memberDoc struct {
	Name string `yaml:"name" toml:"name"`
	Type string `yaml:"type" toml:"type"`
}

type serviceDoc struct {
	Name string `yaml:"name" toml:"name"`
}

// Load reads the model document at path.
func Load(path string) (*Model, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read model")
	}
	m, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, errors.Wrapf(err, "load model %s", path)
	}
	return m, nil
}

// Decode reads a model document from r. Struct references are resolved
// by name and may be cyclic.
func Decode(r io.Reader, format Format) (*Model, error) {
	var doc document
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.Wrap(err, "unmarshal yaml model")
		}
	case FormatTOML:
		if err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "unmarshal toml model")
		}
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
	return newResolver().build(&doc)
}

// resolver turns a decoded document into a Model in two passes: first a shell
// for every named type, then member types, so cycles resolve naturally.
type resolver struct {
	byName map[string]Type
}

func newResolver() *resolver {
	return &resolver{byName: make(map[string]Type)}
}

func key(n Name) string {
	return strings.Join(n.words, " ")
}

func (r *resolver) build(doc *document) (*Model, error) {
	types := make([]Type, 0, len(doc.Types))
	for _, td := range doc.Types {
		name := ParseName(td.Name)
		if name.IsEmpty() {
			return nil, errors.Newf("type with empty name")
		}
		if _, exists := r.byName[key(name)]; exists {
			return nil, errors.Wrapf(ErrDuplicateName, "type %q", td.Name)
		}
		if _, primitive := primitiveNamed(key(name)); primitive {
			return nil, errors.Wrapf(ErrDuplicateName, "type %q is a primitive type", td.Name)
		}
		var t Type
		switch strings.ToLower(td.Kind) {
		case "enum":
			values := make([]Name, 0, len(td.Values))
			for _, v := range td.Values {
				values = append(values, ParseName(v))
			}
			t = &EnumType{Name: name, Values: values}
		case "struct", "":
			t = &StructType{Name: name}
		default:
			return nil, errors.Newf("type %q: unsupported kind %q", td.Name, td.Kind)
		}
		r.byName[key(name)] = t
		types = append(types, t)
	}

	for i, td := range doc.Types {
		st, ok := types[i].(*StructType)
		if !ok {
			continue
		}
		seen := make(map[string]bool)
		var err error
		if st.Attributes, err = r.members(td.Name, td.Attributes, seen); err != nil {
			return nil, err
		}
		if st.Links, err = r.members(td.Name, td.Links, seen); err != nil {
			return nil, err
		}
	}

	services := make([]*Service, 0, len(doc.Services))
	for _, sd := range doc.Services {
		services = append(services, &Service{Name: ParseName(sd.Name)})
	}
	return New(types, services), nil
}

func (r *resolver) members(owner string, docs []memberDoc, seen map[string]bool) ([]*Member, error) {
	out := make([]*Member, 0, len(docs))
	for _, md := range docs {
		name := ParseName(md.Name)
		if seen[key(name)] {
			return nil, errors.Wrapf(ErrDuplicateName, "member %q of %q", md.Name, owner)
		}
		seen[key(name)] = true
		t, err := r.resolve(md.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "member %q of %q", md.Name, owner)
		}
		out = append(out, &Member{Name: name, Type: t})
	}
	return out, nil
}

// resolve parses a type reference: a primitive name, a declared type name, or
// a reference followed by "[]" for a list.
func (r *resolver) resolve(ref string) (Type, error) {
	ref = strings.TrimSpace(ref)
	if elem, ok := strings.CutSuffix(ref, "[]"); ok {
		et, err := r.resolve(elem)
		if err != nil {
			return nil, err
		}
		return &ListType{Element: et}, nil
	}
	if kind, ok := primitiveNamed(ref); ok {
		return &PrimitiveType{Kind: kind}, nil
	}
	if t, ok := r.byName[key(ParseName(ref))]; ok {
		return t, nil
	}
	return nil, errors.Wrapf(ErrUnknownType, "%q", ref)
}

func primitiveNamed(name string) (PrimitiveKind, bool) {
	for kind, s := range primitiveNames {
		if strings.EqualFold(name, s) {
			return kind, true
		}
	}
	return 0, false
}
