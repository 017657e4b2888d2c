// Package names calculates the Ruby identifiers, module names and file names
// of generated artifacts.
package names

import (
	"path"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"

	"github.com/cmmoran/writergen/pkg/model"
)

// DefaultModuleName is used when no module name is configured.
const DefaultModuleName = "Ovirt::SDK::V4"

// ErrEmptyName is returned when a derivation is asked for an empty base name.
var ErrEmptyName = errors.New("empty base name")

// Names of the base classes and of the directories they live in.
var (
	BaseReader  = model.NewName("reader")
	BaseService = model.NewName("service")
	BaseType    = model.NewName("type")
	BaseWriter  = model.NewName("writer")

	ReadersDir  = model.NewName("readers")
	ServicesDir = model.NewName("services")
	TypesDir    = model.NewName("types")
	WritersDir  = model.NewName("writers")

	VersionName = model.NewName("version")
)

// QualifiedName is the resolved class, module and file of a generated
// artifact. FileName has no extension and always uses '/' separators.
type QualifiedName struct {
	ClassName  string
	ModuleName string
	FileName   string
}

func (q QualifiedName) String() string {
	return q.ModuleName + "::" + q.ClassName
}

// Config is the immutable input of a Deriver.
type Config struct {
	ModuleName    string
	ReservedWords []string
}

// Deriver turns model names into Ruby names. It is safe for concurrent use;
// nothing changes after New.
type Deriver struct {
	moduleName string
	modulePath string
	reserved   map[string]bool
}

// New creates a Deriver. An empty module name selects DefaultModuleName and
// a nil reserved word list selects RubyReservedWords.
func New(cfg Config) *Deriver {
	moduleName := strings.TrimSpace(cfg.ModuleName)
	if moduleName == "" {
		moduleName = DefaultModuleName
	}
	words := cfg.ReservedWords
	if words == nil {
		words = RubyReservedWords
	}
	reserved := make(map[string]bool, len(words))
	for _, w := range words {
		reserved[w] = true
	}
	return &Deriver{
		moduleName: moduleName,
		modulePath: ModulePath(moduleName),
		reserved:   reserved,
	}
}

// ModulePath lowercases each "::" segment of moduleName and joins them with '/'.
func ModulePath(moduleName string) string {
	segments := strings.Split(moduleName, "::")
	for i, s := range segments {
		segments[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return strings.Join(segments, "/")
}

// ModuleName returns the configured module display name.
func (d *Deriver) ModuleName() string { return d.moduleName }

// ModulePath returns the directory derived from the module name.
func (d *Deriver) ModulePath() string { return d.modulePath }

// IsReserved reports whether word is a reserved word.
func (d *Deriver) IsReserved(word string) bool { return d.reserved[word] }

// Derive builds the qualified name of base followed by suffix, placed in
// directory. Suffix and directory may be empty.
func (d *Deriver) Derive(base, suffix, directory model.Name) (QualifiedName, error) {
	if base.IsEmpty() {
		return QualifiedName{}, errors.WithHint(ErrEmptyName, "every derived name needs a non-empty base")
	}
	name := base.Concat(suffix)
	parts := []string{d.modulePath}
	if !directory.IsEmpty() {
		parts = append(parts, FileStyle(directory))
	}
	parts = append(parts, FileStyle(name))
	return QualifiedName{
		ClassName:  ClassStyle(name),
		ModuleName: d.moduleName,
		FileName:   path.Join(parts...),
	}, nil
}

// MustDerive is Derive for names known to be non-empty. An empty base is a
// programming error and panics.
func (d *Deriver) MustDerive(base, suffix, directory model.Name) QualifiedName {
	q, err := d.Derive(base, suffix, directory)
	if err != nil {
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "deriving name"))
	}
	return q
}

func (d *Deriver) BaseTypeName() QualifiedName {
	return d.MustDerive(BaseType, model.Name{}, TypesDir)
}

func (d *Deriver) TypeName(t model.Type) QualifiedName {
	return d.MustDerive(t.TypeName(), model.Name{}, TypesDir)
}

func (d *Deriver) BaseServiceName() QualifiedName {
	return d.MustDerive(BaseService, model.Name{}, ServicesDir)
}

func (d *Deriver) ServiceName(s *model.Service) QualifiedName {
	return d.MustDerive(s.Name, BaseService, ServicesDir)
}

func (d *Deriver) BaseReaderName() QualifiedName {
	return d.MustDerive(BaseReader, model.Name{}, ReadersDir)
}

func (d *Deriver) ReaderName(t model.Type) QualifiedName {
	return d.MustDerive(t.TypeName(), BaseReader, ReadersDir)
}

// BaseWriterName is the base class every generated writer extends.
func (d *Deriver) BaseWriterName() QualifiedName {
	return d.MustDerive(BaseWriter, model.Name{}, WritersDir)
}

// WriterName is the writer generated for t.
func (d *Deriver) WriterName(t model.Type) QualifiedName {
	return d.MustDerive(t.TypeName(), BaseWriter, WritersDir)
}

// WritersFileName is the aggregate file holding the forward declarations.
func (d *Deriver) WritersFileName() string {
	return path.Join(d.modulePath, FileStyle(WritersDir))
}

// VersionFileName is the file holding the VERSION constant.
func (d *Deriver) VersionFileName() string {
	return path.Join(d.modulePath, FileStyle(VersionName))
}

// MemberStyle renders a name as a Ruby method or variable. A result that is
// a reserved word gets a single trailing underscore.
func (d *Deriver) MemberStyle(n model.Name) string {
	result := strings.Join(n.Words(), "_")
	if d.reserved[result] {
		result += "_"
	}
	return result
}

// ClassStyle capitalizes every word and joins them.
func ClassStyle(n model.Name) string {
	var b strings.Builder
	for _, w := range n.Words() {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	return b.String()
}

// ConstantStyle uppercases every word and joins them with '_'.
func ConstantStyle(n model.Name) string {
	return strings.ToUpper(strings.Join(n.Words(), "_"))
}

// FileStyle lowercases every word and joins them with '_'.
func FileStyle(n model.Name) string {
	return strings.Join(n.Words(), "_")
}
