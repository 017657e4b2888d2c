package generator

import (
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/mod/semver"

	"github.com/cmmoran/writergen/pkg/names"
	"github.com/cmmoran/writergen/pkg/schema"
)

// ErrInvalidVersion is returned by Normalize for a version that is not a
// semantic version.
var ErrInvalidVersion = errors.New("invalid version")

// ErrInvalidModuleName is returned by Normalize for a module name that is not
// a "::" separated list of Ruby constants.
var ErrInvalidModuleName = errors.New("invalid module name")

var moduleSegment = regexp.MustCompile(`^[A-Z][A-Za-z0-9_]*$`)

// Options control generation.
//
// ModelFile           – model document to load (yaml or toml).
// OutDir              – root directory of the generated files.
// ModuleName          – Ruby module, "::" separated; determines the module path.
// Version             – written to the version file when set, e.g. "4.1.0".
// ReservedWords       – replaces the Ruby keyword list when non-empty.
// Attributes          – member names written as XML attributes.
// IncludeTypes        – glob patterns of writer class names to generate (empty = all).
// ExcludeTypes        – glob patterns of writer class names to skip; wins over IncludeTypes.
// ForwardDeclarations – emit the aggregate writers file with stubs and load statements.
// Verify              – parse every generated file and fail on syntax errors.
// ManifestFile        – where the list of generated files is recorded, relative to OutDir.
type Options struct {
	ModelFile           string   `json:"model_file,omitempty" yaml:"model_file,omitempty" toml:"model_file,omitempty" mapstructure:"model_file,omitempty"`
	OutDir              string   `json:"out_dir,omitempty" yaml:"out_dir,omitempty" toml:"out_dir,omitempty" mapstructure:"out_dir,omitempty"`
	ModuleName          string   `json:"module_name,omitempty" yaml:"module_name,omitempty" toml:"module_name,omitempty" mapstructure:"module_name,omitempty"`
	Version             string   `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty" mapstructure:"version,omitempty"`
	ReservedWords       []string `json:"reserved_words,omitempty" yaml:"reserved_words,omitempty" toml:"reserved_words,omitempty" mapstructure:"reserved_words,omitempty"`
	Attributes          []string `json:"attributes,omitempty" yaml:"attributes,omitempty" toml:"attributes,omitempty" mapstructure:"attributes,omitempty"`
	IncludeTypes        []string `json:"include_types,omitempty" yaml:"include_types,omitempty" toml:"include_types,omitempty" mapstructure:"include_types,omitempty"`
	ExcludeTypes        []string `json:"exclude_types,omitempty" yaml:"exclude_types,omitempty" toml:"exclude_types,omitempty" mapstructure:"exclude_types,omitempty"`
	ForwardDeclarations bool     `json:"forward_declarations,omitempty" yaml:"forward_declarations,omitempty" toml:"forward_declarations,omitempty" mapstructure:"forward_declarations,omitempty"`
	Verify              bool     `json:"verify,omitempty" yaml:"verify,omitempty" toml:"verify,omitempty" mapstructure:"verify,omitempty"`
	ManifestFile        string   `json:"manifest_file,omitempty" yaml:"manifest_file,omitempty" toml:"manifest_file,omitempty" mapstructure:"manifest_file,omitempty"`

	// Schema overrides the schema naming oracle built from Attributes.
	Schema schema.Names `json:"-" yaml:"-" toml:"-" mapstructure:"-"`
	// Logger defaults to slog.Default().
	Logger *slog.Logger `json:"-" yaml:"-" toml:"-" mapstructure:"-"`
}

func NewOptions() *Options {
	return &Options{
		OutDir:              "lib",
		ModuleName:          names.DefaultModuleName,
		ForwardDeclarations: true,
		ManifestFile:        ".writergen.yaml",
	}
}

// Normalize fills defaults and checks the values that can be checked without
// loading the model.
func (o *Options) Normalize() error {
	o.ModuleName = strings.TrimSpace(o.ModuleName)
	if o.ModuleName == "" {
		o.ModuleName = names.DefaultModuleName
	}
	moduleName, err := normalizeModuleName(o.ModuleName)
	if err != nil {
		return err
	}
	o.ModuleName = moduleName
	if len(o.OutDir) == 0 {
		o.OutDir = "lib"
	}
	if strings.Contains(o.OutDir, ".") {
		o.OutDir, _ = filepath.Abs(o.OutDir)
	}
	if len(o.ManifestFile) == 0 {
		o.ManifestFile = ".writergen.yaml"
	}
	o.IncludeTypes = trimAll(o.IncludeTypes)
	o.ExcludeTypes = trimAll(o.ExcludeTypes)
	o.Attributes = trimAll(o.Attributes)
	o.ReservedWords = trimAll(o.ReservedWords)

	if o.Version != "" {
		o.Version = strings.TrimPrefix(strings.TrimSpace(o.Version), "v")
		if !semver.IsValid("v" + o.Version) {
			return errors.WithHint(
				errors.Wrapf(ErrInvalidVersion, "%q", o.Version),
				"use a semantic version such as 4.1.0",
			)
		}
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return nil
}

// normalizeModuleName trims every "::" segment and checks that each one is a
// Ruby constant.
func normalizeModuleName(name string) (string, error) {
	segments := strings.Split(name, "::")
	for i, segment := range segments {
		segments[i] = strings.TrimSpace(segment)
		if !moduleSegment.MatchString(segments[i]) {
			return "", errors.WithHint(
				errors.Wrapf(ErrInvalidModuleName, "%q: segment %q", name, segment),
				"use capitalized Ruby constants separated by ::, such as Ovirt::SDK::V4",
			)
		}
	}
	return strings.Join(segments, "::"), nil
}

func trimAll(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// functional option pattern ---------------------------------------------------

type Option func(*Options)

func WithModelFile(f string) Option    { return func(o *Options) { o.ModelFile = f } }
func WithOutDir(d string) Option       { return func(o *Options) { o.OutDir = d } }
func WithModuleName(n string) Option   { return func(o *Options) { o.ModuleName = n } }
func WithVersion(v string) Option      { return func(o *Options) { o.Version = v } }
func WithManifestFile(f string) Option { return func(o *Options) { o.ManifestFile = f } }
func WithReservedWords(words ...string) Option {
	return func(o *Options) { o.ReservedWords = append(o.ReservedWords, words...) }
}
func WithAttributes(attrs ...string) Option {
	return func(o *Options) { o.Attributes = append(o.Attributes, attrs...) }
}
func WithIncludeTypes(patterns ...string) Option {
	return func(o *Options) { o.IncludeTypes = append(o.IncludeTypes, patterns...) }
}
func WithExcludeTypes(patterns ...string) Option {
	return func(o *Options) { o.ExcludeTypes = append(o.ExcludeTypes, patterns...) }
}
func WithoutForwardDeclarations() Option { return func(o *Options) { o.ForwardDeclarations = false } }
func WithVerify() Option                 { return func(o *Options) { o.Verify = true } }
func WithSchema(s schema.Names) Option   { return func(o *Options) { o.Schema = s } }
func WithLogger(l *slog.Logger) Option   { return func(o *Options) { o.Logger = l } }
