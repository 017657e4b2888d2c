package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// File is one generated file, relative to the output directory.
type File struct {
	Path   string `yaml:"path" json:"path"`
	SHA256 string `yaml:"sha256" json:"sha256"`
}

// Manifest records the files produced by the last generation run.
type Manifest struct {
	Module          string `yaml:"module" json:"module"`
	CurrentVersion  string `yaml:"current_version,omitempty" json:"current_version,omitempty"`
	PreviousVersion string `yaml:"previous_version,omitempty" json:"previous_version,omitempty"`
	Files           []File `yaml:"files" json:"files"`
}

// Hash returns the hex encoded sha256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Load reads a manifest from the provided path. If the file does not exist,
// an empty manifest is returned.
func Load(fs afero.Fs, path string) (*Manifest, error) {
	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read manifest")
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "unmarshal manifest")
	}

	return &m, nil
}

// Save writes the manifest to the provided path, creating parent directories as needed.
func (m *Manifest) Save(fs afero.Fs, path string) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create manifest directory")
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "marshal manifest")
	}

	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return errors.Wrap(err, "write manifest")
	}

	return nil
}

// Record replaces the file list with files, sorted by path, and moves the
// version pointers. It returns the previously recorded paths that are not
// part of files anymore.
func (m *Manifest) Record(module, version string, files []File) (orphans []string) {
	orphans = m.Orphans(files)
	if version != "" && version != m.CurrentVersion {
		if m.CurrentVersion != "" {
			m.PreviousVersion = m.CurrentVersion
		}
		m.CurrentVersion = version
	}
	m.Module = module
	m.Files = slices.Clone(files)
	slices.SortFunc(m.Files, func(a, b File) int {
		return strings.Compare(a.Path, b.Path)
	})
	return orphans
}

// Orphans returns the recorded paths missing from files, sorted.
func (m *Manifest) Orphans(files []File) []string {
	current := make(map[string]bool, len(files))
	for _, f := range files {
		current[f.Path] = true
	}
	var out []string
	for _, f := range m.Files {
		if !current[f.Path] {
			out = append(out, f.Path)
		}
	}
	slices.Sort(out)
	return out
}

// Lookup returns the recorded entry for path, if present.
func (m *Manifest) Lookup(path string) (File, bool) {
	for _, f := range m.Files {
		if f.Path == path {
			return f, true
		}
	}
	return File{}, false
}
