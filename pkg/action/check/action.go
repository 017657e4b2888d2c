package check

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/cmmoran/writergen/pkg/generator"
	"github.com/cmmoran/writergen/pkg/manifest"
	"github.com/cmmoran/writergen/pkg/model"
)

// Change is a generated file whose content on disk differs. Edited is set
// when the file on disk does not match the hash recorded by the last run, so it
// was changed by hand rather than left behind by a model change.
type Change struct {
	Path   string
	Diff   string
	Edited bool
}

// Report compares a fresh generation with the files in the output directory.
type Report struct {
	Missing []string
	Changed []Change
	Orphans []string
}

// Clean reports whether the output directory is up to date.
func (r *Report) Clean() bool {
	return len(r.Missing) == 0 && len(r.Changed) == 0 && len(r.Orphans) == 0
}

// Check loads the model named by opts and compares the generated files with
// the content of opts.OutDir on fs. Nothing is written.
func Check(fs afero.Fs, opts *generator.Options) (*Report, error) {
	gen, err := generator.NewWithOpts(opts)
	if err != nil {
		return nil, err
	}
	if gen.Opts.ModelFile == "" {
		return nil, errors.WithHint(errors.New("no model file"), "set model_file in the config or pass --model")
	}
	m, err := model.Load(gen.Opts.ModelFile)
	if err != nil {
		return nil, err
	}
	return Run(fs, gen, m)
}

// Run generates m in memory and diffs every document against fs.
func Run(fs afero.Fs, gen *generator.Generator, m *model.Model) (*Report, error) {
	res, err := gen.Generate(m)
	if err != nil {
		return nil, errors.Wrap(err, "generate writers")
	}

	outDir := gen.Opts.OutDir
	mf, err := manifest.Load(fs, filepath.Join(outDir, gen.Opts.ManifestFile))
	if err != nil {
		return nil, err
	}

	report := &Report{}
	files := make([]manifest.File, 0, len(res.Documents))
	for _, doc := range res.Documents {
		files = append(files, manifest.File{Path: doc.Path()})

		current, err := afero.ReadFile(fs, filepath.Join(outDir, filepath.FromSlash(doc.Path())))
		if errors.Is(err, os.ErrNotExist) {
			report.Missing = append(report.Missing, doc.Path())
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", doc.Path())
		}
		if diff := cmp.Diff(string(current), string(doc.Bytes())); diff != "" {
			recorded, ok := mf.Lookup(doc.Path())
			report.Changed = append(report.Changed, Change{
				Path:   doc.Path(),
				Diff:   diff,
				Edited: ok && recorded.SHA256 != manifest.Hash(current),
			})
		}
	}

	report.Orphans = mf.Orphans(files)
	return report, nil
}
