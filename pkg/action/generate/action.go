package generate

import (
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"

	"github.com/cmmoran/writergen/internal/buffer"
	"github.com/cmmoran/writergen/pkg/generator"
	"github.com/cmmoran/writergen/pkg/manifest"
	"github.com/cmmoran/writergen/pkg/model"
)

// Progress is told about every stored file.
type Progress func(path string, n, total int)

// Summary describes a completed run.
type Summary struct {
	OutDir  string
	Files   []string
	Orphans []string
	Cycles  [][]string
	Skipped []string
}

// Generate loads the model named by opts, writes every generated file under
// opts.OutDir on fs and records them in the manifest. written is called after
// each file is stored with the number of files stored so far and the total;
// it may be nil.
func Generate(fs afero.Fs, opts *generator.Options, written Progress) (*Summary, error) {
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
	return Run(fs, gen, m, written)
}

// Run generates m with gen and commits the result to fs.
func Run(fs afero.Fs, gen *generator.Generator, m *model.Model, written Progress) (*Summary, error) {
	log := gen.Opts.Logger
	res, err := gen.Generate(m)
	if err != nil {
		return nil, errors.Wrap(err, "generate writers")
	}

	outDir := gen.Opts.OutDir
	n := 0
	err = res.Commit(fs, outDir, func(doc *buffer.Document) {
		n++
		log.Debug("wrote file", "path", doc.Path(), "source", doc.Source)
		if written != nil {
			written(doc.Path(), n, len(res.Documents))
		}
	})
	if err != nil {
		return nil, err
	}

	files := make([]manifest.File, 0, len(res.Documents))
	for _, doc := range res.Documents {
		files = append(files, manifest.File{Path: doc.Path(), SHA256: manifest.Hash(doc.Bytes())})
	}
	manifestPath := filepath.Join(outDir, gen.Opts.ManifestFile)
	mf, err := manifest.Load(fs, manifestPath)
	if err != nil {
		return nil, err
	}
	orphans := mf.Record(gen.Names().ModuleName(), gen.Opts.Version, files)
	if err := mf.Save(fs, manifestPath); err != nil {
		return nil, err
	}
	for _, o := range orphans {
		log.Warn("file from a previous run was not regenerated", "path", o)
	}

	log.Info("generated writers", "out", outDir, "files", len(files), "cycles", len(res.Cycles))
	return &Summary{
		OutDir:  outDir,
		Files:   res.Paths(),
		Orphans: orphans,
		Cycles:  res.Cycles,
		Skipped: res.Skipped,
	}, nil
}
