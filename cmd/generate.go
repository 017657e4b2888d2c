package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cmmoran/writergen/pkg/action/generate"
	"github.com/cmmoran/writergen/pkg/names"
)

func init() {
	var generateCmd = NewGenerateCommand()
	rootCmd.AddCommand(generateCmd)
}

// optionFlags maps generator option keys to their flag names.
var optionFlags = map[string]string{
	"model_file":           "model",
	"out_dir":              "output-directory",
	"module_name":          "module",
	"version":              "version",
	"reserved_words":       "reserved-words",
	"attributes":           "attributes",
	"include_types":        "include-types",
	"exclude_types":        "exclude-types",
	"forward_declarations": "forward-declarations",
	"verify":               "verify",
	"manifest_file":        "manifest",
}

func addOptionFlags(flags *pflag.FlagSet) {
	flags.StringP("model", "m", "", "model document (yaml or toml)")
	flags.StringP("output-directory", "o", "lib", "directory to write the generated files")
	flags.String("module", names.DefaultModuleName, "Ruby module of the generated classes")
	flags.String("version", "", "version written to the version file (semantic version)")
	flags.StringSlice("reserved-words", []string{}, "replace the Ruby reserved word list")
	flags.StringSlice("attributes", []string{}, "member names written as XML attributes (default href,id,rel)")
	flags.StringSliceP("include-types", "t", []string{}, "glob patterns of types to generate writers for")
	flags.StringSliceP("exclude-types", "T", []string{}, "glob patterns of types to skip")
	flags.Bool("forward-declarations", true, "generate the aggregate writers file")
	flags.Bool("verify", false, "parse generated files and fail on syntax errors")
	flags.String("manifest", ".writergen.yaml", "manifest file, relative to the output directory")
}

// bindOptionFlags binds the flags of the running command, so commands sharing
// the option keys do not override each other.
func bindOptionFlags(flags *pflag.FlagSet) error {
	for key, flag := range optionFlags {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return err
		}
	}
	return nil
}

func NewGenerateCommand() *cobra.Command {
	var progress bool

	// generateCmd represents the writergen generate command
	var generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "generate writers",
		Long:  "Generate one Ruby writer class per struct type of the model, plus the writers forward declarations file",
		PreRunE: func(c *cobra.Command, args []string) error {
			return bindOptionFlags(c.Flags())
		},
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := loadOptions()
			if err != nil {
				return err
			}

			var bar *progressbar.ProgressBar
			var written generate.Progress
			if progress {
				written = func(path string, n, total int) {
					if bar == nil {
						bar = progressbar.NewOptions(total,
							progressbar.OptionSetDescription("Writing files"),
							progressbar.OptionSetWriter(os.Stderr),
							progressbar.OptionSetWidth(40),
							progressbar.OptionShowCount(),
							progressbar.OptionThrottle(65*time.Millisecond),
							progressbar.OptionOnCompletion(func() {
								fmt.Fprintln(os.Stderr)
							}),
						)
					}
					_ = bar.Add(1)
				}
			}

			summary, err := generate.Generate(afero.NewOsFs(), opts, written)
			if err != nil {
				return err
			}
			for _, o := range summary.Orphans {
				fmt.Fprintf(c.ErrOrStderr(), "stale: %s\n", o)
			}
			fmt.Fprintf(c.OutOrStdout(), "%d files written to %s\n", len(summary.Files), summary.OutDir)
			return nil
		},
	}
	addOptionFlags(generateCmd.Flags())
	generateCmd.Flags().BoolVarP(&progress, "progress", "p", false, "show a progress bar while writing files")

	return generateCmd
}
