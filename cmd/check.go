package cmd

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/cmmoran/writergen/pkg/action/check"
)

// ErrOutOfDate is returned by the check command when files need regenerating.
var ErrOutOfDate = errors.New("generated files are out of date")

func init() {
	rootCmd.AddCommand(NewCheckCommand())
}

func NewCheckCommand() *cobra.Command {
	var showDiff bool

	var checkCmd = &cobra.Command{
		Use:   "check",
		Short: "check generated writers are up to date",
		Long:  "Generate the writers in memory and compare them with the files in the output directory",
		PreRunE: func(c *cobra.Command, args []string) error {
			return bindOptionFlags(c.Flags())
		},
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := loadOptions()
			if err != nil {
				return err
			}
			report, err := check.Check(afero.NewOsFs(), opts)
			if err != nil {
				return err
			}
			out := c.OutOrStdout()
			for _, p := range report.Missing {
				fmt.Fprintf(out, "missing: %s\n", p)
			}
			for _, ch := range report.Changed {
				if ch.Edited {
					fmt.Fprintf(out, "edited: %s\n", ch.Path)
				} else {
					fmt.Fprintf(out, "changed: %s\n", ch.Path)
				}
				if showDiff {
					fmt.Fprintln(out, ch.Diff)
				}
			}
			for _, p := range report.Orphans {
				fmt.Fprintf(out, "stale: %s\n", p)
			}
			if !report.Clean() {
				return ErrOutOfDate
			}
			fmt.Fprintln(out, "up to date")
			return nil
		},
	}
	addOptionFlags(checkCmd.Flags())
	checkCmd.Flags().BoolVarP(&showDiff, "diff", "d", false, "print a diff for every changed file")

	return checkCmd
}
