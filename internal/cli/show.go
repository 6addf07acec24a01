package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mzqctools/mzqc/pkg/mzqc"
)

// showOpts holds the command-line flags for the show command.
type showOpts struct {
	schema string // schema file path; empty disables validation
}

// newShowCmd creates the show command, which loads an mzQC file and
// prints its metadata, content counts, and quality metrics in a
// human-readable format.
func newShowCmd() *cobra.Command {
	var opts showOpts

	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Display document info and quality metrics from an mzQC file",
		Long: `Show loads an mzQC file and prints its metadata, content counts, and
every quality metric with its rendered value.

Validation runs when a schema file is given via --schema or the config
file; otherwise the document is only checked for well-formed JSON.

Examples:
  mzqc show run1.mzqc
  mzqc show run1.mzqc --schema mzqc_schema.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.schema, "schema", "s", "", "mzQC schema file for structural validation")
	return cmd
}

func runShow(cmd *cobra.Command, path string, opts showOpts) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	schema := schemaFromFlag(opts.schema)
	if schema != nil {
		logger.Debugf("validating against schema %s", schema.Path())
	}

	f, err := mzqc.LoadValidated(path, schema)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Loaded %s", path))

	printSection("mzQC File Info")
	fmt.Println("Version:       " + styleHighlight.Render(f.Version))
	fmt.Println("Creation date: " + styleHighlight.Render(f.CreationDate))
	if f.ContactName != "" {
		fmt.Println("Contact:       " + f.ContactName)
	}
	if f.Description != "" {
		fmt.Println("Description:   " + f.Description)
	}

	printSection("File Contents")
	fmt.Printf("Run qualities:         %d\n", len(f.RunQualities))
	fmt.Printf("Set qualities:         %d\n", len(f.SetQualities))
	fmt.Printf("Input files:           %d\n", f.InputFileCount())
	fmt.Printf("Total quality metrics: %d\n", f.MetricCount())

	if len(f.RunQualities) > 0 {
		printSection("Run Quality Metrics")
		for i, run := range f.RunQualities {
			fmt.Printf("Run %d (%s): %d metrics\n", i+1, run.Label, len(run.Metrics))
			printMetrics(run.Metrics)
		}
	}

	if len(f.SetQualities) > 0 {
		printSection("Set Quality Metrics")
		for i, set := range f.SetQualities {
			fmt.Printf("Set %d (%s): %d metrics\n", i+1, set.Label, len(set.Metrics))
			printMetrics(set.Metrics)
		}
	}

	fmt.Println()
	printSuccess("Parsed %s with %d quality metrics", path, f.MetricCount())
	return nil
}

// printMetrics lists metrics with accession, unit, and rendered value.
func printMetrics(metrics []mzqc.QualityMetric) {
	for j, m := range metrics {
		line := fmt.Sprintf("  [%d] %s", j+1, m.Name)
		if m.Accession != "" {
			line += " " + styleDim.Render("("+m.Accession+")")
		}
		if m.Unit != "" {
			line += " [" + m.Unit + "]"
		}
		fmt.Println(line + " = " + renderValue(m.Value, 2))
	}
}
