package cli

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mzqctools/mzqc/pkg/buildinfo"
	"github.com/mzqctools/mzqc/pkg/errors"
	"github.com/mzqctools/mzqc/pkg/mzqc"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	output    string // output file path
	schema    string // schema file for validation before writing
	label     string // run label; defaults to the CSV base name
	accession string // metric accession for every row
	name      string // metric name for every row
	unit      string // metric unit, if any
	location  string // input file location recorded in the document
}

// newConvertCmd creates the convert command, which builds an mzQC
// document from a CSV metric export. Each data row becomes one
// QualityMetric whose value is an object keyed by the CSV header.
func newConvertCmd() *cobra.Command {
	opts := convertOpts{
		accession: "QC:0000000",
		name:      "table metric",
	}

	cmd := &cobra.Command{
		Use:   "convert <csv>",
		Short: "Build an mzQC document from a CSV metric export",
		Long: `Convert reads a CSV file with a header row and emits an mzQC document
containing one run quality. Every data row becomes a quality metric
whose value is an object mapping column names to cell contents.

Cell contents are carried verbatim as strings; convert does not guess
numeric types.

Examples:
  mzqc convert ids.csv -o ids.mzqc
  mzqc convert ids.csv -o ids.mzqc --label run1 --schema mzqc_schema.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output mzQC file path (required)")
	cmd.Flags().StringVarP(&opts.schema, "schema", "s", "", "mzQC schema file to validate against before writing")
	cmd.Flags().StringVar(&opts.label, "label", "", "run label (defaults to the CSV base name)")
	cmd.Flags().StringVar(&opts.accession, "accession", opts.accession, "CV accession applied to each metric")
	cmd.Flags().StringVar(&opts.name, "name", opts.name, "metric name applied to each metric")
	cmd.Flags().StringVar(&opts.unit, "unit", "", "metric unit, if any")
	cmd.Flags().StringVar(&opts.location, "location", "", "input file location recorded in the document")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func runConvert(cmd *cobra.Command, csvPath string, opts convertOpts) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	metrics, err := metricsFromCSV(csvPath, opts)
	if err != nil {
		return err
	}
	logger.Debugf("read %d metrics from %s", len(metrics), csvPath)

	label := opts.label
	if label == "" {
		label = strings.TrimSuffix(filepath.Base(csvPath), filepath.Ext(csvPath))
	}
	location := opts.location
	if location == "" {
		abs, err := filepath.Abs(csvPath)
		if err != nil {
			abs = csvPath
		}
		location = "file://" + abs
	}

	f := mzqc.NewFile()
	f.Description = fmt.Sprintf("converted from %s", filepath.Base(csvPath))
	f.ControlledVocabularies = []mzqc.ControlledVocabulary{
		{
			ID:      "QC",
			Name:    "Proteomics Standards Initiative Quality Control Ontology",
			URI:     "https://github.com/HUPO-PSI/mzQC/blob/master/cv/qc-cv.obo",
			Version: "0.1.0",
		},
	}
	f.RunQualities = []mzqc.RunQuality{
		{
			Label: label,
			InputFiles: []mzqc.InputFile{
				{Location: location, Name: filepath.Base(csvPath)},
			},
			AnalysisSoftware: []mzqc.AnalysisSoftware{
				{
					Accession: "MS:1009001",
					Name:      "mzqc",
					Version:   buildinfo.Version,
					URI:       "https://github.com/mzqctools/mzqc",
				},
			},
			Metrics: metrics,
		},
	}

	if err := f.SaveValidated(opts.output, schemaFromFlag(opts.schema)); err != nil {
		return err
	}

	prog.done(fmt.Sprintf("Converted %d rows", len(metrics)))
	printSuccess("Wrote %s (%d metrics)", opts.output, len(metrics))
	return nil
}

// metricsFromCSV reads a header-prefixed CSV file and converts each data
// row to a QualityMetric with an object payload.
func metricsFromCSV(path string, opts convertOpts) ([]mzqc.QualityMetric, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open %s", path)
	}
	defer file.Close()

	r := csv.NewReader(file)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "parse CSV %s", path)
	}
	if len(rows) < 2 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s needs a header row and at least one data row", path)
	}

	header := rows[0]
	metrics := make([]mzqc.QualityMetric, 0, len(rows)-1)
	for _, row := range rows[1:] {
		value := make(map[string]any, len(header))
		for i, col := range header {
			if i < len(row) {
				value[col] = row[i]
			}
		}
		metrics = append(metrics, mzqc.QualityMetric{
			Accession: opts.accession,
			Name:      opts.name,
			Value:     value,
			Unit:      opts.unit,
		})
	}
	return metrics, nil
}
