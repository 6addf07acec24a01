package cli

import (
	"github.com/spf13/cobra"

	"github.com/mzqctools/mzqc/pkg/errors"
	"github.com/mzqctools/mzqc/pkg/mzqc"
)

// newValidateCmd creates the validate command, which checks an mzQC file
// against the structural presence rules.
func newValidateCmd() *cobra.Command {
	var schemaPath string

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check an mzQC file against the structural schema rules",
		Long: `Validate parses an mzQC file and checks its document shape: the mzQC
wrapper, the required version and creationDate properties, the presence
of at least one quality collection, and controlledVocabularies.

This is structural validation only, not full JSON-Schema validation.
The schema file is required (via --schema or the config file) so that
validation always runs against a named schema artifact.

Exit status is non-zero when the file does not conform.

Examples:
  mzqc validate run1.mzqc --schema mzqc_schema.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0], schemaPath)
		},
	}

	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "mzQC schema file (required unless set in config)")
	return cmd
}

func runValidate(cmd *cobra.Command, path, schemaPath string) error {
	logger := loggerFromContext(cmd.Context())

	schema := schemaFromFlag(schemaPath)
	if schema == nil {
		return errors.New(errors.ErrCodeInvalidInput, "no schema file given; use --schema or set schema_path in the config file")
	}
	logger.Debugf("validating %s against %s", path, schema.Path())

	f, err := mzqc.LoadValidated(path, schema)
	if err != nil {
		if errors.Is(err, errors.ErrCodeSchema) {
			printError("%s does not conform: %s", path, errors.UserMessage(err))
		}
		return err
	}

	printSuccess("%s is structurally valid (%d run qualities, %d set qualities, %d metrics)",
		path, len(f.RunQualities), len(f.SetQualities), f.MetricCount())
	return nil
}
