package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mzqctools/mzqc/pkg/buildinfo"
	"github.com/mzqctools/mzqc/pkg/mzqc"
)

// Execute runs the mzqc CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (show,
// validate, convert, cv), configures logging based on the --verbose
// flag, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands
// via loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "mzqc",
		Short:        "mzqc reads, validates, and writes mzQC quality-control files",
		Long:         `mzqc is a CLI tool for working with mzQC files, the PSI standard JSON container for mass-spectrometry quality-control metrics. It inspects and validates documents, converts tabular QC exports, and resolves controlled-vocabulary accessions.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newShowCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newConvertCmd())
	root.AddCommand(newCvCmd())

	return root.ExecuteContext(ctx)
}

// schemaFromFlag resolves the effective schema cache for a command:
// the --schema flag when given, otherwise the config default, otherwise
// nil (validation disabled).
func schemaFromFlag(flag string) *mzqc.SchemaCache {
	if flag != "" {
		return mzqc.NewSchemaCache(flag)
	}
	cfg, err := loadConfig()
	if err != nil || cfg.SchemaPath == "" {
		return nil
	}
	return mzqc.NewSchemaCache(cfg.SchemaPath)
}
