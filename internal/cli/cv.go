package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mzqctools/mzqc/pkg/errors"
	"github.com/mzqctools/mzqc/pkg/httpcache"
	"github.com/mzqctools/mzqc/pkg/ontology"
)

// cvOpts holds the command-line flags for the cv command.
type cvOpts struct {
	source  string   // OBO file path or URL
	lookups []string // accessions to resolve after loading
	noCache bool     // skip the download cache
}

// newCvCmd creates the cv command, which loads a controlled vocabulary
// in OBO format and optionally resolves accessions against it.
func newCvCmd() *cobra.Command {
	var opts cvOpts

	cmd := &cobra.Command{
		Use:   "cv [obo-file-or-url]",
		Short: "Load a controlled vocabulary and look up terms",
		Long: `Cv loads an OBO-format controlled vocabulary from a local file or a URL
and reports how many terms it defines. With --lookup, each given
accession is resolved and its details printed.

When no source is given, the 'ontology' entry of the config file is
used. Downloads are cached on disk and refreshed after the configured
TTL.

Examples:
  mzqc cv qc-cv.obo
  mzqc cv https://example.org/qc-cv.obo --lookup QC:4000053
  mzqc cv qc-cv.obo -l QC:4000053 -l QC:4000061`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.source = args[0]
			}
			return runCv(cmd, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.lookups, "lookup", "l", nil, "accession(s) to resolve, repeatable")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the download cache")
	return cmd
}

func runCv(cmd *cobra.Command, opts cvOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "read config")
	}

	source := opts.source
	if source == "" {
		source = cfg.Ontology
	}
	if source == "" {
		return errors.New(errors.ErrCodeInvalidInput, "no ontology source: give a file or URL, or set 'ontology' in the config file")
	}

	cache := ontology.NewTermCache()
	count, err := loadCv(ctx, cache, source, cfg, opts.noCache)
	if err != nil {
		printError("Failed to load %s: %s", source, errors.UserMessage(err))
		return err
	}
	logger.Debugf("loaded %d terms from %s", count, source)
	printSuccess("Loaded %d terms from %s", count, source)

	if len(opts.lookups) == 0 {
		return nil
	}

	printSection("Terms")
	missing := 0
	for _, acc := range opts.lookups {
		term, ok := cache.Lookup(strings.TrimSpace(acc))
		if !ok {
			missing++
			printWarning("%s not found", acc)
			continue
		}
		printTerm(term)
	}
	if missing > 0 {
		return errors.New(errors.ErrCodeNotFound, "%d of %d accessions not found", missing, len(opts.lookups))
	}
	return nil
}

// loadCv fills cache from source, treating anything with an HTTP scheme
// as a URL and everything else as a local path.
func loadCv(ctx context.Context, cache *ontology.TermCache, source string, cfg Config, noCache bool) (int, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		return cache.LoadFile(source)
	}

	sp := newSpinner(ctx, fmt.Sprintf("Downloading %s", source))
	sp.start()
	defer sp.stop()

	fetcher := &ontology.Fetcher{}
	if !noCache {
		dir := cfg.CacheDir
		if dir == "" {
			if d, err := cacheDir(); err == nil {
				dir = d
			}
		}
		ttlHours := cfg.CacheTTLHours
		if ttlHours == 0 {
			ttlHours = defaultCacheTTLHours
		}
		var ttl time.Duration
		if ttlHours > 0 {
			ttl = time.Duration(ttlHours) * time.Hour
		}
		if dc, err := httpcache.NewCache(dir, ttl); err == nil {
			fetcher.Cache = dc.Namespace("obo:")
		}
	}
	return cache.LoadURL(ctx, source, fetcher)
}

// printTerm renders one resolved CV term.
func printTerm(term ontology.TermDetails) {
	printDetail("%s %s", styleHighlight.Render(term.Accession), term.Name)
	if term.Definition != "" {
		printDetail("  %s", styleDim.Render(term.Definition))
	}
	if term.ValueType != "" {
		printDetail("  value type: %s", term.ValueType)
	}
	if term.Unit != "" {
		printDetail("  unit: %s", term.Unit)
	}
	for _, parent := range term.ParentTerms {
		printDetail("  is a: %s", parent)
	}
}
