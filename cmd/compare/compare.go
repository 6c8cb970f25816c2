package compare

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/schemadelta/schemadelta/cmd/util"
	"github.com/schemadelta/schemadelta/internal/color"
	"github.com/schemadelta/schemadelta/internal/compare"
	"github.com/schemadelta/schemadelta/internal/dialect"
	"github.com/schemadelta/schemadelta/internal/ignore"
	"github.com/schemadelta/schemadelta/internal/logger"
	"github.com/schemadelta/schemadelta/internal/reader"
	"github.com/schemadelta/schemadelta/internal/snapshot"
	"github.com/schemadelta/schemadelta/schema"
)

var CompareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Script the DDL that migrates a base schema to a compare schema",
	Long: `Compare a base schema with a compare schema and print the DDL that turns
the base into the compare schema. Each side is a snapshot file (--base,
--compare) or a live database (--base-dsn, --compare-dsn).`,
	RunE:         runCompare,
	SilenceUsage: true,
}

// flags bound to viper under the "compare." prefix
var flagNames = []string{
	"base", "base-dsn", "compare", "compare-dsn", "dialect", "owner", "map-owner",
	"format", "output", "concurrency", "ignore-file", "no-color",
}

func init() {
	f := CompareCmd.Flags()
	f.String("base", "", "Base snapshot file (.json, .yaml, .yml)")
	f.String("base-dsn", "", "Base database DSN (env: "+util.EnvBaseDSN+")")
	f.String("compare", "", "Compare snapshot file (.json, .yaml, .yml)")
	f.String("compare-dsn", "", "Compare database DSN (env: "+util.EnvCompareDSN+")")
	f.String("dialect", "", "Target dialect; defaults to the provider recorded in the snapshots")
	f.String("owner", "", "Owner (schema) read from databases; empty reads the connection default")
	f.StringSlice("map-owner", nil, "Rename owners on the compare side, as from=to")
	f.String("format", string(FormatSQL), "Output format: sql, json or summary")
	f.String("output", "", "Output file path (default stdout)")
	f.Int("concurrency", util.GetEnvIntWithDefault(util.EnvConcurrency, 1), "Matched tables compared in parallel")
	f.String("ignore-file", ignore.FileName, "File listing objects to leave out of the comparison")
	f.Bool("no-color", false, "Disable colored summary output")
	CompareCmd.MarkFlagsMutuallyExclusive("base", "base-dsn")
	CompareCmd.MarkFlagsMutuallyExclusive("compare", "compare-dsn")

	for _, name := range flagNames {
		viper.BindPFlag("compare."+name, f.Lookup(name))
	}
}

// Config holds the settings of one compare run
type Config struct {
	Base        string
	BaseDSN     string
	Compare     string
	CompareDSN  string
	Dialect     string
	Owner       string
	OwnerMap    []string
	Format      string
	Output      string
	Concurrency int
	IgnoreFile  string
	NoColor     bool
}

func configFromViper() *Config {
	return &Config{
		Base:        viper.GetString("compare.base"),
		BaseDSN:     util.ValueOrEnv(viper.GetString("compare.base-dsn"), util.EnvBaseDSN),
		Compare:     viper.GetString("compare.compare"),
		CompareDSN:  util.ValueOrEnv(viper.GetString("compare.compare-dsn"), util.EnvCompareDSN),
		Dialect:     viper.GetString("compare.dialect"),
		Owner:       viper.GetString("compare.owner"),
		OwnerMap:    viper.GetStringSlice("compare.map-owner"),
		Format:      viper.GetString("compare.format"),
		Output:      viper.GetString("compare.output"),
		Concurrency: viper.GetInt("compare.concurrency"),
		IgnoreFile:  viper.GetString("compare.ignore-file"),
		NoColor:     viper.GetBool("compare.no-color"),
	}
}

func runCompare(cmd *cobra.Command, args []string) error {
	return Run(cmd.Context(), configFromViper(), cmd.OutOrStdout())
}

// Run loads both sides, compares them and writes the chosen format to
// cfg.Output or out
func Run(ctx context.Context, cfg *Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	format, err := ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	mappings, err := parseOwnerMap(cfg.OwnerMap)
	if err != nil {
		return err
	}
	ignoreConfig, err := ignore.Load(cfg.IgnoreFile)
	if err != nil {
		return fmt.Errorf("failed to load ignore file: %w", err)
	}

	var d dialect.Dialect
	explicit := cfg.Dialect != ""
	if explicit {
		if d, err = dialect.Parse(cfg.Dialect); err != nil {
			return err
		}
	} else if cfg.BaseDSN != "" || cfg.CompareDSN != "" {
		return fmt.Errorf("--dialect is required when reading from a database")
	}

	base, target, err := loadInputs(ctx, cfg, d)
	if err != nil {
		return err
	}
	if !explicit {
		if d, err = dialectFromSnapshots(base, target); err != nil {
			return err
		}
	}

	for _, m := range mappings {
		renameOwner(target, m.from, m.to)
	}
	base = ignoreConfig.Apply(base)
	target = ignoreConfig.Apply(target)

	comparator, err := compare.New(base, target, d, compare.WithConcurrency(cfg.Concurrency))
	if err != nil {
		return err
	}
	script := comparator.Execute()
	results := comparator.Results()
	logger.Get().Debug("Comparison complete", "dialect", d.String(), "results", len(results))

	var content string
	switch format {
	case FormatSQL:
		content = script
	case FormatJSON:
		if content, err = renderJSON(d, base, target, results); err != nil {
			return err
		}
	case FormatSummary:
		useColor := !cfg.NoColor && (cfg.Output == "" || cfg.Output == "stdout")
		content = renderSummary(results, color.New(useColor, os.Stdout))
	}
	return util.WriteOutput(cfg.Output, content, out)
}

// loadInputs loads the base and compare sides concurrently
func loadInputs(ctx context.Context, cfg *Config, d dialect.Dialect) (*schema.Schema, *schema.Schema, error) {
	var base, target *schema.Schema
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		base, err = loadInput(ctx, "base", cfg.Base, cfg.BaseDSN, d, cfg.Owner)
		return err
	})
	g.Go(func() error {
		var err error
		target, err = loadInput(ctx, "compare", cfg.Compare, cfg.CompareDSN, d, cfg.Owner)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return base, target, nil
}

func loadInput(ctx context.Context, side, path, dsn string, d dialect.Dialect, owner string) (*schema.Schema, error) {
	log := logger.Get()
	switch {
	case path != "" && dsn != "":
		return nil, fmt.Errorf("--%s and --%s-dsn are mutually exclusive", side, side)
	case path != "":
		log.Debug("Loading snapshot", "side", side, "path", path)
		s, err := snapshot.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s snapshot: %w", side, err)
		}
		return s, nil
	case dsn != "":
		log.Debug("Reading database", "side", side, "dialect", d.String(), "owner", owner)
		s, err := reader.Load(ctx, d, dsn, owner)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s database: %w", side, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("either --%s or --%s-dsn is required", side, side)
	}
}

// dialectFromSnapshots uses the provider recorded in the base snapshot,
// then the compare snapshot
func dialectFromSnapshots(base, target *schema.Schema) (dialect.Dialect, error) {
	for _, s := range []*schema.Schema{base, target} {
		if s.Provider != "" {
			return dialect.Parse(s.Provider)
		}
	}
	return 0, fmt.Errorf("--dialect is required: the snapshots do not record a provider")
}
