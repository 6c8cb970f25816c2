package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/schemadelta/schemadelta/cmd/util"
	"github.com/schemadelta/schemadelta/internal/dialect"
	"github.com/schemadelta/schemadelta/internal/fingerprint"
	"github.com/schemadelta/schemadelta/internal/logger"
	"github.com/schemadelta/schemadelta/internal/reader"
	"github.com/schemadelta/schemadelta/internal/snapshot"
)

var SnapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Save a database schema to a snapshot file",
	Long: `Read the schema of a live database and write it as a JSON or YAML snapshot.
A snapshot can stand in for a database on either side of compare.`,
	RunE:         runSnapshot,
	SilenceUsage: true,
}

var flagNames = []string{"dsn", "dialect", "owner", "output", "format"}

func init() {
	f := SnapshotCmd.Flags()
	f.String("dsn", "", "Database DSN (env: "+util.EnvDSN+")")
	f.String("dialect", "", "Database dialect: sqlserver, oracle, postgres, mysql or sqlite")
	f.String("owner", "", "Owner (schema) to read; empty reads the connection default")
	f.String("output", "", "Output file path (default stdout)")
	f.String("format", "", "Snapshot format: json or yaml (default from the output extension, else json)")

	for _, name := range flagNames {
		viper.BindPFlag("snapshot."+name, f.Lookup(name))
	}
}

// Config holds the settings of one snapshot run
type Config struct {
	DSN     string
	Dialect string
	Owner   string
	Output  string
	Format  string
}

func configFromViper() *Config {
	return &Config{
		DSN:     util.ValueOrEnv(viper.GetString("snapshot.dsn"), util.EnvDSN),
		Dialect: viper.GetString("snapshot.dialect"),
		Owner:   viper.GetString("snapshot.owner"),
		Output:  viper.GetString("snapshot.output"),
		Format:  viper.GetString("snapshot.format"),
	}
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	return Run(cmd.Context(), configFromViper(), cmd.OutOrStdout())
}

// Run reads the database named by cfg.DSN and writes its snapshot to
// cfg.Output or out
func Run(ctx context.Context, cfg *Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.DSN == "" {
		return fmt.Errorf("--dsn is required")
	}
	if cfg.Dialect == "" {
		return fmt.Errorf("--dialect is required")
	}
	d, err := dialect.Parse(cfg.Dialect)
	if err != nil {
		return err
	}
	format, err := resolveFormat(cfg.Format, cfg.Output)
	if err != nil {
		return err
	}

	s, err := reader.Load(ctx, d, cfg.DSN, cfg.Owner)
	if err != nil {
		return fmt.Errorf("failed to read database: %w", err)
	}

	var buf bytes.Buffer
	if err := snapshot.Encode(&buf, s, format); err != nil {
		return err
	}
	if err := util.WriteOutput(cfg.Output, buf.String(), out); err != nil {
		return err
	}

	fp, err := fingerprint.Compute(s)
	if err != nil {
		return err
	}
	logger.Get().Debug("Snapshot written",
		"dialect", d.String(),
		"owner", s.Owner,
		"tables", len(s.Tables),
		"fingerprint", fp.Short(),
	)
	return nil
}

// resolveFormat prefers the explicit format, then the output extension
func resolveFormat(name, output string) (snapshot.Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return snapshot.FormatJSON, nil
	case "yaml", "yml":
		return snapshot.FormatYAML, nil
	case "":
		if output == "" || output == "stdout" {
			return snapshot.FormatJSON, nil
		}
		return snapshot.FormatFromPath(output)
	}
	return "", fmt.Errorf("unknown snapshot format %q: want json or yaml", name)
}
