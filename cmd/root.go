package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/schemadelta/schemadelta/cmd/compare"
	"github.com/schemadelta/schemadelta/cmd/snapshot"
	"github.com/schemadelta/schemadelta/internal/logger"
	"github.com/schemadelta/schemadelta/internal/version"
)

var (
	Debug        bool
	configFile   string
	configErr    error
	configLoaded bool
)

var RootCmd = &cobra.Command{
	Use:   "schemadelta",
	Short: "Multi-dialect schema comparison and migration scripts",
	Long: fmt.Sprintf(`schemadelta compares two database schemas and writes the DDL that
migrates one into the other.

Version: %s

Commands:
  compare   Script the changes between two schemas
  snapshot  Save a database schema to a file

Use "schemadelta [command] --help" for more information about a command.`, version.String()),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()
		if configErr != nil {
			return configErr
		}
		if configLoaded {
			logger.Get().Debug("Using config file", "path", viper.ConfigFileUsed())
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	RootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "Enable debug logging")
	RootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ./schemadelta.yaml)")
	RootCmd.AddCommand(compare.CompareCmd)
	RootCmd.AddCommand(snapshot.SnapshotCmd)
	RootCmd.AddCommand(VersionCmd)
}

// initConfig reads the config file and SCHEMADELTA_* environment variables.
// Keys are "<command>.<flag>", so compare --base-dsn maps to compare.base-dsn
// in the file and SCHEMADELTA_COMPARE_BASE_DSN in the environment.
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("schemadelta")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("SCHEMADELTA")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	configErr, configLoaded = nil, false
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			configErr = fmt.Errorf("failed to read config file: %w", err)
		}
		return
	}
	configLoaded = true
}

func setupLogger() {
	logger.SetGlobal(logger.New(os.Stderr, Debug), Debug)
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
