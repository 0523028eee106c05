// Package cmd assembles the command line interface of the video enrichment API.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tphakala/video-enrichment-api/cmd/config"
	"github.com/tphakala/video-enrichment-api/cmd/migrate"
	"github.com/tphakala/video-enrichment-api/cmd/serve"
	"github.com/tphakala/video-enrichment-api/cmd/version"
	"github.com/tphakala/video-enrichment-api/internal/conf"
	"github.com/tphakala/video-enrichment-api/internal/logger"
)

// commands that run without loading settings
var skipSetup = map[string]bool{
	"version": true,
	"init":    true,
	"help":    true,
}

// RootCommand creates and returns the root command. settings is filled in
// before any subcommand runs.
func RootCommand(settings *conf.Settings) *cobra.Command {
	v := viper.New()

	var (
		configFile string
		debug      bool
		central    *logger.CentralLogger
	)

	rootCmd := &cobra.Command{
		Use:          "video-enrichment-api",
		Short:        "Video enrichment REST API",
		SilenceUsage: true,
	}

	// Set up the global flags for the root command.
	setupFlags(rootCmd, v, &configFile, &debug)

	rootCmd.AddCommand(
		serve.Command(settings),
		migrate.Command(settings),
		config.Command(settings),
		version.Command(),
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if skipSetup[cmd.Name()] {
			return nil
		}

		loaded, err := conf.Load(v, configFile)
		if err != nil {
			return err
		}
		if debug {
			loaded.Logging.DefaultLevel = "debug"
			if loaded.Logging.Console != nil {
				loaded.Logging.Console.Level = "debug"
			}
		}
		*settings = *loaded

		central, err = logger.NewCentralLogger(&settings.Logging)
		if err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
		logger.SetGlobal(central)
		return nil
	}

	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if central == nil {
			return nil
		}
		return central.Close()
	}

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, v *viper.Viper, configFile *string, debug *bool) {
	rootCmd.PersistentFlags().StringVarP(configFile, "config", "c", "", "Path to config.yaml (default: search ./, ~/.config/video-enrichment-api, /etc/video-enrichment-api)")
	rootCmd.PersistentFlags().BoolVarP(debug, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("log-level", "", "Default log level: debug, info, warn or error")

	// flag values win over the file and the environment once set
	if err := v.BindPFlag("logging.default_level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		panic(fmt.Sprintf("error binding flags: %v", err))
	}
}
