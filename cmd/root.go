package cmd

import (
	"context"
	"log/slog"

	"github.com/jsphweid/fretchord/config"
	"github.com/jsphweid/fretchord/constants"
	"github.com/jsphweid/fretchord/logging"
	"github.com/spf13/cobra"
)

var (
	configPath string
	debug      bool

	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "fretchord",
	Short: "Places chords on fretted instruments",
	Long: `fretchord maps chords onto the strings and frets of a five-string guitar,
a ukulele or any tuning from the config file, and spreads compact chords
into wider voicings.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", constants.GetConfigPath(), "path to fretchord.yaml")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log at debug level")
}

// setup loads config, installs the logger and registers custom tunings.
func setup() error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if debug {
		level = slog.LevelDebug
	}
	logging.Init(level)

	if err := cfg.RegisterInstruments(); err != nil {
		return err
	}
	slog.Debug("config loaded", "path", configPath, "instruments", len(cfg.Instruments))
	return nil
}

func Execute() {
	cobra.CheckErr(rootCmd.ExecuteContext(context.Background()))
}
