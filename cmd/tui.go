package cmd

import (
	"github.com/jsphweid/fretchord/tui"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(tuiCmd)
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive fretboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(cfg.DefaultInstrument)
	},
}
