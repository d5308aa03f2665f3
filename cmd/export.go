package cmd

import (
	"fmt"
	"log/slog"

	"github.com/jsphweid/fretchord/pitch"
	"github.com/jsphweid/fretchord/sample"
	"github.com/jsphweid/fretchord/voicing"
	"github.com/spf13/cobra"
)

var (
	exportOut    string
	exportBPM    float64
	exportSpread bool
)

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "chord.mid", "file to write")
	exportCmd.Flags().Float64Var(&exportBPM, "bpm", 90, "tempo")
	exportCmd.Flags().BoolVarP(&exportSpread, "spread", "s", false, "spread the chord first")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export PITCH...",
	Short: "Writes a chord as a MIDI sketch",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chord, err := pitch.ParseChord(args)
		if err != nil {
			return err
		}
		if exportSpread {
			chord, err = voicing.Spread(chord)
			if err != nil {
				slog.Warn("spread skipped, exporting chord as given", "reason", err)
			}
		}
		skipped, err := sample.WriteFile(exportOut, chord.String(), chord, exportBPM)
		if err != nil {
			return err
		}
		if len(skipped) > 0 {
			slog.Warn("pitches outside the MIDI range were left out", "pitches", skipped.String())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", exportOut, chord)
		return nil
	},
}
