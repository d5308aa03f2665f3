package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jsphweid/fretchord/pitch"
	"github.com/jsphweid/fretchord/session"
	"github.com/jsphweid/fretchord/voicing"
	"github.com/spf13/cobra"
)

var spreadFor string

func init() {
	spreadCmd.Flags().StringVar(&spreadFor, "for", "", "use the voicing for this instrument (ukulele has its own)")
	rootCmd.AddCommand(spreadCmd)
}

var spreadCmd = &cobra.Command{
	Use:   "spread PITCH...",
	Short: "Spreads a three or four note chord into a wider voicing",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chord, err := pitch.ParseChord(args)
		if err != nil {
			return err
		}
		voiced, err := session.VoicingFor(spreadFor)(chord)
		if errors.Is(err, voicing.ErrUnsupportedSize) {
			slog.Warn("spread skipped, chord returned unchanged", "reason", err)
		} else if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(voiced.Strings(), " "))
		return nil
	},
}
