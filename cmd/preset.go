package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jsphweid/fretchord/db"
	"github.com/jsphweid/fretchord/fretboard"
	"github.com/jsphweid/fretchord/model"
	"github.com/jsphweid/fretchord/pitch"
	"github.com/jsphweid/fretchord/session"
	"github.com/spf13/cobra"
)

func openPresetStore() (db.PresetStore, error) {
	p := cfg.Presets
	return db.NewDynamoStore(p.Endpoint, p.Region, p.Table)
}

var presetInstrument string
var presetSpread bool

func init() {
	presetSaveCmd.Flags().StringVarP(&presetInstrument, "instrument", "i", "", "instrument to show the preset on")
	presetSaveCmd.Flags().BoolVarP(&presetSpread, "spread", "s", false, "spread the chord when shown")
	presetCmd.AddCommand(presetSaveCmd, presetShowCmd, presetListCmd)
	rootCmd.AddCommand(presetCmd)
}

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Saves and recalls named chords (DynamoDB)",
}

var presetSaveCmd = &cobra.Command{
	Use:   "save NAME PITCH...",
	Short: "Saves a named chord",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openPresetStore()
		if err != nil {
			return err
		}
		p := model.Preset{
			Name:       args[0],
			Chord:      args[1:],
			Instrument: presetInstrument,
			Spread:     presetSpread,
		}
		if err := store.Save(cmd.Context(), p); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved %s: %s\n", p.Name, strings.Join(p.Chord, " "))
		return nil
	},
}

var presetShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Draws a saved chord",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openPresetStore()
		if err != nil {
			return err
		}
		p, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		chord, err := pitch.ParseChord(p.Chord)
		if err != nil {
			return err
		}
		res, err := session.Run(session.Request{
			Instrument: pickInstrument(p.Instrument),
			Chord:      chord,
			Spread:     p.Spread,
			Policy:     fretboard.PolicyBestFit,
		})
		if err != nil {
			return err
		}
		printResult(cmd, res)
		return nil
	},
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists saved chords",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openPresetStore()
		if err != nil {
			return err
		}
		ps, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, p := range ps {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, strings.Join(p.Chord, " "), p.Instrument, time.Unix(p.SavedAt, 0).Format(time.DateTime))
		}
		return w.Flush()
	},
}
