package cmd

import (
	"fmt"
	"log/slog"

	"github.com/jsphweid/fretchord/chord"
	"github.com/jsphweid/fretchord/file"
	"github.com/jsphweid/fretchord/fretboard"
	"github.com/jsphweid/fretchord/midi"
	"github.com/jsphweid/fretchord/render"
	"github.com/jsphweid/fretchord/session"
	"github.com/jsphweid/fretchord/util"
	"github.com/spf13/cobra"
)

var (
	importMax        int
	importInstrument string
)

func init() {
	importCmd.Flags().IntVar(&importMax, "max", 0, "stop after this many files (0 for all)")
	importCmd.Flags().StringVarP(&importInstrument, "instrument", "i", "", "instrument name (default from config)")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import FILE_OR_DIR...",
	Short: "Places every chord of MIDI files on an instrument",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := file.Collect(args, importMax)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		nums := util.GetKeys(files)
		for i, num := range nums {
			path := files[num]
			slog.Info("processing midi file", "n", i+1, "of", len(nums), "path", path)
			chords, err := midi.ReadChords(path)
			if err != nil {
				slog.Warn("skipping file", "path", path, "err", err)
				continue
			}
			fmt.Fprintf(out, "# %s\n", path)
			for _, tc := range chord.DropRepeats(chords) {
				res, err := session.Run(session.Request{
					Instrument: pickInstrument(importInstrument),
					Chord:      chord.FromKeys(tc.Keys),
					Policy:     fretboard.PolicyBestFit,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%8dms  %s\n", tc.OffsetMs, render.Chord(render.DefaultStyles(), res.Voiced, res.Assignment.Unassigned))
			}
		}
		return nil
	},
}
