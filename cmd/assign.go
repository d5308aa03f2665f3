package cmd

import (
	"fmt"

	"github.com/jsphweid/fretchord/fretboard"
	"github.com/jsphweid/fretchord/pitch"
	"github.com/jsphweid/fretchord/render"
	"github.com/jsphweid/fretchord/session"
	"github.com/spf13/cobra"
)

var (
	instrumentName string
	spreadFirst    bool
	policyName     string
	plain          bool
	showFrets      int
)

func init() {
	assignCmd.Flags().StringVarP(&instrumentName, "instrument", "i", "", "instrument name (default from config)")
	assignCmd.Flags().BoolVarP(&spreadFirst, "spread", "s", false, "spread the chord before placing it")
	assignCmd.Flags().StringVar(&policyName, "policy", "best-fit", "placement policy: best-fit or note-first")
	assignCmd.Flags().BoolVar(&plain, "plain", false, "print a plain listing instead of the board")
	assignCmd.Flags().IntVar(&showFrets, "frets", 0, "number of frets to draw (0 for all)")
	rootCmd.AddCommand(assignCmd)
}

var assignCmd = &cobra.Command{
	Use:   "assign PITCH...",
	Short: "Places a chord on an instrument",
	Long: `Places a chord on an instrument and draws the board. Pitches are written
with sharps and an octave, e.g. D4 F#4 A4.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chord, err := pitch.ParseChord(args)
		if err != nil {
			return err
		}
		policy, err := fretboard.ParsePolicy(policyName)
		if err != nil {
			return err
		}
		res, err := session.Run(session.Request{
			Instrument: pickInstrument(instrumentName),
			Chord:      chord,
			Spread:     spreadFirst,
			Policy:     policy,
		})
		if err != nil {
			return err
		}
		printResult(cmd, res)
		return nil
	},
}

func pickInstrument(name string) string {
	if name != "" {
		return name
	}
	return cfg.DefaultInstrument
}

func printResult(cmd *cobra.Command, res session.Result) {
	out := cmd.OutOrStdout()
	if plain {
		fmt.Fprint(out, render.Summary(res.Instrument, res.Assignment))
		return
	}
	st := render.DefaultStyles()
	fmt.Fprintf(out, "%s (%s)\n", render.Chord(st, res.Voiced, res.Assignment.Unassigned), res.Instrument.Name)
	if res.Warning != nil {
		fmt.Fprintf(out, "warning: %v\n", res.Warning)
	}
	fmt.Fprintln(out, render.Fretboard(st, res.Instrument, res.Assignment, showFrets))
}
