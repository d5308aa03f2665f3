package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/jsphweid/fretchord/instrument"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(instrumentsCmd)
}

var instrumentsCmd = &cobra.Command{
	Use:   "instruments",
	Short: "Lists the known tunings",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, inst := range instrument.All() {
			fmt.Fprintf(w, "%s\t%s\t%d frets\n", inst.Name, inst.Opens(), inst.MaxFrets())
		}
		return w.Flush()
	},
}
