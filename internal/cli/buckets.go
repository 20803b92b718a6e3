package cli

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/TrayLayout/internal/engine"
	"github.com/piwi3910/TrayLayout/internal/model"
)

func newBucketsCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buckets [tray]",
		Short: "List diameter buckets, or a tray's bundles with their rows and columns",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			defer tw.Flush()

			if len(args) == 0 {
				fmt.Fprintln(tw, "BUCKET\tMAX DIAMETER [mm]")
				for _, b := range model.Buckets() {
					maxD := "-"
					if !math.IsInf(b.Max(), 1) {
						maxD = model.FormatNumber(b.Max())
					}
					fmt.Fprintf(tw, "%s\t%s\n", b.Label(), maxD)
				}
				return nil
			}

			ev, err := o.evaluateTray(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			usable := ev.Tray.UsableHeight()
			fmt.Fprintln(tw, "PURPOSE\tBUCKET\tCABLES\tROWS\tCOLUMNS")
			for _, p := range ev.Bundles.Purposes() {
				for _, b := range ev.Bundles.Bundles(p) {
					rows, cols, err := engine.PlanRowsColumns(usable, b.Cables, p)
					if err != nil {
						return err
					}
					fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\n", p, b.Bucket.Label(), len(b.Cables), rows, cols)
				}
			}
			return nil
		},
	}
	return cmd
}
