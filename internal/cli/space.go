package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/piwi3910/TrayLayout/internal/model"
)

func newSpaceCmd(o *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "space <tray>",
		Short: "Calculate the floor width occupied by a tray's cables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := o.evaluateTray(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), ev.Space)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Tray:           %s (%s)\n", ev.Tray.Name, ev.Tray.Purpose)
			fmt.Fprintf(w, "Occupied width: %s\n", ev.Space.OccupiedText)
			fmt.Fprintf(w, "Free space:     %s\n", ev.Space.AvailableText)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newWeightsCmd(o *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "weights <tray>",
		Short: "Calculate supports, tray and cable loads",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := o.evaluateTray(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), ev.Weights)
			}
			printWeights(cmd.OutOrStdout(), ev.Weights)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func printWeights(w io.Writer, r model.WeightReport) {
	section := func(title string, rows ...[2]string) {
		fmt.Fprintln(w, title)
		for _, row := range rows {
			fmt.Fprintf(w, "  %-17s %s\n", row[0]+":", row[1])
		}
	}
	section("Supports",
		[2]string{"Count", r.Supports.CountText},
		[2]string{"Weight", r.Supports.TotalWeightText},
		[2]string{"Weight per meter", r.Supports.WeightPerMeterText},
	)
	section("Tray own weight",
		[2]string{"Weight per meter", r.Own.WeightPerMeterText},
		[2]string{"Weight load", r.Own.WeightLoadText},
	)
	section("Cables weight",
		[2]string{"Weight per meter", r.Cables.WeightPerMeterText},
		[2]string{"Weight load", r.Cables.WeightLoadText},
	)
	section("Total weight",
		[2]string{"Weight per meter", r.Total.WeightPerMeterText},
		[2]string{"Weight load", r.Total.WeightLoadText},
	)
}
