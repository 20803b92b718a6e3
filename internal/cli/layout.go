package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/piwi3910/TrayLayout/internal/engine"
)

func newLayoutCmd(o *options) *cobra.Command {
	var ops bool

	cmd := &cobra.Command{
		Use:   "layout <tray>",
		Short: "Print the cable placements of a tray as JSON",
		Long: `Lays out every bundle of the tray and prints the result as JSON: cable
centres and radii in drawing px, the bottom rows per purpose, the cursors
and the separator. With --ops the recorded draw calls are printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			ev, err := o.evaluateTray(ctx, args[0])
			if err != nil {
				return err
			}

			d := engine.New(o.settings())
			d.Logger = logger

			var out any
			rec := &engine.Recorder{}
			res, layErr := d.Draw(rec, ev.Tray, ev.Cables, ev.Bundles)
			if res == nil {
				return layErr
			}
			out = res
			if ops {
				out = rec.Ops
			}
			if n := purposeFailures(layErr); n > 0 {
				logger.Warn("some purposes were skipped", "tray", ev.Tray.Name, "count", n)
			}
			if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
				return err
			}
			return layErr
		},
	}

	cmd.Flags().BoolVar(&ops, "ops", false, "print draw calls instead of placements")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

// purposeFailures counts the purposes reported in a joined layout error.
func purposeFailures(err error) int {
	if err == nil {
		return 0
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		n := 0
		for _, e := range joined.Unwrap() {
			n += purposeFailures(e)
		}
		return n
	}
	var pe *engine.PurposeError
	if errors.As(err, &pe) {
		return 1
	}
	return 0
}
