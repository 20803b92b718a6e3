package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/piwi3910/TrayLayout/internal/export"
	"github.com/piwi3910/TrayLayout/internal/model"
	"github.com/piwi3910/TrayLayout/internal/project"
)

// outputPath returns explicit when set, otherwise name in the output directory.
func (o *options) outputPath(explicit, name string) string {
	if explicit != "" {
		return explicit
	}
	return filepath.Join(o.config.OutputDir, name)
}

// selectTrays evaluates the named trays, or every tray when all is set.
func (o *options) selectTrays(ctx context.Context, names []string, all bool) ([]project.Evaluation, error) {
	logger := loggerFromContext(ctx)
	p, err := o.loadProject(ctx)
	if err != nil {
		return nil, err
	}
	repo := project.NewRepository(&p)
	if all {
		return repo.EvaluateAll(func(tray model.Tray, err error) {
			logger.Error("tray skipped", "tray", tray.Name, "err", err)
		}), nil
	}
	if len(names) == 0 {
		return nil, errors.New("name at least one tray or use --all")
	}
	out := make([]project.Evaluation, 0, len(names))
	for _, name := range names {
		tray := p.FindTray(name)
		if tray == nil {
			return nil, fmt.Errorf("%w: tray %q not found", model.ErrInvalidArgument, name)
		}
		ev, err := repo.Evaluate(*tray)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, nil
}

func newReportCmd(o *options) *cobra.Command {
	var (
		output string
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "report [tray...]",
		Short: "Write a PDF report with the tray drawing and calculations",
		Long: `Writes one PDF per tray: the cross-section drawing, the occupied width
and weight calculations, a QR code with the tray summary and the list of
cables on the tray. Trays are written to <output-dir>/<tray>.pdf unless
--output names the file for a single tray.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			evs, err := o.selectTrays(ctx, args, all)
			if err != nil {
				return err
			}
			if output != "" && len(evs) != 1 {
				return errors.New("--output needs exactly one tray")
			}

			prog := newProgress(logger)
			var errs []error
			for _, ev := range evs {
				path := o.outputPath(output, export.SafeFileName(ev.Tray.Name)+".pdf")
				err := export.ExportTrayReport(path, export.ReportInput{
					Tray:     ev.Tray,
					Cables:   ev.Cables,
					Bundles:  ev.Bundles,
					Settings: o.settings(),
					Config:   o.config,
					Logger:   logger,
				})
				if err != nil {
					logger.Error("report failed", "tray", ev.Tray.Name, "err", err)
					errs = append(errs, err)
					continue
				}
				logger.Info("wrote report", "tray", ev.Tray.Name, "path", path)
			}
			prog.done("Reports written")
			return errors.Join(errs...)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file for a single tray")
	cmd.Flags().BoolVar(&all, "all", false, "report every tray of the project")
	return cmd
}

func newDXFCmd(o *options) *cobra.Command {
	var (
		output string
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "dxf [tray...]",
		Short: "Write the tray cross-section as a DXF drawing",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			evs, err := o.selectTrays(ctx, args, all)
			if err != nil {
				return err
			}
			if output != "" && len(evs) != 1 {
				return errors.New("--output needs exactly one tray")
			}

			var errs []error
			for _, ev := range evs {
				path := o.outputPath(output, export.SafeFileName(ev.Tray.Name)+".dxf")
				if err := export.ExportDXF(path, ev.Tray, ev.Cables, ev.Bundles, o.settings()); err != nil {
					logger.Error("dxf failed", "tray", ev.Tray.Name, "err", err)
					errs = append(errs, err)
					continue
				}
				logger.Info("wrote drawing", "tray", ev.Tray.Name, "path", path)
			}
			return errors.Join(errs...)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file for a single tray")
	cmd.Flags().BoolVar(&all, "all", false, "draw every tray of the project")
	return cmd
}

// summaries condenses evaluations for the table and label exports.
func summaries(evs []project.Evaluation) []export.TraySummary {
	out := make([]export.TraySummary, len(evs))
	for i, ev := range evs {
		out[i] = export.Summarize(ev.Tray, len(ev.Cables), ev.Space, ev.Weights)
	}
	return out
}

func newLabelsCmd(o *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "labels [tray...]",
		Short: "Write a sheet of QR-coded tray labels",
		Long: `Writes Avery 5160 compatible labels, one per tray. Each QR code holds the
tray summary as JSON. Without tray names every tray is labelled.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			evs, err := o.selectTrays(ctx, args, len(args) == 0)
			if err != nil {
				return err
			}
			path := o.outputPath(output, "tray-labels.pdf")
			if err := export.ExportTrayLabels(path, summaries(evs)); err != nil {
				return err
			}
			loggerFromContext(ctx).Info("wrote labels", "trays", len(evs), "path", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	return cmd
}

func newExportTraysCmd(o *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export-trays",
		Short: "Write every tray with its free space to an Excel table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			evs, err := o.selectTrays(ctx, nil, true)
			if err != nil {
				return err
			}
			path := o.outputPath(output, "trays.xlsx")
			if err := export.ExportTraysExcel(path, summaries(evs)); err != nil {
				return err
			}
			loggerFromContext(ctx).Info("wrote trays table", "trays", len(evs), "path", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	return cmd
}
