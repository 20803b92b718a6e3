package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/TrayLayout/internal/importer"
	"github.com/piwi3910/TrayLayout/internal/model"
	"github.com/piwi3910/TrayLayout/internal/project"
)

func newImportCmd(o *options) *cobra.Command {
	var (
		kind string
		name string
	)

	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Import cable types, cables or trays into a project",
		Long: `Reads CSV or Excel files and adds their records to the project file, which
is created when it does not exist yet. Without --kind an Excel workbook is
read sheet by sheet and each sheet's name decides what it holds; CSV files
always need --kind (cable-types, cables or trays).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			if o.projectPath == "" {
				return errors.New("no project given, use --project")
			}

			p := model.NewProject()
			if _, err := os.Stat(o.projectPath); err == nil {
				if p, err = o.loadProject(ctx); err != nil {
					return err
				}
			} else if name != "" {
				p.Name = name
			}

			var (
				total  importer.ImportResult
				failed int
			)
			for _, path := range args {
				var res importer.ImportResult
				if kind == "" {
					res = importer.ImportWorkbook(path)
				} else {
					k, err := importer.ParseKind(kind)
					if err != nil {
						return err
					}
					res = importer.ImportFile(path, k)
				}
				for _, e := range res.Errors {
					logger.Error("import", "file", path, "msg", e)
				}
				failed += len(res.Errors)
				res.Apply(&p)
				for _, w := range res.Warnings {
					logger.Warn("import", "file", path, "msg", w)
				}
				total.CableTypes = append(total.CableTypes, res.CableTypes...)
				total.Cables = append(total.Cables, res.Cables...)
				total.Trays = append(total.Trays, res.Trays...)
			}

			if err := p.Resolve(); err != nil {
				logger.Warn("project has unresolved cables", "err", err)
			}
			if err := project.SaveProject(o.projectPath, p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d cable types, %d cables and %d trays into %s\n",
				len(total.CableTypes), len(total.Cables), len(total.Trays), o.projectPath)
			if failed > 0 {
				return fmt.Errorf("%d rows had errors and were skipped", failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "record kind: "+strings.Join(kindNames(), ", "))
	cmd.Flags().StringVar(&name, "name", "", "project name when creating a new project")
	return cmd
}

func kindNames() []string {
	return []string{importer.KindCableTypes.String(), importer.KindCables.String(), importer.KindTrays.String()}
}
