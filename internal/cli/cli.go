// Package cli implements the traylayout command-line interface.
//
// Every command works on a saved project file (--project) and addresses
// trays by name. Logging goes to stderr through charmbracelet/log; results
// go to stdout so they can be piped.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/piwi3910/TrayLayout/internal/model"
	"github.com/piwi3910/TrayLayout/internal/project"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// options holds the persistent flags and the config resolved from them.
type options struct {
	verbose     bool
	configFile  string
	projectPath string

	// appConfigPath is the saved JSON config; tests point it elsewhere.
	appConfigPath string
	config        model.AppConfig
}

func (o *options) settings() model.DrawSettings {
	s := model.DefaultDrawSettings()
	o.config.ApplyToSettings(&s)
	return s
}

// loadProject reads the --project file. Cables with an unknown type are
// logged and left unresolved; commands on trays carrying them will fail.
func (o *options) loadProject(ctx context.Context) (model.Project, error) {
	if o.projectPath == "" {
		return model.Project{}, errors.New("no project given, use --project")
	}
	p, err := project.LoadProject(o.projectPath)
	if err != nil {
		if !errors.Is(err, model.ErrDataInconsistency) {
			return model.Project{}, err
		}
		loggerFromContext(ctx).Warn("project loaded with errors", "err", err)
	}
	loggerFromContext(ctx).Debug("loaded project", "name", p.Name, "trays", len(p.Trays), "cables", len(p.Cables))
	return p, nil
}

// evaluateTray loads the project and evaluates one tray by name.
func (o *options) evaluateTray(ctx context.Context, name string) (project.Evaluation, error) {
	p, err := o.loadProject(ctx)
	if err != nil {
		return project.Evaluation{}, err
	}
	tray := p.FindTray(name)
	if tray == nil {
		return project.Evaluation{}, fmt.Errorf("%w: tray %q not found in %s", model.ErrInvalidArgument, name, o.projectPath)
	}
	return project.NewRepository(&p).Evaluate(*tray)
}

// NewRootCommand builds the command tree. Logs are written to logOut.
func NewRootCommand(logOut io.Writer) *cobra.Command {
	o := &options{appConfigPath: project.DefaultConfigPath()}
	return newRootCommand(o, logOut)
}

func newRootCommand(o *options, logOut io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:          "traylayout",
		Short:        "Lay out cable bundles in cable tray cross-sections",
		Long:         `traylayout places the cables routed over a tray into bundles, draws the tray cross-section and calculates the occupied width and tray loads.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if o.verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(logOut, level)))

			cfg, err := loadConfig(viper.New(), cmd.Flags(), o.configFile, o.appConfigPath)
			if err != nil {
				return err
			}
			o.config = cfg
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("traylayout %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	pf := root.PersistentFlags()
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVar(&o.configFile, "config", "", "YAML config file")
	pf.StringVarP(&o.projectPath, "project", "p", "", "project file ("+project.FileExtension+")")
	pf.Float64(keyScale, 0, "drawing scale in px per mm")
	pf.String(keyOutputDir, "", "directory for exported files")
	pf.String(keyPageSize, "", "PDF page size (A4, A3, Letter, ...)")

	root.AddCommand(newLayoutCmd(o))
	root.AddCommand(newSpaceCmd(o))
	root.AddCommand(newWeightsCmd(o))
	root.AddCommand(newReportCmd(o))
	root.AddCommand(newDXFCmd(o))
	root.AddCommand(newLabelsCmd(o))
	root.AddCommand(newImportCmd(o))
	root.AddCommand(newExportTraysCmd(o))
	root.AddCommand(newBucketsCmd(o))

	return root
}

// Execute runs the CLI with ctx, logging to stderr.
func Execute(ctx context.Context) error {
	return NewRootCommand(os.Stderr).ExecuteContext(ctx)
}
