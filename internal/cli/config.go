package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/piwi3910/TrayLayout/internal/model"
	"github.com/piwi3910/TrayLayout/internal/project"
)

// envPrefix is prepended to every config key read from the environment,
// e.g. TRAYLAYOUT_SCALE or TRAYLAYOUT_OUTPUT_DIR.
const envPrefix = "TRAYLAYOUT"

// Config keys shared by flags, environment and the optional YAML file.
const (
	keyScale        = "scale"
	keyOutputDir    = "output-dir"
	keyPageSize     = "page-size"
	keyReportHeader = "report-header"
	keyReportFooter = "report-footer"
)

// loadConfig layers flags, environment and an optional YAML file over the
// saved application config.
func loadConfig(v *viper.Viper, flags *pflag.FlagSet, cfgFile, appConfigPath string) (model.AppConfig, error) {
	base, err := project.LoadAppConfig(appConfigPath)
	if err != nil {
		return model.AppConfig{}, err
	}

	v.SetDefault(keyScale, base.DefaultScale)
	v.SetDefault(keyOutputDir, base.OutputDir)
	v.SetDefault(keyPageSize, base.PDFPageSize)
	v.SetDefault(keyReportHeader, base.ReportHeader)
	v.SetDefault(keyReportFooter, base.ReportFooter)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, key := range []string{keyScale, keyOutputDir, keyPageSize} {
		if f := flags.Lookup(key); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return model.AppConfig{}, err
			}
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var pathErr *fs.PathError
			if !errors.As(err, &pathErr) || !errors.Is(pathErr, os.ErrNotExist) {
				return model.AppConfig{}, fmt.Errorf("failed to read config %s: %w", cfgFile, err)
			}
		}
	}

	cfg := base
	cfg.DefaultScale = v.GetFloat64(keyScale)
	cfg.OutputDir = v.GetString(keyOutputDir)
	cfg.PDFPageSize = v.GetString(keyPageSize)
	cfg.ReportHeader = v.GetString(keyReportHeader)
	cfg.ReportFooter = v.GetString(keyReportFooter)
	if cfg.DefaultScale <= 0 {
		return model.AppConfig{}, fmt.Errorf("%w: scale must be positive, got %g", model.ErrInvalidArgument, cfg.DefaultScale)
	}
	return cfg, nil
}
