package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/TrayLayout/internal/model"
)

// BackupVersion is written into every backup file.
const BackupVersion = "1.0.0"

// Backup bundles the app config and catalog into one file.
type Backup struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Config    model.AppConfig `json:"config"`
	Catalog   model.Catalog   `json:"catalog"`
}

// ExportAllData writes the app config and catalog to a single JSON file.
func ExportAllData(path string, config model.AppConfig, cat model.Catalog) error {
	b := Backup{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Catalog:   cat,
	}
	if err := writeJSON(path, b); err != nil {
		return fmt.Errorf("write backup %s: %w", path, err)
	}
	return nil
}

// ImportAllData reads a backup written by ExportAllData. Catalog entries the
// layout engine could not use are rejected with ErrDataInconsistency; nothing
// is applied, that is left to the caller.
func ImportAllData(path string) (Backup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Backup{}, fmt.Errorf("read backup %s: %w", path, err)
	}
	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return Backup{}, fmt.Errorf("parse backup %s: %w", path, err)
	}
	if b.Version == "" {
		return Backup{}, fmt.Errorf("%w: backup %s has no version", model.ErrDataInconsistency, path)
	}
	if b.Config.RecentProjects == nil {
		b.Config.RecentProjects = []string{}
	}
	if b.Config.DefaultScale <= 0 {
		b.Config.DefaultScale = model.DefaultAppConfig().DefaultScale
	}
	if err := validateCatalog(b.Catalog); err != nil {
		return Backup{}, fmt.Errorf("backup %s: %w", path, err)
	}
	return b, nil
}

func validateCatalog(cat model.Catalog) error {
	var errs []error
	for _, ct := range cat.CableTypes {
		if _, err := model.ParsePurpose(ct.Purpose); err != nil {
			errs = append(errs, fmt.Errorf("%w: cable type %q has unknown purpose %q", model.ErrDataInconsistency, ct.Type, ct.Purpose))
		}
		if ct.Diameter <= 0 {
			errs = append(errs, fmt.Errorf("%w: cable type %q has diameter %g", model.ErrDataInconsistency, ct.Type, ct.Diameter))
		}
	}
	for _, tp := range cat.Trays {
		if tp.Width <= 0 || tp.Height <= model.CProfileHeight {
			errs = append(errs, fmt.Errorf("%w: tray preset %q is %gx%g mm", model.ErrDataInconsistency, tp.Type, tp.Width, tp.Height))
		}
	}
	return errors.Join(errs...)
}
