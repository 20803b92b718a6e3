package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/piwi3910/TrayLayout/internal/engine"
	"github.com/piwi3910/TrayLayout/internal/model"
)

// FileExtension is appended to saved project files.
const FileExtension = ".trays"

// SaveProject writes a project to path as JSON. Cable types are stored once;
// cables refer to them by name.
func SaveProject(path string, p model.Project) error {
	if err := writeJSON(path, p); err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

// LoadProject reads a project and links every cable to its type.
// A project with cables of unknown type is still returned together with
// the resolve error, so callers can report and continue.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project: %w", err)
	}
	p := model.NewProject()
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project: %w", err)
	}
	if err := p.Resolve(); err != nil {
		return p, err
	}
	return p, nil
}

// Repository serves the cables of a loaded project tray by tray.
type Repository struct {
	project *model.Project
}

var _ engine.CableRepository = (*Repository)(nil)

// NewRepository wraps a resolved project. The project must outlive the repository.
func NewRepository(p *model.Project) *Repository {
	return &Repository{project: p}
}

// CablesOnTray returns the cables whose routing passes the tray, in project order.
func (r *Repository) CablesOnTray(tray model.Tray) ([]model.Cable, error) {
	if tray.Name == "" {
		return nil, fmt.Errorf("%w: tray has no name", model.ErrInvalidArgument)
	}
	var out []model.Cable
	for _, c := range r.project.Cables {
		if c.RoutedThrough(tray.Name) {
			out = append(out, c)
		}
	}
	return out, nil
}

// CableBundles groups the tray's cables into bundles.
func (r *Repository) CableBundles(tray model.Tray) (engine.BundleMap, error) {
	cables, err := r.CablesOnTray(tray)
	if err != nil {
		return nil, err
	}
	return engine.BuildBundleMap(cables)
}
