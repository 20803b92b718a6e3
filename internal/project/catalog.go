package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/TrayLayout/internal/model"
)

// DefaultCatalogPath returns the default file path for the product catalog.
// This is located at ~/.traylayout/catalog.json.
func DefaultCatalogPath() string {
	return filepath.Join(DefaultConfigDir(), "catalog.json")
}

// SaveCatalog writes the catalog to the specified JSON file.
func SaveCatalog(path string, cat model.Catalog) error {
	return writeJSON(path, cat)
}

// LoadCatalog reads the catalog from the specified JSON file.
// If the file does not exist, it returns the default catalog and saves it.
func LoadCatalog(path string) (model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cat := model.DefaultCatalog()
			return cat, SaveCatalog(path, cat)
		}
		return model.Catalog{}, err
	}
	var cat model.Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return model.Catalog{}, err
	}
	return cat, nil
}

// LoadOrCreateCatalog loads the catalog from the default path,
// creating it with default entries on first use.
func LoadOrCreateCatalog() (model.Catalog, string, error) {
	path := DefaultCatalogPath()
	cat, err := LoadCatalog(path)
	return cat, path, err
}

// ImportCatalog merges the catalog stored at path into existing.
// Cable types are matched by name and tray presets by type; entries
// already present are kept unchanged.
func ImportCatalog(path string, existing model.Catalog) (model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	var imported model.Catalog
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, err
	}
	return MergeCatalog(existing, imported), nil
}

// MergeCatalog appends the entries of imported that existing does not have.
func MergeCatalog(existing, imported model.Catalog) model.Catalog {
	cableTypes := make(map[string]bool, len(existing.CableTypes))
	for _, ct := range existing.CableTypes {
		cableTypes[ct.Type] = true
	}
	trays := make(map[string]bool, len(existing.Trays))
	for _, tp := range existing.Trays {
		trays[tp.Type] = true
	}

	for _, ct := range imported.CableTypes {
		if !cableTypes[ct.Type] {
			existing.CableTypes = append(existing.CableTypes, ct)
			cableTypes[ct.Type] = true
		}
	}
	for _, tp := range imported.Trays {
		if !trays[tp.Type] {
			existing.Trays = append(existing.Trays, tp)
			trays[tp.Type] = true
		}
	}
	return existing
}
