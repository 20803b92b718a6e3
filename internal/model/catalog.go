package model

import "github.com/google/uuid"

// TrayPreset is a reusable tray product definition.
type TrayPreset struct {
	ID     string  `json:"id"`
	Type   string  `json:"type"`
	Width  float64 `json:"width"`  // mm
	Height float64 `json:"height"` // mm
	Weight float64 `json:"weight"` // kg/m
}

// NewTrayPreset creates a new TrayPreset with a generated ID.
func NewTrayPreset(trayType string, width, height, weight float64) TrayPreset {
	return TrayPreset{
		ID:     uuid.New().String()[:8],
		Type:   trayType,
		Width:  width,
		Height: height,
		Weight: weight,
	}
}

// ToTray creates a tray section of the given length from this preset.
func (tp TrayPreset) ToTray(name, purpose string, length float64) Tray {
	return NewTray(name, tp.Type, purpose, tp.Width, tp.Height, length, tp.Weight)
}

// Catalog holds the user's saved cable types and tray presets.
type Catalog struct {
	CableTypes []CableType  `json:"cable_types"`
	Trays      []TrayPreset `json:"trays"`
}

// DefaultCatalog returns a catalog populated with common products.
func DefaultCatalog() Catalog {
	return Catalog{
		CableTypes: []CableType{
			NewCableType("NYY-J 3x2.5", "Power", 13.5, 0.27),
			NewCableType("NYY-J 5x16", "Power", 26, 1.1),
			NewCableType("NYY-J 4x95", "Power", 42, 4.05),
			NewCableType("NYY-O 1x240", "Power", 30, 2.6),
			NewCableType("JE-LiYCY 2x2x0.5", "Control", 7.4, 0.07),
			NewCableType("JE-LiYCY 8x2x0.5", "Control", 11.6, 0.16),
			NewCableType("NA2XS(F)2Y 1x150 12/20kV", "MV", 35, 1.55),
			NewCableType("2YSLCY-J 3x25+3G4", "VFD", 33.5, 1.45),
		},
		Trays: []TrayPreset{
			NewTrayPreset("KL 60.200", 200, 60, 3.2),
			NewTrayPreset("KL 110.400", 400, 110, 6.1),
			NewTrayPreset("KL 110.600", 600, 110, 8.3),
			NewTrayPreset("WSL 100.400", 400, 100, 7.4),
			NewTrayPreset("WSL 150.600", 600, 150, 11.9),
		},
	}
}

// FindCableTypeByID returns a pointer to the cable type with the given ID, or nil.
func (c *Catalog) FindCableTypeByID(id string) *CableType {
	for i := range c.CableTypes {
		if c.CableTypes[i].ID == id {
			return &c.CableTypes[i]
		}
	}
	return nil
}

// FindCableTypeByName returns a pointer to the first cable type with the given name, or nil.
func (c *Catalog) FindCableTypeByName(name string) *CableType {
	for i := range c.CableTypes {
		if c.CableTypes[i].Type == name {
			return &c.CableTypes[i]
		}
	}
	return nil
}

// FindTrayByType returns a pointer to the first tray preset of the given type, or nil.
func (c *Catalog) FindTrayByType(trayType string) *TrayPreset {
	for i := range c.Trays {
		if c.Trays[i].Type == trayType {
			return &c.Trays[i]
		}
	}
	return nil
}

// CableTypeNames returns the cable type names in catalog order.
func (c *Catalog) CableTypeNames() []string {
	names := make([]string, len(c.CableTypes))
	for i, ct := range c.CableTypes {
		names[i] = ct.Type
	}
	return names
}

// TrayTypes returns the tray preset types in catalog order.
func (c *Catalog) TrayTypes() []string {
	names := make([]string, len(c.Trays))
	for i, t := range c.Trays {
		names[i] = t.Type
	}
	return names
}
