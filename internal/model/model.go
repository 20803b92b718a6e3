package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// CableType describes a family of cables sharing purpose, diameter and weight.
type CableType struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	Purpose  string  `json:"purpose"`  // "Power", "Control", "MV" or "VFD"
	Diameter float64 `json:"diameter"` // mm
	Weight   float64 `json:"weight"`   // kg/m
}

func NewCableType(name, purpose string, diameter, weight float64) CableType {
	return CableType{
		ID:       uuid.New().String()[:8],
		Type:     name,
		Purpose:  purpose,
		Diameter: diameter,
		Weight:   weight,
	}
}

// Cable is a single routed cable. Diameter and weight come from its type.
type Cable struct {
	ID           string     `json:"id"`
	Tag          string     `json:"tag"`
	TypeName     string     `json:"type"`
	Type         *CableType `json:"-"` // resolved from TypeName by Project.Resolve
	FromLocation string     `json:"from_location"`
	ToLocation   string     `json:"to_location"`
	Routing      string     `json:"routing"` // tray names separated by "/"
}

func NewCable(tag string, cableType *CableType, from, to, routing string) Cable {
	c := Cable{
		ID:           uuid.New().String()[:8],
		Tag:          tag,
		Type:         cableType,
		FromLocation: from,
		ToLocation:   to,
		Routing:      routing,
	}
	if cableType != nil {
		c.TypeName = cableType.Type
	}
	return c
}

// Diameter returns the cable diameter in mm, or 0 when the type is unresolved.
func (c Cable) Diameter() float64 {
	if c.Type == nil {
		return 0
	}
	return c.Type.Diameter
}

// Weight returns the cable weight in kg/m, or 0 when the type is unresolved.
func (c Cable) Weight() float64 {
	if c.Type == nil {
		return 0
	}
	return c.Type.Weight
}

// Purpose resolves the cable's purpose from its type.
func (c Cable) Purpose() (Purpose, error) {
	if c.Type == nil {
		return 0, &CableError{Tag: c.Tag, Err: fmt.Errorf("%w: cable type %q is not resolved", ErrDataInconsistency, c.TypeName)}
	}
	p, err := ParsePurpose(c.Type.Purpose)
	if err != nil {
		return 0, &CableError{Tag: c.Tag, Err: err}
	}
	return p, nil
}

// RoutedThrough reports whether any "/"-separated routing segment names the tray.
// Matching is case-insensitive.
func (c Cable) RoutedThrough(trayName string) bool {
	if trayName == "" {
		return false
	}
	for _, segment := range strings.Split(c.Routing, "/") {
		if strings.EqualFold(strings.TrimSpace(segment), trayName) {
			return true
		}
	}
	return false
}

// Tray is a cable tray section. All dimensions are in mm.
type Tray struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Type    string  `json:"type"`    // e.g. "KL 100.603"; the prefix selects the support distance
	Purpose string  `json:"purpose"` // one of the TrayPurpose* strings
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Length  float64 `json:"length"`
	Weight  float64 `json:"weight"` // kg/m
}

func NewTray(name, trayType, purpose string, w, h, length, weight float64) Tray {
	return Tray{
		ID:      uuid.New().String()[:8],
		Name:    name,
		Type:    trayType,
		Purpose: purpose,
		Width:   w,
		Height:  h,
		Length:  length,
		Weight:  weight,
	}
}

// UsableHeight is the height above the C-profile.
func (t Tray) UsableHeight() float64 {
	return t.Height - CProfileHeight
}

// Validate checks the geometry needed for layout.
func (t Tray) Validate() error {
	if t.Width <= 0 {
		return fmt.Errorf("%w: tray %q width must be positive, got %g", ErrInvalidArgument, t.Name, t.Width)
	}
	if t.Height <= CProfileHeight {
		return fmt.Errorf("%w: tray %q height must exceed the %g mm C-profile, got %g", ErrInvalidArgument, t.Name, CProfileHeight, t.Height)
	}
	return nil
}

// Project ties cable types, cables and trays together for save/load.
type Project struct {
	Name       string      `json:"name"`
	CableTypes []CableType `json:"cable_types"`
	Cables     []Cable     `json:"cables"`
	Trays      []Tray      `json:"trays"`
}

func NewProject() Project {
	return Project{
		Name:       "Untitled",
		CableTypes: []CableType{},
		Cables:     []Cable{},
		Trays:      []Tray{},
	}
}

// Resolve links each cable to its cable type by name.
// Cables whose type is unknown are left unresolved and reported together.
func (p *Project) Resolve() error {
	types := make(map[string]*CableType, len(p.CableTypes))
	for i := range p.CableTypes {
		types[p.CableTypes[i].Type] = &p.CableTypes[i]
	}
	var missing []string
	for i := range p.Cables {
		ct, ok := types[p.Cables[i].TypeName]
		if !ok {
			p.Cables[i].Type = nil
			missing = append(missing, p.Cables[i].Tag)
			continue
		}
		p.Cables[i].Type = ct
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: cables with unknown type: %s", ErrDataInconsistency, strings.Join(missing, ", "))
	}
	return nil
}

// FindTray returns the tray with the given name (case-insensitive), or nil.
func (p *Project) FindTray(name string) *Tray {
	for i := range p.Trays {
		if strings.EqualFold(p.Trays[i].Name, name) {
			return &p.Trays[i]
		}
	}
	return nil
}

// FindCableType returns the cable type with the given name, or nil.
func (p *Project) FindCableType(name string) *CableType {
	for i := range p.CableTypes {
		if p.CableTypes[i].Type == name {
			return &p.CableTypes[i]
		}
	}
	return nil
}
