package model

import (
	"errors"
	"testing"
)

func TestNewCableCopiesTypeName(t *testing.T) {
	ct := NewCableType("NYY-J 5x16", "Power", 26, 1.1)
	c := NewCable("W-001", &ct, "MCC-1", "P-101", "T1/T2")

	if c.TypeName != "NYY-J 5x16" {
		t.Errorf("expected type name NYY-J 5x16, got %s", c.TypeName)
	}
	if len(c.ID) != 8 {
		t.Errorf("expected 8 char ID, got %q", c.ID)
	}
	if c.Diameter() != 26 {
		t.Errorf("expected diameter 26, got %f", c.Diameter())
	}
	if c.Weight() != 1.1 {
		t.Errorf("expected weight 1.1, got %f", c.Weight())
	}
}

func TestCableWithoutTypeHasZeroDiameter(t *testing.T) {
	c := Cable{Tag: "W-002", TypeName: "missing"}
	if c.Diameter() != 0 || c.Weight() != 0 {
		t.Errorf("expected zero diameter and weight for unresolved cable")
	}
	_, err := c.Purpose()
	if !errors.Is(err, ErrDataInconsistency) {
		t.Fatalf("expected ErrDataInconsistency, got %v", err)
	}
	var ce *CableError
	if !errors.As(err, &ce) || ce.Tag != "W-002" {
		t.Errorf("expected CableError naming W-002, got %v", err)
	}
}

func TestCablePurposeUnknown(t *testing.T) {
	ct := NewCableType("X", "Lighting", 10, 0.1)
	c := NewCable("L-1", &ct, "", "", "")
	_, err := c.Purpose()
	if !errors.Is(err, ErrDataInconsistency) {
		t.Fatalf("expected ErrDataInconsistency, got %v", err)
	}
}

func TestRoutedThrough(t *testing.T) {
	c := Cable{Routing: "TR-01/tr-02 / TR-03"}

	for _, name := range []string{"TR-01", "TR-02", "tr-03"} {
		if !c.RoutedThrough(name) {
			t.Errorf("expected cable to be routed through %s", name)
		}
	}
	if c.RoutedThrough("TR-0") {
		t.Error("partial names must not match")
	}
	if c.RoutedThrough("") {
		t.Error("empty tray name must not match")
	}
}

func TestTrayUsableHeight(t *testing.T) {
	tray := NewTray("T1", "KL 110.400", TrayPurposeTypeB, 400, 110, 6000, 6.1)
	if tray.UsableHeight() != 95 {
		t.Errorf("expected usable height 95, got %f", tray.UsableHeight())
	}
}

func TestTrayValidate(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float64
		wantErr bool
	}{
		{"ok", 400, 110, false},
		{"zero width", 0, 110, true},
		{"negative width", -10, 110, true},
		{"height equals c-profile", 400, 15, true},
		{"height below c-profile", 400, 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tray := Tray{Name: "T", Width: tt.w, Height: tt.h}
			err := tray.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("expected ErrInvalidArgument, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestProjectResolve(t *testing.T) {
	p := NewProject()
	p.CableTypes = append(p.CableTypes, NewCableType("A", "Power", 20, 0.5))
	p.Cables = append(p.Cables,
		Cable{Tag: "C1", TypeName: "A"},
		Cable{Tag: "C2", TypeName: "B"},
	)

	err := p.Resolve()
	if !errors.Is(err, ErrDataInconsistency) {
		t.Fatalf("expected ErrDataInconsistency for unknown type, got %v", err)
	}
	if p.Cables[0].Type == nil || p.Cables[0].Diameter() != 20 {
		t.Error("expected C1 to resolve to type A")
	}
	if p.Cables[1].Type != nil {
		t.Error("expected C2 to stay unresolved")
	}

	// Resolved pointers must follow the project's own slice.
	p.CableTypes[0].Diameter = 25
	if p.Cables[0].Diameter() != 25 {
		t.Errorf("expected resolved type to be shared, got %f", p.Cables[0].Diameter())
	}
}

func TestProjectFindTray(t *testing.T) {
	p := NewProject()
	p.Trays = append(p.Trays, Tray{Name: "TR-01"})
	if p.FindTray("tr-01") == nil {
		t.Error("expected case-insensitive tray lookup")
	}
	if p.FindTray("TR-02") != nil {
		t.Error("expected nil for unknown tray")
	}
}

func TestParsePurpose(t *testing.T) {
	for _, p := range Purposes() {
		got, err := ParsePurpose(p.String())
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", p, err)
		}
		if got != p {
			t.Errorf("expected %s, got %s", p, got)
		}
	}
	if _, err := ParsePurpose("power"); !errors.Is(err, ErrDataInconsistency) {
		t.Errorf("expected exact matching, got %v", err)
	}
}

func TestPurposeOrder(t *testing.T) {
	order := Purposes()
	want := []string{"Power", "Control", "MV", "VFD"}
	for i, p := range order {
		if p.String() != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], p)
		}
	}
}

func TestTrayPurposeStrings(t *testing.T) {
	if TrayPurposeTypeBC != "Type BC (Teal color) for LV and Instrumentation and  Control cables, divided by separator" {
		t.Error("TypeBC purpose string changed")
	}
	if !HasGroundingCable(TrayPurposeTypeB) || !HasGroundingCable(TrayPurposeTypeBC) {
		t.Error("expected grounding cable on type B and BC")
	}
	if HasGroundingCable(TrayPurposeTypeA) {
		t.Error("type A trays carry no grounding cable")
	}
}
