package model

import "fmt"

// Purpose is the closed set of cable purposes. The order of the constants is
// the order in which purposes are laid out on a tray.
type Purpose int

const (
	PurposePower Purpose = iota
	PurposeControl
	PurposeMV
	PurposeVFD
)

var purposeNames = [...]string{
	PurposePower:   "Power",
	PurposeControl: "Control",
	PurposeMV:      "MV",
	PurposeVFD:     "VFD",
}

func (p Purpose) String() string {
	if p < 0 || int(p) >= len(purposeNames) {
		return fmt.Sprintf("Purpose(%d)", int(p))
	}
	return purposeNames[p]
}

// MarshalText encodes the purpose by name.
func (p Purpose) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a purpose name.
func (p *Purpose) UnmarshalText(text []byte) error {
	parsed, err := ParsePurpose(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePurpose resolves a purpose string by exact match.
func ParsePurpose(s string) (Purpose, error) {
	for i, name := range purposeNames {
		if name == s {
			return Purpose(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown cable purpose %q", ErrDataInconsistency, s)
}

// Purposes returns all purposes in layout order.
func Purposes() []Purpose {
	return []Purpose{PurposePower, PurposeControl, PurposeMV, PurposeVFD}
}

// Tray purposes. These strings are matched exactly, including the double
// space in TrayPurposeTypeBC.
const (
	TrayPurposeTypeA  = "Type A (Pink color) for MV cables"
	TrayPurposeTypeB  = "Type B (Green color) for LV cables"
	TrayPurposeTypeBC = "Type BC (Teal color) for LV and Instrumentation and  Control cables, divided by separator"
)

// TrayPurposes lists the known tray purposes.
func TrayPurposes() []string {
	return []string{TrayPurposeTypeA, TrayPurposeTypeB, TrayPurposeTypeBC}
}

// HasGroundingCable reports whether trays of this purpose carry a grounding cable.
func HasGroundingCable(trayPurpose string) bool {
	return trayPurpose == TrayPurposeTypeB || trayPurpose == TrayPurposeTypeBC
}
