package model

// Fixed geometry and weight constants. Lengths are in mm, weights in kg.
const (
	CProfileHeight = 15.0 // height of the C-profile at the bottom of every tray
	Spacing        = 1.0  // gap between adjacent cables
	TextPadding    = 20.0 // px between the tray outline and its labels
	CanvasMargin   = 50.0 // px offset of the tray origin on the drawing

	GroundingCableDiameter = 95.0
	GroundingCableWeight   = 1.05 // kg/m

	SupportWeight      = 5.416 // per support
	KLSupportDistance  = 2.0   // m
	WSLSupportDistance = 5.5   // m
	KLTrayTypePrefix   = "KL"

	// Cables at or below this diameter may be lifted into a hexagonal second row.
	HexLiftMaxDiameter = 45.0
)
