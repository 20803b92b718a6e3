package engine

import (
	"math"

	"github.com/piwi3910/TrayLayout/internal/model"
)

// geometry maps tray millimetres onto drawing pixels.
type geometry struct {
	scale   float64
	spacing float64 // px
	margin  float64
	width   float64 // mm
	height  float64 // mm, including the C-profile
	usable  float64 // mm
}

func newGeometry(tray model.Tray, settings model.DrawSettings) geometry {
	return geometry{
		scale:   settings.Scale,
		spacing: model.Spacing * settings.Scale,
		margin:  settings.Margin,
		width:   tray.Width,
		height:  tray.Height,
		usable:  tray.UsableHeight(),
	}
}

func (g geometry) floorY() float64 { return g.margin + g.usable*g.scale }

func (g geometry) leftOrigin() float64 { return g.margin + g.spacing }

func (g geometry) rightOrigin() float64 { return g.margin + g.width*g.scale - g.spacing }

// leftEdge is the left cursor after the given floor entries.
func (g geometry) leftEdge(entries []RowEntry) float64 {
	return g.leftOrigin() + rowWidth(entries)*g.scale
}

// rightEdge is the right cursor after the given floor entries.
func (g geometry) rightEdge(entries []RowEntry) float64 {
	return g.rightOrigin() - rowWidth(entries)*g.scale
}

// hexLift is how far a lifted cable's bottom sits above the floor.
func (g geometry) hexLift(d float64) float64 {
	r := d * g.scale / 2
	return r*(math.Sqrt(3)/2) + r - 2*g.spacing
}

func (g geometry) radius(d float64) float64 { return d / 2 * g.scale }

// CanvasSize returns the drawing size in px for a tray.
func CanvasSize(tray model.Tray, settings model.DrawSettings) (w, h float64) {
	return tray.Width*settings.Scale + 2*settings.Margin, tray.Height*settings.Scale + 2*settings.Margin
}
