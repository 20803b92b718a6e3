package export

import (
	"errors"
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/TrayLayout/internal/engine"
	"github.com/piwi3910/TrayLayout/internal/model"
)

// DXF layer names.
const (
	LayerTray      = "TRAY"
	LayerCables    = "CABLES"
	LayerText      = "TEXT"
	LayerSeparator = "SEPARATOR"
)

// dxfCharWidth approximates the advance of one character relative to the
// text height, used for centring since the writer has no font metrics.
const dxfCharWidth = 0.6

// DXFSurface writes engine calls as DXF entities. Coordinates stay in canvas
// px with y flipped so the drawing reads upright in CAD tools.
type DXFSurface struct {
	engine.TransformStack

	d       *drawing.Drawing
	canvasH float64
}

// NewDXFSurface creates a drawing with one layer per kind of entity.
func NewDXFSurface(canvasH float64) (*DXFSurface, error) {
	d := dxf.NewDrawing()
	layers := []struct {
		name string
		col  color.ColorNumber
	}{
		{LayerTray, color.White},
		{LayerCables, color.Green},
		{LayerText, color.Cyan},
		{LayerSeparator, color.Red},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.col, dxf.DefaultLineType, false); err != nil {
			return nil, fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}
	return &DXFSurface{d: d, canvasH: canvasH}, nil
}

func (s *DXFSurface) Ready() error {
	if s.d == nil {
		return errors.New("no DXF drawing")
	}
	return nil
}

func (s *DXFSurface) point(x, y float64) (float64, float64) {
	px, py := s.Current().Apply(x, y)
	return px, s.canvasH - py
}

func (s *DXFSurface) use(layer string) error {
	return s.d.ChangeLayer(layer)
}

func (s *DXFSurface) rect(x, y, w, h float64) error {
	corners := [5][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}, {x, y}}
	for i := 0; i < 4; i++ {
		ax, ay := s.point(corners[i][0], corners[i][1])
		bx, by := s.point(corners[i+1][0], corners[i+1][1])
		if _, err := s.d.Line(ax, ay, 0, bx, by, 0); err != nil {
			return err
		}
	}
	return nil
}

// FillRect outlines the area. The white background is skipped.
func (s *DXFSurface) FillRect(x, y, w, h float64, fill string) error {
	col, err := engine.ParseColor(fill)
	if err != nil {
		return err
	}
	if col.R == 0xff && col.G == 0xff && col.B == 0xff {
		return nil
	}
	if err := s.use(LayerTray); err != nil {
		return err
	}
	return s.rect(x, y, w, h)
}

func (s *DXFSurface) StrokeRect(x, y, w, h float64) error {
	if err := s.use(LayerTray); err != nil {
		return err
	}
	return s.rect(x, y, w, h)
}

func (s *DXFSurface) Circle(cx, cy, r float64) error {
	if err := s.use(LayerCables); err != nil {
		return err
	}
	x, y := s.point(cx, cy)
	_, err := s.d.Circle(x, y, 0, r)
	return err
}

func (s *DXFSurface) Line(x1, y1, x2, y2, _ float64) error {
	if err := s.use(LayerSeparator); err != nil {
		return err
	}
	ax, ay := s.point(x1, y1)
	bx, by := s.point(x2, y2)
	_, err := s.d.Line(ax, ay, 0, bx, by, 0)
	return err
}

func (s *DXFSurface) Text(x, y float64, text string, style engine.TextStyle) error {
	if err := s.use(LayerText); err != nil {
		return err
	}
	w := float64(len([]rune(text))) * style.Size * dxfCharWidth
	var dx float64
	switch style.Align {
	case engine.AlignCenter:
		dx = -w / 2
	case engine.AlignRight:
		dx = -w
	}
	// The insertion point is the baseline start in the rotated text frame.
	tr := s.Current().Translate(x, y)
	px, py := tr.Apply(dx, style.Size/2)
	t, err := s.d.Text(text, px, s.canvasH-py, 0, style.Size)
	if err != nil {
		return err
	}
	t.Rotation = -tr.Angle() * 180 / math.Pi
	return nil
}

// ExportDXF writes the tray layout as a DXF drawing.
func ExportDXF(path string, tray model.Tray, cables []model.Cable, bundles engine.BundleMap, settings model.DrawSettings) error {
	_, ch := engine.CanvasSize(tray, settings)
	s, err := NewDXFSurface(ch)
	if err != nil {
		return err
	}
	res, drawErr := engine.New(settings).Draw(s, tray, cables, bundles)
	if res == nil {
		return fmt.Errorf("failed to draw tray %s: %w", tray.Name, drawErr)
	}
	if err := s.d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write DXF: %w", err)
	}
	return drawErr
}
