// Package widgets holds the fyne widgets used by the tray viewer.
package widgets

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/TrayLayout/internal/engine"
	"github.com/piwi3910/TrayLayout/internal/model"
)

var (
	strokeColor = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
	cableFill   = color.NRGBA{R: 33, G: 150, B: 243, A: 60}
)

// TraySurface turns engine draw calls into fyne canvas objects, scaled by
// Zoom screen units per canvas px.
type TraySurface struct {
	engine.TransformStack

	Zoom    float32
	Objects []fyne.CanvasObject
}

func NewTraySurface(zoom float32) *TraySurface {
	return &TraySurface{Zoom: zoom}
}

func (s *TraySurface) Ready() error { return nil }

func (s *TraySurface) pos(x, y float64) fyne.Position {
	px, py := s.Current().Apply(x, y)
	return fyne.NewPos(float32(px)*s.Zoom, float32(py)*s.Zoom)
}

func (s *TraySurface) size(w, h float64) fyne.Size {
	return fyne.NewSize(float32(w)*s.Zoom, float32(h)*s.Zoom)
}

func (s *TraySurface) FillRect(x, y, w, h float64, fill string) error {
	col, err := engine.ParseColor(fill)
	if err != nil {
		return err
	}
	r := canvas.NewRectangle(col)
	r.Move(s.pos(x, y))
	r.Resize(s.size(w, h))
	s.Objects = append(s.Objects, r)
	return nil
}

func (s *TraySurface) StrokeRect(x, y, w, h float64) error {
	r := canvas.NewRectangle(color.Transparent)
	r.StrokeColor = strokeColor
	r.StrokeWidth = 1
	r.Move(s.pos(x, y))
	r.Resize(s.size(w, h))
	s.Objects = append(s.Objects, r)
	return nil
}

func (s *TraySurface) Circle(cx, cy, radius float64) error {
	c := canvas.NewCircle(cableFill)
	c.StrokeColor = strokeColor
	c.StrokeWidth = 1
	c.Move(s.pos(cx-radius, cy-radius))
	c.Resize(s.size(2*radius, 2*radius))
	s.Objects = append(s.Objects, c)
	return nil
}

func (s *TraySurface) Line(x1, y1, x2, y2, width float64) error {
	l := canvas.NewLine(strokeColor)
	l.StrokeWidth = float32(width) * s.Zoom
	l.Position1 = s.pos(x1, y1)
	l.Position2 = s.pos(x2, y2)
	s.Objects = append(s.Objects, l)
	return nil
}

// Text places a label centred vertically on y. canvas.Text cannot rotate, so
// text under a quarter turn is stacked one rune per line.
func (s *TraySurface) Text(x, y float64, text string, style engine.TextStyle) error {
	textSize := float32(style.Size) * s.Zoom
	if a := s.Current().Angle(); a > 0.1 || a < -0.1 {
		return s.verticalText(x, y, text, textSize)
	}

	t := canvas.NewText(text, color.Black)
	t.TextSize = textSize
	sz := fyne.MeasureText(text, textSize, t.TextStyle)
	p := s.pos(x, y)
	switch style.Align {
	case engine.AlignCenter:
		p.X -= sz.Width / 2
	case engine.AlignRight:
		p.X -= sz.Width
	}
	p.Y -= sz.Height / 2
	t.Move(p)
	s.Objects = append(s.Objects, t)
	return nil
}

func (s *TraySurface) verticalText(x, y float64, text string, textSize float32) error {
	runes := []rune(text)
	lineH := textSize * 1.1
	p := s.pos(x, y)
	top := p.Y - lineH*float32(len(runes))/2
	for i, r := range runes {
		t := canvas.NewText(string(r), color.Black)
		t.TextSize = textSize
		t.Alignment = fyne.TextAlignCenter
		t.Move(fyne.NewPos(p.X-textSize/2, top+float32(i)*lineH))
		t.Resize(fyne.NewSize(textSize, lineH))
		s.Objects = append(s.Objects, t)
	}
	return nil
}

// TrayCanvas renders one tray's cross-section scaled into a bounding box.
type TrayCanvas struct {
	widget.BaseWidget
	tray      model.Tray
	cables    []model.Cable
	bundles   engine.BundleMap
	settings  model.DrawSettings
	logger    *log.Logger
	maxWidth  float32
	maxHeight float32

	// Err is the last drawing failure, nil when every purpose was drawn.
	Err error
}

func NewTrayCanvas(tray model.Tray, cables []model.Cable, bundles engine.BundleMap, settings model.DrawSettings, logger *log.Logger, maxW, maxH float32) *TrayCanvas {
	tc := &TrayCanvas{
		tray:      tray,
		cables:    cables,
		bundles:   bundles,
		settings:  settings,
		logger:    logger,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	tc.ExtendBaseWidget(tc)
	return tc
}

// zoom fits the drawing canvas into the widget's bounds.
func (tc *TrayCanvas) zoom() float32 {
	cw, ch := engine.CanvasSize(tc.tray, tc.settings)
	if cw <= 0 || ch <= 0 {
		return 1
	}
	return min(tc.maxWidth/float32(cw), tc.maxHeight/float32(ch))
}

func (tc *TrayCanvas) CreateRenderer() fyne.WidgetRenderer {
	r := &trayCanvasRenderer{tc: tc}
	r.rebuild()
	return r
}

type trayCanvasRenderer struct {
	tc      *TrayCanvas
	objects []fyne.CanvasObject
}

func (r *trayCanvasRenderer) rebuild() {
	tc := r.tc
	s := NewTraySurface(tc.zoom())
	d := engine.New(tc.settings)
	d.Logger = tc.logger
	_, tc.Err = d.Draw(s, tc.tray, tc.cables, tc.bundles)
	r.objects = s.Objects
}

func (r *trayCanvasRenderer) Layout(size fyne.Size)        {}
func (r *trayCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *trayCanvasRenderer) Destroy()                     {}
func (r *trayCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *trayCanvasRenderer) MinSize() fyne.Size {
	cw, ch := engine.CanvasSize(r.tc.tray, r.tc.settings)
	z := r.tc.zoom()
	return fyne.NewSize(float32(cw)*z, float32(ch)*z)
}
