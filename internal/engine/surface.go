package engine

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// ErrSurfaceNotReady is returned when a drawing surface cannot accept calls yet.
// Retrying is up to the caller.
var ErrSurfaceNotReady = errors.New("drawing surface not ready")

// TextAlign is the horizontal anchor of a text call.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// TextStyle describes a text call. Text is always vertically centred on y.
type TextStyle struct {
	Size  float64 // px
	Align TextAlign
}

// Surface receives primitive draw calls in px, origin top-left, y down.
// Translate and Rotate apply to subsequent calls until the matching Restore.
type Surface interface {
	Ready() error
	FillRect(x, y, w, h float64, fill string) error
	StrokeRect(x, y, w, h float64) error
	Circle(cx, cy, r float64) error
	Line(x1, y1, x2, y2, width float64) error
	Text(x, y float64, text string, style TextStyle) error
	Save() error
	Restore() error
	Translate(dx, dy float64) error
	Rotate(angle float64) error
}

// SurfaceError reports a draw call the surface rejected.
type SurfaceError struct {
	Op  string
	Err error
}

func (e *SurfaceError) Error() string {
	return fmt.Sprintf("surface %s: %v", e.Op, e.Err)
}

func (e *SurfaceError) Unwrap() error { return e.Err }

// pen issues draw calls until the first failure, then records it and
// ignores the rest.
type pen struct {
	s   Surface
	err error
}

func (p *pen) do(op string, call func() error) {
	if p.err != nil {
		return
	}
	if err := call(); err != nil {
		p.err = &SurfaceError{Op: op, Err: err}
	}
}

// Transform is a 2D affine matrix: x' = A*x + C*y + E, y' = B*x + D*y + F.
type Transform struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{A: 1, D: 1}
}

// Apply maps a point through the transform.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t.A*x + t.C*y + t.E, t.B*x + t.D*y + t.F
}

// Translate returns t followed by a translation in t's local space.
func (t Transform) Translate(dx, dy float64) Transform {
	t.E += t.A*dx + t.C*dy
	t.F += t.B*dx + t.D*dy
	return t
}

// Rotate returns t followed by a clockwise rotation (y down) in t's local space.
func (t Transform) Rotate(angle float64) Transform {
	sin, cos := math.Sincos(angle)
	return Transform{
		A: t.A*cos + t.C*sin,
		B: t.B*cos + t.D*sin,
		C: -t.A*sin + t.C*cos,
		D: -t.B*sin + t.D*cos,
		E: t.E,
		F: t.F,
	}
}

// Angle returns the rotation component in radians.
func (t Transform) Angle() float64 {
	return math.Atan2(t.B, t.A)
}

// TransformStack tracks the current transform with save/restore semantics.
// Surfaces embed it to implement Save, Restore, Translate and Rotate.
type TransformStack struct {
	current Transform
	saved   []Transform
	init    bool
}

// Current returns the active transform.
func (s *TransformStack) Current() Transform {
	if !s.init {
		return Identity()
	}
	return s.current
}

func (s *TransformStack) ensure() {
	if !s.init {
		s.current = Identity()
		s.init = true
	}
}

func (s *TransformStack) Save() error {
	s.ensure()
	s.saved = append(s.saved, s.current)
	return nil
}

func (s *TransformStack) Restore() error {
	s.ensure()
	if len(s.saved) == 0 {
		return errors.New("restore without matching save")
	}
	s.current = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
	return nil
}

func (s *TransformStack) Translate(dx, dy float64) error {
	s.ensure()
	s.current = s.current.Translate(dx, dy)
	return nil
}

func (s *TransformStack) Rotate(angle float64) error {
	s.ensure()
	s.current = s.current.Rotate(angle)
	return nil
}

// ParseColor understands "#RRGGBB", "#RGB" and the names used by the layout.
func ParseColor(s string) (color.NRGBA, error) {
	switch strings.ToLower(s) {
	case "white":
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, nil
	case "black":
		return color.NRGBA{A: 0xff}, nil
	case "lightgray", "lightgrey":
		return color.NRGBA{R: 0xd3, G: 0xd3, B: 0xd3, A: 0xff}, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if ok && len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if !ok || len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("unsupported color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("unsupported color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
