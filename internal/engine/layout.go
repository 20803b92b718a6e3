// Package engine lays out cable bundles in a tray cross-section and computes
// the floor width they occupy.
package engine

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/TrayLayout/internal/model"
)

const (
	titleFontSize = 24
	labelFontSize = 12

	cProfileFill   = "#D3D3D3"
	separatorWidth = 2
)

// PurposeError reports a purpose that could not be laid out or drawn.
// Other purposes of the same pass are unaffected.
type PurposeError struct {
	Purpose model.Purpose
	Err     error
}

func (e *PurposeError) Error() string {
	return fmt.Sprintf("%s cables: %v", e.Purpose, e.Err)
}

func (e *PurposeError) Unwrap() error { return e.Err }

// Separator is the vertical line dividing two purpose zones.
type Separator struct {
	X         float64       `json:"x"`
	Top       float64       `json:"top"`
	Bottom    float64       `json:"bottom"`
	Left      model.Purpose `json:"left"`
	Right     model.Purpose `json:"right"`
	FreeSpace float64       `json:"free_space"` // mm between the two zones
}

// Result is one complete layout pass.
type Result struct {
	Tray         model.Tray       `json:"tray"`
	Scale        float64          `json:"scale"`
	CanvasWidth  float64          `json:"canvas_width"`
	CanvasHeight float64          `json:"canvas_height"`
	Placements   []CablePlacement `json:"placements"`
	State        LayoutState      `json:"bottom_rows"`
	Left         LayoutCursor     `json:"left_cursor"`
	Right        LayoutCursor     `json:"right_cursor"`
	Separator    *Separator       `json:"separator,omitempty"`
	Trace        []Phase          `json:"trace"`
}

// All yields every placement in drawing order.
func (r *Result) All() iter.Seq[CablePlacement] {
	return func(yield func(CablePlacement) bool) {
		for _, p := range r.Placements {
			if !yield(p) {
				return
			}
		}
	}
}

// ByPurpose yields the placements of one purpose in drawing order.
func (r *Result) ByPurpose(purpose model.Purpose) iter.Seq[CablePlacement] {
	return func(yield func(CablePlacement) bool) {
		for _, p := range r.Placements {
			if p.Purpose == purpose && !yield(p) {
				return
			}
		}
	}
}

// Drawer computes and draws tray layouts.
type Drawer struct {
	Settings model.DrawSettings
	Logger   *log.Logger
}

func New(settings model.DrawSettings) *Drawer {
	return &Drawer{Settings: settings}
}

func (d *Drawer) logger() *log.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return log.Default()
}

func (d *Drawer) validate(tray model.Tray, bundles BundleMap) error {
	if bundles == nil {
		return fmt.Errorf("%w: bundle map is nil", model.ErrInvalidArgument)
	}
	if d.Settings.Scale <= 0 || math.IsNaN(d.Settings.Scale) {
		return fmt.Errorf("%w: scale must be positive, got %g", model.ErrInvalidArgument, d.Settings.Scale)
	}
	return tray.Validate()
}

// Plan lays out every bundle without drawing. A purpose whose cables cannot
// be laid out is skipped and reported in the joined error; the returned
// result is still complete for the other purposes. Invalid input returns a
// nil result.
func (d *Drawer) Plan(tray model.Tray, cables []model.Cable, bundles BundleMap) (*Result, error) {
	if err := d.validate(tray, bundles); err != nil {
		return nil, err
	}

	geo := newGeometry(tray, d.Settings)
	pk := &packer{geo: geo, labels: newLabeler(cables), state: &LayoutState{}}
	cw, ch := CanvasSize(tray, d.Settings)
	res := &Result{
		Tray:         tray,
		Scale:        d.Settings.Scale,
		CanvasWidth:  cw,
		CanvasHeight: ch,
		Trace:        []Phase{PhaseIdle},
	}

	left := LayoutCursor{X: geo.leftOrigin(), Y: geo.floorY()}
	right := LayoutCursor{X: geo.rightOrigin(), Y: geo.floorY()}
	var errs []error

	for _, p := range bundles.Purposes() {
		res.Trace = append(res.Trace, phaseFor(p))
		seqs, err := sequencePurpose(bundles, p, geo.usable)
		if err != nil {
			d.logger().Warn("skipping purpose", "tray", tray.Name, "purpose", p, "err", err)
			errs = append(errs, &PurposeError{Purpose: p, Err: err})
			continue
		}
		switch p {
		case model.PurposePower:
			left = pk.packPower(seqs, left)
		case model.PurposeControl:
			right = pk.packControl(seqs, right)
		case model.PurposeMV:
			left = pk.packMV(seqs, left)
		case model.PurposeVFD:
			right = pk.packVFD(seqs, right)
		}
		d.logger().Debug("packed purpose", "tray", tray.Name, "purpose", p, "bundles", len(seqs))
	}

	res.Trace = append(res.Trace, PhaseDrawingSeparators)
	res.Separator = placeSeparator(geo, tray.Purpose, pk.state)
	res.Trace = append(res.Trace, PhaseDone)

	res.Placements = pk.placements
	res.State = *pk.state
	res.Left, res.Right = left, right
	return res, errors.Join(errs...)
}

// Draw lays out the tray and draws it onto s. A surface that is not ready
// fails the call before anything is drawn. Failures while drawing one
// purpose are logged, the remaining purposes are still drawn, and all
// failures are returned together with the result.
func (d *Drawer) Draw(s Surface, tray model.Tray, cables []model.Cable, bundles BundleMap) (*Result, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: surface is nil", model.ErrInvalidArgument)
	}
	if err := s.Ready(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSurfaceNotReady, err)
	}

	res, planErr := d.Plan(tray, cables, bundles)
	if res == nil {
		return nil, planErr
	}
	if err := d.drawBase(s, res); err != nil {
		return res, errors.Join(planErr, err)
	}

	errs := []error{planErr}
	for _, p := range model.Purposes() {
		pn := &pen{s: s}
		for pl := range res.ByPurpose(p) {
			pn.do("circle", func() error { return s.Circle(pl.CenterX, pl.CenterY, pl.Radius) })
			pn.do("text", func() error {
				return s.Text(pl.CenterX, pl.CenterY, pl.Label, TextStyle{Size: labelFontSize, Align: AlignCenter})
			})
		}
		if pn.err != nil {
			d.logger().Error("drawing purpose failed", "tray", tray.Name, "purpose", p, "err", pn.err)
			errs = append(errs, &PurposeError{Purpose: p, Err: pn.err})
		}
	}

	if sep := res.Separator; sep != nil {
		pn := &pen{s: s}
		pn.do("line", func() error { return s.Line(sep.X, sep.Bottom, sep.X, sep.Top, separatorWidth) })
		if pn.err != nil {
			d.logger().Error("drawing separator failed", "tray", tray.Name, "err", pn.err)
			errs = append(errs, fmt.Errorf("separator: %w", pn.err))
		}
	}
	return res, errors.Join(errs...)
}

// drawBase draws the background, labels, tray outline and C-profile.
// Only a failed outline is fatal.
func (d *Drawer) drawBase(s Surface, res *Result) error {
	tray := res.Tray
	sc := d.Settings.Scale
	m := d.Settings.Margin
	centerX := tray.Width*sc/2 + m
	usable := tray.UsableHeight()
	heading := TextStyle{Size: titleFontSize, Align: AlignCenter}

	labels := &pen{s: s}
	labels.do("fillRect", func() error { return s.FillRect(0, 0, res.CanvasWidth, res.CanvasHeight, "white") })
	labels.do("save", s.Save)
	labels.do("text", func() error {
		return s.Text(centerX, m-model.TextPadding, "Cables bundles laying concept for tray "+tray.Name, heading)
	})
	labels.do("restore", s.Restore)

	labels.do("save", s.Save)
	labels.do("translate", func() error { return s.Translate(model.TextPadding, m+tray.Height*sc/2) })
	labels.do("rotate", func() error { return s.Rotate(math.Pi / 2) })
	labels.do("text", func() error {
		return s.Text(0, 0, fmt.Sprintf("Useful tray height: %s mm", model.FormatNumber(usable)), heading)
	})
	labels.do("restore", s.Restore)
	if labels.err != nil {
		d.logger().Warn("drawing tray labels failed", "tray", tray.Name, "err", labels.err)
	}

	outline := &pen{s: s}
	outline.do("strokeRect", func() error { return s.StrokeRect(m, m, tray.Width*sc, usable*sc) })
	outline.do("strokeRect", func() error {
		return s.StrokeRect(m, m+usable*sc, tray.Width*sc, model.CProfileHeight*sc)
	})
	outline.do("fillRect", func() error {
		return s.FillRect(m, m+usable*sc, tray.Width*sc, model.CProfileHeight*sc, cProfileFill)
	})
	if outline.err != nil {
		return fmt.Errorf("draw tray outline: %w", outline.err)
	}

	width := &pen{s: s}
	width.do("text", func() error {
		return s.Text(centerX, m+tray.Height*sc+model.TextPadding, fmt.Sprintf("Useful tray width: %s mm", model.FormatNumber(tray.Width)), heading)
	})
	if width.err != nil {
		d.logger().Warn("drawing width label failed", "tray", tray.Name, "err", width.err)
	}
	return nil
}

// placeSeparator positions the zone divider for tray purposes that need one.
// Both zone widths are bare diameter sums, sentinels included.
func placeSeparator(geo geometry, trayPurpose string, st *LayoutState) *Separator {
	var left, right []RowEntry
	var rightPurpose model.Purpose
	switch {
	case trayPurpose == model.TrayPurposeTypeB && len(st.Power) > 0 && len(st.VFD) > 0:
		left, right, rightPurpose = st.Power, st.VFD, model.PurposeVFD
	case trayPurpose == model.TrayPurposeTypeBC && len(st.Power) > 0 && len(st.Control) > 0:
		left, right, rightPurpose = st.Power, st.Control, model.PurposeControl
	default:
		return nil
	}

	l := rowDiameters(left)
	free := geo.width - (l + rowDiameters(right))
	return &Separator{
		X:         geo.margin + (l+free/2)*geo.scale,
		Top:       geo.margin, // full usable height, tray top to floor
		Bottom:    geo.floorY(),
		Left:      model.PurposePower,
		Right:     rightPurpose,
		FreeSpace: free,
	}
}
