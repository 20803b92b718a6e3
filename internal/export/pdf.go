// Package export writes tray layouts and their calculations to PDF, DXF
// and Excel files.
package export

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/TrayLayout/internal/engine"
	"github.com/piwi3910/TrayLayout/internal/model"
)

// Page layout constants in mm.
const (
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	footerHeight = 8.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	rowHeight    = 6.0
)

// PDFSurface draws engine calls onto the current page of a PDF document,
// fitting the canvas into a box on the page.
type PDFSurface struct {
	engine.TransformStack

	pdf     *fpdf.Fpdf
	tr      func(string) string
	originX float64 // mm
	originY float64 // mm
	k       float64 // mm per px
}

// NewPDFSurface maps a canvasW x canvasH px canvas into the box at (x, y)
// of size w x h mm, centred and keeping the aspect ratio.
func NewPDFSurface(pdf *fpdf.Fpdf, x, y, w, h, canvasW, canvasH float64) *PDFSurface {
	k := math.Min(w/canvasW, h/canvasH)
	return &PDFSurface{
		pdf:     pdf,
		tr:      pdf.UnicodeTranslatorFromDescriptor(""),
		originX: x + (w-canvasW*k)/2,
		originY: y + (h-canvasH*k)/2,
		k:       k,
	}
}

// Scale returns the page mm per canvas px.
func (s *PDFSurface) Scale() float64 { return s.k }

func (s *PDFSurface) Ready() error {
	if s.pdf == nil {
		return errors.New("no PDF document")
	}
	if s.pdf.PageNo() == 0 {
		return errors.New("PDF document has no page")
	}
	return s.pdf.Error()
}

func (s *PDFSurface) point(x, y float64) (float64, float64) {
	cx, cy := s.Current().Apply(x, y)
	return s.originX + cx*s.k, s.originY + cy*s.k
}

func (s *PDFSurface) polygon(x, y, w, h float64, style string) error {
	corners := [4][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	pts := make([]fpdf.PointType, len(corners))
	for i, c := range corners {
		pts[i].X, pts[i].Y = s.point(c[0], c[1])
	}
	s.pdf.Polygon(pts, style)
	return s.pdf.Error()
}

func (s *PDFSurface) FillRect(x, y, w, h float64, fill string) error {
	col, err := engine.ParseColor(fill)
	if err != nil {
		return err
	}
	s.pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
	return s.polygon(x, y, w, h, "F")
}

func (s *PDFSurface) StrokeRect(x, y, w, h float64) error {
	s.pdf.SetDrawColor(0, 0, 0)
	s.pdf.SetLineWidth(s.k)
	return s.polygon(x, y, w, h, "D")
}

func (s *PDFSurface) Circle(cx, cy, r float64) error {
	s.pdf.SetDrawColor(0, 0, 0)
	s.pdf.SetLineWidth(s.k)
	px, py := s.point(cx, cy)
	s.pdf.Circle(px, py, r*s.k, "D")
	return s.pdf.Error()
}

func (s *PDFSurface) Line(x1, y1, x2, y2, width float64) error {
	s.pdf.SetDrawColor(0, 0, 0)
	s.pdf.SetLineWidth(width * s.k)
	ax, ay := s.point(x1, y1)
	bx, by := s.point(x2, y2)
	s.pdf.Line(ax, ay, bx, by)
	return s.pdf.Error()
}

func (s *PDFSurface) Text(x, y float64, text string, style engine.TextStyle) error {
	px, py := s.point(x, y)
	size := style.Size * s.k
	txt := s.tr(text)

	s.pdf.SetFont("Helvetica", "", 0)
	s.pdf.SetFontUnitSize(size)
	s.pdf.SetTextColor(0, 0, 0)
	w := s.pdf.GetStringWidth(txt)
	left := px
	switch style.Align {
	case engine.AlignCenter:
		left -= w / 2
	case engine.AlignRight:
		left -= w
	}

	// fpdf rotates counter-clockwise with y up; the canvas turns clockwise.
	angle := s.Current().Angle()
	if angle != 0 {
		s.pdf.TransformBegin()
		s.pdf.TransformRotate(-angle*180/math.Pi, px, py)
	}
	s.pdf.SetXY(left, py-size/2)
	s.pdf.CellFormat(w, size, txt, "", 0, "L", false, 0, "")
	if angle != 0 {
		s.pdf.TransformEnd()
	}
	return s.pdf.Error()
}

// ReportInput is everything needed to write one tray report.
type ReportInput struct {
	Tray     model.Tray
	Cables   []model.Cable
	Bundles  engine.BundleMap
	Settings model.DrawSettings
	Config   model.AppConfig
	Logger   *log.Logger
	Date     time.Time
}

// ExportTrayReport writes a PDF with the tray drawing, its space and weight
// calculations, and the list of cables on it. The file is still written
// when single purposes fail to draw; their errors are returned afterwards.
func ExportTrayReport(path string, in ReportInput) error {
	pageSize := in.Config.PDFPageSize
	if pageSize == "" {
		pageSize = "A4"
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}

	pdf := fpdf.New("L", "mm", pageSize, "")
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to create PDF: %w", err)
	}
	pdf.SetAutoPageBreak(false, marginBottom)
	pageW, pageH := pdf.GetPageSize()

	space, err := engine.CalculateSpace(in.Tray, in.Bundles)
	if err != nil {
		return fmt.Errorf("failed to calculate space for tray %s: %w", in.Tray.Name, err)
	}
	weights := model.CalculateWeights(in.Tray, in.Cables)
	summary := Summarize(in.Tray, len(in.Cables), space, weights)

	// Drawing page
	pdf.AddPage()
	renderPageHeader(pdf, pageW, "Tray "+in.Tray.Name, in.Config.ReportHeader)
	cw, ch := engine.CanvasSize(in.Tray, in.Settings)
	surface := NewPDFSurface(pdf, marginLeft, drawAreaTop,
		pageW-marginLeft-marginRight, pageH-drawAreaTop-marginBottom-footerHeight, cw, ch)

	drawer := engine.New(in.Settings)
	drawer.Logger = in.Logger
	res, drawErr := drawer.Draw(surface, in.Tray, in.Cables, in.Bundles)
	if res == nil {
		return fmt.Errorf("failed to draw tray %s: %w", in.Tray.Name, drawErr)
	}
	renderPageFooter(pdf, pageW, pageH, FillTemplate(in.Config.ReportFooter, summary, in.Date))

	// Calculations page
	pdf.AddPage()
	renderPageHeader(pdf, pageW, "Calculations for tray "+in.Tray.Name, in.Config.ReportHeader)
	if err := renderQRCode(pdf, "summary_"+in.Tray.Name, pageW-marginRight-reportQRSize, marginTop, reportQRSize, summary); err != nil {
		return err
	}
	y := renderTrayData(pdf, drawAreaTop, in.Tray)
	renderCalculations(pdf, pageW, y+4, space, weights)
	renderPageFooter(pdf, pageW, pageH, FillTemplate(in.Config.ReportFooter, summary, in.Date))

	// Cable list
	renderCableList(pdf, pageW, pageH, in.Tray, in.Cables, in.Config.ReportHeader)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return drawErr
}

func renderPageHeader(pdf *fpdf.Fpdf, pageW float64, title, header string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageW-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	if header != "" {
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.SetXY(marginLeft, marginTop+headerHeight-2)
		pdf.CellFormat(pageW-marginLeft-marginRight, 5, header, "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
}

func renderPageFooter(pdf *fpdf.Fpdf, pageW, pageH float64, footer string) {
	if footer == "" {
		return
	}
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)
	pdf.SetXY(marginLeft, pageH-marginBottom-footerHeight/2)
	pdf.CellFormat(pageW-marginLeft-marginRight, footerHeight/2, footer, "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// renderTrayData lists the tray's dimensions and returns the next free y.
func renderTrayData(pdf *fpdf.Fpdf, y float64, t model.Tray) float64 {
	items := []struct {
		label string
		value string
	}{
		{"Tray type", t.Type},
		{"Purpose", ShortTrayPurpose(t.Purpose)},
		{"Width", model.FormatNumber(t.Width) + " mm"},
		{"Height", model.FormatNumber(t.Height) + " mm"},
		{"Useful height", model.FormatNumber(t.UsableHeight()) + " mm"},
		{"Length", model.FormatNumber(t.Length) + " mm"},
		{"Weight", model.FormatNumber(t.Weight) + " kg/m"},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(45, rowHeight, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, rowHeight, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += rowHeight + 1
	}
	return y
}

func renderCalculations(pdf *fpdf.Fpdf, pageW, y float64, space engine.SpaceResult, w model.WeightReport) {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	sections := []struct {
		title string
		rows  [][2]string
	}{
		{"Cables bundles space", [][2]string{
			{"Occupied width", space.OccupiedText},
			{"Free space", space.AvailableText},
		}},
		{"Supports", [][2]string{
			{"Count", w.Supports.CountText},
			{"Weight", w.Supports.TotalWeightText},
			{"Weight per meter", w.Supports.WeightPerMeterText},
		}},
		{"Tray own weight", [][2]string{
			{"Weight per meter", w.Own.WeightPerMeterText},
			{"Weight load", w.Own.WeightLoadText},
		}},
		{"Cables weight", [][2]string{
			{"Weight per meter", w.Cables.WeightPerMeterText},
			{"Weight load", w.Cables.WeightLoadText},
		}},
		{"Total weight", [][2]string{
			{"Weight per meter", w.Total.WeightPerMeterText},
			{"Weight load", w.Total.WeightLoadText},
		}},
	}

	valueW := pageW - marginLeft - marginRight - 50
	for _, sec := range sections {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(100, 7, sec.title, "", 0, "L", false, 0, "")
		y += 7

		pdf.SetFont("Helvetica", "", 9)
		for _, row := range sec.rows {
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(45, rowHeight, row[0], "", 0, "L", false, 0, "")
			pdf.CellFormat(valueW, rowHeight, tr(row[1]), "", 0, "L", false, 0, "")
			y += rowHeight
		}
		y += 2
	}
}

// renderCableList prints the tray's cables as a table, continuing on new
// pages as needed.
func renderCableList(pdf *fpdf.Fpdf, pageW, pageH float64, tray model.Tray, cables []model.Cable, header string) {
	colWidths := []float64{12, 40, 60, 22, 25, 25, 40, 40}
	headers := []string{"No.", "Tag", "Type", "Purpose", "Diameter", "Weight", "From", "To"}

	var y float64
	newPage := func() {
		pdf.AddPage()
		renderPageHeader(pdf, pageW, "Cables on tray "+tray.Name, header)
		y = drawAreaTop
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		x := marginLeft
		for i, h := range headers {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[i], rowHeight, h, "1", 0, "C", true, 0, "")
			x += colWidths[i]
		}
		y += rowHeight
		pdf.SetFont("Helvetica", "", 9)
	}
	newPage()

	if len(cables) == 0 {
		pdf.SetXY(marginLeft, y+2)
		pdf.CellFormat(100, rowHeight, model.NoCablesText, "", 0, "L", false, 0, "")
		return
	}

	for i, c := range cables {
		if y+rowHeight > pageH-marginBottom {
			newPage()
		}
		purpose := ""
		if c.Type != nil {
			purpose = c.Type.Purpose
		}
		row := []string{
			strconv.Itoa(i + 1),
			c.Tag,
			c.TypeName,
			purpose,
			model.FormatNumber(c.Diameter()) + " mm",
			model.FormatNumber(c.Weight()) + " kg/m",
			c.FromLocation,
			c.ToLocation,
		}

		// Alternate row background
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		x := marginLeft
		for j, cell := range row {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], rowHeight, cell, "1", 0, "C", true, 0, "")
			x += colWidths[j]
		}
		y += rowHeight
	}
}
