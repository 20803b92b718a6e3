package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/TrayLayout/internal/engine"
	"github.com/piwi3910/TrayLayout/internal/model"
)

func buildTestTray() model.Tray {
	return model.NewTray("T-100", "KL 300.603", model.TrayPurposeTypeBC, 300, 100, 6000, 4.5)
}

func buildTestCables() []model.Cable {
	power := model.NewCableType("NYY 4x95", "Power", 42, 4.2)
	control := model.NewCableType("JZ 12x1.5", "Control", 11, 0.3)
	var cables []model.Cable
	for i := 1; i <= 4; i++ {
		cables = append(cables, model.NewCable(fmt.Sprintf("P-%d", i), &power, "MCC-1", "M1", "T-100"))
	}
	for i := 1; i <= 3; i++ {
		cables = append(cables, model.NewCable(fmt.Sprintf("C-%d", i), &control, "MCC-1", "JB-2", "T-100"))
	}
	return cables
}

func buildTestInput(t *testing.T) ReportInput {
	t.Helper()
	cables := buildTestCables()
	bundles, err := engine.BuildBundleMap(cables)
	require.NoError(t, err)
	return ReportInput{
		Tray:     buildTestTray(),
		Cables:   cables,
		Bundles:  bundles,
		Settings: model.DefaultDrawSettings(),
		Config:   model.DefaultAppConfig(),
		Logger:   log.New(io.Discard),
		Date:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func requireFile(t *testing.T, path string, minSize int64) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err, "file was not created")
	assert.Greater(t, info.Size(), minSize)
}

func TestExportTrayReport_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, ExportTrayReport(path, buildTestInput(t)))
	requireFile(t, path, 500)
}

func TestExportTrayReport_NoCables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	in := buildTestInput(t)
	in.Cables = nil
	in.Bundles = engine.BundleMap{}
	require.NoError(t, ExportTrayReport(path, in))
	requireFile(t, path, 500)
}

func TestExportTrayReport_InvalidTray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.pdf")
	in := buildTestInput(t)
	in.Tray.Width = 0

	err := ExportTrayReport(path, in)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestExportTrayReport_LongCableList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "long.pdf")
	in := buildTestInput(t)
	ct := model.NewCableType("JZ 3x1.5", "Control", 8, 0.1)
	for i := 0; i < 80; i++ {
		c := model.NewCable(fmt.Sprintf("X-%d", i), &ct, "A", "B", "T-100")
		in.Cables = append(in.Cables, c)
		require.NoError(t, in.Bundles.Add(c))
	}
	require.NoError(t, ExportTrayReport(path, in))
	requireFile(t, path, 500)
}

func TestPDFSurface_NoPageIsNotReady(t *testing.T) {
	pdf := fpdf.New("L", "mm", "A4", "")
	s := NewPDFSurface(pdf, 0, 0, 100, 100, 400, 200)
	require.Error(t, s.Ready())

	in := buildTestInput(t)
	_, err := engine.New(in.Settings).Draw(s, in.Tray, in.Cables, in.Bundles)
	assert.ErrorIs(t, err, engine.ErrSurfaceNotReady)
}

func TestPDFSurface_FitsCanvas(t *testing.T) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	s := NewPDFSurface(pdf, 10, 20, 200, 100, 400, 100)
	assert.InDelta(t, 0.5, s.Scale(), 1e-9)
	require.NoError(t, s.Ready())

	// The canvas is 200 x 50 mm on the page, centred vertically.
	x, y := s.point(0, 0)
	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, 45, y, 1e-9)
}

func TestPDFSurface_RejectsUnknownColor(t *testing.T) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	s := NewPDFSurface(pdf, 0, 0, 100, 100, 100, 100)
	assert.Error(t, s.FillRect(0, 0, 10, 10, "chartreuse"))
}

func TestExportTrayLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")
	var trays []TraySummary
	for i := 0; i < 35; i++ {
		trays = append(trays, TraySummary{Name: fmt.Sprintf("T-%03d", i), Type: "KL 300.603", Purpose: "Type B", Cables: i, FreeSpace: "50"})
	}
	require.NoError(t, ExportTrayLabels(path, trays))
	requireFile(t, path, 1000)
}

func TestExportTrayLabels_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")
	assert.Error(t, ExportTrayLabels(path, nil))
}

func TestExportDXF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tray.dxf")
	in := buildTestInput(t)
	require.NoError(t, ExportDXF(path, in.Tray, in.Cables, in.Bundles, in.Settings))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, LayerCables)
	assert.Contains(t, content, LayerSeparator)
	assert.Contains(t, content, "CIRCLE")
	assert.Contains(t, content, "Useful tray width: 300 mm")
}

func TestDXFSurface_RotatedHeightLabel(t *testing.T) {
	in := buildTestInput(t)
	_, ch := engine.CanvasSize(in.Tray, in.Settings)
	s, err := NewDXFSurface(ch)
	require.NoError(t, err)
	_, err = engine.New(in.Settings).Draw(s, in.Tray, in.Cables, in.Bundles)
	require.NoError(t, err)

	texts := make(map[string]*entity.Text)
	for _, e := range s.d.Entities() {
		if txt, ok := e.(*entity.Text); ok {
			texts[txt.Value] = txt
		}
	}
	height, ok := texts["Useful tray height: 85 mm"]
	require.True(t, ok, "height label not written")
	assert.InDelta(t, -90.0, height.Rotation, 1e-9)

	width, ok := texts["Useful tray width: 300 mm"]
	require.True(t, ok, "width label not written")
	assert.InDelta(t, 0.0, width.Rotation, 1e-9)
}

func TestDXFSurface_FlipsY(t *testing.T) {
	s, err := NewDXFSurface(200)
	require.NoError(t, err)
	x, y := s.point(10, 50)
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 150.0, y)
}

func TestExportTraysExcel_WritesRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trays.xlsx")
	trays := []TraySummary{
		{Name: "T-1", Type: "KL 300.603", Purpose: "Type B", Width: 300, Height: 100, Length: 6000, Cables: 4, FreeSpace: "42.5"},
		{Name: "T-2", Type: "KL 200.603", Purpose: "Type A", Width: 200, Height: 100, Length: 3000, Cables: 3, FreeSpace: engine.NotApplicable},
	}
	require.NoError(t, ExportTraysExcel(path, trays))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(traysSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Name", rows[0][0])
	assert.Equal(t, "Available space [%]", rows[0][7])
	assert.Equal(t, "T-1", rows[1][0])
	assert.Equal(t, "42.5", rows[1][7])
	assert.Equal(t, "N/A", rows[2][7])
}

func TestExportTraysExcel_NoTrays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.xlsx")
	require.NoError(t, ExportTraysExcel(path, nil))
	requireFile(t, path, 0)
}

func TestSummarize(t *testing.T) {
	tray := buildTestTray()
	space := engine.SpaceResult{Occupied: 129, Available: 57, OccupiedText: "(42 * 3) + 1 * 3 = 129 [mm]"}
	weights := model.WeightReport{
		Supports: model.SupportsWeight{Count: 3},
		Cables:   model.CablesWeight{HasCables: true, WeightPerMeter: 13.05},
		Total:    model.TotalWeight{WeightLoad: 120.5},
	}

	s := Summarize(tray, 7, space, weights)
	assert.Equal(t, "T-100", s.Name)
	assert.Equal(t, "Type BC", s.Purpose)
	assert.Equal(t, 7, s.Cables)
	assert.Equal(t, "129", s.DiametersSum)
	assert.Equal(t, "57", s.FreeSpace)
	assert.Equal(t, 3, s.SupportsCount)
	assert.Equal(t, 120.5, s.TotalWeight)
}

func TestSummarize_NotApplicable(t *testing.T) {
	tray := buildTestTray()
	tray.Purpose = model.TrayPurposeTypeA
	space := engine.SpaceResult{Available: 100, OccupiedText: engine.NotApplicable, AvailableText: engine.NotApplicable}

	s := Summarize(tray, 0, space, model.WeightReport{})
	assert.Equal(t, engine.NotApplicable, s.DiametersSum)
	assert.Equal(t, engine.NotApplicable, s.FreeSpace)
}

func TestShortTrayPurpose(t *testing.T) {
	assert.Equal(t, "Type A", ShortTrayPurpose(model.TrayPurposeTypeA))
	assert.Equal(t, "Type BC", ShortTrayPurpose(model.TrayPurposeTypeBC))
	assert.Equal(t, "custom", ShortTrayPurpose("custom"))
}

func TestFillTemplate(t *testing.T) {
	s := TraySummary{Name: "T-7", Cables: 4, DiametersSum: "89.5", FreeSpace: "10.5", SupportsCount: 3, TotalWeight: 12.3456}
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	got := FillTemplate("{TrayName}: {CablesCount} cables, {DiametersSum} mm, {FreeSpace} %, {TotalWeight} kg, {Date} {Unknown}", s, date)
	assert.Equal(t, "T-7: 4 cables, 89.5 mm, 10.5 %, 12.346 kg, 2024-03-01 {Unknown}", got)
}

func TestSafeFileName(t *testing.T) {
	assert.Equal(t, "T_100_A", SafeFileName("T/100 A"))
	assert.Equal(t, "tray", SafeFileName("  "))
	assert.False(t, strings.ContainsAny(SafeFileName(`a:b*c?"d`), `:*?"`))
}

func TestExportTrayReport_UnresolvedCable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unresolved.pdf")
	in := buildTestInput(t)
	broken := model.Cable{Tag: "X-1", TypeName: "missing"}
	in.Bundles[model.PurposePower][model.Bucket40To45] = append(in.Bundles[model.PurposePower][model.Bucket40To45], broken)

	err := ExportTrayReport(path, in)
	require.Error(t, err)
	var ce *model.CableError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "X-1", ce.Tag)
	assert.ErrorIs(t, err, model.ErrDataInconsistency)
}
