package widgets

import (
	"fmt"
	"io"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/TrayLayout/internal/engine"
	"github.com/piwi3910/TrayLayout/internal/model"
)

func testTray() (model.Tray, []model.Cable, engine.BundleMap) {
	tray := model.NewTray("T-1", "KL 200.603", model.TrayPurposeTypeB, 200, 100, 3000, 3)
	ct := model.NewCableType("NYY 4x25", "Power", 20, 1.2)
	var cables []model.Cable
	for i := 1; i <= 3; i++ {
		cables = append(cables, model.NewCable(fmt.Sprintf("P-%d", i), &ct, "A", "B", "T-1"))
	}
	bundles, _ := engine.BuildBundleMap(cables)
	return tray, cables, bundles
}

func countCircles(objs []fyne.CanvasObject) int {
	n := 0
	for _, o := range objs {
		if _, ok := o.(*canvas.Circle); ok {
			n++
		}
	}
	return n
}

func TestTraySurface_DrawsEveryCable(t *testing.T) {
	test.NewTempApp(t)
	tray, cables, bundles := testTray()

	s := NewTraySurface(1)
	d := engine.New(model.DefaultDrawSettings())
	d.Logger = log.New(io.Discard)
	_, err := d.Draw(s, tray, cables, bundles)
	require.NoError(t, err)
	assert.Equal(t, len(cables), countCircles(s.Objects))
}

func TestTraySurface_CircleBounds(t *testing.T) {
	s := NewTraySurface(2)
	require.NoError(t, s.Circle(50, 40, 10))

	c := s.Objects[0].(*canvas.Circle)
	assert.Equal(t, fyne.NewPos(80, 60), c.Position())
	assert.Equal(t, fyne.NewSize(40, 40), c.Size())
}

func TestTraySurface_FollowsTranslate(t *testing.T) {
	s := NewTraySurface(1)
	require.NoError(t, s.Save())
	require.NoError(t, s.Translate(10, 20))
	require.NoError(t, s.Line(0, 0, 5, 0, 2))
	require.NoError(t, s.Restore())

	l := s.Objects[0].(*canvas.Line)
	assert.Equal(t, fyne.NewPos(10, 20), l.Position1)
	assert.Equal(t, fyne.NewPos(15, 20), l.Position2)
	assert.Equal(t, float32(2), l.StrokeWidth)
}

func TestTraySurface_RejectsUnknownColor(t *testing.T) {
	s := NewTraySurface(1)
	assert.Error(t, s.FillRect(0, 0, 1, 1, "not-a-color"))
}

func TestTrayCanvas_FitsBounds(t *testing.T) {
	test.NewTempApp(t)
	tray, cables, bundles := testTray()

	tc := NewTrayCanvas(tray, cables, bundles, model.DefaultDrawSettings(), log.New(io.Discard), 150, 100)
	size := tc.MinSize()
	assert.LessOrEqual(t, size.Width, float32(150))
	assert.LessOrEqual(t, size.Height, float32(100))
	assert.NoError(t, tc.Err)
}
