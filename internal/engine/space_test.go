package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/TrayLayout/internal/model"
)

func TestCalculateSpace_SimplePower(t *testing.T) {
	cables := makeCables("Power", 20, 20, 20, 20)
	got, err := CalculateSpace(newTestTray(model.TrayPurposeTypeB, 400, 115), mustBundles(t, cables))
	require.NoError(t, err)

	assert.Equal(t, 42.0, got.Occupied)
	assert.Equal(t, 89.5, got.Available)
	assert.Equal(t, "(20 * 2) + 1 * 2 = 42 [mm]", got.OccupiedText)
	assert.Equal(t, "100 - (42 / 400 * 100) = 89.5 [%]", got.AvailableText)
	assert.Equal(t, []string{"Power-1", "Power-3"}, tags(got.BottomRow))
}

func TestCalculateSpace_HexagonalSkipsLiftedCables(t *testing.T) {
	cables := makeCables("Power", 42, 42, 42, 42, 42)
	got, err := CalculateSpace(newTestTray(model.TrayPurposeTypeB, 600, 115), mustBundles(t, cables))
	require.NoError(t, err)

	assert.Equal(t, 129.0, got.Occupied)
	assert.Equal(t, 78.5, got.Available)
	assert.Equal(t, "(42 * 3) + 1 * 3 = 129 [mm]", got.OccupiedText)
}

func TestCalculateSpace_SentinelsAreNotCounted(t *testing.T) {
	cables := makeCables("Power", 38, 40, 20, 20, 20)
	got, err := CalculateSpace(newTestTray(model.TrayPurposeTypeB, 600, 115), mustBundles(t, cables))
	require.NoError(t, err)

	assert.Equal(t, 122.0, got.Occupied)
	assert.Equal(t, "(40 * 1) + 1 * 1 + (38 * 1) + 1 * 1 + (20 * 2) + 1 * 2 = 122 [mm]", got.OccupiedText)
	for _, e := range got.BottomRow {
		assert.False(t, e.Sentinel)
	}
}

func TestCalculateSpace_MVIsNotCounted(t *testing.T) {
	cables := append(makeCables("Power", 20, 20), makeCables("MV", 30, 30, 30)...)
	tray := newTestTray(model.TrayPurposeTypeB, 400, 115)
	got, err := CalculateSpace(tray, mustBundles(t, cables))
	require.NoError(t, err)

	assert.Equal(t, 42.0, got.Occupied)
	assert.Equal(t, "(20 * 2) + 1 * 2 = 42 [mm]", got.OccupiedText)
	assert.Equal(t, []string{"Power-1", "Power-2"}, tags(got.BottomRow))

	// The drawing still lays the MV cables on the floor.
	res, err := newTestDrawer().Plan(tray, cables, mustBundles(t, cables))
	require.NoError(t, err)
	mv := 0
	for _, e := range FloorCables(res.State.Power) {
		if e.Purpose == model.PurposeMV {
			mv++
		}
	}
	assert.Positive(t, mv)
}

func TestCalculateSpace_OnlyMV(t *testing.T) {
	got, err := CalculateSpace(newTestTray(model.TrayPurposeTypeB, 400, 115), mustBundles(t, makeCables("MV", 30, 30)))
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.Occupied)
	assert.Equal(t, NotApplicable, got.OccupiedText)
}

func TestCalculateSpace_TypeAIsNotApplicable(t *testing.T) {
	cables := makeCables("Power", 20, 20, 20)
	got, err := CalculateSpace(newTestTray(model.TrayPurposeTypeA, 400, 115), mustBundles(t, cables))
	require.NoError(t, err)
	assert.Equal(t, SpaceResult{Occupied: 0, Available: 100, OccupiedText: NotApplicable, AvailableText: NotApplicable}, got)
}

func TestCalculateSpace_NoCables(t *testing.T) {
	got, err := CalculateSpace(newTestTray(model.TrayPurposeTypeBC, 400, 115), BundleMap{})
	require.NoError(t, err)
	assert.Equal(t, NotApplicable, got.OccupiedText)
	assert.Equal(t, 100.0, got.Available)
}

func TestCalculateSpace_Errors(t *testing.T) {
	_, err := CalculateSpace(newTestTray(model.TrayPurposeTypeB, 400, 115), nil)
	assert.True(t, errors.Is(err, model.ErrInvalidArgument))

	_, err = CalculateSpace(newTestTray(model.TrayPurposeTypeB, 0, 115), BundleMap{})
	assert.True(t, errors.Is(err, model.ErrInvalidArgument))

	m := BundleMap{model.PurposeVFD: {model.Bucket21To30: {{Tag: "V-BAD"}}}}
	_, err = CalculateSpace(newTestTray(model.TrayPurposeTypeB, 400, 115), m)
	var pe *PurposeError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, model.PurposeVFD, pe.Purpose)
}

// The width calculation must see exactly the floor cables the drawing puts down.
func TestCalculateSpace_MatchesDrawing(t *testing.T) {
	var cables []model.Cable
	cables = append(cables, makeCables("Power", 42, 42, 42, 42, 42, 20, 20, 20, 20, 38, 40)...)
	cables = append(cables, makeCables("Control", 10, 10, 10, 12, 12)...)
	cables = append(cables, makeCables("MV", 35, 35, 35, 35)...)
	vfd := makeCables("VFD", 35, 35, 35, 36, 36, 20, 20, 20)
	vfd[3].ToLocation = "M2"
	vfd[4].ToLocation = "M2"
	cables = append(cables, vfd...)

	for _, h := range []float64{60, 115, 215} {
		tray := newTestTray(model.TrayPurposeTypeB, 1200, h)
		m := mustBundles(t, cables)

		res, err := newTestDrawer().Plan(tray, cables, m)
		require.NoError(t, err)
		space, err := CalculateSpace(tray, m)
		require.NoError(t, err)

		var drawn []RowEntry
		for _, row := range [][]RowEntry{res.State.Power, res.State.Control, res.State.VFD} {
			for _, e := range FloorCables(row) {
				// MV shares the left zone but is not part of the free-space figure.
				if e.Purpose != model.PurposeMV {
					drawn = append(drawn, e)
				}
			}
		}

		assert.ElementsMatch(t, tags(drawn), tags(space.BottomRow), "height %g", h)
		assert.InDelta(t, rowWidth(drawn), space.Occupied, delta, "height %g", h)
	}
}
