package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/TrayLayout/internal/model"
)

func cableTags(cables []model.Cable) []string {
	out := make([]string, len(cables))
	for i, c := range cables {
		out[i] = c.Tag
	}
	return out
}

func slotTags(slots []slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.cable.Tag
	}
	return out
}

func TestPhaseRotate_FullBlocks(t *testing.T) {
	cables := makeCables("MV", 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1)
	got := cableTags(phaseRotate(cables))
	assert.Equal(t, []string{
		"MV-2", "MV-3", "MV-1", "MV-6", "MV-5", "MV-4",
		"MV-8", "MV-9", "MV-7", "MV-12", "MV-11", "MV-10",
	}, got)
}

func TestPhaseRotate_PartialBlock(t *testing.T) {
	tests := []struct {
		n    int
		want []string
	}{
		{1, []string{"MV-1"}},
		{2, []string{"MV-2", "MV-1"}},
		{3, []string{"MV-2", "MV-3", "MV-1"}},
		{4, []string{"MV-2", "MV-3", "MV-1", "MV-4"}},
		{5, []string{"MV-2", "MV-3", "MV-1", "MV-5", "MV-4"}},
		{8, []string{"MV-2", "MV-3", "MV-1", "MV-6", "MV-5", "MV-4", "MV-8", "MV-7"}},
	}
	for _, tt := range tests {
		diameters := make([]float64, tt.n)
		for i := range diameters {
			diameters[i] = 30
		}
		assert.Equal(t, tt.want, cableTags(phaseRotate(makeCables("MV", diameters...))), "n=%d", tt.n)
	}
}

func TestLiftsIntoHexRow(t *testing.T) {
	tests := []struct {
		i      int
		d      float64
		usable float64
		want   bool
	}{
		{0, 42, 100, false},
		{1, 42, 100, false},
		{2, 42, 100, true},
		{3, 42, 100, false},
		{4, 42, 100, true},
		{2, 45, 100, true},
		{2, 50, 100, false},
		{2, 42, 45, false},
		{2, 42, 46, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, liftsIntoHexRow(tt.i, tt.d, tt.usable), "i=%d d=%g usable=%g", tt.i, tt.d, tt.usable)
	}
}

func TestSequenceBundle_HexagonalPower(t *testing.T) {
	m := mustBundles(t, makeCables("Power", 42, 42, 42, 42, 42))
	seq, err := sequenceBundle(m.Bundles(model.PurposePower)[0], 100)
	require.NoError(t, err)

	assert.Equal(t, modeHexagonal, seq.mode)
	lifted := make([]bool, len(seq.slots))
	for i, s := range seq.slots {
		lifted[i] = s.lifted
	}
	assert.Equal(t, []bool{false, false, true, false, true}, lifted)
	assert.Equal(t, []string{"Power-1", "Power-2", "Power-4"}, slotTags(seq.floorSlots()))
}

func TestSequenceBundle_HexagonalLargeCablesStayOnFloor(t *testing.T) {
	m := mustBundles(t, makeCables("Power", 50, 50, 50, 50))
	seq, err := sequenceBundle(m.Bundles(model.PurposePower)[0], 100)
	require.NoError(t, err)
	assert.Equal(t, modeHexagonal, seq.mode)
	assert.Len(t, seq.floorSlots(), 4)
}

func TestSequenceBundle_PhaseRotationLiftsEveryThird(t *testing.T) {
	m := mustBundles(t, makeCables("MV", 35, 34, 33, 32, 31, 30.5))
	seq, err := sequenceBundle(m.Bundles(model.PurposeMV)[0], 100)
	require.NoError(t, err)

	assert.Equal(t, modePhaseRotation, seq.mode)
	assert.Equal(t, []string{"MV-2", "MV-3", "MV-1", "MV-6", "MV-5", "MV-4"}, slotTags(seq.slots))
	assert.True(t, seq.slots[2].lifted)
	assert.True(t, seq.slots[5].lifted)
	assert.Equal(t, []string{"MV-2", "MV-3", "MV-6", "MV-5"}, slotTags(seq.floorSlots()))
	assert.Equal(t, "MV-1", seq.largest.Tag)
}

func TestSequenceBundle_GroupedVFD(t *testing.T) {
	cables := makeCables("VFD", 32, 35, 33, 36, 34)
	cables[0].ToLocation = "M1"
	cables[1].ToLocation = "M2"
	cables[2].ToLocation = "M1"
	cables[3].ToLocation = "M2"
	cables[4].ToLocation = "M1"

	m := mustBundles(t, cables)
	seq, err := sequenceBundle(m.Bundles(model.PurposeVFD)[0], 100)
	require.NoError(t, err)

	assert.Equal(t, modeGroupedHex, seq.mode)
	require.Len(t, seq.groups, 2)
	assert.Equal(t, []string{"VFD-5", "VFD-3", "VFD-1"}, slotTags(seq.groups[0]))
	assert.Equal(t, []string{"VFD-4", "VFD-2"}, slotTags(seq.groups[1]))
	assert.True(t, seq.groups[0][2].lifted)
	assert.Equal(t, []string{"VFD-5", "VFD-3", "VFD-4", "VFD-2"}, slotTags(seq.floorSlots()))
}

func TestSequenceBundle_VerticalStackRows(t *testing.T) {
	m := mustBundles(t, makeCables("Control", 10, 10, 10))
	seq, err := sequenceBundle(m.Bundles(model.PurposeControl)[0], 100)
	require.NoError(t, err)

	assert.Equal(t, modeVerticalStack, seq.mode)
	assert.Equal(t, 2, seq.rows)
	assert.Equal(t, []int{0, 1, 0}, []int{seq.slots[0].row, seq.slots[1].row, seq.slots[2].row})
	assert.Equal(t, []string{"Control-1", "Control-3"}, slotTags(seq.floorSlots()))
}
