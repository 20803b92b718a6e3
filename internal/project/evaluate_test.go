package project

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/TrayLayout/internal/model"
)

func TestRepositoryEvaluate(t *testing.T) {
	p := sampleProject()
	repo := NewRepository(&p)

	ev, err := repo.Evaluate(p.Trays[0])
	require.NoError(t, err)
	assert.Len(t, ev.Cables, 3)
	assert.Equal(t, 3, ev.Bundles.Len())
	// Two 26 mm power cables and one 7.4 mm control cable on the floor.
	assert.InDelta(t, 62.4, ev.Space.Occupied, 1e-9)
	assert.InDelta(t, 84.4, ev.Space.Available, 1e-9)
	assert.True(t, ev.Weights.Cables.HasCables)
}

func TestRepositoryEvaluateTypeA(t *testing.T) {
	p := sampleProject()
	p.Trays[0].Purpose = model.TrayPurposeTypeA
	repo := NewRepository(&p)

	ev, err := repo.Evaluate(p.Trays[0])
	require.NoError(t, err)
	assert.Equal(t, "N/A", ev.Space.OccupiedText)
	assert.Equal(t, 100.0, ev.Space.Available)
}

func TestRepositoryEvaluateAllReportsFailures(t *testing.T) {
	p := sampleProject()
	p.Trays = append(p.Trays, model.NewTray("T3", "KL 60.100", model.TrayPurposeTypeB, 0, 60, 3000, 2))
	repo := NewRepository(&p)

	var failed []string
	evs := repo.EvaluateAll(func(tray model.Tray, err error) {
		failed = append(failed, tray.Name)
		assert.True(t, errors.Is(err, model.ErrInvalidArgument))
	})
	assert.Len(t, evs, 1)
	assert.Equal(t, []string{"T3"}, failed)
}
