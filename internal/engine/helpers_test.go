package engine

import (
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/TrayLayout/internal/model"
)

func newTestTray(purpose string, width, height float64) model.Tray {
	return model.Tray{Name: "T-100", Type: "KL 100.603", Purpose: purpose, Width: width, Height: height, Length: 6000}
}

// makeCables builds one cable per diameter, tagged "<purpose>-1", "<purpose>-2", ...
func makeCables(purpose string, diameters ...float64) []model.Cable {
	out := make([]model.Cable, len(diameters))
	for i, d := range diameters {
		ct := model.NewCableType(fmt.Sprintf("%s %gmm", purpose, d), purpose, d, 1)
		out[i] = model.NewCable(fmt.Sprintf("%s-%d", purpose, i+1), &ct, "MCC-1", "M1", "T-100")
	}
	return out
}

func mustBundles(t *testing.T, cables []model.Cable) BundleMap {
	t.Helper()
	m, err := BuildBundleMap(cables)
	require.NoError(t, err)
	return m
}

func newTestDrawer() *Drawer {
	d := New(model.DefaultDrawSettings())
	d.Logger = log.New(io.Discard)
	return d
}

func tags(entries []RowEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Tag
	}
	return out
}
