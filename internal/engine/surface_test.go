package engine

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransform_TranslateThenRotate(t *testing.T) {
	tr := Identity().Translate(20, 100).Rotate(math.Pi / 2)

	x, y := tr.Apply(0, 0)
	assert.InDelta(t, 20, x, delta)
	assert.InDelta(t, 100, y, delta)

	// A quarter turn maps the local x axis onto the canvas y axis.
	x, y = tr.Apply(10, 0)
	assert.InDelta(t, 20, x, delta)
	assert.InDelta(t, 110, y, delta)
	assert.InDelta(t, math.Pi/2, tr.Angle(), delta)
}

func TestTransformStack_SaveRestore(t *testing.T) {
	var s TransformStack
	assert.Equal(t, Identity(), s.Current())

	require.NoError(t, s.Save())
	require.NoError(t, s.Translate(5, 5))
	x, y := s.Current().Apply(0, 0)
	assert.Equal(t, 5.0, x)
	assert.Equal(t, 5.0, y)

	require.NoError(t, s.Restore())
	assert.Equal(t, Identity(), s.Current())
	assert.Error(t, s.Restore())
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"white", color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{"Black", color.NRGBA{A: 255}},
		{"#D3D3D3", color.NRGBA{R: 0xd3, G: 0xd3, B: 0xd3, A: 255}},
		{"#f00", color.NRGBA{R: 255, A: 255}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "teal", "D3D3D3", "#12345", "#zzzzzz"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestRecorder_Replay(t *testing.T) {
	src := &Recorder{}
	require.NoError(t, src.FillRect(0, 0, 10, 10, "white"))
	require.NoError(t, src.Save())
	require.NoError(t, src.Translate(1, 2))
	require.NoError(t, src.Rotate(0.5))
	require.NoError(t, src.Text(0, 0, "label", TextStyle{Size: 12, Align: AlignCenter}))
	require.NoError(t, src.Restore())
	require.NoError(t, src.Circle(5, 5, 2))
	require.NoError(t, src.Line(0, 0, 0, 10, 2))

	dst := &Recorder{}
	require.NoError(t, src.Replay(dst))
	assert.Equal(t, src.Ops, dst.Ops)
}

func TestRecorder_ReplayStopsOnFailure(t *testing.T) {
	src := &Recorder{}
	require.NoError(t, src.Circle(1, 1, 1))
	require.NoError(t, src.Circle(2, 2, 1))

	dst := &Recorder{FailWhen: func(op Op) error { return errors.New("closed") }}
	err := src.Replay(dst)
	var se *SurfaceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "circle", se.Op)
	assert.Empty(t, dst.Ops)
}
