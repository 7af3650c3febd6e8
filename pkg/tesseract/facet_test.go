package tesseract

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigrr/tesseract/pkg/math4d"
)

func TestFacetModelHasOneFacetPerAxisSign(t *testing.T) {
	m := NewFacetModel()
	require.Equal(t, FacetCount, m.Len())

	type key struct{ axis, sign int }
	seen := make(map[key]bool)
	for i := range m.Len() {
		f := m.At(i)
		k := key{f.Axis, f.Sign}
		assert.False(t, seen[k], "duplicate facet %v", k)
		seen[k] = true
		assert.True(t, f.Hit.Dark())
	}
	for axis := range math4d.Dim {
		for _, sign := range []int{1, -1} {
			assert.True(t, seen[key{axis, sign}], "missing facet axis %d sign %d", axis, sign)
		}
	}

	assert.Equal(t, 0, m.At(0).Axis)
	assert.Equal(t, 1, m.At(0).Sign)
	assert.Equal(t, -1, m.At(1).Sign)
}

func TestFacetCorners(t *testing.T) {
	m := NewFacetModel()
	for i := range m.Len() {
		f := m.At(i)
		distinct := make(map[math4d.Vec4]bool)
		for _, c := range f.Corners {
			assert.Equal(t, float64(f.Sign), c[f.Axis])
			for k, x := range c {
				assert.True(t, x == 1 || x == -1, "axis %d = %v", k, x)
			}
			distinct[c] = true
		}
		assert.Len(t, distinct, CellCornerCount, "facet (%d,%d)", f.Axis, f.Sign)
	}
}

func TestCellCornersBitOrder(t *testing.T) {
	// Fixing axis 1 leaves free axes 0, 2, 3 driven by bits 0, 1, 2.
	cs := CellCorners(1, -1)
	assert.Equal(t, math4d.V4(-1, -1, -1, -1), cs[0])
	assert.Equal(t, math4d.V4(1, -1, -1, -1), cs[1])
	assert.Equal(t, math4d.V4(-1, -1, 1, -1), cs[2])
	assert.Equal(t, math4d.V4(-1, -1, -1, 1), cs[4])
	assert.Equal(t, math4d.V4(1, -1, 1, 1), cs[7])
}

func TestCellEdgesAndFaces(t *testing.T) {
	cs := CellCorners(0, 1)
	for _, e := range CellEdges() {
		d := cs[e[0]].Sub(cs[e[1]])
		assert.InDelta(t, 2.0, d.Len(), 1e-12, "edge %v", e)
	}

	for _, face := range CellFaces() {
		for k := range 4 {
			a, b := cs[face[k]], cs[face[(k+1)%4]]
			assert.InDelta(t, 2.0, a.Sub(b).Len(), 1e-12, "face %v side %d", face, k)
		}
	}
}

func TestLookup(t *testing.T) {
	m := NewFacetModel()
	f := m.Lookup(2, -1)
	assert.Equal(t, 2, f.Axis)
	assert.Equal(t, -1, f.Sign)
	assert.Same(t, f, m.Lookup(2, -1))

	assert.Panics(t, func() { m.Lookup(4, 1) })
	assert.Panics(t, func() { m.Lookup(0, 0) })
}

func TestTriggerHit(t *testing.T) {
	m := NewFacetModel()
	m.TriggerHit(3, 1, Green)

	h := m.Lookup(3, 1).Hit
	assert.Equal(t, HitState{G: 255, A: 128}, h)
	assert.Equal(t, 1, m.Lit())

	// A second hit resets rather than accumulates.
	m.Decay(0.5)
	m.TriggerHit(3, 1, Green)
	m.TriggerHit(3, 1, Blue)
	assert.Equal(t, HitState{G: 255, B: 255, A: 128}, m.Lookup(3, 1).Hit)
}

func TestDecay(t *testing.T) {
	tests := []struct {
		elapsed   float64
		wantR     float64
		wantAlpha float64
	}{
		{0, 255, 128},
		{0.1, 229.5, 115.25},
		{0.5, 127.5, 64.25},
		{1, 0, 0.5},
		{1.004, 0, 0},
		{3, 0, 0},
	}

	for _, tc := range tests {
		m := NewFacetModel()
		m.TriggerHit(0, -1, Red)
		m.Decay(tc.elapsed)
		h := m.Lookup(0, -1).Hit
		assert.InDelta(t, tc.wantR, h.R, 1e-9, "red after %v s", tc.elapsed)
		assert.InDelta(t, tc.wantAlpha, h.A, 1e-9, "alpha after %v s", tc.elapsed)
		assert.Zero(t, h.G)
		assert.Zero(t, h.B)
	}
}

func TestDecayIsMonotonicAndFloored(t *testing.T) {
	m := NewFacetModel()
	m.TriggerHit(1, 1, Blue)

	prev := m.Lookup(1, 1).Hit
	for range 200 {
		m.Decay(1.0 / 60)
		h := m.Lookup(1, 1).Hit
		assert.LessOrEqual(t, h.B, prev.B)
		assert.LessOrEqual(t, h.A, prev.A)
		assert.GreaterOrEqual(t, h.B, 0.0)
		assert.GreaterOrEqual(t, h.A, 0.0)
		prev = h
	}
	assert.True(t, prev.Dark())
	assert.Equal(t, 0, m.Lit())
}

func TestDecayIgnoresNegativeElapsed(t *testing.T) {
	m := NewFacetModel()
	m.TriggerHit(1, -1, Red)
	m.Decay(-1)
	assert.Equal(t, HitState{R: 255, A: 128}, m.Lookup(1, -1).Hit)
}

func TestHitStateColor(t *testing.T) {
	h := HitState{R: 255, G: 127.6, A: 128}
	assert.Equal(t, color.RGBA{255, 128, 0, 128}, h.RGBA())

	u := h.Unit()
	assert.InDelta(t, 1.0, u[0], 1e-12)
	assert.InDelta(t, 0.0, u[2], 1e-12)
	assert.InDelta(t, 128.0/255, u[3], 1e-12)
	assert.Equal(t, 127.6, h.Channel(Green))
}

func TestChannelText(t *testing.T) {
	for _, in := range []string{"red", "R", " Green ", "b"} {
		var c Channel
		require.NoError(t, c.UnmarshalText([]byte(in)), in)
		assert.True(t, c.Valid())
	}

	var c Channel
	assert.Error(t, c.UnmarshalText([]byte("purple")))

	b, err := Blue.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "blue", string(b))

	_, err = Channel(7).MarshalText()
	assert.Error(t, err)
}
