package tesseract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigrr/tesseract/pkg/math4d"
)

func TestUpdateMovesByVelocity(t *testing.T) {
	m := NewFacetModel()
	p := NewMovingPoint(math4d.V4(0.1, 0.2, 0.3, 0.4), math4d.V4(0.01, -0.02, 0.03, -0.04), 0.1, Red)

	assert.Empty(t, p.Update(m))
	assert.True(t, p.Position.ApproxEqual(math4d.V4(0.11, 0.18, 0.33, 0.36), 1e-12))
	assert.Equal(t, 0, m.Lit())
}

func TestUpdateBouncesOffPositiveWall(t *testing.T) {
	m := NewFacetModel()
	p := NewMovingPoint(math4d.V4(0.89, 0, 0, 0), math4d.V4(0.02, 0, 0, 0), 0.1, Green)

	bounces := p.Update(m)
	require.Equal(t, []Bounce{{Axis: 0, Sign: 1}}, bounces)
	assert.InDelta(t, 0.91, p.Position[0], 1e-12)
	assert.Equal(t, -0.02, p.Velocity[0])
	assert.True(t, p.InContact(0))
	assert.Equal(t, HitState{G: 255, A: 128}, m.Lookup(0, 1).Hit)
	assert.Equal(t, 1, m.Lit())
}

func TestUpdateBouncesOffNegativeWall(t *testing.T) {
	m := NewFacetModel()
	p := NewMovingPoint(math4d.V4(0, 0, -0.85, 0), math4d.V4(0, 0, -0.1, 0), 0.1, Blue)

	require.Equal(t, []Bounce{{Axis: 2, Sign: -1}}, p.Update(m))
	assert.Equal(t, 0.1, p.Velocity[2])
	assert.Equal(t, HitState{B: 255, A: 128}, m.Lookup(2, -1).Hit)
	assert.True(t, m.Lookup(2, 1).Hit.Dark())
}

func TestUpdateCornerHitsTwoFacets(t *testing.T) {
	m := NewFacetModel()
	p := NewMovingPoint(math4d.V4(0.88, 0, 0, -0.88), math4d.V4(0.05, 0, 0, -0.05), 0.1, Red)

	bounces := p.Update(m)
	assert.Equal(t, []Bounce{{Axis: 0, Sign: 1}, {Axis: 3, Sign: -1}}, bounces)
	assert.Equal(t, 2, m.Lit())
}

func TestUpdateDebouncesContinuousPressing(t *testing.T) {
	m := NewFacetModel()
	p := NewMovingPoint(math4d.V4(0.89, 0, 0, 0), math4d.V4(0.02, 0, 0, 0), 0.1, Red)

	hits := len(p.Update(m))
	require.Equal(t, 1, hits)

	// Keep pushing outward: still pressing, so no new hits and no flips.
	for range 5 {
		p.Velocity[0] = 0.02
		hits += len(p.Update(m))
		assert.True(t, p.InContact(0))
		assert.Equal(t, 0.02, p.Velocity[0])
	}
	assert.Equal(t, 1, hits)

	// Moving inward releases the latch even though the point still overlaps.
	p.Velocity[0] = -0.02
	hits += len(p.Update(m))
	assert.False(t, p.InContact(0))
	assert.Greater(t, p.Position[0], 0.9)

	// Coming back retriggers.
	p.Velocity[0] = 0.02
	hits += len(p.Update(m))
	assert.Equal(t, 2, hits)
	assert.Equal(t, -0.02, p.Velocity[0])
}

func TestUpdateStaysNearBox(t *testing.T) {
	m := NewFacetModel()
	p := NewMovingPoint(math4d.V4(0.5, 0.3, -0.2, 0.1), math4d.V4(0.01, -0.015, 0.012, 0.008), 0.1, Red)

	total := 0
	for range 5000 {
		for _, b := range p.Update(m) {
			total++
			// After a bounce the velocity points back inside.
			assert.Equal(t, b.Sign > 0, p.Velocity[b.Axis] < 0)
		}
		for k, x := range p.Position {
			// Overshoot is bounded by a single velocity step.
			assert.LessOrEqual(t, max(x, -x), 0.9+0.015+1e-9, "axis %d", k)
		}
	}
	assert.Greater(t, total, 10)
}
