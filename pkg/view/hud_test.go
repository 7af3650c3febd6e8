package view

import (
	"testing"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestHUDFPS(t *testing.T) {
	h := NewHUD("tesseract")
	start := h.fpsTime
	for i := 1; i <= 60; i++ {
		h.UpdateFPS(start.Add(time.Duration(i) * time.Second / 60))
	}
	assert.InDelta(t, 60, h.FPS(), 1e-9)
}

func TestHUDTop(t *testing.T) {
	h := NewHUD("tesseract")
	st := Status{Tick: 1234, Hits: 56789, Lit: 2, Points: 3, Distance: 6}

	line := h.Top(120, st)
	assert.Equal(t, 120, lipgloss.Width(line))
	assert.Contains(t, line, "tick 1,234")
	assert.Contains(t, line, "hits 56,789")
	assert.Contains(t, line, "lit 2/8")
	assert.Contains(t, line, "3 points")
	assert.NotContains(t, line, "paused")

	st.Paused = true
	st.Points = 1
	line = h.Top(120, st)
	assert.Contains(t, line, "(paused)")
	assert.Contains(t, line, "1 point")
	assert.NotContains(t, line, "1 points")

	st.Points = 0
	assert.Contains(t, h.Top(120, st), "0 points")
}

func TestHUDTopShowsFPS(t *testing.T) {
	h := NewHUD("tesseract")
	start := h.fpsTime
	for i := 1; i <= 30; i++ {
		h.UpdateFPS(start.Add(time.Duration(i) * time.Second / 30))
	}
	assert.Contains(t, h.Top(120, Status{}), "30 FPS")
}

func TestHUDNarrow(t *testing.T) {
	h := NewHUD("tesseract")
	assert.LessOrEqual(t, lipgloss.Width(h.Top(12, Status{})), 12)
	assert.LessOrEqual(t, lipgloss.Width(h.Bottom(12, Status{})), 12)
}

func TestHUDBottom(t *testing.T) {
	line := NewHUD("x").Bottom(100, Status{Distance: 6.3})
	assert.Equal(t, 100, lipgloss.Width(line))
	assert.Contains(t, line, "d=6.3")
}
