package view

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/taigrr/tesseract/pkg/tesseract"
)

var (
	hudBar   = lipgloss.NewStyle().Background(lipgloss.Color("#101018")).Foreground(lipgloss.Color("#d0d0d8"))
	hudFPS   = hudBar.Foreground(lipgloss.Color("#5fd75f")).Bold(true).Padding(0, 1)
	hudTitle = hudBar.Bold(true).Padding(0, 1)
	hudStat  = hudBar.Foreground(lipgloss.Color("#5fd7ff")).Padding(0, 1)
	hudHint  = hudBar.Faint(true).Padding(0, 1)
)

// Status is what the HUD reports for one frame.
type Status struct {
	Tick     uint64
	Hits     uint64
	Lit      int
	Points   int
	Distance float64
	Paused   bool
}

// HUD renders a one-line status bar with a frame rate counter.
type HUD struct {
	title     string
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a HUD showing title.
func NewHUD(title string) *HUD {
	return &HUD{title: title, fpsTime: time.Now()}
}

// UpdateFPS counts a frame drawn at now; the rate refreshes once a second.
func (h *HUD) UpdateFPS(now time.Time) {
	h.fpsFrames++
	elapsed := now.Sub(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = now
	}
}

// FPS returns the last measured frame rate.
func (h *HUD) FPS() float64 { return h.fps }

// Top renders the status bar padded or cut to width cells.
func (h *HUD) Top(width int, st Status) string {
	left := hudFPS.Render(fmt.Sprintf("%.0f FPS", h.FPS())) + hudTitle.Render(h.title)
	state := fmt.Sprintf("tick %s", humanize.Comma(int64(st.Tick)))
	if st.Paused {
		state += " (paused)"
	}
	right := hudStat.Render(fmt.Sprintf("%s · hits %s · lit %d/%d · %s",
		state,
		humanize.Comma(int64(st.Hits)),
		st.Lit,
		tesseract.FacetCount,
		english.Plural(st.Points, "point", ""),
	))
	return fill(width, left, right)
}

// Bottom renders the key hints line.
func (h *HUD) Bottom(width int, st Status) string {
	left := hudHint.Render("arrows orbit · +/- zoom · space pause · r reset · ? hud · q quit")
	right := hudHint.Render(fmt.Sprintf("d=%.1f", st.Distance))
	return fill(width, left, right)
}

// fill joins left and right with bar-colored space to exactly width cells,
// dropping right when both do not fit.
func fill(width int, left, right string) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		return hudBar.MaxWidth(width).Render(left)
	}
	return left + hudBar.Render(strings.Repeat(" ", gap)) + right
}
