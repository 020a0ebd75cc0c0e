package main

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/Jailior/3dgraphicproject/pkg/render"
)

var (
	hudBase  = lipgloss.NewStyle().Background(lipgloss.Color("#1a1a1a")).Padding(0, 1)
	hudFPS   = hudBase.Foreground(lipgloss.Color("#5fff87"))
	hudTitle = hudBase.Foreground(lipgloss.Color("#ffffff")).Bold(true)
	hudInfo  = hudBase.Foreground(lipgloss.Color("#5fd7ff"))
	hudHint  = hudBase.Foreground(lipgloss.Color("#ffd75f")).Faint(true)
)

// HUD tracks what the overlay line shows: frame rate, model, triangle
// counts, draw mode and spin.
type HUD struct {
	name      string
	triangles int

	fps       float64
	fpsFrames int
	fpsTime   float64

	stats    render.Stats
	mode     render.Mode
	spinning bool
}

// NewHUD creates a HUD for a model.
func NewHUD(name string, triangles int) *HUD {
	return &HUD{name: name, triangles: triangles}
}

// Update records one frame. The FPS figure refreshes once per second.
func (h *HUD) Update(stats render.Stats, mode render.Mode, spinning bool, dt float64) {
	h.stats, h.mode, h.spinning = stats, mode, spinning

	h.fpsFrames++
	h.fpsTime += dt
	if h.fpsTime >= 1 {
		h.fps = float64(h.fpsFrames) / h.fpsTime
		h.fpsFrames = 0
		h.fpsTime = 0
	}
}

func (h *HUD) spinLabel() string {
	if h.spinning {
		return "spin"
	}
	return "still"
}

// Plain returns the overlay as unstyled text.
func (h *HUD) Plain() string {
	return fmt.Sprintf("%.0f FPS  %s  %d/%d tris  %s  %s  [m]ode [space] spin [esc] quit",
		h.fps, h.name, h.stats.Rendered, h.triangles, h.mode, h.spinLabel())
}

// Styled returns the overlay with terminal colors.
func (h *HUD) Styled() string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		hudFPS.Render(fmt.Sprintf("%.0f FPS", h.fps)),
		hudTitle.Render(h.name),
		hudInfo.Render(fmt.Sprintf("%d/%d tris", h.stats.Rendered, h.triangles)),
		hudInfo.Render(fmt.Sprintf("%s · %s", h.mode, h.spinLabel())),
		hudHint.Render("m mode · space spin · esc quit"),
	)
}
