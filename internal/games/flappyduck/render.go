package flappyduck

import (
	"fmt"

	"github.com/vovakirdan/golden-duck/internal/core"
)

// Visual characters for rendering
const (
	DuckChar      = '>'
	DuckBodyChar  = '●'
	DuckDeadChar  = 'x'
	PipeChar      = '█'
	PipeCapTop    = '▀'
	PipeCapBottom = '▄'
	EggChar       = 'o'
	GroundChar    = '▒'
	GroundTopChar = '═'
)

// viewport maps world pixels to screen cells.
type viewport struct {
	sx, sy float64
}

func (g *Game) viewport(dst *core.Screen) viewport {
	return viewport{
		sx: float64(dst.Width()) / g.cfg.World.Width,
		sy: float64(dst.Height()) / g.cfg.World.Height,
	}
}

func (v viewport) col(x float64) int { return int(x * v.sx) }
func (v viewport) row(y float64) int { return int(y * v.sy) }

// Render draws the play field to the screen. Overlays such as balances and
// session messages are drawn by the platform.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	vp := g.viewport(dst)

	// Ground
	groundRow := vp.row(g.cfg.World.Height - g.cfg.World.GroundHeight)
	dst.DrawHLine(0, groundRow, dst.Width(), GroundTopChar, core.ColorGround)
	dst.DrawRect(core.NewRect(0, groundRow+1, dst.Width(), dst.Height()-groundRow-1), GroundChar, core.ColorGround)

	for _, o := range g.obstacles.Obstacles() {
		g.drawObstacle(dst, vp, o, groundRow)
	}

	for _, c := range g.items.Items() {
		dst.SetColor(vp.col(c.X), vp.row(c.Y), EggChar, core.ColorEgg)
	}

	g.drawDuck(dst, vp)

	scoreText := fmt.Sprintf(" Score: %d ", g.score)
	dst.DrawTextColor(2, 0, scoreText, core.ColorHUD)
}

func (g *Game) drawObstacle(dst *core.Screen, vp viewport, o Obstacle, groundRow int) {
	color := tierColor(o.Tier)
	left := vp.col(o.X - g.cfg.Obstacles.PipeWidth/2)
	right := vp.col(o.X + g.cfg.Obstacles.PipeWidth/2)
	if right <= left {
		right = left + 1
	}
	gapTop := vp.row(o.GapTop())
	gapBottom := vp.row(o.GapBottom())

	w := right - left

	dst.DrawRect(core.NewRect(left, 0, w, gapTop), PipeChar, color)
	if gapTop > 0 {
		dst.DrawHLine(left, gapTop-1, w, PipeCapTop, color)
	}
	dst.DrawRect(core.NewRect(left, gapBottom, w, groundRow-gapBottom), PipeChar, color)
	if gapBottom < groundRow {
		dst.DrawHLine(left, gapBottom, w, PipeCapBottom, color)
	}
}

func (g *Game) drawDuck(dst *core.Screen, vp viewport) {
	x := vp.col(g.DuckX())
	y := vp.row(g.duckY)
	if g.status == core.StatusOver {
		dst.SetColor(x, y, DuckDeadChar, core.ColorDuckDead)
		dst.SetColor(x+1, y, DuckDeadChar, core.ColorDuckDead)
		return
	}
	dst.SetColor(x, y, DuckBodyChar, core.ColorDuck)
	dst.SetColor(x+1, y, DuckChar, core.ColorDuck)
}

// tierColor returns the pipe color for an obstacle tier.
func tierColor(tier int) core.Color {
	switch tier {
	case 1:
		return core.ColorPipeTier1
	case 2:
		return core.ColorPipeTier2
	default:
		return core.ColorPipeTier3
	}
}
