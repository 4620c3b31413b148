// Package present turns session balances and game outcomes into what the
// HUD shows: truncated balance text with a count-up animation, the
// day/night theme, and end-of-run callbacks.
package present

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vovakirdan/golden-duck/internal/config"
	"github.com/vovakirdan/golden-duck/internal/core"
	"github.com/vovakirdan/golden-duck/internal/session"
)

// Truncate cuts s to at most decimals digits after the dot, without rounding.
// Strings without a dot are returned unchanged.
func Truncate(s string, decimals int) string {
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return s
	}
	if decimals <= 0 {
		return s[:dot]
	}
	end := dot + 1 + decimals
	if end > len(s) {
		return s
	}
	return s[:end]
}

// EaseOutCubic maps linear progress t in [0,1] to eased progress.
func EaseOutCubic(t float64) float64 {
	t = core.ClampF(t, 0, 1)
	return 1 - math.Pow(1-t, 3)
}

// Theme is the backdrop palette.
type Theme int

const (
	ThemeDay Theme = iota
	ThemeNight
)

// String returns the theme name.
func (t Theme) String() string {
	if t == ThemeNight {
		return "night"
	}
	return "day"
}

// Outcome is what end-of-run callbacks receive. Balances are server strings,
// or the last known local ones when the end call failed.
type Outcome struct {
	Score     int
	Collected int
	Eggs      string
	USDT      string
	Reason    core.EndReason
}

// Adapter holds presentation state for one screen.
type Adapter struct {
	cfg      config.DuckDisplay
	duration time.Duration

	from, to  session.Balances
	animStart time.Time
	animating bool
	visible   bool

	themeEpoch time.Time
	baseTheme  Theme

	onGameOver   func(Outcome)
	onGameFinish func(Outcome)
}

// NewAdapter creates an adapter whose theme clock starts at now.
func NewAdapter(cfg config.DuckDisplay, now time.Time) *Adapter {
	return &Adapter{
		cfg:        cfg,
		duration:   time.Duration(cfg.CountUpMS) * time.Millisecond,
		themeEpoch: now,
	}
}

// SetStartTheme chooses the theme shown before the first toggle.
func (a *Adapter) SetStartTheme(t Theme) {
	a.baseTheme = t
}

// OnGameOver registers the callback fired when a run is lost.
func (a *Adapter) OnGameOver(fn func(Outcome)) {
	a.onGameOver = fn
}

// OnGameFinish registers the callback fired when a run is won.
func (a *Adapter) OnGameFinish(fn func(Outcome)) {
	a.onGameFinish = fn
}

// Reset hides the balance line for a new run. The theme clock keeps running.
func (a *Adapter) Reset() {
	a.from = session.Balances{}
	a.to = session.Balances{}
	a.animating = false
	a.visible = false
}

// Reveal shows the balance line; called on the first collected egg.
func (a *Adapter) Reveal() {
	a.visible = true
}

// Visible reports whether the balance line is shown.
func (a *Adapter) Visible() bool {
	return a.visible
}

// SetBalances records new authoritative balances. A change starts a
// count-up from the currently displayed values.
func (a *Adapter) SetBalances(b session.Balances, now time.Time) {
	if b == a.to {
		return
	}
	if a.to.IsZero() {
		a.from = b
		a.to = b
		return
	}
	a.from = a.to
	a.to = b
	a.animStart = now
	a.animating = a.duration > 0
}

// Balances returns the target balances.
func (a *Adapter) Balances() session.Balances {
	return a.to
}

// Animating reports whether a count-up is in progress at now.
func (a *Adapter) Animating(now time.Time) bool {
	return a.animating && now.Sub(a.animStart) < a.duration
}

// Line returns the HUD balance text at now, or "" while hidden.
func (a *Adapter) Line(now time.Time) string {
	if !a.visible {
		return ""
	}
	eggs, usdt := a.to.Eggs, a.to.USDT
	if a.Animating(now) {
		p := EaseOutCubic(float64(now.Sub(a.animStart)) / float64(a.duration))
		eggs = lerp(a.from.Eggs, a.to.Eggs, p)
		usdt = lerp(a.from.USDT, a.to.USDT, p)
	} else {
		a.animating = false
	}
	return FormatLine(eggs, usdt, a.cfg.Decimals)
}

// FormatLine renders balances as "<eggs> EGGS = $<usdt>".
func FormatLine(eggs, usdt string, decimals int) string {
	if eggs == "" {
		eggs = "0"
	}
	if usdt == "" {
		usdt = "0"
	}
	return fmt.Sprintf("%s EGGS = $%s", Truncate(eggs, decimals), Truncate(usdt, decimals))
}

// lerp interpolates between two amount strings for display only.
func lerp(from, to string, p float64) string {
	a := toFloat(from)
	b := toFloat(to)
	return strconv.FormatFloat(a+(b-a)*p, 'f', -1, 64)
}

func toFloat(s string) float64 {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return d.InexactFloat64()
}

// Theme returns the theme at now. It toggles on a fixed wall-clock period,
// independent of game state.
func (a *Adapter) Theme(now time.Time) Theme {
	period := time.Duration(a.cfg.ThemeToggleSecs) * time.Second
	if period <= 0 {
		return a.baseTheme
	}
	flips := int(now.Sub(a.themeEpoch) / period)
	if flips%2 == 0 {
		return a.baseTheme
	}
	return 1 - a.baseTheme
}

// Finish fires the matching callback for a terminal state.
func (a *Adapter) Finish(state core.GameState, b session.Balances) {
	out := Outcome{
		Score:     state.Score,
		Collected: state.Collected,
		Eggs:      b.Eggs,
		USDT:      b.USDT,
		Reason:    state.Reason,
	}
	switch state.Status {
	case core.StatusOver:
		if a.onGameOver != nil {
			a.onGameOver(out)
		}
	case core.StatusFinished:
		if a.onGameFinish != nil {
			a.onGameFinish(out)
		}
	}
}
