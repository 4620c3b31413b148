package present

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/golden-duck/internal/config"
	"github.com/vovakirdan/golden-duck/internal/core"
	"github.com/vovakirdan/golden-duck/internal/session"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in       string
		decimals int
		want     string
	}{
		{"12.999", 2, "12.99"},
		{"3", 2, "3"},
		{"0.1", 2, "0.1"},
		{"0.30", 2, "0.30"},
		{"5.5555555", 4, "5.5555"},
		{"7.89", 0, "7"},
		{"", 2, ""},
		{"-1.239", 2, "-1.23"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.decimals); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.decimals, got, tt.want)
		}
	}
}

func TestEaseOutCubic(t *testing.T) {
	if EaseOutCubic(0) != 0 || EaseOutCubic(1) != 1 {
		t.Error("ease should map endpoints to themselves")
	}
	if got := EaseOutCubic(0.5); math.Abs(got-0.875) > 1e-12 {
		t.Errorf("EaseOutCubic(0.5) = %g, want 0.875", got)
	}
	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := EaseOutCubic(float64(i) / 100)
		if v < prev {
			t.Fatalf("ease not monotone at %d", i)
		}
		prev = v
	}
}

func TestFormatLine(t *testing.T) {
	if got := FormatLine("3", "0.30", 2); got != "3 EGGS = $0.30" {
		t.Errorf("FormatLine = %q", got)
	}
	if got := FormatLine("", "", 2); got != "0 EGGS = $0" {
		t.Errorf("empty balances = %q", got)
	}
	if got := FormatLine("10.5", "12.999", 2); got != "10.5 EGGS = $12.99" {
		t.Errorf("FormatLine = %q", got)
	}
}

func TestLineHiddenUntilReveal(t *testing.T) {
	now := time.Unix(1000, 0)
	a := NewAdapter(config.DefaultDuckConfig().Display, now)
	a.SetBalances(session.Balances{Eggs: "0", USDT: "0"}, now)

	if a.Line(now) != "" {
		t.Error("line should be hidden before the first egg")
	}
	a.Reveal()
	if got := a.Line(now); got != "0 EGGS = $0" {
		t.Errorf("Line = %q", got)
	}
}

func TestCountUp(t *testing.T) {
	start := time.Unix(1000, 0)
	a := NewAdapter(config.DefaultDuckConfig().Display, start)
	a.SetBalances(session.Balances{Eggs: "0", USDT: "0"}, start)
	a.Reveal()

	a.SetBalances(session.Balances{Eggs: "2", USDT: "0.20"}, start)

	if !a.Animating(start.Add(100 * time.Millisecond)) {
		t.Fatal("count-up should be running")
	}
	// Halfway in time is 87.5% of the way with cubic ease-out
	if got := a.Line(start.Add(250 * time.Millisecond)); got != "1.75 EGGS = $0.17" {
		t.Errorf("mid-animation line = %q", got)
	}
	if got := a.Line(start.Add(500 * time.Millisecond)); got != "2 EGGS = $0.20" {
		t.Errorf("final line = %q, want exact server strings", got)
	}
	if a.Animating(start.Add(600 * time.Millisecond)) {
		t.Error("animation should be over")
	}
}

func TestUnchangedBalancesDoNotAnimate(t *testing.T) {
	now := time.Unix(0, 0)
	a := NewAdapter(config.DefaultDuckConfig().Display, now)
	b := session.Balances{Eggs: "1", USDT: "0.10"}
	a.SetBalances(b, now)
	a.SetBalances(b, now)
	if a.Animating(now) {
		t.Error("same balances should not animate")
	}
}

func TestThemeToggle(t *testing.T) {
	epoch := time.Unix(5000, 0)
	a := NewAdapter(config.DefaultDuckConfig().Display, epoch)

	tests := []struct {
		after time.Duration
		want  Theme
	}{
		{0, ThemeDay},
		{19 * time.Second, ThemeDay},
		{20 * time.Second, ThemeNight},
		{39 * time.Second, ThemeNight},
		{40 * time.Second, ThemeDay},
	}
	for _, tt := range tests {
		if got := a.Theme(epoch.Add(tt.after)); got != tt.want {
			t.Errorf("Theme(+%s) = %s, want %s", tt.after, got, tt.want)
		}
	}

	a.SetStartTheme(ThemeNight)
	if a.Theme(epoch) != ThemeNight {
		t.Error("start theme should apply before the first toggle")
	}
}

func TestFinishCallbacks(t *testing.T) {
	a := NewAdapter(config.DefaultDuckConfig().Display, time.Now())
	var over, finish []Outcome
	a.OnGameOver(func(o Outcome) { over = append(over, o) })
	a.OnGameFinish(func(o Outcome) { finish = append(finish, o) })

	b := session.Balances{Eggs: "3", USDT: "0.30"}
	a.Finish(core.GameState{Score: 4, Collected: 3, Status: core.StatusOver, Reason: core.ReasonPipe}, b)
	a.Finish(core.GameState{Score: 60, Collected: 50, Status: core.StatusFinished, Reason: core.ReasonWin}, b)
	a.Finish(core.GameState{Status: core.StatusRunning}, b)

	if len(over) != 1 || over[0].Score != 4 || over[0].Eggs != "3" || over[0].USDT != "0.30" {
		t.Errorf("game over callbacks = %+v", over)
	}
	if len(finish) != 1 || finish[0].Collected != 50 {
		t.Errorf("finish callbacks = %+v", finish)
	}
}
