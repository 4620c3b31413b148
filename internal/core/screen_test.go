package core

import (
	"strings"
	"testing"
)

func TestNewScreenBlank(t *testing.T) {
	s := NewScreen(8, 3)
	if s.Width() != 8 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 8x3", s.Width(), s.Height())
	}
	if got := s.String(); got != "        \n        \n        " {
		t.Errorf("String() = %q", got)
	}
}

func TestSetColorClipsOutOfBounds(t *testing.T) {
	s := NewScreen(4, 4)
	s.SetColor(1, 2, 'o', ColorEgg)
	if c := s.GetCell(1, 2); c.Rune != 'o' || c.Color != ColorEgg {
		t.Errorf("GetCell(1, 2) = %+v", c)
	}

	s.SetColor(-1, 0, 'x', ColorAlert)
	s.SetColor(4, 0, 'x', ColorAlert)
	s.SetColor(0, 9, 'x', ColorAlert)
	if strings.ContainsRune(s.String(), 'x') {
		t.Error("out of bounds writes should be dropped")
	}
	if c := s.GetCell(-1, 0); c.Rune != ' ' {
		t.Errorf("out of bounds GetCell = %q, expected space", c.Rune)
	}
}

func TestDrawTextCenteredColor(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCenteredColor(0, "EGGS", ColorBalance)
	if got := s.String(); got != "   EGGS    " {
		t.Errorf("String() = %q", got)
	}
	if s.GetCell(3, 0).Color != ColorBalance {
		t.Error("centered text lost its color")
	}

	// Clipped at the right edge
	s.Clear()
	s.DrawTextColor(8, 0, "hello", ColorHUD)
	if got := s.String(); got != "        hel" {
		t.Errorf("clipped = %q", got)
	}
}

func TestDrawRectAndHLine(t *testing.T) {
	s := NewScreen(5, 4)
	s.DrawHLine(0, 0, 5, '═', ColorGround)
	s.DrawRect(NewRect(1, 1, 2, 2), '█', ColorPipeTier2)

	want := "═════\n ██  \n ██  \n     "
	if got := s.String(); got != want {
		t.Errorf("String() =\n%s\nexpected\n%s", got, want)
	}
	if s.GetCell(2, 2).Color != ColorPipeTier2 || s.GetCell(4, 0).Color != ColorGround {
		t.Error("drawn cells lost their color")
	}
}

func TestDrawBoxClearsInside(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawRect(NewRect(0, 0, 6, 4), '▒', ColorGround)
	s.DrawBox(NewRect(0, 0, 6, 4), ColorHUD)

	want := "┌────┐\n│    │\n│    │\n└────┘"
	if got := s.String(); got != want {
		t.Errorf("String() =\n%s\nexpected\n%s", got, want)
	}

	// Too small to draw
	s.Clear()
	s.DrawBox(NewRect(0, 0, 1, 4), ColorHUD)
	if strings.TrimSpace(s.String()) != "" {
		t.Error("degenerate box should draw nothing")
	}
}

func TestResizeKeepsContent(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawTextColor(0, 0, "duck", ColorDuck)
	s.Resize(6, 3)

	if got := s.String(); got != "duck  \n      \n      " {
		t.Errorf("after grow = %q", got)
	}

	s.Resize(2, 1)
	if got := s.String(); got != "du" {
		t.Errorf("after shrink = %q", got)
	}
}
