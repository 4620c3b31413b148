package core

// Color is a semantic color role for a screen cell. The platform layer maps
// roles to concrete terminal colors, which lets the same frame be painted
// with a day or a night palette.
type Color uint8

// Color roles used by the game renderer.
const (
	ColorDefault Color = iota
	ColorDuck
	ColorDuckDead
	ColorPipeTier1
	ColorPipeTier2
	ColorPipeTier3
	ColorEgg
	ColorGround
	ColorCloud
	ColorHUD
	ColorBalance
	ColorAlert
	ColorDim
)
