// Package ui draws the heads-up display and debug panels over the level.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	WinColor       rl.Color
	LoseColor      rl.Color
	HintColor      rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	FontSize       int32
	HeaderFontSize int32
	ButtonWidth    float32
	ButtonHeight   float32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 220},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		WinColor:       rl.Color{R: 104, G: 211, B: 145, A: 255},
		LoseColor:      rl.Color{R: 252, G: 129, B: 129, A: 255},
		HintColor:      rl.Color{R: 246, G: 224, B: 94, A: 255},
		Padding:        10,
		LineHeight:     18,
		LabelWidth:     70,
		FontSize:       14,
		HeaderFontSize: 18,
		ButtonWidth:    90,
		ButtonHeight:   28,
	}
}
