package terminal

import "github.com/gdamore/tcell/v2"

// TerminalBuilderOption is a functional option for configuring a Terminal.
type TerminalBuilderOption func(*terminalImpl)

// WithScreen uses an existing, uninitialized screen instead of opening the real terminal.
//
// Parameters:
//   - s: the screen, e.g. tcell.NewSimulationScreen
//
// Returns:
//   - TerminalBuilderOption: option function to apply
func WithScreen(s tcell.Screen) TerminalBuilderOption {
	return func(t *terminalImpl) {
		t.screen = s
	}
}

// WithGlyphs sets the brightness ramp points are drawn with, darkest first.
//
// Parameters:
//   - glyphs: the ramp; empty keeps DefaultGlyphs
//
// Returns:
//   - TerminalBuilderOption: option function to apply
func WithGlyphs(glyphs string) TerminalBuilderOption {
	return func(t *terminalImpl) {
		t.glyphs = glyphs
	}
}
