package tui

// Rect represents a rectangular region of the terminal.
type Rect struct {
	X, Y, Width, Height int
}

// Layout holds the computed panel geometry for a given terminal size.
type Layout struct {
	Header, Footer     Rect
	Bindings, Profiles Rect
	Terminal, Activity Rect
	TooSmall           bool // true when terminal is below the minimum 80×24
}

// Calculate computes the panel layout for a terminal of the given dimensions.
// Returns a Layout with TooSmall=true if width < 80 or height < 24.
//
// Algorithm:
//   - Header: full width, 1 row at top
//   - Footer: full width, 1 row at bottom
//   - Sidebar: 25% of width, clamped to [24, 35]
//   - Bindings: sidebar width × 55% of body height (top of sidebar)
//   - Profiles: sidebar width × remaining body height (bottom of sidebar)
//   - Terminal: remaining width × 65% of body height (top-right)
//   - Activity: remaining width × remaining body height (bottom-right)
func Calculate(width, height int) Layout {
	if width < 80 || height < 24 {
		return Layout{TooSmall: true}
	}

	bodyH := height - 2 // subtract header + footer rows

	sidebarW := width * 25 / 100
	if sidebarW < 24 {
		sidebarW = 24
	}
	if sidebarW > 35 {
		sidebarW = 35
	}
	rightW := width - sidebarW

	bindingsH := bodyH * 55 / 100
	profilesH := bodyH - bindingsH

	termH := bodyH * 65 / 100
	actH := bodyH - termH

	return Layout{
		Header:   Rect{X: 0, Y: 0, Width: width, Height: 1},
		Footer:   Rect{X: 0, Y: height - 1, Width: width, Height: 1},
		Bindings: Rect{X: 0, Y: 1, Width: sidebarW, Height: bindingsH},
		Profiles: Rect{X: 0, Y: 1 + bindingsH, Width: sidebarW, Height: profilesH},
		Terminal: Rect{X: sidebarW, Y: 1, Width: rightW, Height: termH},
		Activity: Rect{X: sidebarW, Y: 1 + termH, Width: rightW, Height: actH},
		TooSmall: false,
	}
}
