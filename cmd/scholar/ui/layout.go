// Package ui layout constants for consistent spacing and dimensions
package ui

// Layout constants for the shell chrome and page content.
const (
	SidebarWidth    = 24
	TopBarHeight    = 1
	FooterHeight    = 1
	ContentPaddingH = 2
	ContentPaddingV = 1

	MinimumTerminalWidth  = 80
	MinimumTerminalHeight = 24
	CompactModeWidth      = 100

	StatCardWidth  = 22
	StatCardGutter = 1
)

// LayoutConfig provides computed layout dimensions based on terminal size.
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	IsCompact      bool
}

// NewLayoutConfig creates a layout configuration for the given terminal size.
func NewLayoutConfig(width, height int) LayoutConfig {
	return LayoutConfig{
		TerminalWidth:  width,
		TerminalHeight: height,
		IsCompact:      width < CompactModeWidth,
	}
}

// ContentWidth returns the usable width right of the sidebar.
func (l LayoutConfig) ContentWidth() int {
	w := l.TerminalWidth - SidebarWidth - ContentPaddingH*2
	if w < 0 {
		return 0
	}
	return w
}

// ContentHeight returns the usable height between top bar and footer.
func (l LayoutConfig) ContentHeight() int {
	h := l.TerminalHeight - TopBarHeight - FooterHeight - ContentPaddingV*2
	if h < 0 {
		return 0
	}
	return h
}

// StatCardsPerRow returns how many stat cards fit on one row.
func (l LayoutConfig) StatCardsPerRow() int {
	n := l.ContentWidth() / (StatCardWidth + StatCardGutter)
	if n < 1 {
		return 1
	}
	return n
}
