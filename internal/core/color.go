package core

// Color is a foreground color for a screen cell.
// Holds anything lipgloss understands: an ANSI code ("9") or a hex value ("#f43f5e").
type Color string

// ColorDefault leaves the terminal's foreground untouched.
const ColorDefault Color = ""

// UI colors.
const (
	ColorRed    Color = "9"
	ColorGray   Color = "245"
	ColorWhite  Color = "15"
	ColorYellow Color = "11"
	ColorPurple Color = "#c4b5fd"
)

// Neon palette used for falling letters.
const (
	NeonRed    Color = "#f43f5e"
	NeonPink   Color = "#ec4899"
	NeonPurple Color = "#8b5cf6"
	NeonBlue   Color = "#3b82f6"
	NeonGreen  Color = "#10b981"
	NeonOrange Color = "#f59e0b"
	NeonCyan   Color = "#06b6d4"
)

// NeonPalette returns the default letter palette.
func NeonPalette() []Color {
	return []Color{NeonRed, NeonPink, NeonPurple, NeonBlue, NeonGreen, NeonOrange, NeonCyan}
}
