package styles

import (
	lipgloss "github.com/charmbracelet/lipgloss"
)

// Tokyo Night palette
const (
	Red   = "#f7768e"
	Green = "#9ece6a"
	Blue  = "#7aa2f7"
	Gray  = "#565f89"
	Amber = "#e0af68"
)

// Status icons
const (
	CheckMark = "✓"
	CrossMark = "✗"
	WarnMark  = "!"
)

var (
	CheckMarkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Green)).Bold(true)
	CrossMarkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Red)).Bold(true)
	WarnMarkStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(Amber)).Bold(true)
	HeaderStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(Blue)).Bold(true)
	DimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(Gray))
)

func StyledCheckMark() string {
	return CheckMarkStyle.Render(CheckMark)
}

func StyledCrossMark() string {
	return CrossMarkStyle.Render(CrossMark)
}

func StyledWarnMark() string {
	return WarnMarkStyle.Render(WarnMark)
}

// Header renders a section title
func Header(s string) string {
	return HeaderStyle.Render(s)
}

// Dim renders secondary text
func Dim(s string) string {
	return DimStyle.Render(s)
}
