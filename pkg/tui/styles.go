package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPurple      = lipgloss.Color("#7D56F4")
	ColorGreen       = lipgloss.Color("#4CAF50")
	ColorRed         = lipgloss.Color("#E05252")
	ColorYellow      = lipgloss.Color("#E5C07B")
	ColorGray        = lipgloss.Color("#626262")
	ColorGrayDim     = lipgloss.Color("#404040")
	ColorWhite       = lipgloss.Color("#FFFFFF")
	ColorOffWhite    = lipgloss.Color("#D0D0D0")
	ColorCyan        = lipgloss.Color("#56B6C2")
)

// Header and footer styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple)

	HeaderCountStyle = lipgloss.NewStyle().
				Foreground(ColorGray)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)
)

// Form styles
var (
	FieldLabelStyle = lipgloss.NewStyle().
			Foreground(ColorOffWhite)

	FieldLabelFocusedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPurple)

	SectionTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorOffWhite)
)

// Dashboard styles
var (
	TotalStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorGreen)

	ChartLabelStyle = lipgloss.NewStyle().
			Foreground(ColorOffWhite)

	ChartBarStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	ChartValueStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ResultStyle = lipgloss.NewStyle().
			Foreground(ColorOffWhite)
)
