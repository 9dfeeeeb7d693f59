// Package styles provides shared lipgloss styles for CLI and TUI components.
package styles

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Tokyo Night color palette.
var (
	ColorGreen  = lipgloss.Color("#9ece6a")
	ColorYellow = lipgloss.Color("#e0af68")
	ColorBlue   = lipgloss.Color("#7aa2f7")
	ColorRed    = lipgloss.Color("#f7768e")
	ColorGray   = lipgloss.Color("#565f89")
	ColorWhite  = lipgloss.Color("#c0caf5")
)

// Banner ASCII art for the doc header.
const Banner = `
 ╔═╗╔╦╗╔╦╗╔╦╗╦╦═╗
 ╠╣ ║║║ ║  ║║║╠╦╝
 ╚  ╩ ╩ ╩ ═╩╝╩╩╚═`

// BannerStyle styles the ASCII art banner.
var BannerStyle = lipgloss.NewStyle().
	Foreground(ColorBlue).
	Bold(true)

// TitleStyle styles the progress and preview titles.
var TitleStyle = lipgloss.NewStyle().
	Foreground(ColorBlue).
	Bold(true)

// FileStyle styles the file currently being formatted.
var FileStyle = lipgloss.NewStyle().
	Foreground(ColorWhite)

// HelpStyle styles key hints and secondary text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// WarnStyle styles the cancellation notice.
var WarnStyle = lipgloss.NewStyle().
	Foreground(ColorYellow)

// DividerStyle styles horizontal dividers.
var DividerStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// FormTheme returns the huh theme used by every prompt.
func FormTheme() *huh.Theme {
	t := huh.ThemeCharm()
	t.Focused.Title = t.Focused.Title.Foreground(ColorBlue)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(ColorGreen)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Background(ColorBlue)
	t.Focused.Description = t.Focused.Description.Foreground(ColorGray)
	return t
}
