// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the compiled lipgloss styles for one palette. Terminal
// hosts render the document with these; lipgloss downsamples the hex
// palette for terminals without true color.
type Styles struct {
	// Terminal capabilities
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App    lipgloss.Style
	Header lipgloss.Style

	// ==========================================================================
	// CARD STYLES
	// ==========================================================================

	Card      lipgloss.Style
	CardTitle lipgloss.Style
	CardBody  lipgloss.Style
	CardIcon  lipgloss.Style

	// ==========================================================================
	// SIDEBAR STYLES
	// ==========================================================================

	Sidebar          lipgloss.Style
	SidebarCollapsed lipgloss.Style
	SidebarItem      lipgloss.Style

	// ==========================================================================
	// PROGRESS AND STATUS STYLES
	// ==========================================================================

	ProgressFill  lipgloss.Style
	ProgressTrack lipgloss.Style
	StatusBar     lipgloss.Style

	// Status indicators
	SuccessStyle lipgloss.Style
	WarningStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	MutedStyle   lipgloss.Style
}

// NewStyles compiles p into a style set, detecting terminal capabilities
// the same way for every palette.
func NewStyles(p Palette) *Styles {
	colorProfile := termenv.ColorProfile()

	s := &Styles{
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	s.initStyles(p)
	return s
}

// initStyles initializes all the lip gloss styles from the palette.
func (s *Styles) initStyles(p Palette) {
	bg := lipgloss.Color(p.BgPrimary)
	bgAlt := lipgloss.Color(p.BgSecondary)
	text := lipgloss.Color(p.TextPrimary)
	textDim := lipgloss.Color(p.TextSecondary)
	muted := lipgloss.Color(p.TextMuted)
	accent := lipgloss.Color(p.AccentPrimary)
	accentAlt := lipgloss.Color(p.AccentSecondary)
	border := lipgloss.Color(p.Border)

	// App container
	s.App = lipgloss.NewStyle().
		Foreground(text).
		Background(bg)

	s.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(accent).
		Padding(0, 2).
		Align(lipgloss.Center)

	// Cards
	s.Card = lipgloss.NewStyle().
		Foreground(text).
		Background(bgAlt).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 2)

	s.CardTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(accent)

	s.CardBody = lipgloss.NewStyle().
		Foreground(textDim)

	s.CardIcon = lipgloss.NewStyle().
		Foreground(accentAlt)

	// Sidebar
	s.Sidebar = lipgloss.NewStyle().
		Foreground(textDim).
		Background(bgAlt).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(border).
		Padding(0, 1)

	s.SidebarCollapsed = lipgloss.NewStyle().
		Foreground(muted).
		Background(bgAlt).
		Padding(0, 0)

	s.SidebarItem = lipgloss.NewStyle().
		Foreground(text).
		PaddingLeft(1)

	// Progress
	s.ProgressFill = lipgloss.NewStyle().
		Foreground(accent)

	s.ProgressTrack = lipgloss.NewStyle().
		Foreground(muted)

	s.StatusBar = lipgloss.NewStyle().
		Foreground(textDim).
		Background(bgAlt).
		Padding(0, 1)

	// Status indicators
	s.SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(p.Success))

	s.WarningStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(p.Warning))

	s.ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(p.Error))

	s.MutedStyle = lipgloss.NewStyle().
		Foreground(muted)
}

// RenderProgressBar renders a fixed-width progress bar at percent (0-100)
// using the palette's fill and track styles.
func (s *Styles) RenderProgressBar(width, percent int) string {
	if width <= 0 {
		return ""
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := width * percent / 100
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += s.ProgressFill.Render("█")
		} else {
			bar += s.ProgressTrack.Render("░")
		}
	}
	return bar
}
