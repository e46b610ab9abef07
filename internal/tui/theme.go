package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"trail-cli/internal/model"
)

// Theme/palette helpers.
//
// The TUI must stay readable on both light and dark terminal backgrounds,
// so everything routes through lipgloss.AdaptiveColor, and "faint" styling
// is only applied on dark backgrounds (faint on light terminals often
// becomes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted    = ac("240", "243")
	colorAccent   = ac("25", "39")
	colorActive   = ac("28", "40")
	colorBlocked  = ac("124", "203")
	colorParked   = ac("94", "179")
	colorSelected = ac("232", "255")

	styleTitle      = lipgloss.NewStyle().Bold(true)
	styleBreadcrumb = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleStatusBar  = lipgloss.NewStyle().Foreground(colorMuted)
	styleError      = lipgloss.NewStyle().Foreground(colorBlocked)
	stylePanelLine  = lipgloss.NewStyle().Foreground(colorMuted)
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

// stateStyle colors a task's checkbox per state.
func stateStyle(s model.State) lipgloss.Style {
	switch s {
	case model.StateActive:
		return lipgloss.NewStyle().Foreground(colorActive).Bold(true)
	case model.StateBlocked:
		return lipgloss.NewStyle().Foreground(colorBlocked)
	case model.StateParked:
		return lipgloss.NewStyle().Foreground(colorParked)
	case model.StateDone:
		return styleMuted()
	default:
		return lipgloss.NewStyle()
	}
}

// applyColorProfilePreference sets Lip Gloss's color profile for the
// interactive TUI.
//
// termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE, which suits
// non-interactive output but can accidentally strip a TUI of color. Here we
// only honor NO_COLOR and otherwise follow the terminal's capabilities,
// trusting TERM/COLORTERM when they claim more than the detector reports.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && (profile == termenv.Ascii || profile == termenv.ANSI) {
		profile = termenv.ANSI256
	}

	lipgloss.SetColorProfile(profile)
}

// applyThemePreference overrides background detection when the user pinned
// a theme. Some terminals misreport their background, which flips every
// AdaptiveColor the wrong way; TRAIL_TUI_THEME or `theme` under [tui] in
// the per-user config forces the choice.
func applyThemePreference(theme string) {
	if env := strings.TrimSpace(os.Getenv("TRAIL_TUI_THEME")); env != "" {
		theme = env
	}
	switch strings.ToLower(strings.TrimSpace(theme)) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	}
}
