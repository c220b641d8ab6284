// Package theme styles CLI output for quest statuses.
package theme

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/questlog/internal/quest"
)

// Color palette
var (
	Gold    = lipgloss.Color("#F59E0B") // complete
	Teal    = lipgloss.Color("#14B8A6") // in progress
	Violet  = lipgloss.Color("#8B5CF6") // discovered
	TextDim = lipgloss.Color("#94A3B8") // undiscovered, hints
	Border  = lipgloss.Color("#334155")
)

var (
	Title = lipgloss.NewStyle().Bold(true)
	Hint  = lipgloss.NewStyle().Foreground(TextDim).Italic(true)

	badgeComplete = lipgloss.NewStyle().Bold(true).Foreground(Gold)
	badgeProgress = lipgloss.NewStyle().Foreground(Teal)
	badgeFound    = lipgloss.NewStyle().Foreground(Violet)
	badgeHidden   = lipgloss.NewStyle().Foreground(TextDim)
)

// StatusBadge renders a fixed-width colored label for a quest status.
func StatusBadge(st quest.Status) string {
	switch st {
	case quest.StatusComplete:
		return badgeComplete.Render("✦ complete   ")
	case quest.StatusInProgress:
		return badgeProgress.Render("◐ in progress")
	case quest.StatusDiscovered:
		return badgeFound.Render("○ discovered ")
	default:
		return badgeHidden.Render("· hidden     ")
	}
}

// ProgressBar renders a horizontal exploration bar with a trailing percent.
func ProgressBar(percent, width int) string {
	if width < 4 {
		width = 4
	}
	filled := width * percent / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := lipgloss.NewStyle().Background(Teal).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(Border).Render(strings.Repeat(" ", width-filled))

	return fmt.Sprintf("%s %3d%%", bar, percent)
}
