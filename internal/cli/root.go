package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/mkessler/tally/internal/backup"
	"github.com/mkessler/tally/internal/constants"
	"github.com/mkessler/tally/internal/logger"
	"github.com/mkessler/tally/internal/storage"
	"github.com/mkessler/tally/internal/tracker"
)

type Context struct {
	Store   storage.Provider
	Tracker *tracker.Tracker
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	_, err := mgr.CreateBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))
)

// StreakMarker returns the tier marker rendered next to a current streak.
func StreakMarker(streak int) string {
	switch {
	case streak >= constants.StreakTierHot:
		return "🔥"
	case streak >= constants.StreakTierWarm:
		return "⚡"
	default:
		return "📈"
	}
}

func printHeader(title string) {
	fmt.Println(headerStyle.Render(title))
}
