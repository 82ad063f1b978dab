package constants

const (
	AppName           = "tally"
	Version           = "v0.2.0"
	DefaultConfigPath = "~/.config/tally/tally.json"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "tally-"
	BackupFileSuffix = ".json"

	// Streak tiers used when rendering habit lists
	StreakTierHot  = 7
	StreakTierWarm = 3
)

// Categories is the suggested category list offered in prompts. It is
// advisory: any non-empty category is accepted.
var Categories = []string{"Health", "Productivity", "Learning", "Finance", "Social", "Other"}
