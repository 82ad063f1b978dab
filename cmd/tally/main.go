package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/mkessler/tally/internal/cli"
	"github.com/mkessler/tally/internal/constants"
	"github.com/mkessler/tally/internal/errors"
	"github.com/mkessler/tally/internal/logger"
	"github.com/mkessler/tally/internal/storage"
	"github.com/mkessler/tally/internal/tracker"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store file path." type:"string" default:"${config_path}"`
	Debug   bool   `help:"Enable debug logging."`

	Init   cli.InitCmd   `cmd:"" help:"Initialize tally storage."`
	Add    cli.AddCmd    `cmd:"" help:"Add a new habit."`
	Done   cli.DoneCmd   `cmd:"" help:"Mark a habit complete for a day."`
	List   cli.ListCmd   `cmd:"" help:"List habits with today's status."`
	Week   cli.WeekCmd   `cmd:"" help:"Show the weekly report."`
	Stats  cli.StatsCmd  `cmd:"" help:"Show category statistics."`
	Delete cli.DeleteCmd `cmd:"" help:"Delete a habit."`
	Tui    cli.TuiCmd    `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage store backups."`
}

// needsStore reports whether a command requires a loaded store. Init
// creates the store, and the backup commands work directly on the file
// and its copies, so they must run even when the store is missing or
// unreadable.
func needsStore(command string) bool {
	return command != "init" && !strings.HasPrefix(command, "backup")
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal habit tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	path := expandPath(CLI.Config)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(path)}); err != nil {
		// A broken log directory should not block the command itself.
		os.Stderr.WriteString("Warning: failed to initialize logging: " + err.Error() + "\n")
	}

	store := storage.NewJSONStore(path)
	appCtx := &cli.Context{
		Store:   store,
		Tracker: tracker.New(store),
	}

	if needsStore(ctx.Command()) {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	errors.Fatal(ctx.Run(appCtx))
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
