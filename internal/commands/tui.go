package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"taskpad/internal/logging"
	"taskpad/internal/reminder"
	"taskpad/internal/ui"
)

// NewTUICommand returns the tui subcommand.
func NewTUICommand() *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Open the interactive task list",
		Action: runTUI,
	}
}

func runTUI(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closer, err := logging.OpenFile(cfg.Log.File, logging.Options{Level: cfg.Log.Level})
	if err != nil {
		return err
	}
	defer closer.Close()

	s, err := openSession(cfg, logger, reminder.LogNotifier{Logger: logger})
	if err != nil {
		return err
	}
	defer s.Close()

	logger.Info("tui started", "db", cfg.DBPath, "profile", cfg.Profile, "tasks", len(s.app.Tasks()))
	if err := ui.Run(s.app, cfg, logger); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
