// Package commands defines the taskpad command tree.
package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"taskpad/internal/app"
	"taskpad/internal/config"
	"taskpad/internal/logging"
	"taskpad/internal/query"
	"taskpad/internal/reminder"
	"taskpad/internal/storage"
	"taskpad/internal/task"
)

// ErrTaskNumberRequired is returned when a command needs a task number and
// none was given.
var ErrTaskNumberRequired = errors.New("task number required")

// NewRootCommand returns the top-level CLI command. Without a subcommand it
// starts the TUI.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "taskpad",
		Usage: "Personal task tracker with due-date reminders",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   config.ResolveConfigPath(),
			},
			&cli.StringFlag{
				Name:  "db",
				Usage: "Path to the task database (overrides db_path)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Action: runTUI,
		Commands: []*cli.Command{
			NewTUICommand(),
			NewAddCommand(),
			NewListCommand(),
			NewDoneCommand(),
			NewRemoveCommand(),
			NewEditCommand(),
			NewRemindCommand(),
		},
	}
}

// session is one opened task store with the app built on top of it.
type session struct {
	cfg     config.Config
	store   *storage.Store
	adapter *task.Adapter
	app     *app.App
	logger  *log.Logger
}

func (s *session) Close() error {
	return s.store.Close()
}

func loadConfig(cmd *cli.Command) (config.Config, error) {
	path := cmd.String("config")
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if db := cmd.String("db"); db != "" {
		cfg.DBPath = db
	}
	if cmd.Bool("debug") {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// openSession opens the store named by cfg. A nil notifier leaves the app
// without a reminder scanner.
func openSession(cfg config.Config, logger *log.Logger, notifier reminder.Notifier) (*session, error) {
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	adapter := task.NewAdapter(store.Bucket(cfg.Profile), cfg.StorageKey, logger)

	filter, err := query.ParseFilter(cfg.DefaultFilter)
	if err != nil {
		logger.Warn("ignoring default_filter", "err", err)
	}

	var scanner *reminder.Scanner
	if notifier != nil {
		enabled := cfg.Reminders.Enabled
		scanner = reminder.NewScanner(notifier, func() bool { return enabled }, cfg.Reminders.Icon, logger)
	}

	a := app.New(adapter, app.Options{
		Filter:     filter,
		Theme:      app.ParseTheme(cfg.Theme),
		DateLayout: cfg.DateLayout,
		Reminders:  scanner,
		Logger:     logger,
	})
	return &session{cfg: cfg, store: store, adapter: adapter, app: a, logger: logger}, nil
}

// openConsoleSession is openSession with logs on the command's error
// writer.
func openConsoleSession(cmd *cli.Command, notifier func(io.Writer, *log.Logger) reminder.Notifier) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := logging.New(errWriter(cmd), logging.Options{Level: cfg.Log.Level})
	var n reminder.Notifier
	if notifier != nil {
		n = notifier(outWriter(cmd), logger)
	}
	return openSession(cfg, logger, n)
}

func outWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func errWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}

// taskIndex reads a 1-based task number from the first argument and returns
// the 0-based position.
func taskIndex(cmd *cli.Command) (int, error) {
	arg := cmd.Args().First()
	if arg == "" {
		return 0, ErrTaskNumberRequired
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid task number: %s", arg)
	}
	return n - 1, nil
}
