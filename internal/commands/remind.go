package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"taskpad/internal/reminder"
	"taskpad/internal/task"
)

// NewRemindCommand returns the remind subcommand.
func NewRemindCommand() *cli.Command {
	return &cli.Command{
		Name:  "remind",
		Usage: "Print reminders for tasks due today or tomorrow",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Keep running and scan on the configured schedule",
			},
			&cli.StringFlag{
				Name:  "at",
				Usage: "Scan as of this time (RFC 3339 or YYYY-MM-DD) instead of now",
			},
		},
		Action: runRemind,
	}
}

func printNotifier(w io.Writer, logger *log.Logger) reminder.Notifier {
	return reminder.NotifierFunc(func(a reminder.Alert) error {
		logger.Debug("reminder", "kind", a.Kind, "task", a.TaskID)
		_, err := fmt.Fprintf(w, "%s: %s\n", a.Title, a.Body)
		return err
	})
}

func runRemind(ctx context.Context, cmd *cli.Command) error {
	at, err := parseAt(cmd.String("at"))
	if err != nil {
		return err
	}
	s, err := openConsoleSession(cmd, printNotifier)
	if err != nil {
		return err
	}
	defer s.Close()

	if !cmd.Bool("watch") {
		s.app.Remind(at.orNow())
		return nil
	}

	sched, err := reminder.ParseSchedule(s.cfg.Reminders.Schedule)
	if err != nil {
		return err
	}
	scanner := reminder.NewScanner(printNotifier(outWriter(cmd), s.logger), func() bool { return s.cfg.Reminders.Enabled }, s.cfg.Reminders.Icon, s.logger)
	run, err := reminder.Start(s.cfg.Reminders.Schedule, func() {
		// Reload so edits made elsewhere since the last scan are seen.
		tasks := s.adapter.Load()
		now := time.Now()
		scanner.Run(tasks, now)
		s.logger.Debug("next reminder scan", "at", sched.Next(now))
	})
	if err != nil {
		return err
	}
	defer run.Stop()
	s.logger.Info("watching for due tasks", "schedule", run.String(), "next", sched.Next(time.Now()))

	<-ctx.Done()
	return nil
}

type scanTime struct {
	t   time.Time
	set bool
}

func (s scanTime) orNow() time.Time {
	if s.set {
		return s.t
	}
	return time.Now()
}

func parseAt(v string) (scanTime, error) {
	if v == "" {
		return scanTime{}, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return scanTime{t: t, set: true}, nil
	}
	if t, err := time.Parse(task.DateLayout, v); err == nil {
		return scanTime{t: t, set: true}, nil
	}
	return scanTime{}, fmt.Errorf("invalid --at %q: want RFC 3339 or YYYY-MM-DD", v)
}
