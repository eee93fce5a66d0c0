package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"taskpad/internal/app"
	"taskpad/internal/task"
)

// NewAddCommand returns the add subcommand.
func NewAddCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a task",
		ArgsUsage: "<title...>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "due",
				Aliases: []string{"d"},
				Usage:   "Due date (YYYY-MM-DD)",
			},
			&cli.StringFlag{
				Name:    "priority",
				Aliases: []string{"p"},
				Usage:   "High, Medium or Low",
				Value:   string(task.PriorityMedium),
			},
		},
		Action: runAdd,
	}
}

func runAdd(_ context.Context, cmd *cli.Command) error {
	s, err := openConsoleSession(cmd, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	t, err := s.app.Submit(app.Form{
		Title:    strings.Join(cmd.Args().Slice(), " "),
		DueDate:  cmd.String("due"),
		Priority: cmd.String("priority"),
	})
	if err != nil {
		return fmt.Errorf("task not added: %w", err)
	}
	fmt.Fprintf(outWriter(cmd), "Added #%d: %s\n", s.app.IndexOf(t.ID)+1, t.Title)
	return nil
}

// NewDoneCommand returns the done subcommand. It flips completion, so
// running it twice reopens the task.
func NewDoneCommand() *cli.Command {
	return &cli.Command{
		Name:      "done",
		Aliases:   []string{"toggle"},
		Usage:     "Toggle a task between done and pending",
		ArgsUsage: "<n>",
		Action:    runDone,
	}
}

func runDone(_ context.Context, cmd *cli.Command) error {
	idx, err := taskIndex(cmd)
	if err != nil {
		return err
	}
	s, err := openConsoleSession(cmd, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	t, err := s.app.Toggle(idx)
	if err != nil {
		return fmt.Errorf("task #%d: %w", idx+1, err)
	}
	fmt.Fprintf(outWriter(cmd), "#%d %s: %s\n", idx+1, humanDone(t.Completed), t.Title)
	return nil
}

// NewRemoveCommand returns the rm subcommand.
func NewRemoveCommand() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Aliases:   []string{"delete"},
		Usage:     "Delete a task",
		ArgsUsage: "<n>",
		Action:    runRemove,
	}
}

func runRemove(_ context.Context, cmd *cli.Command) error {
	idx, err := taskIndex(cmd)
	if err != nil {
		return err
	}
	s, err := openConsoleSession(cmd, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	t, err := s.app.Delete(idx)
	if err != nil {
		return fmt.Errorf("task #%d: %w", idx+1, err)
	}
	fmt.Fprintf(outWriter(cmd), "Deleted #%d: %s\n", idx+1, t.Title)
	return nil
}

// NewEditCommand returns the edit subcommand. Flags left unset keep the
// current value.
func NewEditCommand() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Usage:     "Change a task's title, due date or priority",
		ArgsUsage: "<n>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "New title"},
			&cli.StringFlag{Name: "due", Aliases: []string{"d"}, Usage: "New due date (YYYY-MM-DD)"},
			&cli.StringFlag{Name: "priority", Aliases: []string{"p"}, Usage: "New priority"},
		},
		Action: runEdit,
	}
}

func runEdit(_ context.Context, cmd *cli.Command) error {
	idx, err := taskIndex(cmd)
	if err != nil {
		return err
	}
	var req task.EditRequest
	if cmd.IsSet("title") {
		v := cmd.String("title")
		req.Title = &v
	}
	if cmd.IsSet("due") {
		v := cmd.String("due")
		req.DueDate = &v
	}
	if cmd.IsSet("priority") {
		v := cmd.String("priority")
		req.Priority = &v
	}

	s, err := openConsoleSession(cmd, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	t, err := s.app.Edit(idx, req)
	if err != nil {
		return fmt.Errorf("task #%d not changed: %w", idx+1, err)
	}
	fmt.Fprintf(outWriter(cmd), "Updated #%d: %s [%s] due %s\n", idx+1, t.Title, t.Priority, t.DueDate)
	return nil
}

func humanDone(done bool) string {
	if done {
		return "done"
	}
	return "pending"
}
