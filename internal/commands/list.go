package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"taskpad/internal/query"
	"taskpad/internal/view"
)

// NewListCommand returns the list subcommand.
func NewListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List tasks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "search",
				Aliases: []string{"s"},
				Usage:   "Only titles containing this text (case-insensitive)",
			},
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "all, completed or pending (default from config)",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "text, json or yaml",
				Value: "text",
			},
		},
		Action: runList,
	}
}

func runList(_ context.Context, cmd *cli.Command) error {
	s, err := openConsoleSession(cmd, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	if cmd.IsSet("filter") {
		f, err := query.ParseFilter(cmd.String("filter"))
		if err != nil {
			return err
		}
		s.app.SetFilter(f)
	}
	s.app.SetSearch(cmd.String("search"))

	w := outWriter(cmd)
	screen := s.app.Screen()
	switch strings.ToLower(cmd.String("format")) {
	case "text", "":
		return writeText(w, screen)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newListing(screen))
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(newListing(screen))
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", cmd.String("format"))
	}
}

// listing is the machine-readable form of a screen. Numbers are 1-based
// positions in the full task list.
type listing struct {
	Tasks     []listedTask `json:"tasks" yaml:"tasks"`
	Completed int          `json:"completed" yaml:"completed"`
	Total     int          `json:"total" yaml:"total"`
	Progress  float64      `json:"progress" yaml:"progress"`
}

type listedTask struct {
	Number    int    `json:"number" yaml:"number"`
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Due       string `json:"due" yaml:"due"`
	Priority  string `json:"priority" yaml:"priority"`
	Completed bool   `json:"completed" yaml:"completed"`
}

func newListing(s view.Screen) listing {
	l := listing{
		Tasks:     make([]listedTask, 0, len(s.Rows)),
		Completed: s.Completed,
		Total:     s.Total,
		Progress:  s.Progress,
	}
	for _, r := range s.Rows {
		l.Tasks = append(l.Tasks, listedTask{
			Number:    r.Index + 1,
			ID:        r.ID,
			Title:     r.Title,
			Due:       r.Due,
			Priority:  string(r.Priority),
			Completed: r.Completed,
		})
	}
	return l
}

func writeText(w io.Writer, s view.Screen) error {
	if s.Empty {
		fmt.Fprintln(w, s.Placeholder)
	} else {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, r := range s.Rows {
			check := "[ ]"
			if r.Completed {
				check = "[x]"
			}
			fmt.Fprintf(tw, "%4d\t%s\t%s\t[%s]\tDue: %s\n", r.Index+1, check, normalizeTitle(r.Title), r.Priority, r.Due)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Progress: %d/%d (%.0f%%)\n", s.Completed, s.Total, s.Progress)
	return err
}

// normalizeTitle keeps a title on one line.
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	return strings.ReplaceAll(title, "\n", " ")
}
