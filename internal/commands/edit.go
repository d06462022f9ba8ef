package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskmaster/internal/config"
	"taskmaster/internal/exitcode"
	"taskmaster/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. It replaces the title and/or the
// description; created_date and the completion flag are kept.
type EditCmd struct {
	title       string
	description *string
}

// SetTitle sets the --title flag (for testing).
func (c *EditCmd) SetTitle(title string) {
	c.title = title
}

// SetDescription sets the --description flag (for testing).
func (c *EditCmd) SetDescription(description string) {
	c.description = &description
}

func (c *EditCmd) Name() string       { return "edit" }
func (c *EditCmd) Aliases() []string  { return nil }
func (c *EditCmd) Synopsis() string   { return "Edit a task" }
func (c *EditCmd) Usage() string      { return "taskmaster edit [--title <text>] [--description <text>] <id> [new title...]" }
func (c *EditCmd) NeedsBackend() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.title = ""
	c.description = nil
	fs.StringVar(&c.title, "title", "", "")
	fs.StringVar(&c.title, "t", "", "")
	setDescription := func(s string) error {
		c.description = &s
		return nil
	}
	fs.Func("description", "", setDescription)
	fs.Func("d", "", setDescription)
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, ok := parseRefOrReport(args, errOut)
	if !ok {
		return exitcode.UserError
	}

	newTitle := c.title
	if len(args) > 1 {
		newTitle = strings.Join(args[1:], " ")
	}
	if strings.TrimSpace(newTitle) == "" && c.description == nil {
		fmt.Fprintln(errOut, "error: nothing to change (give a new title or --description)")
		return exitcode.UserError
	}

	task, err := findTask(ctx, svc, id)
	if err != nil {
		if errors.Is(err, errTaskNotFound) {
			fmt.Fprintf(errOut, "error: task not found: %d\n", id)
			return exitcode.UserError
		}
		return backendError(errOut, err)
	}

	if strings.TrimSpace(newTitle) != "" {
		title, msg := validateTitle(newTitle)
		if msg != "" {
			fmt.Fprintf(errOut, "error: %s\n", msg)
			return exitcode.UserError
		}
		task.Title = title
	}
	if c.description != nil {
		task.Description = strings.TrimSpace(*c.description)
	}

	if _, err := svc.UpdateTask(ctx, task); err != nil {
		return backendError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
