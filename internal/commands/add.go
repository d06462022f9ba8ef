package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"taskmaster/internal/config"
	"taskmaster/internal/exitcode"
	"taskmaster/internal/service"
)

// MaxTitleLength is the longest title the server accepts.
const MaxTitleLength = 255

func init() {
	Register(&AddCmd{})
	Register(&CreateCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	description string
	now         func() time.Time
}

// SetDescription sets the description (for testing).
func (c *AddCmd) SetDescription(description string) {
	c.description = description
}

// SetClock sets the clock used for created_date (for testing).
func (c *AddCmd) SetClock(now func() time.Time) {
	c.now = now
}

func (c *AddCmd) Name() string       { return "add" }
func (c *AddCmd) Aliases() []string  { return nil }
func (c *AddCmd) Synopsis() string   { return "Create a task" }
func (c *AddCmd) Usage() string      { return "taskmaster add [--description <text>] <title...>" }
func (c *AddCmd) NeedsBackend() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "description", "", "")
	fs.StringVar(&c.description, "d", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runAdd(ctx, cfg, svc, c.description, c.now, args, out, errOut)
}

// CreateCmd is an alias for AddCmd.
type CreateCmd struct {
	description string
}

func (c *CreateCmd) Name() string       { return "create" }
func (c *CreateCmd) Aliases() []string  { return nil }
func (c *CreateCmd) Synopsis() string   { return "Create a task (alias for add)" }
func (c *CreateCmd) Usage() string      { return "taskmaster create [--description <text>] <title...>" }
func (c *CreateCmd) NeedsBackend() bool { return true }

func (c *CreateCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "description", "", "")
	fs.StringVar(&c.description, "d", "", "")
}

func (c *CreateCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runAdd(ctx, cfg, svc, c.description, nil, args, out, errOut)
}

// runAdd is the shared implementation for add and create commands.
func runAdd(ctx context.Context, cfg *config.Config, svc service.Service, description string, now func() time.Time, args []string, out, errOut io.Writer) int {
	title, msg := validateTitle(strings.Join(args, " "))
	if msg != "" {
		fmt.Fprintf(errOut, "error: %s\n", msg)
		return exitcode.UserError
	}

	if now == nil {
		now = time.Now
	}

	task, err := svc.CreateTask(ctx, service.NewTask{
		Title:       title,
		Description: strings.TrimSpace(description),
		CreatedDate: now().Format(service.DateLayout),
		IsCompleted: false,
	})
	if err != nil {
		return backendError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "ok: task %d\n", task.ID)
	}
	return exitcode.Success
}

// validateTitle trims a title and checks it is non-empty and at most
// MaxTitleLength characters. msg is empty when the title is valid.
func validateTitle(raw string) (title, msg string) {
	title = strings.TrimSpace(raw)
	if title == "" {
		return "", "title required"
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return "", fmt.Sprintf("title must be at most %d characters", MaxTitleLength)
	}
	return title, ""
}
