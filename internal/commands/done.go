package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"taskmaster/internal/config"
	"taskmaster/internal/exitcode"
	"taskmaster/internal/service"
)

func init() {
	Register(&DoneCmd{})
	Register(&UndoCmd{})
	Register(&ToggleCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string       { return "done" }
func (c *DoneCmd) Aliases() []string  { return nil }
func (c *DoneCmd) Synopsis() string   { return "Mark a task completed" }
func (c *DoneCmd) Usage() string      { return "taskmaster done <id>" }
func (c *DoneCmd) NeedsBackend() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, ok := parseRefOrReport(args, errOut)
	if !ok {
		return exitcode.UserError
	}
	return setCompletion(ctx, cfg, svc, id, true, out, errOut)
}

// UndoCmd implements the undo command.
type UndoCmd struct{}

func (c *UndoCmd) Name() string       { return "undo" }
func (c *UndoCmd) Aliases() []string  { return []string{"reopen"} }
func (c *UndoCmd) Synopsis() string   { return "Mark a task not completed" }
func (c *UndoCmd) Usage() string      { return "taskmaster undo <id>" }
func (c *UndoCmd) NeedsBackend() bool { return true }

func (c *UndoCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UndoCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, ok := parseRefOrReport(args, errOut)
	if !ok {
		return exitcode.UserError
	}
	return setCompletion(ctx, cfg, svc, id, false, out, errOut)
}

// ToggleCmd flips the completion flag of a task.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string       { return "toggle" }
func (c *ToggleCmd) Aliases() []string  { return nil }
func (c *ToggleCmd) Synopsis() string   { return "Flip a task's completion flag" }
func (c *ToggleCmd) Usage() string      { return "taskmaster toggle <id>" }
func (c *ToggleCmd) NeedsBackend() bool { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, ok := parseRefOrReport(args, errOut)
	if !ok {
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

	return setCompletion(ctx, cfg, svc, id, !task.IsCompleted, out, errOut)
}

// setCompletion is the shared implementation for done, undo and toggle.
func setCompletion(ctx context.Context, cfg *config.Config, svc service.Service, id int64, completed bool, out, errOut io.Writer) int {
	ok, err := svc.SetCompletion(ctx, id, completed)
	if err != nil {
		return backendError(errOut, err)
	}
	if !ok {
		fmt.Fprintln(errOut, "error: failed to update task status")
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
