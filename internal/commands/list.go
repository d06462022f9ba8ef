package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskmaster/internal/config"
	"taskmaster/internal/exitcode"
	"taskmaster/internal/output"
	"taskmaster/internal/prefs"
	"taskmaster/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskmaster` (no args) and `taskmaster list`.
type ListCmd struct {
	open bool
	done bool
}

// SetFilter sets the --open and --done flags (for testing).
func (c *ListCmd) SetFilter(open, done bool) {
	c.open = open
	c.done = done
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List tasks" }
func (c *ListCmd) Usage() string      { return "taskmaster list [--open | --done]" }
func (c *ListCmd) NeedsBackend() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.open, "open", false, "")
	fs.BoolVar(&c.done, "done", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if c.open && c.done {
		fmt.Fprintln(errOut, "error: cannot use both --open and --done")
		return exitcode.UserError
	}
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return backendError(errOut, err)
	}

	printer := output.NewPrinter(out, prefs.Open(cfg.PrefsPath()).Theme())
	shown := 0
	for _, task := range tasks {
		if (c.open && task.IsCompleted) || (c.done && !task.IsCompleted) {
			continue
		}
		printer.Task(task)
		shown++
	}

	if shown == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}
	return exitcode.Success
}
