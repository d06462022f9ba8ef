package commands

import (
	"context"
	"errors"
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
	Register(&ShowCmd{})
}

// ShowCmd implements the show command.
type ShowCmd struct{}

func (c *ShowCmd) Name() string       { return "show" }
func (c *ShowCmd) Aliases() []string  { return nil }
func (c *ShowCmd) Synopsis() string   { return "Show one task" }
func (c *ShowCmd) Usage() string      { return "taskmaster show <id>" }
func (c *ShowCmd) NeedsBackend() bool { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
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

	output.NewPrinter(out, prefs.Open(cfg.PrefsPath()).Theme()).TaskDetail(task)
	return exitcode.Success
}
