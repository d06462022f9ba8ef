package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"taskmaster/internal/config"
	"taskmaster/internal/exitcode"
	"taskmaster/internal/export"
	"taskmaster/internal/service"
)

// DefaultExportPath is where export writes when --out is not given.
const DefaultExportPath = "tasks.pdf"

func init() {
	Register(&ExportCmd{})
}

// ExportCmd writes every task to a report file.
type ExportCmd struct {
	path   string
	format string
	now    func() time.Time
}

// SetOut sets the --out and --format flags (for testing).
func (c *ExportCmd) SetOut(path, format string) {
	c.path = path
	c.format = format
}

// SetClock sets the clock used for the report timestamp (for testing).
func (c *ExportCmd) SetClock(now func() time.Time) {
	c.now = now
}

func (c *ExportCmd) Name() string       { return "export" }
func (c *ExportCmd) Aliases() []string  { return nil }
func (c *ExportCmd) Synopsis() string   { return "Write all tasks to a PDF, CSV, JSON or YAML file" }
func (c *ExportCmd) Usage() string      { return "taskmaster export [--out <file>] [--format pdf|csv|json|yaml]" }
func (c *ExportCmd) NeedsBackend() bool { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.path, "out", DefaultExportPath, "")
	fs.StringVar(&c.path, "o", DefaultExportPath, "")
	fs.StringVar(&c.format, "format", "", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	path := c.path
	if path == "" {
		path = DefaultExportPath
	}
	format := export.FormatFromPath(path)
	if c.format != "" {
		f, err := export.ParseFormat(c.format)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		format = f
	}

	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return backendError(errOut, err)
	}

	now := c.now
	if now == nil {
		now = time.Now
	}

	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if err := export.Write(f, format, tasks, now()); err != nil {
		f.Close()
		fmt.Fprintf(errOut, "error: export failed: %v\n", err)
		return exitcode.UserError
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "ok: %d task(s) written to %s\n", len(tasks), path)
	}
	return exitcode.Success
}
