package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskmaster/internal/config"
	"taskmaster/internal/exitcode"
	"taskmaster/internal/prefs"
	"taskmaster/internal/service"
)

func init() {
	Register(&ThemeCmd{})
}

// ThemeCmd prints or saves the display theme.
type ThemeCmd struct{}

func (c *ThemeCmd) Name() string       { return "theme" }
func (c *ThemeCmd) Aliases() []string  { return nil }
func (c *ThemeCmd) Synopsis() string   { return "Print or set the display theme" }
func (c *ThemeCmd) Usage() string      { return "taskmaster theme [light|dark]" }
func (c *ThemeCmd) NeedsBackend() bool { return false }

func (c *ThemeCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ThemeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	store := prefs.Open(cfg.PrefsPath())

	if len(args) == 0 {
		fmt.Fprintln(out, store.Theme())
		return exitcode.Success
	}
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}

	theme, err := prefs.ParseTheme(args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if err := store.SetTheme(theme); err != nil {
		fmt.Fprintf(errOut, "error: failed to save theme: %v\n", err)
		return exitcode.ConfigError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
