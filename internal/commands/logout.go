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
	Register(&LogoutCmd{})
}

// LogoutCmd clears all local storage: the session token and the theme.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string       { return "logout" }
func (c *LogoutCmd) Aliases() []string  { return nil }
func (c *LogoutCmd) Synopsis() string   { return "Clear local storage" }
func (c *LogoutCmd) Usage() string      { return "taskmaster logout [common flags]" }
func (c *LogoutCmd) NeedsBackend() bool { return false }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	store := prefs.Open(cfg.PrefsPath())
	_, loggedIn := store.SessionToken()

	if err := store.Clear(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}

	if cfg.Quiet {
		return exitcode.Success
	}
	if loggedIn {
		fmt.Fprintln(out, "ok")
	} else {
		fmt.Fprintln(out, "not logged in")
	}
	return exitcode.Success
}
