// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown task, invalid title).
	UserError = 1

	// ConfigError indicates a configuration error (no api url, bad config.toml,
	// unwritable config dir).
	ConfigError = 2

	// BackendError indicates a task server error: non-2xx status, undecodable
	// response, network failure or a rejected status change.
	BackendError = 3
)
