package cli_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskmaster/internal/cli"
	"taskmaster/internal/commands"
	"taskmaster/internal/config"
	"taskmaster/internal/exitcode"
	"taskmaster/internal/service"
	"taskmaster/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

// isolate points config lookups at a temp dir and clears server settings.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvTimeout, "")
	return filepath.Join(dir, config.AppName)
}

func run(t *testing.T, factory cli.ServiceFactory, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	var outBuf, errBuf bytes.Buffer
	code = dispatcher.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	isolate(t)
	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	isolate(t)
	_, stderr, code := run(t, testFactory(testutil.NewFakeService()), "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	isolate(t)
	stdout, stderr, code := run(t, nil, "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	isolate(t)
	stdout, stderr, code := run(t, nil, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "taskmaster 0.1.0\n" {
		t.Errorf("expected 'taskmaster 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	isolate(t)
	_, stderr, code := run(t, nil, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	isolate(t)
	_, stderr, code := run(t, nil, "add", "--description")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -description\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_MissingAPIURL(t *testing.T) {
	dir := isolate(t)
	svc := testutil.NewFakeService()
	_, stderr, code := run(t, testFactory(svc), "list")

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	expected := "error: api url not configured (set TASKMASTER_API_URL or api_url in " +
		filepath.Join(dir, config.ConfigFile) + ")\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
	if svc.Calls["ListTasks"] != 0 {
		t.Error("ListTasks should not be called")
	}
}

func TestDispatcher_NoArgsListsTasks(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvAPIURL, "http://localhost:8080/api")

	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", "2024-01-01", false)

	stdout, stderr, code := run(t, testFactory(svc))

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "   1  [ ] Buy milk  (2024-01-01)\n" {
		t.Errorf("unexpected stdout: %q", stdout)
	}
}

func TestDispatcher_APIURLFlagAndConfigFile(t *testing.T) {
	dir := isolate(t)
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatal(err)
	}
	toml := "api_url = \"http://from-file:8080/api\"\ntimeout = \"3s\"\n"
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte(toml), 0600); err != nil {
		t.Fatal(err)
	}

	var got *config.Config
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		got = cfg
		return testutil.NewFakeService(), nil
	}

	_, stderr, code := run(t, factory, "list", "--quiet")
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if got.APIURL != "http://from-file:8080/api" || got.Timeout.String() != "3s" || !got.Quiet {
		t.Errorf("unexpected config from file: %+v", got)
	}

	_, _, code = run(t, factory, "list", "--api-url", "http://from-flag/api")
	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if got.APIURL != "http://from-flag/api" {
		t.Errorf("flag should override config.toml, got %q", got.APIURL)
	}
}

func TestDispatcher_FactoryError(t *testing.T) {
	isolate(t)
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return nil, errors.New("invalid api url: ftp://x")
	}

	_, stderr, code := run(t, factory, "list", "--api-url", "ftp://x")

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if stderr != "error: invalid api url: ftp://x\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestDispatcher_AddWithDescription(t *testing.T) {
	isolate(t)
	svc := testutil.NewFakeService()

	stdout, stderr, code := run(t, testFactory(svc),
		"add", "--api-url", "http://localhost/api", "--description", "two litres", "Buy", "milk")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "ok: task 1\n" {
		t.Errorf("unexpected stdout: %q", stdout)
	}
	task, ok := svc.Task(1)
	if !ok || task.Title != "Buy milk" || task.Description != "two litres" {
		t.Errorf("unexpected task: %+v", task)
	}
}

func TestDispatcher_LocalCommandsSkipBackend(t *testing.T) {
	isolate(t)
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		t.Fatal("factory should not be called for local commands")
		return nil, nil
	}

	stdout, _, code := run(t, factory, "theme")
	if code != exitcode.Success || stdout != "light\n" {
		t.Errorf("expected light theme, got %q (code %d)", stdout, code)
	}
}

func TestDispatcher_BadConfigFile(t *testing.T) {
	dir := isolate(t)
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte("timeout = \"soon\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	_, stderr, code := run(t, nil, "version")
	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if !strings.HasPrefix(stderr, "error: invalid config.toml") {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}
