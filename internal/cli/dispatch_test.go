package cli_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"minitask/internal/artifact"
	"minitask/internal/cli"
	"minitask/internal/commands"
	"minitask/internal/config"
	"minitask/internal/exitcode"
	"minitask/internal/repository"
	"minitask/internal/service"
	"minitask/internal/testutil"
)

// testFactory creates a store factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.StoreFactory {
	return func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.Service, error) {
		return svc, nil
	}
}

// artifactFactory builds the same stack as the binary, bound to cfg's artifact.
func artifactFactory(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.Service, error) {
	path, err := cfg.ArtifactPath()
	if err != nil {
		return nil, err
	}
	return repository.New(artifact.New(path, logger), logger), nil
}

func run(t *testing.T, d *cli.Dispatcher, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	code = d.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, d, "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, d, "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoArgsLists(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	svc := testutil.NewFakeService()
	svc.AddTask("Do the dishes", "")
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	stdout, stderr, code := run(t, d)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	if stdout != "Do the dishes\n" {
		t.Errorf("expected task list, got %q", stdout)
	}
}

func TestDispatcher_Alias(t *testing.T) {
	svc := testutil.NewFakeService()
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	_, stderr, code := run(t, d, "a", "--config", t.TempDir(), "--quiet", "buy", "milk")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, stderr)
	}
	tasks := svc.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "buy milk" {
		t.Errorf("expected 'buy milk', got %+v", tasks)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	stdout, stderr, code := run(t, d, "help", "--config", t.TempDir())

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

func TestDispatcher_UnknownFlag(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, d, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, d, "list", "--effort")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -effort\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_InvalidSettings(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.SettingsFile), []byte("output: xml\n"), 0600); err != nil {
		t.Fatal(err)
	}
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, d, "list", "--config", dir)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.HasPrefix(stderr, "error: config error:") {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_FactoryError(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.Service, error) {
		return nil, errors.New("resolve executable: no such file")
	}
	d := cli.NewDispatcher(commands.DefaultRegistry, factory)

	_, stderr, code := run(t, d, "list", "--config", t.TempDir())

	if code != exitcode.StoreError {
		t.Errorf("expected exit code %d, got %d", exitcode.StoreError, code)
	}
	if stderr != "error: store error: resolve executable: no such file\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_JSONFlag(t *testing.T) {
	svc := testutil.NewFakeService()
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	stdout, _, code := run(t, d, "list", "--config", t.TempDir(), "--json")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "[]\n" {
		t.Errorf("expected '[]\\n', got %q", stdout)
	}
}

func TestDispatcher_DebugLogsToStderr(t *testing.T) {
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	_, stderr, code := run(t, d, "list", "--config", t.TempDir(), "--debug")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stderr, "command=list") {
		t.Errorf("expected debug record for the command, got %q", stderr)
	}
}

func TestDispatcher_ArtifactRoundTrip(t *testing.T) {
	configDir := t.TempDir()
	program := "#!/bin/sh\nexit 0\n"
	path := testutil.WriteArtifact(t, program)
	d := cli.NewDispatcher(commands.DefaultRegistry, artifactFactory)
	common := []string{"--config", configDir, "--artifact", path}

	_, stderr, code := run(t, d, append([]string{"add"}, append(common, "Do the dishes")...)...)
	if code != exitcode.StoreError {
		t.Fatalf("add before init: expected exit code %d, got %d", exitcode.StoreError, code)
	}
	if !strings.Contains(stderr, "run: minitask init") {
		t.Errorf("expected init hint, got %q", stderr)
	}

	if _, stderr, code := run(t, d, append([]string{"init"}, common...)...); code != exitcode.Success {
		t.Fatalf("init: exit code %d (%s)", code, stderr)
	}
	if _, stderr, code := run(t, d, append([]string{"add"}, append(common, "Do the dishes")...)...); code != exitcode.Success {
		t.Fatalf("add: exit code %d (%s)", code, stderr)
	}
	if _, stderr, code := run(t, d, append([]string{"add"}, append(common, "--effort", "large", "record the TV program")...)...); code != exitcode.Success {
		t.Fatalf("add: exit code %d (%s)", code, stderr)
	}

	stdout, _, code := run(t, d, append([]string{"list"}, common...)...)
	if code != exitcode.Success {
		t.Fatalf("list: exit code %d", code)
	}
	if stdout != "Do the dishes\nrecord the TV program\n" {
		t.Errorf("unexpected list output %q", stdout)
	}

	stdout, _, _ = run(t, d, append([]string{"take"}, append(common, "-e", "large")...)...)
	if stdout != "record the TV program\n" {
		t.Errorf("unexpected take output %q", stdout)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), program) {
		t.Errorf("program bytes changed: %q", data)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0755 {
		t.Errorf("expected mode 0755, got %v", info.Mode().Perm())
	}
}
