package cli_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"rem/internal/backend/jsonfile"
	"rem/internal/cli"
	"rem/internal/commands"
	"rem/internal/config"
	"rem/internal/exitcode"
	"rem/internal/service"
	"rem/internal/task"
	"rem/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

// newDispatcher returns a dispatcher whose clock reads 2024-03-10 local time.
func newDispatcher(svc *testutil.FakeService) *cli.Dispatcher {
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))
	d.SetClock(func() time.Time { return time.Date(2024, time.March, 10, 9, 0, 0, 0, time.Local) })
	return d
}

// run executes args with an isolated config directory.
func run(t *testing.T, d *cli.Dispatcher, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	full := args
	if len(args) > 0 {
		full = append([]string{args[0], "--config", t.TempDir()}, args[1:]...)
	}
	code = d.Run(context.Background(), full, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func date(s string) *task.Date {
	d, err := task.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := newDispatcher(svc)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"unknowncmd"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := newDispatcher(svc)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"--quiet"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.LoadErr = errors.New("should not be loaded")

	stdout, stderr, code := run(t, newDispatcher(svc), "help")

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
	svc := testutil.NewFakeService()

	stdout, stderr, code := run(t, newDispatcher(svc), "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "rem 0.1.0\n" {
		t.Errorf("expected 'rem 0.1.0\\n', got %q", stdout)
	}
	if svc.Saves() != 0 {
		t.Errorf("version should not save the store")
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := run(t, newDispatcher(svc), "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_MissingFlagValue(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := run(t, newDispatcher(svc), "add", "--due")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -due\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_NoArgsListsPending(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	svc := testutil.NewFakeService(
		&task.Simple{Content: "open"},
		&task.Simple{Content: "closed", Done: true},
	)
	dispatcher := newDispatcher(svc)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), nil, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout.String() != "   1  [ ] open\n" {
		t.Errorf("unexpected output %q", stdout.String())
	}
}

func TestDispatcher_AddSaves(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := run(t, newDispatcher(svc), "new", "-d", "stretch")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "   1  [ ] stretch (daily, streak: 0)\n" {
		t.Errorf("unexpected output %q", stdout)
	}
	if svc.Saves() != 1 {
		t.Errorf("expected 1 save, got %d", svc.Saves())
	}
	if _, ok := svc.Stored().Tasks[0].(*task.Recurring); !ok {
		t.Errorf("expected stored daily task, got %T", svc.Stored().Tasks[0])
	}
}

func TestDispatcher_AddTrailingDailyFlag(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := run(t, newDispatcher(svc), "add", "stretch", "--daily")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "   1  [ ] stretch (daily, streak: 0)\n" {
		t.Errorf("unexpected output %q", stdout)
	}
	got, ok := svc.Stored().Tasks[0].(*task.Recurring)
	if !ok {
		t.Fatalf("expected stored daily task, got %T", svc.Stored().Tasks[0])
	}
	if got.Content != "stretch" {
		t.Errorf("expected content %q, got %q", "stretch", got.Content)
	}
}

func TestDispatcher_AddTrailingBadDue(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := run(t, newDispatcher(svc), "new", "rent", "--due", "2024-13-40")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: invalid date format, should be YYYY-MM-DD (got 2024-13-40)\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
	if svc.Saves() != 0 {
		t.Errorf("expected no save after failure, got %d", svc.Saves())
	}
}

func TestDispatcher_AddFlagsBetweenWords(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := run(t, newDispatcher(svc), "add", "pay", "--due", "2024-03-12", "rent")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "   1  [ ] pay rent (scheduled: 2024-03-12, due)\n" {
		t.Errorf("unexpected output %q", stdout)
	}
}

func TestDispatcher_DoubleDashEndsFlags(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := run(t, newDispatcher(svc), "add", "--", "try", "--daily")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "   1  [ ] try --daily\n" {
		t.Errorf("unexpected output %q", stdout)
	}
}

func TestDispatcher_FailedCommandDoesNotSave(t *testing.T) {
	svc := testutil.NewFakeService(&task.Simple{Content: "a"})

	_, stderr, code := run(t, newDispatcher(svc), "toggle", "7")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: invalid index, valid range is 1-1\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if svc.Saves() != 0 {
		t.Errorf("expected no save after failure, got %d", svc.Saves())
	}
}

func TestDispatcher_MaintenanceRunsBeforeCommand(t *testing.T) {
	svc := testutil.NewFakeService(
		&task.Recurring{Content: "stretch", Streak: 6, LongestStreak: 4, LastMarkedDone: date("2024-03-05")},
	)

	stdout, _, code := run(t, newDispatcher(svc), "pending")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "   1  [ ] stretch (daily, streak: 0, longest: 6) (last done: 2024-03-05)\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}

	r := svc.Stored().Tasks[0].(*task.Recurring)
	if r.Streak != 0 || r.LongestStreak != 6 {
		t.Errorf("maintenance not persisted: %+v", r)
	}
	if r.UndoBackup == nil || r.UndoBackup.String() != "2024-03-05" {
		t.Errorf("expected backup of stale date, got %v", r.UndoBackup)
	}
}

func TestDispatcher_TodayFlag(t *testing.T) {
	svc := testutil.NewFakeService(&task.Scheduled{Content: "rent", Due: "2024-04-01"})

	stdout, _, code := run(t, newDispatcher(svc), "all", "--today", "2024-04-02")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "   1  [ ] rent (scheduled: 2024-04-01, overdue)\n" {
		t.Errorf("unexpected output %q", stdout)
	}
}

func TestDispatcher_BadTodayFlag(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := run(t, newDispatcher(svc), "pending", "--today", "tomorrow")

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if stderr != "error: invalid value for today: tomorrow\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_LoadError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.LoadErr = errors.New("failed to parse rem.json: unexpected end of JSON input")

	_, stderr, code := run(t, newDispatcher(svc), "pending")

	if code != exitcode.StoreError {
		t.Errorf("expected exit code %d, got %d", exitcode.StoreError, code)
	}
	expected := "error: store error: failed to parse rem.json: unexpected end of JSON input\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_SaveError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.SaveErr = errors.New("disk full")

	_, stderr, code := run(t, newDispatcher(svc), "add", "a")

	if code != exitcode.StoreError {
		t.Errorf("expected exit code %d, got %d", exitcode.StoreError, code)
	}
	if stderr != "error: store error: disk full\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestDispatcher_DebugLogging(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := run(t, newDispatcher(svc), "pending", "--debug")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	for _, want := range []string{"level=DEBUG", "msg=\"loading store\"", "location=memory", "today=2024-03-10", "msg=\"maintenance pass\""} {
		if !strings.Contains(stderr, want) {
			t.Errorf("expected %q in debug output:\n%s", want, stderr)
		}
	}
}

// TestDispatcher_DailyStreakAcrossDays drives a daily task through several
// invocations against a real data file, pinning the date each time.
func TestDispatcher_DailyStreakAcrossDays(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rem.json")
	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return jsonfile.New(ctx, cfg)
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	steps := []struct {
		args []string
		want string
	}{
		{[]string{"add", "--daily", "stretch"}, "   1  [ ] stretch (daily, streak: 0)\n"},
		{[]string{"toggle", "--today", "2024-03-01", "1"}, "   1  [x] stretch (daily, streak: 1) (last done: 2024-03-01)\n"},
		{[]string{"toggle", "--today", "2024-03-02", "1"}, "   1  [x] stretch (daily, streak: 2) (last done: 2024-03-02)\n"},
		{[]string{"toggle", "--today", "2024-03-02", "1"}, "   1  [ ] stretch (daily, streak: 1) (last done: 2024-03-01)\n"},
		{[]string{"toggle", "--today", "2024-03-02", "1"}, "   1  [x] stretch (daily, streak: 2) (last done: 2024-03-02)\n"},
		{[]string{"pending", "--today", "2024-03-03"}, "   1  [ ] stretch (daily, streak: 2) (last done: 2024-03-02)\n"},
		{[]string{"pending", "--today", "2024-03-06"}, "   1  [ ] stretch (daily, streak: 0, longest: 2) (last done: 2024-03-02)\n"},
		{[]string{"toggle", "--today", "2024-03-06", "1"}, "   1  [x] stretch (daily, streak: 1, longest: 2) (last done: 2024-03-06)\n"},
		{[]string{"pending", "--today", "2024-03-06"}, "no pending tasks\n"},
	}

	for i, step := range steps {
		args := append([]string{step.args[0], "--config", t.TempDir(), "--file", path, "--today", "2024-03-01"}, step.args[1:]...)

		var stdout, stderr bytes.Buffer
		code := dispatcher.Run(context.Background(), args, &stdout, &stderr)
		if code != exitcode.Success {
			t.Fatalf("step %d %v: exit code %d, stderr %q", i, step.args, code, stderr.String())
		}
		if stdout.String() != step.want {
			t.Errorf("step %d %v:\nwant %q\ngot  %q", i, step.args, step.want, stdout.String())
		}
	}
}
